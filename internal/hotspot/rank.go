package hotspot

import "sort"

// Rank orders zones by priority score, highest first, and keeps at most topN.
// Equal scores are ordered by latitude then longitude, ascending. The input
// slice is not modified.
func Rank(zones []ZoneResult, topN int) ([]ZoneResult, error) {
	if topN < 1 {
		return nil, invalid("rank", "top_n", "must be at least 1")
	}

	out := make([]ZoneResult, len(zones))
	copy(out, zones)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.PriorityScore != b.PriorityScore {
			return a.PriorityScore > b.PriorityScore
		}
		if a.Latitude != b.Latitude {
			return a.Latitude < b.Latitude
		}
		return a.Longitude < b.Longitude
	})

	if len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}
