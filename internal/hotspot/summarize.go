package hotspot

import (
	"math"
	"sort"

	"github.com/fixmycity/backend/internal/geo"
)

const (
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

type ClusterSummary struct {
	Label            Label   `json:"cluster"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	ComplaintCount   int     `json:"complaint_count"`
	RadiusKm         float64 `json:"radius_km"`
	DominantSeverity string  `json:"dominant_severity"`
	DominantCategory string  `json:"dominant_category"`
	PriorityLevel    string  `json:"priority_level"`
	ComplaintIDs     []int64 `json:"complaint_ids"`
}

// PriorityLevel maps a cluster size to its tier.
func PriorityLevel(size int) string {
	switch {
	case size >= 5:
		return PriorityCritical
	case size >= 3:
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

// Summarize builds one summary per non-noise label. Dominant severity and
// category are the most frequent values; on a tie the value carried by the
// lowest complaint id wins.
func Summarize(points []Point, assignment Assignment) map[Label]ClusterSummary {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	members := map[Label][]Point{}
	for _, p := range sorted {
		label, ok := assignment[p.ID]
		if !ok || label == Noise {
			continue
		}
		members[label] = append(members[label], p)
	}

	out := make(map[Label]ClusterSummary, len(members))
	for label, pts := range members {
		var sumLat, sumLon float64
		ids := make([]int64, 0, len(pts))
		severities := make([]string, 0, len(pts))
		categories := make([]string, 0, len(pts))
		for _, p := range pts {
			sumLat += p.Lat
			sumLon += p.Lon
			ids = append(ids, p.ID)
			severities = append(severities, p.Severity)
			categories = append(categories, p.Category)
		}
		n := float64(len(pts))
		lat, lon := sumLat/n, sumLon/n
		out[label] = ClusterSummary{
			Label:            label,
			Latitude:         lat,
			Longitude:        lon,
			ComplaintCount:   len(pts),
			RadiusKm:         radiusKm(lat, lon, pts),
			DominantSeverity: mostFrequent(severities),
			DominantCategory: mostFrequent(categories),
			PriorityLevel:    PriorityLevel(len(pts)),
			ComplaintIDs:     ids,
		}
	}
	return out
}

// radiusKm is the distance from the centroid to the farthest member, to the
// nearest 10 m.
func radiusKm(lat, lon float64, pts []Point) float64 {
	r := 0.0
	for _, p := range pts {
		r = math.Max(r, geo.HaversineKm(lat, lon, p.Lat, p.Lon))
	}
	return round2(r)
}

func mostFrequent(values []string) string {
	counts := map[string]int{}
	order := make([]string, 0, len(values))
	for _, v := range values {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	best := ""
	bestCount := 0
	for _, v := range order {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}
