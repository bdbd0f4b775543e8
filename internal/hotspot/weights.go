package hotspot

import (
	"strings"

	"github.com/fixmycity/backend/internal/models"
)

// DefaultWeight applies to any severity or area-importance token missing from
// the tables.
const DefaultWeight = 1.0

// Weights holds the ordinal weight tables used by the scorer. The tables are
// copied on construction and never exposed, so a Weights value can be shared
// between goroutines.
type Weights struct {
	severity map[string]float64
	area     map[string]float64
}

// DefaultWeights returns the standard tables:
// severity low=1 medium=2 high=3 critical=4 and
// area importance low=0.5 normal=1 high=2 critical=3.
func DefaultWeights() Weights {
	return NewWeights(
		map[string]float64{
			models.SeverityLow:      1,
			models.SeverityMedium:   2,
			models.SeverityHigh:     3,
			models.SeverityCritical: 4,
		},
		map[string]float64{
			models.AreaLow:      0.5,
			models.AreaNormal:   1,
			models.AreaHigh:     2,
			models.AreaCritical: 3,
		},
	)
}

func NewWeights(severity, area map[string]float64) Weights {
	return Weights{
		severity: copyTable(severity),
		area:     copyTable(area),
	}
}

func (w Weights) Severity(token string) float64 {
	return lookup(w.severity, token)
}

func (w Weights) AreaImportance(token string) float64 {
	return lookup(w.area, token)
}

// maxByWeight returns the token with the highest weight. Among equal weights
// the first token wins.
func maxByWeight(tokens []string, weight func(string) float64) (string, float64) {
	if len(tokens) == 0 {
		return "", DefaultWeight
	}
	best, bestW := tokens[0], weight(tokens[0])
	for _, t := range tokens[1:] {
		if w := weight(t); w > bestW {
			best, bestW = t, w
		}
	}
	return best, bestW
}

func lookup(table map[string]float64, token string) float64 {
	if w, ok := table[normalizeToken(token)]; ok {
		return w
	}
	return DefaultWeight
}

func normalizeToken(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

func copyTable(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[normalizeToken(k)] = v
	}
	return out
}
