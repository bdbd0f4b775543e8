package hotspot

import (
	"math"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/fixmycity/backend/internal/models"
)

// ZoneResult is a scored zone as handed to callers.
type ZoneResult struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	ComplaintCount int     `json:"complaint_count"`
	PriorityScore  float64 `json:"priority_score"`
	Severity       string  `json:"severity"`
	AreaImportance string  `json:"area_importance"`
	DaysUnresolved int     `json:"days_unresolved"`
}

// Scorer computes
//
//	priority_score = count*2 + severity_weight*3 + days_unresolved*1.5 + area_weight*2
//
// rounded to 2 decimals.
type Scorer struct {
	weights Weights
	clock   clockwork.Clock
}

func NewScorer(weights Weights, clock clockwork.Clock) Scorer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return Scorer{weights: weights, clock: clock}
}

func (s Scorer) Score(z Zone) ZoneResult {
	n := len(z.Complaints)
	severities := make([]string, 0, n)
	areas := make([]string, 0, n)
	for _, c := range z.Complaints {
		severities = append(severities, c.Severity)
		areas = append(areas, models.NormalizeAreaImportance(c.AreaImportance))
	}

	severity, sw := maxByWeight(severities, s.weights.Severity)
	area, aw := maxByWeight(areas, s.weights.AreaImportance)
	days := daysUnresolved(z.Complaints, s.clock.Now())

	score := float64(n)*2 + sw*3 + float64(days)*1.5 + aw*2
	return ZoneResult{
		Latitude:       z.Key.Lat,
		Longitude:      z.Key.Lon,
		ComplaintCount: n,
		PriorityScore:  round2(score),
		Severity:       severity,
		AreaImportance: area,
		DaysUnresolved: days,
	}
}

// daysUnresolved is the age of the oldest member when at least one member is
// still unresolved, otherwise 0. The oldest member counts whatever its own
// status is.
func daysUnresolved(complaints []models.Complaint, now time.Time) int {
	open := false
	oldest := 0
	for _, c := range complaints {
		if strings.EqualFold(strings.TrimSpace(c.Status), models.StatusUnresolved) {
			open = true
		}
		if age := ageInDays(c.Timestamp, now); age > oldest {
			oldest = age
		}
	}
	if !open {
		return 0
	}
	return oldest
}

// ageInDays returns whole days between ts and now, never negative. An
// unparseable timestamp has age 0.
func ageInDays(ts string, now time.Time) int {
	t, ok := ParseTimestamp(ts)
	if !ok {
		return 0
	}
	d := now.Sub(t)
	if d <= 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp accepts ISO-8601 timestamps with or without an offset.
// Values without an offset are read as UTC.
func ParseTimestamp(ts string) (time.Time, bool) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
