// Package hotspot turns a snapshot of complaints into ranked grid zones and
// density-based clusters. It does no I/O and keeps no state between calls.
package hotspot

import (
	"runtime"
	"sort"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/fixmycity/backend/internal/models"
)

type Config struct {
	// Precision is the number of decimal places coordinates are rounded to
	// when forming zones.
	Precision int

	// Workers bounds how many zones are scored concurrently.
	Workers int

	Weights Weights
	Clock   clockwork.Clock
}

type Engine struct {
	precision int
	workers   int
	scorer    Scorer
}

// ClusterResult is the outcome of ClusterComplaints. Warning is set when
// clustering degraded to all noise.
type ClusterResult struct {
	Assignment Assignment               `json:"assignment"`
	Summaries  map[Label]ClusterSummary `json:"summaries"`
	NoiseCount int                      `json:"noise_count"`
	Warning    string                   `json:"warning,omitempty"`
}

// Clusters returns the summaries ordered by label.
func (r ClusterResult) Clusters() []ClusterSummary {
	out := make([]ClusterSummary, 0, len(r.Summaries))
	for _, s := range r.Summaries {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

func New(cfg Config) (*Engine, error) {
	if cfg.Precision < 0 || cfg.Precision > maxPrecision {
		return nil, invalid("new engine", "precision", "must be between 0 and 6")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Weights.severity == nil {
		cfg.Weights = DefaultWeights()
	}
	return &Engine{
		precision: cfg.Precision,
		workers:   cfg.Workers,
		scorer:    NewScorer(cfg.Weights, cfg.Clock),
	}, nil
}

// RankZones aggregates records into zones, scores every zone and returns the
// topN most urgent ones.
func (e *Engine) RankZones(records []models.Complaint, topN int) ([]ZoneResult, error) {
	if topN < 1 {
		return nil, invalid("rank zones", "top_n", "must be at least 1")
	}

	zones := Aggregate(records, e.precision)
	if len(zones) == 0 {
		return []ZoneResult{}, nil
	}

	scored := make([]ZoneResult, len(zones))
	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, z := range zones {
		g.Go(func() error {
			scored[i] = e.scorer.Score(z)
			return nil
		})
	}
	_ = g.Wait()

	return Rank(scored, topN)
}

// ClusterComplaints clusters the geolocated records and summarizes each
// cluster. Records without coordinates are ignored.
func (e *Engine) ClusterComplaints(records []models.Complaint, epsKm float64, minSamples int) (ClusterResult, error) {
	if err := validateClusterParams(epsKm, minSamples); err != nil {
		return ClusterResult{}, err
	}

	points := ToPoints(records)
	assignment, warning, err := Cluster(points, epsKm, minSamples)
	if err != nil {
		return ClusterResult{}, err
	}

	noise := 0
	for _, label := range assignment {
		if label == Noise {
			noise++
		}
	}
	return ClusterResult{
		Assignment: assignment,
		Summaries:  Summarize(points, assignment),
		NoiseCount: noise,
		Warning:    warning,
	}, nil
}

func ToPoints(records []models.Complaint) []Point {
	points := make([]Point, 0, len(records))
	for _, r := range records {
		if !r.HasLocation() {
			continue
		}
		points = append(points, Point{
			ID:       r.ID,
			Lat:      *r.Latitude,
			Lon:      *r.Longitude,
			Severity: r.Severity,
			Category: r.Category,
		})
	}
	return points
}
