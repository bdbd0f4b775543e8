package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/fixmycity/backend/internal/hotspot"
	"github.com/fixmycity/backend/internal/models"
	"github.com/fixmycity/backend/internal/observability"
)

// SnapshotSource supplies the geolocated complaints the engine runs over.
type SnapshotSource interface {
	ListGeolocatedComplaints(ctx context.Context) ([]models.Complaint, error)
}

type HotspotService struct {
	Source  SnapshotSource
	Engine  *hotspot.Engine
	Metrics *observability.Metrics
	Logger  zerolog.Logger
}

// ClusterPoint is one complaint location with the cluster it landed in.
type ClusterPoint struct {
	ID        int64         `json:"id"`
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Severity  string        `json:"severity"`
	Category  string        `json:"category"`
	Cluster   hotspot.Label `json:"cluster"`
}

type ClusterReport struct {
	Points          []ClusterPoint           `json:"points"`
	Clusters        []hotspot.ClusterSummary `json:"clusters"`
	NoiseCount      int                      `json:"noise_count"`
	Warning         string                   `json:"warning,omitempty"`
	Recommendations []string                 `json:"recommendations"`
}

func (s *HotspotService) PriorityZones(ctx context.Context, topN int) ([]hotspot.ZoneResult, error) {
	records, err := s.Source.ListGeolocatedComplaints(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	s.Metrics.SnapshotTaken(len(records))

	start := time.Now()
	zones, err := s.Engine.RankZones(records, topN)
	s.Metrics.ObserveEngine("rank", start)
	if err != nil {
		return nil, err
	}
	s.Metrics.ZoneRanked()

	s.Logger.Debug().Int("complaints", len(records)).Int("zones", len(zones)).Int("top", topN).Msg("ranked priority zones")
	return zones, nil
}

func (s *HotspotService) Clusters(ctx context.Context, epsKm float64, minSamples int) (ClusterReport, error) {
	records, err := s.Source.ListGeolocatedComplaints(ctx)
	if err != nil {
		return ClusterReport{}, fmt.Errorf("load snapshot: %w", err)
	}
	s.Metrics.SnapshotTaken(len(records))

	start := time.Now()
	res, err := s.Engine.ClusterComplaints(records, epsKm, minSamples)
	s.Metrics.ObserveEngine("cluster", start)
	if err != nil {
		return ClusterReport{}, err
	}

	outcome := observability.ClusterOK
	switch {
	case res.Warning != "":
		outcome = observability.ClusterDegraded
		s.Logger.Warn().Str("warning", res.Warning).Int("complaints", len(records)).Msg("clustering degraded to noise")
	case len(res.Summaries) == 0:
		outcome = observability.ClusterEmpty
	}
	s.Metrics.ClusterRun(outcome)

	report := ClusterReport{
		Points:     clusterPoints(hotspot.ToPoints(records), res.Assignment),
		Clusters:   res.Clusters(),
		NoiseCount: res.NoiseCount,
		Warning:    res.Warning,
	}
	report.Recommendations = Recommendations(report.Clusters)
	return report, nil
}

// Recommendations turns cluster summaries into the advice shown next to the
// heatmap.
func Recommendations(clusters []hotspot.ClusterSummary) []string {
	large, critical := 0, 0
	for _, c := range clusters {
		if c.ComplaintCount >= 3 {
			large++
		}
		if c.DominantSeverity == models.SeverityCritical {
			critical++
		}
	}

	out := []string{}
	if large > 0 {
		out = append(out, fmt.Sprintf("%d areas require immediate attention (3+ complaints in same location)", large))
	}
	if critical > 0 {
		out = append(out, fmt.Sprintf("%d clusters have critical severity issues", critical))
	}
	if len(out) == 0 {
		out = append(out, "All issues are well-distributed. No major hotspots detected!")
	}
	return out
}

func clusterPoints(points []hotspot.Point, assignment hotspot.Assignment) []ClusterPoint {
	out := make([]ClusterPoint, 0, len(points))
	for _, p := range points {
		out = append(out, ClusterPoint{
			ID:        p.ID,
			Latitude:  p.Lat,
			Longitude: p.Lon,
			Severity:  p.Severity,
			Category:  p.Category,
			Cluster:   assignment[p.ID],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
