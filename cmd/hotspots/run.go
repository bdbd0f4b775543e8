package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/fixmycity/backend/internal/hotspot"
	"github.com/fixmycity/backend/internal/models"
	"github.com/fixmycity/backend/internal/service"
)

type rankOptions struct {
	Top       int
	Precision int
	Now       string
}

type clusterOptions struct {
	EpsKm      float64
	MinSamples int
}

// loadSnapshot reads a JSON array of complaints from path, or from stdin when
// path is "-".
func loadSnapshot(stdin io.Reader, path string) ([]models.Complaint, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening snapshot: %w", err)
		}
		defer f.Close()
		r = f
	}

	var records []models.Complaint
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return records, nil
}

func runRank(stdin io.Reader, out io.Writer, path string, opts rankOptions) error {
	records, err := loadSnapshot(stdin, path)
	if err != nil {
		return err
	}

	clock := clockwork.NewRealClock()
	if opts.Now != "" {
		now, err := time.Parse(time.RFC3339, opts.Now)
		if err != nil {
			return fmt.Errorf("parsing --now: %w", err)
		}
		clock = clockwork.NewFakeClockAt(now)
	}

	engine, err := hotspot.New(hotspot.Config{Precision: opts.Precision, Clock: clock})
	if err != nil {
		return err
	}
	zones, err := engine.RankZones(records, opts.Top)
	if err != nil {
		return err
	}
	return writeJSON(out, zones)
}

func runCluster(stdin io.Reader, out, errOut io.Writer, path string, opts clusterOptions) error {
	records, err := loadSnapshot(stdin, path)
	if err != nil {
		return err
	}

	engine, err := hotspot.New(hotspot.Config{Precision: hotspot.DefaultPrecision})
	if err != nil {
		return err
	}
	res, err := engine.ClusterComplaints(records, opts.EpsKm, opts.MinSamples)
	if err != nil {
		return err
	}
	if res.Warning != "" {
		fmt.Fprintln(errOut, "warning:", res.Warning)
	}

	clusters := res.Clusters()
	return writeJSON(out, struct {
		Clusters        []hotspot.ClusterSummary `json:"clusters"`
		NoiseCount      int                      `json:"noise_count"`
		Warning         string                   `json:"warning,omitempty"`
		Recommendations []string                 `json:"recommendations"`
	}{
		Clusters:        clusters,
		NoiseCount:      res.NoiseCount,
		Warning:         res.Warning,
		Recommendations: service.Recommendations(clusters),
	})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
