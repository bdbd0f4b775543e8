package hotspot

import (
	"fmt"
	"math"
	"sort"

	"github.com/fixmycity/backend/internal/geo"
)

// Label identifies a cluster. Noise marks a point that belongs to none.
type Label int

const (
	Noise     Label = -1
	unvisited Label = -2
)

// angleFunc returns the central angle in radians between two points given in
// radians.
type angleFunc func(lat1, lon1, lat2, lon2 float64) float64

// Assignment maps complaint id to cluster label.
type Assignment map[int64]Label

// Point is a complaint reduced to what clustering and summarizing need.
type Point struct {
	ID       int64
	Lat      float64
	Lon      float64
	Severity string
	Category string
}

// Cluster runs DBSCAN over great-circle distance. epsKm is the neighborhood
// radius in kilometers and minSamples counts the point itself.
//
// Points are visited in ascending id order, so the same input always yields the
// same labels. A border point within reach of several clusters joins the first
// one that expands into it; that choice is inherent to DBSCAN.
//
// When clustering cannot be carried out (fewer than two points, fewer points
// than minSamples) every point is noise. When the distance computation fails
// every point is noise and the returned warning is non-empty.
func Cluster(points []Point, epsKm float64, minSamples int) (Assignment, string, error) {
	return cluster(points, epsKm, minSamples, geo.CentralAngle)
}

func cluster(points []Point, epsKm float64, minSamples int, angle angleFunc) (Assignment, string, error) {
	if err := validateClusterParams(epsKm, minSamples); err != nil {
		return nil, "", err
	}

	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	if len(sorted) < 2 || len(sorted) < minSamples {
		return allNoise(sorted), "", nil
	}

	labels, err := dbscan(sorted, geo.KmToRadians(epsKm), minSamples, angle)
	if err != nil {
		return allNoise(sorted), fmt.Sprintf("clustering failed: %v; showing all points as individual complaints", err), nil
	}

	out := make(Assignment, len(sorted))
	for i, p := range sorted {
		out[p.ID] = labels[i]
	}
	return out, "", nil
}

func validateClusterParams(epsKm float64, minSamples int) error {
	if math.IsNaN(epsKm) || math.IsInf(epsKm, 0) || epsKm <= 0 {
		return invalid("cluster", "eps_km", "must be a positive number")
	}
	if minSamples < 1 {
		return invalid("cluster", "min_samples", "must be at least 1")
	}
	return nil
}

func dbscan(points []Point, epsRad float64, minSamples int, angle angleFunc) (labels []Label, err error) {
	defer func() {
		if r := recover(); r != nil {
			labels, err = nil, fmt.Errorf("panic in distance computation: %v", r)
		}
	}()

	neighbors, err := neighborhoods(points, epsRad, angle)
	if err != nil {
		return nil, err
	}

	labels = make([]Label, len(points))
	for i := range labels {
		labels[i] = unvisited
	}

	next := Label(0)
	for i := range points {
		if labels[i] != unvisited {
			continue
		}
		if len(neighbors[i]) < minSamples {
			labels[i] = Noise
			continue
		}

		c := next
		next++
		labels[i] = c
		queue := append([]int(nil), neighbors[i]...)
		for k := 0; k < len(queue); k++ {
			q := queue[k]
			if labels[q] == Noise {
				labels[q] = c
			}
			if labels[q] != unvisited {
				continue
			}
			labels[q] = c
			if len(neighbors[q]) >= minSamples {
				queue = append(queue, neighbors[q]...)
			}
		}
	}
	return labels, nil
}

// neighborhoods returns, for every point, the indices of all points within
// epsRad of it, itself included.
func neighborhoods(points []Point, epsRad float64, angle angleFunc) ([][]int, error) {
	lat := make([]float64, len(points))
	lon := make([]float64, len(points))
	for i, p := range points {
		if !geo.ValidCoordinate(p.Lat, p.Lon) {
			return nil, fmt.Errorf("invalid coordinate for complaint %d: (%v, %v)", p.ID, p.Lat, p.Lon)
		}
		lat[i] = geo.Radians(p.Lat)
		lon[i] = geo.Radians(p.Lon)
	}

	out := make([][]int, len(points))
	for i := range points {
		out[i] = append(out[i], i)
	}
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			d := angle(lat[i], lon[i], lat[j], lon[j])
			if math.IsNaN(d) {
				return nil, fmt.Errorf("distance between complaints %d and %d is undefined", points[i].ID, points[j].ID)
			}
			if d <= epsRad {
				out[i] = append(out[i], j)
				out[j] = append(out[j], i)
			}
		}
	}
	return out, nil
}

func allNoise(points []Point) Assignment {
	out := make(Assignment, len(points))
	for _, p := range points {
		out[p.ID] = Noise
	}
	return out
}
