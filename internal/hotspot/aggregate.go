package hotspot

import (
	"sort"
	"strconv"

	"github.com/fixmycity/backend/internal/models"
)

// DefaultPrecision rounds coordinates to 2 decimal places, roughly 1.1 km cells.
const DefaultPrecision = 2

const maxPrecision = 6

// GridKey identifies a zone by its rounded coordinates.
type GridKey struct {
	Lat float64
	Lon float64
}

// Zone is a grid cell together with the complaints that fall inside it.
type Zone struct {
	Key        GridKey
	Complaints []models.Complaint
}

// RoundCoord rounds v to the given number of decimal places. Rounding works on
// the exact binary value of v, so 2.675 (stored as 2.67499...) becomes 2.67.
// Exact halves round to even.
func RoundCoord(v float64, precision int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', precision, 64), 64)
	if err != nil {
		return v
	}
	if r == 0 {
		// Collapse -0 so it prints the same as 0.
		return 0
	}
	return r
}

func KeyFor(lat, lon float64, precision int) GridKey {
	return GridKey{Lat: RoundCoord(lat, precision), Lon: RoundCoord(lon, precision)}
}

// Aggregate buckets complaints into grid cells. Complaints without coordinates
// are skipped. Zones come back ordered by latitude then longitude, and members
// keep their input order.
func Aggregate(records []models.Complaint, precision int) []Zone {
	buckets := map[GridKey][]models.Complaint{}
	for _, r := range records {
		if !r.HasLocation() {
			continue
		}
		key := KeyFor(*r.Latitude, *r.Longitude, precision)
		buckets[key] = append(buckets[key], r)
	}

	zones := make([]Zone, 0, len(buckets))
	for key, members := range buckets {
		zones = append(zones, Zone{Key: key, Complaints: members})
	}
	sort.Slice(zones, func(i, j int) bool {
		return lessKey(zones[i].Key, zones[j].Key)
	})
	return zones
}

func lessKey(a, b GridKey) bool {
	if a.Lat == b.Lat {
		return a.Lon < b.Lon
	}
	return a.Lat < b.Lat
}
