package geo

import "math"

const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometers between two
// points given in degrees.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	return EarthRadiusKm * CentralAngle(Radians(lat1), Radians(lon1), Radians(lat2), Radians(lon2))
}

// CentralAngle returns the angle in radians subtended at the Earth's center by
// two points given in radians.
func CentralAngle(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat2 - lat1
	dLon := lon2 - lon1

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	// Rounding can push a slightly above 1 for antipodal points.
	a = math.Min(1, math.Max(0, a))
	return 2 * math.Asin(math.Sqrt(a))
}

// KmToRadians converts a surface distance into a central angle.
func KmToRadians(km float64) float64 {
	return km / EarthRadiusKm
}

func Radians(d float64) float64 {
	return d * math.Pi / 180
}

// ValidCoordinate reports whether lat/lon are finite and inside WGS-84 bounds.
func ValidCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
