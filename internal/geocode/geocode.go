package geocode

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fixmycity/backend/internal/observability"
)

var ErrNotFound = errors.New("geocode not found")

type Result struct {
	Lat         float64
	Lon         float64
	DisplayName string
	Confidence  float64
}

type Geocoder interface {
	Geocode(ctx context.Context, query string) (Result, error)
}

// BuildQuery joins the non-empty parts as "area, city, country".
func BuildQuery(area, city, country string) string {
	parts := []string{}
	for _, p := range []string{area, city, country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Resolution is the outcome of Resolver.Resolve. UsedDefault is set when the
// lookup failed and the fallback coordinate was substituted.
type Resolution struct {
	AreaName    string  `json:"area_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	UsedDefault bool    `json:"-"`
}

// Resolver turns free-text area names into coordinates. It never fails: when
// the geocoder errors the default coordinate is returned instead.
type Resolver struct {
	Geocoder   Geocoder
	City       string
	Country    string
	DefaultLat float64
	DefaultLon float64
	Metrics    *observability.Metrics
	Logger     zerolog.Logger
}

// Resolve looks up area within city. An empty city falls back to r.City.
func (r *Resolver) Resolve(ctx context.Context, area, city string) Resolution {
	area = strings.TrimSpace(area)
	if strings.TrimSpace(city) == "" {
		city = r.City
	}
	out := Resolution{AreaName: area}

	if r.Geocoder != nil && area != "" {
		res, err := r.Geocoder.Geocode(ctx, BuildQuery(area, city, r.Country))
		if err == nil {
			r.Logger.Info().Str("area", area).Float64("lat", res.Lat).Float64("lon", res.Lon).Msg("geocoded area")
			out.Latitude, out.Longitude = res.Lat, res.Lon
			r.Metrics.GeocodeOutcome(false)
			return out
		}
		r.Logger.Warn().Err(err).Str("area", area).Msg("geocoding failed, using default coordinates")
	}

	out.Latitude, out.Longitude = r.DefaultLat, r.DefaultLon
	out.UsedDefault = true
	r.Metrics.GeocodeOutcome(true)
	return out
}
