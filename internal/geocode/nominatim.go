package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// NominatimGeocoder queries an OpenStreetMap Nominatim instance. Successful
// lookups are cached for the lifetime of the value and outgoing requests are
// spaced at least MinInterval apart, as the public instance requires.
type NominatimGeocoder struct {
	BaseURL        string
	UserAgent      string
	AcceptLanguage string
	MinInterval    time.Duration
	Client         *http.Client
	Clock          clockwork.Clock

	mu        sync.Mutex
	lastReqAt time.Time
	cache     map[string]Result
}

type nominatimItem struct {
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Importance  float64 `json:"importance"`
}

func (g *NominatimGeocoder) defaults() {
	if g.Client == nil {
		g.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if g.BaseURL == "" {
		g.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if g.UserAgent == "" {
		g.UserAgent = "FixMyCity/1.0"
	}
	if g.AcceptLanguage == "" {
		g.AcceptLanguage = "en-US,en;q=0.9"
	}
	if g.MinInterval <= 0 {
		g.MinInterval = time.Second
	}
	if g.Clock == nil {
		g.Clock = clockwork.NewRealClock()
	}
	if g.cache == nil {
		g.cache = map[string]Result{}
	}
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, query string) (Result, error) {
	g.mu.Lock()
	g.defaults()
	if cached, ok := g.cache[query]; ok {
		g.mu.Unlock()
		return cached, nil
	}
	wait := g.lastReqAt.Add(g.MinInterval).Sub(g.Clock.Now())
	if wait > 0 {
		g.mu.Unlock()
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-g.Clock.After(wait):
		}
		g.mu.Lock()
	}
	g.lastReqAt = g.Clock.Now()
	g.mu.Unlock()

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", "1")
	params.Set("accept-language", g.AcceptLanguage)
	endpoint := fmt.Sprintf("%s/search?%s", g.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("User-Agent", g.UserAgent)

	resp, err := g.Client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("nominatim http error: %s", resp.Status)
	}

	var items []nominatimItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return Result{}, err
	}
	result, err := parseNominatimItems(items)
	if err != nil {
		return Result{}, err
	}

	g.mu.Lock()
	g.cache[query] = result
	g.mu.Unlock()

	return result, nil
}

func parseNominatimItems(items []nominatimItem) (Result, error) {
	if len(items) == 0 {
		return Result{}, ErrNotFound
	}
	lat, err := strconv.ParseFloat(items[0].Lat, 64)
	if err != nil {
		return Result{}, fmt.Errorf("parse lat %q: %w", items[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(items[0].Lon, 64)
	if err != nil {
		return Result{}, fmt.Errorf("parse lon %q: %w", items[0].Lon, err)
	}
	if lat == 0 && lon == 0 && items[0].DisplayName == "" {
		return Result{}, ErrNotFound
	}
	return Result{
		Lat:         lat,
		Lon:         lon,
		DisplayName: items[0].DisplayName,
		Confidence:  items[0].Importance,
	}, nil
}
