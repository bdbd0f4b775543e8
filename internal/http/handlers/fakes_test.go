package handlers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/fixmycity/backend/internal/db"
	"github.com/fixmycity/backend/internal/geocode"
	"github.com/fixmycity/backend/internal/hotspot"
	"github.com/fixmycity/backend/internal/models"
	"github.com/fixmycity/backend/internal/service"
)

var testNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

// memStore is an in-memory stand-in for db.Store.
type memStore struct {
	mu         sync.Mutex
	complaints []models.Complaint
	actions    []models.OfficerAction
	pingErr    error
	lastFilter db.ComplaintFilter
}

func (m *memStore) Ping(context.Context) error { return m.pingErr }

func (m *memStore) InsertComplaint(_ context.Context, c models.Complaint, submittedAt time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = int64(len(m.complaints) + 1)
	c.Timestamp = db.FormatTimestamp(submittedAt)
	m.complaints = append(m.complaints, c)
	return c.ID, nil
}

func (m *memStore) ListComplaints(_ context.Context, f db.ComplaintFilter) ([]models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = f
	out := []models.Complaint{}
	for i := len(m.complaints) - 1; i >= 0; i-- {
		c := m.complaints[i]
		if f.Category != "" && c.Category != f.Category {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *memStore) ListGeolocatedComplaints(context.Context) ([]models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Complaint{}
	for _, c := range m.complaints {
		if c.HasLocation() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) SetComplaintStatus(_ context.Context, id int64, status, officerID, notes string) (models.OfficerAction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.complaints {
		if m.complaints[i].ID == id {
			m.complaints[i].Status = status
			a := models.OfficerAction{
				ID:          int64(len(m.actions) + 1),
				OfficerID:   officerID,
				ComplaintID: id,
				Action:      status,
				Notes:       notes,
				CreatedAt:   testNow,
			}
			m.actions = append(m.actions, a)
			return a, nil
		}
	}
	return models.OfficerAction{}, db.ErrNotFound
}

func (m *memStore) ListOfficerActions(_ context.Context, officerID string) ([]models.OfficerAction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.OfficerAction{}
	for _, a := range m.actions {
		if a.OfficerID == officerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) Analytics(context.Context) (models.Analytics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.Analytics{
		TotalComplaints: len(m.complaints),
		ByCategory:      []models.CountByKey{},
		ByStatus:        []models.CountByKey{},
		BySeverity:      []models.CountByKey{},
		RecentTrends:    []models.CountByKey{},
	}, nil
}

type stubGeocoder struct{}

func (stubGeocoder) Geocode(_ context.Context, query string) (geocode.Result, error) {
	if query == "T Nagar, Chennai, India" {
		return geocode.Result{Lat: 13.0418, Lon: 80.2341}, nil
	}
	return geocode.Result{}, geocode.ErrNotFound
}

var errBoom = errors.New("boom")

func newTestHandler(store *memStore) *Handler {
	clock := clockwork.NewFakeClockAt(testNow)
	engine, err := hotspot.New(hotspot.Config{Precision: 2, Workers: 2, Clock: clock})
	if err != nil {
		panic(err)
	}
	logger := zerolog.Nop()
	resolver := &geocode.Resolver{
		Geocoder:   stubGeocoder{},
		City:       "Chennai",
		Country:    "India",
		DefaultLat: 13.0827,
		DefaultLon: 80.2707,
		Logger:     logger,
	}
	return &Handler{
		Store: store,
		Complaints: &service.ComplaintService{
			Store:    store,
			Resolver: resolver,
			Clock:    clock,
			Logger:   logger,
		},
		Hotspots: &service.HotspotService{
			Source: store,
			Engine: engine,
			Logger: logger,
		},
		Resolver:  resolver,
		Validator: validator.New(),
		Logger:    logger,
		Defaults:  Defaults{TopZones: 5, ClusterEpsKm: 0.5, ClusterMinSamples: 2},
	}
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthz", h.Healthz)
	api := r.Group("/api")
	api.POST("/complaints", h.CreateComplaint)
	api.GET("/complaints", h.ListComplaints)
	api.GET("/complaints/priority-zones", h.PriorityZones)
	api.GET("/complaints/clusters", h.Clusters)
	api.GET("/analytics", h.Analytics)
	api.POST("/geocode", h.Geocode)
	api.POST("/complaints/:id/resolve", h.ResolveComplaint)
	api.POST("/complaints/:id/unresolve", h.UnresolveComplaint)
	api.GET("/officer/:officer_id/actions", h.OfficerActions)
	return r
}
