package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixmycity/backend/internal/hotspot"
	"github.com/fixmycity/backend/internal/models"
	"github.com/fixmycity/backend/internal/service"
)

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[ErrorResponse](t, w).Error.Code
}

func seed(t *testing.T, r *gin.Engine) {
	t.Helper()
	for _, body := range []map[string]any{
		{"category": "pothole", "severity": "critical", "description": "a", "latitude": 13.0827, "longitude": 80.2707, "area_importance": "high"},
		{"category": "pothole", "severity": "high", "description": "b", "latitude": 13.0840, "longitude": 80.2715},
		{"category": "garbage", "severity": "critical", "description": "c", "latitude": 13.0830, "longitude": 80.2720},
		{"category": "streetlight", "severity": "low", "description": "d", "latitude": 13.1277, "longitude": 80.2707},
	} {
		w := do(t, r, http.MethodPost, "/api/complaints", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
}

func TestCreateComplaint(t *testing.T) {
	store := &memStore{}
	r := newTestRouter(newTestHandler(store))

	w := do(t, r, http.MethodPost, "/api/complaints", map[string]any{
		"category":    "pothole",
		"severity":    "High",
		"description": "Large pothole",
		"latitude":    13.05,
		"longitude":   80.25,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	got := decode[models.Complaint](t, w)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, models.SeverityHigh, got.Severity)
	assert.Equal(t, models.StatusUnresolved, got.Status)
	assert.Equal(t, models.AreaNormal, got.AreaImportance)
	assert.Equal(t, "2024-06-30T12:00:00Z", got.Timestamp)
}

func TestCreateComplaint_GeocodesAreaName(t *testing.T) {
	r := newTestRouter(newTestHandler(&memStore{}))

	w := do(t, r, http.MethodPost, "/api/complaints", map[string]any{
		"category": "garbage", "severity": "low", "description": "bin", "area_name": "T Nagar",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	got := decode[models.Complaint](t, w)
	require.True(t, got.HasLocation())
	assert.Equal(t, 13.0418, *got.Latitude)

	w = do(t, r, http.MethodPost, "/api/complaints", map[string]any{
		"category": "garbage", "severity": "low", "description": "bin", "area_name": "Atlantis",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	got = decode[models.Complaint](t, w)
	assert.Equal(t, 13.0827, *got.Latitude)
	assert.Equal(t, 80.2707, *got.Longitude)
}

func TestCreateComplaint_Validation(t *testing.T) {
	r := newTestRouter(newTestHandler(&memStore{}))

	cases := map[string]map[string]any{
		"missing severity": {"category": "pothole", "description": "x", "latitude": 13.0, "longitude": 80.0},
		"bad severity":     {"category": "pothole", "severity": "urgent", "description": "x", "latitude": 13.0, "longitude": 80.0},
		"no location":      {"category": "pothole", "severity": "low", "description": "x"},
		"bad latitude":     {"category": "pothole", "severity": "low", "description": "x", "latitude": 123.0, "longitude": 80.0},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/complaints", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
		})
	}
}

func TestListComplaints(t *testing.T) {
	store := &memStore{}
	r := newTestRouter(newTestHandler(store))
	seed(t, r)

	w := do(t, r, http.MethodGet, "/api/complaints?category=pothole&severity=HIGH&date_from=2024-06-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode[[]models.Complaint](t, w)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].ID, "newest first")

	assert.Equal(t, "high", store.lastFilter.Severity)
	require.NotNil(t, store.lastFilter.From)
	assert.Nil(t, store.lastFilter.To)

	w = do(t, r, http.MethodGet, "/api/complaints?date_to=not-a-date", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPriorityZones(t *testing.T) {
	r := newTestRouter(newTestHandler(&memStore{}))
	seed(t, r)

	w := do(t, r, http.MethodGet, "/api/complaints/priority-zones?top=1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	zones := decode[[]hotspot.ZoneResult](t, w)
	require.Len(t, zones, 1)
	assert.Equal(t, 13.08, zones[0].Latitude)
	assert.Equal(t, 80.27, zones[0].Longitude)
	assert.Equal(t, 3, zones[0].ComplaintCount)
	assert.Equal(t, models.SeverityCritical, zones[0].Severity)
	// 3*2 + 4*3 + 0 + 2*2
	assert.Equal(t, 22.0, zones[0].PriorityScore)

	w = do(t, r, http.MethodGet, "/api/complaints/priority-zones", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]hotspot.ZoneResult](t, w), 2)
}

func TestPriorityZones_EmptyStore(t *testing.T) {
	r := newTestRouter(newTestHandler(&memStore{}))

	w := do(t, r, http.MethodGet, "/api/complaints/priority-zones", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestPriorityZones_BadTop(t *testing.T) {
	r := newTestRouter(newTestHandler(&memStore{}))

	for _, q := range []string{"top=0", "top=-3", "top=abc"} {
		w := do(t, r, http.MethodGet, "/api/complaints/priority-zones?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		assert.Equal(t, "INVALID_PARAMETER", errorCode(t, w), q)
	}
}

func TestClusters(t *testing.T) {
	r := newTestRouter(newTestHandler(&memStore{}))
	seed(t, r)

	w := do(t, r, http.MethodGet, "/api/complaints/clusters?eps_km=0.5&min_samples=2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	report := decode[service.ClusterReport](t, w)
	assert.Equal(t, 1, report.NoiseCount)
	require.Len(t, report.Clusters, 1)
	assert.Equal(t, []int64{1, 2, 3}, report.Clusters[0].ComplaintIDs)
	assert.Equal(t, hotspot.PriorityHigh, report.Clusters[0].PriorityLevel)
	assert.Len(t, report.Recommendations, 2)

	w = do(t, r, http.MethodGet, "/api/complaints/clusters?eps_km=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, r, http.MethodGet, "/api/complaints/clusters?min_samples=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveAndOfficerActions(t *testing.T) {
	store := &memStore{}
	r := newTestRouter(newTestHandler(store))
	seed(t, r)

	w := do(t, r, http.MethodPost, "/api/complaints/2/resolve", map[string]any{"officer_id": "off-1", "notes": "patched"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.StatusResolved, store.complaints[1].Status)

	w = do(t, r, http.MethodPost, "/api/complaints/2/unresolve", map[string]any{"officer_id": "off-1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusUnresolved, store.complaints[1].Status)

	w = do(t, r, http.MethodGet, "/api/officer/off-1/actions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	actions := decode[[]models.OfficerAction](t, w)
	require.Len(t, actions, 2)
	assert.Equal(t, models.StatusResolved, actions[0].Action)

	w = do(t, r, http.MethodPost, "/api/complaints/99/resolve", map[string]any{"officer_id": "off-1"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, r, http.MethodPost, "/api/complaints/abc/resolve", map[string]any{"officer_id": "off-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, r, http.MethodPost, "/api/complaints/2/resolve", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalytics(t *testing.T) {
	r := newTestRouter(newTestHandler(&memStore{}))
	seed(t, r)

	w := do(t, r, http.MethodGet, "/api/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, decode[models.Analytics](t, w).TotalComplaints)
}

func TestGeocode(t *testing.T) {
	r := newTestRouter(newTestHandler(&memStore{}))

	w := do(t, r, http.MethodPost, "/api/geocode", map[string]any{"area_name": "T Nagar"})
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[GeocodeResponse](t, w)
	assert.Equal(t, "success", got.Status)
	assert.Equal(t, 13.0418, got.Latitude)

	w = do(t, r, http.MethodPost, "/api/geocode", map[string]any{"area_name": "Atlantis"})
	got = decode[GeocodeResponse](t, w)
	assert.Equal(t, "default_used", got.Status)
	assert.Equal(t, 13.0827, got.Latitude)
	assert.NotEmpty(t, got.Message)

	w = do(t, r, http.MethodPost, "/api/geocode", map[string]any{"area_name": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
