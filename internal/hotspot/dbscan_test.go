package hotspot

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marinaPoints() []Point {
	return []Point{
		{ID: 4, Lat: 13.1277, Lon: 80.2707, Severity: "low", Category: "streetlight"},
		{ID: 1, Lat: 13.0827, Lon: 80.2707, Severity: "high", Category: "pothole"},
		{ID: 3, Lat: 13.0830, Lon: 80.2720, Severity: "critical", Category: "garbage"},
		{ID: 2, Lat: 13.0840, Lon: 80.2715, Severity: "high", Category: "pothole"},
	}
}

func TestCluster_GroupsNearbyPoints(t *testing.T) {
	got, warning, err := Cluster(marinaPoints(), 0.5, 2)
	require.NoError(t, err)
	assert.Empty(t, warning)

	assert.Equal(t, Label(0), got[1])
	assert.Equal(t, Label(0), got[2])
	assert.Equal(t, Label(0), got[3])
	assert.Equal(t, Noise, got[4])
}

func TestCluster_SeparateGroupsGetSequentialLabels(t *testing.T) {
	points := append(marinaPoints(),
		Point{ID: 10, Lat: 12.9716, Lon: 80.2209},
		Point{ID: 11, Lat: 12.9720, Lon: 80.2212},
	)

	got, _, err := Cluster(points, 0.5, 2)
	require.NoError(t, err)
	assert.Equal(t, Label(0), got[1])
	assert.Equal(t, Label(1), got[10])
	assert.Equal(t, Label(1), got[11])
	assert.Equal(t, Noise, got[4])
}

func TestCluster_MinSamplesCountsThePointItself(t *testing.T) {
	points := []Point{
		{ID: 1, Lat: 13.0827, Lon: 80.2707},
		{ID: 2, Lat: 13.0830, Lon: 80.2710},
	}

	got, _, err := Cluster(points, 0.5, 2)
	require.NoError(t, err)
	assert.Equal(t, Label(0), got[1])
	assert.Equal(t, Label(0), got[2])

	got, _, err = Cluster(points, 0.5, 3)
	require.NoError(t, err)
	assert.Equal(t, Noise, got[1])
	assert.Equal(t, Noise, got[2])
}

func TestCluster_TooFewPointsIsAllNoise(t *testing.T) {
	got, warning, err := Cluster([]Point{{ID: 7, Lat: 13.08, Lon: 80.27}}, 0.5, 1)
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Equal(t, Assignment{7: Noise}, got)

	got, _, err = Cluster(nil, 0.5, 2)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCluster_InvalidCoordinateDegradesWithWarning(t *testing.T) {
	points := append(marinaPoints(), Point{ID: 9, Lat: math.NaN(), Lon: 80.27})

	got, warning, err := Cluster(points, 0.5, 2)
	require.NoError(t, err)
	assert.Contains(t, warning, "clustering failed")
	require.Len(t, got, 5)
	for id, label := range got {
		assert.Equal(t, Noise, label, "complaint %d", id)
	}
}

func TestCluster_RejectsBadParameters(t *testing.T) {
	cases := []struct {
		name  string
		eps   float64
		min   int
		field string
	}{
		{"zero eps", 0, 2, "eps_km"},
		{"negative eps", -1, 2, "eps_km"},
		{"nan eps", math.NaN(), 2, "eps_km"},
		{"zero min samples", 0.5, 0, "min_samples"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Cluster(marinaPoints(), tc.eps, tc.min)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidParameter))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestCluster_IndependentOfInputOrder(t *testing.T) {
	points := marinaPoints()
	first, _, err := Cluster(points, 0.5, 2)
	require.NoError(t, err)

	reversed := make([]Point, len(points))
	for i, p := range points {
		reversed[len(points)-1-i] = p
	}
	second, _, err := Cluster(reversed, 0.5, 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCluster_ChainsThroughCorePoints(t *testing.T) {
	// Neighbors are about 0.4 km apart along a meridian; points two steps
	// apart are about 0.8 km apart.
	points := []Point{
		{ID: 1, Lat: 13.0000, Lon: 80.27},
		{ID: 2, Lat: 13.0036, Lon: 80.27},
		{ID: 3, Lat: 13.0072, Lon: 80.27},
		{ID: 4, Lat: 13.0108, Lon: 80.27},
		{ID: 5, Lat: 13.0144, Lon: 80.27},
	}

	got, warning, err := Cluster(points, 0.5, 3)
	require.NoError(t, err)
	assert.Empty(t, warning)
	// 1 and 5 have only one neighbor each, so they are border points. 1 is
	// visited first, marked noise, then absorbed when 2 expands.
	assert.Equal(t, Assignment{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, got)
}

func TestCluster_BorderPointJoinsCluster(t *testing.T) {
	points := []Point{
		// Within 0.5 km of 4 only.
		{ID: 1, Lat: 13.0045, Lon: 80.2705},
		{ID: 2, Lat: 13.0000, Lon: 80.2700},
		{ID: 3, Lat: 13.0000, Lon: 80.2710},
		{ID: 4, Lat: 13.0010, Lon: 80.2705},
		{ID: 5, Lat: 13.0500, Lon: 80.2700},
	}

	got, _, err := Cluster(points, 0.5, 3)
	require.NoError(t, err)
	assert.Equal(t, Assignment{1: 0, 2: 0, 3: 0, 4: 0, 5: Noise}, got)

	// Without its core neighbor the same point stays noise.
	got, _, err = Cluster([]Point{points[0], points[1], points[2], points[4]}, 0.5, 3)
	require.NoError(t, err)
	assert.Equal(t, Noise, got[1])
}

func TestCluster_PanicDegradesWithWarning(t *testing.T) {
	boom := func(lat1, lon1, lat2, lon2 float64) float64 { panic("boom") }

	got, warning, err := cluster(marinaPoints(), 0.5, 2, boom)
	require.NoError(t, err)
	assert.Equal(t, "clustering failed: panic in distance computation: boom; showing all points as individual complaints", warning)
	assert.Equal(t, Assignment{1: Noise, 2: Noise, 3: Noise, 4: Noise}, got)
}

func TestCluster_UndefinedDistanceDegradesWithWarning(t *testing.T) {
	nan := func(lat1, lon1, lat2, lon2 float64) float64 { return math.NaN() }

	got, warning, err := cluster(marinaPoints(), 0.5, 2, nan)
	require.NoError(t, err)
	assert.Contains(t, warning, "is undefined")
	assert.Len(t, got, 4)
	for id, label := range got {
		assert.Equal(t, Noise, label, "complaint %d", id)
	}
}
