package hotspot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixmycity/backend/internal/models"
)

func TestAggregate_SameCell(t *testing.T) {
	records := []models.Complaint{
		complaintAt(1, 13.0821, 80.2701),
		complaintAt(2, 13.0829, 80.2704),
		complaintAt(3, 13.09, 80.27),
	}

	zones := Aggregate(records, DefaultPrecision)
	require.Len(t, zones, 2)

	assert.Equal(t, GridKey{Lat: 13.08, Lon: 80.27}, zones[0].Key)
	assert.Len(t, zones[0].Complaints, 2)
	assert.Equal(t, GridKey{Lat: 13.09, Lon: 80.27}, zones[1].Key)
	assert.Len(t, zones[1].Complaints, 1)
}

func TestAggregate_SkipsRecordsWithoutCoordinates(t *testing.T) {
	records := []models.Complaint{
		complaintAt(1, 13.0821, 80.2701),
		{ID: 2, Category: "garbage", Severity: models.SeverityHigh},
	}

	zones := Aggregate(records, DefaultPrecision)
	require.Len(t, zones, 1)
	assert.Equal(t, int64(1), zones[0].Complaints[0].ID)
}

func TestAggregate_Empty(t *testing.T) {
	zones := Aggregate(nil, DefaultPrecision)
	assert.NotNil(t, zones)
	assert.Empty(t, zones)
}

func TestAggregate_Deterministic(t *testing.T) {
	records := []models.Complaint{
		complaintAt(1, 13.05, 80.21),
		complaintAt(2, 12.99, 80.25),
		complaintAt(3, 13.05, 80.20),
		complaintAt(4, 13.10, 80.29),
	}

	first := Aggregate(records, DefaultPrecision)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Aggregate(records, DefaultPrecision))
	}
	assert.Equal(t, GridKey{Lat: 12.99, Lon: 80.25}, first[0].Key)
	assert.Equal(t, GridKey{Lat: 13.05, Lon: 80.2}, first[1].Key)
	assert.Equal(t, GridKey{Lat: 13.05, Lon: 80.21}, first[2].Key)
}

func TestRoundCoord(t *testing.T) {
	assert.Equal(t, 13.08, RoundCoord(13.0821, 2))
	assert.Equal(t, 80.27, RoundCoord(80.2704, 2))
	assert.Equal(t, 13.1, RoundCoord(13.0827, 1))
	assert.Equal(t, 0.0, RoundCoord(-0.001, 2))
	assert.Equal(t, -12.35, RoundCoord(-12.3456, 2))
}

func TestRoundCoord_UsesExactBinaryValue(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		// Each literal is stored just below the half, so it rounds down even
		// though in*100 evaluates to exactly ...5.
		{2.675, 2.67},
		{80.275, 80.27},
		{1.115, 1.11},
		// Exact halves round to even.
		{0.125, 0.12},
		{0.375, 0.38},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RoundCoord(tc.in, 2), "%v", tc.in)
	}
}

func TestAggregate_BoundaryValueStaysInLowerCell(t *testing.T) {
	records := []models.Complaint{
		complaintAt(1, 13.08, 80.275),
		complaintAt(2, 13.08, 80.2701),
	}

	zones := Aggregate(records, DefaultPrecision)
	require.Len(t, zones, 1)
	assert.Equal(t, GridKey{Lat: 13.08, Lon: 80.27}, zones[0].Key)
	assert.Len(t, zones[0].Complaints, 2)
}
