package hotspot

import (
	"time"

	"github.com/fixmycity/backend/internal/models"
)

var fixedNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func complaintAt(id int64, lat, lon float64) models.Complaint {
	return models.Complaint{
		ID:             id,
		Category:       "pothole",
		Severity:       models.SeverityLow,
		Latitude:       &lat,
		Longitude:      &lon,
		Timestamp:      fixedNow.Format(time.RFC3339),
		Status:         models.StatusResolved,
		AreaImportance: models.AreaNormal,
	}
}

func daysAgo(n int) string {
	return fixedNow.Add(-time.Duration(n) * 24 * time.Hour).Format(time.RFC3339)
}
