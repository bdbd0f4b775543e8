package models

import (
	"strings"
	"time"
)

const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

const (
	StatusUnresolved = "unresolved"
	StatusResolved   = "resolved"
)

const (
	AreaLow      = "low"
	AreaNormal   = "normal"
	AreaHigh     = "high"
	AreaCritical = "critical"
)

// Complaint is a citizen complaint as stored by the record store. Latitude and
// Longitude are either both set or both nil.
type Complaint struct {
	ID             int64    `json:"id"`
	Category       string   `json:"category"`
	Severity       string   `json:"severity"`
	Description    string   `json:"description"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	AreaName       string   `json:"area_name"`
	Timestamp      string   `json:"timestamp"`
	Status         string   `json:"status"`
	AreaImportance string   `json:"area_importance"`
}

func (c Complaint) HasLocation() bool {
	return c.Latitude != nil && c.Longitude != nil
}

type OfficerAction struct {
	ID          int64     `json:"id"`
	OfficerID   string    `json:"officer_id"`
	ComplaintID int64     `json:"complaint_id"`
	Action      string    `json:"action"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

type CountByKey struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type Analytics struct {
	TotalComplaints int          `json:"total_complaints"`
	ByCategory      []CountByKey `json:"by_category"`
	ByStatus        []CountByKey `json:"by_status"`
	BySeverity      []CountByKey `json:"by_severity"`
	RecentTrends    []CountByKey `json:"recent_trends"`
}

// NormalizeAreaImportance maps absent or unrecognized values to "normal".
func NormalizeAreaImportance(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case AreaLow, AreaNormal, AreaHigh, AreaCritical:
		return v
	default:
		return AreaNormal
	}
}

func IsValidSeverity(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}
