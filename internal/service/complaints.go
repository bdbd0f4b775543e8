package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/fixmycity/backend/internal/db"
	"github.com/fixmycity/backend/internal/geo"
	"github.com/fixmycity/backend/internal/geocode"
	"github.com/fixmycity/backend/internal/models"
)

var (
	ErrMissingLocation   = errors.New("provide latitude/longitude or area_name")
	ErrInvalidCoordinate = errors.New("latitude must be within [-90, 90] and longitude within [-180, 180]")
)

type ComplaintStore interface {
	InsertComplaint(ctx context.Context, c models.Complaint, submittedAt time.Time) (int64, error)
	SetComplaintStatus(ctx context.Context, complaintID int64, status, officerID, notes string) (models.OfficerAction, error)
}

type NewComplaint struct {
	Category       string
	Severity       string
	Description    string
	Latitude       *float64
	Longitude      *float64
	AreaName       string
	AreaImportance string
}

type ComplaintService struct {
	Store    ComplaintStore
	Resolver *geocode.Resolver
	Clock    clockwork.Clock
	Logger   zerolog.Logger
}

// Create stores a new unresolved complaint. When the coordinates are
// incomplete the area name is geocoded, falling back to the default city
// coordinate.
func (s *ComplaintService) Create(ctx context.Context, in NewComplaint) (models.Complaint, error) {
	area := strings.TrimSpace(in.AreaName)
	hasCoords := in.Latitude != nil && in.Longitude != nil
	if !hasCoords && area == "" {
		return models.Complaint{}, ErrMissingLocation
	}

	c := models.Complaint{
		Category:       strings.TrimSpace(in.Category),
		Severity:       strings.ToLower(strings.TrimSpace(in.Severity)),
		Description:    strings.TrimSpace(in.Description),
		AreaName:       area,
		Status:         models.StatusUnresolved,
		AreaImportance: models.NormalizeAreaImportance(in.AreaImportance),
	}

	if hasCoords {
		if !geo.ValidCoordinate(*in.Latitude, *in.Longitude) {
			return models.Complaint{}, ErrInvalidCoordinate
		}
		lat, lon := *in.Latitude, *in.Longitude
		c.Latitude, c.Longitude = &lat, &lon
	} else {
		res := s.Resolver.Resolve(ctx, area, "")
		c.Latitude, c.Longitude = &res.Latitude, &res.Longitude
		if res.UsedDefault {
			s.Logger.Info().Str("area", area).Msg("using default coordinates for complaint")
		}
	}

	now := s.clock().Now().UTC()
	id, err := s.Store.InsertComplaint(ctx, c, now)
	if err != nil {
		return models.Complaint{}, err
	}
	c.ID = id
	c.Timestamp = db.FormatTimestamp(now)

	s.Logger.Info().Int64("complaint_id", id).Str("category", c.Category).Str("severity", c.Severity).Msg("complaint created")
	return c, nil
}

// SetStatus moves a complaint to resolved or unresolved on behalf of an
// officer.
func (s *ComplaintService) SetStatus(ctx context.Context, complaintID int64, status, officerID, notes string) (models.OfficerAction, error) {
	action, err := s.Store.SetComplaintStatus(ctx, complaintID, status, officerID, strings.TrimSpace(notes))
	if err != nil {
		return models.OfficerAction{}, err
	}
	s.Logger.Info().Int64("complaint_id", complaintID).Str("officer_id", officerID).Str("status", status).Msg("complaint status changed")
	return action, nil
}

func (s *ComplaintService) clock() clockwork.Clock {
	if s.Clock == nil {
		return clockwork.NewRealClock()
	}
	return s.Clock
}
