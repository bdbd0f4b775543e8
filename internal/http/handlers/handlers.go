package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/fixmycity/backend/internal/db"
	"github.com/fixmycity/backend/internal/geocode"
	"github.com/fixmycity/backend/internal/hotspot"
	"github.com/fixmycity/backend/internal/models"
	"github.com/fixmycity/backend/internal/service"
)

// Store is the read side of the record store used directly by handlers.
type Store interface {
	Ping(ctx context.Context) error
	ListComplaints(ctx context.Context, f db.ComplaintFilter) ([]models.Complaint, error)
	ListOfficerActions(ctx context.Context, officerID string) ([]models.OfficerAction, error)
	Analytics(ctx context.Context) (models.Analytics, error)
}

// Defaults are the engine parameters applied when a request omits them.
type Defaults struct {
	TopZones          int
	ClusterEpsKm      float64
	ClusterMinSamples int
}

type Handler struct {
	Store      Store
	Complaints *service.ComplaintService
	Hotspots   *service.HotspotService
	Resolver   *geocode.Resolver
	Validator  *validator.Validate
	Logger     zerolog.Logger
	Defaults   Defaults
}

// ErrorResponse documents the error envelope for swagger.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details,omitempty"`
	} `json:"error"`
}

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} ErrorResponse
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// writeServiceError maps domain errors onto HTTP statuses.
func (h *Handler) writeServiceError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, hotspot.ErrInvalidParameter):
		writeError(c, http.StatusBadRequest, "INVALID_PARAMETER", err.Error(), nil)
	case errors.Is(err, service.ErrMissingLocation), errors.Is(err, service.ErrInvalidCoordinate):
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, db.ErrNotFound):
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Complaint not found", nil)
	default:
		h.Logger.Error().Err(err).Str("path", c.FullPath()).Msg(message)
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, err.Error())
	}
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func queryFloat(c *gin.Context, name string, def float64) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.ParseFloat(raw, 64)
}
