package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fixmycity/backend/internal/db"
	"github.com/fixmycity/backend/internal/hotspot"
	"github.com/fixmycity/backend/internal/models"
	"github.com/fixmycity/backend/internal/service"
)

type CreateComplaintRequest struct {
	Category       string   `json:"category" validate:"required,max=100"`
	Severity       string   `json:"severity" validate:"required,oneof=low medium high critical"`
	Description    string   `json:"description" validate:"required,max=5000"`
	Latitude       *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude      *float64 `json:"longitude" validate:"omitempty,longitude"`
	AreaName       string   `json:"area_name" validate:"max=200"`
	AreaImportance string   `json:"area_importance"`
}

type StatusChangeRequest struct {
	OfficerID string `json:"officer_id" validate:"required,max=64"`
	Notes     string `json:"notes" validate:"max=2000"`
}

// @Summary Submit a complaint
// @Description Coordinates are optional when area_name is given; the area is then geocoded.
// @Tags complaints
// @Accept json
// @Produce json
// @Param body body CreateComplaintRequest true "Complaint"
// @Success 201 {object} models.Complaint
// @Failure 400 {object} ErrorResponse
// @Router /api/complaints [post]
func (h *Handler) CreateComplaint(c *gin.Context) {
	var req CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	req.Category = strings.TrimSpace(req.Category)
	req.Severity = strings.ToLower(strings.TrimSpace(req.Severity))
	req.Description = strings.TrimSpace(req.Description)
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	complaint, err := h.Complaints.Create(c.Request.Context(), service.NewComplaint{
		Category:       req.Category,
		Severity:       req.Severity,
		Description:    req.Description,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		AreaName:       req.AreaName,
		AreaImportance: req.AreaImportance,
	})
	if err != nil {
		h.writeServiceError(c, "Failed to create complaint", err)
		return
	}
	c.JSON(http.StatusCreated, complaint)
}

// @Summary List complaints
// @Tags complaints
// @Produce json
// @Param category query string false "Category"
// @Param severity query string false "Severity"
// @Param status query string false "Status"
// @Param date_from query string false "ISO-8601 lower bound"
// @Param date_to query string false "ISO-8601 upper bound"
// @Success 200 {array} models.Complaint
// @Router /api/complaints [get]
func (h *Handler) ListComplaints(c *gin.Context) {
	f := db.ComplaintFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Severity: strings.ToLower(strings.TrimSpace(c.Query("severity"))),
		Status:   strings.ToLower(strings.TrimSpace(c.Query("status"))),
	}
	for _, bound := range []struct {
		name string
		dst  **time.Time
	}{{"date_from", &f.From}, {"date_to", &f.To}} {
		raw := c.Query(bound.name)
		if raw == "" {
			continue
		}
		t, ok := hotspot.ParseTimestamp(raw)
		if !ok {
			writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid "+bound.name, raw)
			return
		}
		*bound.dst = &t
	}

	items, err := h.Store.ListComplaints(c.Request.Context(), f)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list complaints", err.Error())
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Mark a complaint resolved
// @Tags officer
// @Accept json
// @Produce json
// @Param id path int true "Complaint ID"
// @Param body body StatusChangeRequest true "Officer"
// @Success 200 {object} models.OfficerAction
// @Failure 404 {object} ErrorResponse
// @Router /api/complaints/{id}/resolve [post]
func (h *Handler) ResolveComplaint(c *gin.Context) {
	h.changeStatus(c, models.StatusResolved)
}

// @Summary Mark a complaint unresolved
// @Tags officer
// @Accept json
// @Produce json
// @Param id path int true "Complaint ID"
// @Param body body StatusChangeRequest true "Officer"
// @Success 200 {object} models.OfficerAction
// @Failure 404 {object} ErrorResponse
// @Router /api/complaints/{id}/unresolve [post]
func (h *Handler) UnresolveComplaint(c *gin.Context) {
	h.changeStatus(c, models.StatusUnresolved)
}

func (h *Handler) changeStatus(c *gin.Context, status string) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid complaint id", c.Param("id"))
		return
	}
	var req StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	req.OfficerID = strings.TrimSpace(req.OfficerID)
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	action, err := h.Complaints.SetStatus(c.Request.Context(), id, status, req.OfficerID, req.Notes)
	if err != nil {
		h.writeServiceError(c, "Failed to update complaint", err)
		return
	}
	c.JSON(http.StatusOK, action)
}

// @Summary Officer action log
// @Tags officer
// @Produce json
// @Param officer_id path string true "Officer ID"
// @Success 200 {array} models.OfficerAction
// @Router /api/officer/{officer_id}/actions [get]
func (h *Handler) OfficerActions(c *gin.Context) {
	items, err := h.Store.ListOfficerActions(c.Request.Context(), c.Param("officer_id"))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list officer actions", err.Error())
		return
	}
	c.JSON(http.StatusOK, items)
}
