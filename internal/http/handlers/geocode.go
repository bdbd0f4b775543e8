package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type GeocodeRequest struct {
	AreaName string `json:"area_name" validate:"required,max=200"`
	City     string `json:"city" validate:"max=100"`
}

type GeocodeResponse struct {
	AreaName  string  `json:"area_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Status    string  `json:"status"`
	Message   string  `json:"message,omitempty"`
}

// @Summary Geocode an area name
// @Description Falls back to the default city coordinate when the lookup fails.
// @Tags geocode
// @Accept json
// @Produce json
// @Param body body GeocodeRequest true "Area"
// @Success 200 {object} GeocodeResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/geocode [post]
func (h *Handler) Geocode(c *gin.Context) {
	var req GeocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	req.AreaName = strings.TrimSpace(req.AreaName)
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "area_name is required", err.Error())
		return
	}

	res := h.Resolver.Resolve(c.Request.Context(), req.AreaName, req.City)
	out := GeocodeResponse{
		AreaName:  res.AreaName,
		Latitude:  res.Latitude,
		Longitude: res.Longitude,
		Status:    "success",
	}
	if res.UsedDefault {
		out.Status = "default_used"
		out.Message = "Could not geocode location, using default coordinates"
	}
	c.JSON(http.StatusOK, out)
}
