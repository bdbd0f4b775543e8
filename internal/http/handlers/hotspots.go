package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Priority zones
// @Description Complaints bucketed into grid cells, scored and ranked most urgent first.
// @Tags hotspots
// @Produce json
// @Param top query int false "Number of zones to return"
// @Success 200 {array} hotspot.ZoneResult
// @Failure 400 {object} ErrorResponse
// @Router /api/complaints/priority-zones [get]
func (h *Handler) PriorityZones(c *gin.Context) {
	top, err := queryInt(c, "top", h.Defaults.TopZones)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_PARAMETER", "top must be an integer", c.Query("top"))
		return
	}

	zones, err := h.Hotspots.PriorityZones(c.Request.Context(), top)
	if err != nil {
		h.writeServiceError(c, "Failed to rank zones", err)
		return
	}
	c.JSON(http.StatusOK, zones)
}

// @Summary Complaint clusters
// @Description Density-based clusters over great-circle distance with per-cluster summaries.
// @Tags hotspots
// @Produce json
// @Param eps_km query number false "Neighborhood radius in kilometers"
// @Param min_samples query int false "Minimum neighborhood size, the point included"
// @Success 200 {object} service.ClusterReport
// @Failure 400 {object} ErrorResponse
// @Router /api/complaints/clusters [get]
func (h *Handler) Clusters(c *gin.Context) {
	eps, err := queryFloat(c, "eps_km", h.Defaults.ClusterEpsKm)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_PARAMETER", "eps_km must be a number", c.Query("eps_km"))
		return
	}
	minSamples, err := queryInt(c, "min_samples", h.Defaults.ClusterMinSamples)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_PARAMETER", "min_samples must be an integer", c.Query("min_samples"))
		return
	}

	report, err := h.Hotspots.Clusters(c.Request.Context(), eps, minSamples)
	if err != nil {
		h.writeServiceError(c, "Failed to cluster complaints", err)
		return
	}
	c.JSON(http.StatusOK, report)
}
