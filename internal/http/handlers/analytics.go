package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Dashboard analytics
// @Tags analytics
// @Produce json
// @Success 200 {object} models.Analytics
// @Router /api/analytics [get]
func (h *Handler) Analytics(c *gin.Context) {
	out, err := h.Store.Analytics(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load analytics", err.Error())
		return
	}
	c.JSON(http.StatusOK, out)
}
