package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns the tenant's headline counters.
func (h *Handler) GetDashboardStats(c *gin.Context) {
	stats, err := h.dashboardRepo.Stats(c.Request.Context(), currentUser(c).TenantID)
	if err != nil {
		log.Printf("dashboard stats failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
