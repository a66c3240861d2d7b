package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/realmcrm/backend/internal/entities"
	"github.com/realmcrm/backend/internal/repository"
)

// GetActivities lists a lead's activities newest first with author names.
func (h *Handler) GetActivities(c *gin.Context) {
	user := currentUser(c)
	leadID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Lead not found"})
		return
	}

	activities, err := h.activityRepo.ListByLead(c.Request.Context(), user.TenantID, leadID)
	if err != nil {
		log.Printf("list activities failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, activities)
}

// CreateActivity appends an interaction to a lead. The parent lead must exist
// within the caller's tenant.
func (h *Handler) CreateActivity(c *gin.Context) {
	user := currentUser(c)
	leadID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Lead not found"})
		return
	}

	var req struct {
		Type    string  `json:"type"`
		Result  *string `json:"result"`
		Comment *string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if !ValidActivityType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid activity type"})
		return
	}

	// Verify lead exists and belongs to tenant
	if _, err := h.leadRepo.GetByID(c.Request.Context(), user.TenantID, leadID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Lead not found"})
			return
		}
		log.Printf("get lead failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	activity := &entities.Activity{
		TenantID: user.TenantID,
		LeadID:   leadID,
		UserID:   user.ID,
		Type:     req.Type,
		Result:   req.Result,
		Comment:  req.Comment,
	}
	if err := h.activityRepo.Create(c.Request.Context(), activity); err != nil {
		log.Printf("create activity failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	created, err := h.activityRepo.GetByID(c.Request.Context(), user.TenantID, activity.ID)
	if err != nil {
		log.Printf("reread created activity failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, created)
}
