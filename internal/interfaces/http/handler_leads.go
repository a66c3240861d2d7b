package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/realmcrm/backend/internal/entities"
	"github.com/realmcrm/backend/internal/repository"
)

// GetLeads lists the tenant's leads with optional status/assigned_to/search
// filters, newest first.
func (h *Handler) GetLeads(c *gin.Context) {
	user := currentUser(c)

	filter := repository.LeadFilter{
		Status: c.Query("status"),
		Search: SanitizeString(c.Query("search")),
	}
	if raw := c.Query("assigned_to"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid assigned_to"})
			return
		}
		filter.AssignedTo = id
	}
	if filter.Status != "" && !ValidLeadStatus(filter.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	leads, err := h.leadRepo.List(c.Request.Context(), user.TenantID, filter)
	if err != nil {
		log.Printf("list leads failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, leads)
}

// GetLeadByID returns a single lead with its activities embedded, most recent
// first. Cross-tenant ids read as not found.
func (h *Handler) GetLeadByID(c *gin.Context) {
	user := currentUser(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Lead not found"})
		return
	}

	lead, err := h.leadRepo.GetByID(c.Request.Context(), user.TenantID, id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Lead not found"})
		return
	}
	if err != nil {
		log.Printf("get lead failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	activities, err := h.activityRepo.ListByLead(c.Request.Context(), user.TenantID, lead.ID)
	if err != nil {
		log.Printf("get lead activities failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	lead.Activities = activities

	c.JSON(http.StatusOK, lead)
}

// CreateLead inserts a lead and returns the stored row in full, reflecting
// database-computed defaults.
func (h *Handler) CreateLead(c *gin.Context) {
	user := currentUser(c)

	var req struct {
		Name         string  `json:"name"`
		Phone        string  `json:"phone"`
		Email        *string `json:"email"`
		Source       *string `json:"source"`
		InterestType *string `json:"interest_type"`
		Status       string  `json:"status"`
		Budget       float64 `json:"budget"`
		Notes        *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	req.Name = SanitizeString(req.Name)
	if !ValidateLength(req.Name, 1, MaxNameLength) || !ValidateLength(req.Phone, 1, MaxPhoneLength) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name and phone are required"})
		return
	}
	if req.Status == "" {
		req.Status = entities.StatusNew
	}
	if !ValidLeadStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	source := "Manual"
	if req.Source != nil && *req.Source != "" {
		source = SanitizeString(*req.Source)
	}

	creator := user.ID
	lead := &entities.Lead{
		TenantID:     user.TenantID,
		CreatedBy:    user.ID,
		AssignedTo:   &creator,
		FullName:     req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Source:       &source,
		InterestType: req.InterestType,
		Status:       req.Status,
		BudgetMin:    req.Budget,
		BudgetMax:    req.Budget,
		Notes:        req.Notes,
	}

	if err := h.leadRepo.Create(c.Request.Context(), lead); err != nil {
		log.Printf("create lead failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	created, err := h.leadRepo.GetByID(c.Request.Context(), user.TenantID, lead.ID)
	if err != nil {
		log.Printf("reread created lead failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateLead applies a partial patch: only fields present in the body are
// written. An empty patch returns the current row without touching the store.
func (h *Handler) UpdateLead(c *gin.Context) {
	user := currentUser(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Lead not found"})
		return
	}

	var req struct {
		Name           *string    `json:"name"`
		Phone          *string    `json:"phone"`
		Email          *string    `json:"email"`
		Status         *string    `json:"status"`
		AssignedTo     *int       `json:"assigned_to"`
		Notes          *string    `json:"notes"`
		NextFollowupAt *time.Time `json:"next_followup_at"`
		Budget         *float64   `json:"budget"`
		Location       *string    `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.Status != nil && !ValidLeadStatus(*req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	// Ownership check precedes the mutation
	lead, err := h.leadRepo.GetByID(c.Request.Context(), user.TenantID, id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Lead not found"})
		return
	}
	if err != nil {
		log.Printf("get lead failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	patch := repository.LeadPatch{
		FullName:          req.Name,
		Phone:             req.Phone,
		Email:             req.Email,
		Status:            req.Status,
		AssignedTo:        req.AssignedTo,
		Notes:             req.Notes,
		NextFollowupAt:    req.NextFollowupAt,
		Budget:            req.Budget,
		PreferredLocation: req.Location,
	}

	if patch.Empty() {
		c.JSON(http.StatusOK, lead)
		return
	}

	if err := h.leadRepo.Update(c.Request.Context(), user.TenantID, id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Lead not found"})
			return
		}
		log.Printf("update lead failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	updated, err := h.leadRepo.GetByID(c.Request.Context(), user.TenantID, id)
	if err != nil {
		log.Printf("reread updated lead failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, updated)
}
