package handler

import (
	"errors"
	"net/http"

	"orderhub/internal/middleware"
	"orderhub/internal/repository"
	"orderhub/internal/service"
	"orderhub/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProfileHandler struct {
	profiles     *service.ProfileService
	businessRepo *repository.BusinessRepository
	planRepo     *repository.PlanRepository
	hub          *ws.Hub
}

func NewProfileHandler(profiles *service.ProfileService, businessRepo *repository.BusinessRepository, planRepo *repository.PlanRepository, hub *ws.Hub) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, businessRepo: businessRepo, planRepo: planRepo, hub: hub}
}

// GetProfile handles GET /me/profile — the merged account + business view.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, err := h.profiles.Resolve(middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrAccountDisabled) {
			c.JSON(http.StatusForbidden, gin.H{"error": "account disabled"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// CompleteOnboarding handles POST /me/onboarding — creates the business
// record for a fresh account. New tenants start on the Lite plan snapshot.
func (h *ProfileHandler) CompleteOnboarding(c *gin.Context) {
	var req struct {
		BusinessName string `json:"business_name" binding:"required"`
		OwnerName    string `json:"owner_name"`
		Phone        string `json:"phone"`
		Address      string `json:"address"`
		About        string `json:"about"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plan, err := h.planRepo.GetByName("Lite")
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "onboarding failed"})
		return
	}
	p, err := h.profiles.CompleteOnboarding(middleware.GetUserID(c),
		req.BusinessName, req.OwnerName, req.Phone, req.Address, req.About, plan)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "onboarding failed"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// UpdateBusiness handles PATCH /me/business — edits descriptive fields only.
// Capability and quota fields are admin territory and silently ignored here.
func (h *ProfileHandler) UpdateBusiness(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	var req struct {
		OwnerName *string `json:"owner_name"`
		Phone     *string `json:"phone"`
		Address   *string `json:"address"`
		About     *string `json:"about"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fields := map[string]interface{}{}
	if req.OwnerName != nil {
		fields["owner_name"] = *req.OwnerName
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.About != nil {
		fields["about"] = *req.About
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}
	if err := h.businessRepo.UpdateFields(p.UID, fields); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	h.hub.Publish(p.TenantPath, "profile", "updated", "")
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
