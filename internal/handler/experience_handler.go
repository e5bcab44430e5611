package handler

import (
	"errors"
	"net/http"

	"orderhub/internal/models"
	"orderhub/internal/repository"
	"orderhub/internal/service"
	"orderhub/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ExperienceHandler struct {
	experiences *repository.ExperienceRepository
	orders      *repository.OrderRepository
	profiles    *service.ProfileService
	hub         *ws.Hub
}

func NewExperienceHandler(experiences *repository.ExperienceRepository, orders *repository.OrderRepository, profiles *service.ProfileService, hub *ws.Hub) *ExperienceHandler {
	return &ExperienceHandler{experiences: experiences, orders: orders, profiles: profiles, hub: hub}
}

// List handles GET /experiences.
func (h *ExperienceHandler) List(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	list, err := h.experiences.List(p.TenantPath, p.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list experiences"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": len(list)})
}

// GetByOrder handles GET /orders/:id/experience.
func (h *ExperienceHandler) GetByOrder(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	e, err := h.experiences.GetByOrder(p.TenantPath, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no experience for this order"})
		return
	}
	c.JSON(http.StatusOK, e)
}

// Upsert handles PUT /orders/:id/experience — the post-hoc edit path,
// independent of further order mutation.
func (h *ExperienceHandler) Upsert(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	var req struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	orderDocID := c.Param("id")
	o, err := h.orders.GetByDocID(p.TenantPath, orderDocID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save experience"})
		return
	}
	e, err := h.experiences.UpsertByOrder(&models.Experience{
		TenantPath:    p.TenantPath,
		OwnerID:       p.UID,
		OrderDocID:    o.DocID,
		CustomerDocID: o.CustomerDocID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save experience"})
		return
	}
	h.hub.Publish(p.TenantPath, "experiences", "updated", e.DocID)
	c.JSON(http.StatusOK, e)
}
