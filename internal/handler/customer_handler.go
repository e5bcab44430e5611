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

type CustomerHandler struct {
	customers *repository.CustomerRepository
	profiles  *service.ProfileService
	hub       *ws.Hub
}

func NewCustomerHandler(customers *repository.CustomerRepository, profiles *service.ProfileService, hub *ws.Hub) *CustomerHandler {
	return &CustomerHandler{customers: customers, profiles: profiles, hub: hub}
}

// List handles GET /customers.
func (h *CustomerHandler) List(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	list, err := h.customers.List(p.TenantPath, p.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list customers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": len(list)})
}

// FindByPhone handles GET /customers/find?phone=... — exact digit match
// first, then the ≥8-digit suffix heuristic.
func (h *CustomerHandler) FindByPhone(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone is required"})
		return
	}
	list, err := h.customers.List(p.TenantPath, p.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if match := repository.FindByPhone(list, phone); match != nil {
		c.JSON(http.StatusOK, match)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "no matching customer"})
}

// Create handles POST /customers; idempotent on phone and gated by the
// customer quota.
func (h *CustomerHandler) Create(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	var req struct {
		Name    string `json:"name" binding:"required"`
		Phone   string `json:"phone" binding:"required"`
		Email   string `json:"email"`
		Address string `json:"address"`
		Rating  int    `json:"rating" binding:"min=0,max=5"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	count, err := h.customers.Count(p.TenantPath, p.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create customer"})
		return
	}
	if !service.CanAddCustomer(p.Capabilities, count) {
		c.JSON(http.StatusForbidden, gin.H{"error": "customer limit reached for current plan"})
		return
	}
	cust, err := h.customers.Create(&models.Customer{
		TenantPath: p.TenantPath,
		OwnerID:    p.UID,
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create customer"})
		return
	}
	h.hub.Publish(p.TenantPath, "customers", "created", cust.DocID)
	c.JSON(http.StatusCreated, cust)
}

// Get handles GET /customers/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	cust, err := h.customers.GetByDocID(p.TenantPath, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	c.JSON(http.StatusOK, cust)
}

// Update handles PATCH /customers/:id; only supplied fields are written.
func (h *CustomerHandler) Update(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	var req struct {
		Name    *string `json:"name"`
		Phone   *string `json:"phone"`
		Email   *string `json:"email"`
		Address *string `json:"address"`
		Rating  *int    `json:"rating"`
		Comment *string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Rating != nil {
		if *req.Rating < 0 || *req.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 0 and 5"})
			return
		}
		fields["rating"] = *req.Rating
	}
	if req.Comment != nil {
		fields["comment"] = *req.Comment
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}
	docID := c.Param("id")
	if err := h.customers.Update(p.TenantPath, docID, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	h.hub.Publish(p.TenantPath, "customers", "updated", docID)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Delete handles DELETE /customers/:id — hard delete, no cascade; orders keep
// their dangling reference.
func (h *CustomerHandler) Delete(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	docID := c.Param("id")
	if err := h.customers.Delete(p.TenantPath, docID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	h.hub.Publish(p.TenantPath, "customers", "deleted", docID)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
