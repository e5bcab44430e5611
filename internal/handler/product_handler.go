package handler

import (
	"errors"
	"net/http"

	"orderhub/internal/models"
	"orderhub/internal/repository"
	"orderhub/internal/service"
	"orderhub/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductHandler struct {
	products *repository.ProductRepository
	profiles *service.ProfileService
	hub      *ws.Hub
}

func NewProductHandler(products *repository.ProductRepository, profiles *service.ProfileService, hub *ws.Hub) *ProductHandler {
	return &ProductHandler{products: products, profiles: profiles, hub: hub}
}

// List handles GET /products.
func (h *ProductHandler) List(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	list, err := h.products.List(p.TenantPath, p.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": len(list)})
}

// Create handles POST /products; fails on duplicate code within the tenant.
func (h *ProductHandler) Create(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	var req struct {
		Code    string          `json:"code"`
		Name    string          `json:"name" binding:"required"`
		Price   decimal.Decimal `json:"price"`
		Details string          `json:"details"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be non-negative"})
		return
	}
	count, err := h.products.Count(p.TenantPath, p.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}
	if !service.CanAddProduct(p.Capabilities, count) {
		c.JSON(http.StatusForbidden, gin.H{"error": "product limit reached for current plan"})
		return
	}
	prod := &models.Product{
		TenantPath: p.TenantPath,
		OwnerID:    p.UID,
		Code:       req.Code,
		Name:       req.Name,
		Price:      req.Price,
		Details:    req.Details,
	}
	if err := h.products.Create(prod); err != nil {
		if errors.Is(err, repository.ErrDuplicateCode) {
			c.JSON(http.StatusConflict, gin.H{"error": "duplicate product code"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}
	h.hub.Publish(p.TenantPath, "products", "created", prod.DocID)
	c.JSON(http.StatusCreated, prod)
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	prod, err := h.products.GetByDocID(p.TenantPath, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, prod)
}

// Update handles PATCH /products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	var req struct {
		Code    *string          `json:"code"`
		Name    *string          `json:"name"`
		Price   *decimal.Decimal `json:"price"`
		Details *string          `json:"details"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fields := map[string]interface{}{}
	if req.Code != nil {
		fields["code"] = *req.Code
	}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be non-negative"})
			return
		}
		fields["price"] = *req.Price
	}
	if req.Details != nil {
		fields["details"] = *req.Details
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}
	docID := c.Param("id")
	if err := h.products.Update(p.TenantPath, docID, fields); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateCode):
			c.JSON(http.StatusConflict, gin.H{"error": "duplicate product code"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		}
		return
	}
	h.hub.Publish(p.TenantPath, "products", "updated", docID)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Delete handles DELETE /products/:id — hard delete, no referential check
// against orders.
func (h *ProductHandler) Delete(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	docID := c.Param("id")
	if err := h.products.Delete(p.TenantPath, docID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	h.hub.Publish(p.TenantPath, "products", "deleted", docID)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
