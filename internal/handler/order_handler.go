package handler

import (
	"errors"
	"net/http"
	"time"

	"orderhub/internal/domain"
	"orderhub/internal/models"
	"orderhub/internal/repository"
	"orderhub/internal/service"
	"orderhub/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderHandler struct {
	orders      *repository.OrderRepository
	customers   *repository.CustomerRepository
	experiences *repository.ExperienceRepository
	orderSvc    *service.OrderService
	profiles    *service.ProfileService
	hub         *ws.Hub
}

func NewOrderHandler(
	orders *repository.OrderRepository,
	customers *repository.CustomerRepository,
	experiences *repository.ExperienceRepository,
	orderSvc *service.OrderService,
	profiles *service.ProfileService,
	hub *ws.Hub,
) *OrderHandler {
	return &OrderHandler{
		orders:      orders,
		customers:   customers,
		experiences: experiences,
		orderSvc:    orderSvc,
		profiles:    profiles,
		hub:         hub,
	}
}

// List handles GET /orders?status=...
func (h *OrderHandler) List(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	status := c.Query("status")
	if status != "" && !domain.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}
	list, err := h.orders.List(p.TenantPath, p.UID, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": len(list)})
}

// Create handles POST /orders — resolves or creates the customer first, then
// persists the order with a recomputed total. Gated by the order quota and
// the account-level order-creation flag.
func (h *OrderHandler) Create(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	var in service.OrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	count, err := h.orders.Count(p.TenantPath, p.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
		return
	}
	if !service.CanAddOrder(p.Capabilities, count) {
		c.JSON(http.StatusForbidden, gin.H{"error": "order limit reached for current plan"})
		return
	}
	o, cust, err := h.orderSvc.Create(p, &in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadChannel),
			errors.Is(err, service.ErrCustomerRequired),
			errors.Is(err, service.ErrItemsRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
		}
		return
	}
	h.hub.Publish(p.TenantPath, "orders", "created", o.DocID)
	c.JSON(http.StatusCreated, gin.H{"order": o, "customer": cust})
}

// Get handles GET /orders/:id — the detail view. The invoice number is
// ensured here, once, and never reassigned.
func (h *OrderHandler) Get(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	docID := c.Param("id")
	if _, err := h.orders.EnsureInvoiceNumber(p.TenantPath, docID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
		return
	}
	o, err := h.orders.GetByDocID(p.TenantPath, docID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
		return
	}
	// Invoice view needs the resolved customer alongside the order.
	cust, _ := h.customers.GetByDocID(p.TenantPath, o.CustomerDocID)
	c.JSON(http.StatusOK, gin.H{"order": o, "customer": cust})
}

// Update handles PATCH /orders/:id — general field edit; the total is
// recomputed on every save.
func (h *OrderHandler) Update(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	var req struct {
		Items           []service.OrderItemInput `json:"items"`
		DeliveryCharge  *decimal.Decimal         `json:"delivery_charge"`
		OrderDate       *time.Time               `json:"order_date"`
		HasOrderTime    *bool                    `json:"has_order_time"`
		DeliveryDate    *time.Time               `json:"delivery_date"`
		HasDeliveryTime *bool                    `json:"has_delivery_time"`
		Channel         *string                  `json:"channel"`
		Notes           *string                  `json:"notes"`
		DeliveryAddress *string                  `json:"delivery_address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fields := map[string]interface{}{}
	if req.DeliveryCharge != nil {
		if req.DeliveryCharge.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "delivery charge must be non-negative"})
			return
		}
		fields["delivery_charge"] = *req.DeliveryCharge
	}
	if req.OrderDate != nil {
		fields["order_date"] = *req.OrderDate
	}
	if req.HasOrderTime != nil {
		fields["has_order_time"] = *req.HasOrderTime
	}
	if req.DeliveryDate != nil {
		fields["delivery_date"] = *req.DeliveryDate
	}
	if req.HasDeliveryTime != nil {
		fields["has_delivery_time"] = *req.HasDeliveryTime
	}
	if req.Channel != nil {
		if !domain.ValidChannel(*req.Channel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown source channel"})
			return
		}
		fields["channel"] = *req.Channel
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if req.DeliveryAddress != nil {
		fields["delivery_address"] = *req.DeliveryAddress
	}

	var items []models.OrderItem
	if req.Items != nil {
		items = make([]models.OrderItem, 0, len(req.Items))
		for _, it := range req.Items {
			if it.Name == "" || it.Quantity < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "each item needs a name and a positive quantity"})
				return
			}
			items = append(items, models.OrderItem{
				ProductDocID: it.ProductID,
				Name:         it.Name,
				UnitPrice:    it.UnitPrice,
				Quantity:     it.Quantity,
				Code:         it.Code,
				Description:  it.Description,
			})
		}
	}
	if len(fields) == 0 && items == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}
	docID := c.Param("id")
	if err := h.orders.Update(p.TenantPath, docID, fields, items); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	h.hub.Publish(p.TenantPath, "orders", "updated", docID)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UpdateStatus handles PUT /orders/:id/status — the raw registry transition.
// It enforces closure only; callers moving to a terminal status are expected
// to have gone through the feedback flow (POST /orders/:id/finish), but this
// endpoint does not block a direct call.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !domain.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}
	docID := c.Param("id")
	if err := h.orders.UpdateStatus(p.TenantPath, docID, req.Status); err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "invalid status transition"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "status update failed"})
		}
		return
	}
	h.hub.Publish(p.TenantPath, "orders", "updated", docID)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Finish handles POST /orders/:id/finish — the feedback-gated terminal
// transition: experience first, then the status write.
func (h *OrderHandler) Finish(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	var req struct {
		Status  string `json:"status" binding:"required"`
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	o, err := h.orderSvc.FinishWithFeedback(p, c.Param("id"), req.Status, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "invalid status transition"})
		case errors.Is(err, repository.ErrRatingRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to finish order"})
		}
		return
	}
	h.hub.Publish(p.TenantPath, "orders", "updated", o.DocID)
	h.hub.Publish(p.TenantPath, "experiences", "created", o.DocID)
	c.JSON(http.StatusOK, o)
}

// Delete handles DELETE /orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return
	}
	docID := c.Param("id")
	if err := h.orders.Delete(p.TenantPath, docID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	h.hub.Publish(p.TenantPath, "orders", "deleted", docID)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
