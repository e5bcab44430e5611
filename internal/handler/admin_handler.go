package handler

import (
	"errors"
	"net/http"
	"strconv"

	"orderhub/internal/domain"
	"orderhub/internal/middleware"
	"orderhub/internal/models"
	"orderhub/internal/repository"
	"orderhub/internal/service"
	"orderhub/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AdminHandler struct {
	userRepo     *repository.UserRepository
	businessRepo *repository.BusinessRepository
	planRepo     *repository.PlanRepository
	auditRepo    *repository.AuditLogRepository
	statsSvc     *service.StatsService
	hub          *ws.Hub
	log          *logrus.Logger
}

func NewAdminHandler(
	userRepo *repository.UserRepository,
	businessRepo *repository.BusinessRepository,
	planRepo *repository.PlanRepository,
	auditRepo *repository.AuditLogRepository,
	statsSvc *service.StatsService,
	hub *ws.Hub,
	log *logrus.Logger,
) *AdminHandler {
	return &AdminHandler{
		userRepo:     userRepo,
		businessRepo: businessRepo,
		planRepo:     planRepo,
		auditRepo:    auditRepo,
		statsSvc:     statsSvc,
		hub:          hub,
		log:          log,
	}
}

// audit records the administrative action; failures are logged, not fatal.
func (h *AdminHandler) audit(c *gin.Context, action, resource, resourceID string, detail interface{}) {
	err := h.auditRepo.Record(middleware.GetUserID(c), middleware.GetEmail(c),
		action, resource, resourceID, c.ClientIP(), detail)
	if err != nil {
		h.log.WithError(err).WithField("action", action).Error("audit record failed")
	}
}

// ListAccounts handles GET /admin/accounts — cross-tenant business accounts
// with their business record attached when one exists.
func (h *AdminHandler) ListAccounts(c *gin.Context) {
	search := c.Query("search")
	page, limit := parsePagination(c)
	users, total, err := h.userRepo.ListBusinessAccounts(search, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list accounts"})
		return
	}
	type accountRow struct {
		models.User
		Business *models.Business `json:"business,omitempty"`
	}
	rows := make([]accountRow, 0, len(users))
	for _, u := range users {
		row := accountRow{User: u}
		if b, err := h.businessRepo.GetByOwnerID(u.ID); err == nil {
			row.Business = b
		}
		rows = append(rows, row)
	}
	c.JSON(http.StatusOK, gin.H{"data": rows, "total": total, "page": page, "limit": limit})
}

// SetAccountStatus handles PATCH /admin/accounts/:id/status — enable or
// disable a tenant account. Disabling fails the tenant closed on their next
// request.
func (h *AdminHandler) SetAccountStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != domain.AccountEnabled && req.Status != domain.AccountDisabled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be ENABLED or DISABLED"})
		return
	}
	if err := h.userRepo.UpdateFields(uint(id), map[string]interface{}{"status": req.Status}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	h.audit(c, "account.set_status", "user", c.Param("id"), req)
	h.publishProfileChange(uint(id))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SetCanCreateOrders handles PATCH /admin/accounts/:id/can-create-orders.
func (h *AdminHandler) SetCanCreateOrders(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		CanCreateOrders *bool `json:"can_create_orders" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.userRepo.UpdateFields(uint(id), map[string]interface{}{"can_create_orders": *req.CanCreateOrders}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	h.audit(c, "account.set_can_create_orders", "user", c.Param("id"), req)
	h.publishProfileChange(uint(id))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AssignPlan handles POST /admin/accounts/:id/plan — copies the plan's
// capability and quota fields onto the tenant. A later edit of the template
// does not touch tenants already carrying the snapshot.
func (h *AdminHandler) AssignPlan(c *gin.Context) {
	ownerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		PlanID uint `json:"plan_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plan, err := h.planRepo.GetByID(req.PlanID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}
	b, err := h.businessRepo.GetByOwnerID(uint(ownerID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "plan assignment failed"})
		return
	}
	plan.ApplyTo(b)
	if err := h.businessRepo.Update(b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "plan assignment failed"})
		return
	}
	h.audit(c, "account.assign_plan", "business", c.Param("id"), gin.H{"plan": plan.Name})
	h.hub.Publish(b.RootPath(), "profile", "updated", "")
	c.JSON(http.StatusOK, b)
}

// TenantStats handles GET /admin/accounts/:id/stats?window=today|week|month.
// Computed by fetching the tenant's full order set and reducing in-process.
func (h *AdminHandler) TenantStats(c *gin.Context) {
	ownerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	b, err := h.businessRepo.GetByOwnerID(uint(ownerID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
		return
	}
	stats, err := h.statsSvc.Compute(b.RootPath(), b.OwnerID, c.Query("window"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListPlans handles GET /admin/plans.
func (h *AdminHandler) ListPlans(c *gin.Context) {
	plans, err := h.planRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list plans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": plans})
}

type planRequest struct {
	Name                  string          `json:"name" binding:"required"`
	Price                 decimal.Decimal `json:"price"`
	CanAddOrder           bool            `json:"can_add_order"`
	CanAddCustomer        bool            `json:"can_add_customer"`
	CanAddProducts        bool            `json:"can_add_products"`
	HasExportImportOption bool            `json:"has_export_import_option"`
	MaxOrderNumber        int             `json:"max_order_number"`
	MaxCustomerNumber     int             `json:"max_customer_number"`
	MaxProductNumber      int             `json:"max_product_number"`
}

// CreatePlan handles POST /admin/plans.
func (h *AdminHandler) CreatePlan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := &models.PlanDefinition{
		Name:                  req.Name,
		Price:                 req.Price,
		CanAddOrder:           req.CanAddOrder,
		CanAddCustomer:        req.CanAddCustomer,
		CanAddProducts:        req.CanAddProducts,
		HasExportImportOption: req.HasExportImportOption,
		MaxOrderNumber:        req.MaxOrderNumber,
		MaxCustomerNumber:     req.MaxCustomerNumber,
		MaxProductNumber:      req.MaxProductNumber,
	}
	if err := h.planRepo.Create(p); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "plan name already exists"})
		return
	}
	h.audit(c, "plan.create", "plan", strconv.FormatUint(uint64(p.ID), 10), req)
	c.JSON(http.StatusCreated, p)
}

// UpdatePlan handles PUT /admin/plans/:id — edits the template only; tenants
// already on the plan keep their snapshot.
func (h *AdminHandler) UpdatePlan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.planRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}
	p.Name = req.Name
	p.Price = req.Price
	p.CanAddOrder = req.CanAddOrder
	p.CanAddCustomer = req.CanAddCustomer
	p.CanAddProducts = req.CanAddProducts
	p.HasExportImportOption = req.HasExportImportOption
	p.MaxOrderNumber = req.MaxOrderNumber
	p.MaxCustomerNumber = req.MaxCustomerNumber
	p.MaxProductNumber = req.MaxProductNumber
	if err := h.planRepo.Update(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	h.audit(c, "plan.update", "plan", c.Param("id"), req)
	c.JSON(http.StatusOK, p)
}

// DeletePlan handles DELETE /admin/plans/:id.
func (h *AdminHandler) DeletePlan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.planRepo.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	h.audit(c, "plan.delete", "plan", c.Param("id"), nil)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListAuditLogs handles GET /admin/audit-logs.
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.auditRepo.List(c.Query("action"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list audit logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// publishProfileChange pushes a profile event to the tenant stream so a live
// client re-resolves; a disabled account's next request then fails closed.
func (h *AdminHandler) publishProfileChange(ownerID uint) {
	if b, err := h.businessRepo.GetByOwnerID(ownerID); err == nil {
		h.hub.Publish(b.RootPath(), "profile", "updated", "")
	}
}
