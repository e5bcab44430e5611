package handler

import (
	"net/http"

	"orderhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type SheetHandler struct {
	sheets   *service.SheetService
	profiles *service.ProfileService
	log      *logrus.Logger
}

func NewSheetHandler(sheets *service.SheetService, profiles *service.ProfileService, log *logrus.Logger) *SheetHandler {
	return &SheetHandler{sheets: sheets, profiles: profiles, log: log}
}

// gate rejects tenants whose plan has no import/export option.
func (h *SheetHandler) gate(c *gin.Context) *service.Profile {
	p := requireTenantProfile(c, h.profiles)
	if p == nil {
		return nil
	}
	if !service.CanImportExport(p.Capabilities) {
		c.JSON(http.StatusForbidden, gin.H{"error": "import/export not available on current plan"})
		return nil
	}
	return p
}

func (h *SheetHandler) runImport(c *gin.Context, do func(*service.Profile) (*service.ImportSummary, error), p *service.Profile) {
	sum, err := do(p)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.log.WithFields(logrus.Fields{
		"tenant":  p.TenantPath,
		"success": sum.SuccessCount,
		"errors":  sum.ErrorCount,
	}).Info("sheet import finished")
	c.JSON(http.StatusOK, sum)
}

// ImportCustomers handles POST /import/customers (multipart field "file").
func (h *SheetHandler) ImportCustomers(c *gin.Context) {
	p := h.gate(c)
	if p == nil {
		return
	}
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()
	h.runImport(c, func(p *service.Profile) (*service.ImportSummary, error) {
		return h.sheets.ImportCustomers(p, file)
	}, p)
}

// ImportProducts handles POST /import/products.
func (h *SheetHandler) ImportProducts(c *gin.Context) {
	p := h.gate(c)
	if p == nil {
		return
	}
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()
	h.runImport(c, func(p *service.Profile) (*service.ImportSummary, error) {
		return h.sheets.ImportProducts(p, file)
	}, p)
}

func (h *SheetHandler) writeWorkbook(c *gin.Context, f *excelize.File, filename string) {
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := f.Write(c.Writer); err != nil {
		h.log.WithError(err).Error("failed to write workbook")
	}
}

// ExportCustomers handles GET /export/customers.
func (h *SheetHandler) ExportCustomers(c *gin.Context) {
	p := h.gate(c)
	if p == nil {
		return
	}
	f, err := h.sheets.ExportCustomers(p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	h.writeWorkbook(c, f, "customers.xlsx")
}

// ExportProducts handles GET /export/products.
func (h *SheetHandler) ExportProducts(c *gin.Context) {
	p := h.gate(c)
	if p == nil {
		return
	}
	f, err := h.sheets.ExportProducts(p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	h.writeWorkbook(c, f, "products.xlsx")
}

// ExportOrders handles GET /export/orders.
func (h *SheetHandler) ExportOrders(c *gin.Context) {
	p := h.gate(c)
	if p == nil {
		return
	}
	f, err := h.sheets.ExportOrders(p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	h.writeWorkbook(c, f, "orders.xlsx")
}
