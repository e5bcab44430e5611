package service

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"orderhub/internal/models"
	"orderhub/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var ErrEmptySheet = errors.New("sheet has no data rows")

// RowError reports one failed import row; the loop never aborts on it.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportSummary struct {
	SuccessCount int        `json:"success_count"`
	ErrorCount   int        `json:"error_count"`
	Errors       []RowError `json:"errors,omitempty"`
}

// SheetService moves customers and products in and out of XLSX workbooks.
// Columns are matched by header name, not position.
type SheetService struct {
	customers *repository.CustomerRepository
	products  *repository.ProductRepository
	orders    *repository.OrderRepository
}

func NewSheetService(customers *repository.CustomerRepository, products *repository.ProductRepository, orders *repository.OrderRepository) *SheetService {
	return &SheetService{customers: customers, products: products, orders: orders}
}

// headerIndex maps lower-cased header names to their column position.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func cell(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func readRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}
	return rows, nil
}

// ImportCustomers processes rows strictly in order; a failing row is counted
// and skipped. Phone-duplicate rows resolve to the existing record and count
// as success (idempotent create).
func (s *SheetService) ImportCustomers(p *Profile, r io.Reader) (*ImportSummary, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	idx := headerIndex(rows[0])
	sum := &ImportSummary{}
	for n, row := range rows[1:] {
		rowNo := n + 2 // 1-based, after header
		name := cell(row, idx, "name")
		phone := cell(row, idx, "phone")
		if name == "" || phone == "" {
			sum.fail(rowNo, "name and phone are required")
			continue
		}
		rating := 0
		if v := cell(row, idx, "rating"); v != "" {
			rating, err = strconv.Atoi(v)
			if err != nil || rating < 0 || rating > 5 {
				sum.fail(rowNo, "rating must be an integer between 0 and 5")
				continue
			}
		}
		_, err := s.customers.Create(&models.Customer{
			TenantPath: p.TenantPath,
			OwnerID:    p.UID,
			Name:       name,
			Phone:      phone,
			Email:      cell(row, idx, "email"),
			Address:    cell(row, idx, "address"),
			Rating:     rating,
			Comment:    cell(row, idx, "comment"),
		})
		if err != nil {
			sum.fail(rowNo, err.Error())
			continue
		}
		sum.SuccessCount++
	}
	return sum, nil
}

func (s *SheetService) ImportProducts(p *Profile, r io.Reader) (*ImportSummary, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	idx := headerIndex(rows[0])
	sum := &ImportSummary{}
	for n, row := range rows[1:] {
		rowNo := n + 2
		name := cell(row, idx, "name")
		priceStr := cell(row, idx, "price")
		if name == "" || priceStr == "" {
			sum.fail(rowNo, "name and price are required")
			continue
		}
		price, err := decimal.NewFromString(priceStr)
		if err != nil || price.IsNegative() {
			sum.fail(rowNo, "price must be a non-negative number")
			continue
		}
		err = s.products.Create(&models.Product{
			TenantPath: p.TenantPath,
			OwnerID:    p.UID,
			Name:       name,
			Price:      price,
			Code:       cell(row, idx, "code"),
			Details:    cell(row, idx, "details"),
		})
		if err != nil {
			sum.fail(rowNo, err.Error())
			continue
		}
		sum.SuccessCount++
	}
	return sum, nil
}

func (sum *ImportSummary) fail(row int, msg string) {
	sum.ErrorCount++
	sum.Errors = append(sum.Errors, RowError{Row: row, Message: msg})
}

const timeLayout = "2006-01-02 15:04"

func (s *SheetService) ExportCustomers(p *Profile) (*excelize.File, error) {
	list, err := s.customers.List(p.TenantPath, p.UID)
	if err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	headers := []string{"Name", "Phone", "Email", "Address", "Rating", "Comment", "Created At"}
	writeHeaders(f, sheet, headers)
	for i, c := range list {
		writeRow(f, sheet, i+2,
			c.Name, c.Phone, c.Email, c.Address, c.Rating, c.Comment,
			c.CreatedAt.Format(timeLayout))
	}
	return f, nil
}

func (s *SheetService) ExportProducts(p *Profile) (*excelize.File, error) {
	list, err := s.products.List(p.TenantPath, p.UID)
	if err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	writeHeaders(f, sheet, []string{"Code", "Name", "Price", "Details", "Created At"})
	for i, pr := range list {
		writeRow(f, sheet, i+2,
			pr.Code, pr.Name, pr.Price.StringFixed(2), pr.Details,
			pr.CreatedAt.Format(timeLayout))
	}
	return f, nil
}

func (s *SheetService) ExportOrders(p *Profile) (*excelize.File, error) {
	list, err := s.orders.List(p.TenantPath, p.UID, "")
	if err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	writeHeaders(f, sheet, []string{
		"Order Date", "Customer", "Status", "Channel", "Items",
		"Delivery Charge", "Total Amount", "Invoice No", "Notes", "Created At",
	})
	for i, o := range list {
		var items []string
		for _, it := range o.Items {
			items = append(items, fmt.Sprintf("%s x%d", it.Name, it.Quantity))
		}
		writeRow(f, sheet, i+2,
			o.OrderDate.Format(timeLayout), o.CustomerDocID, o.Status, o.Channel,
			strings.Join(items, "; "),
			o.DeliveryCharge.StringFixed(2), o.TotalAmount.StringFixed(2),
			o.InvoiceNumber, o.Notes, o.CreatedAt.Format(timeLayout))
	}
	return f, nil
}

func writeHeaders(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetCellValue(sheet, col+"1", h)
	}
}

func writeRow(f *excelize.File, sheet string, rowNo int, values ...interface{}) {
	for i, v := range values {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, rowNo), v)
	}
}
