package repository

import (
	"strings"

	"orderhub/internal/domain"
	"orderhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) List(tenantPath string, ownerID uint, status string) ([]models.Order, error) {
	if tenantPath == "" {
		return nil, ErrNoTenantPath
	}
	q := r.db.Preload("Items").
		Where("tenant_path = ? AND owner_id = ?", tenantPath, ownerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.Order
	err := q.Order("order_date DESC, id DESC").Find(&list).Error
	return list, err
}

func (r *OrderRepository) GetByDocID(tenantPath, docID string) (*models.Order, error) {
	var o models.Order
	err := r.db.Preload("Items").
		Where("tenant_path = ? AND doc_id = ?", tenantPath, docID).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persists a new order. The total is recomputed from the items and
// delivery charge regardless of what the caller filled in.
func (r *OrderRepository) Create(o *models.Order) error {
	if o.TenantPath == "" {
		return ErrNoTenantPath
	}
	if o.DocID == "" {
		o.DocID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = domain.OrderPending
	}
	o.TotalAmount = o.ComputeTotal()
	return r.db.Create(o).Error
}

// Update applies a partial field edit. When items are supplied the whole item
// set is replaced and the total recomputed; otherwise the stored items are
// reloaded so the total invariant holds after every save.
func (r *OrderRepository) Update(tenantPath, docID string, fields map[string]interface{}, items []models.OrderItem) error {
	existing, err := r.GetByDocID(tenantPath, docID)
	if err != nil {
		return err
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if items != nil {
			if err := tx.Where("order_id = ?", existing.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			for i := range items {
				items[i].ID = 0
				items[i].OrderID = existing.ID
			}
			if len(items) > 0 {
				if err := tx.Create(&items).Error; err != nil {
					return err
				}
			}
		}
		if len(fields) > 0 {
			if err := tx.Model(&models.Order{}).Where("id = ?", existing.ID).Updates(fields).Error; err != nil {
				return err
			}
		}
		// Re-read so the recompute sees the just-written fields and items.
		var fresh models.Order
		if err := tx.Preload("Items").First(&fresh, existing.ID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Order{}).Where("id = ?", existing.ID).
			Update("total_amount", fresh.ComputeTotal()).Error
	})
}

// UpdateStatus enforces transition closure only: PENDING and PROCESSING
// branch, terminal states are closed. Feedback sequencing is the caller's
// contract, not the registry's.
func (r *OrderRepository) UpdateStatus(tenantPath, docID, status string) error {
	o, err := r.GetByDocID(tenantPath, docID)
	if err != nil {
		return err
	}
	if !domain.CanTransition(o.Status, status) {
		return ErrInvalidTransition
	}
	return r.db.Model(&models.Order{}).Where("id = ?", o.ID).
		Update("status", status).Error
}

// EnsureInvoiceNumber assigns the invoice number exactly once and returns it.
// Derived from the order's doc id so a concurrent double call lands on the
// same value.
func (r *OrderRepository) EnsureInvoiceNumber(tenantPath, docID string) (string, error) {
	o, err := r.GetByDocID(tenantPath, docID)
	if err != nil {
		return "", err
	}
	if o.InvoiceNumber != "" {
		return o.InvoiceNumber, nil
	}
	inv := "INV-" + strings.ToUpper(strings.ReplaceAll(docID, "-", ""))[:10]
	err = r.db.Model(&models.Order{}).
		Where("id = ? AND (invoice_number = '' OR invoice_number IS NULL)", o.ID).
		Update("invoice_number", inv).Error
	if err != nil {
		return "", err
	}
	return inv, nil
}

func (r *OrderRepository) Delete(tenantPath, docID string) error {
	o, err := r.GetByDocID(tenantPath, docID)
	if err != nil {
		return err
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", o.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, o.ID).Error
	})
}

func (r *OrderRepository) Count(tenantPath string, ownerID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.Order{}).
		Where("tenant_path = ? AND owner_id = ?", tenantPath, ownerID).Count(&n).Error
	return n, err
}
