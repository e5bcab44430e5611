package repository

import (
	"errors"
	"strings"

	"orderhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// List returns every customer in the tenant namespace owned by the caller,
// in a deterministic order so phone-match tie-breaks are stable.
func (r *CustomerRepository) List(tenantPath string, ownerID uint) ([]models.Customer, error) {
	if tenantPath == "" {
		return nil, ErrNoTenantPath
	}
	var list []models.Customer
	err := r.db.Where("tenant_path = ? AND owner_id = ?", tenantPath, ownerID).
		Order("created_at ASC, id ASC").Find(&list).Error
	return list, err
}

func (r *CustomerRepository) GetByDocID(tenantPath, docID string) (*models.Customer, error) {
	var c models.Customer
	err := r.db.Where("tenant_path = ? AND doc_id = ?", tenantPath, docID).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create is idempotent on phone: if a customer with the same raw phone string
// already exists in the tenant, that record is returned unchanged and nothing
// is inserted.
func (r *CustomerRepository) Create(c *models.Customer) (*models.Customer, error) {
	if c.TenantPath == "" {
		return nil, ErrNoTenantPath
	}
	var existing models.Customer
	err := r.db.Where("tenant_path = ? AND phone = ?", c.TenantPath, c.Phone).
		Order("created_at ASC, id ASC").First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if c.DocID == "" {
		c.DocID = uuid.NewString()
	}
	if err := r.db.Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// Update writes only the supplied fields and stamps updated_at.
func (r *CustomerRepository) Update(tenantPath, docID string, fields map[string]interface{}) error {
	res := r.db.Model(&models.Customer{}).
		Where("tenant_path = ? AND doc_id = ?", tenantPath, docID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete is a hard delete. Orders referencing the customer keep their
// dangling reference.
func (r *CustomerRepository) Delete(tenantPath, docID string) error {
	res := r.db.Where("tenant_path = ? AND doc_id = ?", tenantPath, docID).
		Delete(&models.Customer{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CustomerRepository) Count(tenantPath string, ownerID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.Customer{}).
		Where("tenant_path = ? AND owner_id = ?", tenantPath, ownerID).Count(&n).Error
	return n, err
}

// NormalizePhone strips everything but digits.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FindByPhone is the local lookup over an already-loaded customer list:
// exact digit match first, then a suffix match where both sides carry at
// least 8 digits (regional numbers with or without a country-code prefix).
// First match in list order wins.
func FindByPhone(customers []models.Customer, input string) *models.Customer {
	digits := NormalizePhone(input)
	if digits == "" {
		return nil
	}
	for i := range customers {
		if NormalizePhone(customers[i].Phone) == digits {
			return &customers[i]
		}
	}
	if len(digits) < 8 {
		return nil
	}
	for i := range customers {
		have := NormalizePhone(customers[i].Phone)
		if len(have) < 8 {
			continue
		}
		if strings.HasSuffix(have, digits) || strings.HasSuffix(digits, have) {
			return &customers[i]
		}
	}
	return nil
}
