package repository

import (
	"orderhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(tenantPath string, ownerID uint) ([]models.Product, error) {
	if tenantPath == "" {
		return nil, ErrNoTenantPath
	}
	var list []models.Product
	err := r.db.Where("tenant_path = ? AND owner_id = ?", tenantPath, ownerID).
		Order("created_at ASC, id ASC").Find(&list).Error
	return list, err
}

func (r *ProductRepository) GetByDocID(tenantPath, docID string) (*models.Product, error) {
	var p models.Product
	err := r.db.Where("tenant_path = ? AND doc_id = ?", tenantPath, docID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// codeTaken checks for another product in the tenant carrying the same code.
// Query-then-compare, not a DB constraint; concurrent creators can race.
func (r *ProductRepository) codeTaken(tenantPath, code, excludeDocID string) (bool, error) {
	if code == "" {
		return false, nil
	}
	q := r.db.Model(&models.Product{}).
		Where("tenant_path = ? AND code = ?", tenantPath, code)
	if excludeDocID != "" {
		q = q.Where("doc_id <> ?", excludeDocID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts a product, failing with ErrDuplicateCode if another product
// in the tenant already carries the same non-empty code. A caller-supplied
// DocID is honored (bulk import); otherwise one is generated.
func (r *ProductRepository) Create(p *models.Product) error {
	if p.TenantPath == "" {
		return ErrNoTenantPath
	}
	taken, err := r.codeTaken(p.TenantPath, p.Code, "")
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateCode
	}
	if p.DocID == "" {
		p.DocID = uuid.NewString()
	}
	return r.db.Create(p).Error
}

// Update applies a partial update; when the update sets a code, uniqueness is
// re-checked excluding the record itself.
func (r *ProductRepository) Update(tenantPath, docID string, fields map[string]interface{}) error {
	if code, ok := fields["code"].(string); ok && code != "" {
		taken, err := r.codeTaken(tenantPath, code, docID)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateCode
		}
	}
	res := r.db.Model(&models.Product{}).
		Where("tenant_path = ? AND doc_id = ?", tenantPath, docID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete is a hard delete with no referential check against orders; items
// keep their snapshot of the product.
func (r *ProductRepository) Delete(tenantPath, docID string) error {
	res := r.db.Where("tenant_path = ? AND doc_id = ?", tenantPath, docID).
		Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProductRepository) Count(tenantPath string, ownerID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.Product{}).
		Where("tenant_path = ? AND owner_id = ?", tenantPath, ownerID).Count(&n).Error
	return n, err
}
