package repository

import (
	"errors"

	"orderhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrRatingRange = errors.New("rating must be between 1 and 5")

type ExperienceRepository struct {
	db *gorm.DB
}

func NewExperienceRepository(db *gorm.DB) *ExperienceRepository {
	return &ExperienceRepository{db: db}
}

func (r *ExperienceRepository) GetByOrder(tenantPath, orderDocID string) (*models.Experience, error) {
	var e models.Experience
	err := r.db.Where("tenant_path = ? AND order_doc_id = ?", tenantPath, orderDocID).
		Order("created_at ASC, id ASC").First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// UpsertByOrder keeps at most one experience per order: an existing record is
// updated in place, otherwise a new one is inserted.
func (r *ExperienceRepository) UpsertByOrder(e *models.Experience) (*models.Experience, error) {
	if e.TenantPath == "" {
		return nil, ErrNoTenantPath
	}
	if e.Rating < 1 || e.Rating > 5 {
		return nil, ErrRatingRange
	}
	existing, err := r.GetByOrder(e.TenantPath, e.OrderDocID)
	if err == nil {
		return existing, r.db.Model(existing).Updates(map[string]interface{}{
			"rating":  e.Rating,
			"comment": e.Comment,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if e.DocID == "" {
		e.DocID = uuid.NewString()
	}
	if err := r.db.Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

func (r *ExperienceRepository) List(tenantPath string, ownerID uint) ([]models.Experience, error) {
	if tenantPath == "" {
		return nil, ErrNoTenantPath
	}
	var list []models.Experience
	err := r.db.Where("tenant_path = ? AND owner_id = ?", tenantPath, ownerID).
		Order("created_at DESC").Find(&list).Error
	return list, err
}
