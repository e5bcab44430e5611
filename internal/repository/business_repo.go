package repository

import (
	"orderhub/internal/models"

	"gorm.io/gorm"
)

type BusinessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

func (r *BusinessRepository) Create(b *models.Business) error {
	return r.db.Create(b).Error
}

func (r *BusinessRepository) GetByOwnerID(ownerID uint) (*models.Business, error) {
	var b models.Business
	if err := r.db.Where("owner_id = ?", ownerID).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BusinessRepository) GetByEmail(email string) (*models.Business, error) {
	var b models.Business
	if err := r.db.Where("email = ?", email).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BusinessRepository) Update(b *models.Business) error {
	return r.db.Save(b).Error
}

func (r *BusinessRepository) UpdateFields(ownerID uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Business{}).Where("owner_id = ?", ownerID).Updates(fields).Error
}

func (r *BusinessRepository) List(search string, page, limit int) ([]models.Business, int64, error) {
	q := r.db.Model(&models.Business{})
	if search != "" {
		q = q.Where("business_name LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Business
	err := q.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&list).Error
	return list, total, err
}
