package repository

import (
	"orderhub/internal/models"

	"gorm.io/gorm"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) List() ([]models.PlanDefinition, error) {
	var plans []models.PlanDefinition
	err := r.db.Order("price ASC").Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) GetByID(id uint) (*models.PlanDefinition, error) {
	var p models.PlanDefinition
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlanRepository) GetByName(name string) (*models.PlanDefinition, error) {
	var p models.PlanDefinition
	if err := r.db.Where("name = ?", name).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlanRepository) Create(p *models.PlanDefinition) error {
	return r.db.Create(p).Error
}

func (r *PlanRepository) Update(p *models.PlanDefinition) error {
	return r.db.Save(p).Error
}

func (r *PlanRepository) Delete(id uint) error {
	return r.db.Delete(&models.PlanDefinition{}, id).Error
}
