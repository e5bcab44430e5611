package database

import (
	"errors"

	"orderhub/config"
	"orderhub/internal/domain"
	"orderhub/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Business{},
		&models.Customer{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Experience{},
		&models.PlanDefinition{},
		&models.AuditLog{},
	)
}

// SeedAdmin creates the super-admin account if it does not exist yet.
func SeedAdmin(db *gorm.DB, cfg *config.AdminConfig) error {
	var existing models.User
	err := db.Where("role = ?", domain.RoleAdmin).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Email:        cfg.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Status:       domain.AccountEnabled,
	}).Error
}

// SeedPlans inserts the default plan templates once. Existing rows are left
// untouched so admin edits survive restarts.
func SeedPlans(db *gorm.DB) error {
	plans := []models.PlanDefinition{
		{
			Name: domain.PlanLite, Price: decimal.Zero,
			CanAddOrder: true, CanAddCustomer: true,
			MaxOrderNumber: 50, MaxCustomerNumber: 50, MaxProductNumber: 10,
		},
		{
			Name: domain.PlanSilver, Price: decimal.NewFromInt(300),
			CanAddOrder: true, CanAddCustomer: true, CanAddProducts: true,
			MaxOrderNumber: 300, MaxCustomerNumber: 300, MaxProductNumber: 50,
		},
		{
			Name: domain.PlanGold, Price: decimal.NewFromInt(600),
			CanAddOrder: true, CanAddCustomer: true, CanAddProducts: true, HasExportImportOption: true,
			MaxOrderNumber: 1500, MaxCustomerNumber: 1500, MaxProductNumber: 200,
		},
		{
			Name: domain.PlanElite, Price: decimal.NewFromInt(1000),
			CanAddOrder: true, CanAddCustomer: true, CanAddProducts: true, HasExportImportOption: true,
			MaxOrderNumber: 100000, MaxCustomerNumber: 100000, MaxProductNumber: 5000,
		},
	}
	for i := range plans {
		var existing models.PlanDefinition
		err := db.Where("name = ?", plans[i].Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&plans[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
