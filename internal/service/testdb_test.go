package service

import (
	"testing"

	"orderhub/internal/models"
	"orderhub/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Business{},
		&models.Customer{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Experience{},
		&models.PlanDefinition{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testProfile() *Profile {
	return &Profile{
		UID:        1,
		Email:      "owner@gmail.com",
		Role:       "BUSINESS",
		TenantPath: "SweetCakesownergmailcom",
		Capabilities: Capabilities{
			CanAddOrder: true, CanAddCustomer: true, CanAddProducts: true,
			MaxOrderNumber: 100, MaxCustomerNumber: 100, MaxProductNumber: 100,
		},
	}
}

func newOrderService(db *gorm.DB) (*OrderService, *repository.OrderRepository, *repository.CustomerRepository, *repository.ExperienceRepository) {
	orders := repository.NewOrderRepository(db)
	customers := repository.NewCustomerRepository(db)
	experiences := repository.NewExperienceRepository(db)
	return NewOrderService(orders, customers, experiences), orders, customers, experiences
}
