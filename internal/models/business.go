package models

import (
	"time"

	"orderhub/internal/tenant"
)

// Business is the per-tenant record keyed by the owner's email. Capability
// flags and quotas are a snapshot copied from a PlanDefinition at assignment
// time; editing the plan template later never changes rows already carrying
// the copy.
type Business struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	OwnerID      uint   `gorm:"not null;uniqueIndex" json:"owner_id"`
	Email        string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	BusinessName string `gorm:"size:255;not null" json:"business_name"`
	OwnerName    string `gorm:"size:255" json:"owner_name"`
	Phone        string `gorm:"size:32" json:"phone"`
	Address      string `gorm:"size:512" json:"address"`
	About        string `gorm:"type:text" json:"about"`

	PlanTier string `gorm:"size:40" json:"plan_tier"`

	CanAddOrder           bool `gorm:"default:false" json:"can_add_order"`
	CanAddCustomer        bool `gorm:"default:false" json:"can_add_customer"`
	CanAddProducts        bool `gorm:"default:false" json:"can_add_products"`
	HasExportImportOption bool `gorm:"default:false" json:"has_export_import_option"`
	MaxOrderNumber        int  `gorm:"default:0" json:"max_order_number"`
	MaxCustomerNumber     int  `gorm:"default:0" json:"max_customer_number"`
	MaxProductNumber      int  `gorm:"default:0" json:"max_product_number"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RootPath derives the tenant storage namespace. It is recomputed on demand,
// never stored, so it stays stable for a given (name, email) pair.
func (b *Business) RootPath() string {
	return tenant.RootPath(b.BusinessName, b.Email)
}
