package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanDefinition is a named capability/quota bundle. Assigning a plan to a
// tenant copies these fields onto the Business row; the tenant's effective
// capabilities are that snapshot, not a live reference.
type PlanDefinition struct {
	ID    uint            `gorm:"primaryKey" json:"id"`
	Name  string          `gorm:"size:40;not null;uniqueIndex" json:"name"`
	Price decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`

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

// ApplyTo copies the plan's capability and quota fields onto a business.
func (p *PlanDefinition) ApplyTo(b *Business) {
	b.PlanTier = p.Name
	b.CanAddOrder = p.CanAddOrder
	b.CanAddCustomer = p.CanAddCustomer
	b.CanAddProducts = p.CanAddProducts
	b.HasExportImportOption = p.HasExportImportOption
	b.MaxOrderNumber = p.MaxOrderNumber
	b.MaxCustomerNumber = p.MaxCustomerNumber
	b.MaxProductNumber = p.MaxProductNumber
}
