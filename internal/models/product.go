package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product belongs to one tenant. Code is optional; when set it must be unique
// among the tenant's products (enforced by query-then-compare in the
// repository, not by a DB constraint).
type Product struct {
	ID         uint            `gorm:"primaryKey" json:"-"`
	DocID      string          `gorm:"size:36;not null;uniqueIndex" json:"id"`
	TenantPath string          `gorm:"size:255;not null;index" json:"-"`
	OwnerID    uint            `gorm:"not null;index" json:"owner_id"`
	Code       string          `gorm:"size:64;index" json:"code,omitempty"`
	Name       string          `gorm:"size:255;not null" json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Details    string          `gorm:"type:text" json:"details,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
