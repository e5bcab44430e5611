package models

import (
	"time"

	"orderhub/internal/domain"

	"gorm.io/gorm"
)

// User is the minimal account record: role, status and the account-level
// order-creation flag. The richer business profile lives in Business and is
// merged in by the profile resolver.
type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Email           string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash    string         `gorm:"size:255" json:"-"`
	Role            string         `gorm:"size:20;not null;index" json:"role"` // ADMIN | BUSINESS
	Status          string         `gorm:"size:20;not null;default:'ENABLED';index" json:"status"`
	CanCreateOrders bool           `gorm:"default:true" json:"can_create_orders"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) IsAdmin() bool    { return u.Role == domain.RoleAdmin }
func (u *User) IsDisabled() bool { return u.Status == domain.AccountDisabled }
