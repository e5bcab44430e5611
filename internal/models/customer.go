package models

import "time"

// Customer lives under exactly one tenant namespace. Phone is free text and
// acts as a soft-unique key within the tenant: creation looks up the raw
// phone string before inserting.
type Customer struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	DocID      string    `gorm:"size:36;not null;uniqueIndex" json:"id"`
	TenantPath string    `gorm:"size:255;not null;index" json:"-"`
	OwnerID    uint      `gorm:"not null;index" json:"owner_id"`
	Phone      string    `gorm:"size:64;not null;index" json:"phone"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      string    `gorm:"size:255" json:"email,omitempty"`
	Address    string    `gorm:"size:512" json:"address,omitempty"`
	Rating     int       `gorm:"default:0" json:"rating"` // 0..5
	Comment    string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
