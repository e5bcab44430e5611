package models

import "time"

// Experience is the post-order feedback captured when an order enters a
// terminal status. At most one per order in the normal flow; the repository
// looks up by order id to decide create-vs-update.
type Experience struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	DocID         string    `gorm:"size:36;not null;uniqueIndex" json:"id"`
	TenantPath    string    `gorm:"size:255;not null;index" json:"-"`
	OwnerID       uint      `gorm:"not null;index" json:"owner_id"`
	OrderDocID    string    `gorm:"size:36;not null;index" json:"order_id"`
	CustomerDocID string    `gorm:"size:36;index" json:"customer_id"`
	Rating        int       `gorm:"not null" json:"rating"` // 1..5
	Comment       string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
