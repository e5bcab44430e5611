package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the ledger entry for one sale. TotalAmount is never trusted from
// the client: it is recomputed from the items and delivery charge before
// every persist.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"-"`
	DocID         string      `gorm:"size:36;not null;uniqueIndex" json:"id"`
	TenantPath    string      `gorm:"size:255;not null;index" json:"-"`
	OwnerID       uint        `gorm:"not null;index" json:"owner_id"`
	CustomerDocID string      `gorm:"size:36;not null;index" json:"customer_id"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	DeliveryCharge decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"delivery_charge"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`

	OrderDate       time.Time  `json:"order_date"`
	HasOrderTime    bool       `gorm:"default:false" json:"has_order_time"`
	DeliveryDate    *time.Time `json:"delivery_date,omitempty"`
	HasDeliveryTime bool       `gorm:"default:false" json:"has_delivery_time"`

	Status          string `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	Channel         string `gorm:"size:20;not null;index" json:"channel"` // WHATSAPP | MESSENGER | PHONE
	Notes           string `gorm:"type:text" json:"notes,omitempty"`
	DeliveryAddress string `gorm:"size:512" json:"delivery_address,omitempty"`
	InvoiceNumber   string `gorm:"size:40" json:"invoice_number,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem snapshots the product at order time; the product reference is
// informational and may dangle after a product delete.
type OrderItem struct {
	ID            uint            `gorm:"primaryKey" json:"-"`
	OrderID       uint            `gorm:"not null;index" json:"-"`
	ProductDocID  string          `gorm:"size:36" json:"product_id,omitempty"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	Code          string          `gorm:"size:64" json:"code,omitempty"`
	Description   string          `gorm:"size:512" json:"description,omitempty"`
}

// ComputeTotal returns sum(unit_price * quantity) over items plus the
// delivery charge.
func (o *Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total.Add(o.DeliveryCharge)
}
