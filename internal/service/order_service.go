package service

import (
	"errors"
	"time"

	"orderhub/internal/domain"
	"orderhub/internal/models"
	"orderhub/internal/repository"

	"github.com/shopspring/decimal"
)

var (
	ErrCustomerRequired = errors.New("customer phone is required")
	ErrItemsRequired    = errors.New("order needs at least one item")
	ErrBadChannel       = errors.New("unknown source channel")
)

// OrderItemInput is one line of the order form. Name and price snapshot the
// product; the product reference is optional.
type OrderItemInput struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
}

type OrderInput struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`

	Items          []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	DeliveryCharge decimal.Decimal  `json:"delivery_charge"`

	OrderDate       *time.Time `json:"order_date"`
	HasOrderTime    bool       `json:"has_order_time"`
	DeliveryDate    *time.Time `json:"delivery_date"`
	HasDeliveryTime bool       `json:"has_delivery_time"`

	Channel         string `json:"channel" binding:"required"`
	Notes           string `json:"notes"`
	DeliveryAddress string `json:"delivery_address"`
}

type OrderService struct {
	orders      *repository.OrderRepository
	customers   *repository.CustomerRepository
	experiences *repository.ExperienceRepository
}

func NewOrderService(orders *repository.OrderRepository, customers *repository.CustomerRepository, experiences *repository.ExperienceRepository) *OrderService {
	return &OrderService{orders: orders, customers: customers, experiences: experiences}
}

// Create resolves (or creates) the customer first, then persists the order.
// The total is recomputed from the line items plus delivery charge; any
// client-supplied total is ignored.
func (s *OrderService) Create(p *Profile, in *OrderInput) (*models.Order, *models.Customer, error) {
	if !domain.ValidChannel(in.Channel) {
		return nil, nil, ErrBadChannel
	}
	if len(in.Items) == 0 {
		return nil, nil, ErrItemsRequired
	}

	var cust *models.Customer
	var err error
	switch {
	case in.CustomerID != "":
		cust, err = s.customers.GetByDocID(p.TenantPath, in.CustomerID)
		if err != nil {
			return nil, nil, err
		}
	case in.CustomerPhone != "":
		cust, err = s.customers.Create(&models.Customer{
			TenantPath: p.TenantPath,
			OwnerID:    p.UID,
			Phone:      in.CustomerPhone,
			Name:       in.CustomerName,
		})
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, ErrCustomerRequired
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, models.OrderItem{
			ProductDocID: it.ProductID,
			Name:         it.Name,
			UnitPrice:    it.UnitPrice,
			Quantity:     it.Quantity,
			Code:         it.Code,
			Description:  it.Description,
		})
	}

	orderDate := time.Now()
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}
	o := &models.Order{
		TenantPath:      p.TenantPath,
		OwnerID:         p.UID,
		CustomerDocID:   cust.DocID,
		Items:           items,
		DeliveryCharge:  in.DeliveryCharge,
		OrderDate:       orderDate,
		HasOrderTime:    in.HasOrderTime,
		DeliveryDate:    in.DeliveryDate,
		HasDeliveryTime: in.HasDeliveryTime,
		Status:          domain.OrderPending,
		Channel:         in.Channel,
		Notes:           in.Notes,
		DeliveryAddress: in.DeliveryAddress,
	}
	if err := s.orders.Create(o); err != nil {
		return nil, nil, err
	}
	return o, cust, nil
}

// FinishWithFeedback captures the mandatory experience, then issues the
// terminal transition. The two writes are separate calls with no atomic
// guarantee between them; a failed transition leaves the experience behind.
func (s *OrderService) FinishWithFeedback(p *Profile, orderDocID, status string, rating int, comment string) (*models.Order, error) {
	if !domain.IsTerminalStatus(status) {
		return nil, repository.ErrInvalidTransition
	}
	o, err := s.orders.GetByDocID(p.TenantPath, orderDocID)
	if err != nil {
		return nil, err
	}
	_, err = s.experiences.UpsertByOrder(&models.Experience{
		TenantPath:    p.TenantPath,
		OwnerID:       p.UID,
		OrderDocID:    o.DocID,
		CustomerDocID: o.CustomerDocID,
		Rating:        rating,
		Comment:       comment,
	})
	if err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(p.TenantPath, orderDocID, status); err != nil {
		return nil, err
	}
	return s.orders.GetByDocID(p.TenantPath, orderDocID)
}
