package repository

import (
	"testing"
	"time"

	"orderhub/internal/domain"
	"orderhub/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(items []models.OrderItem, delivery int64) *models.Order {
	return &models.Order{
		TenantPath:     testTenant,
		OwnerID:        testOwner,
		CustomerDocID:  "cust-1",
		Items:          items,
		DeliveryCharge: decimal.NewFromInt(delivery),
		OrderDate:      time.Now(),
		Channel:        domain.ChannelWhatsApp,
	}
}

func cakeItems() []models.OrderItem {
	return []models.OrderItem{
		{Name: "Cake", UnitPrice: decimal.NewFromInt(20), Quantity: 2},
	}
}

func TestOrderCreateRecomputesTotal(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))

	o := newOrder(cakeItems(), 5)
	o.TotalAmount = decimal.NewFromInt(999) // client-supplied total is ignored
	require.NoError(t, repo.Create(o))

	got, err := repo.GetByDocID(testTenant, o.DocID)
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(45)), "got %s", got.TotalAmount)
	assert.Equal(t, domain.OrderPending, got.Status)
	assert.Len(t, got.Items, 1)
}

func TestOrderUpdateRecomputesTotal(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))
	o := newOrder(cakeItems(), 5)
	require.NoError(t, repo.Create(o))

	// Replace items and raise the delivery charge in one edit.
	err := repo.Update(testTenant, o.DocID,
		map[string]interface{}{"delivery_charge": decimal.NewFromInt(10)},
		[]models.OrderItem{
			{Name: "Cake", UnitPrice: decimal.NewFromInt(20), Quantity: 1},
			{Name: "Cookies", UnitPrice: decimal.NewFromInt(3), Quantity: 4},
		})
	require.NoError(t, err)

	got, err := repo.GetByDocID(testTenant, o.DocID)
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(42)), "got %s", got.TotalAmount)
	assert.Len(t, got.Items, 2)

	// A field-only edit re-derives the total from the stored items.
	err = repo.Update(testTenant, o.DocID,
		map[string]interface{}{"delivery_charge": decimal.Zero}, nil)
	require.NoError(t, err)
	got, err = repo.GetByDocID(testTenant, o.DocID)
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(32)), "got %s", got.TotalAmount)
}

func TestOrderStatusTransitionClosure(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))
	o := newOrder(cakeItems(), 0)
	require.NoError(t, repo.Create(o))

	// PENDING cannot jump straight to COMPLETED.
	err := repo.UpdateStatus(testTenant, o.DocID, domain.OrderCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, repo.UpdateStatus(testTenant, o.DocID, domain.OrderProcessing))
	require.NoError(t, repo.UpdateStatus(testTenant, o.DocID, domain.OrderCompleted))

	// Terminal states are closed.
	err = repo.UpdateStatus(testTenant, o.DocID, domain.OrderPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	err = repo.UpdateStatus(testTenant, o.DocID, domain.OrderCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrderCancelFromPending(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))
	o := newOrder(cakeItems(), 0)
	require.NoError(t, repo.Create(o))
	require.NoError(t, repo.UpdateStatus(testTenant, o.DocID, domain.OrderCancelled))

	got, err := repo.GetByDocID(testTenant, o.DocID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, got.Status)
}

func TestEnsureInvoiceNumberAssignedOnce(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))
	o := newOrder(cakeItems(), 0)
	require.NoError(t, repo.Create(o))

	inv1, err := repo.EnsureInvoiceNumber(testTenant, o.DocID)
	require.NoError(t, err)
	require.NotEmpty(t, inv1)

	inv2, err := repo.EnsureInvoiceNumber(testTenant, o.DocID)
	require.NoError(t, err)
	assert.Equal(t, inv1, inv2)

	got, err := repo.GetByDocID(testTenant, o.DocID)
	require.NoError(t, err)
	assert.Equal(t, inv1, got.InvoiceNumber)
}

func TestOrderDeleteRemovesItems(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	o := newOrder(cakeItems(), 0)
	require.NoError(t, repo.Create(o))
	require.NoError(t, repo.Delete(testTenant, o.DocID))

	var items int64
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&items).Error)
	assert.EqualValues(t, 0, items)
}
