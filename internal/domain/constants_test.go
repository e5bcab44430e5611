package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusMachine(t *testing.T) {
	allowed := map[[2]string]bool{
		{OrderPending, OrderProcessing}:   true,
		{OrderPending, OrderCancelled}:    true,
		{OrderProcessing, OrderCompleted}: true,
		{OrderProcessing, OrderCancelled}: true,
	}
	statuses := []string{OrderPending, OrderProcessing, OrderCompleted, OrderCancelled}
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]string{from, to}]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	// Unknown statuses go nowhere.
	assert.False(t, CanTransition("SHIPPED", OrderCompleted))
	assert.False(t, CanTransition(OrderPending, "SHIPPED"))
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, IsTerminalStatus(OrderCompleted))
	assert.True(t, IsTerminalStatus(OrderCancelled))
	assert.False(t, IsTerminalStatus(OrderPending))
	assert.False(t, IsTerminalStatus(OrderProcessing))
}

func TestValidChannel(t *testing.T) {
	assert.True(t, ValidChannel(ChannelWhatsApp))
	assert.True(t, ValidChannel(ChannelMessenger))
	assert.True(t, ValidChannel(ChannelPhone))
	assert.False(t, ValidChannel("EMAIL"))
	assert.False(t, ValidChannel(""))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(OrderPending))
	assert.False(t, ValidStatus("pending"))
	assert.False(t, ValidStatus(""))
}
