package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(tenantPath string, buffer int) *Client {
	return &Client{UserID: 1, TenantPath: tenantPath, Send: make(chan []byte, buffer)}
}

func TestPublishReachesTenantSubscribersOnly(t *testing.T) {
	h := NewHub()
	a := newTestClient("TenantA", 4)
	b := newTestClient("TenantB", 4)
	h.Register(a)
	h.Register(b)

	h.Publish("TenantA", "orders", "created", "doc-1")

	require.Len(t, a.Send, 1)
	assert.Len(t, b.Send, 0)

	var ev Event
	require.NoError(t, json.Unmarshal(<-a.Send, &ev))
	assert.Equal(t, "change", ev.Type)
	assert.Equal(t, "orders", ev.Collection)
	assert.Equal(t, "created", ev.Action)
	assert.Equal(t, "doc-1", ev.DocID)
	assert.False(t, ev.At.IsZero())
}

func TestPublishPreservesPerStreamOrder(t *testing.T) {
	h := NewHub()
	c := newTestClient("TenantA", 8)
	h.Register(c)

	h.Publish("TenantA", "orders", "created", "doc-1")
	h.Publish("TenantA", "orders", "updated", "doc-1")
	h.Publish("TenantA", "orders", "deleted", "doc-1")

	want := []string{"created", "updated", "deleted"}
	for _, action := range want {
		var ev Event
		require.NoError(t, json.Unmarshal(<-c.Send, &ev))
		assert.Equal(t, action, ev.Action)
	}
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	h := NewHub()
	c := newTestClient("TenantA", 1)
	h.Register(c)

	h.Publish("TenantA", "orders", "created", "doc-1")
	h.Publish("TenantA", "orders", "created", "doc-2") // buffer full, dropped

	require.Len(t, c.Send, 1)
	var ev Event
	require.NoError(t, json.Unmarshal(<-c.Send, &ev))
	assert.Equal(t, "doc-1", ev.DocID)
}

func TestCloseUnregistersAndIsIdempotent(t *testing.T) {
	h := NewHub()
	c := newTestClient("TenantA", 1)
	h.Register(c)
	assert.Equal(t, 1, h.SubscriberCount("TenantA"))

	c.Close()
	c.Close()
	assert.Equal(t, 0, h.SubscriberCount("TenantA"))

	// Publishing to an empty tenant is a no-op.
	h.Publish("TenantA", "orders", "created", "doc-1")
}
