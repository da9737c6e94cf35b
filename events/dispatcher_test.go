package events

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderEvent(t *testing.T) {
	items := []EventItem{{ProductID: 7, Nama: "Beras", Quantity: 3}}
	ev := NewOrderEvent(12, 5, items, decimal.NewFromInt(150))

	assert.Equal(t, TypeNewOrder, ev.Type)
	assert.Equal(t, uint(12), ev.OrderID)
	assert.Equal(t, uint(5), ev.CustomerID)
	assert.Len(t, ev.Items, 1)
	assert.True(t, ev.TotalAmount.Equal(decimal.NewFromInt(150)))
	assert.NotEmpty(t, ev.ID)
}

func TestDispatcherDeliversToHandlers(t *testing.T) {
	got := make(chan Event, 1)
	d := NewDispatcher(8, nil, func(ev Event) { got <- ev })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	d.Publish(StatusUpdatedEvent(3, 9, "Packing"))

	select {
	case ev := <-got:
		assert.Equal(t, TypeOrderStatusUpdated, ev.Type)
		assert.Equal(t, "Packing", ev.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("event tidak sampai ke handler")
	}
}

func TestDispatcherPublishNeverBlocks(t *testing.T) {
	// tanpa consumer: buffer 1, publish kedua harus drop tanpa blok
	d := NewDispatcher(1, nil)

	done := make(chan struct{})
	go func() {
		d.Publish(StatusUpdatedEvent(1, 1, "Packing"))
		d.Publish(StatusUpdatedEvent(2, 1, "Packing"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish memblok padahal harus best-effort")
	}
	require.Len(t, d.ch, 1)
}
