package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionDelivery(t *testing.T) {
	cases := []struct {
		name    string
		from    DeliveryStatus
		to      DeliveryStatus
		wantErr error
	}{
		{"confirmed ke packing", DeliveryConfirmed, DeliveryPacking, nil},
		{"packing ke in transit", DeliveryPacking, DeliveryInTransit, nil},
		{"in transit ke delivered", DeliveryInTransit, DeliveryDelivered, nil},
		{"cancel dari confirmed", DeliveryConfirmed, DeliveryCancelled, nil},
		{"cancel dari packing", DeliveryPacking, DeliveryCancelled, nil},
		{"cancel dari in transit", DeliveryInTransit, DeliveryCancelled, nil},
		{"loncat tahap", DeliveryConfirmed, DeliveryInTransit, ErrInvalidTransition},
		{"mundur", DeliveryPacking, DeliveryConfirmed, ErrInvalidTransition},
		{"dari delivered", DeliveryDelivered, DeliveryCancelled, ErrAlreadyFinalState},
		{"dari cancelled", DeliveryCancelled, DeliveryPacking, ErrAlreadyFinalState},
		{"cancel lagi", DeliveryCancelled, DeliveryCancelled, ErrAlreadyFinalState},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanTransitionDelivery(tc.from, tc.to)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestValidDeliveryStatus(t *testing.T) {
	for _, s := range []DeliveryStatus{
		DeliveryConfirmed, DeliveryPacking, DeliveryInTransit, DeliveryDelivered, DeliveryCancelled,
	} {
		assert.True(t, ValidDeliveryStatus(s), string(s))
	}
	assert.False(t, ValidDeliveryStatus("Shipped"))
	assert.False(t, ValidDeliveryStatus(""))
}

func TestIsTerminalDelivery(t *testing.T) {
	assert.True(t, IsTerminalDelivery(DeliveryDelivered))
	assert.True(t, IsTerminalDelivery(DeliveryCancelled))
	assert.False(t, IsTerminalDelivery(DeliveryConfirmed))
	assert.False(t, IsTerminalDelivery(DeliveryInTransit))
}
