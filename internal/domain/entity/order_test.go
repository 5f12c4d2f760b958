package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to  OrderStatus
		viaReturn bool
		want      bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, false, true},
		{OrderStatusPending, OrderStatusShipping, false, true},
		{OrderStatusConfirmed, OrderStatusShipping, false, true},
		{OrderStatusShipping, OrderStatusDelivered, false, true},
		{OrderStatusPending, OrderStatusCancelled, false, true},
		{OrderStatusPending, OrderStatusDelivered, false, false},
		{OrderStatusShipping, OrderStatusCancelled, false, false},
		{OrderStatusDelivered, OrderStatusPending, false, false},
		{OrderStatusDelivered, OrderStatusReturned, false, false},
		{OrderStatusDelivered, OrderStatusReturned, true, true},
		{OrderStatusShipping, OrderStatusReturned, true, false},
		{OrderStatusCancelled, OrderStatusPending, false, false},
	}
	for _, tc := range tests {
		got := CanTransition(tc.from, tc.to, tc.viaReturn)
		assert.Equal(t, tc.want, got, "%s -> %s (viaReturn=%v)", tc.from, tc.to, tc.viaReturn)
	}
}

func TestParseOrderStatus(t *testing.T) {
	st, ok := ParseOrderStatus("SHIPPING")
	assert.True(t, ok)
	assert.Equal(t, OrderStatusShipping, st)

	_, ok = ParseOrderStatus("shipping")
	assert.False(t, ok)
	_, ok = ParseOrderStatus("LOST")
	assert.False(t, ok)
}

func TestReturnRequestCanTransitionTo(t *testing.T) {
	r := &ReturnRequest{Status: ReturnStatusPending}
	assert.True(t, r.CanTransitionTo(ReturnStatusApproved))
	assert.True(t, r.CanTransitionTo(ReturnStatusRejected))
	assert.False(t, r.CanTransitionTo(ReturnStatusRefunded))

	r.Status = ReturnStatusApproved
	assert.True(t, r.CanTransitionTo(ReturnStatusRefunded))
	assert.False(t, r.CanTransitionTo(ReturnStatusRejected))

	r.Status = ReturnStatusRejected
	assert.False(t, r.CanTransitionTo(ReturnStatusApproved))
}
