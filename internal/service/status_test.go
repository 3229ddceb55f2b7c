package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apebrain-backend/internal/model"
)

func TestCheckTransitionAllowed(t *testing.T) {
	cases := []struct {
		current string
		next    string
	}{
		{model.OrderStatusPending, model.OrderStatusPaid},
		{model.OrderStatusPending, model.OrderStatusCancelled},
		{model.OrderStatusPaid, model.OrderStatusPacked},
		{model.OrderStatusPaid, model.OrderStatusShipped},
		{model.OrderStatusPacked, model.OrderStatusShipped},
		{model.OrderStatusShipped, model.OrderStatusInTransit},
		{model.OrderStatusShipped, model.OrderStatusDelivered},
		{model.OrderStatusInTransit, model.OrderStatusDelivered},
	}
	for _, c := range cases {
		assert.NoError(t, CheckTransition(c.current, c.next), "%s -> %s", c.current, c.next)
	}
}

func TestCheckTransitionRejected(t *testing.T) {
	cases := []struct {
		current string
		next    string
	}{
		{model.OrderStatusDelivered, model.OrderStatusPending},
		{model.OrderStatusDelivered, model.OrderStatusShipped},
		{model.OrderStatusCancelled, model.OrderStatusPaid},
		{model.OrderStatusPending, model.OrderStatusDelivered},
		{model.OrderStatusShipped, model.OrderStatusPaid},
		{model.OrderStatusPaid, model.OrderStatusPending},
	}
	for _, c := range cases {
		err := CheckTransition(c.current, c.next)
		require.Error(t, err, "%s -> %s", c.current, c.next)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	}
}

func TestCheckTransitionUnknownStatus(t *testing.T) {
	err := CheckTransition(model.OrderStatusPending, "teleported")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCheckTransitionSameStatusIsNoop(t *testing.T) {
	assert.NoError(t, CheckTransition(model.OrderStatusShipped, model.OrderStatusShipped))
	assert.NoError(t, CheckTransition(model.OrderStatusDelivered, model.OrderStatusDelivered))
}

func TestTrackingURLKnownCarriers(t *testing.T) {
	assert.Equal(t,
		"https://www.dhl.com/en/express/tracking.html?AWB=JD014600003828",
		TrackingURL("DHL", "JD014600003828"))
	assert.Equal(t,
		"https://www.ups.com/track?tracknum=1Z999AA10123456784",
		TrackingURL("ups", "1Z999AA10123456784"))
	assert.Equal(t,
		"https://www.royalmail.com/track-your-item#/tracking-results/AB123456789GB",
		TrackingURL("Royal Mail", "AB123456789GB"))
}

func TestTrackingURLFallback(t *testing.T) {
	got := TrackingURL("Pony Express", "PX-42")
	assert.Equal(t, "https://www.google.com/search?q=Pony+Express+tracking+PX-42", got)
}
