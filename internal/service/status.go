package service

import (
	"errors"
	"fmt"
	"net/url"

	"apebrain-backend/internal/model"
)

var (
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

var validStatuses = map[string]bool{
	model.OrderStatusPending:   true,
	model.OrderStatusPaid:      true,
	model.OrderStatusPacked:    true,
	model.OrderStatusShipped:   true,
	model.OrderStatusInTransit: true,
	model.OrderStatusDelivered: true,
	model.OrderStatusCancelled: true,
}

// statusTransitions is the forward-only order lifecycle. delivered and
// cancelled are terminal.
var statusTransitions = map[string][]string{
	model.OrderStatusPending:   {model.OrderStatusPaid, model.OrderStatusCancelled},
	model.OrderStatusPaid:      {model.OrderStatusPacked, model.OrderStatusShipped, model.OrderStatusCancelled},
	model.OrderStatusPacked:    {model.OrderStatusShipped, model.OrderStatusCancelled},
	model.OrderStatusShipped:   {model.OrderStatusInTransit, model.OrderStatusDelivered},
	model.OrderStatusInTransit: {model.OrderStatusDelivered},
	model.OrderStatusDelivered: {},
	model.OrderStatusCancelled: {},
}

// CheckTransition validates a requested status change against the lifecycle
// table.
func CheckTransition(current, next string) error {
	if !validStatuses[next] {
		return ErrInvalidStatus
	}
	if current == next {
		return nil
	}
	for _, allowed := range statusTransitions[current] {
		if allowed == next {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, next)
}

// carrierTrackingURLs maps a lowercased carrier name to a tracking URL
// template with a %s slot for the tracking number.
var carrierTrackingURLs = map[string]string{
	"dhl":        "https://www.dhl.com/en/express/tracking.html?AWB=%s",
	"ups":        "https://www.ups.com/track?tracknum=%s",
	"fedex":      "https://www.fedex.com/fedextrack/?trknbr=%s",
	"usps":       "https://tools.usps.com/go/TrackConfirmAction?tLabels=%s",
	"hermes":     "https://www.myhermes.de/empfangen/sendungsverfolgung/sendungsinformation#%s",
	"dpd":        "https://tracking.dpd.de/status/en_US/parcel/%s",
	"gls":        "https://gls-group.eu/track/%s",
	"royal-mail": "https://www.royalmail.com/track-your-item#/tracking-results/%s",
}

// TrackingURL derives the carrier tracking page for a shipment. Unrecognized
// carriers fall back to a search query.
func TrackingURL(carrier, trackingNumber string) string {
	if tmpl, ok := carrierTrackingURLs[normalizeCarrier(carrier)]; ok {
		return fmt.Sprintf(tmpl, url.QueryEscape(trackingNumber))
	}
	return fmt.Sprintf("https://www.google.com/search?q=%s",
		url.QueryEscape(carrier+" tracking "+trackingNumber))
}

func normalizeCarrier(carrier string) string {
	out := make([]rune, 0, len(carrier))
	for _, r := range carrier {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ':
			out = append(out, '-')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
