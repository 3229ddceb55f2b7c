package notify

import (
	"fmt"
	"strings"

	"apebrain-backend/internal/model"
)

// Email shells follow the ApeBrain.cloud house style: single white card on a
// grey background, green accent.

const cardOpen = `<html><body style="font-family: Arial, sans-serif; background-color: #f8f9fa; padding: 20px;">` +
	`<div style="max-width: 600px; margin: 0 auto; background-color: white; border-radius: 10px; padding: 30px;">`

const cardClose = `<hr style="border: none; border-top: 1px solid #e5e7eb; margin: 30px 0;">` +
	`<p style="color: #9ca3af; font-size: 0.8rem;">ApeBrain.cloud</p></div></body></html>`

func itemRows(items []model.OrderItem) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString(fmt.Sprintf(
			`<tr><td style="padding: 6px 0;">%s × %d</td><td style="text-align: right;">$%.2f</td></tr>`,
			it.Name, it.Quantity, it.Price*float64(it.Quantity)))
	}
	return b.String()
}

// NewOrderEmail is the operator "new order" notification.
func NewOrderEmail(o *model.Order) (subject, body string) {
	subject = fmt.Sprintf("🍄 New Order %s - $%.2f", shortID(o.ID), o.Total)

	var b strings.Builder
	b.WriteString(cardOpen)
	b.WriteString(`<h2 style="color: #7a9053;">New Order Received</h2>`)
	b.WriteString(fmt.Sprintf(`<p>Order <strong>%s</strong> from %s</p>`, o.ID, o.CustomerEmail))
	b.WriteString(`<table style="width: 100%;">`)
	b.WriteString(itemRows(o.Items))
	if o.DiscountAmount > 0 {
		b.WriteString(fmt.Sprintf(
			`<tr><td style="padding: 6px 0;">Discount (%s)</td><td style="text-align: right;">-$%.2f</td></tr>`,
			o.CouponCode, o.DiscountAmount))
	}
	b.WriteString(fmt.Sprintf(
		`<tr><td style="padding: 6px 0;"><strong>Total</strong></td><td style="text-align: right;"><strong>$%.2f</strong></td></tr>`,
		o.Total))
	b.WriteString(`</table>`)
	b.WriteString(cardClose)
	return subject, b.String()
}

// StatusChangedEmail is the customer-facing status update.
func StatusChangedEmail(o *model.Order) (subject, body string) {
	headline := "Your order status changed"
	detail := fmt.Sprintf("Your order is now <strong>%s</strong>.", o.Status)

	switch o.Status {
	case model.OrderStatusPaid:
		headline = "Payment received"
		detail = "Thank you for your purchase! We received your payment and are preparing your order."
	case model.OrderStatusShipped:
		headline = "Your order is on its way"
		detail = "Your order has been shipped."
		if o.TrackingNumber != "" {
			detail += fmt.Sprintf(
				` Track it with <strong>%s</strong> (%s): <a href="%s">%s</a>`,
				o.TrackingCarrier, o.TrackingNumber, o.TrackingURL, o.TrackingURL)
		}
	case model.OrderStatusDelivered:
		headline = "Your order was delivered"
		detail = "Your order has been delivered. Enjoy!"
	}

	subject = fmt.Sprintf("🍄 Order %s: %s", shortID(o.ID), headline)

	var b strings.Builder
	b.WriteString(cardOpen)
	b.WriteString(fmt.Sprintf(`<h2 style="color: #7a9053;">%s</h2>`, headline))
	b.WriteString(fmt.Sprintf(`<p>%s</p>`, detail))
	b.WriteString(fmt.Sprintf(`<p style="color: #6b7280; font-size: 0.9rem;">Order reference: %s</p>`, o.ID))
	b.WriteString(cardClose)
	return subject, b.String()
}

// DeliveredEmail is the operator confirmation that a shipment completed.
func DeliveredEmail(o *model.Order) (subject, body string) {
	subject = fmt.Sprintf("🍄 Order %s delivered", shortID(o.ID))

	var b strings.Builder
	b.WriteString(cardOpen)
	b.WriteString(`<h2 style="color: #7a9053;">Delivery Completed</h2>`)
	b.WriteString(fmt.Sprintf(`<p>Order <strong>%s</strong> for %s was delivered.</p>`, o.ID, o.CustomerEmail))
	b.WriteString(cardClose)
	return subject, b.String()
}

// PasswordResetEmail carries the reset link; it expires after an hour.
func PasswordResetEmail(link string) (subject, body string) {
	subject = "Password Reset - ApeBrain.cloud"

	var b strings.Builder
	b.WriteString(cardOpen)
	b.WriteString(`<h2 style="color: #7a9053;">🍄 Password Reset Request</h2>`)
	b.WriteString(`<p>Hello,</p>`)
	b.WriteString(`<p>You requested to reset your password for your ApeBrain.cloud account.</p>`)
	b.WriteString(`<p>Click the button below to reset your password (link expires in 1 hour):</p>`)
	b.WriteString(fmt.Sprintf(
		`<a href="%s" style="display: inline-block; background-color: #7a9053; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 20px 0;">Reset Password</a>`,
		link))
	b.WriteString(`<p style="color: #6b7280; font-size: 0.9rem;">If you didn't request this, please ignore this email.</p>`)
	b.WriteString(cardClose)
	return subject, b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
