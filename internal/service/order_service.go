package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"apebrain-backend/internal/dto"
	"apebrain-backend/internal/model"
	"apebrain-backend/internal/notify"
	"apebrain-backend/internal/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
)

// Interface implemented by repository
type OrderRepo interface {
	Insert(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindByPaymentID(ctx context.Context, paymentID string) (*model.Order, error)
	FindByIDAndEmail(ctx context.Context, id, email string) (*model.Order, error)
	FindAll(ctx context.Context) ([]*model.Order, error)
	FindByCustomerEmail(ctx context.Context, email string) ([]*model.Order, error)
	UpdateFields(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
	CountUnviewed(ctx context.Context) (int64, error)
}

var ErrPaymentNotCompleted = errors.New("payment capture did not complete")

type OrderService struct {
	repo       OrderRepo
	coupons    *CouponService
	payments   payment.Client
	dispatcher notify.Dispatcher
	returnURL  string
	cancelURL  string
	log        *slog.Logger
}

func NewOrderService(repo OrderRepo, coupons *CouponService, payments payment.Client,
	dispatcher notify.Dispatcher, frontendURL string, log *slog.Logger) *OrderService {
	return &OrderService{
		repo:       repo,
		coupons:    coupons,
		payments:   payments,
		dispatcher: dispatcher,
		returnURL:  frontendURL + "/shop/payment-success",
		cancelURL:  frontendURL + "/shop/payment-cancelled",
		log:        log,
	}
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Create runs the checkout workflow: resolve the coupon, create the provider
// payment, persist the order snapshot. Nothing is persisted when the
// provider rejects the payment.
func (s *OrderService) Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if s.payments == nil {
		return nil, payment.ErrNotConfigured
	}

	subtotal := req.Total
	total := subtotal
	discount := 0.0
	couponCode := ""

	if req.CouponCode != "" {
		d, coupon, err := s.coupons.Apply(ctx, req.CouponCode, subtotal)
		if err != nil {
			// A bad coupon never blocks checkout; the customer just pays
			// full price.
			s.log.Warn("coupon not applied", "code", req.CouponCode, "error", err)
		} else {
			discount = d
			couponCode = coupon.Code
			total = subtotal - discount
			if total < 0 {
				total = 0
			}
		}
	}

	lineItems := make([]payment.LineItem, 0, len(req.Items)+1)
	for _, it := range req.Items {
		lineItems = append(lineItems, payment.LineItem{
			Name:     it.Name,
			SKU:      it.ProductID,
			Amount:   money(it.Price),
			Quantity: it.Quantity,
		})
	}
	if discount > 0 {
		// The provider requires the item sum to equal the charged total, so
		// the discount is a line item with a negative amount.
		lineItems = append(lineItems, payment.LineItem{
			Name:     fmt.Sprintf("Discount (%s)", couponCode),
			SKU:      "discount",
			Amount:   money(-discount),
			Quantity: 1,
		})
	}

	created, err := s.payments.CreateOrder(ctx, payment.CreateRequest{
		Items:     lineItems,
		Total:     money(total),
		Currency:  "USD",
		ReturnURL: s.returnURL,
		CancelURL: s.cancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("payment creation failed: %w", err)
	}

	order := &model.Order{
		ID:             uuid.NewString(),
		PaymentID:      created.PaymentID,
		Items:          req.Items,
		Subtotal:       subtotal,
		Total:          total,
		CustomerEmail:  req.CustomerEmail,
		CouponCode:     couponCode,
		DiscountAmount: discount,
		Status:         model.OrderStatusPending,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info("order created", "order_id", order.ID, "payment_id", order.PaymentID,
		"total", order.Total, "discount", order.DiscountAmount)

	return &dto.CreateOrderResponse{
		OrderID:     order.ID,
		PaymentID:   created.PaymentID,
		ApprovalURL: created.ApprovalURL,
		Total:       total,
		Discount:    discount,
	}, nil
}

// ExecutePayment captures an approved payment. recorded reports whether a
// local order matched the payment id; the capture itself succeeded either
// way, so the mismatch is surfaced but not treated as a capture failure.
func (s *OrderService) ExecutePayment(ctx context.Context, paymentID, payerID string) (order *model.Order, recorded bool, err error) {
	if s.payments == nil {
		return nil, false, payment.ErrNotConfigured
	}

	capture, err := s.payments.CaptureOrder(ctx, paymentID, payerID)
	if err != nil {
		return nil, false, fmt.Errorf("payment execution failed: %w", err)
	}
	if !capture.Completed {
		return nil, false, fmt.Errorf("%w: status %s", ErrPaymentNotCompleted, capture.Status)
	}

	order, err = s.repo.FindByPaymentID(ctx, paymentID)
	if err != nil {
		// Money moved at the provider but local bookkeeping has no matching
		// order. Reported to the caller as recorded=false.
		s.log.Error("captured payment has no matching order", "payment_id", paymentID)
		return nil, false, nil
	}

	now := time.Now().UTC()
	fields := bson.M{
		"status":       model.OrderStatusPaid,
		"payer_id":     payerID,
		"completed_at": now,
	}
	if err := s.repo.UpdateFields(ctx, order.ID, fields); err != nil {
		return nil, false, err
	}
	order.Status = model.OrderStatusPaid
	order.PayerID = payerID
	order.CompletedAt = &now

	s.dispatcher.Enqueue(notify.Job{Kind: notify.KindNewOrder, Order: order})
	s.dispatcher.Enqueue(notify.Job{Kind: notify.KindStatusChanged, Order: order})

	return order, true, nil
}

// UpdateStatus applies an admin status change through the transition table.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*model.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CheckTransition(order.Status, status); err != nil {
		return nil, err
	}
	if order.Status == status {
		return order, nil
	}

	now := time.Now().UTC()
	fields := bson.M{"status": status}
	switch status {
	case model.OrderStatusShipped:
		fields["shipped_at"] = now
		order.ShippedAt = &now
	case model.OrderStatusDelivered:
		fields["delivered_at"] = now
		order.DeliveredAt = &now
	}
	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	order.Status = status

	switch status {
	case model.OrderStatusPaid, model.OrderStatusShipped:
		s.dispatcher.Enqueue(notify.Job{Kind: notify.KindStatusChanged, Order: order})
	case model.OrderStatusDelivered:
		s.dispatcher.Enqueue(notify.Job{Kind: notify.KindStatusChanged, Order: order})
		s.dispatcher.Enqueue(notify.Job{Kind: notify.KindDelivered, Order: order})
	}

	return order, nil
}

// UpdateTracking records shipment details and moves the order to shipped.
func (s *OrderService) UpdateTracking(ctx context.Context, id, trackingNumber, carrier string) (*model.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CheckTransition(order.Status, model.OrderStatusShipped); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	trackingURL := TrackingURL(carrier, trackingNumber)
	fields := bson.M{
		"tracking_number":  trackingNumber,
		"tracking_carrier": carrier,
		"tracking_url":     trackingURL,
		"status":           model.OrderStatusShipped,
		"shipped_at":       now,
	}
	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}

	order.TrackingNumber = trackingNumber
	order.TrackingCarrier = carrier
	order.TrackingURL = trackingURL
	order.Status = model.OrderStatusShipped
	order.ShippedAt = &now

	s.dispatcher.Enqueue(notify.Job{Kind: notify.KindStatusChanged, Order: order})

	return order, nil
}

// Track is the public lookup: both id and email must match, so an order id
// alone reveals nothing.
func (s *OrderService) Track(ctx context.Context, orderID, email string) (*model.Order, error) {
	return s.repo.FindByIDAndEmail(ctx, orderID, email)
}

func (s *OrderService) GetAll(ctx context.Context) ([]*model.Order, error) {
	return s.repo.FindAll(ctx)
}

func (s *OrderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *OrderService) GetByCustomerEmail(ctx context.Context, email string) ([]*model.Order, error) {
	return s.repo.FindByCustomerEmail(ctx, email)
}

func (s *OrderService) MarkViewed(ctx context.Context, id string) error {
	return s.repo.UpdateFields(ctx, id, bson.M{"viewed": true})
}

func (s *OrderService) UnviewedCount(ctx context.Context) (int64, error) {
	return s.repo.CountUnviewed(ctx)
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
