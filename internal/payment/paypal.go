// Package payment wraps the PayPal Orders API. The provider owns the money
// state machine; this package only creates orders and captures approvals.
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/plutov/paypal/v4"
)

var ErrNotConfigured = errors.New("payment provider credentials not configured")

// LineItem mirrors a cart row. A discount rides as a line item with a
// negative amount so the provider's item sum reconciles with the charged
// total.
type LineItem struct {
	Name     string
	SKU      string
	Amount   string // decimal string, may be negative for the discount row
	Quantity int
}

type CreateRequest struct {
	Items     []LineItem
	Total     string // decimal string, the amount actually charged
	Currency  string
	ReturnURL string
	CancelURL string
}

type CreateResult struct {
	PaymentID   string
	ApprovalURL string
}

type CaptureResult struct {
	PaymentID string
	Status    string
	Completed bool
}

// Client is the surface the order workflow depends on; tests substitute a
// fake.
type Client interface {
	CreateOrder(ctx context.Context, req CreateRequest) (*CreateResult, error)
	CaptureOrder(ctx context.Context, paymentID, payerID string) (*CaptureResult, error)
}

type PayPalClient struct {
	pp *paypal.Client
}

// NewPayPalClient builds a client for the given mode ("live" selects the
// production API base, anything else sandbox).
func NewPayPalClient(clientID, secret, mode string) (*PayPalClient, error) {
	if clientID == "" || secret == "" {
		return nil, ErrNotConfigured
	}

	base := paypal.APIBaseSandBox
	if mode == "live" {
		base = paypal.APIBaseLive
	}

	c, err := paypal.NewClient(clientID, secret, base)
	if err != nil {
		return nil, err
	}
	return &PayPalClient{pp: c}, nil
}

func (c *PayPalClient) CreateOrder(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	items := make([]paypal.Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, paypal.Item{
			Name: it.Name,
			SKU:  it.SKU,
			UnitAmount: &paypal.Money{
				Currency: req.Currency,
				Value:    it.Amount,
			},
			Quantity: fmt.Sprintf("%d", it.Quantity),
		})
	}

	units := []paypal.PurchaseUnitRequest{{
		Amount: &paypal.PurchaseUnitAmount{
			Currency: req.Currency,
			Value:    req.Total,
			Breakdown: &paypal.PurchaseUnitAmountBreakdown{
				ItemTotal: &paypal.Money{Currency: req.Currency, Value: req.Total},
			},
		},
		Items: items,
	}}

	appCtx := &paypal.ApplicationContext{
		ReturnURL: req.ReturnURL,
		CancelURL: req.CancelURL,
	}

	order, err := c.pp.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, appCtx)
	if err != nil {
		return nil, err
	}

	res := &CreateResult{PaymentID: order.ID}
	for _, link := range order.Links {
		if link.Rel == "approve" {
			res.ApprovalURL = link.Href
		}
	}
	return res, nil
}

func (c *PayPalClient) CaptureOrder(ctx context.Context, paymentID, payerID string) (*CaptureResult, error) {
	resp, err := c.pp.CaptureOrder(ctx, paymentID, paypal.CaptureOrderRequest{})
	if err != nil {
		return nil, err
	}
	return &CaptureResult{
		PaymentID: resp.ID,
		Status:    resp.Status,
		Completed: resp.Status == "COMPLETED",
	}, nil
}
