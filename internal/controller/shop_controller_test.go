package controller

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"apebrain-backend/internal/model"
	"apebrain-backend/internal/notify"
	"apebrain-backend/internal/payment"
	"apebrain-backend/internal/repository"
	"apebrain-backend/internal/service"
)

type stubOrderRepo struct {
	orders map[string]*model.Order
}

func (r *stubOrderRepo) Insert(_ context.Context, o *model.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) FindByPaymentID(_ context.Context, paymentID string) (*model.Order, error) {
	for _, o := range r.orders {
		if o.PaymentID == paymentID {
			return o, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubOrderRepo) FindByIDAndEmail(_ context.Context, id, email string) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok || o.CustomerEmail != email {
		return nil, repository.ErrNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) FindAll(_ context.Context) ([]*model.Order, error) {
	out := make([]*model.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r *stubOrderRepo) FindByCustomerEmail(_ context.Context, email string) ([]*model.Order, error) {
	var out []*model.Order
	for _, o := range r.orders {
		if o.CustomerEmail == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateFields(_ context.Context, id string, fields bson.M) error {
	o, ok := r.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v, ok := fields["status"]; ok {
		o.Status = v.(string)
	}
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) error {
	delete(r.orders, id)
	return nil
}

func (r *stubOrderRepo) CountUnviewed(_ context.Context) (int64, error) { return 0, nil }

type stubCouponRepo struct{}

func (stubCouponRepo) Insert(context.Context, *model.Coupon) error { return nil }
func (stubCouponRepo) FindByCode(context.Context, string) (*model.Coupon, error) {
	return nil, repository.ErrNotFound
}
func (stubCouponRepo) FindByID(context.Context, string) (*model.Coupon, error) {
	return nil, repository.ErrNotFound
}
func (stubCouponRepo) FindAll(context.Context) ([]*model.Coupon, error)    { return nil, nil }
func (stubCouponRepo) FindActive(context.Context) ([]*model.Coupon, error) { return nil, nil }
func (stubCouponRepo) Update(context.Context, string, bson.M) error        { return nil }
func (stubCouponRepo) Delete(context.Context, string) error                { return nil }

type stubPayments struct{}

func (stubPayments) CreateOrder(context.Context, payment.CreateRequest) (*payment.CreateResult, error) {
	return &payment.CreateResult{PaymentID: "PAY-1", ApprovalURL: "https://paypal.example/approve"}, nil
}

func (stubPayments) CaptureOrder(_ context.Context, paymentID, _ string) (*payment.CaptureResult, error) {
	return &payment.CaptureResult{PaymentID: paymentID, Status: "COMPLETED", Completed: true}, nil
}

type noopDispatcher struct{}

func (noopDispatcher) Enqueue(notify.Job) {}

func newShopRouter(repo *stubOrderRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	orders := service.NewOrderService(repo, service.NewCouponService(stubCouponRepo{}),
		stubPayments{}, noopDispatcher{}, "https://apebrain.example", log)
	ctl := NewShopController(orders)

	r := gin.New()
	r.POST("/api/shop/create-order", ctl.CreateOrder)
	r.POST("/api/shop/execute-payment", ctl.ExecutePayment)
	r.GET("/api/track-order", ctl.TrackOrder)
	r.PUT("/api/orders/:id/status", ctl.UpdateStatus)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderEndpoint(t *testing.T) {
	repo := &stubOrderRepo{orders: map[string]*model.Order{}}
	r := newShopRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/shop/create-order",
		`{"items":[{"product_id":"reishi-capsules","name":"Reishi Capsules","price":29,"quantity":1}],"total":29,"customer_email":"mora@example.com"}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PAY-1", resp["payment_id"])
	assert.NotEmpty(t, resp["approval_url"])
	assert.Len(t, repo.orders, 1)
}

func TestCreateOrderEndpointRejectsEmptyCart(t *testing.T) {
	r := newShopRouter(&stubOrderRepo{orders: map[string]*model.Order{}})

	w := doJSON(t, r, http.MethodPost, "/api/shop/create-order",
		`{"items":[],"total":0,"customer_email":"mora@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExecutePaymentEndpointUnmatchedPayment(t *testing.T) {
	r := newShopRouter(&stubOrderRepo{orders: map[string]*model.Order{}})

	w := doJSON(t, r, http.MethodPost, "/api/shop/execute-payment",
		`{"payment_id":"PAY-404","payer_id":"PAYER-1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, false, resp["order_recorded"])
	assert.NotContains(t, resp, "order")
}

func TestTrackOrderEndpoint(t *testing.T) {
	repo := &stubOrderRepo{orders: map[string]*model.Order{
		"o1": {ID: "o1", CustomerEmail: "mora@example.com", Status: model.OrderStatusShipped},
	}}
	r := newShopRouter(repo)

	w := doJSON(t, r, http.MethodGet, "/api/track-order?order_id=o1&email=mora@example.com", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// a wrong email must look exactly like a missing order
	w = doJSON(t, r, http.MethodGet, "/api/track-order?order_id=o1&email=other@example.com", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/track-order?order_id=o1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusEndpointRejectsIllegalTransition(t *testing.T) {
	repo := &stubOrderRepo{orders: map[string]*model.Order{
		"o1": {ID: "o1", Status: model.OrderStatusDelivered},
	}}
	r := newShopRouter(repo)

	w := doJSON(t, r, http.MethodPut, "/api/orders/o1/status", `{"status":"pending"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
