package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"apebrain-backend/internal/dto"
	"apebrain-backend/internal/model"
	"apebrain-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
)

// Interface implemented by repository
type CouponRepo interface {
	Insert(ctx context.Context, c *model.Coupon) error
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
	FindByID(ctx context.Context, id string) (*model.Coupon, error)
	FindAll(ctx context.Context) ([]*model.Coupon, error)
	FindActive(ctx context.Context) ([]*model.Coupon, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
}

var (
	ErrDuplicateCode    = errors.New("coupon code already exists")
	ErrBadDiscountType  = errors.New("discount_type must be percentage or fixed")
	ErrBadExpiry        = errors.New("expires_at must be RFC 3339")
	ErrCouponInactive   = errors.New("coupon is not active")
	ErrCouponExpired    = errors.New("coupon has expired")
)

type CouponService struct {
	repo CouponRepo
}

func NewCouponService(r CouponRepo) *CouponService {
	return &CouponService{repo: r}
}

// Discount is the single discount calculation used by both the validate
// endpoint and order creation. Percentage discounts are rounded to cents; a
// fixed discount is returned as-is, uncapped (order totals are clamped to
// zero by the caller, the stored discount is not).
func Discount(discountType string, value, subtotal float64) float64 {
	switch discountType {
	case model.DiscountTypePercentage:
		d := decimal.NewFromFloat(subtotal).
			Mul(decimal.NewFromFloat(value)).
			Div(decimal.NewFromInt(100)).
			Round(2)
		f, _ := d.Float64()
		return f
	case model.DiscountTypeFixed:
		return value
	default:
		return 0
	}
}

// Redeemable checks the activation flag and expiry against now-UTC.
func Redeemable(c *model.Coupon, now time.Time) error {
	if !c.IsActive {
		return ErrCouponInactive
	}
	if c.Expired(now) {
		return ErrCouponExpired
	}
	return nil
}

// Apply resolves a code and computes the discount for a subtotal. Callers
// decide how hard a failure is: order creation degrades to zero discount,
// the validate endpoint reports the reason.
func (s *CouponService) Apply(ctx context.Context, code string, subtotal float64) (float64, *model.Coupon, error) {
	c, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return 0, nil, err
	}
	if err := Redeemable(c, time.Now().UTC()); err != nil {
		return 0, nil, err
	}
	return Discount(c.DiscountType, c.DiscountValue, subtotal), c, nil
}

// Validate backs POST /coupons/validate with the canonical request shape.
func (s *CouponService) Validate(ctx context.Context, req dto.ValidateCouponRequest) *dto.ValidateCouponResponse {
	discount, c, err := s.Apply(ctx, req.Code, req.OrderTotal)
	if err != nil {
		msg := "Invalid coupon code"
		switch err {
		case ErrCouponInactive:
			msg = "This coupon is no longer active"
		case ErrCouponExpired:
			msg = "This coupon has expired"
		}
		return &dto.ValidateCouponResponse{Valid: false, FinalTotal: req.OrderTotal, Message: msg}
	}

	final := req.OrderTotal - discount
	if final < 0 {
		final = 0
	}
	return &dto.ValidateCouponResponse{
		Valid:          true,
		Code:           c.Code,
		DiscountType:   c.DiscountType,
		DiscountValue:  c.DiscountValue,
		DiscountAmount: discount,
		FinalTotal:     final,
	}
}

func (s *CouponService) Create(ctx context.Context, req dto.CouponCreateRequest) (*model.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	if req.DiscountType != model.DiscountTypePercentage && req.DiscountType != model.DiscountTypeFixed {
		return nil, ErrBadDiscountType
	}

	// Uniqueness is checked here, not enforced by an index; see repo notes.
	if _, err := s.repo.FindByCode(ctx, code); err == nil {
		return nil, ErrDuplicateCode
	} else if err != repository.ErrNotFound {
		return nil, err
	}

	c := &model.Coupon{
		ID:            uuid.NewString(),
		Code:          code,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if req.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			return nil, ErrBadExpiry
		}
		c.ExpiresAt = &t
	}

	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CouponService) Update(ctx context.Context, id string, req dto.CouponUpdateRequest) (*model.Coupon, error) {
	fields := bson.M{}

	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		if existing, err := s.repo.FindByCode(ctx, code); err == nil && existing.ID != id {
			return nil, ErrDuplicateCode
		} else if err != nil && err != repository.ErrNotFound {
			return nil, err
		}
		fields["code"] = code
	}
	if req.DiscountType != nil {
		if *req.DiscountType != model.DiscountTypePercentage && *req.DiscountType != model.DiscountTypeFixed {
			return nil, ErrBadDiscountType
		}
		fields["discount_type"] = *req.DiscountType
	}
	if req.DiscountValue != nil {
		fields["discount_value"] = *req.DiscountValue
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if req.ExpiresAt != nil {
		if *req.ExpiresAt == "" {
			fields["expires_at"] = nil
		} else {
			t, err := time.Parse(time.RFC3339, *req.ExpiresAt)
			if err != nil {
				return nil, ErrBadExpiry
			}
			fields["expires_at"] = t
		}
	}

	if len(fields) > 0 {
		if err := s.repo.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.FindByID(ctx, id)
}

func (s *CouponService) GetAll(ctx context.Context) ([]*model.Coupon, error) {
	return s.repo.FindAll(ctx)
}

// GetActive lists coupons a customer could redeem right now.
func (s *CouponService) GetActive(ctx context.Context) ([]*model.Coupon, error) {
	all, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	out := make([]*model.Coupon, 0, len(all))
	for _, c := range all {
		if !c.Expired(now) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *CouponService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
