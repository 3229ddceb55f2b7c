// dto.go
package dto

import "apebrain-backend/internal/model"

// ---- shop ----

type CreateOrderRequest struct {
	Items         []model.OrderItem `json:"items" binding:"required,min=1"`
	Total         float64           `json:"total" binding:"required"`
	CustomerEmail string            `json:"customer_email" binding:"required,email"`
	CouponCode    string            `json:"coupon_code"`
}

type CreateOrderResponse struct {
	OrderID     string  `json:"order_id"`
	PaymentID   string  `json:"payment_id"`
	ApprovalURL string  `json:"approval_url"`
	Total       float64 `json:"total"`
	Discount    float64 `json:"discount_amount"`
}

type ExecutePaymentRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
	PayerID   string `json:"payer_id" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateTrackingRequest struct {
	TrackingNumber  string `json:"tracking_number" binding:"required"`
	TrackingCarrier string `json:"tracking_carrier" binding:"required"`
}

// ---- coupons ----

type CouponCreateRequest struct {
	Code          string  `json:"code" binding:"required"`
	DiscountType  string  `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue float64 `json:"discount_value" binding:"required,gt=0"`
	IsActive      *bool   `json:"is_active"`
	ExpiresAt     string  `json:"expires_at"` // RFC 3339, optional
}

type CouponUpdateRequest struct {
	Code          *string  `json:"code"`
	DiscountType  *string  `json:"discount_type"`
	DiscountValue *float64 `json:"discount_value"`
	IsActive      *bool    `json:"is_active"`
	ExpiresAt     *string  `json:"expires_at"`
}

// ValidateCouponRequest is the canonical contract shared with order creation:
// the declared order total rides in order_total.
type ValidateCouponRequest struct {
	Code       string  `json:"code" binding:"required"`
	OrderTotal float64 `json:"order_total" binding:"required,gt=0"`
}

type ValidateCouponResponse struct {
	Valid          bool    `json:"valid"`
	Code           string  `json:"code,omitempty"`
	DiscountType   string  `json:"discount_type,omitempty"`
	DiscountValue  float64 `json:"discount_value,omitempty"`
	DiscountAmount float64 `json:"discount_amount"`
	FinalTotal     float64 `json:"final_total"`
	Message        string  `json:"message,omitempty"`
}

// ---- blogs ----

type GenerateBlogRequest struct {
	Keywords string `json:"keywords" binding:"required"`
}

type GenerateBlogResponse struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

type BlogCreateRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Keywords    string `json:"keywords"`
	ImageURL    string `json:"image_url"`
	ImageBase64 string `json:"image_base64"`
	AudioURL    string `json:"audio_url"`
	Status      string `json:"status"`
}

type BlogUpdateRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Keywords *string `json:"keywords"`
	Status   *string `json:"status"`
	ImageURL *string `json:"image_url"`
	AudioURL *string `json:"audio_url"`
}

// ---- products ----

type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	ProductType string  `json:"product_type" binding:"required,oneof=physical digital"`
	ImageURL    string  `json:"image_url"`
}

// ---- auth ----

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Success     bool        `json:"success"`
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        UserPayload `json:"user"`
}

type UserPayload struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	IsMember  bool   `json:"is_member"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type PasswordReset struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ---- admin ----

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AdminSettingsUpdate struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	AdminUsername   string `json:"admin_username" binding:"required"`
	NewPassword     string `json:"new_password"`
}
