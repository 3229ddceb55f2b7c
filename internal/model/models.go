// models.go
package model

import "time"

// Blog post lifecycle: draft until published.
const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
)

type BlogPost struct {
	ID          string     `bson:"id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Content     string     `bson:"content" json:"content"`
	Keywords    string     `bson:"keywords" json:"keywords"`
	ImageURL    string     `bson:"image_url,omitempty" json:"image_url,omitempty"`
	ImageBase64 string     `bson:"image_base64,omitempty" json:"image_base64,omitempty"`
	AudioURL    string     `bson:"audio_url,omitempty" json:"audio_url,omitempty"`
	Status      string     `bson:"status" json:"status"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	PublishedAt *time.Time `bson:"published_at,omitempty" json:"published_at,omitempty"`
}

// Order statuses. Transition rules live in service.OrderStatusMachine.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusPacked    = "packed"
	OrderStatusShipped   = "shipped"
	OrderStatusInTransit = "in_transit"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderItem is a snapshot taken at purchase time; later product edits do not
// rewrite history.
type OrderItem struct {
	ProductID   string  `bson:"product_id" json:"product_id"`
	Name        string  `bson:"name" json:"name"`
	Price       float64 `bson:"price" json:"price"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	ProductType string  `bson:"product_type" json:"product_type"` // physical or digital
}

type Order struct {
	ID              string      `bson:"id" json:"id"`
	PaymentID       string      `bson:"payment_id" json:"payment_id"`
	PayerID         string      `bson:"payer_id,omitempty" json:"payer_id,omitempty"`
	Items           []OrderItem `bson:"items" json:"items"`
	Subtotal        float64     `bson:"subtotal" json:"subtotal"`
	Total           float64     `bson:"total" json:"total"`
	CustomerEmail   string      `bson:"customer_email" json:"customer_email"`
	CouponCode      string      `bson:"coupon_code,omitempty" json:"coupon_code,omitempty"`
	DiscountAmount  float64     `bson:"discount_amount" json:"discount_amount"`
	Status          string      `bson:"status" json:"status"`
	TrackingNumber  string      `bson:"tracking_number,omitempty" json:"tracking_number,omitempty"`
	TrackingCarrier string      `bson:"tracking_carrier,omitempty" json:"tracking_carrier,omitempty"`
	TrackingURL     string      `bson:"tracking_url,omitempty" json:"tracking_url,omitempty"`
	Viewed          bool        `bson:"viewed" json:"viewed"`
	CreatedAt       time.Time   `bson:"created_at" json:"created_at"`
	CompletedAt     *time.Time  `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	ShippedAt       *time.Time  `bson:"shipped_at,omitempty" json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time  `bson:"delivered_at,omitempty" json:"delivered_at,omitempty"`
}

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

type Coupon struct {
	ID            string     `bson:"id" json:"id"`
	Code          string     `bson:"code" json:"code"` // stored uppercase
	DiscountType  string     `bson:"discount_type" json:"discount_type"`
	DiscountValue float64    `bson:"discount_value" json:"discount_value"`
	IsActive      bool       `bson:"is_active" json:"is_active"`
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
	ExpiresAt     *time.Time `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
}

// Expired reports whether the coupon's expiry, if any, has passed.
func (c *Coupon) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

type Product struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Price       float64 `bson:"price" json:"price"`
	Description string  `bson:"description" json:"description"`
	Category    string  `bson:"category" json:"category"`
	ProductType string  `bson:"product_type" json:"product_type"`
	ImageURL    string  `bson:"image_url,omitempty" json:"image_url,omitempty"`
}

type User struct {
	ID             string     `bson:"id" json:"id"`
	Email          string     `bson:"email" json:"email"`
	HashedPassword string     `bson:"hashed_password" json:"-"`
	FirstName      string     `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName       string     `bson:"last_name,omitempty" json:"last_name,omitempty"`
	AuthProvider   string     `bson:"auth_provider" json:"auth_provider"`
	IsMember       bool       `bson:"is_member" json:"is_member"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
	LastLogin      *time.Time `bson:"last_login,omitempty" json:"last_login,omitempty"`
}

// PasswordResetToken is single-use: the used flag is checked at consumption.
type PasswordResetToken struct {
	UserID    string    `bson:"user_id" json:"user_id"`
	Token     string    `bson:"token" json:"token"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	Used      bool      `bson:"used" json:"used"`
}

// SettingsDoc is a singleton feature-flag document addressed by Key.
type SettingsDoc struct {
	Key       string                 `bson:"key" json:"key"`
	Values    map[string]interface{} `bson:"values" json:"values"`
	UpdatedAt time.Time              `bson:"updated_at" json:"updated_at"`
}
