package models

import (
	"time"

	"github.com/lib/pq"
)

// Product represents a catalog item
type Product struct {
	ID          string         `db:"id" json:"id"`
	OwnerID     string         `db:"owner_id" json:"-"`
	Name        string         `db:"name" json:"name"`
	Description string         `db:"description" json:"description"`
	Category    string         `db:"category" json:"category"`
	Subcategory string         `db:"subcategory" json:"subcategory"`
	Price       float64        `db:"price" json:"price"`
	Stock       int            `db:"stock" json:"stock"`
	Image       string         `db:"image" json:"image"`
	Images      pq.StringArray `db:"images" json:"images"`
	SKU         string         `db:"sku" json:"sku,omitempty"`
	Weight      string         `db:"weight" json:"weight,omitempty"`
	Dimensions  string         `db:"dimensions" json:"dimensions,omitempty"`
	Warranty    string         `db:"warranty" json:"warranty,omitempty"`
	Material    string         `db:"material" json:"material,omitempty"`
	Status      string         `db:"status" json:"status"`
	Features    pq.StringArray `db:"features" json:"features"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// Coupon represents a discount code
type Coupon struct {
	ID           string    `db:"id" json:"id"`
	OwnerID      string    `db:"owner_id" json:"-"`
	Code         string    `db:"code" json:"code"`
	Description  string    `db:"description" json:"description"`
	DiscountType string    `db:"discount_type" json:"discount_type"`
	Discount     float64   `db:"discount" json:"discount"`
	MaxUses      int       `db:"max_uses" json:"max_uses"`
	CurrentUses  int       `db:"current_uses" json:"current_uses"`
	ExpiresAt    time.Time `db:"expires_at" json:"expires_at"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Seller represents a commission-earning category owner
type Seller struct {
	ID             string         `db:"id" json:"id"`
	OwnerID        string         `db:"owner_id" json:"-"`
	Name           string         `db:"name" json:"name"`
	Email          string         `db:"email" json:"email"`
	Phone          string         `db:"phone" json:"phone"`
	CommissionRate float64        `db:"commission_rate" json:"commission_rate"`
	Categories     pq.StringArray `db:"categories" json:"categories"`
	AvatarInitial  string         `db:"avatar_initial" json:"avatar_initial"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

// CartLine is one product-and-quantity entry in a cart. Name, price, image
// and category are snapshots taken at add time, not re-synced to the catalog.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity"`
}

// Cart holds the ordered list of lines for one user
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Total is the sum of line extensions, recomputed on every call
func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// ItemCount is the sum of quantities across all lines
func (c *Cart) ItemCount() int {
	var count int
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

// Customer is the identity snapshot embedded in an order
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Address is a shipping address snapshot
type Address struct {
	PostalCode   string `json:"postal_code"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// OrderItem is one finalized line of an order, with the category enriched
// from the catalog at checkout time
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Category  string  `json:"category"`
}

// Order represents a finalized checkout transaction. Snapshot fields are
// never re-derived from live catalog or seller state.
type Order struct {
	ID            string      `json:"id"`
	Customer      Customer    `json:"customer"`
	Address       Address     `json:"address"`
	Items         []OrderItem `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	Shipping      float64     `json:"shipping"`
	Discount      float64     `json:"discount"`
	CouponCode    string      `json:"coupon_code,omitempty"`
	Total         float64     `json:"total"`
	PaymentMethod string      `json:"payment_method"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
}

// CustomerProfile is the saved checkout prefill for a user
type CustomerProfile struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
}

// Order statuses
const (
	OrderStatusPending   = "pendente"
	OrderStatusConfirmed = "confirmado"
	OrderStatusShipped   = "enviado"
	OrderStatusDelivered = "entregue"
	OrderStatusCancelled = "cancelado"
)

// Payment methods
const (
	PaymentMethodCard = "cartao"
	PaymentMethodPix  = "pix"
)

// Product lifecycle statuses
const (
	ProductStatusActive   = "ativo"
	ProductStatusInactive = "inativo"
)

// Coupon discount kinds
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// ValidOrderStatus reports whether s is a known order status
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
