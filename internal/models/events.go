package models

import "time"

// Event types
const (
	EventTypeOrdersChanged  = "ORDERS_CHANGED"
	EventTypeCatalogChanged = "CATALOG_CHANGED"
	EventTypeSellersChanged = "SELLERS_CHANGED"
)

// Collection names carried in change events
const (
	CollectionProducts = "products"
	CollectionCoupons  = "coupons"
	CollectionOrders   = "orders"
	CollectionSellers  = "sellers"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrdersChangedEvent published when an order is created, updated or deleted,
// so read-side views can refresh without a reload
type OrdersChangedEvent struct {
	BaseEvent
	UserID  string `json:"user_id"`
	OrderID string `json:"order_id"`
}

// CatalogChangedEvent published when a product or coupon is written
type CatalogChangedEvent struct {
	BaseEvent
	UserID     string `json:"user_id"`
	Collection string `json:"collection"`
	EntityID   string `json:"entity_id"`
}

// SellersChangedEvent published when a seller record is written
type SellersChangedEvent struct {
	BaseEvent
	UserID   string `json:"user_id"`
	SellerID string `json:"seller_id"`
}
