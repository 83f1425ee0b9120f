package service

import (
	"context"

	"storefront-service/internal/models"
)

// CatalogRemote is the slice of the remote record store the catalog provider
// writes through. Every call is scoped to the owning user; failures are
// returned, and the caller degrades to the fallback store.
type CatalogRemote interface {
	ListProducts(ctx context.Context, ownerID string) ([]models.Product, error)
	InsertProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, ownerID, id string) error

	ListCoupons(ctx context.Context, ownerID string) ([]models.Coupon, error)
	InsertCoupon(ctx context.Context, c *models.Coupon) error
	UpdateCoupon(ctx context.Context, c *models.Coupon) error
	DeleteCoupon(ctx context.Context, ownerID, id string) error
}

// SellerRemote is the remote record store slice for seller records
type SellerRemote interface {
	ListSellers(ctx context.Context, ownerID string) ([]models.Seller, error)
	InsertSeller(ctx context.Context, s *models.Seller) error
	UpdateSeller(ctx context.Context, s *models.Seller) error
	DeleteSeller(ctx context.Context, ownerID, id string) error
}

// FallbackStore is the local fallback store: whole-collection JSON snapshots
// plus per-user cart and profile blobs
type FallbackStore interface {
	GetSnapshot(ctx context.Context, userID, collection string, dest interface{}) error
	SetSnapshot(ctx context.Context, userID, collection string, v interface{}) error

	GetCart(ctx context.Context, userID string, dest interface{}) error
	SetCart(ctx context.Context, userID string, v interface{}) error
	DeleteCart(ctx context.Context, userID string) error

	GetProfile(ctx context.Context, userID string, dest interface{}) error
	SetProfile(ctx context.Context, userID string, v interface{}) error
}

// Notifier publishes cross-view change broadcasts
type Notifier interface {
	PublishOrdersChanged(ctx context.Context, userID, orderID string) error
	PublishCatalogChanged(ctx context.Context, userID, collection, entityID string) error
	PublishSellersChanged(ctx context.Context, userID, sellerID string) error
}

// PostalLookup resolves an 8-digit postal code to an address
type PostalLookup interface {
	Lookup(ctx context.Context, code string) (*PostalAddress, error)
}
