package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"storefront-service/internal/fallback"
	"storefront-service/internal/models"
)

var errRemoteDown = errors.New("remote store unavailable")

// fakeFallback is an in-memory fallback store. Values round-trip through
// JSON so tests exercise the same serialization as the real client.
type fakeFallback struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newFakeFallback() *fakeFallback {
	return &fakeFallback{blobs: map[string][]byte{}}
}

func (f *fakeFallback) get(key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.blobs[key]
	if !ok {
		return fallback.ErrNotFound
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeFallback) set(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[key] = raw
	return nil
}

func (f *fakeFallback) GetSnapshot(_ context.Context, userID, collection string, dest interface{}) error {
	return f.get(fmt.Sprintf("fallback:%s:%s", userID, collection), dest)
}

func (f *fakeFallback) SetSnapshot(_ context.Context, userID, collection string, v interface{}) error {
	return f.set(fmt.Sprintf("fallback:%s:%s", userID, collection), v)
}

func (f *fakeFallback) GetCart(_ context.Context, userID string, dest interface{}) error {
	return f.get("cart:"+userID, dest)
}

func (f *fakeFallback) SetCart(_ context.Context, userID string, v interface{}) error {
	return f.set("cart:"+userID, v)
}

func (f *fakeFallback) DeleteCart(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blobs, "cart:"+userID)
	return nil
}

func (f *fakeFallback) GetProfile(_ context.Context, userID string, dest interface{}) error {
	return f.get("profile:"+userID, dest)
}

func (f *fakeFallback) SetProfile(_ context.Context, userID string, v interface{}) error {
	return f.set("profile:"+userID, v)
}

// fakeCatalogRemote is an in-memory remote record store for products and
// coupons. Setting fail makes every call return errRemoteDown.
type fakeCatalogRemote struct {
	mu       sync.Mutex
	fail     bool
	products map[string][]models.Product
	coupons  map[string][]models.Coupon
}

func newFakeCatalogRemote() *fakeCatalogRemote {
	return &fakeCatalogRemote{
		products: map[string][]models.Product{},
		coupons:  map[string][]models.Coupon{},
	}
}

func (r *fakeCatalogRemote) ListProducts(_ context.Context, ownerID string) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errRemoteDown
	}
	return append([]models.Product(nil), r.products[ownerID]...), nil
}

func (r *fakeCatalogRemote) InsertProduct(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errRemoteDown
	}
	r.products[p.OwnerID] = append(r.products[p.OwnerID], *p)
	return nil
}

func (r *fakeCatalogRemote) UpdateProduct(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errRemoteDown
	}
	rows := r.products[p.OwnerID]
	for i := range rows {
		if rows[i].ID == p.ID {
			rows[i] = *p
		}
	}
	return nil
}

func (r *fakeCatalogRemote) DeleteProduct(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errRemoteDown
	}
	rows := r.products[ownerID][:0]
	for _, p := range r.products[ownerID] {
		if p.ID != id {
			rows = append(rows, p)
		}
	}
	r.products[ownerID] = rows
	return nil
}

func (r *fakeCatalogRemote) ListCoupons(_ context.Context, ownerID string) ([]models.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errRemoteDown
	}
	return append([]models.Coupon(nil), r.coupons[ownerID]...), nil
}

func (r *fakeCatalogRemote) InsertCoupon(_ context.Context, c *models.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errRemoteDown
	}
	r.coupons[c.OwnerID] = append(r.coupons[c.OwnerID], *c)
	return nil
}

func (r *fakeCatalogRemote) UpdateCoupon(_ context.Context, c *models.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errRemoteDown
	}
	rows := r.coupons[c.OwnerID]
	for i := range rows {
		if rows[i].ID == c.ID {
			rows[i] = *c
		}
	}
	return nil
}

func (r *fakeCatalogRemote) DeleteCoupon(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errRemoteDown
	}
	rows := r.coupons[ownerID][:0]
	for _, c := range r.coupons[ownerID] {
		if c.ID != id {
			rows = append(rows, c)
		}
	}
	r.coupons[ownerID] = rows
	return nil
}

// fakeSellerRemote is an in-memory remote record store for sellers
type fakeSellerRemote struct {
	mu      sync.Mutex
	fail    bool
	sellers map[string][]models.Seller
}

func newFakeSellerRemote() *fakeSellerRemote {
	return &fakeSellerRemote{sellers: map[string][]models.Seller{}}
}

func (r *fakeSellerRemote) ListSellers(_ context.Context, ownerID string) ([]models.Seller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errRemoteDown
	}
	return append([]models.Seller(nil), r.sellers[ownerID]...), nil
}

func (r *fakeSellerRemote) InsertSeller(_ context.Context, s *models.Seller) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errRemoteDown
	}
	r.sellers[s.OwnerID] = append(r.sellers[s.OwnerID], *s)
	return nil
}

func (r *fakeSellerRemote) UpdateSeller(_ context.Context, s *models.Seller) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errRemoteDown
	}
	rows := r.sellers[s.OwnerID]
	for i := range rows {
		if rows[i].ID == s.ID {
			rows[i] = *s
		}
	}
	return nil
}

func (r *fakeSellerRemote) DeleteSeller(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errRemoteDown
	}
	rows := r.sellers[ownerID][:0]
	for _, s := range r.sellers[ownerID] {
		if s.ID != id {
			rows = append(rows, s)
		}
	}
	r.sellers[ownerID] = rows
	return nil
}

// recordingNotifier records broadcasts instead of publishing them
type recordingNotifier struct {
	mu      sync.Mutex
	orders  []string
	catalog []string
	sellers []string
}

func (n *recordingNotifier) PublishOrdersChanged(_ context.Context, _, orderID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, orderID)
	return nil
}

func (n *recordingNotifier) PublishCatalogChanged(_ context.Context, _, collection, entityID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.catalog = append(n.catalog, collection+":"+entityID)
	return nil
}

func (n *recordingNotifier) PublishSellersChanged(_ context.Context, _, sellerID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sellers = append(n.sellers, sellerID)
	return nil
}
