package service

import (
	"context"
	"errors"
	"fmt"

	"storefront-service/internal/fallback"
	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// ErrCartLineNotFound is returned when a mutation targets a product id that
// is not in the cart
var ErrCartLineNotFound = errors.New("cart line not found")

// CartService is the cart aggregator: an ordered list of lines per user,
// persisted to the fallback store on every mutation and rehydrated on read.
// Totals are derived on demand, never cached.
type CartService struct {
	fallbackStore FallbackStore
	logger        *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(fallbackStore FallbackStore) *CartService {
	return &CartService{
		fallbackStore: fallbackStore,
		logger:        util.GetLogger(),
	}
}

// Get returns the user's cart, empty when none has been saved yet
func (s *CartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.fallbackStore.GetCart(ctx, userID, &cart)
	if errors.Is(err, fallback.ErrNotFound) {
		return &models.Cart{Lines: []models.CartLine{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart.Lines == nil {
		cart.Lines = []models.CartLine{}
	}
	return &cart, nil
}

// Add merges the line into the cart: an existing line for the same product
// id has its quantity incremented, otherwise the line is appended. A
// quantity below 1 is clamped to 1.
func (s *CartService) Add(ctx context.Context, userID string, line models.CartLine) (*models.Cart, error) {
	ctx, span := util.StartSpan(ctx, "CartService.Add")
	defer span.End()

	if line.Quantity < 1 {
		line.Quantity = 1
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Lines {
		if cart.Lines[i].ProductID == line.ProductID {
			cart.Lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Lines = append(cart.Lines, line)
	}

	if err := s.save(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets a line's quantity. A resulting quantity of zero or
// less removes the line entirely rather than clamping to one.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	ctx, span := util.StartSpan(ctx, "CartService.UpdateQuantity")
	defer span.End()

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range cart.Lines {
		if cart.Lines[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrCartLineNotFound
	}

	if quantity <= 0 {
		cart.Lines = append(cart.Lines[:idx], cart.Lines[idx+1:]...)
	} else {
		cart.Lines[idx].Quantity = quantity
	}

	if err := s.save(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Remove deletes a line by product id
func (s *CartService) Remove(ctx context.Context, userID, productID string) (*models.Cart, error) {
	ctx, span := util.StartSpan(ctx, "CartService.Remove")
	defer span.End()

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := cart.Lines[:0]
	found := false
	for _, l := range cart.Lines {
		if l.ProductID == productID {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return nil, ErrCartLineNotFound
	}
	cart.Lines = kept

	if err := s.save(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear removes the whole cart
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.fallbackStore.DeleteCart(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *CartService) save(ctx context.Context, userID string, cart *models.Cart) error {
	if err := s.fallbackStore.SetCart(ctx, userID, cart); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
