package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-service/internal/fallback"
	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmptyCart is returned when checkout is submitted with no cart lines
var ErrEmptyCart = errors.New("cart is empty")

// ValidationError is a field-level checkout rejection, surfaced inline next
// to the offending field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CardDetails are collected and presence-checked only; no charge is made and
// no checksum or expiry sanity check is applied
type CardDetails struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

// CheckoutRequest is a checkout submission
type CheckoutRequest struct {
	Customer      models.Customer `json:"customer"`
	Address       models.Address  `json:"address"`
	PaymentMethod string          `json:"payment_method"`
	CouponCode    string          `json:"coupon_code,omitempty"`
	Card          *CardDetails    `json:"card,omitempty"`
}

// AddressLookupResult combines a resolved address with its shipping quote so
// the client can show cost and lead time before submitting
type AddressLookupResult struct {
	Address  PostalAddress `json:"address"`
	Shipping ShippingQuote `json:"shipping"`
}

// CheckoutService composes the cart, the catalog's coupon redemption and the
// postal lookup into a persisted order
type CheckoutService struct {
	catalog       *CatalogService
	cart          *CartService
	orders        *OrderService
	postal        PostalLookup
	fallbackStore FallbackStore
	logger        *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	catalog *CatalogService,
	cart *CartService,
	orders *OrderService,
	postal PostalLookup,
	fallbackStore FallbackStore,
) *CheckoutService {
	return &CheckoutService{
		catalog:       catalog,
		cart:          cart,
		orders:        orders,
		postal:        postal,
		fallbackStore: fallbackStore,
		logger:        util.GetLogger(),
	}
}

// LookupAddress resolves a postal code and quotes shipping for the resolved
// state
func (s *CheckoutService) LookupAddress(ctx context.Context, code string) (*AddressLookupResult, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.LookupAddress")
	defer span.End()

	addr, err := s.postal.Lookup(ctx, code)
	if err != nil {
		return nil, err
	}

	return &AddressLookupResult{
		Address:  *addr,
		Shipping: QuoteShipping(addr.State),
	}, nil
}

// Profile returns the saved checkout prefill for a user, empty when none
// has been saved
func (s *CheckoutService) Profile(ctx context.Context, userID string) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	err := s.fallbackStore.GetProfile(ctx, userID, &profile)
	if errors.Is(err, fallback.ErrNotFound) {
		return &models.CustomerProfile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}

// SaveProfile replaces the saved checkout prefill
func (s *CheckoutService) SaveProfile(ctx context.Context, userID string, profile models.CustomerProfile) error {
	if err := s.fallbackStore.SetProfile(ctx, userID, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// Checkout validates the submission, enriches cart lines with their catalog
// category, applies the coupon, computes totals and persists the order. The
// order snapshot is final: later catalog or seller edits never change it.
func (s *CheckoutService) Checkout(ctx context.Context, userID string, req *CheckoutRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.Checkout")
	defer span.End()

	cart, err := s.cart.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		util.CheckoutRejectedTotal.WithLabelValues("empty_cart").Inc()
		return nil, ErrEmptyCart
	}

	if verr := validateCheckout(req); verr != nil {
		util.CheckoutRejectedTotal.WithLabelValues("validation").Inc()
		return nil, verr
	}

	subtotal := cart.Total()
	quote := QuoteShipping(req.Address.State)

	var discount float64
	var couponCode string
	if req.CouponCode != "" {
		redemption, err := s.catalog.RedeemCoupon(ctx, userID, req.CouponCode)
		if err != nil {
			return nil, err
		}
		couponCode = redemption.Code
		if redemption.DiscountType == models.DiscountTypePercentage {
			discount = subtotal * redemption.Discount / 100
		} else {
			discount = redemption.Discount
		}
	}

	items := s.enrichLines(ctx, userID, cart.Lines)

	order := models.Order{
		ID:            uuid.New().String(),
		Customer:      req.Customer,
		Address:       req.Address,
		Items:         items,
		Subtotal:      subtotal,
		Shipping:      quote.Cost,
		Discount:      discount,
		CouponCode:    couponCode,
		Total:         subtotal + quote.Cost - discount,
		PaymentMethod: req.PaymentMethod,
		Status:        models.OrderStatusPending,
		CreatedAt:     time.Now(),
	}

	if err := s.orders.Append(ctx, userID, order); err != nil {
		return nil, err
	}

	if userID != "" {
		profile := models.CustomerProfile{
			Name:    req.Customer.Name,
			Email:   req.Customer.Email,
			Phone:   req.Customer.Phone,
			Address: req.Address,
		}
		if err := s.SaveProfile(ctx, userID, profile); err != nil {
			s.logger.Warn("Failed to save profile snapshot", zap.Error(err))
		}
	}

	if err := s.cart.Clear(ctx, userID); err != nil {
		s.logger.Warn("Failed to clear cart after checkout", zap.Error(err))
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.Float64("total", order.Total),
		zap.String("payment_method", order.PaymentMethod))

	return &order, nil
}

// enrichLines copies each cart line into an order item, replacing the
// add-time category snapshot with the product's current category when the
// product can still be found
func (s *CheckoutService) enrichLines(ctx context.Context, userID string, lines []models.CartLine) []models.OrderItem {
	categories := map[string]string{}
	products, err := s.catalog.LoadProducts(ctx, userID)
	if err != nil {
		s.logger.Warn("Failed to load products for category enrichment", zap.Error(err))
	} else {
		for _, p := range products {
			categories[p.ID] = p.Category
		}
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		category := l.Category
		if c, ok := categories[l.ProductID]; ok && c != "" {
			category = c
		}
		items = append(items, models.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.Price,
			Category:  category,
		})
	}
	return items
}

func validateCheckout(req *CheckoutRequest) *ValidationError {
	switch {
	case strings.TrimSpace(req.Customer.Name) == "":
		return &ValidationError{Field: "customer.name", Message: "nome é obrigatório"}
	case strings.TrimSpace(req.Customer.Email) == "":
		return &ValidationError{Field: "customer.email", Message: "email é obrigatório"}
	case strings.TrimSpace(req.Address.PostalCode) == "":
		return &ValidationError{Field: "address.postal_code", Message: "CEP é obrigatório"}
	case strings.TrimSpace(req.Address.Street) == "":
		return &ValidationError{Field: "address.street", Message: "endereço é obrigatório"}
	case strings.TrimSpace(req.Address.City) == "":
		return &ValidationError{Field: "address.city", Message: "cidade é obrigatória"}
	case strings.TrimSpace(req.Address.State) == "":
		return &ValidationError{Field: "address.state", Message: "estado é obrigatório"}
	}

	switch req.PaymentMethod {
	case models.PaymentMethodPix:
	case models.PaymentMethodCard:
		if req.Card == nil {
			return &ValidationError{Field: "card", Message: "dados do cartão são obrigatórios"}
		}
		switch {
		case strings.TrimSpace(req.Card.Number) == "":
			return &ValidationError{Field: "card.number", Message: "número do cartão é obrigatório"}
		case strings.TrimSpace(req.Card.Name) == "":
			return &ValidationError{Field: "card.name", Message: "nome no cartão é obrigatório"}
		case strings.TrimSpace(req.Card.Expiry) == "":
			return &ValidationError{Field: "card.expiry", Message: "validade é obrigatória"}
		case strings.TrimSpace(req.Card.CVV) == "":
			return &ValidationError{Field: "card.cvv", Message: "CVV é obrigatório"}
		}
	default:
		return &ValidationError{Field: "payment_method", Message: "forma de pagamento inválida"}
	}

	return nil
}
