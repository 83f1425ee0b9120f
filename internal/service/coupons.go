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

// Coupon validation errors
var (
	ErrCouponCodeMissing   = errors.New("coupon code is required")
	ErrCouponDiscountRange = errors.New("percentage discount must be between 0 and 100")
	ErrCouponMaxUsesFloor  = errors.New("coupon usage ceiling must be at least 1")
	ErrCouponTypeUnknown   = errors.New("unknown discount type")
	ErrCouponIDNotFound    = errors.New("coupon not found")
)

// LoadCoupons returns the coupon collection for a user, remote-first with
// last-remote-wins fallback mirroring
func (s *CatalogService) LoadCoupons(ctx context.Context, userID string) ([]models.Coupon, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.LoadCoupons")
	defer span.End()

	if s.remote != nil && userID != "" {
		coupons, err := s.remote.ListCoupons(ctx, userID)
		if err == nil {
			if coupons == nil {
				coupons = []models.Coupon{}
			}
			if err := s.fallbackStore.SetSnapshot(ctx, userID, models.CollectionCoupons, coupons); err != nil {
				s.logger.Warn("Failed to mirror coupons to fallback", zap.Error(err))
			}
			return coupons, nil
		}
		s.logger.Warn("Remote coupon load failed, serving fallback", zap.Error(err))
	}

	util.RemoteLoadFallbacksTotal.WithLabelValues(models.CollectionCoupons).Inc()

	var coupons []models.Coupon
	err := s.fallbackStore.GetSnapshot(ctx, userID, models.CollectionCoupons, &coupons)
	if errors.Is(err, fallback.ErrNotFound) {
		return []models.Coupon{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load coupons: %w", err)
	}
	return coupons, nil
}

// CreateCoupon creates a coupon; an empty code is generated from the fixed
// alphabet, a supplied one is uppercased
func (s *CatalogService) CreateCoupon(ctx context.Context, userID string, c models.Coupon) (*models.Coupon, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreateCoupon")
	defer span.End()

	if c.Code == "" {
		c.Code = s.GenerateCouponCode()
	}
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))

	if err := validateCoupon(&c); err != nil {
		return nil, err
	}

	c.ID = uuid.New().String()
	c.OwnerID = userID
	c.CurrentUses = 0
	c.CreatedAt = time.Now()

	coupons, err := s.LoadCoupons(ctx, userID)
	if err != nil {
		return nil, err
	}
	coupons = append(coupons, c)

	err = s.mirror.write(ctx, models.CollectionCoupons, userID,
		func(ctx context.Context) error {
			if s.remote == nil {
				return nil
			}
			return s.remote.InsertCoupon(ctx, &c)
		},
		func() error {
			return s.fallbackStore.SetSnapshot(ctx, userID, models.CollectionCoupons, coupons)
		})
	if err != nil {
		return nil, fmt.Errorf("failed to persist coupon: %w", err)
	}

	s.broadcastCatalog(ctx, userID, models.CollectionCoupons, c.ID)
	s.logger.Info("Coupon created", zap.String("coupon_id", c.ID), zap.String("code", c.Code))
	return &c, nil
}

// UpdateCoupon applies a full-record patch by id; the usage counter travels
// with the patch, which is what redemption relies on
func (s *CatalogService) UpdateCoupon(ctx context.Context, userID, id string, patch models.Coupon) (*models.Coupon, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.UpdateCoupon")
	defer span.End()

	patch.Code = strings.ToUpper(strings.TrimSpace(patch.Code))
	if err := validateCoupon(&patch); err != nil {
		return nil, err
	}

	coupons, err := s.LoadCoupons(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range coupons {
		if coupons[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrCouponIDNotFound
	}

	patch.ID = coupons[idx].ID
	patch.OwnerID = coupons[idx].OwnerID
	patch.CreatedAt = coupons[idx].CreatedAt
	coupons[idx] = patch

	err = s.mirror.write(ctx, models.CollectionCoupons, userID,
		func(ctx context.Context) error {
			if s.remote == nil {
				return nil
			}
			return s.remote.UpdateCoupon(ctx, &patch)
		},
		func() error {
			return s.fallbackStore.SetSnapshot(ctx, userID, models.CollectionCoupons, coupons)
		})
	if err != nil {
		return nil, fmt.Errorf("failed to persist coupon update: %w", err)
	}

	s.broadcastCatalog(ctx, userID, models.CollectionCoupons, id)
	return &patch, nil
}

// DeleteCoupon removes a coupon by id
func (s *CatalogService) DeleteCoupon(ctx context.Context, userID, id string) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.DeleteCoupon")
	defer span.End()

	coupons, err := s.LoadCoupons(ctx, userID)
	if err != nil {
		return err
	}

	kept := coupons[:0]
	found := false
	for _, c := range coupons {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return ErrCouponIDNotFound
	}

	err = s.mirror.write(ctx, models.CollectionCoupons, userID,
		func(ctx context.Context) error {
			if s.remote == nil {
				return nil
			}
			return s.remote.DeleteCoupon(ctx, userID, id)
		},
		func() error {
			return s.fallbackStore.SetSnapshot(ctx, userID, models.CollectionCoupons, kept)
		})
	if err != nil {
		return fmt.Errorf("failed to persist coupon delete: %w", err)
	}

	s.broadcastCatalog(ctx, userID, models.CollectionCoupons, id)
	return nil
}

// Redemption is the successful result of RedeemCoupon. Discount carries the
// raw magnitude from the coupon: a percentage number for percentage coupons,
// the amount itself for fixed ones. The caller multiplies.
type Redemption struct {
	Code         string  `json:"code"`
	DiscountType string  `json:"discount_type"`
	Discount     float64 `json:"discount"`
	Message      string  `json:"message"`
}

// RedeemCoupon validates a code case-insensitively and, on success,
// increments its usage counter through the regular update path. Failed
// redemptions never touch the counter. The increment is best-effort relative
// to the eligibility read; two concurrent redemptions of a near-exhausted
// coupon can both pass.
func (s *CatalogService) RedeemCoupon(ctx context.Context, userID, code string) (*Redemption, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.RedeemCoupon")
	defer span.End()

	coupons, err := s.LoadCoupons(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range coupons {
		if strings.EqualFold(coupons[i].Code, strings.TrimSpace(code)) {
			idx = i
			break
		}
	}
	if idx < 0 {
		util.CouponRedemptionsFailedTotal.WithLabelValues("not_found").Inc()
		return nil, ErrCouponNotFound
	}

	coupon := coupons[idx]
	switch {
	case !coupon.Active:
		util.CouponRedemptionsFailedTotal.WithLabelValues("inactive").Inc()
		return nil, ErrCouponInactive
	case coupon.ExpiresAt.Before(time.Now()):
		util.CouponRedemptionsFailedTotal.WithLabelValues("expired").Inc()
		return nil, ErrCouponExpired
	case coupon.CurrentUses >= coupon.MaxUses:
		util.CouponRedemptionsFailedTotal.WithLabelValues("exhausted").Inc()
		return nil, ErrCouponExhausted
	}

	updated := coupon
	updated.CurrentUses++
	if _, err := s.UpdateCoupon(ctx, userID, coupon.ID, updated); err != nil {
		s.logger.Error("Failed to record coupon use",
			zap.String("coupon_id", coupon.ID),
			zap.Error(err))
	}

	var message string
	if coupon.DiscountType == models.DiscountTypePercentage {
		message = fmt.Sprintf("Cupom aplicado: %.0f%% de desconto", coupon.Discount)
	} else {
		message = fmt.Sprintf("Cupom aplicado: R$ %s de desconto", formatCurrency(coupon.Discount))
	}

	util.CouponsRedeemedTotal.Inc()
	s.logger.Info("Coupon redeemed",
		zap.String("code", coupon.Code),
		zap.String("discount_type", coupon.DiscountType))

	return &Redemption{
		Code:         coupon.Code,
		DiscountType: coupon.DiscountType,
		Discount:     coupon.Discount,
		Message:      message,
	}, nil
}

func validateCoupon(c *models.Coupon) error {
	if c.Code == "" {
		return ErrCouponCodeMissing
	}
	switch c.DiscountType {
	case models.DiscountTypePercentage:
		if c.Discount < 0 || c.Discount > 100 {
			return ErrCouponDiscountRange
		}
	case models.DiscountTypeFixed:
		// any non-negative amount is accepted
		if c.Discount < 0 {
			return ErrCouponDiscountRange
		}
	default:
		return ErrCouponTypeUnknown
	}
	if c.MaxUses < 1 {
		return ErrCouponMaxUsesFloor
	}
	return nil
}
