package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"storefront-service/internal/fallback"
	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Catalog validation errors
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrPriceNotPositive = errors.New("product price must be greater than zero")
	ErrNegativeStock    = errors.New("product stock cannot be negative")
)

// Coupon redemption errors, surfaced verbatim to the user
var (
	ErrCouponNotFound  = errors.New("cupom não encontrado")
	ErrCouponInactive  = errors.New("cupom inativo")
	ErrCouponExpired   = errors.New("cupom expirado")
	ErrCouponExhausted = errors.New("cupom esgotado")
)

const couponCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CatalogService orchestrates product and coupon reads/writes across the
// remote record store and the local fallback store, and implements coupon
// redemption. Reads are remote-first with last-remote-wins mirroring; writes
// go through the shared mirrored-write helper.
type CatalogService struct {
	remote        CatalogRemote
	fallbackStore FallbackStore
	notifier      Notifier
	mirror        *mirrorWriter
	codeLength    int
	logger        *zap.Logger
}

// NewCatalogService creates a new catalog service. A nil remote disables
// remote mirroring entirely (fallback-only mode).
func NewCatalogService(remote CatalogRemote, fallbackStore FallbackStore, notifier Notifier, codeLength int) *CatalogService {
	logger := util.GetLogger()
	if codeLength <= 0 {
		codeLength = 8
	}
	return &CatalogService{
		remote:        remote,
		fallbackStore: fallbackStore,
		notifier:      notifier,
		mirror:        newMirrorWriter("catalog-remote", logger),
		codeLength:    codeLength,
		logger:        logger,
	}
}

// LoadProducts returns the product collection for a user. A successful
// remote read overwrites the fallback snapshot regardless of which side is
// newer; on remote failure or an anonymous session the last-known snapshot
// is served.
func (s *CatalogService) LoadProducts(ctx context.Context, userID string) ([]models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.LoadProducts")
	defer span.End()

	if s.remote != nil && userID != "" {
		products, err := s.remote.ListProducts(ctx, userID)
		if err == nil {
			if products == nil {
				products = []models.Product{}
			}
			if err := s.fallbackStore.SetSnapshot(ctx, userID, models.CollectionProducts, products); err != nil {
				s.logger.Warn("Failed to mirror products to fallback", zap.Error(err))
			}
			return products, nil
		}
		s.logger.Warn("Remote product load failed, serving fallback", zap.Error(err))
	}

	util.RemoteLoadFallbacksTotal.WithLabelValues(models.CollectionProducts).Inc()

	var products []models.Product
	err := s.fallbackStore.GetSnapshot(ctx, userID, models.CollectionProducts, &products)
	if errors.Is(err, fallback.ErrNotFound) {
		return []models.Product{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return products, nil
}

// CreateProduct assigns a fresh identifier and timestamp, mirrors the insert
// remotely when a session exists, and always rewrites the local snapshot
func (s *CatalogService) CreateProduct(ctx context.Context, userID string, p models.Product) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreateProduct")
	defer span.End()

	if p.Price <= 0 {
		return nil, ErrPriceNotPositive
	}
	if p.Stock < 0 {
		return nil, ErrNegativeStock
	}

	p.ID = uuid.New().String()
	p.OwnerID = userID
	p.CreatedAt = time.Now()
	if p.Status == "" {
		p.Status = models.ProductStatusActive
	}
	if p.Image == "" && len(p.Images) > 0 {
		p.Image = p.Images[0]
	}

	products, err := s.LoadProducts(ctx, userID)
	if err != nil {
		return nil, err
	}
	products = append(products, p)

	err = s.mirror.write(ctx, models.CollectionProducts, userID,
		func(ctx context.Context) error {
			if s.remote == nil {
				return nil
			}
			return s.remote.InsertProduct(ctx, &p)
		},
		func() error {
			return s.fallbackStore.SetSnapshot(ctx, userID, models.CollectionProducts, products)
		})
	if err != nil {
		return nil, fmt.Errorf("failed to persist product: %w", err)
	}

	s.broadcastCatalog(ctx, userID, models.CollectionProducts, p.ID)
	s.logger.Info("Product created", zap.String("product_id", p.ID), zap.String("name", p.Name))
	return &p, nil
}

// UpdateProduct applies a full-record patch by id. The remote update is
// scoped to (id, owner) and best-effort; the local patch always applies.
func (s *CatalogService) UpdateProduct(ctx context.Context, userID, id string, patch models.Product) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.UpdateProduct")
	defer span.End()

	if patch.Price <= 0 {
		return nil, ErrPriceNotPositive
	}
	if patch.Stock < 0 {
		return nil, ErrNegativeStock
	}

	products, err := s.LoadProducts(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range products {
		if products[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrProductNotFound
	}

	patch.ID = products[idx].ID
	patch.OwnerID = products[idx].OwnerID
	patch.CreatedAt = products[idx].CreatedAt
	if patch.Image == "" && len(patch.Images) > 0 {
		patch.Image = patch.Images[0]
	}
	products[idx] = patch

	err = s.mirror.write(ctx, models.CollectionProducts, userID,
		func(ctx context.Context) error {
			if s.remote == nil {
				return nil
			}
			return s.remote.UpdateProduct(ctx, &patch)
		},
		func() error {
			return s.fallbackStore.SetSnapshot(ctx, userID, models.CollectionProducts, products)
		})
	if err != nil {
		return nil, fmt.Errorf("failed to persist product update: %w", err)
	}

	s.broadcastCatalog(ctx, userID, models.CollectionProducts, id)
	return &patch, nil
}

// DeleteProduct removes a product by id: best-effort remote delete,
// unconditional local removal
func (s *CatalogService) DeleteProduct(ctx context.Context, userID, id string) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.DeleteProduct")
	defer span.End()

	products, err := s.LoadProducts(ctx, userID)
	if err != nil {
		return err
	}

	kept := products[:0]
	found := false
	for _, p := range products {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return ErrProductNotFound
	}

	err = s.mirror.write(ctx, models.CollectionProducts, userID,
		func(ctx context.Context) error {
			if s.remote == nil {
				return nil
			}
			return s.remote.DeleteProduct(ctx, userID, id)
		},
		func() error {
			return s.fallbackStore.SetSnapshot(ctx, userID, models.CollectionProducts, kept)
		})
	if err != nil {
		return fmt.Errorf("failed to persist product delete: %w", err)
	}

	s.broadcastCatalog(ctx, userID, models.CollectionProducts, id)
	return nil
}

func (s *CatalogService) broadcastCatalog(ctx context.Context, userID, collection, entityID string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishCatalogChanged(ctx, userID, collection, entityID); err != nil {
		s.logger.Warn("Failed to broadcast catalog change", zap.Error(err))
	}
}

// GenerateCouponCode returns a random uppercase code from the fixed alphabet
func (s *CatalogService) GenerateCouponCode() string {
	b := make([]byte, s.codeLength)
	for i := range b {
		b[i] = couponCodeAlphabet[rand.Intn(len(couponCodeAlphabet))]
	}
	return string(b)
}
