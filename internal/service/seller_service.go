package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"storefront-service/internal/fallback"
	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seller validation errors
var (
	ErrSellerNotFound     = errors.New("seller not found")
	ErrSellerNameMissing  = errors.New("seller name is required")
	ErrSellerEmailInvalid = errors.New("seller email is invalid")
	ErrSellerNoCategories = errors.New("seller must own at least one category")
	ErrCommissionRange    = errors.New("commission rate must be between 0 and 100")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// SellerService provides seller CRUD with the same local/remote dual-write
// pattern as the catalog, plus category-to-seller attribution for order
// line items
type SellerService struct {
	remote        SellerRemote
	fallbackStore FallbackStore
	notifier      Notifier
	mirror        *mirrorWriter
	logger        *zap.Logger
}

// NewSellerService creates a new seller service. A nil remote disables
// remote mirroring.
func NewSellerService(remote SellerRemote, fallbackStore FallbackStore, notifier Notifier) *SellerService {
	logger := util.GetLogger()
	return &SellerService{
		remote:        remote,
		fallbackStore: fallbackStore,
		notifier:      notifier,
		mirror:        newMirrorWriter("sellers-remote", logger),
		logger:        logger,
	}
}

// LoadSellers returns sellers in creation order, remote-first with fallback
func (s *SellerService) LoadSellers(ctx context.Context, userID string) ([]models.Seller, error) {
	ctx, span := util.StartSpan(ctx, "SellerService.LoadSellers")
	defer span.End()

	if s.remote != nil && userID != "" {
		sellers, err := s.remote.ListSellers(ctx, userID)
		if err == nil {
			if sellers == nil {
				sellers = []models.Seller{}
			}
			if err := s.fallbackStore.SetSnapshot(ctx, userID, models.CollectionSellers, sellers); err != nil {
				s.logger.Warn("Failed to mirror sellers to fallback", zap.Error(err))
			}
			return sellers, nil
		}
		s.logger.Warn("Remote seller load failed, serving fallback", zap.Error(err))
	}

	util.RemoteLoadFallbacksTotal.WithLabelValues(models.CollectionSellers).Inc()

	var sellers []models.Seller
	err := s.fallbackStore.GetSnapshot(ctx, userID, models.CollectionSellers, &sellers)
	if errors.Is(err, fallback.ErrNotFound) {
		return []models.Seller{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load sellers: %w", err)
	}
	return sellers, nil
}

// CreateSeller creates a seller record; the avatar initial is derived from
// the name
func (s *SellerService) CreateSeller(ctx context.Context, userID string, sel models.Seller) (*models.Seller, error) {
	ctx, span := util.StartSpan(ctx, "SellerService.CreateSeller")
	defer span.End()

	if err := validateSeller(&sel); err != nil {
		return nil, err
	}

	sel.ID = uuid.New().String()
	sel.OwnerID = userID
	sel.AvatarInitial = avatarInitial(sel.Name)
	sel.CreatedAt = time.Now()

	sellers, err := s.LoadSellers(ctx, userID)
	if err != nil {
		return nil, err
	}
	sellers = append(sellers, sel)

	err = s.mirror.write(ctx, models.CollectionSellers, userID,
		func(ctx context.Context) error {
			if s.remote == nil {
				return nil
			}
			return s.remote.InsertSeller(ctx, &sel)
		},
		func() error {
			return s.fallbackStore.SetSnapshot(ctx, userID, models.CollectionSellers, sellers)
		})
	if err != nil {
		return nil, fmt.Errorf("failed to persist seller: %w", err)
	}

	s.broadcastSellers(ctx, userID, sel.ID)
	s.logger.Info("Seller created", zap.String("seller_id", sel.ID), zap.String("name", sel.Name))
	return &sel, nil
}

// UpdateSeller applies a full-record patch by id
func (s *SellerService) UpdateSeller(ctx context.Context, userID, id string, patch models.Seller) (*models.Seller, error) {
	ctx, span := util.StartSpan(ctx, "SellerService.UpdateSeller")
	defer span.End()

	if err := validateSeller(&patch); err != nil {
		return nil, err
	}

	sellers, err := s.LoadSellers(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range sellers {
		if sellers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrSellerNotFound
	}

	patch.ID = sellers[idx].ID
	patch.OwnerID = sellers[idx].OwnerID
	patch.CreatedAt = sellers[idx].CreatedAt
	patch.AvatarInitial = avatarInitial(patch.Name)
	sellers[idx] = patch

	err = s.mirror.write(ctx, models.CollectionSellers, userID,
		func(ctx context.Context) error {
			if s.remote == nil {
				return nil
			}
			return s.remote.UpdateSeller(ctx, &patch)
		},
		func() error {
			return s.fallbackStore.SetSnapshot(ctx, userID, models.CollectionSellers, sellers)
		})
	if err != nil {
		return nil, fmt.Errorf("failed to persist seller update: %w", err)
	}

	s.broadcastSellers(ctx, userID, id)
	return &patch, nil
}

// DeleteSeller removes a seller by id
func (s *SellerService) DeleteSeller(ctx context.Context, userID, id string) error {
	ctx, span := util.StartSpan(ctx, "SellerService.DeleteSeller")
	defer span.End()

	sellers, err := s.LoadSellers(ctx, userID)
	if err != nil {
		return err
	}

	kept := sellers[:0]
	found := false
	for _, sel := range sellers {
		if sel.ID == id {
			found = true
			continue
		}
		kept = append(kept, sel)
	}
	if !found {
		return ErrSellerNotFound
	}

	err = s.mirror.write(ctx, models.CollectionSellers, userID,
		func(ctx context.Context) error {
			if s.remote == nil {
				return nil
			}
			return s.remote.DeleteSeller(ctx, userID, id)
		},
		func() error {
			return s.fallbackStore.SetSnapshot(ctx, userID, models.CollectionSellers, kept)
		})
	if err != nil {
		return fmt.Errorf("failed to persist seller delete: %w", err)
	}

	s.broadcastSellers(ctx, userID, id)
	return nil
}

// AttributeCategory returns the first seller (in creation order) whose
// category set contains the given category, or nil when none match. Two
// sellers claiming the same category is not resolved: first match wins.
func (s *SellerService) AttributeCategory(ctx context.Context, userID, category string) (*models.Seller, error) {
	sellers, err := s.LoadSellers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return firstSellerForCategory(sellers, category), nil
}

func firstSellerForCategory(sellers []models.Seller, category string) *models.Seller {
	for i := range sellers {
		for _, c := range sellers[i].Categories {
			if c == category {
				return &sellers[i]
			}
		}
	}
	return nil
}

func (s *SellerService) broadcastSellers(ctx context.Context, userID, sellerID string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishSellersChanged(ctx, userID, sellerID); err != nil {
		s.logger.Warn("Failed to broadcast seller change", zap.Error(err))
	}
}

func validateSeller(sel *models.Seller) error {
	if strings.TrimSpace(sel.Name) == "" {
		return ErrSellerNameMissing
	}
	if !emailPattern.MatchString(sel.Email) {
		return ErrSellerEmailInvalid
	}
	if len(sel.Categories) == 0 {
		return ErrSellerNoCategories
	}
	if sel.CommissionRate < 0 || sel.CommissionRate > 100 {
		return ErrCommissionRange
	}
	return nil
}

func avatarInitial(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return string(unicode.ToUpper(r))
	}
	return ""
}
