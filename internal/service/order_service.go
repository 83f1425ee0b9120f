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

// Order errors
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderStatusUnknown = errors.New("unknown order status")
)

// OrderService owns the order collection. Orders live in the fallback store
// only; they are not mirrored to the remote record store (see DESIGN.md).
// Every mutation rewrites the whole collection and broadcasts a change
// notification.
type OrderService struct {
	fallbackStore FallbackStore
	notifier      Notifier
	logger        *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(fallbackStore FallbackStore, notifier Notifier) *OrderService {
	return &OrderService{
		fallbackStore: fallbackStore,
		notifier:      notifier,
		logger:        util.GetLogger(),
	}
}

// List returns all orders for a user
func (s *OrderService) List(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.fallbackStore.GetSnapshot(ctx, userID, models.CollectionOrders, &orders)
	if errors.Is(err, fallback.ErrNotFound) {
		return []models.Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	return orders, nil
}

// Get returns one order by id
func (s *OrderService) Get(ctx context.Context, userID, id string) (*models.Order, error) {
	orders, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, ErrOrderNotFound
}

// Append persists a new order and broadcasts the change
func (s *OrderService) Append(ctx context.Context, userID string, order models.Order) error {
	ctx, span := util.StartSpan(ctx, "OrderService.Append")
	defer span.End()

	orders, err := s.List(ctx, userID)
	if err != nil {
		return err
	}
	orders = append(orders, order)

	if err := s.fallbackStore.SetSnapshot(ctx, userID, models.CollectionOrders, orders); err != nil {
		return fmt.Errorf("failed to persist order: %w", err)
	}

	s.broadcast(ctx, userID, order.ID)
	return nil
}

// UpdateStatus transitions an order to a new status
func (s *OrderService) UpdateStatus(ctx context.Context, userID, id, status string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateStatus")
	defer span.End()

	if !models.ValidOrderStatus(status) {
		return nil, ErrOrderStatusUnknown
	}

	orders, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range orders {
		if orders[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrOrderNotFound
	}

	orders[idx].Status = status
	if err := s.fallbackStore.SetSnapshot(ctx, userID, models.CollectionOrders, orders); err != nil {
		return nil, fmt.Errorf("failed to persist status change: %w", err)
	}

	util.OrderStatusTransitionsTotal.WithLabelValues(status).Inc()
	s.broadcast(ctx, userID, id)
	s.logger.Info("Order status updated",
		zap.String("order_id", id),
		zap.String("status", status))
	return &orders[idx], nil
}

// Delete removes an order from the collection
func (s *OrderService) Delete(ctx context.Context, userID, id string) error {
	ctx, span := util.StartSpan(ctx, "OrderService.Delete")
	defer span.End()

	orders, err := s.List(ctx, userID)
	if err != nil {
		return err
	}

	kept := orders[:0]
	found := false
	for _, o := range orders {
		if o.ID == id {
			found = true
			continue
		}
		kept = append(kept, o)
	}
	if !found {
		return ErrOrderNotFound
	}

	if err := s.fallbackStore.SetSnapshot(ctx, userID, models.CollectionOrders, kept); err != nil {
		return fmt.Errorf("failed to persist order delete: %w", err)
	}

	util.OrdersDeletedTotal.Inc()
	s.broadcast(ctx, userID, id)
	return nil
}

func (s *OrderService) broadcast(ctx context.Context, userID, orderID string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishOrdersChanged(ctx, userID, orderID); err != nil {
		s.logger.Warn("Failed to broadcast order change", zap.Error(err))
	}
}
