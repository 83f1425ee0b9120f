package service

import (
	"context"
	"testing"
	"time"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder(id string, total float64) models.Order {
	return models.Order{
		ID: id,
		Customer: models.Customer{
			Name:  "João da Silva",
			Email: "joao@example.com",
		},
		Address: models.Address{
			City:  "São Paulo",
			State: "SP",
		},
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Kit p1", Quantity: 1, UnitPrice: total, Category: "Automatizadores"},
		},
		Subtotal:      total,
		Total:         total,
		PaymentMethod: models.PaymentMethodPix,
		Status:        models.OrderStatusPending,
		CreatedAt:     time.Now(),
	}
}

func TestOrderAppendAndList(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewOrderService(newFakeFallback(), notifier)
	ctx := context.Background()

	require.NoError(t, svc.Append(ctx, testUser, testOrder("o1", 100)))
	require.NoError(t, svc.Append(ctx, testUser, testOrder("o2", 200)))

	orders, err := svc.List(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o1", orders[0].ID)
	assert.Equal(t, "o2", orders[1].ID)
	assert.Equal(t, []string{"o1", "o2"}, notifier.orders)
}

func TestOrderListEmptyCollection(t *testing.T) {
	svc := NewOrderService(newFakeFallback(), nil)

	orders, err := svc.List(context.Background(), testUser)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderGet(t *testing.T) {
	svc := NewOrderService(newFakeFallback(), nil)
	ctx := context.Background()

	require.NoError(t, svc.Append(ctx, testUser, testOrder("o1", 100)))

	order, err := svc.Get(ctx, testUser, "o1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, order.Total)

	_, err = svc.Get(ctx, testUser, "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderUpdateStatus(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewOrderService(newFakeFallback(), notifier)
	ctx := context.Background()

	require.NoError(t, svc.Append(ctx, testUser, testOrder("o1", 100)))

	updated, err := svc.UpdateStatus(ctx, testUser, "o1", models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)

	// Transition persisted, not just returned.
	order, err := svc.Get(ctx, testUser, "o1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, order.Status)
	assert.Equal(t, []string{"o1", "o1"}, notifier.orders)
}

func TestOrderUpdateStatusRejectsUnknown(t *testing.T) {
	svc := NewOrderService(newFakeFallback(), nil)
	ctx := context.Background()

	require.NoError(t, svc.Append(ctx, testUser, testOrder("o1", 100)))

	_, err := svc.UpdateStatus(ctx, testUser, "o1", "despachado")
	assert.ErrorIs(t, err, ErrOrderStatusUnknown)

	_, err = svc.UpdateStatus(ctx, testUser, "missing", models.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderDelete(t *testing.T) {
	svc := NewOrderService(newFakeFallback(), nil)
	ctx := context.Background()

	require.NoError(t, svc.Append(ctx, testUser, testOrder("o1", 100)))
	require.NoError(t, svc.Append(ctx, testUser, testOrder("o2", 200)))

	require.NoError(t, svc.Delete(ctx, testUser, "o1"))

	orders, err := svc.List(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o2", orders[0].ID)

	assert.ErrorIs(t, svc.Delete(ctx, testUser, "o1"), ErrOrderNotFound)
}

func TestOrdersAreScopedPerUser(t *testing.T) {
	svc := NewOrderService(newFakeFallback(), nil)
	ctx := context.Background()

	require.NoError(t, svc.Append(ctx, testUser, testOrder("o1", 100)))
	require.NoError(t, svc.Append(ctx, "user-2", testOrder("o2", 200)))

	mine, err := svc.List(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "o1", mine[0].ID)
}
