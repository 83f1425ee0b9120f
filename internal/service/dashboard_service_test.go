package service

import (
	"context"
	"testing"
	"time"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboardFixture() (*DashboardService, *OrderService, *SellerService) {
	fb := newFakeFallback()
	orders := NewOrderService(fb, nil)
	sellers := NewSellerService(nil, fb, nil)
	return NewDashboardService(orders, sellers), orders, sellers
}

func TestDashboardTotalsAndStatusCounts(t *testing.T) {
	dash, orders, _ := dashboardFixture()
	ctx := context.Background()

	require.NoError(t, orders.Append(ctx, testUser, testOrder("o1", 100)))
	require.NoError(t, orders.Append(ctx, testUser, testOrder("o2", 250)))

	shipped := testOrder("o3", 50)
	shipped.Status = models.OrderStatusShipped
	require.NoError(t, orders.Append(ctx, testUser, shipped))

	summary, err := dash.Summarize(ctx, testUser)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalOrders)
	assert.InDelta(t, 400.0, summary.TotalRevenue, 1e-9)
	assert.Equal(t, 2, summary.OrdersByStatus[models.OrderStatusPending])
	assert.Equal(t, 1, summary.OrdersByStatus[models.OrderStatusShipped])
}

func TestDashboardEmptyCollection(t *testing.T) {
	dash, _, _ := dashboardFixture()

	summary, err := dash.Summarize(context.Background(), testUser)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalOrders)
	assert.Equal(t, 0.0, summary.TotalRevenue)
	assert.Len(t, summary.Monthly, 6)
	assert.Empty(t, summary.Sellers)
}

func TestDashboardMonthlySeries(t *testing.T) {
	dash, orders, _ := dashboardFixture()
	ctx := context.Background()

	now := time.Now()

	current := testOrder("o1", 100)
	current.CreatedAt = now
	require.NoError(t, orders.Append(ctx, testUser, current))

	lastMonth := testOrder("o2", 200)
	lastMonth.CreatedAt = time.Date(now.Year(), now.Month(), 1, 12, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	require.NoError(t, orders.Append(ctx, testUser, lastMonth))

	// Outside the six-month window, counted in totals but not the series.
	ancient := testOrder("o3", 400)
	ancient.CreatedAt = now.AddDate(-1, 0, 0)
	require.NoError(t, orders.Append(ctx, testUser, ancient))

	summary, err := dash.Summarize(ctx, testUser)
	require.NoError(t, err)

	require.Len(t, summary.Monthly, 6)
	last := summary.Monthly[5]
	assert.Equal(t, now.Format("2006-01"), last.Month)
	assert.Equal(t, 1, last.Orders)
	assert.InDelta(t, 100.0, last.Revenue, 1e-9)

	var seriesRevenue float64
	for _, b := range summary.Monthly {
		seriesRevenue += b.Revenue
	}
	assert.InDelta(t, 300.0, seriesRevenue, 1e-9)
	assert.InDelta(t, 700.0, summary.TotalRevenue, 1e-9)
}

func TestDashboardSellerCommissions(t *testing.T) {
	dash, orders, sellers := dashboardFixture()
	ctx := context.Background()

	ana := testSeller("Ana", "ana@example.com", "Automatizadores")
	ana.CommissionRate = 10
	created, err := sellers.CreateSeller(ctx, testUser, ana)
	require.NoError(t, err)

	// Second seller for the same category never gets attribution.
	_, err = sellers.CreateSeller(ctx, testUser, testSeller("Bruno", "bruno@example.com", "Automatizadores"))
	require.NoError(t, err)

	order := testOrder("o1", 100)
	order.Items = []models.OrderItem{
		{ProductID: "p1", Name: "Kit p1", Quantity: 2, UnitPrice: 100, Category: "Automatizadores"},
		{ProductID: "p2", Name: "Trilho avulso", Quantity: 1, UnitPrice: 50, Category: "Peças avulsas"},
	}
	require.NoError(t, orders.Append(ctx, testUser, order))

	summary, err := dash.Summarize(ctx, testUser)
	require.NoError(t, err)

	require.Len(t, summary.Sellers, 1)
	attributed := summary.Sellers[0]
	assert.Equal(t, created.ID, attributed.SellerID)
	assert.InDelta(t, 200.0, attributed.Sales, 1e-9)
	assert.InDelta(t, 20.0, attributed.Commission, 1e-9)
}

func TestMonthBucketsOldestFirst(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	buckets := monthBuckets(now, 6)
	require.Len(t, buckets, 6)
	assert.Equal(t, "2025-10", buckets[0].Month)
	assert.Equal(t, "2026-03", buckets[5].Month)
}
