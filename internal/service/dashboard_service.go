package service

import (
	"context"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// MonthBucket is one entry of the six-month revenue series
type MonthBucket struct {
	Month   string  `json:"month"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// SellerSummary is per-seller attributed sales and commission
type SellerSummary struct {
	SellerID   string  `json:"seller_id"`
	Name       string  `json:"name"`
	Sales      float64 `json:"sales"`
	Commission float64 `json:"commission"`
}

// Summary is the dashboard read model, derived from the order collection on
// every request
type Summary struct {
	TotalOrders    int             `json:"total_orders"`
	TotalRevenue   float64         `json:"total_revenue"`
	OrdersByStatus map[string]int  `json:"orders_by_status"`
	Monthly        []MonthBucket   `json:"monthly"`
	Sellers        []SellerSummary `json:"sellers"`
}

// DashboardService derives sales metrics from the order collection. Nothing
// is cached; concurrent requests for the same user are collapsed into one
// computation.
type DashboardService struct {
	orders  *OrderService
	sellers *SellerService
	sfg     singleflight.Group
	logger  *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(orders *OrderService, sellers *SellerService) *DashboardService {
	return &DashboardService{
		orders:  orders,
		sellers: sellers,
		logger:  util.GetLogger(),
	}
}

// Summarize computes the dashboard summary for a user
func (s *DashboardService) Summarize(ctx context.Context, userID string) (*Summary, error) {
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		return s.summarize(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Summary), nil
}

func (s *DashboardService) summarize(ctx context.Context, userID string) (*Summary, error) {
	ctx, span := util.StartSpan(ctx, "DashboardService.Summarize")
	defer span.End()

	orders, err := s.orders.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	sellers, err := s.sellers.LoadSellers(ctx, userID)
	if err != nil {
		s.logger.Warn("Failed to load sellers for attribution, rendering without", zap.Error(err))
		sellers = nil
	}

	summary := &Summary{
		OrdersByStatus: map[string]int{},
		Monthly:        monthBuckets(time.Now(), 6),
		Sellers:        []SellerSummary{},
	}

	monthIdx := map[string]int{}
	for i, b := range summary.Monthly {
		monthIdx[b.Month] = i
	}

	sellerTotals := map[string]float64{}
	var sellerOrder []string

	for _, order := range orders {
		summary.TotalOrders++
		summary.TotalRevenue += order.Total
		summary.OrdersByStatus[order.Status]++

		month := order.CreatedAt.Format("2006-01")
		if i, ok := monthIdx[month]; ok {
			summary.Monthly[i].Orders++
			summary.Monthly[i].Revenue += order.Total
		}

		for _, item := range order.Items {
			seller := firstSellerForCategory(sellers, item.Category)
			if seller == nil {
				continue
			}
			if _, seen := sellerTotals[seller.ID]; !seen {
				sellerOrder = append(sellerOrder, seller.ID)
			}
			sellerTotals[seller.ID] += item.UnitPrice * float64(item.Quantity)
		}
	}

	for _, id := range sellerOrder {
		seller := sellerByID(sellers, id)
		if seller == nil {
			continue
		}
		sales := sellerTotals[id]
		summary.Sellers = append(summary.Sellers, SellerSummary{
			SellerID:   seller.ID,
			Name:       seller.Name,
			Sales:      sales,
			Commission: sales * seller.CommissionRate / 100,
		})
	}

	util.DashboardOrdersGauge.Set(float64(summary.TotalOrders))
	util.DashboardRevenueGauge.Set(summary.TotalRevenue)

	return summary, nil
}

// Refresh recomputes a user's summary after a change broadcast, so metric
// gauges track the order collection without waiting for a dashboard visit
func (s *DashboardService) Refresh(ctx context.Context, userID string) error {
	_, err := s.Summarize(ctx, userID)
	return err
}

// monthBuckets returns the last n calendar months ending at now, oldest
// first
func monthBuckets(now time.Time, n int) []MonthBucket {
	buckets := make([]MonthBucket, 0, n)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := n - 1; i >= 0; i-- {
		m := first.AddDate(0, -i, 0)
		buckets = append(buckets, MonthBucket{Month: m.Format("2006-01")})
	}
	return buckets
}

func sellerByID(sellers []models.Seller, id string) *models.Seller {
	for i := range sellers {
		if sellers[i].ID == id {
			return &sellers[i]
		}
	}
	return nil
}
