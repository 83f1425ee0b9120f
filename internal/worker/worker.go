package worker

import (
	"context"
	"log"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/service"
)

// RefreshWorker consumes change broadcasts and re-derives the dashboard
// read model for the affected user, keeping metric gauges current between
// dashboard visits
type RefreshWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	dashboard    *service.DashboardService
}

// NewRefreshWorker creates a new refresh worker
func NewRefreshWorker(consumer *broker.Consumer, dashboard *service.DashboardService) *RefreshWorker {
	eventHandler := broker.NewEventHandler()

	eventHandler.OnOrdersChanged(func(ctx context.Context, event *models.OrdersChangedEvent) error {
		if err := dashboard.Refresh(ctx, event.UserID); err != nil {
			log.Printf("Dashboard refresh failed for user %s: %v", event.UserID, err)
		}
		return nil
	})

	return &RefreshWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
		dashboard:    dashboard,
	}
}

// Start starts the worker
func (w *RefreshWorker) Start(ctx context.Context) error {
	log.Println("Starting refresh worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *RefreshWorker) Stop() error {
	log.Println("Stopping refresh worker...")
	return w.consumer.Close()
}
