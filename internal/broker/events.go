package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"storefront-service/internal/models"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Broadcaster publishes change notifications so open views can refresh
// without a reload. Publishing is fire-and-forget from the caller's point of
// view; failures are logged upstream, never surfaced.
type Broadcaster struct {
	producer *Producer
}

// NewBroadcaster creates a new broadcaster
func NewBroadcaster(producer *Producer) *Broadcaster {
	return &Broadcaster{producer: producer}
}

func newBaseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

// PublishOrdersChanged publishes an OrdersChanged event
func (b *Broadcaster) PublishOrdersChanged(ctx context.Context, userID, orderID string) error {
	event := &models.OrdersChangedEvent{
		BaseEvent: newBaseEvent(models.EventTypeOrdersChanged),
		UserID:    userID,
		OrderID:   orderID,
	}
	return b.producer.PublishEvent(ctx, fmt.Sprintf("orders-%s", userID), event)
}

// PublishCatalogChanged publishes a CatalogChanged event for a product or
// coupon write
func (b *Broadcaster) PublishCatalogChanged(ctx context.Context, userID, collection, entityID string) error {
	event := &models.CatalogChangedEvent{
		BaseEvent:  newBaseEvent(models.EventTypeCatalogChanged),
		UserID:     userID,
		Collection: collection,
		EntityID:   entityID,
	}
	return b.producer.PublishEvent(ctx, fmt.Sprintf("catalog-%s", userID), event)
}

// PublishSellersChanged publishes a SellersChanged event
func (b *Broadcaster) PublishSellersChanged(ctx context.Context, userID, sellerID string) error {
	event := &models.SellersChangedEvent{
		BaseEvent: newBaseEvent(models.EventTypeSellersChanged),
		UserID:    userID,
		SellerID:  sellerID,
	}
	return b.producer.PublishEvent(ctx, fmt.Sprintf("sellers-%s", userID), event)
}

// EventHandler routes incoming change events to registered handlers
type EventHandler struct {
	onOrdersChanged  func(context.Context, *models.OrdersChangedEvent) error
	onCatalogChanged func(context.Context, *models.CatalogChangedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnOrdersChanged registers a handler for OrdersChanged events
func (eh *EventHandler) OnOrdersChanged(handler func(context.Context, *models.OrdersChangedEvent) error) {
	eh.onOrdersChanged = handler
}

// OnCatalogChanged registers a handler for CatalogChanged events
func (eh *EventHandler) OnCatalogChanged(handler func(context.Context, *models.CatalogChangedEvent) error) {
	eh.onCatalogChanged = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch baseEvent.EventType {
	case models.EventTypeOrdersChanged:
		if eh.onOrdersChanged != nil {
			var event models.OrdersChangedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal OrdersChanged event: %w", err)
			}
			return eh.onOrdersChanged(ctx, &event)
		}

	case models.EventTypeCatalogChanged:
		if eh.onCatalogChanged != nil {
			var event models.CatalogChangedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal CatalogChanged event: %w", err)
			}
			return eh.onCatalogChanged(ctx, &event)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
