package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/constants"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// MessagePublisher - то, что адаптеру нужно от rabbitmq_producer.Publisher.
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// EventValidator проверяет тело события по схеме (contracts.ValidateEvent).
type EventValidator func(eventType, eventVersion string, body []byte) error

type favoriteEventMessage struct {
	EventID    uuid.UUID `json:"event_id"`
	UserID     uuid.UUID `json:"user_id"`
	ListingID  uuid.UUID `json:"listing_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// FavoriteEventsPublisher - реализация FavoriteEventsPort для RabbitMQ.
type FavoriteEventsPublisher struct {
	producer MessagePublisher
	validate EventValidator
}

func NewFavoriteEventsPublisher(producer MessagePublisher, validate EventValidator) (*FavoriteEventsPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &FavoriteEventsPublisher{producer: producer, validate: validate}, nil
}

func routeFor(eventType domain.FavoriteEventType) (routingKey, eventName string, err error) {
	switch eventType {
	case domain.FavoriteAdded:
		return constants.RoutingKeyFavoriteAdded, constants.EventFavoriteAdded, nil
	case domain.FavoriteRemoved:
		return constants.RoutingKeyFavoriteRemoved, constants.EventFavoriteRemoved, nil
	}
	return "", "", fmt.Errorf("rabbitmq adapter: unknown favorite event type %q", eventType)
}

func (a *FavoriteEventsPublisher) PublishFavoriteEvent(ctx context.Context, event domain.FavoriteEvent) error {
	routingKey, eventName, err := routeFor(event.Type)
	if err != nil {
		return err
	}

	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "FavoriteEventsPublisher",
		"routing_key": routingKey,
		"event_type":  eventName,
		"listing_id":  event.ListingID,
	})

	body, err := json.Marshal(favoriteEventMessage{
		EventID:    uuid.New(),
		UserID:     event.UserID,
		ListingID:  event.ListingID,
		OccurredAt: event.OccurredAt.UTC(),
	})
	if err != nil {
		adapterLogger.Error("Failed to marshal favorite event", err, nil)
		return fmt.Errorf("failed to marshal favorite event: %w", err)
	}

	if a.validate != nil {
		if err := a.validate(eventName, constants.EventVersionV1, body); err != nil {
			adapterLogger.Error("Favorite event does not match its schema", err, nil)
			return fmt.Errorf("rabbitmq adapter: invalid %s: %w", eventName, err)
		}
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			constants.HeaderEventType:    eventName,
			constants.HeaderEventVersion: constants.EventVersionV1,
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers[constants.HeaderTraceID] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	adapterLogger.Debug("Publishing favorite event", nil)
	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish favorite event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish %s: %w", eventName, err)
	}

	adapterLogger.Info("Favorite event published", nil)
	return nil
}
