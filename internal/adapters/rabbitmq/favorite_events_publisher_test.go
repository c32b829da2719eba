package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/constants"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contracts"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	args := m.Called(ctx, routingKey, msg)
	return args.Error(0)
}

func TestFavoriteEventsPublisher_PublishesValidatedMessage(t *testing.T) {
	producer := new(MockPublisher)
	publisher, err := NewFavoriteEventsPublisher(producer, contracts.ValidateEvent)
	require.NoError(t, err)

	event := domain.FavoriteEvent{
		Type:       domain.FavoriteAdded,
		UserID:     uuid.New(),
		ListingID:  uuid.New(),
		OccurredAt: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	var captured amqp.Publishing
	producer.On("Publish", mock.Anything, constants.RoutingKeyFavoriteAdded, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(2).(amqp.Publishing) }).
		Return(nil).Once()

	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-123")
	require.NoError(t, publisher.PublishFavoriteEvent(ctx, event))
	producer.AssertExpectations(t)

	assert.Equal(t, "application/json", captured.ContentType)
	assert.Equal(t, amqp.Persistent, captured.DeliveryMode)
	assert.Equal(t, "trace-123", captured.Headers[constants.HeaderTraceID])
	assert.Equal(t, constants.EventFavoriteAdded, captured.Headers[constants.HeaderEventType])
	assert.Equal(t, constants.EventVersionV1, captured.Headers[constants.HeaderEventVersion])

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(captured.Body, &body))
	assert.Equal(t, event.UserID.String(), body["user_id"])
	assert.Equal(t, event.ListingID.String(), body["listing_id"])
	assert.Equal(t, "2026-05-01T10:00:00Z", body["occurred_at"])
	assert.NotEmpty(t, body["event_id"])
}

func TestFavoriteEventsPublisher_RemovedRoute(t *testing.T) {
	producer := new(MockPublisher)
	publisher, err := NewFavoriteEventsPublisher(producer, nil)
	require.NoError(t, err)

	producer.On("Publish", mock.Anything, constants.RoutingKeyFavoriteRemoved, mock.Anything).Return(nil).Once()

	err = publisher.PublishFavoriteEvent(context.Background(), domain.FavoriteEvent{Type: domain.FavoriteRemoved, UserID: uuid.New(), ListingID: uuid.New(), OccurredAt: time.Now()})
	require.NoError(t, err)
	producer.AssertExpectations(t)
}

func TestFavoriteEventsPublisher_Errors(t *testing.T) {
	_, err := NewFavoriteEventsPublisher(nil, nil)
	assert.Error(t, err)

	producer := new(MockPublisher)
	publisher, err := NewFavoriteEventsPublisher(producer, nil)
	require.NoError(t, err)

	err = publisher.PublishFavoriteEvent(context.Background(), domain.FavoriteEvent{Type: "favorite-renamed"})
	assert.Error(t, err)

	producer.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("channel closed")).Once()
	err = publisher.PublishFavoriteEvent(context.Background(), domain.FavoriteEvent{Type: domain.FavoriteAdded, UserID: uuid.New(), ListingID: uuid.New(), OccurredAt: time.Now()})
	assert.Error(t, err)

	rejecting := func(string, string, []byte) error { return errors.New("schema mismatch") }
	strict, err := NewFavoriteEventsPublisher(producer, rejecting)
	require.NoError(t, err)
	err = strict.PublishFavoriteEvent(context.Background(), domain.FavoriteEvent{Type: domain.FavoriteAdded})
	assert.Error(t, err)
	producer.AssertNumberOfCalls(t, "Publish", 1)
}

func TestToFields(t *testing.T) {
	assert.Equal(t, port.Fields{"name": "listings_exchange", "type": "direct"}, toFields("name", "listings_exchange", "type", "direct"))
	assert.Equal(t, port.Fields{"a": 1}, toFields("a", 1, 42, "skipped", "dangling"))
}
