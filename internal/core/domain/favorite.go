package domain

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteItem - одна запись об объявлении в избранном пользователя.
type FavoriteItem struct {
	UserID    uuid.UUID
	ListingID uuid.UUID
	CreatedAt time.Time
}

type FavoriteEventType string

const (
	FavoriteAdded   FavoriteEventType = "favorite-added"
	FavoriteRemoved FavoriteEventType = "favorite-removed"
)

// FavoriteEvent публикуется после изменения избранного.
type FavoriteEvent struct {
	Type       FavoriteEventType
	UserID     uuid.UUID
	ListingID  uuid.UUID
	OccurredAt time.Time
}
