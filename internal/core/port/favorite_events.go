package port

import (
	"context"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
)

// FavoriteEventsPort - публикация событий об изменении избранного.
type FavoriteEventsPort interface {
	PublishFavoriteEvent(ctx context.Context, event domain.FavoriteEvent) error
}
