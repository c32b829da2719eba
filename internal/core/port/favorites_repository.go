package port

import (
	"context"

	"github.com/google/uuid"
)

// FavoritesRepositoryPort - контракт хранилища избранного.
type FavoritesRepositoryPort interface {
	// Add и Remove идемпотентны.
	Add(ctx context.Context, userID, listingID uuid.UUID) error
	Remove(ctx context.Context, userID, listingID uuid.UUID) error

	// FindFavoriteListingIDs - какие из listingIDs есть в избранном пользователя. Один запрос на весь набор.
	FindFavoriteListingIDs(ctx context.Context, userID uuid.UUID, listingIDs []uuid.UUID) (map[uuid.UUID]struct{}, error)

	// FindFavoritesIdsByUser - все ID избранного, новые первыми.
	FindFavoritesIdsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
