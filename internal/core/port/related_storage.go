package port

import (
	"context"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"

	"github.com/google/uuid"
)

// RelatedEntitiesPort - массовые выборки связанных сущностей для страницы результатов.
// Каждый метод - один запрос на весь набор ключей.
type RelatedEntitiesPort interface {
	GetCategoriesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Category, error)
	GetOwnersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.OwnerProfile, error)
	GetImagesByListingIDs(ctx context.Context, listingIDs []uuid.UUID) (map[uuid.UUID][]domain.ListingImage, error)

	// ListCategories - весь справочник категорий.
	ListCategories(ctx context.Context) ([]domain.Category, error)
}
