package usecase

import (
	"context"
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ListingEnricher дополняет страницу объявлений категориями, владельцами,
// изображениями и флагом избранного. Порядок и состав строк не меняются.
type ListingEnricher struct {
	related   port.RelatedEntitiesPort
	favorites port.FavoritesRepositoryPort
}

func NewListingEnricher(related port.RelatedEntitiesPort, favorites port.FavoritesRepositoryPort) *ListingEnricher {
	return &ListingEnricher{
		related:   related,
		favorites: favorites,
	}
}

// Enrich выполняет по одному массовому запросу на каждый вид связанных данных.
// Ошибка любого из них отменяет весь запрос: частичных страниц не бывает.
func (e *ListingEnricher) Enrich(ctx context.Context, listings []domain.Listing, requestingUserID *uuid.UUID) ([]domain.EnrichedListing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	enrichLogger := logger.WithFields(port.Fields{
		"component":      "ListingEnricher",
		"listings_count": len(listings),
		"with_user":      requestingUserID != nil,
	})

	if len(listings) == 0 {
		return []domain.EnrichedListing{}, nil
	}

	listingIDs, categoryIDs, ownerIDs := collectKeys(listings)

	var (
		categories map[uuid.UUID]domain.Category
		owners     map[uuid.UUID]domain.OwnerProfile
		images     map[uuid.UUID][]domain.ListingImage
		favorites  map[uuid.UUID]struct{}
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		result, err := e.related.GetCategoriesByIDs(gctx, categoryIDs)
		if err != nil {
			return asDependencyError("category store", fmt.Errorf("failed to load categories: %w", err))
		}
		categories = result
		return nil
	})

	g.Go(func() error {
		result, err := e.related.GetOwnersByIDs(gctx, ownerIDs)
		if err != nil {
			return asDependencyError("user store", fmt.Errorf("failed to load owners: %w", err))
		}
		owners = result
		return nil
	})

	g.Go(func() error {
		result, err := e.related.GetImagesByListingIDs(gctx, listingIDs)
		if err != nil {
			return asDependencyError("image store", fmt.Errorf("failed to load images: %w", err))
		}
		images = result
		return nil
	})

	// Без пользователя хранилище избранного не вызывается вовсе.
	if requestingUserID != nil {
		userID := *requestingUserID
		g.Go(func() error {
			result, err := e.favorites.FindFavoriteListingIDs(gctx, userID, listingIDs)
			if err != nil {
				return asDependencyError("favorites store", fmt.Errorf("failed to load favorites: %w", err))
			}
			favorites = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		enrichLogger.Error("Bulk lookup failed, request aborted", err, nil)
		return nil, err
	}

	missing := 0
	enriched := make([]domain.EnrichedListing, 0, len(listings))
	for _, listing := range listings {
		item := domain.EnrichedListing{Listing: listing}

		if category, ok := categories[listing.CategoryID]; ok {
			item.Category = category
		} else {
			item.Category = domain.Category{ID: listing.CategoryID}
			missing++
		}

		if owner, ok := owners[listing.OwnerID]; ok {
			item.Owner = owner
		} else {
			item.Owner = domain.OwnerProfile{ID: listing.OwnerID}
			missing++
		}

		listingImages := make([]domain.ListingImage, len(images[listing.ID]))
		copy(listingImages, images[listing.ID])
		domain.SortImages(listingImages)
		item.Images = listingImages
		item.PrimaryImage = domain.SelectPrimaryImage(listingImages)

		_, item.IsFavorite = favorites[listing.ID]

		enriched = append(enriched, item)
	}

	if missing > 0 {
		enrichLogger.Warn("Some related entities were not found", port.Fields{"missing": missing})
	}
	enrichLogger.Debug("Page enriched", nil)

	return enriched, nil
}

// collectKeys собирает уникальные ключи в порядке первого появления.
func collectKeys(listings []domain.Listing) (listingIDs, categoryIDs, ownerIDs []uuid.UUID) {
	seenCategories := make(map[uuid.UUID]struct{})
	seenOwners := make(map[uuid.UUID]struct{})

	listingIDs = make([]uuid.UUID, 0, len(listings))
	for _, l := range listings {
		listingIDs = append(listingIDs, l.ID)

		if _, ok := seenCategories[l.CategoryID]; !ok {
			seenCategories[l.CategoryID] = struct{}{}
			categoryIDs = append(categoryIDs, l.CategoryID)
		}
		if _, ok := seenOwners[l.OwnerID]; !ok {
			seenOwners[l.OwnerID] = struct{}{}
			ownerIDs = append(ownerIDs, l.OwnerID)
		}
	}
	return listingIDs, categoryIDs, ownerIDs
}
