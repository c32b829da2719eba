package usecase

import (
	"context"
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"
	"time"

	"github.com/google/uuid"
)

type AddToFavoritesUseCase struct {
	repo    port.FavoritesRepositoryPort
	storage port.ListingStoragePort
	events  port.FavoriteEventsPort
}

// NewAddToFavoritesUseCase - events может быть nil, если публикация событий отключена.
func NewAddToFavoritesUseCase(repo port.FavoritesRepositoryPort, storage port.ListingStoragePort, events port.FavoriteEventsPort) *AddToFavoritesUseCase {
	return &AddToFavoritesUseCase{repo: repo, storage: storage, events: events}
}

func (uc *AddToFavoritesUseCase) Execute(ctx context.Context, userID, listingID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "AddToFavorites",
		"user_id":    userID,
		"listing_id": listingID,
	})

	ucLogger.Info("Use case started", nil)

	// В избранное можно добавить только объявление из публичной выдачи.
	listing, err := uc.storage.GetByID(ctx, listingID)
	if err != nil {
		return asDependencyError("listing store", fmt.Errorf("failed to check listing: %w", err))
	}
	if !listing.IsPubliclyVisible() {
		ucLogger.Warn("Attempt to favorite a listing that is not publicly visible", port.Fields{"status": listing.Status})
		return domain.NewNotFoundError("listing", listingID.String())
	}

	if err := uc.repo.Add(ctx, userID, listingID); err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return asDependencyError("favorites store", fmt.Errorf("failed to add favorite: %w", err))
	}

	publishFavoriteEvent(ctx, ucLogger, uc.events, domain.FavoriteEvent{
		Type:       domain.FavoriteAdded,
		UserID:     userID,
		ListingID:  listingID,
		OccurredAt: time.Now().UTC(),
	})

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

// publishFavoriteEvent: избранное уже сохранено, поэтому ошибка публикации только логируется.
func publishFavoriteEvent(ctx context.Context, logger port.LoggerPort, events port.FavoriteEventsPort, event domain.FavoriteEvent) {
	if events == nil {
		return
	}
	if err := events.PublishFavoriteEvent(ctx, event); err != nil {
		logger.Error("Failed to publish favorite event", err, port.Fields{"event_type": event.Type})
	}
}
