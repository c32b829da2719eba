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

type RemoveFromFavoritesUseCase struct {
	repo   port.FavoritesRepositoryPort
	events port.FavoriteEventsPort
}

func NewRemoveFromFavoritesUseCase(repo port.FavoritesRepositoryPort, events port.FavoriteEventsPort) *RemoveFromFavoritesUseCase {
	return &RemoveFromFavoritesUseCase{repo: repo, events: events}
}

func (uc *RemoveFromFavoritesUseCase) Execute(ctx context.Context, userID, listingID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "RemoveFromFavorites",
		"user_id":    userID,
		"listing_id": listingID,
	})

	ucLogger.Info("Use case started", nil)

	if err := uc.repo.Remove(ctx, userID, listingID); err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return asDependencyError("favorites store", fmt.Errorf("failed to remove favorite: %w", err))
	}

	publishFavoriteEvent(ctx, ucLogger, uc.events, domain.FavoriteEvent{
		Type:       domain.FavoriteRemoved,
		UserID:     userID,
		ListingID:  listingID,
		OccurredAt: time.Now().UTC(),
	})

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
