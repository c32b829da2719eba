package usecase

import (
	"context"
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"

	"github.com/google/uuid"
)

// GetUserFavoritesUseCase - избранное пользователя как обычный публичный поиск,
// ограниченный набором ID. Снятые с публикации объявления в выдачу не попадают.
type GetUserFavoritesUseCase struct {
	favoritesRepo port.FavoritesRepositoryPort
	search        *SearchListingsUseCase
}

func NewGetUserFavoritesUseCase(favoritesRepo port.FavoritesRepositoryPort, search *SearchListingsUseCase) *GetUserFavoritesUseCase {
	return &GetUserFavoritesUseCase{
		favoritesRepo: favoritesRepo,
		search:        search,
	}
}

func (uc *GetUserFavoritesUseCase) Execute(ctx context.Context, userID uuid.UUID, sort domain.SortSpec, page domain.PageSpec) (*domain.PageEnvelope[domain.EnrichedListing], error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetUserFavorites",
		"user_id":  userID,
		"skip":     page.Skip,
		"take":     page.Take,
	})

	ucLogger.Info("Use case started", nil)

	ids, err := uc.favoritesRepo.FindFavoritesIdsByUser(ctx, userID)
	if err != nil {
		ucLogger.Error("Failed to get favorite IDs from repository", err, nil)
		return nil, asDependencyError("favorites store", fmt.Errorf("failed to get favorite IDs: %w", err))
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}

	ucLogger.Info("User favorites found", port.Fields{"total_favorites": len(ids)})

	result, err := uc.search.Execute(ctx, domain.SearchRequest{
		Criteria:         domain.SearchCriteria{ListingIDs: ids},
		Sort:             sort,
		Page:             page,
		RequestingUserID: &userID,
		Scope:            domain.ScopePublic,
	})
	if err != nil {
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return result, nil
}
