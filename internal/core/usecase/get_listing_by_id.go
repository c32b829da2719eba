package usecase

import (
	"context"
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"

	"github.com/google/uuid"
)

type GetListingByIDUseCase struct {
	storage  port.ListingStoragePort
	enricher *ListingEnricher
}

func NewGetListingByIDUseCase(storage port.ListingStoragePort, enricher *ListingEnricher) *GetListingByIDUseCase {
	return &GetListingByIDUseCase{storage: storage, enricher: enricher}
}

// Execute возвращает объявление, если оно видно в запрошенной области.
// Невидимое объявление неотличимо от несуществующего.
func (uc *GetListingByIDUseCase) Execute(ctx context.Context, listingID uuid.UUID, requestingUserID *uuid.UUID, scope domain.SearchScope) (*domain.EnrichedListing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetListingByID",
		"listing_id": listingID,
		"scope":      scope,
	})

	ucLogger.Info("Use case started", nil)

	scope, err := domain.ParseSearchScope(string(scope))
	if err != nil {
		return nil, err
	}

	listing, err := uc.storage.GetByID(ctx, listingID)
	if err != nil {
		if !errorsIsNotFound(err) {
			ucLogger.Error("Storage returned an error", err, nil)
		}
		return nil, asDependencyError("listing store", fmt.Errorf("failed to get listing: %w", err))
	}

	predicate := domain.BuildPredicate(domain.SearchCriteria{}, scope, requestingUserID)
	if !predicate.Matches(*listing) {
		ucLogger.Info("Listing is not visible in requested scope", port.Fields{"status": listing.Status})
		return nil, domain.NewNotFoundError("listing", listingID.String())
	}

	enriched, err := uc.enricher.Enrich(ctx, []domain.Listing{*listing}, requestingUserID)
	if err != nil {
		ucLogger.Error("Failed to enrich listing", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return &enriched[0], nil
}
