package usecase

import (
	"context"
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"
)

// SearchListingsUseCase - фильтрация, сортировка, пагинация и обогащение объявлений.
type SearchListingsUseCase struct {
	storage     port.ListingStoragePort
	enricher    *ListingEnricher
	maxPageSize int
}

func NewSearchListingsUseCase(storage port.ListingStoragePort, enricher *ListingEnricher, maxPageSize int) *SearchListingsUseCase {
	if maxPageSize <= 0 {
		maxPageSize = domain.MaxPageSize
	}
	return &SearchListingsUseCase{
		storage:     storage,
		enricher:    enricher,
		maxPageSize: maxPageSize,
	}
}

func (uc *SearchListingsUseCase) Execute(ctx context.Context, req domain.SearchRequest) (*domain.PageEnvelope[domain.EnrichedListing], error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SearchListings",
		"scope":    req.Scope,
		"skip":     req.Page.Skip,
		"take":     req.Page.Take,
		"sort_by":  req.Sort.Key,
		"sort_dir": req.Sort.Direction,
	})

	ucLogger.Info("Use case started", nil)

	scope, page, sortSpec, err := uc.normalizeRequest(req)
	if err != nil {
		ucLogger.Warn("Search request rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	predicate := domain.BuildPredicate(req.Criteria, scope, req.RequestingUserID)
	if predicate.IsUnsatisfiable() {
		ucLogger.Info("Predicate is unsatisfiable, returning empty page", nil)
		envelope := domain.NewPageEnvelope[domain.EnrichedListing](nil, 0, page)
		return &envelope, nil
	}

	result, err := uc.storage.FindPage(ctx, predicate, sortSpec, page)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, asDependencyError("listing store", fmt.Errorf("failed to find listings: %w", err))
	}

	enriched, err := uc.enricher.Enrich(ctx, result.Listings, req.RequestingUserID)
	if err != nil {
		ucLogger.Error("Failed to enrich listings", err, nil)
		return nil, err
	}

	envelope := domain.NewPageEnvelope(enriched, result.TotalCount, page)

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found":   envelope.TotalCount,
		"items_on_page": len(envelope.Items),
		"total_pages":   envelope.TotalPages,
	})
	return &envelope, nil
}

// normalizeRequest подставляет значения по умолчанию и проверяет входные данные.
func (uc *SearchListingsUseCase) normalizeRequest(req domain.SearchRequest) (domain.SearchScope, domain.PageSpec, domain.SortSpec, error) {
	scope, err := domain.ParseSearchScope(string(req.Scope))
	if err != nil {
		return "", domain.PageSpec{}, domain.SortSpec{}, err
	}
	if scope == domain.ScopeOwner && req.RequestingUserID == nil {
		return "", domain.PageSpec{}, domain.SortSpec{}, domain.NewValidationError("scope", "owner scope requires an authenticated user")
	}

	if err := req.Criteria.Validate(); err != nil {
		return "", domain.PageSpec{}, domain.SortSpec{}, err
	}

	take := req.Page.Take
	if take == 0 {
		take = domain.DefaultPageSize
	}
	page, err := domain.NewPageSpec(req.Page.Skip, take, uc.maxPageSize)
	if err != nil {
		return "", domain.PageSpec{}, domain.SortSpec{}, err
	}

	sortSpec, err := domain.ParseSortSpec(string(req.Sort.Key), string(req.Sort.Direction))
	if err != nil {
		return "", domain.PageSpec{}, domain.SortSpec{}, err
	}

	return scope, page, sortSpec, nil
}
