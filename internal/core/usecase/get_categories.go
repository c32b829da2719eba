package usecase

import (
	"context"
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"
)

type GetCategoriesUseCase struct {
	related port.RelatedEntitiesPort
}

func NewGetCategoriesUseCase(related port.RelatedEntitiesPort) *GetCategoriesUseCase {
	return &GetCategoriesUseCase{related: related}
}

// Execute возвращает справочник категорий.
func (uc *GetCategoriesUseCase) Execute(ctx context.Context) ([]domain.Category, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetCategories",
	})

	ucLogger.Info("Use case started", nil)

	categories, err := uc.related.ListCategories(ctx)
	if err != nil {
		ucLogger.Error("Storage returned an error while listing categories", err, nil)
		return nil, asDependencyError("category store", fmt.Errorf("failed to list categories: %w", err))
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(categories)})
	return categories, nil
}
