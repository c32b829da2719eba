package usecases_port

import (
	"context"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
)

type GetCategoriesUseCasePort interface {
	Execute(ctx context.Context) ([]domain.Category, error)
}
