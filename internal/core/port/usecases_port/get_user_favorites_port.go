package usecases_port

import (
	"context"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"

	"github.com/google/uuid"
)

type GetUserFavoritesUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID, sort domain.SortSpec, page domain.PageSpec) (*domain.PageEnvelope[domain.EnrichedListing], error)
}
