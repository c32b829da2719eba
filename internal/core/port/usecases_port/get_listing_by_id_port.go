package usecases_port

import (
	"context"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"

	"github.com/google/uuid"
)

type GetListingByIDUseCasePort interface {
	// requestingUserID может быть nil для анонимного запроса
	Execute(ctx context.Context, listingID uuid.UUID, requestingUserID *uuid.UUID, scope domain.SearchScope) (*domain.EnrichedListing, error)
}
