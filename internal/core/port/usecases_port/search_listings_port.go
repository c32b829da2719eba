package usecases_port

import (
	"context"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
)

type SearchListingsUseCasePort interface {
	Execute(ctx context.Context, req domain.SearchRequest) (*domain.PageEnvelope[domain.EnrichedListing], error)
}
