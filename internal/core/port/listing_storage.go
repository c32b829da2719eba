package port

import (
	"context"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"

	"github.com/google/uuid"
)

// ListingStoragePort - контракт хранилища объявлений.
type ListingStoragePort interface {
	// FindPage возвращает упорядоченную страницу и общее число совпадений,
	// прочитанные из одного согласованного снимка данных.
	FindPage(ctx context.Context, predicate domain.ListingPredicate, sort domain.SortSpec, page domain.PageSpec) (*domain.ListingPage, error)

	// GetByID возвращает объявление независимо от статуса, domain.NotFoundError если записи нет.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
}
