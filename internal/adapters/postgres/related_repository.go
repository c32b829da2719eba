package postgres_adapter

import (
	"context"
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/adapters/sqlquery"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRelatedRepository - категории, профили владельцев и изображения.
type PostgresRelatedRepository struct {
	pool    *pgxpool.Pool
	builder *sqlquery.Builder
}

func NewPostgresRelatedRepository(pool *pgxpool.Pool) (*PostgresRelatedRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	builder, err := sqlquery.NewBuilder(sqlquery.DialectPostgres)
	if err != nil {
		return nil, err
	}
	return &PostgresRelatedRepository{pool: pool, builder: builder}, nil
}

// collect выполняет запрос и сканирует все строки в T по тегам db.
func collect[T any](ctx context.Context, pool *pgxpool.Pool, method, query string, args []interface{}) ([]T, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresRelatedRepository",
		"method":    method,
	})

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Query failed", err, port.Fields{"query": query})
		return nil, dependencyError(fmt.Sprintf("%s query failed", method), err)
	}
	result, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		repoLogger.Error("Failed to scan rows", err, nil)
		return nil, dependencyError(fmt.Sprintf("%s scan failed", method), err)
	}
	return result, nil
}

func (r *PostgresRelatedRepository) GetCategoriesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Category, error) {
	categories := make(map[uuid.UUID]domain.Category, len(ids))
	if len(ids) == 0 {
		return categories, nil
	}

	query, args, err := r.builder.SelectCategoriesByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := collect[sqlquery.CategoryRow](ctx, r.pool, "GetCategoriesByIDs", query, args)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		categories[row.ID] = row.ToDomain()
	}
	return categories, nil
}

func (r *PostgresRelatedRepository) GetOwnersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.OwnerProfile, error) {
	owners := make(map[uuid.UUID]domain.OwnerProfile, len(ids))
	if len(ids) == 0 {
		return owners, nil
	}

	query, args, err := r.builder.SelectOwnersByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := collect[sqlquery.OwnerRow](ctx, r.pool, "GetOwnersByIDs", query, args)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		owners[row.ID] = row.ToDomain()
	}
	return owners, nil
}

func (r *PostgresRelatedRepository) GetImagesByListingIDs(ctx context.Context, listingIDs []uuid.UUID) (map[uuid.UUID][]domain.ListingImage, error) {
	if len(listingIDs) == 0 {
		return map[uuid.UUID][]domain.ListingImage{}, nil
	}

	query, args, err := r.builder.SelectImagesByListingIDs(listingIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := collect[sqlquery.ImageRow](ctx, r.pool, "GetImagesByListingIDs", query, args)
	if err != nil {
		return nil, err
	}
	return sqlquery.GroupImages(rows), nil
}

func (r *PostgresRelatedRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query, args, err := r.builder.SelectAllCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := collect[sqlquery.CategoryRow](ctx, r.pool, "ListCategories", query, args)
	if err != nil {
		return nil, err
	}

	categories := make([]domain.Category, len(rows))
	for i, row := range rows {
		categories[i] = row.ToDomain()
	}
	return categories, nil
}
