package mysql_adapter

import (
	"context"
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/adapters/sqlquery"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// MySQLRelatedRepository - категории, профили владельцев и изображения.
type MySQLRelatedRepository struct {
	db      *sqlx.DB
	builder *sqlquery.Builder
}

func NewMySQLRelatedRepository(db *sqlx.DB) (*MySQLRelatedRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlx.DB cannot be nil")
	}
	builder, err := sqlquery.NewBuilder(sqlquery.DialectMySQL)
	if err != nil {
		return nil, err
	}
	return &MySQLRelatedRepository{db: db, builder: builder}, nil
}

func (r *MySQLRelatedRepository) selectRows(ctx context.Context, dest interface{}, method, query string, args []interface{}) error {
	if err := r.db.SelectContext(ctx, dest, query, args...); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Query failed", err, port.Fields{
			"component": "MySQLRelatedRepository",
			"method":    method,
			"query":     query,
		})
		return dependencyError(fmt.Sprintf("%s query failed", method), err)
	}
	return nil
}

func (r *MySQLRelatedRepository) GetCategoriesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Category, error) {
	categories := make(map[uuid.UUID]domain.Category, len(ids))
	if len(ids) == 0 {
		return categories, nil
	}

	query, args, err := r.builder.SelectCategoriesByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	var rows []sqlquery.CategoryRow
	if err := r.selectRows(ctx, &rows, "GetCategoriesByIDs", query, args); err != nil {
		return nil, err
	}
	for _, row := range rows {
		categories[row.ID] = row.ToDomain()
	}
	return categories, nil
}

func (r *MySQLRelatedRepository) GetOwnersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.OwnerProfile, error) {
	owners := make(map[uuid.UUID]domain.OwnerProfile, len(ids))
	if len(ids) == 0 {
		return owners, nil
	}

	query, args, err := r.builder.SelectOwnersByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	var rows []sqlquery.OwnerRow
	if err := r.selectRows(ctx, &rows, "GetOwnersByIDs", query, args); err != nil {
		return nil, err
	}
	for _, row := range rows {
		owners[row.ID] = row.ToDomain()
	}
	return owners, nil
}

func (r *MySQLRelatedRepository) GetImagesByListingIDs(ctx context.Context, listingIDs []uuid.UUID) (map[uuid.UUID][]domain.ListingImage, error) {
	if len(listingIDs) == 0 {
		return map[uuid.UUID][]domain.ListingImage{}, nil
	}

	query, args, err := r.builder.SelectImagesByListingIDs(listingIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	var rows []sqlquery.ImageRow
	if err := r.selectRows(ctx, &rows, "GetImagesByListingIDs", query, args); err != nil {
		return nil, err
	}
	return sqlquery.GroupImages(rows), nil
}

func (r *MySQLRelatedRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query, args, err := r.builder.SelectAllCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	var rows []sqlquery.CategoryRow
	if err := r.selectRows(ctx, &rows, "ListCategories", query, args); err != nil {
		return nil, err
	}

	categories := make([]domain.Category, len(rows))
	for i, row := range rows {
		categories[i] = row.ToDomain()
	}
	return categories, nil
}
