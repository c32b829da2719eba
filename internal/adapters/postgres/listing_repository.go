package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/adapters/sqlquery"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresListingRepository - реализация ListingStoragePort для PostgreSQL.
type PostgresListingRepository struct {
	pool    *pgxpool.Pool
	builder *sqlquery.Builder
}

func NewPostgresListingRepository(pool *pgxpool.Pool) (*PostgresListingRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	builder, err := sqlquery.NewBuilder(sqlquery.DialectPostgres)
	if err != nil {
		return nil, err
	}
	return &PostgresListingRepository{pool: pool, builder: builder}, nil
}

// FindPage читает COUNT и страницу в одной read-only транзакции REPEATABLE READ,
// чтобы total_count и элементы относились к одному снимку.
func (r *PostgresListingRepository) FindPage(ctx context.Context, predicate domain.ListingPredicate, sort domain.SortSpec, page domain.PageSpec) (*domain.ListingPage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresListingRepository",
		"method":    "FindPage",
		"skip":      page.Skip,
		"take":      page.Take,
	})

	countQuery, countArgs, err := r.builder.CountListings(predicate)
	if err != nil {
		return nil, fmt.Errorf("failed to build count query: %w", err)
	}
	pageQuery, pageArgs, err := r.builder.SelectListingsPage(predicate, sort, page)
	if err != nil {
		return nil, fmt.Errorf("failed to build page query: %w", err)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return nil, dependencyError("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	var totalCount int64
	if err := tx.QueryRow(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		repoLogger.Error("Failed to count listings", err, port.Fields{"query": countQuery})
		return nil, dependencyError("failed to count listings", err)
	}

	if totalCount == 0 || int64(page.Skip) >= totalCount {
		repoLogger.Debug("Requested page is empty", port.Fields{"total_count": totalCount})
		return &domain.ListingPage{Listings: []domain.Listing{}, TotalCount: totalCount}, nil
	}

	rows, err := tx.Query(ctx, pageQuery, pageArgs...)
	if err != nil {
		repoLogger.Error("Failed to query listings page", err, port.Fields{"query": pageQuery})
		return nil, dependencyError("failed to query listings", err)
	}
	listingRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[sqlquery.ListingRow])
	if err != nil {
		repoLogger.Error("Failed to scan listing rows", err, nil)
		return nil, dependencyError("failed to scan listings", err)
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return nil, dependencyError("failed to commit transaction", err)
	}

	listings, err := sqlquery.ListingsToDomain(listingRows)
	if err != nil {
		repoLogger.Error("Listing row holds an unknown enum value", err, nil)
		return nil, dependencyError("failed to decode listings", err)
	}

	repoLogger.Debug("Listings page loaded", port.Fields{"total_count": totalCount, "found_on_page": len(listings)})
	return &domain.ListingPage{Listings: listings, TotalCount: totalCount}, nil
}

func (r *PostgresListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresListingRepository",
		"method":     "GetByID",
		"listing_id": id,
	})

	query, args, err := r.builder.SelectListingByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to query listing", err, port.Fields{"query": query})
		return nil, dependencyError("failed to query listing", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[sqlquery.ListingRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Debug("Listing not found", nil)
			return nil, domain.NewNotFoundError("listing", id.String())
		}
		repoLogger.Error("Failed to scan listing", err, nil)
		return nil, dependencyError("failed to scan listing", err)
	}

	listing, err := row.ToDomain()
	if err != nil {
		return nil, dependencyError("failed to decode listing", err)
	}
	return &listing, nil
}
