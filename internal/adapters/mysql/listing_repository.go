package mysql_adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/adapters/sqlquery"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// MySQLListingRepository - реализация ListingStoragePort для MySQL.
type MySQLListingRepository struct {
	db      *sqlx.DB
	builder *sqlquery.Builder
}

func NewMySQLListingRepository(db *sqlx.DB) (*MySQLListingRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlx.DB cannot be nil")
	}
	builder, err := sqlquery.NewBuilder(sqlquery.DialectMySQL)
	if err != nil {
		return nil, err
	}
	return &MySQLListingRepository{db: db, builder: builder}, nil
}

// FindPage: COUNT и страница читаются в одной read-only транзакции REPEATABLE READ.
func (r *MySQLListingRepository) FindPage(ctx context.Context, predicate domain.ListingPredicate, sort domain.SortSpec, page domain.PageSpec) (*domain.ListingPage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "MySQLListingRepository",
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

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return nil, dependencyError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	var totalCount int64
	if err := tx.GetContext(ctx, &totalCount, countQuery, countArgs...); err != nil {
		repoLogger.Error("Failed to count listings", err, port.Fields{"query": countQuery})
		return nil, dependencyError("failed to count listings", err)
	}

	if totalCount == 0 || int64(page.Skip) >= totalCount {
		repoLogger.Debug("Requested page is empty", port.Fields{"total_count": totalCount})
		return &domain.ListingPage{Listings: []domain.Listing{}, TotalCount: totalCount}, nil
	}

	var rows []sqlquery.ListingRow
	if err := tx.SelectContext(ctx, &rows, pageQuery, pageArgs...); err != nil {
		repoLogger.Error("Failed to query listings page", err, port.Fields{"query": pageQuery})
		return nil, dependencyError("failed to query listings", err)
	}

	if err := tx.Commit(); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return nil, dependencyError("failed to commit transaction", err)
	}

	listings, err := sqlquery.ListingsToDomain(rows)
	if err != nil {
		repoLogger.Error("Listing row holds an unknown enum value", err, nil)
		return nil, dependencyError("failed to decode listings", err)
	}

	repoLogger.Debug("Listings page loaded", port.Fields{"total_count": totalCount, "found_on_page": len(listings)})
	return &domain.ListingPage{Listings: listings, TotalCount: totalCount}, nil
}

func (r *MySQLListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "MySQLListingRepository",
		"method":     "GetByID",
		"listing_id": id,
	})

	query, args, err := r.builder.SelectListingByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var row sqlquery.ListingRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			repoLogger.Debug("Listing not found", nil)
			return nil, domain.NewNotFoundError("listing", id.String())
		}
		repoLogger.Error("Failed to query listing", err, port.Fields{"query": query})
		return nil, dependencyError("failed to query listing", err)
	}

	listing, err := row.ToDomain()
	if err != nil {
		return nil, dependencyError("failed to decode listing", err)
	}
	return &listing, nil
}
