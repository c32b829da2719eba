package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/adapters/sqlquery"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const foreignKeyViolation = "23503"

// PostgresFavoritesRepository - реализация FavoritesRepositoryPort для PostgreSQL.
type PostgresFavoritesRepository struct {
	pool    *pgxpool.Pool
	builder *sqlquery.Builder
	now     func() time.Time
}

func NewPostgresFavoritesRepository(pool *pgxpool.Pool) (*PostgresFavoritesRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	builder, err := sqlquery.NewBuilder(sqlquery.DialectPostgres)
	if err != nil {
		return nil, err
	}
	return &PostgresFavoritesRepository{pool: pool, builder: builder, now: time.Now}, nil
}

// Add добавляет запись в user_favorites. Повторная вставка гасится ON CONFLICT DO NOTHING.
func (r *PostgresFavoritesRepository) Add(ctx context.Context, userID, listingID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresFavoritesRepository",
		"method":     "Add",
		"user_id":    userID,
		"listing_id": listingID,
	})

	query, args, err := r.builder.InsertFavorite(userID, listingID, r.now())
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	cmdTag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			repoLogger.Warn("Listing disappeared before it was added to favorites", nil)
			return domain.NewNotFoundError("listing", listingID.String())
		}
		repoLogger.Error("Failed to add favorite", err, port.Fields{"query": query})
		return dependencyError("failed to add favorite", err)
	}

	if cmdTag.RowsAffected() == 0 {
		repoLogger.Debug("Favorite already exists, operation considered successful.", nil)
	} else {
		repoLogger.Debug("Successfully added to favorites.", nil)
	}
	return nil
}

// Remove удаляет запись из user_favorites. Отсутствие записи не ошибка.
func (r *PostgresFavoritesRepository) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresFavoritesRepository",
		"method":     "Remove",
		"user_id":    userID,
		"listing_id": listingID,
	})

	query, args, err := r.builder.DeleteFavorite(userID, listingID)
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	cmdTag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to remove favorite", err, port.Fields{"query": query})
		return dependencyError("failed to remove favorite", err)
	}

	if cmdTag.RowsAffected() == 0 {
		repoLogger.Debug("Attempted to remove a favorite that did not exist.", nil)
	}
	return nil
}

func (r *PostgresFavoritesRepository) FindFavoriteListingIDs(ctx context.Context, userID uuid.UUID, listingIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	favorites := make(map[uuid.UUID]struct{})
	if len(listingIDs) == 0 {
		return favorites, nil
	}

	query, args, err := r.builder.SelectFavoriteListingIDs(userID, listingIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	ids, err := r.queryIDs(ctx, "FindFavoriteListingIDs", query, args)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		favorites[id] = struct{}{}
	}
	return favorites, nil
}

func (r *PostgresFavoritesRepository) FindFavoritesIdsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query, args, err := r.builder.SelectFavoritesByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return r.queryIDs(ctx, "FindFavoritesIdsByUser", query, args)
}

func (r *PostgresFavoritesRepository) queryIDs(ctx context.Context, method, query string, args []interface{}) ([]uuid.UUID, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresFavoritesRepository",
		"method":    method,
	})

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to query favorite IDs", err, port.Fields{"query": query})
		return nil, dependencyError("failed to query favorite IDs", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			repoLogger.Error("Failed to scan favorite ID row", err, nil)
			return nil, dependencyError("failed to scan favorite ID", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during favorite IDs iteration", err, nil)
		return nil, dependencyError("error during favorite IDs iteration", err)
	}

	return ids, nil
}
