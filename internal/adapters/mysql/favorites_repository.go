package mysql_adapter

import (
	"context"
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/adapters/sqlquery"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// MySQLFavoritesRepository - реализация FavoritesRepositoryPort для MySQL.
type MySQLFavoritesRepository struct {
	db      *sqlx.DB
	builder *sqlquery.Builder
	now     func() time.Time
}

func NewMySQLFavoritesRepository(db *sqlx.DB) (*MySQLFavoritesRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlx.DB cannot be nil")
	}
	builder, err := sqlquery.NewBuilder(sqlquery.DialectMySQL)
	if err != nil {
		return nil, err
	}
	return &MySQLFavoritesRepository{db: db, builder: builder, now: time.Now}, nil
}

// Add - INSERT IGNORE, повторная вставка ничего не меняет.
func (r *MySQLFavoritesRepository) Add(ctx context.Context, userID, listingID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "MySQLFavoritesRepository",
		"method":     "Add",
		"user_id":    userID,
		"listing_id": listingID,
	})

	query, args, err := r.builder.InsertFavorite(userID, listingID, r.now())
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to add favorite", err, port.Fields{"query": query})
		return dependencyError("failed to add favorite", err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		repoLogger.Debug("Favorite already exists, operation considered successful.", nil)
	}
	return nil
}

func (r *MySQLFavoritesRepository) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "MySQLFavoritesRepository",
		"method":     "Remove",
		"user_id":    userID,
		"listing_id": listingID,
	})

	query, args, err := r.builder.DeleteFavorite(userID, listingID)
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		repoLogger.Error("Failed to remove favorite", err, port.Fields{"query": query})
		return dependencyError("failed to remove favorite", err)
	}
	return nil
}

func (r *MySQLFavoritesRepository) FindFavoriteListingIDs(ctx context.Context, userID uuid.UUID, listingIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	favorites := make(map[uuid.UUID]struct{})
	if len(listingIDs) == 0 {
		return favorites, nil
	}

	query, args, err := r.builder.SelectFavoriteListingIDs(userID, listingIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	ids, err := r.selectIDs(ctx, "FindFavoriteListingIDs", query, args)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		favorites[id] = struct{}{}
	}
	return favorites, nil
}

func (r *MySQLFavoritesRepository) FindFavoritesIdsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query, args, err := r.builder.SelectFavoritesByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return r.selectIDs(ctx, "FindFavoritesIdsByUser", query, args)
}

func (r *MySQLFavoritesRepository) selectIDs(ctx context.Context, method, query string, args []interface{}) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to query favorite IDs", err, port.Fields{
			"component": "MySQLFavoritesRepository",
			"method":    method,
			"query":     query,
		})
		return nil, dependencyError("failed to query favorite IDs", err)
	}
	return ids, nil
}
