package memory_adapter

import (
	"bytes"
	"context"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Add идемпотентен: повторное добавление сохраняет исходное время.
func (s *Store) Add(ctx context.Context, userID, listingID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userFavorites, ok := s.favorites[userID]
	if !ok {
		userFavorites = make(map[uuid.UUID]time.Time)
		s.favorites[userID] = userFavorites
	}
	if _, exists := userFavorites[listingID]; exists {
		contextkeys.LoggerFromContext(ctx).Debug("Favorite already exists, operation considered successful.", port.Fields{
			"component":  "MemoryStore",
			"user_id":    userID,
			"listing_id": listingID,
		})
		return nil
	}
	userFavorites[listingID] = s.now()
	return nil
}

func (s *Store) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if userFavorites, ok := s.favorites[userID]; ok {
		delete(userFavorites, listingID)
	}
	return nil
}

func (s *Store) FindFavoriteListingIDs(ctx context.Context, userID uuid.UUID, listingIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[uuid.UUID]struct{})
	userFavorites := s.favorites[userID]
	for _, id := range listingIDs {
		if _, ok := userFavorites[id]; ok {
			result[id] = struct{}{}
		}
	}
	return result, nil
}

// FindFavoritesIdsByUser - новые первыми.
func (s *Store) FindFavoritesIdsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userFavorites := s.favorites[userID]
	ids := make([]uuid.UUID, 0, len(userFavorites))
	for id := range userFavorites {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ti, tj := userFavorites[ids[i]], userFavorites[ids[j]]
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
	return ids, nil
}
