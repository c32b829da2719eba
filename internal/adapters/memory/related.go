package memory_adapter

import (
	"bytes"
	"context"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"sort"

	"github.com/google/uuid"
)

func (s *Store) GetCategoriesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[uuid.UUID]domain.Category, len(ids))
	for _, id := range ids {
		if category, ok := s.categories[id]; ok {
			result[id] = category
		}
	}
	return result, nil
}

func (s *Store) GetOwnersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.OwnerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[uuid.UUID]domain.OwnerProfile, len(ids))
	for _, id := range ids {
		if owner, ok := s.owners[id]; ok {
			result[id] = owner
		}
	}
	return result, nil
}

func (s *Store) GetImagesByListingIDs(ctx context.Context, listingIDs []uuid.UUID) (map[uuid.UUID][]domain.ListingImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[uuid.UUID][]domain.ListingImage, len(listingIDs))
	for _, id := range listingIDs {
		if images, ok := s.images[id]; ok {
			copied := make([]domain.ListingImage, len(images))
			copy(copied, images)
			result[id] = copied
		}
	}
	return result, nil
}

// ListCategories возвращает справочник, упорядоченный по английскому названию.
func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]domain.Category, 0, len(s.categories))
	for _, category := range s.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].NameEn != categories[j].NameEn {
			return categories[i].NameEn < categories[j].NameEn
		}
		return bytes.Compare(categories[i].ID[:], categories[j].ID[:]) < 0
	})
	return categories, nil
}
