package usecase

import (
	"context"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockListingStorage struct {
	mock.Mock
}

func (m *MockListingStorage) FindPage(ctx context.Context, predicate domain.ListingPredicate, sort domain.SortSpec, page domain.PageSpec) (*domain.ListingPage, error) {
	args := m.Called(ctx, predicate, sort, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ListingPage), args.Error(1)
}

func (m *MockListingStorage) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

type MockRelatedEntities struct {
	mock.Mock
}

func (m *MockRelatedEntities) GetCategoriesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Category, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]domain.Category), args.Error(1)
}

func (m *MockRelatedEntities) GetOwnersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.OwnerProfile, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]domain.OwnerProfile), args.Error(1)
}

func (m *MockRelatedEntities) GetImagesByListingIDs(ctx context.Context, listingIDs []uuid.UUID) (map[uuid.UUID][]domain.ListingImage, error) {
	args := m.Called(ctx, listingIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]domain.ListingImage), args.Error(1)
}

func (m *MockRelatedEntities) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

type MockFavoritesRepository struct {
	mock.Mock
}

func (m *MockFavoritesRepository) Add(ctx context.Context, userID, listingID uuid.UUID) error {
	args := m.Called(ctx, userID, listingID)
	return args.Error(0)
}

func (m *MockFavoritesRepository) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	args := m.Called(ctx, userID, listingID)
	return args.Error(0)
}

func (m *MockFavoritesRepository) FindFavoriteListingIDs(ctx context.Context, userID uuid.UUID, listingIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	args := m.Called(ctx, userID, listingIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]struct{}), args.Error(1)
}

func (m *MockFavoritesRepository) FindFavoritesIdsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type MockFavoriteEvents struct {
	mock.Mock
}

func (m *MockFavoriteEvents) PublishFavoriteEvent(ctx context.Context, event domain.FavoriteEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
