package usecase

import (
	"context"
	"errors"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func listingFixture(categoryID, ownerID uuid.UUID) domain.Listing {
	createdAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return domain.Listing{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		CategoryID:  categoryID,
		Title:       "Room in Lugano",
		MonthlyRent: 700,
		City:        "Lugano",
		Furnishing:  domain.FurnishingFurnished,
		Status:      domain.ListingStatusActive,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestListingEnricher_AnonymousSkipsFavorites(t *testing.T) {
	related := new(MockRelatedEntities)
	favorites := new(MockFavoritesRepository)

	categoryID, ownerID := uuid.New(), uuid.New()
	listings := []domain.Listing{listingFixture(categoryID, ownerID), listingFixture(categoryID, ownerID)}

	related.On("GetCategoriesByIDs", mock.Anything, []uuid.UUID{categoryID}).
		Return(map[uuid.UUID]domain.Category{categoryID: {ID: categoryID, NameLocal: "Stanza", NameEn: "Room"}}, nil).Once()
	related.On("GetOwnersByIDs", mock.Anything, []uuid.UUID{ownerID}).
		Return(map[uuid.UUID]domain.OwnerProfile{ownerID: {ID: ownerID, DisplayName: "Giulia"}}, nil).Once()
	related.On("GetImagesByListingIDs", mock.Anything, []uuid.UUID{listings[0].ID, listings[1].ID}).
		Return(map[uuid.UUID][]domain.ListingImage{}, nil).Once()

	enricher := NewListingEnricher(related, favorites)
	result, err := enricher.Enrich(context.Background(), listings, nil)

	require.NoError(t, err)
	require.Len(t, result, 2)
	for i, item := range result {
		assert.Equal(t, listings[i].ID, item.ID, "order is preserved")
		assert.False(t, item.IsFavorite)
		assert.Equal(t, "Room", item.Category.NameEn)
		assert.Equal(t, "Giulia", item.Owner.DisplayName)
		assert.NotNil(t, item.Images)
		assert.Empty(t, item.Images)
		assert.Nil(t, item.PrimaryImage)
	}

	related.AssertExpectations(t)
	favorites.AssertNotCalled(t, "FindFavoriteListingIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestListingEnricher_FavoritesAndImages(t *testing.T) {
	related := new(MockRelatedEntities)
	favorites := new(MockFavoritesRepository)

	userID := uuid.New()
	categoryID, ownerID := uuid.New(), uuid.New()
	first := listingFixture(categoryID, ownerID)
	second := listingFixture(categoryID, ownerID)

	late := domain.ListingImage{ID: uuid.New(), ListingID: first.ID, URL: "https://cdn.example.org/late.jpg", OrderIndex: 2}
	early := domain.ListingImage{ID: uuid.New(), ListingID: first.ID, URL: "https://cdn.example.org/early.jpg", OrderIndex: 1}

	related.On("GetCategoriesByIDs", mock.Anything, mock.Anything).Return(map[uuid.UUID]domain.Category{}, nil)
	related.On("GetOwnersByIDs", mock.Anything, mock.Anything).Return(map[uuid.UUID]domain.OwnerProfile{}, nil)
	related.On("GetImagesByListingIDs", mock.Anything, mock.Anything).
		Return(map[uuid.UUID][]domain.ListingImage{first.ID: {late, early}}, nil)
	favorites.On("FindFavoriteListingIDs", mock.Anything, userID, []uuid.UUID{first.ID, second.ID}).
		Return(map[uuid.UUID]struct{}{second.ID: {}}, nil).Once()

	enricher := NewListingEnricher(related, favorites)
	result, err := enricher.Enrich(context.Background(), []domain.Listing{first, second}, &userID)

	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.False(t, result[0].IsFavorite)
	assert.True(t, result[1].IsFavorite)

	require.Len(t, result[0].Images, 2)
	assert.Equal(t, early.ID, result[0].Images[0].ID)
	require.NotNil(t, result[0].PrimaryImage)
	assert.Equal(t, early.ID, result[0].PrimaryImage.ID, "without a flag the first image wins")

	// Отсутствующие связанные сущности деградируют до одного ID.
	assert.Equal(t, domain.Category{ID: categoryID}, result[0].Category)
	assert.Equal(t, domain.OwnerProfile{ID: ownerID}, result[1].Owner)

	favorites.AssertExpectations(t)
}

func TestListingEnricher_LookupFailureAbortsRequest(t *testing.T) {
	related := new(MockRelatedEntities)
	favorites := new(MockFavoritesRepository)

	userID := uuid.New()
	listing := listingFixture(uuid.New(), uuid.New())

	related.On("GetCategoriesByIDs", mock.Anything, mock.Anything).Return(map[uuid.UUID]domain.Category{}, nil)
	related.On("GetOwnersByIDs", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))
	related.On("GetImagesByListingIDs", mock.Anything, mock.Anything).Return(map[uuid.UUID][]domain.ListingImage{}, nil)
	favorites.On("FindFavoriteListingIDs", mock.Anything, mock.Anything, mock.Anything).Return(map[uuid.UUID]struct{}{}, nil)

	enricher := NewListingEnricher(related, favorites)
	result, err := enricher.Enrich(context.Background(), []domain.Listing{listing}, &userID)

	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDependency)

	var depErr *domain.DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "user store", depErr.Dependency)
}

func TestListingEnricher_EmptyPageDoesNoLookups(t *testing.T) {
	related := new(MockRelatedEntities)
	favorites := new(MockFavoritesRepository)
	userID := uuid.New()

	result, err := NewListingEnricher(related, favorites).Enrich(context.Background(), nil, &userID)

	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
	related.AssertNotCalled(t, "GetCategoriesByIDs", mock.Anything, mock.Anything)
	favorites.AssertNotCalled(t, "FindFavoriteListingIDs", mock.Anything, mock.Anything, mock.Anything)
}
