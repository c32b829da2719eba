package sqlquery

import (
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		term     string
		expected string
	}{
		{"Lugano", "%Lugano%"},
		{"100%", `%100\%%`},
		{"room_1", `%room\_1%`},
		{`a\b`, `%a\\b%`},
		{"", "%%"},
	}
	for _, tc := range tests {
		t.Run(tc.term, func(t *testing.T) {
			assert.Equal(t, tc.expected, ContainsPattern(tc.term))
		})
	}
}

func TestNewBuilder_UnknownDialect(t *testing.T) {
	_, err := NewBuilder("sqlite3")
	assert.Error(t, err)
}

func TestBuilder_PublicPageQuery_Postgres(t *testing.T) {
	b, err := NewBuilder(DialectPostgres)
	require.NoError(t, err)

	categoryID := uuid.New()
	predicate := domain.BuildPredicate(domain.SearchCriteria{
		CategoryID:  &categoryID,
		City:        ptr("lug"),
		MinPrice:    ptr(400.0),
		MaxRooms:    ptr(3),
		PetsAllowed: ptr(true),
		Garden:      ptr(false),
		TextSearch:  ptr("50%"),
	}, domain.ScopePublic, nil)

	query, args, err := b.SelectListingsPage(predicate,
		domain.SortSpec{Key: domain.SortByMonthlyRent, Direction: domain.SortAsc},
		domain.PageSpec{Skip: 20, Take: 10})
	require.NoError(t, err)

	assert.Contains(t, query, `FROM "listings"`)
	assert.Contains(t, query, `"deleted_at" IS NULL`)
	assert.Contains(t, query, `"status" = $`)
	assert.Contains(t, query, `"category_id" = $`)
	assert.Contains(t, query, `"city" ILIKE $`)
	assert.Contains(t, query, `"monthly_rent" >= $`)
	assert.Contains(t, query, `"rooms" <= $`)
	assert.Contains(t, query, `"pets_allowed" IS TRUE`)
	assert.NotContains(t, query, `"garden"`, "false feature flag adds no condition")
	assert.Contains(t, query, `"title" ILIKE $`)
	assert.Contains(t, query, `"description" ILIKE $`)
	assert.Contains(t, query, `ORDER BY "monthly_rent" ASC, "id" ASC`)
	assert.Contains(t, query, "LIMIT")
	assert.Contains(t, query, "OFFSET")

	assert.Contains(t, args, "active")
	assert.Contains(t, args, categoryID.String())
	assert.Contains(t, args, "%lug%")
	assert.Contains(t, args, `%50\%%`)
	assert.Contains(t, args, 400.0)
}

func TestBuilder_OwnerScopeAndCreatedRange_MySQL(t *testing.T) {
	b, err := NewBuilder(DialectMySQL)
	require.NoError(t, err)

	owner := uuid.New()
	after := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	predicate := domain.BuildPredicate(domain.SearchCriteria{
		City:          ptr("Lugano"),
		CreatedAfter:  &after,
		CreatedBefore: &before,
	}, domain.ScopeOwner, &owner)

	query, args, err := b.SelectListingsPage(predicate, domain.SortSpec{Key: domain.SortByCity, Direction: domain.SortDesc}, domain.PageSpec{Skip: 0, Take: 20})
	require.NoError(t, err)

	assert.Contains(t, query, "FROM `listings`")
	assert.NotContains(t, query, "`status`", "owner scope sees every status")
	assert.Contains(t, query, "`owner_id` = ?")
	assert.Contains(t, query, "`city` LIKE ?")
	assert.Contains(t, query, "`created_at` >= ?")
	assert.Contains(t, query, "`created_at` < ?")
	assert.Contains(t, query, "LOWER(`city`) DESC, `id` ASC")

	assert.Contains(t, args, owner.String())
	assert.Contains(t, args, after)
	assert.Contains(t, args, before)
}

func TestBuilder_CountUsesSameFilters(t *testing.T) {
	b, err := NewBuilder(DialectPostgres)
	require.NoError(t, err)

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	predicate := domain.BuildPredicate(domain.SearchCriteria{ListingIDs: ids}, domain.ScopePublic, nil)

	query, args, err := b.CountListings(predicate)
	require.NoError(t, err)

	assert.Contains(t, query, `COUNT(*) AS "total"`)
	assert.Contains(t, query, `"id" IN ($`)
	assert.NotContains(t, query, "ORDER BY")
	assert.Contains(t, args, ids[0].String())
	assert.Contains(t, args, ids[1].String())
}

func TestBuilder_UnsatisfiablePredicateMatchesNothing(t *testing.T) {
	b, err := NewBuilder(DialectPostgres)
	require.NoError(t, err)

	predicate := domain.BuildPredicate(domain.SearchCriteria{MinPrice: ptr(900.0), MaxPrice: ptr(100.0)}, domain.ScopePublic, nil)
	query, _, err := b.CountListings(predicate)
	require.NoError(t, err)
	assert.Contains(t, query, "1 = 0")
}

func TestBuilder_SelectListingsPage_InvalidPage(t *testing.T) {
	b, err := NewBuilder(DialectPostgres)
	require.NoError(t, err)

	_, _, err = b.SelectListingsPage(domain.ListingPredicate{}, domain.DefaultSortSpec(), domain.PageSpec{Skip: 0, Take: 0})
	assert.Error(t, err)
}

func TestBuilder_InsertFavoriteIsIdempotent(t *testing.T) {
	userID, listingID := uuid.New(), uuid.New()
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	pg, err := NewBuilder(DialectPostgres)
	require.NoError(t, err)
	query, args, err := pg.InsertFavorite(userID, listingID, now)
	require.NoError(t, err)
	assert.Contains(t, query, `INSERT INTO "user_favorites"`)
	assert.Contains(t, query, "ON CONFLICT DO NOTHING")
	assert.Equal(t, []interface{}{userID.String(), listingID.String(), now}, args)

	my, err := NewBuilder(DialectMySQL)
	require.NoError(t, err)
	query, _, err = my.InsertFavorite(userID, listingID, now)
	require.NoError(t, err)
	assert.Contains(t, query, "INSERT IGNORE INTO `user_favorites`")
}

func TestBuilder_SelectFavoritesByUser(t *testing.T) {
	b, err := NewBuilder(DialectPostgres)
	require.NoError(t, err)

	userID := uuid.New()
	query, args, err := b.SelectFavoritesByUser(userID)
	require.NoError(t, err)
	assert.Contains(t, query, `ORDER BY "created_at" DESC, "listing_id" ASC`)
	assert.Equal(t, []interface{}{userID.String()}, args)
}
