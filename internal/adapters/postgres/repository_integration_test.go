//go:build integration

package postgres_adapter

import (
	"context"
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/pkg/postgres"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=listings",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=listings_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start PostgreSQL resource: %s", err)
	}
	resource.Expire(120)

	databaseURL := fmt.Sprintf("postgres://listings:secret@%s/listings_test?sslmode=disable", resource.GetHostPort("5432/tcp"))
	if err := pool.Retry(func() error {
		var errRetry error
		testPool, errRetry = postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: databaseURL})
		return errRetry
	}); err != nil {
		log.Fatalf("Could not connect to PostgreSQL: %s", err)
	}

	migration, err := os.ReadFile("../../../migrations/postgres/0001_init.up.sql")
	if err != nil {
		log.Fatalf("Could not read migration: %s", err)
	}
	if _, err := testPool.Exec(context.Background(), string(migration)); err != nil {
		log.Fatalf("Could not apply migration: %s", err)
	}

	code := m.Run()

	testPool.Close()
	if err := pool.Purge(resource); err != nil {
		log.Printf("Could not purge PostgreSQL resource: %s", err)
	}
	os.Exit(code)
}

type pgFixture struct {
	categoryID uuid.UUID
	ownerID    uuid.UUID
}

func newPGFixture(t *testing.T) pgFixture {
	t.Helper()
	f := pgFixture{categoryID: uuid.New(), ownerID: uuid.New()}
	ctx := context.Background()

	_, err := testPool.Exec(ctx, `INSERT INTO categories (id, name_local, name_en) VALUES ($1, 'Stanza', 'Room')`, f.categoryID)
	require.NoError(t, err)
	_, err = testPool.Exec(ctx, `INSERT INTO user_profiles (id, display_name, is_verified) VALUES ($1, 'Casa Ticino', TRUE)`, f.ownerID)
	require.NoError(t, err)
	return f
}

func (f pgFixture) insertListing(t *testing.T, city string, rent float64, status string, deleted bool) uuid.UUID {
	t.Helper()
	id := uuid.New()
	var deletedAt *time.Time
	if deleted {
		now := time.Now().UTC()
		deletedAt = &now
	}
	_, err := testPool.Exec(context.Background(), `
		INSERT INTO listings (id, owner_id, category_id, title, description, monthly_rent, rooms, city,
			furnishing_status, pets_allowed, status, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, 'Near USI campus', $5, 2, $6, 'furnished', FALSE, $7, NOW(), NOW(), $8)`,
		id, f.ownerID, f.categoryID, "Room in "+city, rent, city, status, deletedAt)
	require.NoError(t, err)
	return id
}

func TestPostgresListingRepository_FindPage(t *testing.T) {
	ctx := context.Background()
	f := newPGFixture(t)
	city := "Lugano-" + uuid.NewString()[:8]

	for i := 0; i < 25; i++ {
		f.insertListing(t, city, float64(500+(i%5)*100), "active", false)
	}
	f.insertListing(t, city, 100, "draft", false)
	f.insertListing(t, city, 100, "active", true)

	repo, err := NewPostgresListingRepository(testPool)
	require.NoError(t, err)

	predicate := domain.BuildPredicate(domain.SearchCriteria{City: &city}, domain.ScopePublic, nil)
	sort := domain.SortSpec{Key: domain.SortByMonthlyRent, Direction: domain.SortAsc}

	seen := map[uuid.UUID]bool{}
	for pageNumber := 1; pageNumber <= 3; pageNumber++ {
		spec, err := domain.PageFromNumber(pageNumber, 10, domain.MaxPageSize)
		require.NoError(t, err)

		page, err := repo.FindPage(ctx, predicate, sort, spec)
		require.NoError(t, err)
		assert.EqualValues(t, 25, page.TotalCount)
		for _, l := range page.Listings {
			assert.False(t, seen[l.ID], "listing repeated across pages")
			seen[l.ID] = true
			assert.Equal(t, domain.ListingStatusActive, l.Status)
		}
		if pageNumber == 3 {
			assert.Len(t, page.Listings, 5)
		}
	}
	assert.Len(t, seen, 25)

	beyond, err := repo.FindPage(ctx, predicate, sort, domain.PageSpec{Skip: 30, Take: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond.Listings)
	assert.EqualValues(t, 25, beyond.TotalCount)
}

func TestPostgresListingRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	f := newPGFixture(t)
	id := f.insertListing(t, "Bellinzona", 720.5, "draft", false)

	repo, err := NewPostgresListingRepository(testPool)
	require.NoError(t, err)

	listing, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 720.5, listing.MonthlyRent)
	assert.Equal(t, domain.ListingStatusDraft, listing.Status)
	require.NotNil(t, listing.Rooms)
	assert.Equal(t, 2, *listing.Rooms)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresFavoritesAndRelated(t *testing.T) {
	ctx := context.Background()
	f := newPGFixture(t)
	first := f.insertListing(t, "Locarno", 600, "active", false)
	second := f.insertListing(t, "Locarno", 650, "active", false)
	userID := uuid.New()

	_, err := testPool.Exec(ctx, `INSERT INTO listing_images (id, listing_id, url, is_primary, order_index) VALUES ($1, $2, 'https://img/1.jpg', TRUE, 0)`, uuid.New(), first)
	require.NoError(t, err)

	favorites, err := NewPostgresFavoritesRepository(testPool)
	require.NoError(t, err)

	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	favorites.now = func() time.Time { clock = clock.Add(time.Minute); return clock }

	require.NoError(t, favorites.Add(ctx, userID, first))
	require.NoError(t, favorites.Add(ctx, userID, first), "repeated add succeeds")
	require.NoError(t, favorites.Add(ctx, userID, second))

	ids, err := favorites.FindFavoritesIdsByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{second, first}, ids, "newest first")

	marked, err := favorites.FindFavoriteListingIDs(ctx, userID, []uuid.UUID{first, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, marked, 1)
	assert.Contains(t, marked, first)

	err = favorites.Add(ctx, userID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, favorites.Remove(ctx, userID, first))
	require.NoError(t, favorites.Remove(ctx, userID, first), "repeated remove succeeds")

	related, err := NewPostgresRelatedRepository(testPool)
	require.NoError(t, err)

	categories, err := related.GetCategoriesByIDs(ctx, []uuid.UUID{f.categoryID})
	require.NoError(t, err)
	assert.Equal(t, "Room", categories[f.categoryID].NameEn)

	owners, err := related.GetOwnersByIDs(ctx, []uuid.UUID{f.ownerID})
	require.NoError(t, err)
	assert.True(t, owners[f.ownerID].IsVerified)
	assert.Nil(t, owners[f.ownerID].CompanyName)

	images, err := related.GetImagesByListingIDs(ctx, []uuid.UUID{first, second})
	require.NoError(t, err)
	assert.Len(t, images[first], 1)
	assert.Empty(t, images[second])
}
