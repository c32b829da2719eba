//go:build integration

package mysql_adapter

import (
	"context"
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/pkg/mysql"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *sqlx.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.4",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=secret",
			"MYSQL_DATABASE=listings_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start MySQL resource: %s", err)
	}
	resource.Expire(180)

	dsn := fmt.Sprintf("root:secret@tcp(%s)/listings_test", resource.GetHostPort("3306/tcp"))
	pool.MaxWait = 2 * time.Minute
	if err := pool.Retry(func() error {
		var errRetry error
		testDB, errRetry = mysql.NewClient(context.Background(), mysql.Config{DSN: dsn})
		return errRetry
	}); err != nil {
		log.Fatalf("Could not connect to MySQL: %s", err)
	}

	migration, err := os.ReadFile("../../../migrations/mysql/0001_init.up.sql")
	if err != nil {
		log.Fatalf("Could not read migration: %s", err)
	}
	for _, stmt := range strings.Split(string(migration), ";\n") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := testDB.Exec(stmt); err != nil {
			log.Fatalf("Could not apply migration: %s", err)
		}
	}

	code := m.Run()

	testDB.Close()
	if err := pool.Purge(resource); err != nil {
		log.Printf("Could not purge MySQL resource: %s", err)
	}
	os.Exit(code)
}

type myFixture struct {
	categoryID uuid.UUID
	ownerID    uuid.UUID
}

func newMyFixture(t *testing.T) myFixture {
	t.Helper()
	f := myFixture{categoryID: uuid.New(), ownerID: uuid.New()}

	_, err := testDB.Exec(`INSERT INTO categories (id, name_local, name_en) VALUES (?, 'Appartamento', 'Apartment')`, f.categoryID.String())
	require.NoError(t, err)
	_, err = testDB.Exec(`INSERT INTO user_profiles (id, display_name, company_name) VALUES (?, 'Immobiliare Sud', 'Sud SA')`, f.ownerID.String())
	require.NoError(t, err)
	return f
}

func (f myFixture) insertListing(t *testing.T, city string, rent float64, status string, createdAt time.Time) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := testDB.Exec(`
		INSERT INTO listings (id, owner_id, category_id, title, description, monthly_rent, city,
			furnishing_status, pets_allowed, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, 'Two rooms with balcony', ?, ?, 'unfurnished', TRUE, ?, ?, ?)`,
		id.String(), f.ownerID.String(), f.categoryID.String(), "Flat in "+city, rent, city, status, createdAt, createdAt)
	require.NoError(t, err)
	return id
}

func TestMySQLListingRepository_FindPage(t *testing.T) {
	ctx := context.Background()
	f := newMyFixture(t)
	city := "Chiasso-" + uuid.NewString()[:8]
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 12; i++ {
		f.insertListing(t, city, 900, "active", base.Add(time.Duration(i)*time.Hour))
	}
	f.insertListing(t, city, 900, "expired", base)

	repo, err := NewMySQLListingRepository(testDB)
	require.NoError(t, err)

	predicate := domain.BuildPredicate(domain.SearchCriteria{City: &city, PetsAllowed: ptr(true)}, domain.ScopePublic, nil)
	sort := domain.SortSpec{Key: domain.SortByMonthlyRent, Direction: domain.SortDesc}

	var all []domain.Listing
	for skip := 0; skip < 12; skip += 5 {
		page, err := repo.FindPage(ctx, predicate, sort, domain.PageSpec{Skip: skip, Take: 5})
		require.NoError(t, err)
		assert.EqualValues(t, 12, page.TotalCount)
		all = append(all, page.Listings...)
	}
	require.Len(t, all, 12)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID.String(), all[i].ID.String(), "equal rent falls back to id ascending")
	}

	after := base.Add(6 * time.Hour)
	ranged := domain.BuildPredicate(domain.SearchCriteria{City: &city, CreatedAfter: &after}, domain.ScopePublic, nil)
	page, err := repo.FindPage(ctx, ranged, domain.DefaultSortSpec(), domain.PageSpec{Skip: 0, Take: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 6, page.TotalCount)
	assert.True(t, page.Listings[0].CreatedAt.After(page.Listings[5].CreatedAt))

	owner := domain.BuildPredicate(domain.SearchCriteria{City: &city}, domain.ScopeOwner, &f.ownerID)
	own, err := repo.FindPage(ctx, owner, domain.DefaultSortSpec(), domain.PageSpec{Skip: 0, Take: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 13, own.TotalCount)
}

func TestMySQLRepositories_FavoritesAndRelated(t *testing.T) {
	ctx := context.Background()
	f := newMyFixture(t)
	listingID := f.insertListing(t, "Mendrisio", 780, "active", time.Now().UTC())
	userID := uuid.New()

	listings, err := NewMySQLListingRepository(testDB)
	require.NoError(t, err)
	listing, err := listings.GetByID(ctx, listingID)
	require.NoError(t, err)
	assert.Equal(t, 780.0, listing.MonthlyRent)
	assert.Nil(t, listing.Rooms)

	_, err = listings.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	favorites, err := NewMySQLFavoritesRepository(testDB)
	require.NoError(t, err)
	require.NoError(t, favorites.Add(ctx, userID, listingID))
	require.NoError(t, favorites.Add(ctx, userID, listingID))

	ids, err := favorites.FindFavoritesIdsByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{listingID}, ids)

	require.NoError(t, favorites.Remove(ctx, userID, listingID))
	marked, err := favorites.FindFavoriteListingIDs(ctx, userID, []uuid.UUID{listingID})
	require.NoError(t, err)
	assert.Empty(t, marked)

	related, err := NewMySQLRelatedRepository(testDB)
	require.NoError(t, err)
	owners, err := related.GetOwnersByIDs(ctx, []uuid.UUID{f.ownerID})
	require.NoError(t, err)
	require.NotNil(t, owners[f.ownerID].CompanyName)
	assert.Equal(t, "Sud SA", *owners[f.ownerID].CompanyName)

	categories, err := related.ListCategories(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, categories)
}

func ptr[T any](v T) *T { return &v }
