package memory_adapter

import (
	"bytes"
	"context"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// Store - хранилище в памяти. Реализует порты объявлений, связанных сущностей и избранного.
// Используется в тестах и в режиме STORAGE_DRIVER=memory.
type Store struct {
	mu sync.RWMutex

	listings   map[uuid.UUID]domain.Listing
	categories map[uuid.UUID]domain.Category
	owners     map[uuid.UUID]domain.OwnerProfile
	images     map[uuid.UUID][]domain.ListingImage
	favorites  map[uuid.UUID]map[uuid.UUID]time.Time

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		listings:   make(map[uuid.UUID]domain.Listing),
		categories: make(map[uuid.UUID]domain.Category),
		owners:     make(map[uuid.UUID]domain.OwnerProfile),
		images:     make(map[uuid.UUID][]domain.ListingImage),
		favorites:  make(map[uuid.UUID]map[uuid.UUID]time.Time),
		now:        time.Now,
	}
}

func (s *Store) PutListing(listing domain.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings[listing.ID] = listing
}

func (s *Store) PutCategory(category domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[category.ID] = category
}

func (s *Store) PutOwner(owner domain.OwnerProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owners[owner.ID] = owner
}

func (s *Store) PutImage(image domain.ListingImage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[image.ListingID] = append(s.images[image.ListingID], image)
}

// FindPage считает и режет выборку под одной блокировкой чтения.
func (s *Store) FindPage(ctx context.Context, predicate domain.ListingPredicate, sortSpec domain.SortSpec, page domain.PageSpec) (*domain.ListingPage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "MemoryStore",
		"method":    "FindPage",
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	matched := make([]domain.Listing, 0)
	for _, listing := range s.listings {
		if predicate.Matches(listing) {
			matched = append(matched, listing)
		}
	}
	s.mu.RUnlock()

	sortListings(matched, sortSpec)

	total := len(matched)
	start := page.Skip
	if start > total {
		start = total
	}
	end := start + page.Take
	if end > total {
		end = total
	}

	pageItems := make([]domain.Listing, end-start)
	copy(pageItems, matched[start:end])

	repoLogger.Debug("Page selected", port.Fields{"total_count": total, "found_on_page": len(pageItems)})
	return &domain.ListingPage{Listings: pageItems, TotalCount: int64(total)}, nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listing, ok := s.listings[id]
	if !ok {
		return nil, domain.NewNotFoundError("listing", id.String())
	}
	return &listing, nil
}

// sortListings: основной ключ, затем id по возрастанию независимо от направления.
func sortListings(listings []domain.Listing, spec domain.SortSpec) {
	folder := cases.Fold()
	sort.SliceStable(listings, func(i, j int) bool {
		a, b := listings[i], listings[j]

		cmp := 0
		switch spec.Key {
		case domain.SortByMonthlyRent:
			cmp = compareFloat(a.MonthlyRent, b.MonthlyRent)
		case domain.SortByCity:
			cmp = strings.Compare(folder.String(a.City), folder.String(b.City))
		default:
			cmp = a.CreatedAt.Compare(b.CreatedAt)
		}
		if spec.Direction == domain.SortDesc {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp < 0
		}
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
