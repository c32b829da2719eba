package memory_adapter

import (
	"encoding/json"
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"os"
	"time"

	"github.com/google/uuid"
)

// seedFile - формат JSON-файла с начальными данными.
type seedFile struct {
	Categories []seedCategory `json:"categories"`
	Owners     []seedOwner    `json:"owners"`
	Listings   []seedListing  `json:"listings"`
	Images     []seedImage    `json:"images"`
	Favorites  []seedFavorite `json:"favorites"`
}

type seedCategory struct {
	ID        uuid.UUID `json:"id"`
	NameLocal string    `json:"name_local"`
	NameEn    string    `json:"name_en"`
}

type seedOwner struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	CompanyName *string   `json:"company_name"`
	IsVerified  bool      `json:"is_verified"`
}

type seedListing struct {
	ID                          uuid.UUID  `json:"id"`
	OwnerID                     uuid.UUID  `json:"owner_id"`
	CategoryID                  uuid.UUID  `json:"category_id"`
	Title                       string     `json:"title"`
	Description                 string     `json:"description"`
	MonthlyRent                 float64    `json:"monthly_rent"`
	SurfaceArea                 *int       `json:"surface_area"`
	Rooms                       *int       `json:"rooms"`
	City                        string     `json:"city"`
	Furnishing                  string     `json:"furnishing_status"`
	Terrace                     bool       `json:"terrace"`
	Garden                      bool       `json:"garden"`
	Pool                        bool       `json:"pool"`
	PetsAllowed                 bool       `json:"pets_allowed"`
	Elevator                    bool       `json:"elevator"`
	RampAccess                  bool       `json:"ramp_access"`
	ExpensesIncluded            bool       `json:"expenses_included"`
	AcceptsAlternativeGuarantee bool       `json:"accepts_alternative_guarantee"`
	AvailableFrom               *time.Time `json:"available_from"`
	Status                      string     `json:"status"`
	CreatedAt                   time.Time  `json:"created_at"`
	UpdatedAt                   time.Time  `json:"updated_at"`
	DeletedAt                   *time.Time `json:"deleted_at"`
}

type seedImage struct {
	ID         uuid.UUID `json:"id"`
	ListingID  uuid.UUID `json:"listing_id"`
	URL        string    `json:"url"`
	IsPrimary  bool      `json:"is_primary"`
	OrderIndex int       `json:"order_index"`
}

type seedFavorite struct {
	UserID    uuid.UUID `json:"user_id"`
	ListingID uuid.UUID `json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`
}

// LoadSeedFile наполняет хранилище данными из JSON-файла.
func (s *Store) LoadSeedFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("failed to decode seed file %s: %w", path, err)
	}

	for _, c := range seed.Categories {
		s.PutCategory(domain.Category{ID: c.ID, NameLocal: c.NameLocal, NameEn: c.NameEn})
	}
	for _, o := range seed.Owners {
		s.PutOwner(domain.OwnerProfile{ID: o.ID, DisplayName: o.DisplayName, CompanyName: o.CompanyName, IsVerified: o.IsVerified})
	}
	for i, l := range seed.Listings {
		listing, err := l.toDomain()
		if err != nil {
			return fmt.Errorf("seed listing #%d (%s): %w", i, l.ID, err)
		}
		s.PutListing(listing)
	}
	for _, img := range seed.Images {
		s.PutImage(domain.ListingImage{
			ID:         img.ID,
			ListingID:  img.ListingID,
			URL:        img.URL,
			IsPrimary:  img.IsPrimary,
			OrderIndex: img.OrderIndex,
		})
	}

	s.mu.Lock()
	for _, f := range seed.Favorites {
		if _, ok := s.favorites[f.UserID]; !ok {
			s.favorites[f.UserID] = make(map[uuid.UUID]time.Time)
		}
		s.favorites[f.UserID][f.ListingID] = f.CreatedAt
	}
	s.mu.Unlock()

	return nil
}

func (l seedListing) toDomain() (domain.Listing, error) {
	furnishing, err := domain.ParseFurnishingStatus(l.Furnishing)
	if err != nil {
		return domain.Listing{}, err
	}
	status, err := domain.ParseListingStatus(l.Status)
	if err != nil {
		return domain.Listing{}, err
	}

	return domain.Listing{
		ID:                          l.ID,
		OwnerID:                     l.OwnerID,
		CategoryID:                  l.CategoryID,
		Title:                       l.Title,
		Description:                 l.Description,
		MonthlyRent:                 l.MonthlyRent,
		SurfaceArea:                 l.SurfaceArea,
		Rooms:                       l.Rooms,
		City:                        l.City,
		Furnishing:                  furnishing,
		Terrace:                     l.Terrace,
		Garden:                      l.Garden,
		Pool:                        l.Pool,
		PetsAllowed:                 l.PetsAllowed,
		Elevator:                    l.Elevator,
		RampAccess:                  l.RampAccess,
		ExpensesIncluded:            l.ExpensesIncluded,
		AcceptsAlternativeGuarantee: l.AcceptsAlternativeGuarantee,
		AvailableFrom:               l.AvailableFrom,
		Status:                      status,
		CreatedAt:                   l.CreatedAt,
		UpdatedAt:                   l.UpdatedAt,
		DeletedAt:                   l.DeletedAt,
	}, nil
}
