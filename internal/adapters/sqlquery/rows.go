package sqlquery

import (
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

// ListingRow - строка таблицы listings. Теги db понимают и pgx.RowToStructByName, и sqlx.
type ListingRow struct {
	ID                          uuid.UUID  `db:"id"`
	OwnerID                     uuid.UUID  `db:"owner_id"`
	CategoryID                  uuid.UUID  `db:"category_id"`
	Title                       string     `db:"title"`
	Description                 string     `db:"description"`
	MonthlyRent                 float64    `db:"monthly_rent"`
	SurfaceArea                 *int       `db:"surface_area"`
	Rooms                       *int       `db:"rooms"`
	City                        string     `db:"city"`
	Furnishing                  string     `db:"furnishing_status"`
	Terrace                     bool       `db:"terrace"`
	Garden                      bool       `db:"garden"`
	Pool                        bool       `db:"pool"`
	PetsAllowed                 bool       `db:"pets_allowed"`
	Elevator                    bool       `db:"elevator"`
	RampAccess                  bool       `db:"ramp_access"`
	ExpensesIncluded            bool       `db:"expenses_included"`
	AcceptsAlternativeGuarantee bool       `db:"accepts_alternative_guarantee"`
	AvailableFrom               *time.Time `db:"available_from"`
	Status                      string     `db:"status"`
	CreatedAt                   time.Time  `db:"created_at"`
	UpdatedAt                   time.Time  `db:"updated_at"`
	DeletedAt                   *time.Time `db:"deleted_at"`
}

func (r ListingRow) ToDomain() (domain.Listing, error) {
	furnishing, err := domain.ParseFurnishingStatus(r.Furnishing)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("listing %s: %w", r.ID, err)
	}
	status, err := domain.ParseListingStatus(r.Status)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("listing %s: %w", r.ID, err)
	}

	return domain.Listing{
		ID:                          r.ID,
		OwnerID:                     r.OwnerID,
		CategoryID:                  r.CategoryID,
		Title:                       r.Title,
		Description:                 r.Description,
		MonthlyRent:                 r.MonthlyRent,
		SurfaceArea:                 r.SurfaceArea,
		Rooms:                       r.Rooms,
		City:                        r.City,
		Furnishing:                  furnishing,
		Terrace:                     r.Terrace,
		Garden:                      r.Garden,
		Pool:                        r.Pool,
		PetsAllowed:                 r.PetsAllowed,
		Elevator:                    r.Elevator,
		RampAccess:                  r.RampAccess,
		ExpensesIncluded:            r.ExpensesIncluded,
		AcceptsAlternativeGuarantee: r.AcceptsAlternativeGuarantee,
		AvailableFrom:               r.AvailableFrom,
		Status:                      status,
		CreatedAt:                   r.CreatedAt,
		UpdatedAt:                   r.UpdatedAt,
		DeletedAt:                   r.DeletedAt,
	}, nil
}

// ListingsToDomain сохраняет порядок строк.
func ListingsToDomain(rows []ListingRow) ([]domain.Listing, error) {
	listings := make([]domain.Listing, 0, len(rows))
	for _, r := range rows {
		l, err := r.ToDomain()
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, nil
}

type CategoryRow struct {
	ID        uuid.UUID `db:"id"`
	NameLocal string    `db:"name_local"`
	NameEn    string    `db:"name_en"`
}

func (r CategoryRow) ToDomain() domain.Category {
	return domain.Category{ID: r.ID, NameLocal: r.NameLocal, NameEn: r.NameEn}
}

type OwnerRow struct {
	ID          uuid.UUID `db:"id"`
	DisplayName string    `db:"display_name"`
	CompanyName *string   `db:"company_name"`
	IsVerified  bool      `db:"is_verified"`
}

func (r OwnerRow) ToDomain() domain.OwnerProfile {
	return domain.OwnerProfile{ID: r.ID, DisplayName: r.DisplayName, CompanyName: r.CompanyName, IsVerified: r.IsVerified}
}

type ImageRow struct {
	ID         uuid.UUID `db:"id"`
	ListingID  uuid.UUID `db:"listing_id"`
	URL        string    `db:"url"`
	IsPrimary  bool      `db:"is_primary"`
	OrderIndex int       `db:"order_index"`
}

func (r ImageRow) ToDomain() domain.ListingImage {
	return domain.ListingImage{ID: r.ID, ListingID: r.ListingID, URL: r.URL, IsPrimary: r.IsPrimary, OrderIndex: r.OrderIndex}
}

// GroupImages раскладывает изображения по объявлениям.
func GroupImages(rows []ImageRow) map[uuid.UUID][]domain.ListingImage {
	grouped := make(map[uuid.UUID][]domain.ListingImage)
	for _, r := range rows {
		grouped[r.ListingID] = append(grouped[r.ListingID], r.ToDomain())
	}
	return grouped
}
