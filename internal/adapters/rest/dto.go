package rest

import (
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

// PageResponse - страница результатов с метаданными пагинации.
type PageResponse[T any] struct {
	Items           []T   `json:"items"`
	TotalCount      int64 `json:"total_count"`
	Page            int   `json:"page"`
	PageSize        int   `json:"page_size"`
	TotalPages      int   `json:"total_pages"`
	HasNextPage     bool  `json:"has_next_page"`
	HasPreviousPage bool  `json:"has_previous_page"`
}

type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	NameLocal string    `json:"name_local"`
	NameEn    string    `json:"name_en"`
}

type OwnerResponse struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	CompanyName *string   `json:"company_name,omitempty"`
	IsVerified  bool      `json:"is_verified"`
}

type ImageResponse struct {
	ID         uuid.UUID `json:"id"`
	URL        string    `json:"url"`
	IsPrimary  bool      `json:"is_primary"`
	OrderIndex int       `json:"order_index"`
}

// ListingResponse - карточка объявления в выдаче и на детальной странице.
type ListingResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	MonthlyRent float64   `json:"monthly_rent"`
	SurfaceArea *int      `json:"surface_area"`
	Rooms       *int      `json:"rooms"`
	City        string    `json:"city"`
	Furnishing  string    `json:"furnishing_status"`

	Terrace                     bool `json:"terrace"`
	Garden                      bool `json:"garden"`
	Pool                        bool `json:"pool"`
	PetsAllowed                 bool `json:"pets_allowed"`
	Elevator                    bool `json:"elevator"`
	RampAccess                  bool `json:"ramp_access"`
	ExpensesIncluded            bool `json:"expenses_included"`
	AcceptsAlternativeGuarantee bool `json:"accepts_alternative_guarantee"`

	AvailableFrom *time.Time `json:"available_from"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Category     CategoryResponse `json:"category"`
	Owner        OwnerResponse    `json:"owner"`
	Images       []ImageResponse  `json:"images"`
	PrimaryImage *ImageResponse   `json:"primary_image"`
	IsFavorite   bool             `json:"is_favorite"`
}

type AddFavoriteRequest struct {
	ListingID string `json:"listing_id"`
}

type FavoriteIDsResponse struct {
	ListingIDs []uuid.UUID `json:"listing_ids"`
}

func toCategoryResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, NameLocal: c.NameLocal, NameEn: c.NameEn}
}

func toImageResponse(img domain.ListingImage) ImageResponse {
	return ImageResponse{ID: img.ID, URL: img.URL, IsPrimary: img.IsPrimary, OrderIndex: img.OrderIndex}
}

func toListingResponse(l domain.EnrichedListing) ListingResponse {
	resp := ListingResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		MonthlyRent: l.MonthlyRent,
		SurfaceArea: l.SurfaceArea,
		Rooms:       l.Rooms,
		City:        l.City,
		Furnishing:  string(l.Furnishing),

		Terrace:                     l.Terrace,
		Garden:                      l.Garden,
		Pool:                        l.Pool,
		PetsAllowed:                 l.PetsAllowed,
		Elevator:                    l.Elevator,
		RampAccess:                  l.RampAccess,
		ExpensesIncluded:            l.ExpensesIncluded,
		AcceptsAlternativeGuarantee: l.AcceptsAlternativeGuarantee,

		AvailableFrom: l.AvailableFrom,
		Status:        string(l.Status),
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,

		Category: toCategoryResponse(l.Category),
		Owner: OwnerResponse{
			ID:          l.Owner.ID,
			DisplayName: l.Owner.DisplayName,
			CompanyName: l.Owner.CompanyName,
			IsVerified:  l.Owner.IsVerified,
		},
		Images:     make([]ImageResponse, len(l.Images)),
		IsFavorite: l.IsFavorite,
	}
	for i, img := range l.Images {
		resp.Images[i] = toImageResponse(img)
	}
	if l.PrimaryImage != nil {
		primary := toImageResponse(*l.PrimaryImage)
		resp.PrimaryImage = &primary
	}
	return resp
}

func toListingPageResponse(envelope *domain.PageEnvelope[domain.EnrichedListing]) PageResponse[ListingResponse] {
	resp := PageResponse[ListingResponse]{
		Items:           make([]ListingResponse, len(envelope.Items)),
		TotalCount:      envelope.TotalCount,
		Page:            envelope.Page,
		PageSize:        envelope.PageSize,
		TotalPages:      envelope.TotalPages,
		HasNextPage:     envelope.HasNextPage,
		HasPreviousPage: envelope.HasPreviousPage,
	}
	for i, item := range envelope.Items {
		resp.Items[i] = toListingResponse(item)
	}
	return resp
}
