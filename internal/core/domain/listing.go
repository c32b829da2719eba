package domain

import (
	"time"

	"github.com/google/uuid"
)

// FurnishingStatus - степень меблировки жилья.
type FurnishingStatus string

const (
	FurnishingUnfurnished        FurnishingStatus = "unfurnished"
	FurnishingPartiallyFurnished FurnishingStatus = "partially-furnished"
	FurnishingFurnished          FurnishingStatus = "furnished"
)

// ParseFurnishingStatus проверяет, что значение входит в перечисление.
func ParseFurnishingStatus(value string) (FurnishingStatus, error) {
	switch FurnishingStatus(value) {
	case FurnishingUnfurnished, FurnishingPartiallyFurnished, FurnishingFurnished:
		return FurnishingStatus(value), nil
	}
	return "", NewValidationError("furnishing", "must be one of unfurnished, partially-furnished, furnished")
}

// ListingStatus - стадия жизненного цикла объявления.
type ListingStatus string

const (
	ListingStatusDraft    ListingStatus = "draft"
	ListingStatusActive   ListingStatus = "active"
	ListingStatusExpired  ListingStatus = "expired"
	ListingStatusArchived ListingStatus = "archived"
)

func ParseListingStatus(value string) (ListingStatus, error) {
	switch ListingStatus(value) {
	case ListingStatusDraft, ListingStatusActive, ListingStatusExpired, ListingStatusArchived:
		return ListingStatus(value), nil
	}
	return "", NewValidationError("status", "unknown listing status")
}

// Listing - объявление о сдаче жилья. Основная сущность поиска.
type Listing struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	CategoryID uuid.UUID

	Title       string
	Description string

	MonthlyRent float64
	SurfaceArea *int // м², может отсутствовать
	Rooms       *int
	City        string
	Furnishing  FurnishingStatus

	Terrace                     bool
	Garden                      bool
	Pool                        bool
	PetsAllowed                 bool
	Elevator                    bool
	RampAccess                  bool
	ExpensesIncluded            bool
	AcceptsAlternativeGuarantee bool

	AvailableFrom *time.Time
	Status        ListingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // soft delete
}

// IsDeleted - объявление удалено владельцем (мягкое удаление).
func (l Listing) IsDeleted() bool {
	return l.DeletedAt != nil
}

// IsPubliclyVisible - объявление может попасть в публичную выдачу.
func (l Listing) IsPubliclyVisible() bool {
	return l.Status == ListingStatusActive && !l.IsDeleted()
}

// ListingPage - срез выборки и общее количество совпадений до пагинации.
type ListingPage struct {
	Listings   []Listing
	TotalCount int64
}
