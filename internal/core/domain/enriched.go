package domain

import (
	"sort"

	"github.com/google/uuid"
)

// Category - элемент справочника категорий жилья.
type Category struct {
	ID        uuid.UUID
	NameLocal string
	NameEn    string
}

// OwnerProfile - публичные поля профиля владельца объявления.
type OwnerProfile struct {
	ID          uuid.UUID
	DisplayName string
	CompanyName *string
	IsVerified  bool
}

type ListingImage struct {
	ID         uuid.UUID
	ListingID  uuid.UUID
	URL        string
	IsPrimary  bool
	OrderIndex int
}

// EnrichedListing - объявление вместе со связанными данными для отображения.
type EnrichedListing struct {
	Listing
	Category     Category
	Owner        OwnerProfile
	Images       []ListingImage
	PrimaryImage *ListingImage
	IsFavorite   bool
}

// SortImages упорядочивает изображения по OrderIndex, при равенстве по ID.
func SortImages(images []ListingImage) {
	sort.SliceStable(images, func(i, j int) bool {
		if images[i].OrderIndex != images[j].OrderIndex {
			return images[i].OrderIndex < images[j].OrderIndex
		}
		return images[i].ID.String() < images[j].ID.String()
	})
}

// SelectPrimaryImage выбирает главное изображение без исправления флагов в хранилище:
// среди помеченных isPrimary - с наименьшим OrderIndex, если помеченных нет - первое по порядку.
// Ожидает уже отсортированный срез.
func SelectPrimaryImage(sorted []ListingImage) *ListingImage {
	if len(sorted) == 0 {
		return nil
	}
	for i := range sorted {
		if sorted[i].IsPrimary {
			primary := sorted[i]
			return &primary
		}
	}
	primary := sorted[0]
	return &primary
}
