package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// SearchScope - режим поиска: публичная выдача или "мои объявления".
type SearchScope string

const (
	ScopePublic SearchScope = "public"
	ScopeOwner  SearchScope = "owner"
)

func ParseSearchScope(value string) (SearchScope, error) {
	switch SearchScope(value) {
	case "":
		return ScopePublic, nil
	case ScopePublic, ScopeOwner:
		return SearchScope(value), nil
	}
	return "", NewValidationError("scope", "must be public or owner")
}

// SearchCriteria - разреженный набор фильтров. nil означает "без ограничения".
type SearchCriteria struct {
	CategoryID *uuid.UUID
	OwnerID    *uuid.UUID
	City       *string

	MinPrice   *float64
	MaxPrice   *float64
	MinSurface *int
	MaxSurface *int
	MinRooms   *int
	MaxRooms   *int

	Furnishing *FurnishingStatus

	// Учитывается только значение true: "должно быть".
	Terrace                     *bool
	Garden                      *bool
	Pool                        *bool
	PetsAllowed                 *bool
	Elevator                    *bool
	RampAccess                  *bool
	ExpensesIncluded            *bool
	AcceptsAlternativeGuarantee *bool

	TextSearch *string

	CreatedAfter  *time.Time // включительно
	CreatedBefore *time.Time // не включительно

	// ListingIDs ограничивает выборку набором ID (экран избранного).
	// nil - без ограничения, пустой срез - ничего не найдено.
	ListingIDs []uuid.UUID
}

// Validate отклоняет заведомо некорректные значения. min > max ошибкой не считается.
func (c SearchCriteria) Validate() error {
	if c.MinPrice != nil && *c.MinPrice < 0 {
		return NewValidationError("minPrice", "must not be negative")
	}
	if c.MaxPrice != nil && *c.MaxPrice < 0 {
		return NewValidationError("maxPrice", "must not be negative")
	}
	if c.MinSurface != nil && *c.MinSurface < 0 {
		return NewValidationError("minSurface", "must not be negative")
	}
	if c.MaxSurface != nil && *c.MaxSurface < 0 {
		return NewValidationError("maxSurface", "must not be negative")
	}
	if c.MinRooms != nil && *c.MinRooms < 0 {
		return NewValidationError("minRooms", "must not be negative")
	}
	if c.MaxRooms != nil && *c.MaxRooms < 0 {
		return NewValidationError("maxRooms", "must not be negative")
	}
	if c.Furnishing != nil {
		if _, err := ParseFurnishingStatus(string(*c.Furnishing)); err != nil {
			return err
		}
	}
	return nil
}

// ListingPredicate - конъюнкция условий над множеством объявлений.
// Вычисляется в памяти (Matches) и транслируется в SQL адаптерами хранилищ.
type ListingPredicate struct {
	// RequireActive - публичная область: только status = active.
	RequireActive bool
	// OwnerID - владелец из области owner или из фильтра ownerId.
	OwnerID *uuid.UUID

	Criteria SearchCriteria

	unsatisfiable bool
}

// BuildPredicate собирает предикат из уже провалидированных критериев.
// Противоречивые границы дают предикат, которому не соответствует ни одно объявление.
func BuildPredicate(criteria SearchCriteria, scope SearchScope, requestingUserID *uuid.UUID) ListingPredicate {
	p := ListingPredicate{Criteria: criteria, OwnerID: criteria.OwnerID}

	switch scope {
	case ScopeOwner:
		if requestingUserID == nil {
			p.unsatisfiable = true
			break
		}
		if criteria.OwnerID != nil && *criteria.OwnerID != *requestingUserID {
			p.unsatisfiable = true
		}
		owner := *requestingUserID
		p.OwnerID = &owner
	default:
		p.RequireActive = true
	}

	if criteria.MinPrice != nil && criteria.MaxPrice != nil && *criteria.MinPrice > *criteria.MaxPrice {
		p.unsatisfiable = true
	}
	if isEmptyIntRange(criteria.MinSurface, criteria.MaxSurface) || isEmptyIntRange(criteria.MinRooms, criteria.MaxRooms) {
		p.unsatisfiable = true
	}
	if criteria.CreatedAfter != nil && criteria.CreatedBefore != nil && !criteria.CreatedAfter.Before(*criteria.CreatedBefore) {
		p.unsatisfiable = true
	}
	if criteria.ListingIDs != nil && len(criteria.ListingIDs) == 0 {
		p.unsatisfiable = true
	}

	return p
}

func isEmptyIntRange(lo, hi *int) bool {
	return lo != nil && hi != nil && *lo > *hi
}

// IsUnsatisfiable - предикат заведомо пуст, к хранилищу можно не обращаться.
func (p ListingPredicate) IsUnsatisfiable() bool {
	return p.unsatisfiable
}

// Matches вычисляет предикат для одного объявления.
func (p ListingPredicate) Matches(l Listing) bool {
	if p.unsatisfiable || l.IsDeleted() {
		return false
	}
	if p.RequireActive && l.Status != ListingStatusActive {
		return false
	}
	if p.OwnerID != nil && l.OwnerID != *p.OwnerID {
		return false
	}

	c := p.Criteria
	if c.CategoryID != nil && l.CategoryID != *c.CategoryID {
		return false
	}
	if c.City != nil && !containsFold(l.City, *c.City) {
		return false
	}
	if c.MinPrice != nil && l.MonthlyRent < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && l.MonthlyRent > *c.MaxPrice {
		return false
	}
	if !inIntRange(l.SurfaceArea, c.MinSurface, c.MaxSurface) || !inIntRange(l.Rooms, c.MinRooms, c.MaxRooms) {
		return false
	}
	if c.Furnishing != nil && l.Furnishing != *c.Furnishing {
		return false
	}

	features := []struct {
		want *bool
		has  bool
	}{
		{c.Terrace, l.Terrace},
		{c.Garden, l.Garden},
		{c.Pool, l.Pool},
		{c.PetsAllowed, l.PetsAllowed},
		{c.Elevator, l.Elevator},
		{c.RampAccess, l.RampAccess},
		{c.ExpensesIncluded, l.ExpensesIncluded},
		{c.AcceptsAlternativeGuarantee, l.AcceptsAlternativeGuarantee},
	}
	for _, f := range features {
		if f.want != nil && *f.want && !f.has {
			return false
		}
	}

	if c.TextSearch != nil {
		q := *c.TextSearch
		if !containsFold(l.Title, q) && !containsFold(l.Description, q) && !containsFold(l.City, q) {
			return false
		}
	}
	if c.CreatedAfter != nil && l.CreatedAt.Before(*c.CreatedAfter) {
		return false
	}
	if c.CreatedBefore != nil && !l.CreatedAt.Before(*c.CreatedBefore) {
		return false
	}
	if c.ListingIDs != nil && !slices.Contains(c.ListingIDs, l.ID) {
		return false
	}

	return true
}

// inIntRange: если задана хотя бы одна граница, пустое значение не подходит.
func inIntRange(value, lo, hi *int) bool {
	if lo == nil && hi == nil {
		return true
	}
	if value == nil {
		return false
	}
	if lo != nil && *value < *lo {
		return false
	}
	if hi != nil && *value > *hi {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	folder := cases.Fold()
	return strings.Contains(folder.String(s), folder.String(substr))
}

// SearchRequest - один вызов поиска: фильтры, сортировка, страница, пользователь и область.
type SearchRequest struct {
	Criteria         SearchCriteria
	Sort             SortSpec
	Page             PageSpec
	RequestingUserID *uuid.UUID
	Scope            SearchScope
}
