package domain

import "math"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageSpec - единое внутреннее представление пагинации: смещение и размер страницы.
type PageSpec struct {
	Skip int
	Take int
}

func DefaultPageSpec() PageSpec {
	return PageSpec{Skip: 0, Take: DefaultPageSize}
}

// NewPageSpec проверяет skip/take. take больше maxTake обрезается до maxTake.
func NewPageSpec(skip, take, maxTake int) (PageSpec, error) {
	if skip < 0 {
		return PageSpec{}, NewValidationError("skip", "must not be negative")
	}
	if take <= 0 {
		return PageSpec{}, NewValidationError("take", "must be positive")
	}
	if maxTake <= 0 {
		maxTake = MaxPageSize
	}
	if take > maxTake {
		take = maxTake
	}
	return PageSpec{Skip: skip, Take: take}, nil
}

// PageFromNumber переводит 1-based номер страницы в skip/take.
func PageFromNumber(page, perPage, maxTake int) (PageSpec, error) {
	if page < 1 {
		return PageSpec{}, NewValidationError("page", "must be 1 or greater")
	}
	if perPage <= 0 {
		return PageSpec{}, NewValidationError("perPage", "must be positive")
	}
	spec, err := NewPageSpec(0, perPage, maxTake)
	if err != nil {
		return PageSpec{}, err
	}
	if page-1 > math.MaxInt/spec.Take {
		return PageSpec{}, NewValidationError("page", "is too large")
	}
	spec.Skip = (page - 1) * spec.Take
	return spec, nil
}

// PageNumber - номер страницы (с 1), на которую попадает Skip.
func (p PageSpec) PageNumber() int {
	if p.Take <= 0 {
		return 1
	}
	return p.Skip/p.Take + 1
}

// SortKey - допустимые ключи сортировки.
type SortKey string

const (
	SortByCreatedAt   SortKey = "createdAt"
	SortByMonthlyRent SortKey = "monthlyRent"
	SortByCity        SortKey = "city"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortSpec - ключ и направление. При равенстве ключа порядок добивается по id ASC.
type SortSpec struct {
	Key       SortKey
	Direction SortDirection
}

func DefaultSortSpec() SortSpec {
	return SortSpec{Key: SortByCreatedAt, Direction: SortDesc}
}

// ParseSortSpec разбирает ключ и направление, пустые значения заменяются значениями по умолчанию.
func ParseSortSpec(key, direction string) (SortSpec, error) {
	spec := DefaultSortSpec()

	switch SortKey(key) {
	case "":
	case SortByCreatedAt, SortByMonthlyRent, SortByCity:
		spec.Key = SortKey(key)
	default:
		return SortSpec{}, NewValidationError("sortBy", "must be one of createdAt, monthlyRent, city")
	}

	switch SortDirection(direction) {
	case "":
	case SortAsc, SortDesc:
		spec.Direction = SortDirection(direction)
	default:
		return SortSpec{}, NewValidationError("sortDir", "must be asc or desc")
	}

	return spec, nil
}

// PageEnvelope - страница результатов и метаданные пагинации.
type PageEnvelope[T any] struct {
	Items           []T
	TotalCount      int64
	Page            int
	PageSize        int
	TotalPages      int
	HasNextPage     bool
	HasPreviousPage bool
}

// NewPageEnvelope считает метаданные по общему количеству и запрошенной странице.
// Флаги соседних страниц считаются от Skip, поэтому верны и для skip, не кратного take.
func NewPageEnvelope[T any](items []T, totalCount int64, spec PageSpec) PageEnvelope[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := 0
	if spec.Take > 0 && totalCount > 0 {
		totalPages = int(math.Ceil(float64(totalCount) / float64(spec.Take)))
	}
	page := spec.PageNumber()

	return PageEnvelope[T]{
		Items:           items,
		TotalCount:      totalCount,
		Page:            page,
		PageSize:        spec.Take,
		TotalPages:      totalPages,
		HasNextPage:     int64(spec.Skip) < totalCount-int64(spec.Take),
		HasPreviousPage: spec.Skip > 0 && totalCount > 0,
	}
}
