// Package sqlquery строит SQL для хранилищ объявлений на goqu.
// Один и тот же предикат транслируется в диалекты postgres и mysql.
package sqlquery

import (
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"    // регистрация диалекта
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // регистрация диалекта
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

const (
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
)

const (
	tableListings   = "listings"
	tableCategories = "categories"
	tableOwners     = "user_profiles"
	tableImages     = "listing_images"
	tableFavorites  = "user_favorites"

	colID                          = "id"
	colOwnerID                     = "owner_id"
	colCategoryID                  = "category_id"
	colTitle                       = "title"
	colDescription                 = "description"
	colMonthlyRent                 = "monthly_rent"
	colSurfaceArea                 = "surface_area"
	colRooms                       = "rooms"
	colCity                        = "city"
	colFurnishing                  = "furnishing_status"
	colTerrace                     = "terrace"
	colGarden                      = "garden"
	colPool                        = "pool"
	colPetsAllowed                 = "pets_allowed"
	colElevator                    = "elevator"
	colRampAccess                  = "ramp_access"
	colExpensesIncluded            = "expenses_included"
	colAcceptsAlternativeGuarantee = "accepts_alternative_guarantee"
	colAvailableFrom               = "available_from"
	colStatus                      = "status"
	colCreatedAt                   = "created_at"
	colUpdatedAt                   = "updated_at"
	colDeletedAt                   = "deleted_at"

	colNameLocal   = "name_local"
	colNameEn      = "name_en"
	colDisplayName = "display_name"
	colCompanyName = "company_name"
	colIsVerified  = "is_verified"
	colListingID   = "listing_id"
	colURL         = "url"
	colIsPrimary   = "is_primary"
	colOrderIndex  = "order_index"
	colUserID      = "user_id"

	aliasTotal = "total"
)

var listingColumns = []interface{}{
	colID, colOwnerID, colCategoryID, colTitle, colDescription,
	colMonthlyRent, colSurfaceArea, colRooms, colCity, colFurnishing,
	colTerrace, colGarden, colPool, colPetsAllowed, colElevator, colRampAccess,
	colExpensesIncluded, colAcceptsAlternativeGuarantee,
	colAvailableFrom, colStatus, colCreatedAt, colUpdatedAt, colDeletedAt,
}

// Builder - построитель запросов для одного диалекта. Все запросы подготовленные (плейсхолдеры вместо литералов).
type Builder struct {
	dialect goqu.DialectWrapper
	name    string
}

func NewBuilder(dialect string) (*Builder, error) {
	switch dialect {
	case DialectPostgres, DialectMySQL:
	default:
		return nil, fmt.Errorf("unsupported sql dialect %q", dialect)
	}
	return &Builder{dialect: goqu.Dialect(dialect), name: dialect}, nil
}

func (b *Builder) Dialect() string {
	return b.name
}

// CountListings - общее число объявлений, удовлетворяющих предикату.
func (b *Builder) CountListings(predicate domain.ListingPredicate) (string, []interface{}, error) {
	ds := b.dialect.
		From(tableListings).
		Select(goqu.COUNT(goqu.Star()).As(aliasTotal)).
		Where(b.whereListings(predicate)...)

	return ds.Prepared(true).ToSQL()
}

// SelectListingsPage - одна страница в порядке sort, добитом по id ASC.
func (b *Builder) SelectListingsPage(predicate domain.ListingPredicate, sort domain.SortSpec, page domain.PageSpec) (string, []interface{}, error) {
	if page.Skip < 0 || page.Take <= 0 {
		return "", nil, fmt.Errorf("invalid page spec skip=%d take=%d", page.Skip, page.Take)
	}

	ds := b.dialect.
		From(tableListings).
		Select(listingColumns...).
		Where(b.whereListings(predicate)...).
		Order(orderBy(sort)...).
		Offset(uint(page.Skip)).
		Limit(uint(page.Take))

	return ds.Prepared(true).ToSQL()
}

// SelectListingByID - запись без учета статуса и удаления.
func (b *Builder) SelectListingByID(id uuid.UUID) (string, []interface{}, error) {
	ds := b.dialect.
		From(tableListings).
		Select(listingColumns...).
		Where(goqu.C(colID).Eq(id.String()))

	return ds.Prepared(true).ToSQL()
}

// whereListings транслирует предикат в список условий, соединяемых через AND.
func (b *Builder) whereListings(p domain.ListingPredicate) []exp.Expression {
	conds := []exp.Expression{goqu.C(colDeletedAt).IsNull()}

	if p.IsUnsatisfiable() {
		return append(conds, goqu.L("1 = 0"))
	}
	if p.RequireActive {
		conds = append(conds, goqu.C(colStatus).Eq(string(domain.ListingStatusActive)))
	}
	if p.OwnerID != nil {
		conds = append(conds, goqu.C(colOwnerID).Eq(p.OwnerID.String()))
	}

	c := p.Criteria
	if c.CategoryID != nil {
		conds = append(conds, goqu.C(colCategoryID).Eq(c.CategoryID.String()))
	}
	if c.City != nil {
		conds = append(conds, goqu.C(colCity).ILike(ContainsPattern(*c.City)))
	}
	if c.MinPrice != nil {
		conds = append(conds, goqu.C(colMonthlyRent).Gte(*c.MinPrice))
	}
	if c.MaxPrice != nil {
		conds = append(conds, goqu.C(colMonthlyRent).Lte(*c.MaxPrice))
	}
	// NULL не проходит ни одно сравнение, отдельная проверка не нужна.
	if c.MinSurface != nil {
		conds = append(conds, goqu.C(colSurfaceArea).Gte(*c.MinSurface))
	}
	if c.MaxSurface != nil {
		conds = append(conds, goqu.C(colSurfaceArea).Lte(*c.MaxSurface))
	}
	if c.MinRooms != nil {
		conds = append(conds, goqu.C(colRooms).Gte(*c.MinRooms))
	}
	if c.MaxRooms != nil {
		conds = append(conds, goqu.C(colRooms).Lte(*c.MaxRooms))
	}
	if c.Furnishing != nil {
		conds = append(conds, goqu.C(colFurnishing).Eq(string(*c.Furnishing)))
	}

	features := []struct {
		col  string
		want *bool
	}{
		{colTerrace, c.Terrace},
		{colGarden, c.Garden},
		{colPool, c.Pool},
		{colPetsAllowed, c.PetsAllowed},
		{colElevator, c.Elevator},
		{colRampAccess, c.RampAccess},
		{colExpensesIncluded, c.ExpensesIncluded},
		{colAcceptsAlternativeGuarantee, c.AcceptsAlternativeGuarantee},
	}
	for _, f := range features {
		if f.want != nil && *f.want {
			conds = append(conds, goqu.C(f.col).IsTrue())
		}
	}

	if c.TextSearch != nil {
		pattern := ContainsPattern(*c.TextSearch)
		conds = append(conds, goqu.Or(
			goqu.C(colTitle).ILike(pattern),
			goqu.C(colDescription).ILike(pattern),
			goqu.C(colCity).ILike(pattern),
		))
	}
	if c.CreatedAfter != nil {
		conds = append(conds, goqu.C(colCreatedAt).Gte(c.CreatedAfter.UTC()))
	}
	if c.CreatedBefore != nil {
		conds = append(conds, goqu.C(colCreatedAt).Lt(c.CreatedBefore.UTC()))
	}
	if c.ListingIDs != nil {
		conds = append(conds, goqu.C(colID).In(uuidStrings(c.ListingIDs)))
	}

	return conds
}

func orderBy(sort domain.SortSpec) []exp.OrderedExpression {
	var key exp.Orderable
	switch sort.Key {
	case domain.SortByMonthlyRent:
		key = goqu.I(colMonthlyRent)
	case domain.SortByCity:
		// Регистр не влияет на порядок, как и в хранилище в памяти.
		key = goqu.Func("LOWER", goqu.I(colCity))
	default:
		key = goqu.I(colCreatedAt)
	}

	primary := key.Desc()
	if sort.Direction == domain.SortAsc {
		primary = key.Asc()
	}
	return []exp.OrderedExpression{primary, goqu.I(colID).Asc()}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern экранирует спецсимволы LIKE и оборачивает строку в %...%.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
