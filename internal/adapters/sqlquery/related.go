package sqlquery

import (
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

func (b *Builder) SelectCategoriesByIDs(ids []uuid.UUID) (string, []interface{}, error) {
	return b.dialect.
		From(tableCategories).
		Select(colID, colNameLocal, colNameEn).
		Where(goqu.C(colID).In(uuidStrings(ids))).
		Prepared(true).ToSQL()
}

func (b *Builder) SelectAllCategories() (string, []interface{}, error) {
	return b.dialect.
		From(tableCategories).
		Select(colID, colNameLocal, colNameEn).
		Order(goqu.I(colNameEn).Asc(), goqu.I(colID).Asc()).
		Prepared(true).ToSQL()
}

func (b *Builder) SelectOwnersByIDs(ids []uuid.UUID) (string, []interface{}, error) {
	return b.dialect.
		From(tableOwners).
		Select(colID, colDisplayName, colCompanyName, colIsVerified).
		Where(goqu.C(colID).In(uuidStrings(ids))).
		Prepared(true).ToSQL()
}

// SelectImagesByListingIDs - изображения всех объявлений страницы одним запросом.
func (b *Builder) SelectImagesByListingIDs(listingIDs []uuid.UUID) (string, []interface{}, error) {
	return b.dialect.
		From(tableImages).
		Select(colID, colListingID, colURL, colIsPrimary, colOrderIndex).
		Where(goqu.C(colListingID).In(uuidStrings(listingIDs))).
		Order(goqu.I(colListingID).Asc(), goqu.I(colOrderIndex).Asc(), goqu.I(colID).Asc()).
		Prepared(true).ToSQL()
}

// InsertFavorite не падает на повторной вставке: ON CONFLICT DO NOTHING в postgres, INSERT IGNORE в mysql.
func (b *Builder) InsertFavorite(userID, listingID uuid.UUID, createdAt time.Time) (string, []interface{}, error) {
	return b.dialect.
		Insert(tableFavorites).
		Cols(colUserID, colListingID, colCreatedAt).
		Vals(goqu.Vals{userID.String(), listingID.String(), createdAt.UTC()}).
		OnConflict(goqu.DoNothing()).
		Prepared(true).ToSQL()
}

func (b *Builder) DeleteFavorite(userID, listingID uuid.UUID) (string, []interface{}, error) {
	return b.dialect.
		Delete(tableFavorites).
		Where(
			goqu.C(colUserID).Eq(userID.String()),
			goqu.C(colListingID).Eq(listingID.String()),
		).
		Prepared(true).ToSQL()
}

// SelectFavoriteListingIDs - какие из listingIDs пользователь добавил в избранное.
func (b *Builder) SelectFavoriteListingIDs(userID uuid.UUID, listingIDs []uuid.UUID) (string, []interface{}, error) {
	return b.dialect.
		From(tableFavorites).
		Select(colListingID).
		Where(
			goqu.C(colUserID).Eq(userID.String()),
			goqu.C(colListingID).In(uuidStrings(listingIDs)),
		).
		Prepared(true).ToSQL()
}

// SelectFavoritesByUser - новые первыми.
func (b *Builder) SelectFavoritesByUser(userID uuid.UUID) (string, []interface{}, error) {
	return b.dialect.
		From(tableFavorites).
		Select(colListingID).
		Where(goqu.C(colUserID).Eq(userID.String())).
		Order(goqu.I(colCreatedAt).Desc(), goqu.I(colListingID).Asc()).
		Prepared(true).ToSQL()
}
