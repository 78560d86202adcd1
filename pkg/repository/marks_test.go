package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"kitchengram.app/KitchenGram/pkg/model"
	"kitchengram.app/KitchenGram/pkg/repository"
)

type MarksTestSuite struct {
	RepositorySuite
}

func TestMarksTestSuite(t *testing.T) {
	suite.Run(t, new(MarksTestSuite))
}

func (suite *MarksTestSuite) TearDownTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func (suite *MarksTestSuite) TestAddMark_CreatesFavoriteEdge() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "favorites" ("user_id","recipe_id") VALUES ($1,$2)`)).
		WithArgs(7, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("1"))
	suite.mock.ExpectCommit()

	suite.NoError(suite.repository.AddMark(context.Background(), model.KindFavorite, 7, 10))
}

func (suite *MarksTestSuite) TestAddMark_ShoppingCartKindPicksCartTable() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "shopping_carts" ("user_id","recipe_id") VALUES ($1,$2)`)).
		WithArgs(7, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("1"))
	suite.mock.ExpectCommit()

	suite.NoError(suite.repository.AddMark(context.Background(), model.KindShoppingCart, 7, 10))
}

func (suite *MarksTestSuite) TestAddMark_DuplicateReturnsAlreadyMarked() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "favorites"`)).
		WithArgs(7, 10).
		WillReturnError(gorm.ErrDuplicatedKey)
	suite.mock.ExpectRollback()

	err := suite.repository.AddMark(context.Background(), model.KindFavorite, 7, 10)

	suite.ErrorIs(err, repository.ErrAlreadyMarked)
}

func (suite *MarksTestSuite) TestAddMark_UnknownKindFailsBeforeAnyQuery() {
	err := suite.repository.AddMark(context.Background(), model.MarkKind("bookmark"), 7, 10)

	suite.ErrorIs(err, repository.ErrUnknownKind)
}

func (suite *MarksTestSuite) TestRemoveMark_DeletesEdge() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "shopping_carts" WHERE user_id = $1 AND recipe_id = $2`)).
		WithArgs(7, 10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	suite.NoError(suite.repository.RemoveMark(context.Background(), model.KindShoppingCart, 7, 10))
}

func (suite *MarksTestSuite) TestRemoveMark_AbsentEdgeReturnsNotFound() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "favorites" WHERE user_id = $1 AND recipe_id = $2`)).
		WithArgs(7, 10).
		WillReturnResult(sqlmock.NewResult(0, 0))
	suite.mock.ExpectCommit()

	err := suite.repository.RemoveMark(context.Background(), model.KindFavorite, 7, 10)

	suite.ErrorIs(err, repository.ErrMarkNotFound)
}

func (suite *MarksTestSuite) TestHasMark_CountsEdge() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "favorites" WHERE user_id = $1 AND recipe_id = $2`)).
		WithArgs(7, 10).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	marked, err := suite.repository.HasMark(context.Background(), model.KindFavorite, 7, 10)

	suite.Require().NoError(err)
	suite.True(marked)
}

func (suite *MarksTestSuite) TestShoppingList_AggregatesByNameAndUnit() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT i.name as name, i.measurement_unit as measurement_unit, sum(iir.amount) as total ` +
		`FROM ingredient_in_recipes as iir ` +
		`INNER JOIN ingredients i on i.id = iir.ingredient_id ` +
		`INNER JOIN shopping_carts sc on sc.recipe_id = iir.recipe_id ` +
		`WHERE sc.user_id = $1 GROUP BY i.name, i.measurement_unit`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"name", "measurement_unit", "total"}).
			AddRow("Salt", "g", 25).
			AddRow("Milk", "ml", 400))

	items, err := suite.repository.ShoppingList(context.Background(), 7)

	suite.Require().NoError(err)
	suite.Require().Len(items, 2)
	suite.Equal(model.ShoppingListItem{Name: "Salt", MeasurementUnit: "g", Total: 25}, items[0])
	suite.Equal(model.ShoppingListItem{Name: "Milk", MeasurementUnit: "ml", Total: 400}, items[1])
}

func (suite *MarksTestSuite) TestShoppingList_EmptyCartYieldsNoItems() {
	suite.mock.ExpectQuery(`SELECT i\.name as name, (.+) FROM ingredient_in_recipes as iir`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"name", "measurement_unit", "total"}))

	items, err := suite.repository.ShoppingList(context.Background(), 7)

	suite.Require().NoError(err)
	suite.Empty(items)
}
