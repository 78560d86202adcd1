package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"

	"kitchengram.app/KitchenGram/pkg/model"
	"kitchengram.app/KitchenGram/pkg/repository"
)

type IngredientTestSuite struct {
	RepositorySuite
}

func TestIngredientTestSuite(t *testing.T) {
	suite.Run(t, new(IngredientTestSuite))
}

func (suite *IngredientTestSuite) TearDownTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func (suite *IngredientTestSuite) TestCreateIngredient_AddsIngredient() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "ingredients" ("created_at","updated_at","deleted_at","name","measurement_unit") VALUES ($1,$2,$3,$4,$5)`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), nil, "Salt", "g").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("1"))
	suite.mock.ExpectCommit()

	ingredient, err := suite.repository.CreateIngredient(context.Background(), model.Ingredient{Name: "Salt", MeasurementUnit: "g"})

	suite.Require().NoError(err)
	suite.Equal(uint(1), ingredient.ID)
}

func (suite *IngredientTestSuite) TestListIngredients_PrefixFilterIsCaseInsensitive() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ingredients" WHERE name ILIKE $1 AND "ingredients"."deleted_at" IS NULL ORDER BY name`)).
		WithArgs("sa%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "measurement_unit"}).
			AddRow(1, "Salt", "g").
			AddRow(2, "Saffron", "g"))

	ingredients, err := suite.repository.ListIngredients(context.Background(), "sa")

	suite.Require().NoError(err)
	suite.Len(ingredients, 2)
}

func (suite *IngredientTestSuite) TestListIngredients_EmptyPrefixListsEverything() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ingredients" WHERE "ingredients"."deleted_at" IS NULL ORDER BY name`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "measurement_unit"}).AddRow(1, "Salt", "g"))

	ingredients, err := suite.repository.ListIngredients(context.Background(), "")

	suite.Require().NoError(err)
	suite.Len(ingredients, 1)
}

func (suite *IngredientTestSuite) TestGetIngredientsByIDs_MissingIDReturnsNotFound() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ingredients" WHERE id IN ($1,$2) AND "ingredients"."deleted_at" IS NULL`)).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "measurement_unit"}).AddRow(1, "Salt", "g"))

	ingredients, err := suite.repository.GetIngredientsByIDs(context.Background(), []uint{1, 2})

	suite.Nil(ingredients)
	suite.Require().ErrorIs(err, repository.ErrIngredientNotFound)
	suite.ErrorContains(err, "id 2")
}

func (suite *IngredientTestSuite) TestBulkAddIngredients_SkipsExistingPairs() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "ingredients" ("created_at","updated_at","deleted_at","name","measurement_unit") VALUES ($1,$2,$3,$4,$5),($6,$7,$8,$9,$10) ON CONFLICT DO NOTHING`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), nil, "Salt", "g", sqlmock.AnyArg(), sqlmock.AnyArg(), nil, "Milk", "ml").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("1"))
	suite.mock.ExpectCommit()

	inserted, err := suite.repository.BulkAddIngredients(context.Background(), []model.Ingredient{
		{Name: "Salt", MeasurementUnit: "g"},
		{Name: "Milk", MeasurementUnit: "ml"},
	})

	suite.Require().NoError(err)
	suite.Equal(int64(1), inserted)
}

func (suite *IngredientTestSuite) TestBulkAddIngredients_EmptyInputIsANoOp() {
	inserted, err := suite.repository.BulkAddIngredients(context.Background(), nil)

	suite.Require().NoError(err)
	suite.Zero(inserted)
}
