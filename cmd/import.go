package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"kitchengram.app/KitchenGram/configs"
	"kitchengram.app/KitchenGram/pkg/model"
	"kitchengram.app/KitchenGram/pkg/repository"
)

// ImportCmd loads the ingredient fixture, one "name,measurement_unit" row per
// line with a header row. Rows already present are skipped by the unique index.
type ImportCmd struct {
	ConfigFile string `default:".KitchenGram.toml"    help:"Path to config file" short:"c"`
	File       string `default:"data/ingredients.csv" help:"Path to the CSV file" short:"f"`
}

const importColumns = 2

func (i *ImportCmd) Run(_ *Context) error {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.DisableStacktrace = true

	logger, _ := logConfig.Build()
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	conf, err := configs.GetConfig(i.ConfigFile, logger)
	if err != nil {
		logger.Error("error loading config", zap.Error(err))

		return err
	}

	repo, err := repository.Open(conf, logger)
	if err != nil {
		logger.Error("error connecting to database", zap.Error(err))

		return err
	}
	defer repo.Close()

	file, err := os.Open(i.File)
	if err != nil {
		return err
	}
	defer file.Close() //nolint:errcheck // read-only file

	ingredients, err := readIngredients(file)
	if err != nil {
		return err
	}

	count, err := repo.BulkAddIngredients(context.Background(), ingredients)
	if err != nil {
		return err
	}

	logger.Info("ingredients imported", zap.Int64("count", count), zap.Int("rows", len(ingredients)))

	return nil
}

func readIngredients(reader io.Reader) ([]model.Ingredient, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = importColumns

	if _, err := csvReader.Read(); err != nil { // header
		return nil, err
	}

	var (
		ingredients []model.Ingredient
		errs        error
	)

	for line := 2; ; line++ {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w", line, err))

			continue
		}

		ingredients = append(ingredients, model.Ingredient{Name: record[0], MeasurementUnit: record[1]})
	}

	return ingredients, errs
}
