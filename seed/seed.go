package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"webshop-backend/models"
	"webshop-backend/store"
)

// Seeder bulk-loads the product catalog from a static JSON file.
type Seeder struct {
	Products store.ProductStore
	File     string
	Logger   logrus.FieldLogger
}

// NewSeeder creates a Seeder reading from the given file.
func NewSeeder(products store.ProductStore, file string, logger logrus.FieldLogger) *Seeder {
	return &Seeder{
		Products: products,
		File:     file,
		Logger:   logger,
	}
}

// Seed replaces the catalog with the file contents: delete everything, then
// bulk-insert the parsed list. Running it twice converges to the file, it
// never doubles the catalog. Returns the number of products inserted.
func (s *Seeder) Seed(ctx context.Context) (int, error) {
	data, err := os.ReadFile(s.File)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return 0, fmt.Errorf("parse seed file: %w", err)
	}

	if err := s.Products.DeleteAll(ctx); err != nil {
		return 0, fmt.Errorf("clear products: %w", err)
	}
	if err := s.Products.InsertMany(ctx, products); err != nil {
		return 0, fmt.Errorf("insert products: %w", err)
	}

	s.Logger.WithField("count", len(products)).Info("database seeded")
	return len(products), nil
}
