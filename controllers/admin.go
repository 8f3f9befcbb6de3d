package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"webshop-backend/seed"
)

// AdminController handles maintenance operations. Routes are gated by the
// admin middleware.
type AdminController struct {
	Seeder *seed.Seeder
	Logger logrus.FieldLogger
}

// NewAdminController creates a new AdminController.
func NewAdminController(seeder *seed.Seeder, logger logrus.FieldLogger) *AdminController {
	return &AdminController{
		Seeder: seeder,
		Logger: logger,
	}
}

// SeedDatabase replaces the catalog with the contents of the seed file.
// Full replace: interleaved reads may observe an empty catalog mid-run, so
// this is meant to be called away from live traffic.
func (ac *AdminController) SeedDatabase(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	count, err := ac.Seeder.Seed(ctx)
	if err != nil {
		internalError(w, ac.Logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Database seeded successfully",
		"count":   count,
	})
}
