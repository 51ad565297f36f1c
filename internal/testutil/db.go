// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"pokedex/pkg/database"
	"pokedex/pkg/models"
)

// NewDB opens a migrated sqlite database in a temp dir, closed on cleanup.
func NewDB(t testing.TB) *sql.DB {
	t.Helper()

	cfg := database.Config{Path: filepath.Join(t.TempDir(), "pokedex_test.db"), BusyTimeoutMs: 5000}
	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return db
}

// Record builds a minimal normalized record with the given categories
// (slots assigned 1..n) and a front_default sprite URL.
func Record(id int, name string, categories ...string) models.CatalogRecord {
	cats := make([]models.Category, 0, len(categories))
	for i, c := range categories {
		cats = append(cats, models.Category{Category: c, Slot: i + 1})
	}
	assets := models.NewAssets()
	front := "https://img.example/" + name + ".png"
	assets[models.FrontDefault] = &front

	return models.CatalogRecord{
		ID:               id,
		Name:             name,
		Categories:       cats,
		Assets:           assets,
		Attributes:       []models.Attribute{},
		Traits:           []models.Trait{},
		LearnableActions: []models.LearnableAction{},
	}
}

// Str returns a pointer to s.
func Str(s string) *string { return &s }

// Int returns a pointer to n.
func Int(n int) *int { return &n }
