package ingest

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	pkgerrors "pokedex/pkg/errors"
	"pokedex/pkg/logging"
	"pokedex/pkg/models"
)

// Store is the catalog write side used by imports and seeds.
type Store interface {
	Upsert(ctx context.Context, rec models.CatalogRecord) (bool, error)
	Reseed(ctx context.Context, recs []models.CatalogRecord, progress func(done, total int)) (int, error)
}

// AssetResolver rewrites asset references, typically to local copies.
type AssetResolver interface {
	Resolve(ctx context.Context, id int, assets models.Assets) models.Assets
}

// Result is the outcome of one import.
type Result struct {
	Record  models.CatalogRecord
	Created bool
}

type Importer struct {
	Fetcher  Fetcher
	Store    Store
	Resolver AssetResolver // optional
	log      zerolog.Logger
}

func NewImporter(fetcher Fetcher, store Store, resolver AssetResolver) *Importer {
	return &Importer{
		Fetcher:  fetcher,
		Store:    store,
		Resolver: resolver,
		log:      logging.Component("ingest"),
	}
}

// Import fetches one upstream record, normalizes it, optionally resolves
// its assets and upserts it.
func (i *Importer) Import(ctx context.Context, idOrName string) (*Result, error) {
	key := strings.ToLower(strings.TrimSpace(idOrName))
	if key == "" {
		return nil, pkgerrors.NewValidationError("idOrName", idOrName, "must not be empty")
	}

	raw, err := i.Fetcher.Fetch(ctx, key)
	if err != nil {
		return nil, err
	}

	rec := Normalize(*raw)
	if i.Resolver != nil {
		rec.Assets = i.Resolver.Resolve(ctx, rec.ID, rec.Assets)
	}

	created, err := i.Store.Upsert(ctx, rec)
	if err != nil {
		return nil, err
	}

	action := "updated"
	if created {
		action = "created"
	}
	i.log.Info().Int("id", rec.ID).Str("name", rec.Name).Str("action", action).Msg("record imported")
	return &Result{Record: rec, Created: created}, nil
}
