package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	pkgerrors "pokedex/pkg/errors"
	"pokedex/pkg/logging"
	"pokedex/pkg/models"
)

const seedLogEvery = 10

// Seeder replaces the whole catalog with the records of a seed file.
type Seeder struct {
	Store Store
	Fs    afero.Fs
	log   zerolog.Logger
}

func NewSeeder(store Store, fs afero.Fs) *Seeder {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Seeder{Store: store, Fs: fs, log: logging.Component("seed")}
}

// LoadFile decodes a JSON array of upstream records, or YAML when the
// extension is .yaml or .yml.
func LoadFile(fs afero.Fs, path string) ([]models.UpstreamRecord, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if data, err = yaml.YAMLToJSON(data); err != nil {
			return nil, pkgerrors.NewValidationError("file", path, fmt.Sprintf("invalid yaml: %v", err))
		}
	}

	var raws []models.UpstreamRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, pkgerrors.NewValidationError("file", path, fmt.Sprintf("invalid seed data: %v", err))
	}
	return raws, nil
}

// SeedFile clears roster memberships and the catalog, then inserts every
// record of the file. A failure part-way leaves a partial catalog.
func (s *Seeder) SeedFile(ctx context.Context, path string) (int, error) {
	raws, err := LoadFile(s.Fs, path)
	if err != nil {
		return 0, err
	}
	return s.Seed(ctx, raws)
}

func (s *Seeder) Seed(ctx context.Context, raws []models.UpstreamRecord) (int, error) {
	recs := make([]models.CatalogRecord, 0, len(raws))
	for _, raw := range raws {
		recs = append(recs, Normalize(raw))
	}

	s.log.Info().Int("count", len(recs)).Msg("reseeding catalog")
	n, err := s.Store.Reseed(ctx, recs, func(done, total int) {
		if done%seedLogEvery == 0 || done == total {
			s.log.Info().Msgf("created %d/%d records", done, total)
		}
	})
	if err != nil {
		return n, fmt.Errorf("seed after %d records: %w", n, err)
	}
	return n, nil
}
