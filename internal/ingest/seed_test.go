package ingest

import (
	"context"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokedex/internal/catalog"
	"pokedex/internal/testutil"
	pkgerrors "pokedex/pkg/errors"
)

func TestSeedFileYAML(t *testing.T) {
	ctx := context.Background()
	repo := catalog.NewRepo(testutil.NewDB(t))

	n, err := NewSeeder(repo, afero.NewOsFs()).SeedFile(ctx, "testdata/seed.yaml")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := catalog.NewService(repo).Search(ctx, "poison", nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, "https://img.example/1.png", *got[0].Sprites.FrontDefault)
}

func TestSeedFileReplacesCatalog(t *testing.T) {
	ctx := context.Background()
	repo := catalog.NewRepo(testutil.NewDB(t))
	_, err := repo.Upsert(ctx, testutil.Record(150, "mewtwo", "psychic"))
	require.NoError(t, err)

	body, err := os.ReadFile("testdata/pikachu.json")
	require.NoError(t, err)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/seed/pokemons.json", append(append([]byte("["), body...), ']'), 0o644))

	n, err := NewSeeder(repo, fs).SeedFile(ctx, "/seed/pokemons.json")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	old, err := repo.GetByID(ctx, 150)
	require.NoError(t, err)
	assert.Nil(t, old)
}

func TestSeedFileInvalid(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bad.json", []byte(`{"id": 1}`), 0o644))

	_, err := NewSeeder(nil, fs).SeedFile(context.Background(), "bad.json")
	assert.True(t, pkgerrors.IsInvalidArgument(err))

	_, err = NewSeeder(nil, fs).SeedFile(context.Background(), "missing.json")
	assert.Error(t, err)
}
