package mirror

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokedex/internal/ingest"
	pkgerrors "pokedex/pkg/errors"
)

const seed = `[
  {"id": 1, "name": "bulbasaur", "types": [{"slot": 1, "type": {"name": "grass", "url": ""}}],
   "sprites": {"front_default": "https://img.example/1.png"}},
  {"id": 4, "name": "Charmander", "species": {"name": "charmander", "url": ""}}
]`

func newMirror(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "data/pokemons.json", []byte(seed), 0o644))

	h, err := Load(fs, "data/pokemons.json")
	require.NoError(t, err)
	assert.Equal(t, 2, h.Len())

	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v2"))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestMirrorServesUpstreamShape(t *testing.T) {
	srv := newMirror(t)
	client := ingest.NewClient(srv.URL+"/api/v2", time.Second)
	ctx := context.Background()

	byID, err := client.Fetch(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "bulbasaur", byID.Name)
	assert.Equal(t, "https://img.example/1.png", byID.Sprites["front_default"])

	byName, err := client.Fetch(ctx, "charmander")
	require.NoError(t, err)
	assert.Equal(t, 4, byName.ID)
	require.NotNil(t, byName.Species)

	_, err = client.Fetch(ctx, "mew")
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestMirrorIndex(t *testing.T) {
	srv := newMirror(t)
	resp, err := http.Get(srv.URL + "/api/v2/pokemon")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
