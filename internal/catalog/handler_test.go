package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokedex/pkg/models"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(seededService(t, starters()...)).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandlerList(t *testing.T) {
	r := newRouter(t)

	w := do(r, "/api/v1/pokemons?sort=id-desc&limit=2")
	require.Equal(t, http.StatusOK, w.Code)

	var got []models.CatalogRecordSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []int{100, 26}, ids(got))
	assert.Equal(t, "electric", got[0].Categories[0].Category)

	assert.Equal(t, http.StatusBadRequest, do(r, "/api/v1/pokemons?limit=abc").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, "/api/v1/pokemons?offset=-1").Code)
}

func TestHandlerGetByID(t *testing.T) {
	r := newRouter(t)

	w := do(r, "/api/v1/pokemons/4")
	require.Equal(t, http.StatusOK, w.Code)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, "charmander", rec["name"])
	assert.Len(t, rec["sprites"], len(models.AssetSlots))
	assert.Contains(t, rec, "species")

	w = do(r, "/api/v1/pokemons/999999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "error")

	assert.Equal(t, http.StatusBadRequest, do(r, "/api/v1/pokemons/pika").Code)
}

func TestHandlerSearch(t *testing.T) {
	r := newRouter(t)

	w := do(r, "/api/v1/search?query=Fire")
	require.Equal(t, http.StatusOK, w.Code)
	var got []models.CatalogRecordSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []int{4}, ids(got))

	assert.Equal(t, http.StatusBadRequest, do(r, "/api/v1/search").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, "/api/v1/search?query=a&limit=x").Code)
}
