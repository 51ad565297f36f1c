// Package mirror serves a seed file through the same routes as the
// upstream catalog API, so imports can run offline.
package mirror

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"

	"pokedex/internal/ingest"
	"pokedex/pkg/models"
)

type Handler struct {
	byID   map[int]models.UpstreamRecord
	byName map[string]models.UpstreamRecord
	order  []int
}

// Load indexes every record of a seed file by id and by lowercase name.
func Load(fs afero.Fs, path string) (*Handler, error) {
	raws, err := ingest.LoadFile(fs, path)
	if err != nil {
		return nil, err
	}
	return New(raws), nil
}

func New(raws []models.UpstreamRecord) *Handler {
	h := &Handler{
		byID:   make(map[int]models.UpstreamRecord, len(raws)),
		byName: make(map[string]models.UpstreamRecord, len(raws)),
	}
	for _, raw := range raws {
		if _, dup := h.byID[raw.ID]; !dup {
			h.order = append(h.order, raw.ID)
		}
		h.byID[raw.ID] = raw
		h.byName[strings.ToLower(raw.Name)] = raw
	}
	return h
}

func (h *Handler) Len() int { return len(h.byID) }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/pokemon", h.list)
	rg.GET("/pokemon/:key", h.get)
}

func (h *Handler) get(c *gin.Context) {
	key := strings.ToLower(strings.TrimSpace(c.Param("key")))

	var (
		raw models.UpstreamRecord
		ok  bool
	)
	if id, err := strconv.Atoi(key); err == nil {
		raw, ok = h.byID[id]
	} else {
		raw, ok = h.byName[key]
	}
	if !ok {
		c.String(http.StatusNotFound, "Not Found")
		return
	}
	c.JSON(http.StatusOK, raw)
}

type namedResult struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// list mimics the upstream index: {count, results:[{name,url}]}.
func (h *Handler) list(c *gin.Context) {
	base := c.Request.URL.Path
	results := make([]namedResult, 0, len(h.order))
	for _, id := range h.order {
		results = append(results, namedResult{
			Name: h.byID[id].Name,
			URL:  strings.TrimRight(base, "/") + "/" + strconv.Itoa(id) + "/",
		})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}
