package catalog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	pkgerrors "pokedex/pkg/errors"
	"pokedex/pkg/utils"
)

type Handler struct {
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/pokemons", h.list)        // GET /pokemons?sort=&limit=&offset=
	rg.GET("/pokemons/:id", h.getByID) // GET /pokemons/:id
	rg.GET("/search", h.search)        // GET /search?query=&limit=
}

func (h *Handler) list(c *gin.Context) {
	limit, err := utils.ParseOptionalInt("limit", c.Query("limit"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	offset, err := utils.ParseOptionalInt("offset", c.Query("offset"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	items, err := h.Service.List(c.Request.Context(), ListParams{
		Sort:   c.Query("sort"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) getByID(c *gin.Context) {
	id, err := strconv.Atoi(strings.TrimSpace(c.Param("id")))
	if err != nil {
		utils.RespondError(c, pkgerrors.NewValidationError("id", c.Param("id"), "must be an integer"))
		return
	}

	rec, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler) search(c *gin.Context) {
	limit, err := utils.ParseOptionalInt("limit", c.Query("limit"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	items, err := h.Service.Search(c.Request.Context(), c.Query("query"), limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
