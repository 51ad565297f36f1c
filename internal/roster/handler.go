package roster

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	pkgerrors "pokedex/pkg/errors"
	"pokedex/pkg/models"
	"pokedex/pkg/utils"
)

type Handler struct {
	Service *Service
	Guard   gin.HandlerFunc // protects mutating routes; nil leaves them open
}

func NewHandler(svc *Service, guard gin.HandlerFunc) *Handler {
	return &Handler{Service: svc, Guard: guard}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/teams", h.list)
	rg.GET("/teams/:id", h.getByID)

	rg.POST("/teams", h.guarded(h.create)...)
	rg.POST("/teams/:id", h.guarded(h.setMembers)...)
}

func (h *Handler) guarded(next gin.HandlerFunc) []gin.HandlerFunc {
	if h.Guard == nil {
		return []gin.HandlerFunc{next}
	}
	return []gin.HandlerFunc{h.Guard, next}
}

// teamDTO is the wire shape: member ids in position order.
type teamDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Pokemons []int  `json:"pokemons"`
}

func toDTO(ro *models.Roster) teamDTO {
	return teamDTO{ID: ro.ID, Name: ro.Name, Pokemons: ro.MemberIDs()}
}

type createReq struct {
	Name string `json:"name"`
}

type setMembersReq struct {
	Pokemons []int `json:"pokemons"`
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

	rosters, err := h.Service.List(c.Request.Context(), ListParams{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	out := make([]teamDTO, 0, len(rosters))
	for i := range rosters {
		out = append(out, toDTO(&rosters[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ro, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDTO(ro))
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	ro, err := h.Service.Create(c.Request.Context(), req.Name)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDTO(ro))
}

func (h *Handler) setMembers(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req setMembersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Pokemons == nil {
		utils.RespondError(c, pkgerrors.NewValidationError("pokemons", nil, "must be an array"))
		return
	}

	ro, err := h.Service.SetMembers(c.Request.Context(), id, req.Pokemons)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDTO(ro))
}

func parseID(c *gin.Context) (int64, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		utils.RespondError(c, pkgerrors.NewValidationError("id", raw, "must be an integer"))
		return 0, false
	}
	return id, true
}
