package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pokedex/pkg/logging"
)

type Handler struct {
	Keys   *KeyVerifier
	Tokens TokenService
}

func NewHandler(keys *KeyVerifier, tokens TokenService) *Handler {
	return &Handler{Keys: keys, Tokens: tokens}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/token", h.token)
	rg.GET("/me", AuthMiddleware(h.Tokens), h.me)
}

type tokenReq struct {
	Key string `json:"key"`
}

func (h *Handler) token(c *gin.Context) {
	var req tokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if err := h.Keys.Verify(req.Key); err != nil {
		logging.FromContext(c.Request.Context()).Warn().Str("client_ip", c.ClientIP()).Msg("operator key rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, exp, err := h.Tokens.Sign(OperatorSubject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": exp.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) me(c *gin.Context) {
	claims := MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"subject":    claims.Subject,
		"role":       claims.Role,
		"expires_at": claims.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
