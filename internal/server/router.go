// Package server assembles the HTTP API from the feature handlers.
package server

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pokedex/internal/auth"
	"pokedex/internal/catalog"
	"pokedex/internal/feed"
	"pokedex/internal/roster"
	"pokedex/pkg/logging"
)

type RouterConfig struct {
	DB         *sql.DB
	Catalog    *catalog.Service
	Rosters    *roster.Service
	Hub        *feed.Hub
	Tokens     auth.TokenService
	Keys       *auth.KeyVerifier
	CORSOrigin string

	// AssetsDir is served under AssetsPrefix when both are set.
	AssetsDir    string
	AssetsPrefix string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logging.GinMiddleware())
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.Use(cors.New(corsConfig(cfg.CORSOrigin)))

	if cfg.AssetsDir != "" && cfg.AssetsPrefix != "" {
		router.Static(cfg.AssetsPrefix, cfg.AssetsDir)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ready", readyHandler(cfg.DB, cfg.Hub))
	router.GET("/ws", feed.WSHandler(cfg.Hub, cfg.CORSOrigin))

	api := router.Group("/api/v1")
	catalog.NewHandler(cfg.Catalog).RegisterRoutes(api)
	roster.NewHandler(cfg.Rosters, auth.AuthMiddleware(cfg.Tokens)).RegisterRoutes(api)
	auth.NewHandler(cfg.Keys, cfg.Tokens).RegisterRoutes(api.Group("/auth"))

	return router
}

func corsConfig(origin string) cors.Config {
	cc := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:       12 * time.Hour,
	}
	if origin == "" || origin == "*" {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = []string{origin}
		cc.AllowCredentials = true
	}
	return cc
}

func readyHandler(db *sql.DB, hub *feed.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"db_error":    err.Error(),
				"tcp_clients": stats.TCPClients,
				"ws_clients":  stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"db":          "ok",
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	}
}
