package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"pokedex/internal/auth"
	"pokedex/internal/catalog"
	"pokedex/internal/feed"
	"pokedex/internal/roster"
	"pokedex/internal/server"
	"pokedex/pkg/database"
	"pokedex/pkg/logging"
	"pokedex/pkg/utils"
)

func main() {
	utils.Load()
	log := logging.Component("api-server")

	cfg := database.DefaultConfig()
	db := database.MustOpen(cfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	srvCfg := utils.LoadServerConfig()
	authCfg := utils.LoadAuthConfig()
	assetCfg := utils.LoadAssetConfig()

	if authCfg.DevSecret {
		log.Warn().Msg("POKEDEX_JWT_SECRET is unset; tokens are signed with the public dev secret")
	}
	tokens := auth.TokenService{
		Secret:   []byte(authCfg.JWTSecret),
		Issuer:   authCfg.JWTIssuer,
		Duration: authCfg.JWTDuration,
	}
	keys, err := auth.NewKeyVerifier(authCfg.OperatorKeyHash, authCfg.OperatorKey)
	if err != nil {
		log.Fatal().Err(err).Msg("operator key config")
	}
	if authCfg.OperatorKeyHash == "" && authCfg.OperatorKey == "" {
		log.Warn().Msg("no operator key configured; POST /api/v1/auth/token will reject every key")
	}

	// Start TCP feed first so binding errors show up early
	hub := feed.NewHub()
	tcpSrv := feed.NewServer(srvCfg.SyncAddr, hub)
	if err := tcpSrv.Listen(); err != nil {
		log.Fatal().Err(err).Msg("tcp feed listen failed")
	}

	rosters := roster.NewService(roster.NewRepo(db), hub)

	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter(server.RouterConfig{
		DB:           db,
		Catalog:      catalog.NewService(catalog.NewRepo(db)),
		Rosters:      rosters,
		Hub:          hub,
		Tokens:       tokens,
		Keys:         keys,
		CORSOrigin:   srvCfg.CORSOrigin,
		AssetsDir:    assetCfg.Dir,
		AssetsPrefix: assetCfg.PublicPrefix,
	})

	httpSrv := &http.Server{
		Addr:              srvCfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := tcpSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info().Str("addr", srvCfg.HTTPAddr).Str("db", cfg.Path).Msg("HTTP API server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("server error")
	}

	log.Info().Msg("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown error")
	}
	rosters.Close()
	if err := tcpSrv.Close(); err != nil {
		log.Error().Err(err).Msg("tcp shutdown error")
	}

	wg.Wait()
	log.Info().Msg("servers stopped")
}
