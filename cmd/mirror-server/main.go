package main

import (
	"flag"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"

	"pokedex/internal/mirror"
	"pokedex/pkg/logging"
)

func main() {
	// serves a seed file at GET /api/v2/pokemon/:key
	dataPath := flag.String("data", "data/pokemons.json", "seed file to serve (.json, .yaml or .yml)")
	addr := flag.String("addr", ":9000", "listen address")
	flag.Parse()

	log := logging.Component("mirror-server")

	h, err := mirror.Load(afero.NewOsFs(), *dataPath)
	if err != nil {
		log.Fatal().Err(err).Str("data", *dataPath).Msg("cannot load mirror data")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), logging.GinMiddleware())
	h.RegisterRoutes(r.Group("/api/v2"))

	log.Info().Str("addr", *addr).Int("records", h.Len()).
		Msg("mirror-server listening; set POKEDEX_UPSTREAM_BASE_URL=http://localhost:9000/api/v2")
	if err := r.Run(*addr); err != nil {
		log.Fatal().Err(err).Msg("mirror-server stopped")
	}
}
