package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"pokedex/internal/auth"
	"pokedex/internal/catalog"
	"pokedex/internal/grpcserver"
	"pokedex/internal/roster"
	"pokedex/pkg/database"
	"pokedex/pkg/logging"
	"pokedex/pkg/utils"
)

func main() {
	utils.Load()
	log := logging.Component("grpc-server")

	cfg := database.DefaultConfig()
	db := database.MustOpen(cfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	srvCfg := utils.LoadServerConfig()
	authCfg := utils.LoadAuthConfig()
	if authCfg.DevSecret {
		log.Warn().Msg("POKEDEX_JWT_SECRET is unset; tokens are signed with the public dev secret")
	}

	listener, err := net.Listen("tcp", srvCfg.GRPCAddr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", srvCfg.GRPCAddr).Msg("grpc listen failed")
	}

	// roster events from this process are not fanned out; the api-server owns the feed
	svc := grpcserver.NewServer(
		catalog.NewService(catalog.NewRepo(db)),
		roster.NewService(roster.NewRepo(db), nil),
	)
	grpcServer := grpcserver.NewGRPCServer(svc, auth.TokenService{
		Secret:   []byte(authCfg.JWTSecret),
		Issuer:   authCfg.JWTIssuer,
		Duration: authCfg.JWTDuration,
	})

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		grpcServer.GracefulStop()
	}()

	log.Info().Str("addr", srvCfg.GRPCAddr).Msg("gRPC server listening")
	if err := grpcServer.Serve(listener); err != nil {
		log.Fatal().Err(err).Msg("grpc server stopped")
	}
}
