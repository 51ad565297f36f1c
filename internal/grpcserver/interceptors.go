package grpcserver

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"pokedex/internal/auth"
	"pokedex/pkg/logging"
)

// ProtectedMethods are the mutating RPCs that need an operator token.
var ProtectedMethods = map[string]bool{
	"/" + rostersService + "/CreateRoster": true,
	"/" + rostersService + "/SetMembers":   true,
}

// LoggingInterceptor attaches a request logger to ctx and logs each call.
func LoggingInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		logger := logging.Default().With().
			Str("request_id", uuid.NewString()).
			Str("method", info.FullMethod).
			Logger()
		ctx = logging.WithLogger(ctx, &logger)

		resp, err := handler(ctx, req)

		code := status.Code(err)
		ev := logger.Info()
		if code == codes.Internal || code == codes.Unknown {
			ev = logger.Error()
		}
		ev.Str("code", code.String()).Dur("latency", time.Since(start)).Msg("rpc")
		return resp, err
	}
}

// AuthInterceptor requires a valid bearer token in the "authorization"
// metadata for the methods in protected.
func AuthInterceptor(tokens auth.TokenService, protected map[string]bool) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !protected[info.FullMethod] {
			return handler(ctx, req)
		}

		md, _ := metadata.FromIncomingContext(ctx)
		values := md.Get("authorization")
		if len(values) == 0 || !strings.HasPrefix(strings.ToLower(values[0]), "bearer ") {
			return nil, status.Error(codes.Unauthenticated, "missing bearer token")
		}
		if _, err := tokens.Parse(strings.TrimSpace(values[0][len("Bearer "):])); err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		return handler(ctx, req)
	}
}

// NewGRPCServer builds a server with logging and auth interceptors and
// both services registered.
func NewGRPCServer(s *Server, tokens auth.TokenService, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(
		LoggingInterceptor(),
		AuthInterceptor(tokens, ProtectedMethods),
	))
	gs := grpc.NewServer(opts...)
	Register(gs, s)
	return gs
}
