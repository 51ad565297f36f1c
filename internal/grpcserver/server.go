// Package grpcserver exposes the catalog query engine and the roster
// manager over gRPC, with JSON-encoded messages.
package grpcserver

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"pokedex/internal/catalog"
	"pokedex/internal/roster"
	pkgerrors "pokedex/pkg/errors"
	"pokedex/pkg/logging"
)

type Server struct {
	Catalog *catalog.Service
	Rosters *roster.Service
}

func NewServer(catalogSvc *catalog.Service, rosterSvc *roster.Service) *Server {
	return &Server{Catalog: catalogSvc, Rosters: rosterSvc}
}

func (s *Server) ListRecords(ctx context.Context, req *ListRecordsRequest) (*ListRecordsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request required")
	}
	items, err := s.Catalog.List(ctx, catalog.ListParams{Sort: req.Sort, Limit: req.Limit, Offset: req.Offset})
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	total, err := s.Catalog.Count(ctx)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &ListRecordsResponse{Total: total, Items: items}, nil
}

func (s *Server) GetRecord(ctx context.Context, req *GetRecordRequest) (*GetRecordResponse, error) {
	if req == nil || req.ID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	rec, err := s.Catalog.Get(ctx, req.ID)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &GetRecordResponse{Record: rec}, nil
}

func (s *Server) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request required")
	}
	items, err := s.Catalog.Search(ctx, req.Query, req.Limit)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &SearchResponse{Items: items}, nil
}

func (s *Server) CreateRoster(ctx context.Context, req *CreateRosterRequest) (*RosterResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request required")
	}
	ro, err := s.Rosters.Create(ctx, req.Name)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &RosterResponse{Roster: ro}, nil
}

func (s *Server) GetRoster(ctx context.Context, req *GetRosterRequest) (*RosterResponse, error) {
	if req == nil || req.ID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	ro, err := s.Rosters.Get(ctx, req.ID)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &RosterResponse{Roster: ro}, nil
}

func (s *Server) ListRosters(ctx context.Context, req *ListRostersRequest) (*ListRostersResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request required")
	}
	items, err := s.Rosters.List(ctx, roster.ListParams{Search: req.Search, Limit: req.Limit, Offset: req.Offset})
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &ListRostersResponse{Items: items}, nil
}

func (s *Server) SetMembers(ctx context.Context, req *SetMembersRequest) (*RosterResponse, error) {
	if req == nil || req.ID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	ro, err := s.Rosters.SetMembers(ctx, req.ID, req.Members)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &RosterResponse{Roster: ro}, nil
}

func toStatus(ctx context.Context, err error) error {
	switch {
	case pkgerrors.IsInvalidArgument(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case pkgerrors.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case pkgerrors.IsUnauthorized(err):
		return status.Error(codes.Unauthenticated, err.Error())
	case pkgerrors.IsUpstreamUnavailable(err):
		return status.Error(codes.Unavailable, err.Error())
	default:
		logging.FromContext(ctx).Error().Err(err).Msg("rpc failed")
		return status.Error(codes.Internal, "internal error")
	}
}
