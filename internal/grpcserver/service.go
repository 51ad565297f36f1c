package grpcserver

import (
	"context"

	"google.golang.org/grpc"
)

const (
	catalogService = "pokedex.v1.Catalog"
	rostersService = "pokedex.v1.Rosters"
)

// CatalogServer is the read side of the catalog.
type CatalogServer interface {
	ListRecords(context.Context, *ListRecordsRequest) (*ListRecordsResponse, error)
	GetRecord(context.Context, *GetRecordRequest) (*GetRecordResponse, error)
	Search(context.Context, *SearchRequest) (*SearchResponse, error)
}

// RostersServer manages rosters.
type RostersServer interface {
	CreateRoster(context.Context, *CreateRosterRequest) (*RosterResponse, error)
	GetRoster(context.Context, *GetRosterRequest) (*RosterResponse, error)
	ListRosters(context.Context, *ListRostersRequest) (*ListRostersResponse, error)
	SetMembers(context.Context, *SetMembersRequest) (*RosterResponse, error)
}

// Register adds both services to gs.
func Register(gs grpc.ServiceRegistrar, s *Server) {
	gs.RegisterService(&catalogServiceDesc, s)
	gs.RegisterService(&rostersServiceDesc, s)
}

// unary adapts a typed method to a grpc.MethodDesc handler.
func unary[Srv any, Req any, Resp any](service, method string, call func(Srv, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(Srv), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(Srv), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var catalogServiceDesc = grpc.ServiceDesc{
	ServiceName: catalogService,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(catalogService, "ListRecords", CatalogServer.ListRecords),
		unary(catalogService, "GetRecord", CatalogServer.GetRecord),
		unary(catalogService, "Search", CatalogServer.Search),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pokedex/v1/catalog",
}

var rostersServiceDesc = grpc.ServiceDesc{
	ServiceName: rostersService,
	HandlerType: (*RostersServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(rostersService, "CreateRoster", RostersServer.CreateRoster),
		unary(rostersService, "GetRoster", RostersServer.GetRoster),
		unary(rostersService, "ListRosters", RostersServer.ListRosters),
		unary(rostersService, "SetMembers", RostersServer.SetMembers),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pokedex/v1/rosters",
}

// Client calls both services over one connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListRecords(ctx context.Context, in *ListRecordsRequest, opts ...grpc.CallOption) (*ListRecordsResponse, error) {
	return invoke[ListRecordsResponse](ctx, c.cc, "/"+catalogService+"/ListRecords", in, opts...)
}

func (c *Client) GetRecord(ctx context.Context, in *GetRecordRequest, opts ...grpc.CallOption) (*GetRecordResponse, error) {
	return invoke[GetRecordResponse](ctx, c.cc, "/"+catalogService+"/GetRecord", in, opts...)
}

func (c *Client) Search(ctx context.Context, in *SearchRequest, opts ...grpc.CallOption) (*SearchResponse, error) {
	return invoke[SearchResponse](ctx, c.cc, "/"+catalogService+"/Search", in, opts...)
}

func (c *Client) CreateRoster(ctx context.Context, in *CreateRosterRequest, opts ...grpc.CallOption) (*RosterResponse, error) {
	return invoke[RosterResponse](ctx, c.cc, "/"+rostersService+"/CreateRoster", in, opts...)
}

func (c *Client) GetRoster(ctx context.Context, in *GetRosterRequest, opts ...grpc.CallOption) (*RosterResponse, error) {
	return invoke[RosterResponse](ctx, c.cc, "/"+rostersService+"/GetRoster", in, opts...)
}

func (c *Client) ListRosters(ctx context.Context, in *ListRostersRequest, opts ...grpc.CallOption) (*ListRostersResponse, error) {
	return invoke[ListRostersResponse](ctx, c.cc, "/"+rostersService+"/ListRosters", in, opts...)
}

func (c *Client) SetMembers(ctx context.Context, in *SetMembersRequest, opts ...grpc.CallOption) (*RosterResponse, error) {
	return invoke[RosterResponse](ctx, c.cc, "/"+rostersService+"/SetMembers", in, opts...)
}
