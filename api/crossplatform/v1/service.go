package crossplatformv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "crossplatform.v1.CrossPlatformService"

const (
	CrossPlatformService_Get_FullMethodName     = "/" + ServiceName + "/Get"
	CrossPlatformService_Save_FullMethodName    = "/" + ServiceName + "/Save"
	CrossPlatformService_GetList_FullMethodName = "/" + ServiceName + "/GetList"
	CrossPlatformService_Ping_FullMethodName    = "/" + ServiceName + "/Ping"
)

// CrossPlatformServiceClient is the client API for CrossPlatformService.
type CrossPlatformServiceClient interface {
	Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*Resource, error)
	Save(ctx context.Context, in *SaveRequest, opts ...grpc.CallOption) (*SaveResponse, error)
	GetList(ctx context.Context, in *GetListRequest, opts ...grpc.CallOption) (*GetListResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type crossPlatformServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCrossPlatformServiceClient(cc grpc.ClientConnInterface) CrossPlatformServiceClient {
	return &crossPlatformServiceClient{cc}
}

// callOptions prepends the JSON content-subtype so caller options can still
// override it.
func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *crossPlatformServiceClient) Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*Resource, error) {
	out := new(Resource)
	if err := c.cc.Invoke(ctx, CrossPlatformService_Get_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *crossPlatformServiceClient) Save(ctx context.Context, in *SaveRequest, opts ...grpc.CallOption) (*SaveResponse, error) {
	out := new(SaveResponse)
	if err := c.cc.Invoke(ctx, CrossPlatformService_Save_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *crossPlatformServiceClient) GetList(ctx context.Context, in *GetListRequest, opts ...grpc.CallOption) (*GetListResponse, error) {
	out := new(GetListResponse)
	if err := c.cc.Invoke(ctx, CrossPlatformService_GetList_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *crossPlatformServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	if err := c.cc.Invoke(ctx, CrossPlatformService_Ping_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// CrossPlatformServiceServer is the server API for CrossPlatformService.
// Implementations must embed UnimplementedCrossPlatformServiceServer.
type CrossPlatformServiceServer interface {
	Get(context.Context, *GetRequest) (*Resource, error)
	Save(context.Context, *SaveRequest) (*SaveResponse, error)
	GetList(context.Context, *GetListRequest) (*GetListResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	mustEmbedUnimplementedCrossPlatformServiceServer()
}

// UnimplementedCrossPlatformServiceServer returns codes.Unimplemented for
// every method.
type UnimplementedCrossPlatformServiceServer struct{}

func (UnimplementedCrossPlatformServiceServer) Get(context.Context, *GetRequest) (*Resource, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Get not implemented")
}
func (UnimplementedCrossPlatformServiceServer) Save(context.Context, *SaveRequest) (*SaveResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Save not implemented")
}
func (UnimplementedCrossPlatformServiceServer) GetList(context.Context, *GetListRequest) (*GetListResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetList not implemented")
}
func (UnimplementedCrossPlatformServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedCrossPlatformServiceServer) mustEmbedUnimplementedCrossPlatformServiceServer() {}

func RegisterCrossPlatformServiceServer(s grpc.ServiceRegistrar, srv CrossPlatformServiceServer) {
	s.RegisterService(&CrossPlatformService_ServiceDesc, srv)
}

func _CrossPlatformService_Get_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CrossPlatformServiceServer).Get(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CrossPlatformService_Get_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CrossPlatformServiceServer).Get(ctx, req.(*GetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _CrossPlatformService_Save_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SaveRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CrossPlatformServiceServer).Save(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CrossPlatformService_Save_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CrossPlatformServiceServer).Save(ctx, req.(*SaveRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _CrossPlatformService_GetList_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetListRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CrossPlatformServiceServer).GetList(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CrossPlatformService_GetList_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CrossPlatformServiceServer).GetList(ctx, req.(*GetListRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _CrossPlatformService_Ping_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CrossPlatformServiceServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CrossPlatformService_Ping_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CrossPlatformServiceServer).Ping(ctx, req.(*PingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// CrossPlatformService_ServiceDesc is the grpc.ServiceDesc for
// CrossPlatformService.
var CrossPlatformService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CrossPlatformServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Get", Handler: _CrossPlatformService_Get_Handler},
		{MethodName: "Save", Handler: _CrossPlatformService_Save_Handler},
		{MethodName: "GetList", Handler: _CrossPlatformService_GetList_Handler},
		{MethodName: "Ping", Handler: _CrossPlatformService_Ping_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "crossplatform/v1/service.go",
}
