package mediarmv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const serviceName = "mediarm.v1.MediaResourceManager"

// MediaResourceManagerClient is the client API for MediaResourceManager.
type MediaResourceManagerClient interface {
	Config(ctx context.Context, in *ConfigRequest, opts ...grpc.CallOption) (*ConfigResponse, error)
	AddResource(ctx context.Context, in *AddResourceRequest, opts ...grpc.CallOption) (*AddResourceResponse, error)
	RemoveResource(ctx context.Context, in *RemoveResourceRequest, opts ...grpc.CallOption) (*RemoveResourceResponse, error)
	ReclaimResource(ctx context.Context, in *ReclaimRequest, opts ...grpc.CallOption) (*ReclaimResponse, error)
	Snapshot(ctx context.Context, in *SnapshotRequest, opts ...grpc.CallOption) (*SnapshotResponse, error)
	RegisterCallback(ctx context.Context, opts ...grpc.CallOption) (MediaResourceManager_RegisterCallbackClient, error)
}

type mediaResourceManagerClient struct {
	cc grpc.ClientConnInterface
}

// NewMediaResourceManagerClient wraps a ClientConn (typically dialed over a
// UNIX socket) with the arbiter's RPC surface.
func NewMediaResourceManagerClient(cc grpc.ClientConnInterface) MediaResourceManagerClient {
	return &mediaResourceManagerClient{cc}
}

func (c *mediaResourceManagerClient) Config(ctx context.Context, in *ConfigRequest, opts ...grpc.CallOption) (*ConfigResponse, error) {
	out := new(ConfigResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Config", in, out, append(opts, WithJSONCodec())...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mediaResourceManagerClient) AddResource(ctx context.Context, in *AddResourceRequest, opts ...grpc.CallOption) (*AddResourceResponse, error) {
	out := new(AddResourceResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/AddResource", in, out, append(opts, WithJSONCodec())...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mediaResourceManagerClient) RemoveResource(ctx context.Context, in *RemoveResourceRequest, opts ...grpc.CallOption) (*RemoveResourceResponse, error) {
	out := new(RemoveResourceResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/RemoveResource", in, out, append(opts, WithJSONCodec())...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mediaResourceManagerClient) ReclaimResource(ctx context.Context, in *ReclaimRequest, opts ...grpc.CallOption) (*ReclaimResponse, error) {
	out := new(ReclaimResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/ReclaimResource", in, out, append(opts, WithJSONCodec())...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mediaResourceManagerClient) Snapshot(ctx context.Context, in *SnapshotRequest, opts ...grpc.CallOption) (*SnapshotResponse, error) {
	out := new(SnapshotResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Snapshot", in, out, append(opts, WithJSONCodec())...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mediaResourceManagerClient) RegisterCallback(ctx context.Context, opts ...grpc.CallOption) (MediaResourceManager_RegisterCallbackClient, error) {
	stream, err := c.cc.NewStream(ctx, &_MediaResourceManager_serviceDesc.Streams[0], "/"+serviceName+"/RegisterCallback", append(opts, WithJSONCodec())...)
	if err != nil {
		return nil, err
	}
	return &mediaResourceManagerRegisterCallbackClient{stream}, nil
}

// MediaResourceManager_RegisterCallbackClient is the client-side handle for
// the bidirectional callback stream.
type MediaResourceManager_RegisterCallbackClient interface {
	Send(*CallbackEnvelope) error
	Recv() (*CallbackEnvelope, error)
	grpc.ClientStream
}

type mediaResourceManagerRegisterCallbackClient struct {
	grpc.ClientStream
}

func (x *mediaResourceManagerRegisterCallbackClient) Send(m *CallbackEnvelope) error {
	return x.ClientStream.SendMsg(m)
}

func (x *mediaResourceManagerRegisterCallbackClient) Recv() (*CallbackEnvelope, error) {
	m := new(CallbackEnvelope)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// MediaResourceManagerServer is the server API for MediaResourceManager.
type MediaResourceManagerServer interface {
	Config(context.Context, *ConfigRequest) (*ConfigResponse, error)
	AddResource(context.Context, *AddResourceRequest) (*AddResourceResponse, error)
	RemoveResource(context.Context, *RemoveResourceRequest) (*RemoveResourceResponse, error)
	ReclaimResource(context.Context, *ReclaimRequest) (*ReclaimResponse, error)
	Snapshot(context.Context, *SnapshotRequest) (*SnapshotResponse, error)
	RegisterCallback(MediaResourceManager_RegisterCallbackServer) error
}

// UnimplementedMediaResourceManagerServer can be embedded by server
// implementations to satisfy forward compatibility.
type UnimplementedMediaResourceManagerServer struct{}

func (UnimplementedMediaResourceManagerServer) Config(context.Context, *ConfigRequest) (*ConfigResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Config not implemented")
}
func (UnimplementedMediaResourceManagerServer) AddResource(context.Context, *AddResourceRequest) (*AddResourceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddResource not implemented")
}
func (UnimplementedMediaResourceManagerServer) RemoveResource(context.Context, *RemoveResourceRequest) (*RemoveResourceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveResource not implemented")
}
func (UnimplementedMediaResourceManagerServer) ReclaimResource(context.Context, *ReclaimRequest) (*ReclaimResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ReclaimResource not implemented")
}
func (UnimplementedMediaResourceManagerServer) Snapshot(context.Context, *SnapshotRequest) (*SnapshotResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Snapshot not implemented")
}
func (UnimplementedMediaResourceManagerServer) RegisterCallback(MediaResourceManager_RegisterCallbackServer) error {
	return status.Error(codes.Unimplemented, "method RegisterCallback not implemented")
}

// RegisterMediaResourceManagerServer wires an implementation into a gRPC
// server (or any other grpc.ServiceRegistrar).
func RegisterMediaResourceManagerServer(s grpc.ServiceRegistrar, srv MediaResourceManagerServer) {
	s.RegisterService(&_MediaResourceManager_serviceDesc, srv)
}

func _MediaResourceManager_Config_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ConfigRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MediaResourceManagerServer).Config(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Config"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MediaResourceManagerServer).Config(ctx, req.(*ConfigRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MediaResourceManager_AddResource_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(AddResourceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MediaResourceManagerServer).AddResource(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/AddResource"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MediaResourceManagerServer).AddResource(ctx, req.(*AddResourceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MediaResourceManager_RemoveResource_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RemoveResourceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MediaResourceManagerServer).RemoveResource(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/RemoveResource"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MediaResourceManagerServer).RemoveResource(ctx, req.(*RemoveResourceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MediaResourceManager_ReclaimResource_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ReclaimRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MediaResourceManagerServer).ReclaimResource(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/ReclaimResource"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MediaResourceManagerServer).ReclaimResource(ctx, req.(*ReclaimRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MediaResourceManager_Snapshot_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SnapshotRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MediaResourceManagerServer).Snapshot(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Snapshot"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MediaResourceManagerServer).Snapshot(ctx, req.(*SnapshotRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _MediaResourceManager_RegisterCallback_Handler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(MediaResourceManagerServer).RegisterCallback(&mediaResourceManagerRegisterCallbackServer{stream})
}

// MediaResourceManager_RegisterCallbackServer is the server-side handle for
// the bidirectional callback stream.
type MediaResourceManager_RegisterCallbackServer interface {
	Send(*CallbackEnvelope) error
	Recv() (*CallbackEnvelope, error)
	grpc.ServerStream
}

type mediaResourceManagerRegisterCallbackServer struct {
	grpc.ServerStream
}

func (x *mediaResourceManagerRegisterCallbackServer) Send(m *CallbackEnvelope) error {
	return x.ServerStream.SendMsg(m)
}

func (x *mediaResourceManagerRegisterCallbackServer) Recv() (*CallbackEnvelope, error) {
	m := new(CallbackEnvelope)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

var _MediaResourceManager_serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*MediaResourceManagerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Config", Handler: _MediaResourceManager_Config_Handler},
		{MethodName: "AddResource", Handler: _MediaResourceManager_AddResource_Handler},
		{MethodName: "RemoveResource", Handler: _MediaResourceManager_RemoveResource_Handler},
		{MethodName: "ReclaimResource", Handler: _MediaResourceManager_ReclaimResource_Handler},
		{MethodName: "Snapshot", Handler: _MediaResourceManager_Snapshot_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "RegisterCallback",
			Handler:       _MediaResourceManager_RegisterCallback_Handler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "mediarmv1/mediarm.proto",
}
