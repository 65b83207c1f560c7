package nodepb

import (
	"context"

	"google.golang.org/grpc"
)

// NodeServer is implemented by the adapter in mint/rpc and registered
// against a *grpc.Server.
type NodeServer interface {
	Swap(context.Context, *SwapRequest) (*SwapResponse, error)
	MintQuote(context.Context, *MintQuoteRequest) (*MintQuoteResponse, error)
	MintQuoteState(context.Context, *MintQuoteStateRequest) (*MintQuoteResponse, error)
	Mint(context.Context, *MintRequest) (*MintResponse, error)
	MeltQuote(context.Context, *MeltQuoteRequest) (*MeltQuoteResponse, error)
	MeltQuoteState(context.Context, *MeltQuoteStateRequest) (*MeltQuoteResponse, error)
	Melt(context.Context, *MeltRequest) (*MeltQuoteResponse, error)
	Restore(context.Context, *RestoreRequest) (*RestoreResponse, error)
	CheckState(context.Context, *CheckStateRequest) (*CheckStateResponse, error)
	Acknowledge(context.Context, *AcknowledgeRequest) (*AcknowledgeResponse, error)
	GetKeysets(context.Context, *GetKeysetsRequest) (*GetKeysetsResponse, error)
}

func _Node_Swap_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SwapRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NodeServer).Swap(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/node.Node/Swap"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NodeServer).Swap(ctx, req.(*SwapRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Node_MintQuote_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MintQuoteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NodeServer).MintQuote(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/node.Node/MintQuote"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NodeServer).MintQuote(ctx, req.(*MintQuoteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Node_MintQuoteState_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MintQuoteStateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NodeServer).MintQuoteState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/node.Node/MintQuoteState"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NodeServer).MintQuoteState(ctx, req.(*MintQuoteStateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Node_Mint_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MintRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NodeServer).Mint(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/node.Node/Mint"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NodeServer).Mint(ctx, req.(*MintRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Node_MeltQuote_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MeltQuoteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NodeServer).MeltQuote(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/node.Node/MeltQuote"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NodeServer).MeltQuote(ctx, req.(*MeltQuoteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Node_MeltQuoteState_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MeltQuoteStateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NodeServer).MeltQuoteState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/node.Node/MeltQuoteState"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NodeServer).MeltQuoteState(ctx, req.(*MeltQuoteStateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Node_Melt_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MeltRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NodeServer).Melt(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/node.Node/Melt"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NodeServer).Melt(ctx, req.(*MeltRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Node_Restore_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RestoreRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NodeServer).Restore(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/node.Node/Restore"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NodeServer).Restore(ctx, req.(*RestoreRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Node_CheckState_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CheckStateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NodeServer).CheckState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/node.Node/CheckState"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NodeServer).CheckState(ctx, req.(*CheckStateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Node_Acknowledge_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(AcknowledgeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NodeServer).Acknowledge(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/node.Node/Acknowledge"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NodeServer).Acknowledge(ctx, req.(*AcknowledgeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Node_GetKeysets_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetKeysetsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NodeServer).GetKeysets(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/node.Node/GetKeysets"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NodeServer).GetKeysets(ctx, req.(*GetKeysetsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Node_ServiceDesc is the hand-written equivalent of what protoc-gen-go-grpc
// would emit from a node.proto service block.
var Node_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "node.Node",
	HandlerType: (*NodeServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Swap", Handler: _Node_Swap_Handler},
		{MethodName: "MintQuote", Handler: _Node_MintQuote_Handler},
		{MethodName: "MintQuoteState", Handler: _Node_MintQuoteState_Handler},
		{MethodName: "Mint", Handler: _Node_Mint_Handler},
		{MethodName: "MeltQuote", Handler: _Node_MeltQuote_Handler},
		{MethodName: "MeltQuoteState", Handler: _Node_MeltQuoteState_Handler},
		{MethodName: "Melt", Handler: _Node_Melt_Handler},
		{MethodName: "Restore", Handler: _Node_Restore_Handler},
		{MethodName: "CheckState", Handler: _Node_CheckState_Handler},
		{MethodName: "Acknowledge", Handler: _Node_Acknowledge_Handler},
		{MethodName: "GetKeysets", Handler: _Node_GetKeysets_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "node.proto",
}

func RegisterNodeServer(s grpc.ServiceRegistrar, srv NodeServer) {
	s.RegisterService(&Node_ServiceDesc, srv)
}

type nodeClient struct {
	cc grpc.ClientConnInterface
}

func NewNodeClient(cc grpc.ClientConnInterface) NodeClient {
	return &nodeClient{cc}
}

// NodeClient is the caller-facing stub used by the wallet.
type NodeClient interface {
	Swap(ctx context.Context, in *SwapRequest, opts ...grpc.CallOption) (*SwapResponse, error)
	MintQuote(ctx context.Context, in *MintQuoteRequest, opts ...grpc.CallOption) (*MintQuoteResponse, error)
	MintQuoteState(ctx context.Context, in *MintQuoteStateRequest, opts ...grpc.CallOption) (*MintQuoteResponse, error)
	Mint(ctx context.Context, in *MintRequest, opts ...grpc.CallOption) (*MintResponse, error)
	MeltQuote(ctx context.Context, in *MeltQuoteRequest, opts ...grpc.CallOption) (*MeltQuoteResponse, error)
	MeltQuoteState(ctx context.Context, in *MeltQuoteStateRequest, opts ...grpc.CallOption) (*MeltQuoteResponse, error)
	Melt(ctx context.Context, in *MeltRequest, opts ...grpc.CallOption) (*MeltQuoteResponse, error)
	Restore(ctx context.Context, in *RestoreRequest, opts ...grpc.CallOption) (*RestoreResponse, error)
	CheckState(ctx context.Context, in *CheckStateRequest, opts ...grpc.CallOption) (*CheckStateResponse, error)
	Acknowledge(ctx context.Context, in *AcknowledgeRequest, opts ...grpc.CallOption) (*AcknowledgeResponse, error)
	GetKeysets(ctx context.Context, in *GetKeysetsRequest, opts ...grpc.CallOption) (*GetKeysetsResponse, error)
}

func (c *nodeClient) Swap(ctx context.Context, in *SwapRequest, opts ...grpc.CallOption) (*SwapResponse, error) {
	out := new(SwapResponse)
	if err := c.cc.Invoke(ctx, "/node.Node/Swap", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeClient) MintQuote(ctx context.Context, in *MintQuoteRequest, opts ...grpc.CallOption) (*MintQuoteResponse, error) {
	out := new(MintQuoteResponse)
	if err := c.cc.Invoke(ctx, "/node.Node/MintQuote", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeClient) MintQuoteState(ctx context.Context, in *MintQuoteStateRequest, opts ...grpc.CallOption) (*MintQuoteResponse, error) {
	out := new(MintQuoteResponse)
	if err := c.cc.Invoke(ctx, "/node.Node/MintQuoteState", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeClient) Mint(ctx context.Context, in *MintRequest, opts ...grpc.CallOption) (*MintResponse, error) {
	out := new(MintResponse)
	if err := c.cc.Invoke(ctx, "/node.Node/Mint", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeClient) MeltQuote(ctx context.Context, in *MeltQuoteRequest, opts ...grpc.CallOption) (*MeltQuoteResponse, error) {
	out := new(MeltQuoteResponse)
	if err := c.cc.Invoke(ctx, "/node.Node/MeltQuote", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeClient) MeltQuoteState(ctx context.Context, in *MeltQuoteStateRequest, opts ...grpc.CallOption) (*MeltQuoteResponse, error) {
	out := new(MeltQuoteResponse)
	if err := c.cc.Invoke(ctx, "/node.Node/MeltQuoteState", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeClient) Melt(ctx context.Context, in *MeltRequest, opts ...grpc.CallOption) (*MeltQuoteResponse, error) {
	out := new(MeltQuoteResponse)
	if err := c.cc.Invoke(ctx, "/node.Node/Melt", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeClient) Restore(ctx context.Context, in *RestoreRequest, opts ...grpc.CallOption) (*RestoreResponse, error) {
	out := new(RestoreResponse)
	if err := c.cc.Invoke(ctx, "/node.Node/Restore", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeClient) CheckState(ctx context.Context, in *CheckStateRequest, opts ...grpc.CallOption) (*CheckStateResponse, error) {
	out := new(CheckStateResponse)
	if err := c.cc.Invoke(ctx, "/node.Node/CheckState", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeClient) Acknowledge(ctx context.Context, in *AcknowledgeRequest, opts ...grpc.CallOption) (*AcknowledgeResponse, error) {
	out := new(AcknowledgeResponse)
	if err := c.cc.Invoke(ctx, "/node.Node/Acknowledge", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeClient) GetKeysets(ctx context.Context, in *GetKeysetsRequest, opts ...grpc.CallOption) (*GetKeysetsResponse, error) {
	out := new(GetKeysetsResponse)
	if err := c.cc.Invoke(ctx, "/node.Node/GetKeysets", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
