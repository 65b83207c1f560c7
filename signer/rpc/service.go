package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// SignerServer is implemented by signer.Signer (via the adapter in server.go)
// and is what gets registered against a *grpc.Server.
type SignerServer interface {
	DeclareKeyset(context.Context, *DeclareKeysetRequest) (*DeclareKeysetResponse, error)
	SetActive(context.Context, *SetActiveRequest) (*SetActiveResponse, error)
	GetRootPubKey(context.Context, *GetRootPubKeyRequest) (*GetRootPubKeyResponse, error)
	SignBlindedMessages(context.Context, *SignBlindedMessagesRequest) (*SignBlindedMessagesResponse, error)
	VerifyProofs(context.Context, *VerifyProofsRequest) (*VerifyProofsResponse, error)
}

func _Signer_DeclareKeyset_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DeclareKeysetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SignerServer).DeclareKeyset(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/signer.Signer/DeclareKeyset"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SignerServer).DeclareKeyset(ctx, req.(*DeclareKeysetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Signer_SetActive_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SetActiveRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SignerServer).SetActive(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/signer.Signer/SetActive"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SignerServer).SetActive(ctx, req.(*SetActiveRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Signer_GetRootPubKey_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetRootPubKeyRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SignerServer).GetRootPubKey(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/signer.Signer/GetRootPubKey"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SignerServer).GetRootPubKey(ctx, req.(*GetRootPubKeyRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Signer_SignBlindedMessages_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SignBlindedMessagesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SignerServer).SignBlindedMessages(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/signer.Signer/SignBlindedMessages"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SignerServer).SignBlindedMessages(ctx, req.(*SignBlindedMessagesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Signer_VerifyProofs_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(VerifyProofsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SignerServer).VerifyProofs(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/signer.Signer/VerifyProofs"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SignerServer).VerifyProofs(ctx, req.(*VerifyProofsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Signer_ServiceDesc is the hand-written equivalent of what protoc-gen-go-grpc
// would emit from a signer.proto service block.
var Signer_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "signer.Signer",
	HandlerType: (*SignerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "DeclareKeyset", Handler: _Signer_DeclareKeyset_Handler},
		{MethodName: "SetActive", Handler: _Signer_SetActive_Handler},
		{MethodName: "GetRootPubKey", Handler: _Signer_GetRootPubKey_Handler},
		{MethodName: "SignBlindedMessages", Handler: _Signer_SignBlindedMessages_Handler},
		{MethodName: "VerifyProofs", Handler: _Signer_VerifyProofs_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "signer.proto",
}

func RegisterSignerServer(s grpc.ServiceRegistrar, srv SignerServer) {
	s.RegisterService(&Signer_ServiceDesc, srv)
}

type signerClient struct {
	cc grpc.ClientConnInterface
}

func NewSignerClient(cc grpc.ClientConnInterface) SignerClient {
	return &signerClient{cc}
}

// SignerClient is the caller-facing stub used by the node process.
type SignerClient interface {
	DeclareKeyset(ctx context.Context, in *DeclareKeysetRequest, opts ...grpc.CallOption) (*DeclareKeysetResponse, error)
	SetActive(ctx context.Context, in *SetActiveRequest, opts ...grpc.CallOption) (*SetActiveResponse, error)
	GetRootPubKey(ctx context.Context, in *GetRootPubKeyRequest, opts ...grpc.CallOption) (*GetRootPubKeyResponse, error)
	SignBlindedMessages(ctx context.Context, in *SignBlindedMessagesRequest, opts ...grpc.CallOption) (*SignBlindedMessagesResponse, error)
	VerifyProofs(ctx context.Context, in *VerifyProofsRequest, opts ...grpc.CallOption) (*VerifyProofsResponse, error)
}

func (c *signerClient) DeclareKeyset(ctx context.Context, in *DeclareKeysetRequest, opts ...grpc.CallOption) (*DeclareKeysetResponse, error) {
	out := new(DeclareKeysetResponse)
	if err := c.cc.Invoke(ctx, "/signer.Signer/DeclareKeyset", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *signerClient) SetActive(ctx context.Context, in *SetActiveRequest, opts ...grpc.CallOption) (*SetActiveResponse, error) {
	out := new(SetActiveResponse)
	if err := c.cc.Invoke(ctx, "/signer.Signer/SetActive", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *signerClient) GetRootPubKey(ctx context.Context, in *GetRootPubKeyRequest, opts ...grpc.CallOption) (*GetRootPubKeyResponse, error) {
	out := new(GetRootPubKeyResponse)
	if err := c.cc.Invoke(ctx, "/signer.Signer/GetRootPubKey", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *signerClient) SignBlindedMessages(ctx context.Context, in *SignBlindedMessagesRequest, opts ...grpc.CallOption) (*SignBlindedMessagesResponse, error) {
	out := new(SignBlindedMessagesResponse)
	if err := c.cc.Invoke(ctx, "/signer.Signer/SignBlindedMessages", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *signerClient) VerifyProofs(ctx context.Context, in *VerifyProofsRequest, opts ...grpc.CallOption) (*VerifyProofsResponse, error) {
	out := new(VerifyProofsResponse)
	if err := c.cc.Invoke(ctx, "/signer.Signer/VerifyProofs", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
