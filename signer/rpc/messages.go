// Package rpc defines the wire messages and service descriptor for the
// signer's gRPC surface. The message types are hand-written in the
// pre-protoc-gen-go-v2 style: plain structs carrying `protobuf:` struct
// tags plus Reset/String/ProtoMessage, left for the protobuf-go runtime's
// legacy support to wrap into a protoreflect.Message by reflecting over
// the tags at marshal time. No .proto file is compiled for this package.
package rpc

import "github.com/golang/protobuf/proto"

type DeclareKeysetRequest struct {
	Unit        uint32 `protobuf:"varint,1,opt,name=unit,proto3" json:"unit,omitempty"`
	Index       uint32 `protobuf:"varint,2,opt,name=index,proto3" json:"index,omitempty"`
	MaxOrder    uint32 `protobuf:"varint,3,opt,name=max_order,proto3" json:"max_order,omitempty"`
	InputFeePpk uint32 `protobuf:"varint,4,opt,name=input_fee_ppk,proto3" json:"input_fee_ppk,omitempty"`
}

func (m *DeclareKeysetRequest) Reset()         { *m = DeclareKeysetRequest{} }
func (m *DeclareKeysetRequest) String() string { return proto.CompactTextString(m) }
func (*DeclareKeysetRequest) ProtoMessage()    {}

type KeysetPublicKey struct {
	Amount    uint64 `protobuf:"varint,1,opt,name=amount,proto3" json:"amount,omitempty"`
	PublicKey []byte `protobuf:"bytes,2,opt,name=public_key,proto3" json:"public_key,omitempty"`
}

func (m *KeysetPublicKey) Reset()         { *m = KeysetPublicKey{} }
func (m *KeysetPublicKey) String() string { return proto.CompactTextString(m) }
func (*KeysetPublicKey) ProtoMessage()    {}

type DeclareKeysetResponse struct {
	KeysetId    string             `protobuf:"bytes,1,opt,name=keyset_id,proto3" json:"keyset_id,omitempty"`
	Unit        uint32             `protobuf:"varint,2,opt,name=unit,proto3" json:"unit,omitempty"`
	InputFeePpk uint32             `protobuf:"varint,3,opt,name=input_fee_ppk,proto3" json:"input_fee_ppk,omitempty"`
	Keys        []*KeysetPublicKey `protobuf:"bytes,4,rep,name=keys,proto3" json:"keys,omitempty"`
}

func (m *DeclareKeysetResponse) Reset()         { *m = DeclareKeysetResponse{} }
func (m *DeclareKeysetResponse) String() string { return proto.CompactTextString(m) }
func (*DeclareKeysetResponse) ProtoMessage()    {}

type SetActiveRequest struct {
	KeysetId string `protobuf:"bytes,1,opt,name=keyset_id,proto3" json:"keyset_id,omitempty"`
	Active   bool   `protobuf:"varint,2,opt,name=active,proto3" json:"active,omitempty"`
}

func (m *SetActiveRequest) Reset()         { *m = SetActiveRequest{} }
func (m *SetActiveRequest) String() string { return proto.CompactTextString(m) }
func (*SetActiveRequest) ProtoMessage()    {}

type SetActiveResponse struct{}

func (m *SetActiveResponse) Reset()         { *m = SetActiveResponse{} }
func (m *SetActiveResponse) String() string { return proto.CompactTextString(m) }
func (*SetActiveResponse) ProtoMessage()    {}

type GetRootPubKeyRequest struct{}

func (m *GetRootPubKeyRequest) Reset()         { *m = GetRootPubKeyRequest{} }
func (m *GetRootPubKeyRequest) String() string { return proto.CompactTextString(m) }
func (*GetRootPubKeyRequest) ProtoMessage()    {}

type GetRootPubKeyResponse struct {
	PublicKey []byte `protobuf:"bytes,1,opt,name=public_key,proto3" json:"public_key,omitempty"`
}

func (m *GetRootPubKeyResponse) Reset()         { *m = GetRootPubKeyResponse{} }
func (m *GetRootPubKeyResponse) String() string { return proto.CompactTextString(m) }
func (*GetRootPubKeyResponse) ProtoMessage()    {}

type BlindedMessage struct {
	Amount   uint64 `protobuf:"varint,1,opt,name=amount,proto3" json:"amount,omitempty"`
	KeysetId string `protobuf:"bytes,2,opt,name=keyset_id,proto3" json:"keyset_id,omitempty"`
	B        []byte `protobuf:"bytes,3,opt,name=b,proto3" json:"b,omitempty"`
}

func (m *BlindedMessage) Reset()         { *m = BlindedMessage{} }
func (m *BlindedMessage) String() string { return proto.CompactTextString(m) }
func (*BlindedMessage) ProtoMessage()    {}

type BlindedSignature struct {
	Amount   uint64 `protobuf:"varint,1,opt,name=amount,proto3" json:"amount,omitempty"`
	KeysetId string `protobuf:"bytes,2,opt,name=keyset_id,proto3" json:"keyset_id,omitempty"`
	C        []byte `protobuf:"bytes,3,opt,name=c,proto3" json:"c,omitempty"`
}

func (m *BlindedSignature) Reset()         { *m = BlindedSignature{} }
func (m *BlindedSignature) String() string { return proto.CompactTextString(m) }
func (*BlindedSignature) ProtoMessage()    {}

type SignBlindedMessagesRequest struct {
	Messages []*BlindedMessage `protobuf:"bytes,1,rep,name=messages,proto3" json:"messages,omitempty"`
}

func (m *SignBlindedMessagesRequest) Reset()         { *m = SignBlindedMessagesRequest{} }
func (m *SignBlindedMessagesRequest) String() string { return proto.CompactTextString(m) }
func (*SignBlindedMessagesRequest) ProtoMessage()    {}

type SignBlindedMessagesResponse struct {
	Signatures []*BlindedSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
}

func (m *SignBlindedMessagesResponse) Reset()         { *m = SignBlindedMessagesResponse{} }
func (m *SignBlindedMessagesResponse) String() string { return proto.CompactTextString(m) }
func (*SignBlindedMessagesResponse) ProtoMessage()    {}

type Proof struct {
	Amount   uint64 `protobuf:"varint,1,opt,name=amount,proto3" json:"amount,omitempty"`
	KeysetId string `protobuf:"bytes,2,opt,name=keyset_id,proto3" json:"keyset_id,omitempty"`
	Secret   string `protobuf:"bytes,3,opt,name=secret,proto3" json:"secret,omitempty"`
	C        []byte `protobuf:"bytes,4,opt,name=c,proto3" json:"c,omitempty"`
}

func (m *Proof) Reset()         { *m = Proof{} }
func (m *Proof) String() string { return proto.CompactTextString(m) }
func (*Proof) ProtoMessage()    {}

type VerifyProofsRequest struct {
	Proofs []*Proof `protobuf:"bytes,1,rep,name=proofs,proto3" json:"proofs,omitempty"`
}

func (m *VerifyProofsRequest) Reset()         { *m = VerifyProofsRequest{} }
func (m *VerifyProofsRequest) String() string { return proto.CompactTextString(m) }
func (*VerifyProofsRequest) ProtoMessage()    {}

type VerifyProofsResponse struct {
	Valid          bool    `protobuf:"varint,1,opt,name=valid,proto3" json:"valid,omitempty"`
	InvalidIndices []int32 `protobuf:"varint,2,rep,packed,name=invalid_indices,proto3" json:"invalid_indices,omitempty"`
}

func (m *VerifyProofsResponse) Reset()         { *m = VerifyProofsResponse{} }
func (m *VerifyProofsResponse) String() string { return proto.CompactTextString(m) }
func (*VerifyProofsResponse) ProtoMessage()    {}
