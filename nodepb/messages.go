// Package nodepb defines the wire messages and service descriptor for the
// node's gRPC surface, hand-written in the same pre-protoc-gen-go-v2 style
// as signer/rpc: plain structs with `protobuf:` tags plus Reset/String/
// ProtoMessage, registered directly against a *grpc.Server with no .proto
// compilation step.
package nodepb

import "github.com/golang/protobuf/proto"

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

type Proof struct {
	Amount   uint64 `protobuf:"varint,1,opt,name=amount,proto3" json:"amount,omitempty"`
	KeysetId string `protobuf:"bytes,2,opt,name=keyset_id,proto3" json:"keyset_id,omitempty"`
	Secret   string `protobuf:"bytes,3,opt,name=secret,proto3" json:"secret,omitempty"`
	C        []byte `protobuf:"bytes,4,opt,name=c,proto3" json:"c,omitempty"`
}

func (m *Proof) Reset()         { *m = Proof{} }
func (m *Proof) String() string { return proto.CompactTextString(m) }
func (*Proof) ProtoMessage()    {}

type SwapRequest struct {
	Inputs  []*Proof          `protobuf:"bytes,1,rep,name=inputs,proto3" json:"inputs,omitempty"`
	Outputs []*BlindedMessage `protobuf:"bytes,2,rep,name=outputs,proto3" json:"outputs,omitempty"`
}

func (m *SwapRequest) Reset()         { *m = SwapRequest{} }
func (m *SwapRequest) String() string { return proto.CompactTextString(m) }
func (*SwapRequest) ProtoMessage()    {}

type SwapResponse struct {
	Signatures []*BlindedSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
}

func (m *SwapResponse) Reset()         { *m = SwapResponse{} }
func (m *SwapResponse) String() string { return proto.CompactTextString(m) }
func (*SwapResponse) ProtoMessage()    {}

type MintQuoteRequest struct {
	Unit   uint32 `protobuf:"varint,1,opt,name=unit,proto3" json:"unit,omitempty"`
	Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *MintQuoteRequest) Reset()         { *m = MintQuoteRequest{} }
func (m *MintQuoteRequest) String() string { return proto.CompactTextString(m) }
func (*MintQuoteRequest) ProtoMessage()    {}

type MintQuoteResponse struct {
	Id             string `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Unit           uint32 `protobuf:"varint,2,opt,name=unit,proto3" json:"unit,omitempty"`
	Amount         uint64 `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	PaymentRequest string `protobuf:"bytes,4,opt,name=payment_request,proto3" json:"payment_request,omitempty"`
	State          uint32 `protobuf:"varint,5,opt,name=state,proto3" json:"state,omitempty"`
	Expiry         int64  `protobuf:"varint,6,opt,name=expiry,proto3" json:"expiry,omitempty"`
}

func (m *MintQuoteResponse) Reset()         { *m = MintQuoteResponse{} }
func (m *MintQuoteResponse) String() string { return proto.CompactTextString(m) }
func (*MintQuoteResponse) ProtoMessage()    {}

type MintQuoteStateRequest struct {
	QuoteId string `protobuf:"bytes,1,opt,name=quote_id,proto3" json:"quote_id,omitempty"`
}

func (m *MintQuoteStateRequest) Reset()         { *m = MintQuoteStateRequest{} }
func (m *MintQuoteStateRequest) String() string { return proto.CompactTextString(m) }
func (*MintQuoteStateRequest) ProtoMessage()    {}

type MintRequest struct {
	QuoteId string            `protobuf:"bytes,1,opt,name=quote_id,proto3" json:"quote_id,omitempty"`
	Outputs []*BlindedMessage `protobuf:"bytes,2,rep,name=outputs,proto3" json:"outputs,omitempty"`
}

func (m *MintRequest) Reset()         { *m = MintRequest{} }
func (m *MintRequest) String() string { return proto.CompactTextString(m) }
func (*MintRequest) ProtoMessage()    {}

type MintResponse struct {
	Signatures []*BlindedSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
}

func (m *MintResponse) Reset()         { *m = MintResponse{} }
func (m *MintResponse) String() string { return proto.CompactTextString(m) }
func (*MintResponse) ProtoMessage()    {}

type MeltQuoteRequest struct {
	Unit    uint32 `protobuf:"varint,1,opt,name=unit,proto3" json:"unit,omitempty"`
	Request string `protobuf:"bytes,2,opt,name=request,proto3" json:"request,omitempty"`
}

func (m *MeltQuoteRequest) Reset()         { *m = MeltQuoteRequest{} }
func (m *MeltQuoteRequest) String() string { return proto.CompactTextString(m) }
func (*MeltQuoteRequest) ProtoMessage()    {}

type MeltQuoteResponse struct {
	Id          string   `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Unit        uint32   `protobuf:"varint,2,opt,name=unit,proto3" json:"unit,omitempty"`
	Amount      uint64   `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	FeeReserve  uint64   `protobuf:"varint,4,opt,name=fee_reserve,proto3" json:"fee_reserve,omitempty"`
	Request     string   `protobuf:"bytes,5,opt,name=request,proto3" json:"request,omitempty"`
	State       uint32   `protobuf:"varint,6,opt,name=state,proto3" json:"state,omitempty"`
	Expiry      int64    `protobuf:"varint,7,opt,name=expiry,proto3" json:"expiry,omitempty"`
	TransferIds []string `protobuf:"bytes,8,rep,name=transfer_ids,proto3" json:"transfer_ids,omitempty"`
}

func (m *MeltQuoteResponse) Reset()         { *m = MeltQuoteResponse{} }
func (m *MeltQuoteResponse) String() string { return proto.CompactTextString(m) }
func (*MeltQuoteResponse) ProtoMessage()    {}

type MeltQuoteStateRequest struct {
	QuoteId string `protobuf:"bytes,1,opt,name=quote_id,proto3" json:"quote_id,omitempty"`
}

func (m *MeltQuoteStateRequest) Reset()         { *m = MeltQuoteStateRequest{} }
func (m *MeltQuoteStateRequest) String() string { return proto.CompactTextString(m) }
func (*MeltQuoteStateRequest) ProtoMessage()    {}

type MeltRequest struct {
	QuoteId string   `protobuf:"bytes,1,opt,name=quote_id,proto3" json:"quote_id,omitempty"`
	Inputs  []*Proof `protobuf:"bytes,2,rep,name=inputs,proto3" json:"inputs,omitempty"`
}

func (m *MeltRequest) Reset()         { *m = MeltRequest{} }
func (m *MeltRequest) String() string { return proto.CompactTextString(m) }
func (*MeltRequest) ProtoMessage()    {}

type RestoreRequest struct {
	Outputs []*BlindedMessage `protobuf:"bytes,1,rep,name=outputs,proto3" json:"outputs,omitempty"`
}

func (m *RestoreRequest) Reset()         { *m = RestoreRequest{} }
func (m *RestoreRequest) String() string { return proto.CompactTextString(m) }
func (*RestoreRequest) ProtoMessage()    {}

type RestoreResponse struct {
	Signatures []*BlindedSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	Present    []bool              `protobuf:"varint,2,rep,packed,name=present,proto3" json:"present,omitempty"`
}

func (m *RestoreResponse) Reset()         { *m = RestoreResponse{} }
func (m *RestoreResponse) String() string { return proto.CompactTextString(m) }
func (*RestoreResponse) ProtoMessage()    {}

type CheckStateRequest struct {
	Ys []string `protobuf:"bytes,1,rep,name=ys,proto3" json:"ys,omitempty"`
}

func (m *CheckStateRequest) Reset()         { *m = CheckStateRequest{} }
func (m *CheckStateRequest) String() string { return proto.CompactTextString(m) }
func (*CheckStateRequest) ProtoMessage()    {}

type CheckStateResponse struct {
	States []uint32 `protobuf:"varint,1,rep,packed,name=states,proto3" json:"states,omitempty"`
}

func (m *CheckStateResponse) Reset()         { *m = CheckStateResponse{} }
func (m *CheckStateResponse) String() string { return proto.CompactTextString(m) }
func (*CheckStateResponse) ProtoMessage()    {}

type AcknowledgeRequest struct {
	Route       string `protobuf:"bytes,1,opt,name=route,proto3" json:"route,omitempty"`
	RequestHash string `protobuf:"bytes,2,opt,name=request_hash,proto3" json:"request_hash,omitempty"`
}

func (m *AcknowledgeRequest) Reset()         { *m = AcknowledgeRequest{} }
func (m *AcknowledgeRequest) String() string { return proto.CompactTextString(m) }
func (*AcknowledgeRequest) ProtoMessage()    {}

type AcknowledgeResponse struct{}

func (m *AcknowledgeResponse) Reset()         { *m = AcknowledgeResponse{} }
func (m *AcknowledgeResponse) String() string { return proto.CompactTextString(m) }
func (*AcknowledgeResponse) ProtoMessage()    {}

type KeysetPublicKey struct {
	Amount    uint64 `protobuf:"varint,1,opt,name=amount,proto3" json:"amount,omitempty"`
	PublicKey []byte `protobuf:"bytes,2,opt,name=public_key,proto3" json:"public_key,omitempty"`
}

func (m *KeysetPublicKey) Reset()         { *m = KeysetPublicKey{} }
func (m *KeysetPublicKey) String() string { return proto.CompactTextString(m) }
func (*KeysetPublicKey) ProtoMessage()    {}

type Keyset struct {
	Id          string             `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Unit        uint32             `protobuf:"varint,2,opt,name=unit,proto3" json:"unit,omitempty"`
	Active      bool               `protobuf:"varint,3,opt,name=active,proto3" json:"active,omitempty"`
	InputFeePpk uint32             `protobuf:"varint,4,opt,name=input_fee_ppk,proto3" json:"input_fee_ppk,omitempty"`
	Keys        []*KeysetPublicKey `protobuf:"bytes,5,rep,name=keys,proto3" json:"keys,omitempty"`
}

func (m *Keyset) Reset()         { *m = Keyset{} }
func (m *Keyset) String() string { return proto.CompactTextString(m) }
func (*Keyset) ProtoMessage()    {}

type GetKeysetsRequest struct{}

func (m *GetKeysetsRequest) Reset()         { *m = GetKeysetsRequest{} }
func (m *GetKeysetsRequest) String() string { return proto.CompactTextString(m) }
func (*GetKeysetsRequest) ProtoMessage()    {}

type GetKeysetsResponse struct {
	Keysets []*Keyset `protobuf:"bytes,1,rep,name=keysets,proto3" json:"keysets,omitempty"`
}

func (m *GetKeysetsResponse) Reset()         { *m = GetKeysetsResponse{} }
func (m *GetKeysetsResponse) String() string { return proto.CompactTextString(m) }
func (*GetKeysetsResponse) ProtoMessage()    {}
