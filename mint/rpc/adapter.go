package rpc

import (
	"context"
	"encoding/hex"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/paynet-go/paynet/crypto"
	"github.com/paynet-go/paynet/ecash"
	"github.com/paynet-go/paynet/mint"
	"github.com/paynet-go/paynet/nodepb"
)

// Adapter adapts a *mint.Mint to nodepb.NodeServer, translating between the
// domain types in crypto/ecash and the wire messages in nodepb. Grounded on
// signer/rpc.Server's translation pattern, generalized from a five-method
// signing surface to the node's full swap/mint/melt/restore/check-state
// surface (spec.md §6).
type Adapter struct {
	mint *mint.Mint
}

func NewAdapter(m *mint.Mint) *Adapter {
	return &Adapter{mint: m}
}

func asStatus(err error) error {
	if ecErr, ok := err.(*ecash.Error); ok {
		switch ecErr.Kind {
		case ecash.KindStructural, ecash.KindCrypto:
			return status.Error(codes.InvalidArgument, ecErr.Error())
		case ecash.KindState:
			return status.Error(codes.FailedPrecondition, ecErr.Error())
		case ecash.KindResource:
			return status.Error(codes.Unavailable, ecErr.Error())
		case ecash.KindConfig:
			return status.Error(codes.FailedPrecondition, ecErr.Error())
		case ecash.KindPolicy:
			return status.Error(codes.FailedPrecondition, ecErr.Error())
		default:
			return status.Error(codes.Internal, ecErr.Error())
		}
	}
	return status.Error(codes.Internal, err.Error())
}

func messagesFromWire(in []*nodepb.BlindedMessage) ecash.BlindedMessages {
	out := make(ecash.BlindedMessages, len(in))
	for i, m := range in {
		out[i] = ecash.BlindedMessage{Amount: m.Amount, KeysetId: m.KeysetId, BlindedB: hex.EncodeToString(m.B)}
	}
	return out
}

func sigsToWire(sigs ecash.BlindedSignatures) ([]*nodepb.BlindedSignature, error) {
	out := make([]*nodepb.BlindedSignature, len(sigs))
	for i, s := range sigs {
		c, err := hex.DecodeString(s.C_)
		if err != nil {
			return nil, ecash.NewError(ecash.KindCrypto, "signer returned an unparsable signature")
		}
		out[i] = &nodepb.BlindedSignature{Amount: s.Amount, KeysetId: s.KeysetId, C: c}
	}
	return out, nil
}

func proofsFromWire(in []*nodepb.Proof) ecash.Proofs {
	out := make(ecash.Proofs, len(in))
	for i, p := range in {
		out[i] = ecash.Proof{Amount: p.Amount, KeysetId: p.KeysetId, Secret: p.Secret, C: hex.EncodeToString(p.C)}
	}
	return out
}

func (a *Adapter) Swap(ctx context.Context, req *nodepb.SwapRequest) (*nodepb.SwapResponse, error) {
	sigs, err := a.mint.Swap(ctx, mint.SwapRequest{
		Inputs:  proofsFromWire(req.Inputs),
		Outputs: messagesFromWire(req.Outputs),
	})
	if err != nil {
		return nil, asStatus(err)
	}
	wire, err := sigsToWire(sigs)
	if err != nil {
		return nil, asStatus(err)
	}
	return &nodepb.SwapResponse{Signatures: wire}, nil
}

func meltQuoteToWire(q *ecash.MeltQuote) *nodepb.MeltQuoteResponse {
	return &nodepb.MeltQuoteResponse{
		Id: q.Id, Unit: uint32(q.Unit), Amount: q.Amount, FeeReserve: q.FeeReserve,
		Request: q.Request, State: uint32(q.State), Expiry: q.Expiry, TransferIds: q.TransferIds,
	}
}

func (a *Adapter) MintQuote(ctx context.Context, req *nodepb.MintQuoteRequest) (*nodepb.MintQuoteResponse, error) {
	q, err := a.mint.MintQuote(ctx, crypto.Unit(req.Unit), req.Amount)
	if err != nil {
		return nil, asStatus(err)
	}
	return &nodepb.MintQuoteResponse{
		Id: q.Id, Unit: uint32(q.Unit), Amount: q.Amount,
		PaymentRequest: q.PaymentRequest, State: uint32(q.State), Expiry: q.Expiry,
	}, nil
}

func (a *Adapter) MintQuoteState(ctx context.Context, req *nodepb.MintQuoteStateRequest) (*nodepb.MintQuoteResponse, error) {
	q, err := a.mint.MintQuoteState(ctx, req.QuoteId)
	if err != nil {
		return nil, asStatus(err)
	}
	return &nodepb.MintQuoteResponse{
		Id: q.Id, Unit: uint32(q.Unit), Amount: q.Amount,
		PaymentRequest: q.PaymentRequest, State: uint32(q.State), Expiry: q.Expiry,
	}, nil
}

func (a *Adapter) Mint(ctx context.Context, req *nodepb.MintRequest) (*nodepb.MintResponse, error) {
	sigs, err := a.mint.Mint(ctx, mint.MintRequest{QuoteId: req.QuoteId, Outputs: messagesFromWire(req.Outputs)})
	if err != nil {
		return nil, asStatus(err)
	}
	wire, err := sigsToWire(sigs)
	if err != nil {
		return nil, asStatus(err)
	}
	return &nodepb.MintResponse{Signatures: wire}, nil
}

func (a *Adapter) MeltQuote(ctx context.Context, req *nodepb.MeltQuoteRequest) (*nodepb.MeltQuoteResponse, error) {
	q, err := a.mint.MeltQuote(ctx, crypto.Unit(req.Unit), req.Request)
	if err != nil {
		return nil, asStatus(err)
	}
	return meltQuoteToWire(q), nil
}

func (a *Adapter) MeltQuoteState(ctx context.Context, req *nodepb.MeltQuoteStateRequest) (*nodepb.MeltQuoteResponse, error) {
	q, err := a.mint.MeltQuoteState(ctx, req.QuoteId)
	if err != nil {
		return nil, asStatus(err)
	}
	return meltQuoteToWire(q), nil
}

func (a *Adapter) Melt(ctx context.Context, req *nodepb.MeltRequest) (*nodepb.MeltQuoteResponse, error) {
	q, err := a.mint.Melt(ctx, mint.MeltRequest{QuoteId: req.QuoteId, Inputs: proofsFromWire(req.Inputs)})
	if err != nil {
		return nil, asStatus(err)
	}
	return meltQuoteToWire(q), nil
}

func (a *Adapter) Restore(ctx context.Context, req *nodepb.RestoreRequest) (*nodepb.RestoreResponse, error) {
	sigs, present, err := a.mint.Restore(ctx, messagesFromWire(req.Outputs))
	if err != nil {
		return nil, asStatus(err)
	}
	wire, err := sigsToWire(sigs)
	if err != nil {
		return nil, asStatus(err)
	}
	return &nodepb.RestoreResponse{Signatures: wire, Present: present}, nil
}

func (a *Adapter) CheckState(ctx context.Context, req *nodepb.CheckStateRequest) (*nodepb.CheckStateResponse, error) {
	states, err := a.mint.CheckState(ctx, req.Ys)
	if err != nil {
		return nil, asStatus(err)
	}
	out := make([]uint32, len(states))
	for i, s := range states {
		out[i] = uint32(s)
	}
	return &nodepb.CheckStateResponse{States: out}, nil
}

func (a *Adapter) Acknowledge(ctx context.Context, req *nodepb.AcknowledgeRequest) (*nodepb.AcknowledgeResponse, error) {
	if err := a.mint.Acknowledge(req.Route, req.RequestHash); err != nil {
		return nil, asStatus(err)
	}
	return &nodepb.AcknowledgeResponse{}, nil
}

func (a *Adapter) GetKeysets(ctx context.Context, req *nodepb.GetKeysetsRequest) (*nodepb.GetKeysetsResponse, error) {
	resp := &nodepb.GetKeysetsResponse{}
	for _, ks := range a.mint.Keysets() {
		wireKs := &nodepb.Keyset{Id: ks.Id, Unit: uint32(ks.Unit), Active: ks.Active, InputFeePpk: uint32(ks.InputFeePpk)}
		for amount, pk := range ks.PublicKeys {
			wireKs.Keys = append(wireKs.Keys, &nodepb.KeysetPublicKey{Amount: amount, PublicKey: pk.SerializeCompressed()})
		}
		resp.Keysets = append(resp.Keysets, wireKs)
	}
	return resp, nil
}

var _ nodepb.NodeServer = (*Adapter)(nil)
