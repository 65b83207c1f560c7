package mint

import (
	"context"
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"google.golang.org/grpc"

	"github.com/paynet-go/paynet/crypto"
	"github.com/paynet-go/paynet/ecash"
	"github.com/paynet-go/paynet/signer"
	signerrpc "github.com/paynet-go/paynet/signer/rpc"
)

// SignerClient is everything the node needs from the signer boundary
// (spec.md §4.2/§4.3): declaring keysets at startup, and signing/verifying
// per request. The node never holds a private key itself.
type SignerClient interface {
	DeclareKeyset(ctx context.Context, unit crypto.Unit, index uint32, maxOrder uint8, inputFeePpk uint16) (keysetId string, pubkeys crypto.PublicKeys, err error)
	GetRootPubKey(ctx context.Context) (*secp256k1.PublicKey, error)
	SignBlindedMessages(ctx context.Context, messages ecash.BlindedMessages) (ecash.BlindedSignatures, error)
	VerifyProofs(ctx context.Context, proofs ecash.Proofs) (valid bool, invalidIndices []int, err error)
}

// GRPCSignerClient is the production SignerClient: the node and the signer
// are separate processes (spec.md §1's "isolated signer"), talking over the
// hand-authored gRPC surface in signer/rpc.
type GRPCSignerClient struct {
	stub signerrpc.SignerClient
}

func NewGRPCSignerClient(cc grpc.ClientConnInterface) *GRPCSignerClient {
	return &GRPCSignerClient{stub: signerrpc.NewSignerClient(cc)}
}

func (c *GRPCSignerClient) DeclareKeyset(ctx context.Context, unit crypto.Unit, index uint32, maxOrder uint8, inputFeePpk uint16) (string, crypto.PublicKeys, error) {
	resp, err := c.stub.DeclareKeyset(ctx, &signerrpc.DeclareKeysetRequest{
		Unit: uint32(unit), Index: index, MaxOrder: uint32(maxOrder), InputFeePpk: uint32(inputFeePpk),
	})
	if err != nil {
		return "", nil, err
	}

	pubkeys := make(crypto.PublicKeys, len(resp.Keys))
	for _, k := range resp.Keys {
		pk, err := secp256k1.ParsePubKey(k.PublicKey)
		if err != nil {
			return "", nil, ecash.NewError(ecash.KindCrypto, "signer returned an unparsable public key")
		}
		pubkeys[k.Amount] = pk
	}
	return resp.KeysetId, pubkeys, nil
}

func (c *GRPCSignerClient) GetRootPubKey(ctx context.Context) (*secp256k1.PublicKey, error) {
	resp, err := c.stub.GetRootPubKey(ctx, &signerrpc.GetRootPubKeyRequest{})
	if err != nil {
		return nil, err
	}
	return secp256k1.ParsePubKey(resp.PublicKey)
}

func (c *GRPCSignerClient) SignBlindedMessages(ctx context.Context, messages ecash.BlindedMessages) (ecash.BlindedSignatures, error) {
	req := &signerrpc.SignBlindedMessagesRequest{Messages: make([]*signerrpc.BlindedMessage, len(messages))}
	for i, m := range messages {
		bBytes, err := hex.DecodeString(m.BlindedB)
		if err != nil {
			return nil, ecash.NewFieldError(ecash.KindCrypto, fieldName("outputs", i), "invalid blinded point encoding")
		}
		req.Messages[i] = &signerrpc.BlindedMessage{Amount: m.Amount, KeysetId: m.KeysetId, B: bBytes}
	}

	resp, err := c.stub.SignBlindedMessages(ctx, req)
	if err != nil {
		return nil, err
	}

	sigs := make(ecash.BlindedSignatures, len(resp.Signatures))
	for i, s := range resp.Signatures {
		sigs[i] = ecash.BlindedSignature{Amount: s.Amount, KeysetId: s.KeysetId, C_: hex.EncodeToString(s.C)}
	}
	return sigs, nil
}

func (c *GRPCSignerClient) VerifyProofs(ctx context.Context, proofs ecash.Proofs) (bool, []int, error) {
	req := &signerrpc.VerifyProofsRequest{Proofs: make([]*signerrpc.Proof, len(proofs))}
	for i, p := range proofs {
		cBytes, err := hex.DecodeString(p.C)
		if err != nil {
			return false, nil, ecash.NewFieldError(ecash.KindCrypto, fieldName("inputs", i), "invalid signature encoding")
		}
		req.Proofs[i] = &signerrpc.Proof{Amount: p.Amount, KeysetId: p.KeysetId, Secret: p.Secret, C: cBytes}
	}

	resp, err := c.stub.VerifyProofs(ctx, req)
	if err != nil {
		return false, nil, err
	}

	invalid := make([]int, len(resp.InvalidIndices))
	for i, idx := range resp.InvalidIndices {
		invalid[i] = int(idx)
	}
	return resp.Valid, invalid, nil
}

// LocalSignerClient embeds a signer.Signer directly in the node process.
// It satisfies the same SignerClient contract as the gRPC client so a
// single-binary deployment can skip the
// network hop without the mint package ever calling signer.Signer's
// methods directly from its own request handlers.
type LocalSignerClient struct {
	Signer *signer.Signer
}

func (c *LocalSignerClient) DeclareKeyset(ctx context.Context, unit crypto.Unit, index uint32, maxOrder uint8, inputFeePpk uint16) (string, crypto.PublicKeys, error) {
	ks, err := c.Signer.DeclareKeyset(unit, index, maxOrder, inputFeePpk)
	if err != nil {
		return "", nil, err
	}
	return ks.Id, ks.PublicKeys(), nil
}

func (c *LocalSignerClient) GetRootPubKey(ctx context.Context) (*secp256k1.PublicKey, error) {
	return c.Signer.GetRootPubKey()
}

func (c *LocalSignerClient) SignBlindedMessages(ctx context.Context, messages ecash.BlindedMessages) (ecash.BlindedSignatures, error) {
	return c.Signer.SignBlindedMessages(messages)
}

func (c *LocalSignerClient) VerifyProofs(ctx context.Context, proofs ecash.Proofs) (bool, []int, error) {
	return c.Signer.VerifyProofs(proofs)
}

var (
	_ SignerClient = (*GRPCSignerClient)(nil)
	_ SignerClient = (*LocalSignerClient)(nil)
)
