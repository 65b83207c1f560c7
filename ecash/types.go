// Package ecash contains the core data types shared by the node, the
// signer, and the wallet: blinded messages/signatures, proofs, quotes, and
// the closed error taxonomy used to translate failures across the gRPC
// boundary.
package ecash

import (
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/paynet-go/paynet/crypto"
)

// BlindedMessage is what a wallet submits for the node/signer to sign:
// (amount, keyset_id, Y + rG).
type BlindedMessage struct {
	Amount   uint64 `json:"amount"`
	KeysetId string `json:"id"`
	BlindedB string `json:"B_"`
}

func NewBlindedMessage(keysetId string, amount uint64, B_ *secp256k1.PublicKey) BlindedMessage {
	return BlindedMessage{
		Amount:   amount,
		KeysetId: keysetId,
		BlindedB: hex.EncodeToString(B_.SerializeCompressed()),
	}
}

type BlindedMessages []BlindedMessage

func (bm BlindedMessages) Amount() uint64 {
	var total uint64
	for _, m := range bm {
		total += m.Amount
	}
	return total
}

// SortBlindedMessages sorts messages, secrets, and blinding factors in
// lock-step by ascending amount, needed before submitting a premint batch
// so the node's response order lines up with the wallet's local arrays.
func SortBlindedMessages(messages BlindedMessages, secrets []string, rs []*secp256k1.PrivateKey) {
	for i := 0; i < len(messages)-1; i++ {
		for j := i + 1; j < len(messages); j++ {
			if messages[i].Amount > messages[j].Amount {
				messages[i], messages[j] = messages[j], messages[i]
				secrets[i], secrets[j] = secrets[j], secrets[i]
				rs[i], rs[j] = rs[j], rs[i]
			}
		}
	}
}

// BlindedSignature is the node's response to a BlindedMessage:
// (amount, keyset_id, c = k·blinded_secret).
type BlindedSignature struct {
	Amount   uint64 `json:"amount"`
	KeysetId string `json:"id"`
	C_       string `json:"C_"`
}

type BlindedSignatures []BlindedSignature

func (bs BlindedSignatures) Amount() uint64 {
	var total uint64
	for _, s := range bs {
		total += s.Amount
	}
	return total
}

// ProofState is the spend-lifecycle state of a proof as tracked by the node
// (Unspent/Spent) or the wallet (Unspent/Pending/Spent/Reserved).
type ProofState int

const (
	Unspent ProofState = iota
	Pending
	Spent
	Reserved
)

func (s ProofState) String() string {
	switch s {
	case Unspent:
		return "UNSPENT"
	case Pending:
		return "PENDING"
	case Spent:
		return "SPENT"
	case Reserved:
		return "RESERVED"
	default:
		return "UNKNOWN"
	}
}

// Proof is a bearer token: (amount, keyset_id, secret, c). It is valid iff
// c == k · HashToCurve(secret) for the keyset's amount key k.
type Proof struct {
	Amount   uint64 `json:"amount"`
	KeysetId string `json:"id"`
	Secret   string `json:"secret"`
	C        string `json:"C"`
}

type Proofs []Proof

func (proofs Proofs) Amount() uint64 {
	var total uint64
	for _, p := range proofs {
		total += p.Amount
	}
	return total
}

// Y returns the proof's canonical spent-set identifier, HashToCurve(secret).
// This is the only thing about a verified proof the node is allowed to keep.
func (p Proof) Y() (string, error) {
	secretBytes, err := hex.DecodeString(p.Secret)
	if err != nil {
		// secrets are also accepted as raw opaque strings (not all secrets
		// are hex, e.g. P2PK-locked ones in the original protocol); hash the
		// UTF-8 bytes directly in that case.
		secretBytes = []byte(p.Secret)
	}
	point := crypto.HashToCurve(secretBytes)
	return hex.EncodeToString(point.SerializeCompressed()), nil
}

// CheckDuplicateProofs reports whether proofs contains the same (amount,
// keyset_id, secret, c) tuple more than once.
func CheckDuplicateProofs(proofs Proofs) bool {
	seen := make(map[Proof]bool, len(proofs))
	for _, p := range proofs {
		if seen[p] {
			return true
		}
		seen[p] = true
	}
	return false
}

// CheckDuplicateMessages reports whether any two messages in messages share
// the same blinded_secret (B_), which would mean signing the same output
// twice.
func CheckDuplicateMessages(messages BlindedMessages) bool {
	seen := make(map[string]bool, len(messages))
	for _, m := range messages {
		if seen[m.BlindedB] {
			return true
		}
		seen[m.BlindedB] = true
	}
	return false
}
