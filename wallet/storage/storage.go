// Package storage defines the wallet's persistence boundary: unspent
// proofs, the keyset cache mirrored from the node, and the per-keyset
// deterministic secret counter. Grounded on the node's mint/storage.MintDB
// split between a read-mostly interface and a dedicated sqlite
// implementation, scaled down to what a wallet needs, but keeping the same
// BeginTx shape so a counter advance and the proofs it produced always land
// in the same commit (spec.md §4.4, I6).
package storage

import "github.com/paynet-go/paynet/crypto"

// DBProof is an owned, unspent proof ready to be selected for a send or a
// melt.
type DBProof struct {
	Y        string
	Amount   uint64
	KeysetId string
	NodeURL  string
	Unit     crypto.Unit
	Secret   string
	C        string
}

// DBKeyset mirrors a keyset this wallet has seen advertised by some node:
// its id, unit, active flag, input fee and derivation counter. Public keys
// are not cached; the wallet fetches them from the node when unblinding.
type DBKeyset struct {
	Id          string
	NodeURL     string
	Unit        crypto.Unit
	Active      bool
	InputFeePpk uint16
	Counter     uint32
}

// WalletDB is the storage boundary a Wallet depends on.
type WalletDB interface {
	SaveKeyset(ks DBKeyset) error
	GetKeysets(nodeURL string) ([]DBKeyset, error)
	SetKeysetActive(id string, active bool) error

	// GetCounter reads a keyset's current counter without advancing it, so
	// deriving outputs for an RPC call that hasn't been committed yet never
	// consumes the range: a caller that fails before Tx.Commit rereads the
	// same start on retry and rederives identical secrets.
	GetCounter(keysetId string) (uint32, error)

	BeginTx() (Tx, error)

	GetProofs(nodeURL string, unit crypto.Unit) ([]DBProof, error)
	DeleteProofs(ys []string) error

	Close() error
}

// Tx persists newly claimed proofs together with the counter advance that
// produced them. Grounded on the node's mint/storage.Tx: the same
// commit-or-nothing shape, scaled down to the wallet's two writes (advance
// counter, save proofs) instead of the node's spent-proof/signature/quote
// set.
type Tx interface {
	SetCounter(keysetId string, counter uint32) error
	SaveProofs(proofs []DBProof) error
	Commit() error
	Rollback() error
}
