// Package storage declares the node's persistence contract: a relational
// store for keysets and quotes, plus the spent-proof and blind-signature
// sets that must be serializable under concurrent swap/mint/melt. Grounded
// on the teacher's mint/storage/storage.go MintDB interface, reshaped to
// spec.md §3/§6: proof rows drop the cleartext secret (only y is kept),
// gain an explicit state enum, and quotes carry a Unit and TransferIds.
package storage

// MintDB is everything the node's mint logic needs from a relational store.
// Every method that mutates spent proofs, blind signatures, or a quote's
// state must run inside the serializable transaction opened by BeginTx so
// spec.md §4.3/§5's per-request atomicity holds.
type MintDB interface {
	BeginTx() (Tx, error)

	SaveKeyset(DBKeyset) error
	GetKeysets() ([]DBKeyset, error)
	UpdateKeysetActive(keysetId string, active bool) error

	GetProofsByY(ys []string) ([]DBProof, error)
	GetBlindSignaturesByY(ys []string) ([]DBBlindSignature, error)

	GetMintQuote(id string) (DBMintQuote, error)
	GetMintQuoteByInvoiceID(invoiceId []byte) (DBMintQuote, error)
	GetMeltQuote(id string) (DBMeltQuote, error)

	GetIdempotencyEntry(route, requestHash string) (IdempotencyEntry, error)

	Close() error
}

// Tx is the serializable-transaction handle every swap/mint/melt handler
// opens exactly once per request. All writes go through it; Commit or
// Rollback ends the transaction. A dropped handler (caller disconnect)
// must Rollback so no partial state is observed: callers `defer
// tx.Rollback()` immediately after BeginTx and call Commit only on the
// success path, per spec.md §5's cancellation-safety requirement.
type Tx interface {
	// InsertSpentProofs marks ys as Spent. Returns an error naming the first
	// y that could not be inserted, such as one already Spent (S1).
	InsertSpentProofs(proofs []DBProof) error

	// InsertBlindSignatures inserts signatures keyed by blinded secret.
	// Returns an error naming the first blinded secret that could not be
	// inserted, such as one already signed (S2).
	InsertBlindSignatures(sigs []DBBlindSignature) error

	SaveMintQuote(DBMintQuote) error
	GetMintQuote(id string) (DBMintQuote, error)
	UpdateMintQuoteState(id string, state int) error

	SaveMeltQuote(DBMeltQuote) error
	GetMeltQuote(id string) (DBMeltQuote, error)
	UpdateMeltQuoteState(id string, state int, transferIds []string) error

	SaveIdempotencyEntry(entry IdempotencyEntry) error
	Acknowledge(route, requestHash string) error

	Commit() error
	Rollback() error
}

type DBKeyset struct {
	Id                string
	Unit              string
	Active            bool
	DerivationPathIdx uint32
	InputFeePpk       uint16
}

// ProofState mirrors ecash.ProofState but is stored as a plain int so this
// package does not need to import ecash's wider surface.
type ProofState int

const (
	ProofUnspent ProofState = iota
	ProofSpent
)

// DBProof is a row in the spent-proof set, keyed by Y. The node never
// stores the cleartext secret: by the time a proof is persisted it has
// already been verified by the signer, and Y is the only identifier needed
// to reject a future double-spend.
type DBProof struct {
	Y        string
	Amount   uint64
	KeysetId string
	State    ProofState
}

// DBBlindSignature is a row in the issued-signature set, keyed by the
// blinded secret the wallet originally submitted.
type DBBlindSignature struct {
	BlindedSecret string
	Amount        uint64
	KeysetId      string
	C             string
}

type DBMintQuote struct {
	Id             string
	Unit           string
	Amount         uint64
	InvoiceId      []byte
	PaymentRequest string
	State          int // ecash.MintQuoteState
	Expiry         int64
}

type DBMeltQuote struct {
	Id          string
	Unit        string
	Amount      uint64
	FeeReserve  uint64
	Request     string
	State       int // ecash.MeltQuoteState
	Expiry      int64
	TransferIds []string
}

// IdempotencyEntry caches a route's byte-identical response for a given
// request hash until the client calls Acknowledge. mint_quote is never
// cached here (spec.md §4.3: "mint_quote is not cached").
type IdempotencyEntry struct {
	Route        string
	RequestHash  string
	Response     []byte
	Acknowledged bool
}
