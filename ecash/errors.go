package ecash

// Kind is the closed taxonomy of failure categories from which gRPC status
// codes are derived. Handlers never swallow Crypto or Resource errors; they
// surface as the matching code, with Structural/Policy/State errors
// carrying field-indexed detail so the wallet can identify exact offenders.
type Kind int

const (
	KindCrypto Kind = iota
	KindStructural
	KindPolicy
	KindState
	KindResource
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindCrypto:
		return "crypto"
	case KindStructural:
		return "structural"
	case KindPolicy:
		return "policy"
	case KindState:
		return "state"
	case KindResource:
		return "resource"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Error is the structured error every mint/signer/wallet operation returns
// instead of an ad hoc string, so the gRPC layer can map Kind to a status
// code and field to an indexed detail like "inputs[2].secret".
type Error struct {
	Detail string
	Kind   Kind
	Field  string // e.g. "inputs[2]" or "outputs[0]"; empty if not field-specific
}

func (e *Error) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Detail
	}
	return e.Detail
}

func NewError(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func NewFieldError(kind Kind, field, detail string) *Error {
	return &Error{Kind: kind, Detail: detail, Field: field}
}

// Predefined errors mirroring the common failure points named in the
// mint/signer/wallet state machine.
var (
	ErrHashToCurveExhausted = NewError(KindCrypto, "hash-to-curve counter exhausted")
	ErrInvalidPointEncoding = NewError(KindCrypto, "invalid compressed point encoding")
	ErrVerificationFailed   = NewError(KindCrypto, "signature verification failed")

	ErrDuplicateInput       = NewError(KindStructural, "duplicate input")
	ErrDuplicateOutput      = NewError(KindStructural, "duplicate output")
	ErrAmountNotPowerOfTwo  = NewError(KindStructural, "amount is not a power of two")
	ErrAmountExceedsMaxOrder = NewError(KindStructural, "amount exceeds keyset max_order")
	ErrUnknownKeyset        = NewError(KindStructural, "unknown keyset")

	ErrMultipleUnits        = NewError(KindPolicy, "multiple units in a single-unit route")
	ErrTransactionUnbalanced = NewError(KindPolicy, "transaction unbalanced")
	ErrInactiveKeysetSign   = NewError(KindPolicy, "requested signature from inactive keyset")

	ErrQuoteNotFound       = NewError(KindState, "quote does not exist")
	ErrQuoteExpired        = NewError(KindState, "quote expired")
	ErrQuoteWrongState     = NewError(KindState, "quote is not in the required state")
	ErrProofAlreadySpent   = NewError(KindState, "proof already spent")
	ErrProofPending        = NewError(KindState, "proof is pending")
	ErrAlreadyAcknowledged = NewError(KindState, "request already acknowledged")

	ErrDatabase         = NewError(KindResource, "database error")
	ErrSignerTransport  = NewError(KindResource, "signer transport error")
	ErrSettlementSource = NewError(KindResource, "settlement backend error")
	ErrPoolExhausted    = NewError(KindResource, "connection pool exhausted")

	ErrMintingDisabled  = NewError(KindConfig, "minting is disabled for this unit")
	ErrUnitNotSupported = NewError(KindConfig, "unit not supported")
	ErrMethodDisabled   = NewError(KindConfig, "method disabled")
)
