package ecash

import "github.com/paynet-go/paynet/crypto"

type MintQuoteState int

const (
	MintQuoteUnpaid MintQuoteState = iota
	MintQuotePaid
	MintQuoteIssued
)

func (s MintQuoteState) String() string {
	switch s {
	case MintQuoteUnpaid:
		return "UNPAID"
	case MintQuotePaid:
		return "PAID"
	case MintQuoteIssued:
		return "ISSUED"
	default:
		return "UNKNOWN"
	}
}

// CanTransitionTo enforces the one-way Unpaid < Paid < Issued order.
func (s MintQuoteState) CanTransitionTo(next MintQuoteState) bool {
	return next > s
}

// MintQuote tracks a promise to issue tokens once the quoted invoice is paid.
type MintQuote struct {
	Id             string
	Unit           crypto.Unit
	Amount         uint64
	InvoiceId      []byte
	PaymentRequest string
	State          MintQuoteState
	Expiry         int64
}

type MeltQuoteState int

const (
	MeltQuoteUnpaid MeltQuoteState = iota
	MeltQuotePending
	MeltQuotePaid
)

func (s MeltQuoteState) String() string {
	switch s {
	case MeltQuoteUnpaid:
		return "UNPAID"
	case MeltQuotePending:
		return "PENDING"
	case MeltQuotePaid:
		return "PAID"
	default:
		return "UNKNOWN"
	}
}

func (s MeltQuoteState) CanTransitionTo(next MeltQuoteState) bool {
	return next > s
}

// MeltQuote tracks a promise to pay out an on-chain request once the node
// has burned the matching proofs.
type MeltQuote struct {
	Id          string
	Unit        crypto.Unit
	Amount      uint64
	FeeReserve  uint64
	Request     string
	State       MeltQuoteState
	Expiry      int64
	TransferIds []string
}
