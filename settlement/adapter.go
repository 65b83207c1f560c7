// Package settlement declares the capability set the node requires from an
// external on-chain settlement backend: something that can hand a client a
// deposit payload, dispatch a withdrawal, derive a stable invoice id, and
// asynchronously observe chain state for the quote store. The node depends
// only on these capabilities, never on a concrete backend.
package settlement

import (
	"context"

	"github.com/paynet-go/paynet/crypto"
	"github.com/paynet-go/paynet/ecash"
)

// MeltPaymentRequest is the structurally-validated result of parsing a
// client-submitted withdraw request string: who gets paid, in what asset,
// and how much.
type MeltPaymentRequest struct {
	Payee  string
	Asset  string
	Amount uint64
}

// Depositer issues bearer deposit payloads for mint quotes.
type Depositer interface {
	// GenerateDepositPayload produces the invoice id the indexer will later
	// match on-chain inflow against, plus the request string handed back to
	// the client.
	GenerateDepositPayload(ctx context.Context, quoteId string, unit crypto.Unit, amount uint64, expiry int64) (invoiceId []byte, request string, err error)
}

// Withdrawer dispatches melt payments and prices their expected cost.
type Withdrawer interface {
	DeserializeMeltPaymentRequest(request string) (MeltPaymentRequest, error)

	// ComputeTotalAmountExpected returns the amount of quote-unit tokens the
	// node must burn to cover request plus the settlement layer's own fee
	// reserve, rounding up any sub-unit remainder.
	ComputeTotalAmountExpected(request MeltPaymentRequest, unit crypto.Unit, feeReserve uint64) (uint64, error)

	// ProceedToPayment enqueues the payment order and returns the quote's
	// initial post-enqueue state (Pending, or Paid for a backend that
	// settles synchronously).
	ProceedToPayment(ctx context.Context, quoteId string, request string, expiry int64) (ecash.MeltQuoteState, error)
}

// InvoiceIDDeriver derives the stable 32-byte id a mint quote is indexed
// under, independent of the backend's own invoice/payment-hash format.
type InvoiceIDDeriver interface {
	ComputeInvoiceID(quoteId string, expiry int64) []byte
}

// Adapter is the full capability set; concrete backends implement all three.
// The node's dependency on it is still expressed as three small interfaces
// so a future backend (e.g. one that can deposit but not withdraw) can
// implement a subset without lying about the rest.
type Adapter interface {
	Depositer
	Withdrawer
	InvoiceIDDeriver
}

// MintPaymentObserved is delivered by a backend's indexer when it sees
// on-chain inflow matching an Unpaid mint quote's invoice id.
type MintPaymentObserved struct {
	InvoiceId []byte
	Amount    uint64
}

// MeltPaymentObserved is delivered when a backend's indexer sees outflow
// settling a Pending melt quote.
type MeltPaymentObserved struct {
	QuoteId     string
	TransferIds []string
}

// Indexer is the asynchronous half of a settlement backend: a stream of
// observed on-chain events the node folds into the quote store. A backend
// that settles synchronously (the memory test backend) may implement this
// as a closed channel.
type Indexer interface {
	MintPayments() <-chan MintPaymentObserved
	MeltPayments() <-chan MeltPaymentObserved
}
