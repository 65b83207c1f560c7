// Package memory implements the "uncollateralized" settlement backend
// spec.md §9 names as a noted source quirk: it flips quote states straight
// to Paid/Pending without any on-chain settlement. It exists only so tests
// can exercise the node's mint/melt state machine without a live chain
// backend; it is never wired into the default node binary. Grounded on the
// teacher's mint/lightning/fakebackend.go, which plays the identical role
// for the teacher's Lightning-only backend.
package memory

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/paynet-go/paynet/crypto"
	"github.com/paynet-go/paynet/ecash"
	"github.com/paynet-go/paynet/settlement"
)

// Backend is a settlement.Adapter that settles every deposit and withdrawal
// immediately and in-process. Safe for concurrent use.
type Backend struct {
	mu          sync.Mutex
	deposits    map[string]uint64 // invoice id (hex) -> amount
	mintPayments chan settlement.MintPaymentObserved
	meltPayments chan settlement.MeltPaymentObserved
}

func New() *Backend {
	return &Backend{
		deposits:     make(map[string]uint64),
		mintPayments: make(chan settlement.MintPaymentObserved, 64),
		meltPayments: make(chan settlement.MeltPaymentObserved, 64),
	}
}

func (b *Backend) ComputeInvoiceID(quoteId string, expiry int64) []byte {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", quoteId, expiry)))
	return h[:]
}

// GenerateDepositPayload mints an invoice id and immediately queues the
// matching MintPaymentObserved event, simulating instant settlement.
func (b *Backend) GenerateDepositPayload(ctx context.Context, quoteId string, unit crypto.Unit, amount uint64, expiry int64) ([]byte, string, error) {
	invoiceId := b.ComputeInvoiceID(quoteId, expiry)

	var nonce [16]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, "", err
	}
	request := "memory:" + hex.EncodeToString(invoiceId) + ":" + hex.EncodeToString(nonce[:])

	b.mu.Lock()
	b.deposits[hex.EncodeToString(invoiceId)] = amount
	b.mu.Unlock()

	select {
	case b.mintPayments <- settlement.MintPaymentObserved{InvoiceId: invoiceId, Amount: amount}:
	default:
	}

	return invoiceId, request, nil
}

// DeserializeMeltPaymentRequest parses this backend's own withdraw-request
// format, "memory:<asset>:<amount>:<payee>", rather than the opaque
// single-token string earlier revisions returned: a melt quote must be able
// to compare the request's asset against the quoted unit's pinned asset
// (spec.md §4.3.4 step 1), which a fixed "memory" placeholder could never
// match any real crypto.Unit against.
func (b *Backend) DeserializeMeltPaymentRequest(request string) (settlement.MeltPaymentRequest, error) {
	parts := strings.SplitN(request, ":", 4)
	if len(parts) != 4 || parts[0] != "memory" {
		return settlement.MeltPaymentRequest{}, ecash.NewError(ecash.KindPolicy, "not a memory-backend request")
	}
	amount, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return settlement.MeltPaymentRequest{}, ecash.NewError(ecash.KindPolicy, "invalid memory-backend amount")
	}
	return settlement.MeltPaymentRequest{Payee: parts[3], Asset: parts[1], Amount: amount}, nil
}

func (b *Backend) ComputeTotalAmountExpected(request settlement.MeltPaymentRequest, unit crypto.Unit, feeReserve uint64) (uint64, error) {
	return request.Amount + feeReserve, nil
}

// ProceedToPayment transitions the quote straight to Paid and emits the
// matching MeltPaymentObserved event rather than returning Pending, per the
// "uncollateralized" shortcut's contract.
func (b *Backend) ProceedToPayment(ctx context.Context, quoteId string, request string, expiry int64) (ecash.MeltQuoteState, error) {
	transferId := hex.EncodeToString(b.ComputeInvoiceID(quoteId, expiry))
	select {
	case b.meltPayments <- settlement.MeltPaymentObserved{QuoteId: quoteId, TransferIds: []string{transferId}}:
	default:
	}
	return ecash.MeltQuotePaid, nil
}

func (b *Backend) MintPayments() <-chan settlement.MintPaymentObserved { return b.mintPayments }
func (b *Backend) MeltPayments() <-chan settlement.MeltPaymentObserved { return b.meltPayments }

var (
	_ settlement.Adapter = (*Backend)(nil)
	_ settlement.Indexer = (*Backend)(nil)
)
