// Package lightning adapts the teacher's LND REST client
// (mint/lightning/lnd.go) into a settlement.Adapter: a concrete, real
// on-chain settlement backend for the sat unit. It is kept as a legitimate
// backend rather than dropped — the node's settlement boundary is now a
// capability interface with more than one implementation, and Lightning
// remains one of them.
package lightning

import (
	"context"
	"encoding/hex"
	"fmt"

	decodepay "github.com/nbd-wtf/ln-decodepay"

	"github.com/paynet-go/paynet/crypto"
	"github.com/paynet-go/paynet/ecash"
	"github.com/paynet-go/paynet/mint/lightning"
	"github.com/paynet-go/paynet/settlement"
)

// Adapter wraps a Lightning REST client so it satisfies settlement.Adapter.
// Only the Sat unit is valid here; GenerateDepositPayload/ComputeTotalAmountExpected
// reject any other unit since Lightning only settles the Bitcoin asset.
type Adapter struct {
	client *lightning.LndClient
}

func New(client *lightning.LndClient) *Adapter {
	return &Adapter{client: client}
}

func (a *Adapter) ComputeInvoiceID(quoteId string, expiry int64) []byte {
	// Placeholder until GenerateDepositPayload fills in the real payment
	// hash; CheckState-style lookups key on invoice id, not quote id, so
	// callers must use the id GenerateDepositPayload returned instead of
	// recomputing one for a Lightning quote.
	return []byte(quoteId)
}

// GenerateDepositPayload asks the LND node for a bolt11 invoice and returns
// its payment hash as the invoice id.
func (a *Adapter) GenerateDepositPayload(ctx context.Context, quoteId string, unit crypto.Unit, amount uint64, expiry int64) ([]byte, string, error) {
	if unit != crypto.Sat {
		return nil, "", ecash.NewError(ecash.KindConfig, "lightning settlement only supports the sat unit")
	}

	invoice, err := a.client.CreateInvoice(amount)
	if err != nil {
		return nil, "", ecash.NewError(ecash.KindResource, fmt.Sprintf("lnd create invoice: %v", err))
	}

	invoiceId, err := hex.DecodeString(invoice.PaymentHash)
	if err != nil {
		return nil, "", ecash.NewError(ecash.KindResource, "lnd returned a malformed payment hash")
	}
	return invoiceId, invoice.PaymentRequest, nil
}

func (a *Adapter) DeserializeMeltPaymentRequest(request string) (settlement.MeltPaymentRequest, error) {
	invoice, err := decodepay.Decodepay(request)
	if err != nil {
		return settlement.MeltPaymentRequest{}, ecash.NewError(ecash.KindPolicy, "invalid bolt11 invoice")
	}
	return settlement.MeltPaymentRequest{
		Payee:  invoice.Payee,
		Asset:  "btc",
		Amount: uint64(invoice.MSatoshi) / 1000,
	}, nil
}

func (a *Adapter) ComputeTotalAmountExpected(request settlement.MeltPaymentRequest, unit crypto.Unit, feeReserve uint64) (uint64, error) {
	if unit != crypto.Sat {
		return 0, ecash.NewError(ecash.KindConfig, "lightning settlement only supports the sat unit")
	}
	return request.Amount + feeReserve, nil
}

// ProceedToPayment dispatches the payment over the LND REST client. Because
// the client call blocks until LND resolves the payment, the returned state
// is already terminal (Paid) rather than Pending; a streaming client would
// return Pending here instead.
func (a *Adapter) ProceedToPayment(ctx context.Context, quoteId string, request string, expiry int64) (ecash.MeltQuoteState, error) {
	if _, err := a.client.SendPayment(request); err != nil {
		return ecash.MeltQuoteUnpaid, ecash.NewError(ecash.KindResource, fmt.Sprintf("lnd send payment: %v", err))
	}
	return ecash.MeltQuotePaid, nil
}

var _ settlement.Adapter = (*Adapter)(nil)
