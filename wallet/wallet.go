// Package wallet is the bearer-token holder: it dials a node over gRPC,
// derives blinding secrets deterministically from a BIP-39 mnemonic, and
// keeps owned proofs in local storage. Grounded on the teacher's
// wallet.Wallet (wallet/wallet.go), rewritten against the node's gRPC
// surface (nodepb) instead of the teacher's REST client, and against the
// renamed crypto/ecash domain types instead of cashu's.
package wallet

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/tyler-smith/go-bip39"

	"github.com/paynet-go/paynet/crypto"
	"github.com/paynet-go/paynet/ecash"
	"github.com/paynet-go/paynet/mint/rpc"
	"github.com/paynet-go/paynet/nodepb"
	"github.com/paynet-go/paynet/wallet/storage"
)

var ErrInsufficientBalance = errors.New("wallet: insufficient balance for this unit")

// Wallet is the single-node bearer-token client described by spec.md's
// wallet-library scope: mint, send, receive, melt, balance, restore.
type Wallet struct {
	master  *hdkeychain.ExtendedKey
	nodeURL string
	client  nodepb.NodeClient
	db      storage.WalletDB
}

func New(cfg Config, db storage.WalletDB) (*Wallet, error) {
	if !bip39.IsMnemonicValid(cfg.Mnemonic) {
		return nil, fmt.Errorf("wallet: invalid mnemonic")
	}
	seed := bip39.NewSeed(cfg.Mnemonic, cfg.MnemonicPassphrase)
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("wallet: deriving master key: %w", err)
	}

	conn, err := rpc.CreateGrpcClient(cfg.NodeURL, true)
	if err != nil {
		return nil, fmt.Errorf("wallet: dialing node %s: %w", cfg.NodeURL, err)
	}

	w := &Wallet{
		master:  master,
		nodeURL: cfg.NodeURL,
		client:  nodepb.NewNodeClient(conn),
		db:      db,
	}
	return w, nil
}

// syncKeysets refreshes the local keyset cache from the node's GetKeysets,
// so selection of an active keyset for a unit never goes stale after a
// keyset rotation.
func (w *Wallet) syncKeysets(ctx context.Context) ([]storage.DBKeyset, error) {
	resp, err := w.client.GetKeysets(ctx, &nodepb.GetKeysetsRequest{})
	if err != nil {
		return nil, err
	}
	for _, ks := range resp.Keysets {
		if err := w.db.SaveKeyset(storage.DBKeyset{
			Id: ks.Id, NodeURL: w.nodeURL, Unit: crypto.Unit(ks.Unit),
			Active: ks.Active, InputFeePpk: uint16(ks.InputFeePpk),
		}); err != nil {
			return nil, err
		}
		if !ks.Active {
			_ = w.db.SetKeysetActive(ks.Id, false)
		}
	}
	return w.db.GetKeysets(w.nodeURL)
}

func (w *Wallet) activeKeyset(ctx context.Context, unit crypto.Unit) (*storage.DBKeyset, error) {
	keysets, err := w.syncKeysets(ctx)
	if err != nil {
		return nil, err
	}
	for i := range keysets {
		if keysets[i].Unit == unit && keysets[i].Active {
			return &keysets[i], nil
		}
	}
	return nil, fmt.Errorf("wallet: no active keyset for unit %s", unit)
}

func (w *Wallet) keysetPublicKeys(ctx context.Context, keysetId string) (crypto.PublicKeys, error) {
	resp, err := w.client.GetKeysets(ctx, &nodepb.GetKeysetsRequest{})
	if err != nil {
		return nil, err
	}
	for _, ks := range resp.Keysets {
		if ks.Id != keysetId {
			continue
		}
		pks := make(crypto.PublicKeys, len(ks.Keys))
		for _, k := range ks.Keys {
			pk, err := secp256k1.ParsePubKey(k.PublicKey)
			if err != nil {
				return nil, err
			}
			pks[k.Amount] = pk
		}
		return pks, nil
	}
	return nil, fmt.Errorf("wallet: node no longer advertises keyset %s", keysetId)
}

// blindedOutputs derives len(amounts) fresh secrets/blinding factors from
// the keyset's deterministic counter and blinds each amount, returning the
// wire messages alongside everything needed to unblind the response.
type pendingOutput struct {
	secret string
	r      *secp256k1.PrivateKey
	amount uint64
}

// blindedOutputs only reads the keyset's current counter; it never advances
// it. The counter is committed, alongside whatever proofs these outputs end
// up producing, by a later call to commitClaimedProofs. That split is what
// makes a failed RPC/unblind safe to retry: the next attempt rereads the
// same start and rederives byte-identical blinded messages, which the
// node's idempotence cache then answers from its cached response instead of
// minting a second time (spec.md §4.3/§4.4, I6).
func (w *Wallet) blindedOutputs(keysetId string, amounts []uint64) ([]*nodepb.BlindedMessage, []pendingOutput, uint32, error) {
	keysetPath, err := crypto.DeriveSecretPath(w.master, keysetId)
	if err != nil {
		return nil, nil, 0, err
	}
	start, err := w.db.GetCounter(keysetId)
	if err != nil {
		return nil, nil, 0, err
	}

	outputs := make([]*nodepb.BlindedMessage, len(amounts))
	pending := make([]pendingOutput, len(amounts))
	for i, amount := range amounts {
		counter := start + uint32(i)
		secret, err := crypto.DeriveSecret(keysetPath, counter)
		if err != nil {
			return nil, nil, 0, err
		}
		r, err := crypto.DeriveBlindingFactor(keysetPath, counter)
		if err != nil {
			return nil, nil, 0, err
		}
		secretBytes, err := hex.DecodeString(secret)
		if err != nil {
			return nil, nil, 0, err
		}
		B_, _ := crypto.BlindMessage(secretBytes, r.Serialize())

		outputs[i] = &nodepb.BlindedMessage{Amount: amount, KeysetId: keysetId, B: B_.SerializeCompressed()}
		pending[i] = pendingOutput{secret: secret, r: r, amount: amount}
	}
	return outputs, pending, start, nil
}

// commitClaimedProofs advances keysetId's counter to start+outputCount and
// saves proofs in one transaction, so the counter never moves ahead of what
// was actually persisted.
func (w *Wallet) commitClaimedProofs(keysetId string, start uint32, outputCount int, proofs []storage.DBProof) error {
	tx, err := w.db.BeginTx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.SetCounter(keysetId, start+uint32(outputCount)); err != nil {
		return err
	}
	if err := tx.SaveProofs(proofs); err != nil {
		return err
	}
	return tx.Commit()
}

func unblindProofs(keysetId string, pending []pendingOutput, sigs []*nodepb.BlindedSignature, keys crypto.PublicKeys) ([]storage.DBProof, error) {
	if len(sigs) != len(pending) {
		return nil, fmt.Errorf("wallet: node returned %d signatures for %d outputs", len(sigs), len(pending))
	}
	out := make([]storage.DBProof, len(sigs))
	for i, sig := range sigs {
		K, ok := keys[sig.Amount]
		if !ok {
			return nil, fmt.Errorf("wallet: node signed with an unknown amount %d", sig.Amount)
		}
		C_, err := secp256k1.ParsePubKey(sig.C)
		if err != nil {
			return nil, err
		}
		C := crypto.UnblindSignature(C_, pending[i].r, K)

		y, err := (ecash.Proof{Secret: pending[i].secret}).Y()
		if err != nil {
			return nil, err
		}
		out[i] = storage.DBProof{
			Y: y, Amount: pending[i].amount, KeysetId: keysetId,
			Secret: pending[i].secret, C: hex.EncodeToString(C.SerializeCompressed()),
		}
	}
	return out, nil
}

func proofsToWire(proofs []storage.DBProof) ([]*nodepb.Proof, error) {
	out := make([]*nodepb.Proof, len(proofs))
	for i, p := range proofs {
		cBytes, err := hex.DecodeString(p.C)
		if err != nil {
			return nil, err
		}
		out[i] = &nodepb.Proof{Amount: p.Amount, KeysetId: p.KeysetId, Secret: p.Secret, C: cBytes}
	}
	return out, nil
}

// Mint requests a payment for amount in unit, waits for it to settle, then
// claims freshly blinded proofs once MintQuoteState reports Paid. Grounded
// on the teacher's wallet.Wallet.MintTokens polling loop.
func (w *Wallet) Mint(ctx context.Context, unit crypto.Unit, amount uint64) (string, []storage.DBProof, error) {
	quote, err := w.client.MintQuote(ctx, &nodepb.MintQuoteRequest{Unit: uint32(unit), Amount: amount})
	if err != nil {
		return "", nil, err
	}

	for quote.State == uint32(ecash.MintQuoteUnpaid) {
		select {
		case <-ctx.Done():
			return quote.PaymentRequest, nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
		quote, err = w.client.MintQuoteState(ctx, &nodepb.MintQuoteStateRequest{QuoteId: quote.Id})
		if err != nil {
			return "", nil, err
		}
	}

	proofs, err := w.claimMint(ctx, unit, quote.Id, amount)
	return quote.PaymentRequest, proofs, err
}

func (w *Wallet) claimMint(ctx context.Context, unit crypto.Unit, quoteId string, amount uint64) ([]storage.DBProof, error) {
	keyset, err := w.activeKeyset(ctx, unit)
	if err != nil {
		return nil, err
	}
	outputs, pending, start, err := w.blindedOutputs(keyset.Id, crypto.Split(amount))
	if err != nil {
		return nil, err
	}

	resp, err := w.client.Mint(ctx, &nodepb.MintRequest{QuoteId: quoteId, Outputs: outputs})
	if err != nil {
		return nil, err
	}
	keys, err := w.keysetPublicKeys(ctx, keyset.Id)
	if err != nil {
		return nil, err
	}
	proofs, err := unblindProofs(keyset.Id, pending, resp.Signatures, keys)
	if err != nil {
		return nil, err
	}
	for i := range proofs {
		proofs[i].NodeURL = w.nodeURL
		proofs[i].Unit = unit
	}
	if err := w.commitClaimedProofs(keyset.Id, start, len(outputs), proofs); err != nil {
		return nil, err
	}
	return proofs, nil
}

// Balance sums unspent proof amounts for unit.
func (w *Wallet) Balance(unit crypto.Unit) (uint64, error) {
	proofs, err := w.db.GetProofs(w.nodeURL, unit)
	if err != nil {
		return 0, err
	}
	var total uint64
	for _, p := range proofs {
		total += p.Amount
	}
	return total, nil
}

// selectProofs greedily picks the smallest set of owned proofs whose sum
// is >= amount, largest-first, which minimizes proof count at the cost of
// occasionally overshooting (the overshoot becomes change via Swap).
func selectProofs(proofs []storage.DBProof, amount uint64) ([]storage.DBProof, uint64, bool) {
	sorted := append([]storage.DBProof(nil), proofs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Amount > sorted[j].Amount })

	var selected []storage.DBProof
	var total uint64
	for _, p := range sorted {
		if total >= amount {
			break
		}
		selected = append(selected, p)
		total += p.Amount
	}
	return selected, total, total >= amount
}

// Send selects owned proofs covering amount, swaps them at the node for
// exact-amount outputs plus change, and returns a transferable WAD holding
// the send portion. Grounded on the teacher's wallet.Wallet.Send, which
// performs the same swap-for-privacy step before handing proofs to a
// recipient.
func (w *Wallet) Send(ctx context.Context, unit crypto.Unit, amount uint64) (string, error) {
	owned, err := w.db.GetProofs(w.nodeURL, unit)
	if err != nil {
		return "", err
	}
	inputs, total, ok := selectProofs(owned, amount)
	if !ok {
		return "", ErrInsufficientBalance
	}

	keyset, err := w.activeKeyset(ctx, unit)
	if err != nil {
		return "", err
	}
	fee := (uint64(keyset.InputFeePpk)*uint64(len(inputs)) + 999) / 1000
	change := total - amount - fee

	sendAmounts := crypto.Split(amount)
	changeAmounts := crypto.Split(change)
	allOutputs, allPending, start, err := w.blindedOutputs(keyset.Id, append(sendAmounts, changeAmounts...))
	if err != nil {
		return "", err
	}

	wireInputs, err := proofsToWire(inputs)
	if err != nil {
		return "", err
	}
	resp, err := w.client.Swap(ctx, &nodepb.SwapRequest{Inputs: wireInputs, Outputs: allOutputs})
	if err != nil {
		return "", err
	}
	keys, err := w.keysetPublicKeys(ctx, keyset.Id)
	if err != nil {
		return "", err
	}
	claimed, err := unblindProofs(keyset.Id, allPending, resp.Signatures, keys)
	if err != nil {
		return "", err
	}
	for i := range claimed {
		claimed[i].NodeURL = w.nodeURL
		claimed[i].Unit = unit
	}

	sendProofs := claimed[:len(sendAmounts)]
	changeProofs := claimed[len(sendAmounts):]

	spentYs := make([]string, len(inputs))
	for i, p := range inputs {
		spentYs[i] = p.Y
	}
	if err := w.db.DeleteProofs(spentYs); err != nil {
		return "", err
	}
	if err := w.commitClaimedProofs(keyset.Id, start, len(allOutputs), changeProofs); err != nil {
		return "", err
	}

	ecashProofs := make(ecash.Proofs, len(sendProofs))
	for i, p := range sendProofs {
		ecashProofs[i] = ecash.Proof{Amount: p.Amount, KeysetId: p.KeysetId, Secret: p.Secret, C: p.C}
	}
	wad, err := ecash.NewWAD(w.nodeURL, unit.String(), "", ecashProofs)
	if err != nil {
		return "", err
	}
	return wad.String(), nil
}

// Receive decodes a WAD and swaps its proofs for freshly blinded ones of
// this wallet's own, claiming the value and breaking the sender's ability
// to track the proofs it handed over.
func (w *Wallet) Receive(ctx context.Context, wad string) (uint64, error) {
	w_, err := ecash.WadFromString(wad)
	if err != nil {
		return 0, err
	}
	if w_.NodeURL != w.nodeURL {
		return 0, fmt.Errorf("wallet: wad is from a different node (%s)", w_.NodeURL)
	}
	unit, err := crypto.UnitFromString(w_.Unit)
	if err != nil {
		return 0, err
	}
	incoming := w_.ProofsFlat()
	total, err := incoming.Amount(), error(nil)
	if err != nil {
		return 0, err
	}

	keyset, err := w.activeKeyset(ctx, unit)
	if err != nil {
		return 0, err
	}
	fee := (uint64(keyset.InputFeePpk)*uint64(len(incoming)) + 999) / 1000
	if total <= fee {
		return 0, fmt.Errorf("wallet: wad value does not cover the input fee")
	}

	outputs, pending, start, err := w.blindedOutputs(keyset.Id, crypto.Split(total-fee))
	if err != nil {
		return 0, err
	}

	dbProofs := make([]storage.DBProof, len(incoming))
	for i, p := range incoming {
		dbProofs[i] = storage.DBProof{Amount: p.Amount, KeysetId: p.KeysetId, Secret: p.Secret, C: p.C}
	}
	wireInputs, err := proofsToWire(dbProofs)
	if err != nil {
		return 0, err
	}

	resp, err := w.client.Swap(ctx, &nodepb.SwapRequest{Inputs: wireInputs, Outputs: outputs})
	if err != nil {
		return 0, err
	}
	keys, err := w.keysetPublicKeys(ctx, keyset.Id)
	if err != nil {
		return 0, err
	}
	claimed, err := unblindProofs(keyset.Id, pending, resp.Signatures, keys)
	if err != nil {
		return 0, err
	}
	for i := range claimed {
		claimed[i].NodeURL = w.nodeURL
		claimed[i].Unit = unit
	}
	if err := w.commitClaimedProofs(keyset.Id, start, len(outputs), claimed); err != nil {
		return 0, err
	}
	return total - fee, nil
}

// Melt pays a settlement request out of owned proofs.
func (w *Wallet) Melt(ctx context.Context, unit crypto.Unit, request string) error {
	quote, err := w.client.MeltQuote(ctx, &nodepb.MeltQuoteRequest{Unit: uint32(unit), Request: request})
	if err != nil {
		return err
	}

	owned, err := w.db.GetProofs(w.nodeURL, unit)
	if err != nil {
		return err
	}
	needed := quote.Amount + quote.FeeReserve
	inputs, _, ok := selectProofs(owned, needed)
	if !ok {
		return ErrInsufficientBalance
	}

	wireInputs, err := proofsToWire(inputs)
	if err != nil {
		return err
	}
	if _, err := w.client.Melt(ctx, &nodepb.MeltRequest{QuoteId: quote.Id, Inputs: wireInputs}); err != nil {
		return err
	}

	spentYs := make([]string, len(inputs))
	for i, p := range inputs {
		spentYs[i] = p.Y
	}
	return w.db.DeleteProofs(spentYs)
}

func (w *Wallet) Close() error { return w.db.Close() }
