package wallet

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/paynet-go/paynet/crypto"
	"github.com/paynet-go/paynet/ecash"
	"github.com/paynet-go/paynet/nodepb"
	"github.com/paynet-go/paynet/wallet/storage"
)

// restoreBatchSize and restoreEmptyBatchLimit mirror the teacher's
// wallet/restore.go: scan the deterministic secret space 100 counters at a
// time and give up on a keyset only after 3 consecutive batches come back
// with nothing the node recognizes.
const (
	restoreBatchSize       = 100
	restoreEmptyBatchLimit = 3
)

// restoreOutput is a blinded message built purely from a derived
// secret/blinding factor, with no amount attached: Restore doesn't know
// ahead of time which counters the node actually signed, and the node's
// Restore RPC looks up a blinded point by B_ alone (mint.Mint.Restore keys
// strictly on the blinded point, ignoring amount).
type restoreOutput struct {
	counter uint32
	secret  string
	r       *secp256k1.PrivateKey
}

func deriveRestoreBatch(keysetPath *hdkeychain.ExtendedKey, keysetId string, start uint32, count int) ([]*nodepb.BlindedMessage, []restoreOutput, error) {
	outputs := make([]*nodepb.BlindedMessage, count)
	pending := make([]restoreOutput, count)
	for i := 0; i < count; i++ {
		counter := start + uint32(i)
		secret, err := crypto.DeriveSecret(keysetPath, counter)
		if err != nil {
			return nil, nil, err
		}
		r, err := crypto.DeriveBlindingFactor(keysetPath, counter)
		if err != nil {
			return nil, nil, err
		}
		secretBytes, err := hex.DecodeString(secret)
		if err != nil {
			return nil, nil, err
		}
		B_, _ := crypto.BlindMessage(secretBytes, r.Serialize())

		outputs[i] = &nodepb.BlindedMessage{KeysetId: keysetId, B: B_.SerializeCompressed()}
		pending[i] = restoreOutput{counter: counter, secret: secret, r: r}
	}
	return outputs, pending, nil
}

// Restore recovers proofs for a keyset that this wallet derived but never
// durably recorded (e.g. a crash between Mint/Swap and commitClaimedProofs).
// It walks the deterministic counter space in batches of restoreBatchSize,
// asking the node which of the batch's blinded points it actually signed,
// stopping after restoreEmptyBatchLimit consecutive batches return nothing.
// Recovered signatures are unblinded, checked against the node's spend
// state, and only proofs still Unspent are kept — a proof the node already
// considers spent was claimed and used in some prior session this wallet
// lost track of, and re-saving it would just leave a dead entry on disk.
// Grounded on the teacher's wallet/restore.go loop, adapted to the nodepb
// gRPC surface and this wallet's per-keyset counter (rather than the
// teacher's fresh-wallet-directory, multi-mint restore entrypoint).
func (w *Wallet) Restore(ctx context.Context, unit crypto.Unit) (uint64, error) {
	keysets, err := w.syncKeysets(ctx)
	if err != nil {
		return 0, err
	}

	var recovered uint64
	for i := range keysets {
		ks := keysets[i]
		if ks.Unit != unit {
			continue
		}
		n, err := w.restoreKeyset(ctx, ks)
		if err != nil {
			return recovered, err
		}
		recovered += n
	}
	return recovered, nil
}

func (w *Wallet) restoreKeyset(ctx context.Context, ks storage.DBKeyset) (uint64, error) {
	keysetPath, err := crypto.DeriveSecretPath(w.master, ks.Id)
	if err != nil {
		return 0, err
	}
	keys, err := w.keysetPublicKeys(ctx, ks.Id)
	if err != nil {
		return 0, err
	}

	start, err := w.db.GetCounter(ks.Id)
	if err != nil {
		return 0, err
	}

	var allProofs []storage.DBProof
	var recoveredAmount uint64
	emptyBatches := 0
	cursor := start
	for emptyBatches < restoreEmptyBatchLimit {
		outputs, pending, err := deriveRestoreBatch(keysetPath, ks.Id, cursor, restoreBatchSize)
		if err != nil {
			return 0, err
		}

		resp, err := w.client.Restore(ctx, &nodepb.RestoreRequest{Outputs: outputs})
		if err != nil {
			return 0, err
		}
		if len(resp.Present) != len(outputs) || len(resp.Signatures) != len(outputs) {
			return 0, fmt.Errorf("wallet: node returned a mismatched restore batch")
		}

		proofs, err := unblindRestoredBatch(ks.Id, pending, resp.Present, resp.Signatures, keys)
		if err != nil {
			return 0, err
		}
		cursor += restoreBatchSize

		if len(proofs) == 0 {
			emptyBatches++
			continue
		}
		emptyBatches = 0

		unspent, err := w.keepUnspent(ctx, proofs)
		if err != nil {
			return 0, err
		}
		for i := range unspent {
			unspent[i].NodeURL = w.nodeURL
			unspent[i].Unit = ks.Unit
		}
		allProofs = append(allProofs, unspent...)
		for _, p := range unspent {
			recoveredAmount += p.Amount
		}
	}

	if err := w.commitClaimedProofs(ks.Id, start, int(cursor-start), allProofs); err != nil {
		return 0, err
	}
	return recoveredAmount, nil
}

// unblindRestoredBatch keeps only the entries the node reports Present,
// unblinding each against the amount the node actually signed it with.
func unblindRestoredBatch(keysetId string, pending []restoreOutput, present []bool, sigs []*nodepb.BlindedSignature, keys crypto.PublicKeys) ([]storage.DBProof, error) {
	var out []storage.DBProof
	for i, ok := range present {
		if !ok {
			continue
		}
		sig := sigs[i]
		K, found := keys[sig.Amount]
		if !found {
			return nil, fmt.Errorf("wallet: node signed restored output with an unknown amount %d", sig.Amount)
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
		out = append(out, storage.DBProof{
			Y: y, Amount: sig.Amount, KeysetId: keysetId,
			Secret: pending[i].secret, C: hex.EncodeToString(C.SerializeCompressed()),
		})
	}
	return out, nil
}

// keepUnspent queries the node's spend state for proofs and drops any it
// reports as no longer Unspent.
func (w *Wallet) keepUnspent(ctx context.Context, proofs []storage.DBProof) ([]storage.DBProof, error) {
	ys := make([]string, len(proofs))
	for i, p := range proofs {
		ys[i] = p.Y
	}
	resp, err := w.client.CheckState(ctx, &nodepb.CheckStateRequest{Ys: ys})
	if err != nil {
		return nil, err
	}
	if len(resp.States) != len(proofs) {
		return nil, fmt.Errorf("wallet: node returned %d states for %d proofs", len(resp.States), len(proofs))
	}

	var unspent []storage.DBProof
	for i, state := range resp.States {
		if ecash.ProofState(state) == ecash.Unspent {
			unspent = append(unspent, proofs[i])
		}
	}
	return unspent, nil
}
