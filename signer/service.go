// Package signer implements the sole holder of the root BIP-32 extended
// private key: it declares keysets, signs blinded messages, and verifies
// proofs, but never the higher-level mint state machine.
package signer

import (
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/paynet-go/paynet/crypto"
	"github.com/paynet-go/paynet/ecash"
)

// Signer is the single in-process owner of the root key. Its keyset cache is
// a map built lazily as keysets are declared, guarded by a reader/many
// writer lock: reads (signing, verifying) take the read lock; declaring a
// keyset takes the write lock.
type Signer struct {
	mu      sync.RWMutex
	master  *hdkeychain.ExtendedKey
	keysets map[string]*crypto.MintKeyset
}

func New(master *hdkeychain.ExtendedKey) *Signer {
	return &Signer{
		master:  master,
		keysets: make(map[string]*crypto.MintKeyset),
	}
}

// DeclareKeyset derives maxOrder keypairs under
// m/129372'/0'/u32(unit)'/index'/amount', computes the keyset id, caches it,
// and returns the pubkey table. Rejects max_order > 64.
func (s *Signer) DeclareKeyset(unit crypto.Unit, index uint32, maxOrder uint8, inputFeePpk uint16) (*crypto.MintKeyset, error) {
	if int(maxOrder) > crypto.MaxOrder {
		return nil, ecash.NewError(ecash.KindStructural, fmt.Sprintf("max_order %d exceeds the %d ceiling", maxOrder, crypto.MaxOrder))
	}

	ks, err := crypto.GenerateKeyset(s.master, unit, index, maxOrder, inputFeePpk)
	if err != nil {
		return nil, ecash.NewError(ecash.KindCrypto, err.Error())
	}

	s.mu.Lock()
	s.keysets[ks.Id] = ks
	s.mu.Unlock()

	return ks, nil
}

// Keyset returns the cached keyset by id, or nil if unknown.
func (s *Signer) Keyset(keysetId string) *crypto.MintKeyset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keysets[keysetId]
}

// SetActive flips a cached keyset's active flag, used by the node on
// rotation. The signer itself never rotates keysets on its own.
func (s *Signer) SetActive(keysetId string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ks, ok := s.keysets[keysetId]
	if !ok {
		return ecash.ErrUnknownKeyset
	}
	ks.Active = active
	return nil
}

// GetRootPubKey returns the root extended key's public key point.
func (s *Signer) GetRootPubKey() (*secp256k1.PublicKey, error) {
	pub, err := s.master.Neuter()
	if err != nil {
		return nil, ecash.NewError(ecash.KindCrypto, err.Error())
	}
	return pub.ECPubKey()
}

// SignBlindedMessages signs a batch of blinded messages, returning
// signatures in input order. Any structural failure aborts the whole batch
// with a field-indexed error.
func (s *Signer) SignBlindedMessages(messages ecash.BlindedMessages) (ecash.BlindedSignatures, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sigs := make(ecash.BlindedSignatures, len(messages))
	for i, m := range messages {
		if !crypto.IsPowerOfTwo(m.Amount) {
			return nil, ecash.NewFieldError(ecash.KindStructural, fmt.Sprintf("messages[%d]", i), "amount is not a power of two")
		}

		ks, ok := s.keysets[m.KeysetId]
		if !ok {
			return nil, ecash.NewFieldError(ecash.KindStructural, fmt.Sprintf("messages[%d]", i), "unknown keyset")
		}

		keypair, ok := ks.Keys[m.Amount]
		if !ok {
			return nil, ecash.NewFieldError(ecash.KindStructural, fmt.Sprintf("messages[%d]", i), "amount exceeds keyset max_order")
		}

		bBytes, err := hex.DecodeString(m.BlindedB)
		if err != nil {
			return nil, ecash.NewFieldError(ecash.KindCrypto, fmt.Sprintf("messages[%d]", i), "invalid blinded point encoding")
		}
		B_, err := secp256k1.ParsePubKey(bBytes)
		if err != nil {
			return nil, ecash.NewFieldError(ecash.KindCrypto, fmt.Sprintf("messages[%d]", i), "invalid blinded point encoding")
		}

		C_ := crypto.SignBlindedMessage(B_, keypair.PrivateKey)
		sigs[i] = ecash.BlindedSignature{
			Amount:   m.Amount,
			KeysetId: m.KeysetId,
			C_:       hex.EncodeToString(C_.SerializeCompressed()),
		}
	}
	return sigs, nil
}

// VerifyProofs checks each proof's signature against the matching keyset
// key, returning the indices of every proof that fails. A structural
// problem (unknown keyset, bad amount) aborts the whole batch instead of
// just flagging that index, since there is then no key to check against.
func (s *Signer) VerifyProofs(proofs ecash.Proofs) (valid bool, invalidIndices []int, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invalidIndices = make([]int, 0)
	for i, p := range proofs {
		if !crypto.IsPowerOfTwo(p.Amount) {
			return false, nil, ecash.NewFieldError(ecash.KindStructural, fmt.Sprintf("proofs[%d]", i), "amount is not a power of two")
		}

		ks, ok := s.keysets[p.KeysetId]
		if !ok {
			return false, nil, ecash.NewFieldError(ecash.KindStructural, fmt.Sprintf("proofs[%d]", i), "unknown keyset")
		}

		keypair, ok := ks.Keys[p.Amount]
		if !ok {
			return false, nil, ecash.NewFieldError(ecash.KindStructural, fmt.Sprintf("proofs[%d]", i), "amount exceeds keyset max_order")
		}

		cBytes, err := hex.DecodeString(p.C)
		if err != nil {
			invalidIndices = append(invalidIndices, i)
			continue
		}
		C, err := secp256k1.ParsePubKey(cBytes)
		if err != nil {
			invalidIndices = append(invalidIndices, i)
			continue
		}

		if !crypto.Verify([]byte(p.Secret), keypair.PrivateKey, C) {
			invalidIndices = append(invalidIndices, i)
		}
	}

	return len(invalidIndices) == 0, invalidIndices, nil
}
