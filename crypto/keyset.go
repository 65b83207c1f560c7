package crypto

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"sort"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// purposeIndex is the hardened BIP-32 purpose level every keyset and wallet
// secret derivation path starts from, keeping this system's keys out of any
// other protocol's derivation tree rooted at the same seed.
const purposeIndex = hdkeychain.HardenedKeyStart + 129372

// coinTypeIndex is fixed at 0: this system does not distinguish testnet vs
// mainnet derivation, unlike on-chain wallets.
const coinTypeIndex = hdkeychain.HardenedKeyStart + 0

type MintKeyset struct {
	Id                string
	Unit              Unit
	Active            bool
	DerivationPathIdx uint32
	Keys              map[uint64]KeyPair
	InputFeePpk       uint16
}

type KeyPair struct {
	PrivateKey *secp256k1.PrivateKey
	PublicKey  *secp256k1.PublicKey
}

// DeriveKeysetPath walks m/129372'/0'/u32(unit)'/index' from the root
// extended key. The amount level is derived separately per key, one
// hardened child per denomination.
func DeriveKeysetPath(master *hdkeychain.ExtendedKey, unit Unit, index uint32) (*hdkeychain.ExtendedKey, error) {
	purpose, err := master.Derive(purposeIndex)
	if err != nil {
		return nil, err
	}

	coinType, err := purpose.Derive(coinTypeIndex)
	if err != nil {
		return nil, err
	}

	unitPath, err := coinType.Derive(hdkeychain.HardenedKeyStart + unit.DerivationIndex())
	if err != nil {
		return nil, err
	}

	keysetPath, err := unitPath.Derive(hdkeychain.HardenedKeyStart + index)
	if err != nil {
		return nil, err
	}

	return keysetPath, nil
}

// GenerateKeyset derives maxOrder keypairs (amounts 2^0..2^(maxOrder-1))
// under m/129372'/0'/u32(unit)'/index'/amount' and computes the keyset's id.
// maxOrder must be in 1..MaxOrder; any other value returns an error (the
// signer's DeclareKeyset also rejects oversized values before calling this).
func GenerateKeyset(master *hdkeychain.ExtendedKey, unit Unit, index uint32, maxOrder uint8, inputFeePpk uint16) (*MintKeyset, error) {
	if maxOrder == 0 || int(maxOrder) > MaxOrder {
		return nil, fmt.Errorf("crypto: max_order %d out of range (1..%d)", maxOrder, MaxOrder)
	}

	keys := make(map[uint64]KeyPair, maxOrder)

	keysetPath, err := DeriveKeysetPath(master, unit, index)
	if err != nil {
		return nil, err
	}

	pks := make(map[uint64]*secp256k1.PublicKey, maxOrder)
	for i := 0; i < int(maxOrder); i++ {
		amount := uint64(1) << uint(i)
		amountPath, err := keysetPath.Derive(hdkeychain.HardenedKeyStart + uint32(i))
		if err != nil {
			return nil, err
		}

		privKey, err := amountPath.ECPrivKey()
		if err != nil {
			return nil, err
		}
		pubKey, err := amountPath.ECPubKey()
		if err != nil {
			return nil, err
		}

		keys[amount] = KeyPair{PrivateKey: privKey, PublicKey: pubKey}
		pks[amount] = pubKey
	}
	keysetId := DeriveKeysetId(pks)

	return &MintKeyset{
		Id:                keysetId,
		Unit:              unit,
		Active:            true,
		DerivationPathIdx: index,
		Keys:              keys,
		InputFeePpk:       inputFeePpk,
	}, nil
}

type PublicKeys map[uint64]*secp256k1.PublicKey

// MarshalJSON emits keys sorted by amount, matching the canonical ordering
// used when deriving the keyset id.
func (pks PublicKeys) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	amounts := make([]uint64, len(pks))
	i := 0
	for k := range pks {
		amounts[i] = k
		i++
	}
	slices.Sort(amounts)

	for j, amount := range amounts {
		if j != 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(amount)
		if err != nil {
			return nil, err
		}
		buf.WriteByte('"')
		buf.Write(key)
		buf.WriteByte('"')
		buf.WriteByte(':')

		pubkey := hex.EncodeToString(pks[amount].SerializeCompressed())
		val, err := json.Marshal(pubkey)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (pks PublicKeys) UnmarshalJSON(data []byte) error {
	var tempKeys map[uint64]string
	if err := json.Unmarshal(data, &tempKeys); err != nil {
		return err
	}

	for amount, key := range tempKeys {
		keyBytes, err := hex.DecodeString(key)
		if err != nil {
			return err
		}
		publicKey, err := secp256k1.ParsePubKey(keyBytes)
		if err != nil {
			return fmt.Errorf("invalid public key: %v", err)
		}
		pks[amount] = publicKey
	}
	return nil
}

// DeriveKeysetId returns the string ID derived from the amount-keyed
// keyset:
//   - sort public keys by their amount in ascending order
//   - concatenate all compressed public keys into one byte slice
//   - sha256 the concatenation
//   - take the first 14 hex characters of the digest
//   - prefix with the keyset ID version byte ("00")
func DeriveKeysetId(keyset PublicKeys) string {
	type pubkey struct {
		amount uint64
		pk     *secp256k1.PublicKey
	}
	pubkeys := make([]pubkey, len(keyset))
	i := 0
	for amount, key := range keyset {
		pubkeys[i] = pubkey{amount, key}
		i++
	}
	sort.Slice(pubkeys, func(i, j int) bool {
		return pubkeys[i].amount < pubkeys[j].amount
	})

	keys := make([]byte, 0, len(pubkeys)*33)
	for _, key := range pubkeys {
		keys = append(keys, key.pk.SerializeCompressed()...)
	}
	hash := sha256.New()
	hash.Write(keys)

	return "00" + hex.EncodeToString(hash.Sum(nil))[:14]
}

// PublicKeys returns the keyset's public keys as an amount-keyed map.
func (ks *MintKeyset) PublicKeys() PublicKeys {
	pubkeys := make(map[uint64]*secp256k1.PublicKey, len(ks.Keys))
	for amount, key := range ks.Keys {
		pubkeys[amount] = key.PublicKey
	}
	return pubkeys
}

// WalletKeyset is the wallet-side record of a node's published keyset: no
// private keys, just what is needed to blind outputs and verify inputs.
type WalletKeyset struct {
	Id          string
	MintURL     string
	Unit        Unit
	Active      bool
	PublicKeys  map[uint64]*secp256k1.PublicKey
	Counter     uint32
	InputFeePpk uint16
}

type walletKeysetTemp struct {
	Id          string
	MintURL     string
	Unit        string
	Active      bool
	PublicKeys  map[uint64][]byte
	Counter     uint32
	InputFeePpk uint16
}

func (wk *WalletKeyset) MarshalJSON() ([]byte, error) {
	temp := &walletKeysetTemp{
		Id:      wk.Id,
		MintURL: wk.MintURL,
		Unit:    wk.Unit.String(),
		Active:  wk.Active,
		PublicKeys: func() map[uint64][]byte {
			m := make(map[uint64][]byte)
			for k, v := range wk.PublicKeys {
				m[k] = v.SerializeCompressed()
			}
			return m
		}(),
		Counter:     wk.Counter,
		InputFeePpk: wk.InputFeePpk,
	}

	return json.Marshal(temp)
}

func (wk *WalletKeyset) UnmarshalJSON(data []byte) error {
	temp := &walletKeysetTemp{}

	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}

	unit, err := UnitFromString(temp.Unit)
	if err != nil {
		return err
	}

	wk.Id = temp.Id
	wk.MintURL = temp.MintURL
	wk.Unit = unit
	wk.Active = temp.Active
	wk.Counter = temp.Counter
	wk.InputFeePpk = temp.InputFeePpk

	wk.PublicKeys = make(map[uint64]*secp256k1.PublicKey)
	for k, v := range temp.PublicKeys {
		kp, err := secp256k1.ParsePubKey(v)
		if err != nil {
			return err
		}

		wk.PublicKeys[k] = kp
	}

	return nil
}
