package crypto

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// DeriveSecretPath walks m/129372'/0'/idx(keysetId)' from the wallet's
// master key, where idx(keysetId) folds the keyset id's bytes down to a
// value that fits a hardened 31-bit child index.
func DeriveSecretPath(master *hdkeychain.ExtendedKey, keysetId string) (*hdkeychain.ExtendedKey, error) {
	keysetBytes, err := hex.DecodeString(keysetId)
	if err != nil {
		return nil, err
	}
	// Keyset ids are a version byte followed by 7 bytes of hash (8 bytes
	// total); pad on the left so ids shorter than 8 bytes still decode. An
	// odd-length hex id is already rejected by hex.DecodeString above.
	var padded [8]byte
	copy(padded[8-len(keysetBytes):], keysetBytes)
	bigEndianBytes := binary.BigEndian.Uint64(padded[:])
	keysetIdInt := bigEndianBytes % (1<<31 - 1)

	purpose, err := master.Derive(purposeIndex)
	if err != nil {
		return nil, err
	}

	coinType, err := purpose.Derive(coinTypeIndex)
	if err != nil {
		return nil, err
	}

	keysetPath, err := coinType.Derive(hdkeychain.HardenedKeyStart + uint32(keysetIdInt))
	if err != nil {
		return nil, err
	}

	return keysetPath, nil
}

// DeriveBlindingFactor derives the blinding factor r for the given counter:
// m/129372'/0'/idx(keyset_id)'/counter'/1.
func DeriveBlindingFactor(keysetPath *hdkeychain.ExtendedKey, counter uint32) (*secp256k1.PrivateKey, error) {
	counterPath, err := keysetPath.Derive(hdkeychain.HardenedKeyStart + counter)
	if err != nil {
		return nil, err
	}

	rDerivationPath, err := counterPath.Derive(1)
	if err != nil {
		return nil, err
	}

	return rDerivationPath.ECPrivKey()
}

// DeriveSecret derives the hex-encoded secret for the given counter:
// m/129372'/0'/idx(keyset_id)'/counter'/0.
func DeriveSecret(keysetPath *hdkeychain.ExtendedKey, counter uint32) (string, error) {
	counterPath, err := keysetPath.Derive(hdkeychain.HardenedKeyStart + counter)
	if err != nil {
		return "", err
	}

	secretDerivationPath, err := counterPath.Derive(0)
	if err != nil {
		return "", err
	}

	secretKey, err := secretDerivationPath.ECPrivKey()
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(secretKey.Serialize()), nil
}
