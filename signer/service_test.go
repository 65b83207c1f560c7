package signer

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/tyler-smith/go-bip39"

	"github.com/paynet-go/paynet/crypto"
	"github.com/paynet-go/paynet/ecash"
)

func testSigner(t *testing.T) *Signer {
	t.Helper()
	mnemonic := "half depart obvious quality work element tank gorilla view sugar picture humble"
	seed := bip39.NewSeed(mnemonic, "")
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}
	return New(master)
}

func TestDeclareKeysetRejectsOversizedMaxOrder(t *testing.T) {
	s := testSigner(t)
	if _, err := s.DeclareKeyset(crypto.Sat, 0, 65, 0); err == nil {
		t.Fatal("expected an error declaring a keyset with max_order > 64")
	}
}

func TestDeclareKeysetIsDeterministic(t *testing.T) {
	s1 := testSigner(t)
	s2 := testSigner(t)

	ks1, err := s1.DeclareKeyset(crypto.MilliStrk, 1, 32, 0)
	if err != nil {
		t.Fatal(err)
	}
	ks2, err := s2.DeclareKeyset(crypto.MilliStrk, 1, 32, 0)
	if err != nil {
		t.Fatal(err)
	}

	if ks1.Id != ks2.Id {
		t.Fatalf("expected identical keyset ids from independent processes, got %q vs %q", ks1.Id, ks2.Id)
	}
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	s := testSigner(t)
	ks, err := s.DeclareKeyset(crypto.Sat, 0, 8, 0)
	if err != nil {
		t.Fatal(err)
	}

	secret := "abcdefabcdefabcdefabcdefabcdefabcdefabcdefabcdefabcdefabcdefabc"
	B_, r := crypto.BlindMessage([]byte(secret), nil)

	messages := ecash.BlindedMessages{ecash.NewBlindedMessage(ks.Id, 4, B_)}
	sigs, err := s.SignBlindedMessages(messages)
	if err != nil {
		t.Fatal(err)
	}
	if len(sigs) != 1 {
		t.Fatalf("expected 1 signature, got %d", len(sigs))
	}

	C_Bytes, err := hex.DecodeString(sigs[0].C_)
	if err != nil {
		t.Fatal(err)
	}
	C_, err := secp256k1.ParsePubKey(C_Bytes)
	if err != nil {
		t.Fatal(err)
	}

	K := ks.Keys[4].PublicKey
	C := crypto.UnblindSignature(C_, r, K)

	proof := ecash.Proof{
		Amount:   4,
		KeysetId: ks.Id,
		Secret:   secret,
		C:        hex.EncodeToString(C.SerializeCompressed()),
	}

	valid, invalid, err := s.VerifyProofs(ecash.Proofs{proof})
	if err != nil {
		t.Fatal(err)
	}
	if !valid || len(invalid) != 0 {
		t.Fatalf("expected the proof to verify, got valid=%v invalid=%v", valid, invalid)
	}
}

func TestVerifyProofsFlagsInvalidSignature(t *testing.T) {
	s := testSigner(t)
	ks, err := s.DeclareKeyset(crypto.Sat, 0, 8, 0)
	if err != nil {
		t.Fatal(err)
	}

	badProof := ecash.Proof{
		Amount:   4,
		KeysetId: ks.Id,
		Secret:   "0000000000000000000000000000000000000000000000000000000000000000"[:64],
		C:        hex.EncodeToString(ks.Keys[4].PublicKey.SerializeCompressed()),
	}

	valid, invalid, err := s.VerifyProofs(ecash.Proofs{badProof})
	if err != nil {
		t.Fatal(err)
	}
	if valid || len(invalid) != 1 || invalid[0] != 0 {
		t.Fatalf("expected proof 0 to be flagged invalid, got valid=%v invalid=%v", valid, invalid)
	}
}

func TestSignBlindedMessagesRejectsUnknownKeyset(t *testing.T) {
	s := testSigner(t)
	_, err := s.SignBlindedMessages(ecash.BlindedMessages{{Amount: 1, KeysetId: "00ffffffffffff"}})
	if err == nil {
		t.Fatal("expected an error signing against an unknown keyset")
	}
}
