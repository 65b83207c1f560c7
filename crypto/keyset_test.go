package crypto

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
)

func testMaster(t *testing.T) *hdkeychain.ExtendedKey {
	t.Helper()
	mnemonic := "half depart obvious quality work element tank gorilla view sugar picture humble"
	seed := bip39.NewSeed(mnemonic, "")
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}
	return master
}

func TestGenerateKeysetTableSize(t *testing.T) {
	master := testMaster(t)

	ks, err := GenerateKeyset(master, Sat, 0, 10, 0)
	if err != nil {
		t.Fatal(err)
	}

	if len(ks.Keys) != 10 {
		t.Fatalf("expected 10 keys, got %d", len(ks.Keys))
	}
	for i := 0; i < 10; i++ {
		amount := uint64(1) << uint(i)
		if _, ok := ks.Keys[amount]; !ok {
			t.Errorf("missing key for amount %d", amount)
		}
	}
}

func TestGenerateKeysetRejectsOversizedMaxOrder(t *testing.T) {
	master := testMaster(t)

	if _, err := GenerateKeyset(master, Sat, 0, 65, 0); err == nil {
		t.Fatal("expected an error for max_order > 64")
	}
}

func TestGenerateKeysetDeterministic(t *testing.T) {
	master := testMaster(t)

	ks1, err := GenerateKeyset(master, Sat, 3, 8, 100)
	if err != nil {
		t.Fatal(err)
	}
	ks2, err := GenerateKeyset(master, Sat, 3, 8, 100)
	if err != nil {
		t.Fatal(err)
	}

	if ks1.Id != ks2.Id {
		t.Fatalf("expected the same keyset id for identical derivation inputs, got %q vs %q", ks1.Id, ks2.Id)
	}
}

func TestGenerateKeysetDiffersByUnit(t *testing.T) {
	master := testMaster(t)

	satKs, err := GenerateKeyset(master, Sat, 0, 4, 0)
	if err != nil {
		t.Fatal(err)
	}
	strkKs, err := GenerateKeyset(master, MilliStrk, 0, 4, 0)
	if err != nil {
		t.Fatal(err)
	}

	if satKs.Id == strkKs.Id {
		t.Fatal("expected distinct keyset ids across units at the same index")
	}
}

func TestDeriveKeysetIdFormat(t *testing.T) {
	master := testMaster(t)

	ks, err := GenerateKeyset(master, Sat, 0, 4, 0)
	if err != nil {
		t.Fatal(err)
	}

	if len(ks.Id) != 16 {
		t.Fatalf("expected a 16-character keyset id (version byte + 14 hex chars), got %q (%d chars)", ks.Id, len(ks.Id))
	}
	if ks.Id[:2] != "00" {
		t.Fatalf("expected keyset id to start with version byte 00, got %q", ks.Id)
	}
}
