package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
)

func TestHashToCurveIsOnCurveAndDeterministic(t *testing.T) {
	messages := [][]byte{
		[]byte("test_message"),
		[]byte(""),
		bytes.Repeat([]byte{0x00}, 32),
		bytes.Repeat([]byte{0xff}, 32),
	}

	for _, msg := range messages {
		p1 := HashToCurve(msg)
		p2 := HashToCurve(msg)
		if !p1.IsEqual(p2) {
			t.Errorf("HashToCurve(%x) is not deterministic", msg)
		}
		if !p1.IsOnCurve() {
			t.Errorf("HashToCurve(%x) returned a point not on the curve", msg)
		}
	}
}

func TestHashToCurveDomainSeparated(t *testing.T) {
	// Tagging means this must differ from a bare sha256(message)-derived point;
	// the old untagged NUT-00 test vector must NOT reproduce here.
	msg, _ := hex.DecodeString("0000000000000000000000000000000000000000000000000000000000000000")
	untaggedVector := "0266687aadf862bd776c8fc18b8e9f8e20089714856ee233b3902a591d0d5f2925"

	p := HashToCurve(msg)
	got := hex.EncodeToString(p.SerializeCompressed())
	if got == untaggedVector {
		t.Errorf("HashToCurve produced the untagged NUT-00 vector %q; domain separation tag is not being applied", got)
	}
}

func TestHashToCurveDistinctMessages(t *testing.T) {
	p1 := HashToCurve([]byte("message-one"))
	p2 := HashToCurve([]byte("message-two"))
	if p1.IsEqual(p2) {
		t.Error("distinct messages hashed to the same curve point")
	}
}

func TestBlindMessageDeterministicWithExplicitFactor(t *testing.T) {
	secret := []byte("test_message")
	rbytes, _ := hex.DecodeString("0000000000000000000000000000000000000000000000000000000000000001")

	B_1, r1 := BlindMessage(secret, rbytes)
	B_2, r2 := BlindMessage(secret, rbytes)

	if !B_1.IsEqual(B_2) {
		t.Error("BlindMessage with the same secret and blinding factor produced different blinded messages")
	}
	if !bytes.Equal(r1.Serialize(), r2.Serialize()) {
		t.Error("BlindMessage did not echo back the same blinding factor")
	}
}

func TestBlindMessageSamplesFreshFactorWhenNil(t *testing.T) {
	secret := []byte("test_message")

	B_1, r1 := BlindMessage(secret, nil)
	B_2, r2 := BlindMessage(secret, nil)

	if bytes.Equal(r1.Serialize(), r2.Serialize()) {
		t.Error("BlindMessage with nil blinding factor produced the same factor twice; expected a fresh sample")
	}
	if B_1.IsEqual(B_2) {
		t.Error("BlindMessage with nil blinding factor produced the same blinded message twice")
	}
}

func TestSignBlindedMessage(t *testing.T) {
	secret := []byte("test_message")
	rbytes, _ := hex.DecodeString("0000000000000000000000000000000000000000000000000000000000000001")
	B_, _ := BlindMessage(secret, rbytes)

	mintKeyBytes, _ := hex.DecodeString("0000000000000000000000000000000000000000000000000000000000000001")
	k, _ := btcec.PrivKeyFromBytes(mintKeyBytes)

	// k == 1 means C_ must equal B_ itself.
	C_ := SignBlindedMessage(B_, k)
	if !C_.IsEqual(B_) {
		t.Error("signing with k=1 should return the blinded message unchanged")
	}
}

func TestUnblindAndVerifyRoundTrip(t *testing.T) {
	secret := []byte("test_message")
	rbytes, _ := hex.DecodeString("0000000000000000000000000000000000000000000000000000000000000002")

	khex, _ := hex.DecodeString("7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f")
	k, _ := btcec.PrivKeyFromBytes(khex)
	K := k.PubKey()

	B_, r := BlindMessage(secret, rbytes)
	C_ := SignBlindedMessage(B_, k)
	C := UnblindSignature(C_, r, K)

	if !Verify(secret, k, C) {
		t.Error("failed verification of a correctly unblinded signature")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	secret := []byte("test_message")
	wrongSecret := []byte("not_the_secret")
	rhex, _ := hex.DecodeString("0000000000000000000000000000000000000000000000000000000000000002")

	B_, r := BlindMessage(secret, rhex)

	khex, _ := hex.DecodeString("0000000000000000000000000000000000000000000000000000000000000001")
	k, _ := btcec.PrivKeyFromBytes(khex)
	K := k.PubKey()

	C_ := SignBlindedMessage(B_, k)
	C := UnblindSignature(C_, r, K)

	if Verify(wrongSecret, k, C) {
		t.Error("verification succeeded against the wrong secret")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	secret := []byte("test_message")
	rhex, _ := hex.DecodeString("0000000000000000000000000000000000000000000000000000000000000002")

	B_, r := BlindMessage(secret, rhex)

	khex, _ := hex.DecodeString("0000000000000000000000000000000000000000000000000000000000000001")
	k, _ := btcec.PrivKeyFromBytes(khex)
	K := k.PubKey()

	otherKeyHex, _ := hex.DecodeString("0000000000000000000000000000000000000000000000000000000000000003")
	otherKey, _ := btcec.PrivKeyFromBytes(otherKeyHex)

	C_ := SignBlindedMessage(B_, k)
	C := UnblindSignature(C_, r, K)

	if Verify(secret, otherKey, C) {
		t.Error("verification succeeded against the wrong signing key")
	}
}
