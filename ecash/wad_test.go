package ecash

import (
	"strings"
	"testing"
)

func testProofs(n int, keysetId string) Proofs {
	proofs := make(Proofs, n)
	for i := 0; i < n; i++ {
		proofs[i] = Proof{
			Amount:   uint64(1) << uint(i),
			KeysetId: keysetId,
			Secret:   "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcd",
			C:        "02949193b97b2798af3d40745176364a0e67da9748b49b2c6bbafe397837e36b09",
		}
	}
	return proofs
}

func TestWadSingleProofRoundTrip(t *testing.T) {
	proofs := testProofs(1, "0001020304050607")
	w, err := NewWAD("https://mint.example.com", "sat", "", proofs)
	if err != nil {
		t.Fatal(err)
	}

	s := w.String()
	if !strings.HasPrefix(s, WadPrefix) {
		t.Fatalf("expected wad to start with %q, got %q", WadPrefix, s)
	}
	if strings.Contains(s, ":") {
		t.Fatal("single wad must not contain ':'")
	}

	decoded, err := WadFromString(s)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.NodeURL != w.NodeURL || decoded.Unit != w.Unit {
		t.Fatalf("round trip mismatch: got %+v, want %+v", decoded, w)
	}

	gotProofs := decoded.ProofsFlat()
	if len(gotProofs) != len(proofs) {
		t.Fatalf("expected %d proofs after round trip, got %d", len(proofs), len(gotProofs))
	}
}

func TestWadMultipleProofsRoundTrip(t *testing.T) {
	proofs := testProofs(3, "0001020304050607")
	w, err := NewWAD("https://mint.example.com", "sat", "", proofs)
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := WadFromString(w.String())
	if err != nil {
		t.Fatal(err)
	}
	value, err := decoded.Value()
	if err != nil {
		t.Fatal(err)
	}
	want, _ := w.Value()
	if value != want {
		t.Fatalf("value mismatch after round trip: got %d want %d", value, want)
	}
}

func TestWadsTwoTokensRoundTrip(t *testing.T) {
	w1, err := NewWAD("https://mint1.example.com", "sat", "", testProofs(1, "0001020304050607"))
	if err != nil {
		t.Fatal(err)
	}
	w2, err := NewWAD("https://mint2.example.com", "sat", "", testProofs(2, "0001020304050607"))
	if err != nil {
		t.Fatal(err)
	}

	wads := WADs{w1, w2}
	serialized := wads.String()
	if strings.Count(serialized, ":") != 1 {
		t.Fatalf("expected exactly one ':' joining two wads, got %q", serialized)
	}

	decoded, err := WADsFromString(serialized)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 wads after round trip, got %d", len(decoded))
	}
}

func TestWadsRejectEmptySegments(t *testing.T) {
	w, err := NewWAD("https://mint.example.com", "sat", "", testProofs(1, "0001020304050607"))
	if err != nil {
		t.Fatal(err)
	}
	s := w.String()

	cases := []string{
		":" + s,
		s + ":",
		s + "::" + s,
	}
	for _, c := range cases {
		if _, err := WADsFromString(c); err == nil {
			t.Errorf("expected an error decoding %q", c)
		}
	}
}

func TestWadRejectsMissingPrefix(t *testing.T) {
	w, err := NewWAD("https://mint.example.com", "sat", "", testProofs(1, "0001020304050607"))
	if err != nil {
		t.Fatal(err)
	}
	withoutPrefix := strings.TrimPrefix(w.String(), WadPrefix)

	if _, err := WadFromString(withoutPrefix); err != ErrUnsupportedWadFormat {
		t.Fatalf("expected ErrUnsupportedWadFormat, got %v", err)
	}
}

func TestWadRejectsInvalidBase64(t *testing.T) {
	if _, err := WadFromString(WadPrefix + "!!!not-base64!!!"); err == nil {
		t.Fatal("expected an error decoding invalid base64 payload")
	}
}

func TestWadsRejectOneInvalidTokenAmongValid(t *testing.T) {
	w, err := NewWAD("https://mint.example.com", "sat", "", testProofs(1, "0001020304050607"))
	if err != nil {
		t.Fatal(err)
	}

	invalid := w.String() + ":invalidtoken"
	if _, err := WADsFromString(invalid); err == nil {
		t.Fatal("expected an error decoding a wad list with one invalid segment")
	}
}
