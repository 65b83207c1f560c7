package ecash

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// WadPrefix identifies this system's compact wallet bundle wire format.
// Deliberately not "cashuB": this is not the cashu protocol, and a wallet
// must never be able to mistake a WAD for a cashu TokenV4 or vice versa.
const WadPrefix = "paynetB"

var (
	ErrUnsupportedWadFormat = errors.New("ecash: unsupported wad format")
	ErrEmptyWadSegment      = errors.New("ecash: empty wad segment")
)

// CompactProof is a proof with its amount-ordering-friendly terse encoding:
// keyset id lives one level up, grouped in CompactKeysetProofs.
type CompactProof struct {
	Amount uint64 `cbor:"a"`
	Secret string `cbor:"s"`
	C      []byte `cbor:"c"`
}

type CompactKeysetProofs struct {
	KeysetId []byte         `cbor:"i"`
	Proofs   []CompactProof `cbor:"p"`
}

// WAD is a self-contained, transferable bundle of proofs from one node.
type WAD struct {
	NodeURL string                `cbor:"m"`
	Unit    string                `cbor:"u"`
	Memo    string                `cbor:"d,omitempty"`
	Proofs  []CompactKeysetProofs `cbor:"t"`
}

// NewWAD packages proofs (already grouped by keyset) into a WAD for the
// given node and unit.
func NewWAD(nodeURL, unit string, memo string, proofs Proofs) (*WAD, error) {
	grouped := make(map[string][]CompactProof)
	order := make([]string, 0)
	for _, p := range proofs {
		cBytes, err := hex.DecodeString(p.C)
		if err != nil {
			return nil, fmt.Errorf("ecash: invalid proof C: %w", err)
		}
		if _, ok := grouped[p.KeysetId]; !ok {
			order = append(order, p.KeysetId)
		}
		grouped[p.KeysetId] = append(grouped[p.KeysetId], CompactProof{
			Amount: p.Amount,
			Secret: p.Secret,
			C:      cBytes,
		})
	}

	w := &WAD{NodeURL: nodeURL, Unit: unit, Memo: memo}
	for _, keysetId := range order {
		idBytes, err := hex.DecodeString(keysetId)
		if err != nil {
			return nil, fmt.Errorf("ecash: invalid keyset id: %w", err)
		}
		w.Proofs = append(w.Proofs, CompactKeysetProofs{KeysetId: idBytes, Proofs: grouped[keysetId]})
	}
	return w, nil
}

// ProofsFlat flattens the WAD back into the wallet's Proof representation.
func (w *WAD) ProofsFlat() Proofs {
	out := make(Proofs, 0)
	for _, group := range w.Proofs {
		keysetId := hex.EncodeToString(group.KeysetId)
		for _, p := range group.Proofs {
			out = append(out, Proof{
				Amount:   p.Amount,
				KeysetId: keysetId,
				Secret:   p.Secret,
				C:        hex.EncodeToString(p.C),
			})
		}
	}
	return out
}

// Value sums the WAD's proof amounts with overflow checking.
func (w *WAD) Value() (uint64, error) {
	var total uint64
	for _, group := range w.Proofs {
		for _, p := range group.Proofs {
			sum := total + p.Amount
			if sum < total {
				return 0, errors.New("ecash: wad value overflow")
			}
			total = sum
		}
	}
	return total, nil
}

// String encodes the WAD as paynetB || base64url(no padding)(CBOR(wad)).
func (w *WAD) String() string {
	data, err := cbor.Marshal(w)
	if err != nil {
		// Marshal of a well-formed WAD (fixed, non-cyclic struct shape)
		// cannot fail; surfacing a malformed literal is preferable to a
		// panic deep in a caller that only expected a string.
		return WadPrefix
	}
	return WadPrefix + base64.RawURLEncoding.EncodeToString(data)
}

// WadFromString decodes a single WAD segment (no ":" splitting).
func WadFromString(s string) (*WAD, error) {
	if s == "" {
		return nil, ErrEmptyWadSegment
	}
	rest, ok := strings.CutPrefix(s, WadPrefix)
	if !ok {
		return nil, ErrUnsupportedWadFormat
	}

	data, err := base64.RawURLEncoding.DecodeString(rest)
	if err != nil {
		// Tolerate a padded encoder on the other end.
		data, err = base64.URLEncoding.DecodeString(rest)
		if err != nil {
			return nil, fmt.Errorf("ecash: invalid base64 wad payload: %w", err)
		}
	}

	var w WAD
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("ecash: invalid cbor wad payload: %w", err)
	}
	return &w, nil
}

// WADs is multiple WADs joined by ":".
type WADs []*WAD

func (ws WADs) String() string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = w.String()
	}
	return strings.Join(parts, ":")
}

// WADsFromString splits on ":" and decodes every segment, rejecting empty
// segments (so leading/trailing/doubled colons fail) and any segment that
// fails to decode.
func WADsFromString(s string) (WADs, error) {
	segments := strings.Split(s, ":")
	wads := make(WADs, 0, len(segments))
	for _, seg := range segments {
		w, err := WadFromString(seg)
		if err != nil {
			return nil, err
		}
		wads = append(wads, w)
	}
	return wads, nil
}
