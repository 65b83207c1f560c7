package mint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// requestHash is a deterministic structural hash over a request's ordered
// fields, used as the idempotency cache key for swap and mint; Melt neither
// reads nor writes the cache, so a replayed melt is not answered from it.
// Grounded on
// the supplemented feature in SPEC_FULL.md §C (the original's per-route
// request-hash replay cache): encoding/json already serializes struct
// fields in declaration order, so two calls with the same request value
// hash identically regardless of slice/map iteration order at the call
// site, so long as the request type's fields are ordered deterministically
// (true for every *Request type in this package).
func requestHash(route string, request any) (string, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return "", err
	}
	h := sha256.Sum256(append([]byte(route+":"), body...))
	return hex.EncodeToString(h[:]), nil
}

// SwapRequestHash, MintRequestHash, and MeltRequestHash let a caller
// recompute the idempotency key for a request it already submitted, so it
// can call Acknowledge without the node having to echo the hash back in
// every response. Only swap and mint responses are cached, so a
// MeltRequestHash has no cache entry to acknowledge.
func SwapRequestHash(req SwapRequest) (string, error) { return requestHash("swap", req) }
func MintRequestHash(req MintRequest) (string, error) { return requestHash("mint", req) }
func MeltRequestHash(req MeltRequest) (string, error) { return requestHash("melt", req) }
