package mint

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/paynet-go/paynet/crypto"
)

// MethodSettings mirrors spec.md §4.3.2 step 1's "min/max" check, per unit
// and per mint/melt route. Grounded on the teacher's MintMethodSettings/
// MeltMethodSettings in mint/config.go, extended from the teacher's
// single-unit (sat) settings to one entry per crypto.Unit.
type MethodSettings struct {
	Enabled   bool
	MinAmount uint64
	MaxAmount uint64
}

type UnitSettings struct {
	Mint MethodSettings
	Melt MethodSettings
}

type Config struct {
	Port            string
	DBPath          string
	SignerAddress   string
	DerivationIndex uint32
	MaxOrder        uint8
	InputFeePpk     uint16
	MintTTLSeconds  int64
	Units           map[crypto.Unit]UnitSettings
}

// UnitEnabled reports whether method is usable at all for a given unit,
// per spec.md §9's duck-typed liquidity source ("feature-flag the compiled
// variants").
func (c Config) UnitEnabled(unit crypto.Unit) bool {
	_, ok := c.Units[unit]
	return ok
}

func GetConfig() Config {
	derivationIdx, err := strconv.ParseUint(envOr("DERIVATION_PATH_IDX", "0"), 10, 32)
	if err != nil {
		log.Fatalf("invalid DERIVATION_PATH_IDX: %v", err)
	}

	maxOrder, err := strconv.ParseUint(envOr("MAX_ORDER", "32"), 10, 8)
	if err != nil || maxOrder == 0 || maxOrder > uint64(crypto.MaxOrder) {
		log.Fatalf("invalid MAX_ORDER (must be 1..%d): %v", crypto.MaxOrder, err)
	}

	inputFeePpk, err := strconv.ParseUint(envOr("INPUT_FEE_PPK", "0"), 10, 16)
	if err != nil {
		log.Fatalf("invalid INPUT_FEE_PPK: %v", err)
	}

	mintTTL, err := strconv.ParseInt(envOr("MINT_QUOTE_TTL_SECONDS", "3600"), 10, 64)
	if err != nil {
		log.Fatalf("invalid MINT_QUOTE_TTL_SECONDS: %v", err)
	}

	units := make(map[crypto.Unit]UnitSettings)
	for _, name := range strings.Split(envOr("ENABLED_UNITS", "sat"), ",") {
		unit, err := crypto.UnitFromString(strings.TrimSpace(name))
		if err != nil {
			log.Fatalf("invalid entry in ENABLED_UNITS: %v", err)
		}
		units[unit] = UnitSettings{
			Mint: MethodSettings{Enabled: true, MinAmount: 0, MaxAmount: maxAmountEnv("MINTING_MAX_AMOUNT")},
			Melt: MethodSettings{Enabled: true, MinAmount: 0, MaxAmount: maxAmountEnv("MELTING_MAX_AMOUNT")},
		}
	}

	return Config{
		Port:            os.Getenv("NODE_PORT"),
		DBPath:          os.Getenv("NODE_DB_PATH"),
		SignerAddress:   os.Getenv("SIGNER_ADDRESS"),
		DerivationIndex: uint32(derivationIdx),
		MaxOrder:        uint8(maxOrder),
		InputFeePpk:     uint16(inputFeePpk),
		MintTTLSeconds:  mintTTL,
		Units:           units,
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func maxAmountEnv(key string) uint64 {
	v, ok := os.LookupEnv(key)
	if !ok {
		return 0
	}
	amount, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return amount
}
