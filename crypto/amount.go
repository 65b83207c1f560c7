package crypto

import (
	"errors"
	"math/bits"
	"sort"
)

// ErrAmountOverflow is returned when an amount accumulation would exceed the
// range representable as a signed 63-bit value (2^63-1), the ceiling implied
// by a max_order of 64.
var ErrAmountOverflow = errors.New("crypto: amount overflow")

// MaxOrder bounds a keyset's amount table to the 64 denominations
// 2^0..2^63. The largest of them, 2^63, lies one above the 2^63-1 ceiling
// that AddChecked enforces.
const MaxOrder = 64

// Split decomposes amount into the power-of-two denominations needed to
// represent it, e.g. 13 -> [1, 4, 8].
func Split(amount uint64) []uint64 {
	rv := make([]uint64, 0)
	for pos := 0; amount > 0; pos++ {
		if amount&1 == 1 {
			rv = append(rv, 1<<pos)
		}
		amount >>= 1
	}
	return rv
}

// ErrSplitValuesGreater is returned when the target value(s) passed to
// SplitTargeted exceed the total being split.
var ErrSplitValuesGreater = errors.New("crypto: split target exceeds total")

// SplitTargeted decomposes total into power-of-two denominations that pay
// out values first, in order, and the leftover (total minus the sum of
// values) last: split(values[0]) ++ split(values[1]) ++ ... ++
// split(total-sum(values)), sorted ascending. A single target value T is
// just the one-element case, values = []uint64{T}; the results from both
// are concatenations of independent per-value splits, so one routine
// covers both (crates/nuts/src/amount.rs's SplitTarget::Value and
// SplitTarget::Values are this same shape).
func SplitTargeted(total uint64, values []uint64) ([]uint64, error) {
	sum, err := SumChecked(values)
	if err != nil {
		return nil, err
	}
	if sum > total {
		return nil, ErrSplitValuesGreater
	}

	rv := make([]uint64, 0, MaxOrder)
	for _, v := range values {
		rv = append(rv, Split(v)...)
	}
	rv = append(rv, Split(total-sum)...)

	sort.Slice(rv, func(i, j int) bool { return rv[i] < rv[j] })
	return rv, nil
}

// AddChecked adds b to a, returning ErrAmountOverflow instead of wrapping
// silently when the result would no longer fit the 2^63-1 ceiling that a
// max_order of 64 implies.
func AddChecked(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrAmountOverflow
	}
	if sum > 1<<63-1 {
		return 0, ErrAmountOverflow
	}
	return sum, nil
}

// SumChecked totals amounts with overflow checking at every step.
func SumChecked(amounts []uint64) (uint64, error) {
	var total uint64
	var err error
	for _, a := range amounts {
		total, err = AddChecked(total, a)
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}

// IsPowerOfTwo reports whether amount is a valid single-denomination amount
// (2^0..2^63), i.e. exactly one bit set.
func IsPowerOfTwo(amount uint64) bool {
	return amount != 0 && bits.OnesCount64(amount) == 1
}
