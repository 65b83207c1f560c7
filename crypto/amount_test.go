package crypto

import (
	"reflect"
	"sort"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		amount   uint64
		expected []uint64
	}{
		{0, []uint64{}},
		{1, []uint64{1}},
		{13, []uint64{1, 4, 8}},
		{255, []uint64{1, 2, 4, 8, 16, 32, 64, 128}},
	}

	for _, test := range tests {
		got := Split(test.amount)
		if !reflect.DeepEqual(got, test.expected) && !(len(got) == 0 && len(test.expected) == 0) {
			t.Errorf("Split(%d) = %v, want %v", test.amount, got, test.expected)
		}
	}
}

func TestSplitSumsBackToAmount(t *testing.T) {
	for _, amount := range []uint64{0, 1, 7, 100, 4095, 1 << 20} {
		parts := Split(amount)
		var sum uint64
		for _, p := range parts {
			if !IsPowerOfTwo(p) {
				t.Errorf("Split(%d) produced non-power-of-two denomination %d", amount, p)
			}
			sum += p
		}
		if sum != amount {
			t.Errorf("Split(%d) parts sum to %d", amount, sum)
		}
	}
}

// decomposes asserts parts is exactly the ascending concatenation of
// split(v) for each v in wantValues, proving SplitTargeted actually produced
// the per-value decomposition the spec requires, not just some set of
// powers of two that happen to sum correctly.
func decomposes(t *testing.T, parts []uint64, wantValues []uint64) {
	t.Helper()
	var want []uint64
	for _, v := range wantValues {
		want = append(want, Split(v)...)
	}
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
	if !reflect.DeepEqual(parts, want) && !(len(parts) == 0 && len(want) == 0) {
		t.Errorf("parts = %v, want %v (split of %v)", parts, want, wantValues)
	}
}

func TestSplitTargetedSingleValue(t *testing.T) {
	// total == target: degenerates to a plain split.
	parts, err := SplitTargeted(13, []uint64{13})
	if err != nil {
		t.Fatalf("SplitTargeted: %v", err)
	}
	decomposes(t, parts, []uint64{13})

	// target below total: split(target) ++ split(remainder).
	parts, err = SplitTargeted(13, []uint64{5})
	if err != nil {
		t.Fatalf("SplitTargeted: %v", err)
	}
	decomposes(t, parts, []uint64{5, 8})
}

func TestSplitTargetedValueList(t *testing.T) {
	parts, err := SplitTargeted(20, []uint64{3, 5})
	if err != nil {
		t.Fatalf("SplitTargeted: %v", err)
	}
	decomposes(t, parts, []uint64{3, 5, 12})
}

func TestSplitTargetedNoValues(t *testing.T) {
	parts, err := SplitTargeted(13, nil)
	if err != nil {
		t.Fatalf("SplitTargeted: %v", err)
	}
	decomposes(t, parts, []uint64{13})
}

func TestSplitTargetedRejectsValuesAboveTotal(t *testing.T) {
	if _, err := SplitTargeted(5, []uint64{3, 3}); err != ErrSplitValuesGreater {
		t.Errorf("SplitTargeted(5, [3,3]) err = %v, want ErrSplitValuesGreater", err)
	}
	if _, err := SplitTargeted(5, []uint64{6}); err != ErrSplitValuesGreater {
		t.Errorf("SplitTargeted(5, [6]) err = %v, want ErrSplitValuesGreater", err)
	}
}

func TestAddCheckedOverflow(t *testing.T) {
	max := uint64(1<<63 - 1)
	if _, err := AddChecked(max, 1); err == nil {
		t.Error("expected overflow error adding 1 to max amount")
	}

	if sum, err := AddChecked(2, 3); err != nil || sum != 5 {
		t.Errorf("AddChecked(2,3) = (%d, %v), want (5, nil)", sum, err)
	}
}

func TestSumCheckedOverflow(t *testing.T) {
	amounts := []uint64{1 << 62, 1 << 62, 1 << 62}
	if _, err := SumChecked(amounts); err == nil {
		t.Error("expected overflow summing amounts past the 63-bit ceiling")
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, amount := range []uint64{1, 2, 4, 1024, 1 << 40} {
		if !IsPowerOfTwo(amount) {
			t.Errorf("IsPowerOfTwo(%d) = false, want true", amount)
		}
	}
	for _, amount := range []uint64{0, 3, 5, 6, 100} {
		if IsPowerOfTwo(amount) {
			t.Errorf("IsPowerOfTwo(%d) = true, want false", amount)
		}
	}
}
