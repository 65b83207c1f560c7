package crypto

import "testing"

func TestUnitRoundTrip(t *testing.T) {
	for u := range unitTable {
		got, err := UnitFromString(u.String())
		if err != nil {
			t.Fatalf("UnitFromString(%q): %v", u.String(), err)
		}
		if got != u {
			t.Errorf("UnitFromString(%q) = %v, want %v", u.String(), got, u)
		}
	}
}

func TestUnitFromStringUnknown(t *testing.T) {
	if _, err := UnitFromString("not-a-unit"); err == nil {
		t.Error("expected an error for an unknown unit name")
	}
}

func TestUnitAssetIsStableForProcessLifetime(t *testing.T) {
	if Sat.Asset() != "btc" {
		t.Errorf("Sat.Asset() = %q, want btc", Sat.Asset())
	}
	if MilliStrk.Asset() != "strk" {
		t.Errorf("MilliStrk.Asset() = %q, want strk", MilliStrk.Asset())
	}
}
