package pantry

import (
	"reflect"
	"testing"
)

func TestDefaultBasics(t *testing.T) {
	b := DefaultBasics()
	if !reflect.DeepEqual(b.Names(), DefaultBasicNames) {
		t.Errorf("DefaultBasics() = %v, want %v", b.Names(), DefaultBasicNames)
	}
}

func TestBasicsAddIsIdempotent(t *testing.T) {
	b := NewBasics("Salz")
	b = b.Add("Salz").Add(" Salz ").Add("")
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}

func TestBasicsRemoveAbsentIsNoop(t *testing.T) {
	b := NewBasics("Salz", "Pfeffer")
	got := b.Remove("Zimt")
	if !reflect.DeepEqual(got.Names(), []string{"Salz", "Pfeffer"}) {
		t.Errorf("Remove(absent) = %v", got.Names())
	}
}

func TestBasicsRoundTrip(t *testing.T) {
	orig := DefaultBasics()
	got := orig.Add("Zimt").Remove("Zimt")
	if !reflect.DeepEqual(got.Names(), orig.Names()) {
		t.Errorf("round trip = %v, want %v", got.Names(), orig.Names())
	}
}

func TestBasicsAreValues(t *testing.T) {
	orig := NewBasics("Salz")
	_ = orig.Add("Pfeffer")
	_ = orig.Remove("Salz")
	if !reflect.DeepEqual(orig.Names(), []string{"Salz"}) {
		t.Errorf("original mutated: %v", orig.Names())
	}

	names := orig.Names()
	names[0] = "Zucker"
	if !orig.Contains("Salz") {
		t.Error("Names() must return a copy")
	}
}
