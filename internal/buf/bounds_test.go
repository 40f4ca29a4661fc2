package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Error("MaxInt + 1 should overflow")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Error("MinInt - 1 should overflow")
	}
	if got, ok := AddOverflowSafe(40, 2); !ok || got != 42 {
		t.Errorf("AddOverflowSafe(40, 2) = (%d, %v)", got, ok)
	}
}

func TestSliceAndHas(t *testing.T) {
	b := make([]byte, 10)

	if s, ok := Slice(b, 2, 5); !ok || len(s) != 5 {
		t.Errorf("Slice(2, 5) = (%v, %v)", s, ok)
	}
	if _, ok := Slice(b, 8, 5); ok {
		t.Error("Slice past end should fail")
	}
	if _, ok := Slice(b, -1, 2); ok {
		t.Error("negative offset should fail")
	}
	if _, ok := Slice(b, 2, -1); ok {
		t.Error("negative length should fail")
	}
	if !Has(b, 0, 10) || Has(b, 0, 11) {
		t.Error("Has bounds wrong")
	}
}
