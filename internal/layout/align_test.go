package layout

import "testing"

func TestAlignUp(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 0},
		{1, 16},
		{15, 16},
		{16, 16},
		{17, 32},
		{100, 112},
		{4096, 4096},
	}
	for _, c := range cases {
		if got := AlignUp(c.in); got != c.want {
			t.Errorf("AlignUp(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestAligned(t *testing.T) {
	if !Aligned(0) || !Aligned(16) || !Aligned(4096) {
		t.Error("multiples of 16 should be aligned")
	}
	if Aligned(8) || Aligned(17) {
		t.Error("non-multiples of 16 should not be aligned")
	}
}

func TestEvenWords(t *testing.T) {
	if got := EvenWords(5); got != 6 {
		t.Errorf("EvenWords(5) = %d, want 6", got)
	}
	if got := EvenWords(6); got != 6 {
		t.Errorf("EvenWords(6) = %d, want 6", got)
	}
	if got := EvenWords(0); got != 0 {
		t.Errorf("EvenWords(0) = %d, want 0", got)
	}
}

func TestMinBlockCoversLinksAndTags(t *testing.T) {
	// A free block must hold two boundary tags and two list links.
	if MinBlockSize < Overhead+2*WordSize {
		t.Fatalf("MinBlockSize %d below structural minimum", MinBlockSize)
	}
	if !Aligned(MinBlockSize) {
		t.Fatalf("MinBlockSize %d not aligned", MinBlockSize)
	}
}
