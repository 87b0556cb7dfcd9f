package ppu

import "testing"

func TestLoopyGet(t *testing.T) {
	cases := []struct {
		data                           uint16
		wantCoarseX, wantCoarseY       uint16
		wantNameTableX, wantNameTableY uint16
		wantFineY                      uint16
	}{
		{0b0000_0000_0000_0000, 0, 0, 0, 0, 0},
		{0b0111_1011_1001_1000, 0b11000, 0b11100, 0, 1, 0b111},
		{0b0011_0111_1001_0111, 0b10111, 0b11100, 1, 0, 0b011},
		{0b0011_1111_1001_0111, 0b10111, 0b11100, 1, 1, 0b011},
		{0b0011_0011_1011_0111, 0b10111, 0b11101, 0, 0, 0b011},
		{0b0011_0000_0001_0111, 0b10111, 0, 0, 0, 0b011},
	}

	for i, tc := range cases {
		l := &loopy{tc.data}

		cx, cy, ntx, nty, fy := l.coarseX(), l.coarseY(), l.nametableX(), l.nametableY(), l.fineY()
		if cx != tc.wantCoarseX || cy != tc.wantCoarseY || ntx != tc.wantNameTableX || nty != tc.wantNameTableY || fy != tc.wantFineY {
			t.Errorf("%d: Got %05b, %05b, %01b, %01b, %03b, wanted %05b, %05b, %01b, %01b, %03b",
				i, cx, cy, ntx, nty, fy, tc.wantCoarseX, tc.wantCoarseY, tc.wantNameTableX, tc.wantNameTableY, tc.wantFineY)
		}
	}
}

func TestLoopySetCoarseX(t *testing.T) {
	l := &loopy{0b0011_0111_1001_0111}
	l.setCoarseX(0b11100)
	if got := l.coarseX(); got != 0b11100 {
		t.Errorf("coarseX() = %05b, want %05b", got, 0b11100)
	}
	// Unrelated bits must be untouched.
	if got := l.nametableX(); got != 1 {
		t.Errorf("nametableX() = %d, want 1 (unaffected by setCoarseX)", got)
	}
}

// TestIncrementCoarseXWrap is testable property #3: coarse-X wrap at
// 31 flips bit 10 (the horizontal nametable select) of v.
func TestIncrementCoarseXWrap(t *testing.T) {
	for v := uint16(0); v < 0x8000; v++ {
		l := &loopy{v}
		before := l.data & 0x0400
		l.incrementCoarseX()
		after := l.data & 0x0400

		if l.coarseX() == 0 && (v&0x001F) == 31 {
			if after == before {
				t.Fatalf("v=%#x: coarse-X wrapped 31->0 but nametable bit unchanged", v)
			}
		} else if after != before {
			t.Fatalf("v=%#x: nametable bit flipped without a coarse-X wrap", v)
		}
	}
}

func TestIncrementYCoarseWrap(t *testing.T) {
	cases := []struct {
		coarseY        uint16
		wantCoarseY    uint16
		wantNTYToggled bool
	}{
		{29, 0, true},
		{31, 0, false},
		{10, 11, false},
	}

	for _, tc := range cases {
		l := &loopy{}
		l.setFineY(7)
		l.setCoarseY(tc.coarseY)
		beforeNTY := l.nametableY()

		l.incrementY()

		if got := l.coarseY(); got != tc.wantCoarseY {
			t.Errorf("coarseY %d -> incrementY() = %d, want %d", tc.coarseY, got, tc.wantCoarseY)
		}
		toggled := l.nametableY() != beforeNTY
		if toggled != tc.wantNTYToggled {
			t.Errorf("coarseY %d: nametableY toggled = %v, want %v", tc.coarseY, toggled, tc.wantNTYToggled)
		}
	}
}

func TestIncrementYFineOnly(t *testing.T) {
	l := &loopy{}
	l.setFineY(3)
	l.setCoarseY(5)
	l.incrementY()
	if got := l.fineY(); got != 4 {
		t.Errorf("fineY() = %d, want 4", got)
	}
	if got := l.coarseY(); got != 5 {
		t.Errorf("coarseY() = %d, want unchanged 5", got)
	}
}

func TestLoopyToggleNametableX(t *testing.T) {
	l := &loopy{0}
	l.toggleNametableX()
	if l.nametableX() != 1 {
		t.Errorf("nametableX() = %d, want 1", l.nametableX())
	}
	l.toggleNametableX()
	if l.nametableX() != 0 {
		t.Errorf("nametableX() = %d, want 0", l.nametableX())
	}
}

func TestLoopyToggleNametableY(t *testing.T) {
	l := &loopy{0}
	l.toggleNametableY()
	if l.nametableY() != 1 {
		t.Errorf("nametableY() = %d, want 1", l.nametableY())
	}
}

func TestLoopySetFineY(t *testing.T) {
	l := &loopy{0b0111_1011_1001_1000}
	l.setFineY(0b101)
	if got := l.fineY(); got != 0b101 {
		t.Errorf("fineY() = %03b, want %03b", got, 0b101)
	}
}

func TestCopyHorizontalAndVertical(t *testing.T) {
	v := &loopy{0}
	tr := &loopy{0b0111_1111_1111_1111}

	v.copyHorizontal(tr)
	if v.coarseX() != 0x1F || v.nametableX() != 1 {
		t.Errorf("copyHorizontal did not copy coarse-X/nametable-X bits: %015b", v.data)
	}
	if v.coarseY() != 0 || v.fineY() != 0 {
		t.Errorf("copyHorizontal touched vertical bits: %015b", v.data)
	}

	v2 := &loopy{0}
	v2.copyVertical(tr)
	if v2.coarseY() != 0x1F || v2.nametableY() != 1 || v2.fineY() != 0x7 {
		t.Errorf("copyVertical did not copy fine-Y/coarse-Y/nametable-Y bits: %015b", v2.data)
	}
	if v2.coarseX() != 0 {
		t.Errorf("copyVertical touched coarse-X: %015b", v2.data)
	}
}
