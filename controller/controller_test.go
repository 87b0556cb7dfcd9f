package controller

import "testing"

type fakeSource struct {
	state [2]uint8
}

func (f *fakeSource) Poll(pad int) uint8 { return f.state[pad] }

func TestReadShiftsOutBitsLSBFirst(t *testing.T) {
	src := &fakeSource{state: [2]uint8{ButtonA | ButtonStart | ButtonRight, 0}}
	c := New(src, 0)

	c.Write(1) // strobe high: begin latching
	c.Write(0) // falling edge: latch snapshot

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 1}
	for i, w := range want {
		if got := c.Read(); got != w {
			t.Errorf("bit %d = %d, want %d", i, got, w)
		}
	}
}

func TestNoLatchWithoutFallingEdge(t *testing.T) {
	src := &fakeSource{state: [2]uint8{ButtonA, 0}}
	c := New(src, 0)

	c.Write(1) // strobe raised, no falling edge yet
	if got := c.Read(); got != 0 {
		t.Errorf("Read() before falling edge = %d, want 0 (shift register not yet latched)", got)
	}
}

func TestRelatchOnNextFallingEdge(t *testing.T) {
	src := &fakeSource{state: [2]uint8{ButtonA, 0}}
	c := New(src, 0)

	c.Write(1)
	c.Write(0)
	for i := 0; i < 8; i++ {
		c.Read()
	}

	src.state[0] = ButtonB
	c.Write(1)
	c.Write(0)
	if got := c.Read(); got != 0 {
		t.Errorf("first bit after relatch = %d, want 0 (button B is bit 1)", got)
	}
}

func TestPairRoutesPortsIndependently(t *testing.T) {
	src := &fakeSource{state: [2]uint8{ButtonA, ButtonB}}
	pr := NewPair(src)

	pr.Write(1)
	pr.Write(0)

	if got := pr.Read(0); got != 1 {
		t.Errorf("port 0 first bit = %d, want 1 (A pressed)", got)
	}
	if got := pr.Read(1); got != 0 {
		t.Errorf("port 1 first bit = %d, want 0 (A not pressed on pad 1)", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	src := &fakeSource{state: [2]uint8{ButtonA, 0}}
	c := New(src, 0)
	c.Write(1)
	c.Write(0)

	cp := c.Clone()
	cp.Read()
	cp.Read()

	if c.shift == cp.shift {
		t.Errorf("clone shares shift register state with original after divergent reads")
	}
}
