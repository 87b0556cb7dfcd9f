package ppu

import (
	"testing"

	"github.com/bdwalton/gintendo/nesrom"
)

// testCart is a minimal Cartridge stand-in: flat CHR RAM and a fixed
// mirroring mode, with OnScanline counting its calls.
type testCart struct {
	chr       [0x2000]uint8
	mirroring nesrom.Mirroring
	scanlines int
}

func (c *testCart) ReadCHR(addr uint16) uint8 { return c.chr[addr%uint16(len(c.chr))] }
func (c *testCart) WriteCHR(addr uint16, val uint8) { c.chr[addr%uint16(len(c.chr))] = val }
func (c *testCart) Mirroring() nesrom.Mirroring { return c.mirroring }
func (c *testCart) OnScanline() { c.scanlines++ }

func newTestPPU() (*PPU, *testCart) {
	c := &testCart{mirroring: nesrom.MirrorVertical}
	return New(c, nil), c
}

func TestWriteRegPPUCTRL(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteReg(PPUCTRL, 0x03)
	if got := p.t.nametableX(); got != 1 {
		t.Errorf("t.nametableX() = %d, want 1", got)
	}
	if got := p.t.nametableY(); got != 1 {
		t.Errorf("t.nametableY() = %d, want 1", got)
	}
}

func TestWriteRegPPUSCROLL(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteReg(PPUSCROLL, 0x7D) // 0111_1101: coarseX=15, fineX=5
	if got := p.t.coarseX(); got != 15 {
		t.Errorf("t.coarseX() = %d, want 15", got)
	}
	if got := p.x; got != 5 {
		t.Errorf("x = %d, want 5", got)
	}
	if !p.w {
		t.Fatalf("w latch should be set after first PPUSCROLL write")
	}

	p.WriteReg(PPUSCROLL, 0x5E) // 0101_1110: coarseY=11, fineY=6
	if got := p.t.coarseY(); got != 11 {
		t.Errorf("t.coarseY() = %d, want 11", got)
	}
	if got := p.t.fineY(); got != 6 {
		t.Errorf("t.fineY() = %d, want 6", got)
	}
	if p.w {
		t.Fatalf("w latch should clear after second PPUSCROLL write")
	}
}

func TestWriteRegPPUADDR(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteReg(PPUADDR, 0x3F)
	p.WriteReg(PPUADDR, 0x10)
	if p.v.data != 0x3F10 {
		t.Errorf("v = %#x, want 0x3F10", p.v.data)
	}
	if p.w {
		t.Fatalf("w latch should clear after second PPUADDR write")
	}
}

// TestReadRegPPUSTATUSClearsVBlankAndLatch is testable property #6.
func TestReadRegPPUSTATUSClearsVBlankAndLatch(t *testing.T) {
	p, _ := newTestPPU()
	p.status |= statusVBlank
	p.w = true

	got := p.ReadReg(PPUSTATUS)
	if got&statusVBlank == 0 {
		t.Errorf("ReadReg(PPUSTATUS) = %#x, want VBlank bit set in the returned value", got)
	}
	if p.status&statusVBlank != 0 {
		t.Errorf("status VBlank bit not cleared after read")
	}
	if p.w {
		t.Errorf("w latch not reset after PPUSTATUS read")
	}
}

// TestPaletteMirroring is testable property #7: writes to $3F10/14/18/1C
// alias $3F00/04/08/0C.
func TestPaletteMirroring(t *testing.T) {
	p, _ := newTestPPU()
	for _, pair := range [][2]uint16{{0x3F10, 0x3F00}, {0x3F14, 0x3F04}, {0x3F18, 0x3F08}, {0x3F1C, 0x3F0C}} {
		p.writePalette(pair[0], 0x2A)
		if got := p.readPalette(pair[1]); got != 0x2A {
			t.Errorf("write to %#x not visible at mirror %#x: got %#x", pair[0], pair[1], got)
		}
		p.writePalette(pair[1], 0x15)
		if got := p.readPalette(pair[0]); got != 0x15 {
			t.Errorf("write to %#x not visible at mirror %#x: got %#x", pair[1], pair[0], got)
		}
	}
}

func TestPaletteGrayscaleMask(t *testing.T) {
	p, _ := newTestPPU()
	p.writePalette(0x3F00, 0x2A)
	p.mask |= maskGrayscale
	if got := p.readPalette(0x3F00); got != 0x2A&0x30 {
		t.Errorf("readPalette with grayscale mask = %#x, want %#x", got, 0x2A&0x30)
	}
}

// TestNMITimingAndFrameCallback is scenario S5: VBlank/NMI are raised
// at scanline 241 dot 1, and the frame callback fires exactly once per
// 341*262-dot frame (testable property #4).
func TestNMITimingAndFrameCallback(t *testing.T) {
	c := &testCart{mirroring: nesrom.MirrorVertical}
	frames := 0
	p := New(c, func(px *[Width * Height * 4]byte) { frames++ })
	p.ctrl |= ctrlNMIEnable

	dots := 341 * 262
	for i := 0; i < dots; i++ {
		p.Step()
	}

	if frames != 1 {
		t.Errorf("frame callback fired %d times over one frame, want 1", frames)
	}
	if !p.TakeNMI() {
		t.Errorf("TakeNMI() = false, want true after a full frame with NMI enabled")
	}
	if p.TakeNMI() {
		t.Errorf("TakeNMI() should clear the pending flag on first read")
	}
}

func TestVBlankClearedAtPreRender(t *testing.T) {
	p, _ := newTestPPU()
	p.scanline, p.dot = 241, 1
	p.processDot()
	if p.status&statusVBlank == 0 {
		t.Fatalf("VBlank not set at scanline 241 dot 1")
	}

	p.scanline, p.dot = 261, 1
	p.processDot()
	if p.status&statusVBlank != 0 {
		t.Errorf("VBlank not cleared at scanline 261 dot 1")
	}
}

func TestOnScanlineCalledOncePerVisibleLine(t *testing.T) {
	p, c := newTestPPU()
	p.mask |= maskShowBg

	for line := 0; line < 240; line++ {
		p.scanline, p.dot = line, 260
		p.processDot()
	}
	if c.scanlines != 240 {
		t.Errorf("cart.OnScanline called %d times, want 240", c.scanlines)
	}
}
