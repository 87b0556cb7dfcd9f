// Package ppu implements the 2C02 picture processing unit: background
// and sprite rendering driven dot-by-dot in lockstep with the CPU at a
// fixed 3:1 clock ratio, register access at 0x2000-0x2007/0x4014, and
// the NMI/frame-buffer handoff the console scheduler polls each step.
package ppu

// Display resolution in pixels.
const (
	Width  = 256
	Height = 240
)

// FrameCallback receives a pointer to the PPU's own pixel buffer (RGBA,
// Width*Height*4 bytes) once per frame, at dot 0 of scanline 240. The
// pointer is borrowed: callers that need to keep the pixels past the
// callback's return must copy them.
type FrameCallback func(pixels *[Width * Height * 4]byte)

// PPU is the 2C02. Zero value is not usable; construct with New.
type PPU struct {
	cart    Cartridge
	onFrame FrameCallback

	ctrl, mask, status uint8
	oamAddr            uint8
	primaryOAM         [256]uint8
	secondary          [8]secondarySlot

	v, t loopy
	x    uint8
	w    bool

	readBuffer  uint8
	lastWritten uint8

	nametables [2048]uint8
	palette    [32]uint8

	scanline int
	dot      int
	frameOdd bool

	nmiPending bool

	ntByte, atByte, bgLowByte, bgHighByte uint8
	bgShiftLow, bgShiftHigh               uint16
	atShiftLow, atShiftHigh               uint8
	atLatchLow, atLatchHigh               uint8

	pixels [Width * Height * 4]byte
}

// New constructs a PPU bound to cart. onFrame may be nil.
func New(cart Cartridge, onFrame FrameCallback) *PPU {
	return &PPU{cart: cart, onFrame: onFrame}
}

// Power resets the PPU to its post-power-on state.
func (p *PPU) Power() {
	*p = PPU{cart: p.cart, onFrame: p.onFrame}
}

// Step advances the PPU by one dot.
func (p *PPU) Step() {
	p.processDot()
	p.advanceDot()
}

func (p *PPU) advanceDot() {
	p.dot++
	if p.scanline == 261 && p.dot == 340 && p.frameOdd && p.renderingEnabled() {
		p.dot = 341
	}
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > 261 {
			p.scanline = 0
			p.frameOdd = !p.frameOdd
		}
	}
}

func (p *PPU) processDot() {
	if p.scanline == 241 && p.dot == 1 {
		p.status |= statusVBlank
		if p.ctrl&ctrlNMIEnable != 0 {
			p.nmiPending = true
		}
	}
	if p.scanline == 240 && p.dot == 0 && p.onFrame != nil {
		p.onFrame(&p.pixels)
	}
	if p.scanline == 261 && p.dot == 1 {
		p.status &^= statusVBlank | statusSprite0Hit | statusSpriteOverflow
	}

	visibleOrPrerender := p.scanline < 240 || p.scanline == 261
	if !visibleOrPrerender {
		return
	}

	fetching := (p.dot >= 1 && p.dot <= 256) || (p.dot >= 321 && p.dot <= 336)
	if fetching {
		if p.renderingEnabled() {
			p.shiftBackground()
		}
		switch p.dot % 8 {
		case 1:
			p.reloadShifters()
			p.ntByte = p.fetchNTByte()
		case 3:
			p.atByte = p.fetchATByte()
		case 5:
			p.bgLowByte = p.fetchBGLow()
		case 7:
			p.bgHighByte = p.fetchBGHigh()
		case 0:
			if p.renderingEnabled() {
				p.v.incrementCoarseX()
			}
		}
	}

	if p.scanline < 240 && p.dot >= 1 && p.dot <= 256 {
		p.renderPixel()
	}

	if p.dot == 256 && p.renderingEnabled() {
		p.v.incrementY()
	}
	if p.dot == 257 {
		if p.renderingEnabled() {
			p.v.copyHorizontal(&p.t)
		}
		p.evaluateSprites()
	}
	if p.dot == 321 {
		p.fetchSpritePatterns()
	}
	if p.scanline == 261 && p.dot >= 280 && p.dot <= 304 && p.renderingEnabled() {
		p.v.copyVertical(&p.t)
	}
	if p.dot == 260 && p.scanline < 240 {
		p.cart.OnScanline()
	}
}

// TakeNMI reports and clears a pending NMI request; the console
// scheduler polls this once per step instead of the PPU holding a
// callback into the CPU.
func (p *PPU) TakeNMI() bool {
	v := p.nmiPending
	p.nmiPending = false
	return v
}

// Pixels returns a pointer to the PPU's current frame buffer.
func (p *PPU) Pixels() *[Width * Height * 4]byte {
	return &p.pixels
}

// Clone returns an independent deep copy bound to the same cartridge
// and frame callback (cart itself must be cloned separately by the
// caller and rebound if the clone is to diverge from the original).
func (p *PPU) Clone() *PPU {
	cp := *p
	return &cp
}

// WriteOAMByte writes directly to primary OAM at the current OAM
// address and advances it, used by the $4014 OAM DMA handler.
func (p *PPU) WriteOAMByte(val uint8) {
	p.primaryOAM[p.oamAddr] = val
	p.oamAddr++
}
