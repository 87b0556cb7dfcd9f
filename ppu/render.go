package ppu

// fetchNTByte reads the nametable byte named by the current v address.
func (p *PPU) fetchNTByte() uint8 {
	addr := 0x2000 | (p.v.data & 0x0FFF)
	return p.readMemory(addr)
}

// fetchATByte reads the attribute byte for v's current tile.
func (p *PPU) fetchATByte() uint8 {
	addr := 0x23C0 | (p.v.data & 0x0C00) | ((p.v.coarseY() >> 2) << 3) | (p.v.coarseX() >> 2)
	return p.readMemory(addr)
}

func (p *PPU) fetchBGLow() uint8 {
	addr := p.backgroundPatternTable() + uint16(p.ntByte)*16 + p.v.fineY()
	return p.readMemory(addr)
}

func (p *PPU) fetchBGHigh() uint8 {
	addr := p.backgroundPatternTable() + uint16(p.ntByte)*16 + p.v.fineY() + 8
	return p.readMemory(addr)
}

// reloadShifters loads the low byte of each background pattern
// shifter and latches the 1-bit attribute values for the tile whose
// fetch just completed.
func (p *PPU) reloadShifters() {
	p.bgShiftLow = (p.bgShiftLow &^ 0x00FF) | uint16(p.bgLowByte)
	p.bgShiftHigh = (p.bgShiftHigh &^ 0x00FF) | uint16(p.bgHighByte)

	// v's coarse X was already incremented past the fetched tile.
	fetchedX := (p.v.coarseX() - 1) & 0x1F
	quadrant := ((p.v.coarseY()>>1)&1)<<1 | ((fetchedX >> 1) & 1)
	p.atLatchLow = (p.atByte >> (quadrant * 2)) & 1
	p.atLatchHigh = (p.atByte >> (quadrant*2 + 1)) & 1
}

func (p *PPU) shiftBackground() {
	p.bgShiftLow <<= 1
	p.bgShiftHigh <<= 1
	p.atShiftLow = (p.atShiftLow << 1) | p.atLatchLow
	p.atShiftHigh = (p.atShiftHigh << 1) | p.atLatchHigh
}

// backgroundPixelComponents returns the 2-bit pattern value and 2-bit
// palette selector for the pixel at the current fine-X offset.
func (p *PPU) backgroundPixelComponents() (pattern, palette uint8) {
	sel := uint16(0x8000) >> p.x
	if p.bgShiftLow&sel != 0 {
		pattern |= 1
	}
	if p.bgShiftHigh&sel != 0 {
		pattern |= 2
	}

	selA := uint8(0x80) >> p.x
	if p.atShiftLow&selA != 0 {
		palette |= 1
	}
	if p.atShiftHigh&selA != 0 {
		palette |= 2
	}
	return pattern, palette
}

// spritePixelComponents scans secondary OAM in priority order (slot 0
// first) and returns the first sprite with an opaque pixel at x.
func (p *PPU) spritePixelComponents(x int) (pattern, palette uint8, behindBackground, isSpriteZero bool) {
	for i := range p.secondary {
		s := &p.secondary[i]
		if s.id == emptySpriteID {
			continue
		}
		if x < int(s.x) || x >= int(s.x)+8 {
			continue
		}

		shift := x - int(s.x)
		if !s.flipH {
			shift = 7 - shift
		}
		lo := (s.dataLow >> shift) & 1
		hi := (s.dataHigh >> shift) & 1
		pat := lo | hi<<1
		if pat == 0 {
			continue
		}
		return pat, s.palette, s.renderP == BACK, s.id == 0
	}
	return 0, 0, false, false
}

// renderPixel computes and writes the output color for the current
// (scanline, dot-1) pixel using the background/sprite mux rules: the
// background wins when the sprite pixel is transparent or behind the
// background and the background pixel is opaque; sprite 0 hit latches
// when both layers are opaque, rendering is fully enabled, and x != 255.
func (p *PPU) renderPixel() {
	x := p.dot - 1

	bgPattern, bgPalette := p.backgroundPixelComponents()
	if !p.showBackground() || (x < 8 && !p.showBgLeft()) {
		bgPattern = 0
	}

	spPattern, spPalette, spBehind, spIsZero := p.spritePixelComponents(x)
	if !p.showSprites() || (x < 8 && !p.showSpritesLeft()) {
		spPattern = 0
	}

	bgOpaque := bgPattern != 0
	spOpaque := spPattern != 0

	if spIsZero && bgOpaque && spOpaque && x != 255 && p.showBackground() && p.showSprites() {
		p.status |= statusSprite0Hit
	}

	var addr uint16
	switch {
	case !bgOpaque && !spOpaque:
		addr = 0x3F00
	case !bgOpaque && spOpaque:
		addr = 0x3F10 + uint16(spPalette)*4 + uint16(spPattern)
	case bgOpaque && !spOpaque:
		addr = 0x3F00 + uint16(bgPalette)*4 + uint16(bgPattern)
	default:
		if spBehind {
			addr = 0x3F00 + uint16(bgPalette)*4 + uint16(bgPattern)
		} else {
			addr = 0x3F10 + uint16(spPalette)*4 + uint16(spPattern)
		}
	}

	c := systemPalette[p.readPalette(addr)&0x3F]
	off := (p.scanline*256 + x) * 4
	p.pixels[off+0] = c[0]
	p.pixels[off+1] = c[1]
	p.pixels[off+2] = c[2]
	p.pixels[off+3] = 0xFF
}
