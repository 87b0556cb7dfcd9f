package ppu

import "github.com/bdwalton/gintendo/nesrom"

// Cartridge is the narrow view of a mapper the PPU depends on: pattern
// table access, nametable mirroring, and the scanline clock MMC3-style
// mappers use to drive their IRQ counter. mappers.Mapper satisfies this
// without the ppu package importing mappers, avoiding a dependency
// cycle between the two (console wires the concrete mapper in).
type Cartridge interface {
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, val uint8)
	Mirroring() nesrom.Mirroring
	OnScanline()
}

// readMemory and writeMemory implement the PPU's internal 14-bit
// address space: pattern tables (cartridge-backed), two logically
// mirrored 1 KiB nametables backed by 2 KiB of PPU RAM, and 32 bytes
// of palette RAM mirrored every 32 bytes from 0x3F00.
func (p *PPU) readMemory(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return p.cart.ReadCHR(addr)
	case addr < 0x3F00:
		return p.nametables[p.mirrorIndex(addr-0x2000)]
	default:
		return p.readPalette(addr)
	}
}

func (p *PPU) writeMemory(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.cart.WriteCHR(addr, val)
	case addr < 0x3F00:
		p.nametables[p.mirrorIndex(addr-0x2000)] = val
	default:
		p.writePalette(addr, val)
	}
}

// mirrorIndex folds a nametable-relative offset (0-0xFFF, spanning the
// 4 logical 1 KiB nametables and their mirror at 0x3000-0x3EFF) down to
// an index into the PPU's physical 2 KiB of nametable RAM.
func (p *PPU) mirrorIndex(rel uint16) uint16 {
	rel %= 0x1000
	switch p.cart.Mirroring() {
	case nesrom.MirrorVertical:
		return rel % 0x800
	case nesrom.MirrorHorizontal:
		return ((rel >> 1) & 0x400) | (rel & 0x3FF)
	case nesrom.MirrorSingleLower:
		return rel % 0x400
	case nesrom.MirrorSingleUpper:
		return 0x400 + rel%0x400
	default: // four-screen: approximated within the 2 KiB RAM available
		return rel % 0x800
	}
}

func paletteIndex(addr uint16) uint16 {
	i := (addr - 0x3F00) % 0x20
	switch i {
	case 0x10, 0x14, 0x18, 0x1C:
		i -= 0x10
	}
	return i
}

func (p *PPU) readPalette(addr uint16) uint8 {
	v := p.palette[paletteIndex(addr)]
	if p.mask&maskGrayscale != 0 {
		v &= 0x30
	}
	return v
}

func (p *PPU) writePalette(addr uint16, val uint8) {
	p.palette[paletteIndex(addr)] = val & 0x3F
}
