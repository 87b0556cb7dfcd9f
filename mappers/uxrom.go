package mappers

import "github.com/bdwalton/gintendo/nesrom"

func init() {
	RegisterMapper(2, newUxROM)
}

// uxrom implements UxROM: a 16 KiB bank switchable at 0x8000-0xBFFF,
// selected by the low 4 bits of any write to 0x8000-0xFFFF, with the
// last 16 KiB bank fixed at 0xC000-0xFFFF. CHR is 8 KiB of RAM when the
// header declares no CHR banks; otherwise it is the cartridge's CHR-ROM
// data, and CHR writes are stored into it as well.
type uxrom struct {
	base
	bank uint8
}

func newUxROM(rom *nesrom.ROM) Mapper {
	return &uxrom{base: newBase(2, "UxROM", rom)}
}

func (m *uxrom) lastBankOffset() int {
	return len(m.prg) - prgBankSize
}

func (m *uxrom) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.readPRGRAM(addr)
	case addr >= 0x8000 && addr < 0xC000:
		off := int(m.bank)*prgBankSize + int(addr-0x8000)
		return m.prg[off%len(m.prg)]
	case addr >= 0xC000:
		return m.prg[m.lastBankOffset()+int(addr-0xC000)]
	default:
		return 0
	}
}

func (m *uxrom) WritePRG(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.writePRGRAM(addr, val)
	case addr >= 0x8000:
		m.bank = val & 0x0F
	}
}

func (m *uxrom) ReadCHR(addr uint16) uint8 {
	return m.chr[int(addr)%len(m.chr)]
}

func (m *uxrom) WriteCHR(addr uint16, val uint8) {
	if int(addr) < len(m.chr) {
		m.chr[addr] = val
	}
}

func (m *uxrom) Clone() Mapper {
	return &uxrom{base: m.base.clone(), bank: m.bank}
}
