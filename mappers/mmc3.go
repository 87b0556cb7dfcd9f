package mappers

import "github.com/bdwalton/gintendo/nesrom"

func init() {
	RegisterMapper(4, newMMC3)
}

// mmc3 implements MMC3: eight bank registers selected through a
// bank-select/bank-data register pair at 0x8000/0x8001, a mirroring
// latch at 0xA000, PRG-RAM enable at 0xA001, and a scanline IRQ counter
// clocked by OnScanline (standing in for the real A12 rising edge).
type mmc3 struct {
	base

	bankSelect uint8
	bankReg    [8]uint8

	prgBankCount uint8
	chrBankCount uint8

	horizontalMirror bool

	irqPeriod   uint8
	irqCounter  uint8
	irqReload   bool
	irqEnabled  bool
	irqPending  bool
}

func newMMC3(rom *nesrom.ROM) Mapper {
	b := newBase(4, "MMC3", rom)
	m := &mmc3{
		base:         b,
		prgBankCount: uint8(len(b.prg) / 0x2000),
		chrBankCount: uint8(len(b.chr) / 0x400),
	}
	return m
}

func (m *mmc3) prgMode() uint8 { return (m.bankSelect >> 6) & 1 }
func (m *mmc3) chrMode() uint8 { return (m.bankSelect >> 7) & 1 }

func (m *mmc3) Mirroring() nesrom.Mirroring {
	if m.base.mirroring == nesrom.MirrorFourScreen {
		return nesrom.MirrorFourScreen
	}
	if m.horizontalMirror {
		return nesrom.MirrorHorizontal
	}
	return nesrom.MirrorVertical
}

func (m *mmc3) prgBank8K(n uint8) int {
	if m.prgBankCount == 0 {
		return 0
	}
	return int(n%m.prgBankCount) * 0x2000
}

func (m *mmc3) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.readPRGRAM(addr)
	case addr >= 0x8000:
		return m.prg[m.prgOffset(addr)%len(m.prg)]
	default:
		return 0
	}
}

func (m *mmc3) prgOffset(addr uint16) int {
	secondToLast := m.prgBank8K(m.prgBankCount - 2)
	last := m.prgBank8K(m.prgBankCount - 1)

	switch {
	case addr < 0xA000: // 0x8000-0x9FFF
		if m.prgMode() == 0 {
			return m.prgBank8K(m.bankReg[6]) + int(addr-0x8000)
		}
		return secondToLast + int(addr-0x8000)
	case addr < 0xC000: // 0xA000-0xBFFF: always R7
		return m.prgBank8K(m.bankReg[7]) + int(addr-0xA000)
	case addr < 0xE000: // 0xC000-0xDFFF
		if m.prgMode() == 0 {
			return secondToLast + int(addr-0xC000)
		}
		return m.prgBank8K(m.bankReg[6]) + int(addr-0xC000)
	default: // 0xE000-0xFFFF: always last bank
		return last + int(addr-0xE000)
	}
}

func (m *mmc3) WritePRG(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.writePRGRAM(addr, val)
		return
	case addr < 0x8000:
		return
	}

	switch addr & 0xE001 {
	case 0x8000:
		m.bankSelect = val
	case 0x8001:
		idx := m.bankSelect & 0x07
		m.bankReg[idx] = val
	case 0xA000:
		m.horizontalMirror = val&1 != 0
	case 0xA001:
		// PRG-RAM write protect/enable: not modeled, PRG-RAM is
		// always readable and writable.
	case 0xC000:
		m.irqPeriod = val
	case 0xC001:
		m.irqReload = true
		m.irqCounter = 0
	case 0xE000:
		m.irqEnabled = false
		m.irqPending = false
	case 0xE001:
		m.irqEnabled = true
	}
}

func (m *mmc3) chrBank1K(n uint8) int {
	if m.chrBankCount == 0 {
		return 0
	}
	return int(n%m.chrBankCount) * 0x400
}

func (m *mmc3) chrOffset(addr uint16) int {
	// Mode 0: 0x0000-0x0FFF = R0,R1 (2 KiB each, low bit of the
	// register ignored); 0x1000-0x1FFF = R2..R5 (1 KiB each).
	// Mode 1 swaps the two halves.
	a := addr
	if m.chrMode() == 1 {
		a ^= 0x1000
	}

	switch {
	case a < 0x0800:
		return m.chrBank1K(m.bankReg[0]&^1) + int(a)
	case a < 0x1000:
		return m.chrBank1K(m.bankReg[1]&^1) + int(a-0x0800)
	case a < 0x1400:
		return m.chrBank1K(m.bankReg[2]) + int(a-0x1000)
	case a < 0x1800:
		return m.chrBank1K(m.bankReg[3]) + int(a-0x1400)
	case a < 0x1C00:
		return m.chrBank1K(m.bankReg[4]) + int(a-0x1800)
	default:
		return m.chrBank1K(m.bankReg[5]) + int(a-0x1C00)
	}
}

func (m *mmc3) ReadCHR(addr uint16) uint8 {
	return m.chr[m.chrOffset(addr)%len(m.chr)]
}

func (m *mmc3) WriteCHR(addr uint16, val uint8) {
	off := m.chrOffset(addr) % len(m.chr)
	m.chr[off] = val
}

// OnScanline clocks the IRQ counter, invoked once per visible scanline
// at the PPU's A12-rising-edge proxy.
func (m *mmc3) OnScanline() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqPeriod
		m.irqReload = false
	} else {
		m.irqCounter--
	}

	if m.irqCounter == 0 && m.irqEnabled {
		m.irqPending = true
	}
}

func (m *mmc3) IRQPending() bool { return m.irqPending }
func (m *mmc3) ClearIRQ() { m.irqPending = false }

func (m *mmc3) Clone() Mapper {
	nm := *m
	nm.base = m.base.clone()
	return &nm
}
