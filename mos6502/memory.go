package mos6502

import "github.com/bdwalton/gintendo/mappers"

// ramSize is the console's internal work RAM; it is mirrored across
// the full 0x0000-0x1FFF window.
const ramSize = 0x0800

// ppuPorts is the narrow view of the PPU the CPU bus needs: register
// access at 0x2000-0x3FFF (mirrored every 8 bytes) and the OAM DMA
// byte stream at 0x4014. Kept as an interface so this package never
// imports ppu directly.
type ppuPorts interface {
	ReadReg(reg uint16) uint8
	WriteReg(reg uint16, val uint8)
	WriteOAMByte(val uint8)
}

// inputPorts is the narrow view of the controller ports the CPU bus
// needs: a shared strobe write and one data bit per port read.
type inputPorts interface {
	Write(val uint8)
	Read(port int) uint8
}

// memory is the NES CPU's full address bus: 2KiB of mirrored work RAM,
// PPU registers, OAM DMA, the controller ports, and cartridge space
// via the mapper.
type memory struct {
	ram   [ramSize]uint8
	ppu   ppuPorts
	input inputPorts
	mapper mappers.Mapper

	// dmaStall is the number of extra CPU cycles owed from the most
	// recent OAM DMA transfer, drained by cpu.Step via takeDMAStall.
	dmaStall int
}

func newMemory(ppu ppuPorts, input inputPorts, m mappers.Mapper) *memory {
	return &memory{ppu: ppu, input: input, mapper: m}
}

func (m *memory) read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return m.ram[addr&0x07FF]
	case addr < 0x4000:
		return m.ppu.ReadReg(0x2000 + addr&7)
	case addr == 0x4016:
		return m.input.Read(0)
	case addr == 0x4017:
		return m.input.Read(1)
	case addr < 0x4020:
		return 0 // other APU/IO registers: not implemented, reads as 0
	default:
		return m.mapper.ReadPRG(addr)
	}
}

// read16 returns the two bytes from memory at addr (lower byte is
// first).
func (m *memory) read16(addr uint16) uint16 {
	lsb := uint16(m.read(addr))
	msb := uint16(m.read(addr + 1))

	return (msb << 8) | lsb
}

func (m *memory) write(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		m.ram[addr&0x07FF] = val
	case addr < 0x4000:
		m.ppu.WriteReg(0x2000+addr&7, val)
	case addr == 0x4014:
		m.oamDMA(val)
	case addr == 0x4016:
		m.input.Write(val)
	case addr == 0x4017:
		// Second controller port shares the strobe line on real
		// hardware; routed through input.Write by the caller wiring
		// both ports to the same Pair, so nothing to do here.
	case addr < 0x4020:
		// other APU/IO registers: not implemented
	default:
		m.mapper.WritePRG(addr, val)
	}
}

// oamDMA pulls 256 bytes starting at page*0x100 and streams them into
// PPU OAM, as triggered by a write to 0x4014. Costs 513 CPU cycles (514
// on an odd CPU cycle), approximated here as a flat 513-cycle stall
// that cpu.Step drains via takeDMAStall and reports as cycles spent.
func (m *memory) oamDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		m.ppu.WriteOAMByte(m.read(base + uint16(i)))
	}
	m.dmaStall += 513
}

// takeDMAStall returns and clears any CPU cycles owed from OAM DMA.
func (m *memory) takeDMAStall() int {
	s := m.dmaStall
	m.dmaStall = 0
	return s
}

// write16 stores val at addr (lower byte is first).
func (m *memory) write16(addr, val uint16) {
	m.write(addr, uint8(val&0x00FF))
	m.write(addr+1, uint8(val>>8))
}
