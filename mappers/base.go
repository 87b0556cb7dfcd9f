package mappers

import "github.com/bdwalton/gintendo/nesrom"

const (
	prgRAMSize  = 8192
	chrRAMSize  = 8192
	prgBankSize = 16384
	chrBankSize = 8192
)

// base holds the fields common to every mapper variant: the raw PRG/CHR
// backing arrays, an 8 KiB PRG-RAM window, and the header's nametable
// mirroring mode. Variants embed it and override Mirroring, IRQPending,
// ClearIRQ, and OnScanline where their hardware differs from the
// do-nothing defaults.
type base struct {
	id   uint16
	name string

	prg []byte
	chr []byte // CHR-ROM, or freshly allocated CHR-RAM

	prgRAM [prgRAMSize]byte

	mirroring nesrom.Mirroring
}

func newBase(id uint16, name string, rom *nesrom.ROM) base {
	chr := rom.CHR()
	if rom.HasCHRRAM() {
		chr = make([]byte, chrRAMSize)
	}
	return base{
		id:        id,
		name:      name,
		prg:       rom.PRG(),
		chr:       chr,
		mirroring: rom.Mirroring(),
	}
}

func (b *base) ID() uint16 { return b.id }
func (b *base) Name() string { return b.name }
func (b *base) Mirroring() nesrom.Mirroring { return b.mirroring }
func (b *base) OnScanline() {}
func (b *base) IRQPending() bool { return false }
func (b *base) ClearIRQ() {}

func (b *base) readPRGRAM(addr uint16) uint8 {
	return b.prgRAM[addr-0x6000]
}

func (b *base) writePRGRAM(addr uint16, val uint8) {
	b.prgRAM[addr-0x6000] = val
}

func (b *base) clone() base {
	nb := *b
	nb.prg = b.prg // shared, read-only ROM data
	nb.chr = append([]byte(nil), b.chr...)
	nb.prgRAM = b.prgRAM
	return nb
}
