// Package mappers implements and registers the cartridge address-decoding
// circuits ("mappers") referenced numerically by iNES ROM headers.
package mappers

import (
	"errors"
	"fmt"

	"github.com/bdwalton/gintendo/nesrom"
)

// ErrUnsupportedMapper is returned by Get when a ROM names a mapper
// number with no registered factory and no UxROM fallback applies.
var ErrUnsupportedMapper = errors.New("mappers: unsupported mapper")

// Mapper is the shared contract every cartridge variant implements. It
// decodes the CPU's view of cartridge space (0x4020-0xFFFF) and the
// PPU's view of pattern-table space (0x0000-0x1FFF), and may reconfigure
// either mapping as a side effect of a PRG write.
type Mapper interface {
	ID() uint16
	Name() string

	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, val uint8)
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, val uint8)

	// OnScanline is invoked once per visible scanline at the dot
	// standing in for the PPU's A12 rising edge (MMC3's IRQ clock).
	OnScanline()

	Mirroring() nesrom.Mirroring
	IRQPending() bool
	ClearIRQ()

	// Clone returns an independent deep copy of the mapper's state
	// for console.NES.Clone.
	Clone() Mapper
}

// Factory builds a fresh Mapper instance bound to rom. Registered
// factories must not share mutable state across instances; each ROM
// load gets its own mapper.
type Factory func(rom *nesrom.ROM) Mapper

var registry = map[uint16]Factory{}

// RegisterMapper associates a mapper number with a Factory. Called from
// each mapper variant's init().
func RegisterMapper(id uint16, f Factory) {
	if _, ok := registry[id]; ok {
		panic(fmt.Sprintf("mappers: mapper id %d already registered", id))
	}
	registry[id] = f
}

// Get constructs the Mapper named by rom's header mapper number.
// Unknown mapper numbers fall back to UxROM (2); if even that is
// unavailable, Get returns ErrUnsupportedMapper.
func Get(rom *nesrom.ROM) (Mapper, error) {
	id := rom.MapperNumber()
	f, ok := registry[id]
	if !ok {
		if f, ok = registry[2]; !ok {
			return nil, fmt.Errorf("%w: mapper %d", ErrUnsupportedMapper, id)
		}
	}
	return f(rom), nil
}
