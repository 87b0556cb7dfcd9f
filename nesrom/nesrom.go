// package nesrom implements support for the NES (iNES 1.0) ROM format.
// https://www.nesdev.org/wiki/INES
package nesrom

import (
	"errors"
	"fmt"
	"io"
)

// ErrBadROM is returned (optionally wrapped with more detail) when an
// image fails iNES validation: too short, missing magic, or truncated
// PRG/CHR data.
var ErrBadROM = errors.New("nesrom: bad rom image")

const (
	trainerSize  = 512
	prgBlockSize = 16384
	chrBlockSize = 8192
)

// ROM is a parsed iNES cartridge image: header metadata plus the raw
// PRG-ROM and CHR-ROM banks. A mapper is constructed from a ROM via
// mappers.Get(rom), which dispatches on rom.MapperNumber().
type ROM struct {
	h       *header
	trainer []byte // if present
	prg     []byte // prgBlockSize * x bytes; x from header
	chr     []byte // chrBlockSize * y bytes; y from header; empty => CHR-RAM
}

// New reads and validates an iNES image from r.
func New(r io.Reader) (*ROM, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("nesrom: reading image: %w", err)
	}

	h, err := parseHeader(raw)
	if err != nil {
		return nil, err
	}

	off := headerSize
	rom := &ROM{h: h}

	if h.hasTrainer() {
		if len(raw) < off+trainerSize {
			return nil, fmt.Errorf("%w: truncated trainer", ErrBadROM)
		}
		rom.trainer = raw[off : off+trainerSize]
		off += trainerSize
	}

	prgLen := int(h.prgBanks) * prgBlockSize
	if prgLen == 0 {
		return nil, fmt.Errorf("%w: zero PRG-ROM banks", ErrBadROM)
	}
	if len(raw) < off+prgLen {
		return nil, fmt.Errorf("%w: truncated PRG-ROM (have %d bytes, want %d)", ErrBadROM, len(raw)-off, prgLen)
	}
	rom.prg = raw[off : off+prgLen]
	off += prgLen

	chrLen := int(h.chrBanks) * chrBlockSize
	if chrLen > 0 {
		if len(raw) < off+chrLen {
			return nil, fmt.Errorf("%w: truncated CHR-ROM (have %d bytes, want %d)", ErrBadROM, len(raw)-off, chrLen)
		}
		rom.chr = raw[off : off+chrLen]
	}

	return rom, nil
}

// PRG returns the raw PRG-ROM bytes, in 16 KiB bank order.
func (r *ROM) PRG() []byte { return r.prg }

// CHR returns the raw CHR-ROM bytes, in 8 KiB bank order. An empty
// slice means the cartridge relies on onboard CHR-RAM.
func (r *ROM) CHR() []byte { return r.chr }

// HasCHRRAM reports whether the cartridge has no CHR-ROM banks.
func (r *ROM) HasCHRRAM() bool { return len(r.chr) == 0 }

// PRGBanks is the number of 16 KiB PRG-ROM banks.
func (r *ROM) PRGBanks() int { return int(r.h.prgBanks) }

// CHRBanks is the number of 8 KiB CHR-ROM banks.
func (r *ROM) CHRBanks() int { return int(r.h.chrBanks) }

// MapperNumber is the iNES mapper number carried in the header.
func (r *ROM) MapperNumber() uint16 { return r.h.mapperNumber() }

// Mirroring is the nametable layout named in the header.
func (r *ROM) Mirroring() Mirroring { return r.h.mirroring() }

// HasBattery reports whether the cartridge carries battery-backed PRG-RAM.
func (r *ROM) HasBattery() bool { return r.h.hasBatteryRAM() }

func (r *ROM) String() string { return r.h.String() }
