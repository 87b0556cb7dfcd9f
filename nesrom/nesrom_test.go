package nesrom

import (
	"bytes"
	"errors"
	"testing"
)

// buildImage assembles a minimal in-memory iNES image: header, optional
// trainer, PRG-ROM, CHR-ROM, each block filled with a distinct byte so
// tests can assert on placement rather than just length.
func buildImage(prgBanks, chrBanks uint8, flags6, flags7 byte, trainer bool) []byte {
	var buf bytes.Buffer
	buf.WriteString(magic)
	buf.Write([]byte{prgBanks, chrBanks, flags6, flags7, 0, 0, 0, 0, 0, 0, 0, 0})

	if trainer {
		buf.Write(bytes.Repeat([]byte{0xAA}, trainerSize))
	}
	buf.Write(bytes.Repeat([]byte{0x11}, int(prgBanks)*prgBlockSize))
	buf.Write(bytes.Repeat([]byte{0x22}, int(chrBanks)*chrBlockSize))

	return buf.Bytes()
}

func TestNewValid(t *testing.T) {
	img := buildImage(2, 1, 0x01, 0x00, false)

	rom, err := New(bytes.NewReader(img))
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	if got, want := rom.PRGBanks(), 2; got != want {
		t.Errorf("PRGBanks() = %d, want %d", got, want)
	}
	if got, want := rom.CHRBanks(), 1; got != want {
		t.Errorf("CHRBanks() = %d, want %d", got, want)
	}
	if got, want := len(rom.PRG()), 2*prgBlockSize; got != want {
		t.Errorf("len(PRG()) = %d, want %d", got, want)
	}
	if got, want := len(rom.CHR()), chrBlockSize; got != want {
		t.Errorf("len(CHR()) = %d, want %d", got, want)
	}
	if rom.HasCHRRAM() {
		t.Errorf("HasCHRRAM() = true, want false (chrBanks=1)")
	}
	if got, want := rom.Mirroring(), MirrorVertical; got != want {
		t.Errorf("Mirroring() = %v, want %v", got, want)
	}
}

func TestNewTrainerAndCHRRAM(t *testing.T) {
	img := buildImage(1, 0, flag6Trainer, 0x00, true)

	rom, err := New(bytes.NewReader(img))
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if !rom.HasCHRRAM() {
		t.Errorf("HasCHRRAM() = false, want true (chrBanks=0)")
	}
	if got, want := len(rom.trainer), trainerSize; got != want {
		t.Errorf("len(trainer) = %d, want %d", got, want)
	}
}

func TestNewMapperNumber(t *testing.T) {
	// MMC1 is mapper 1: upper nibble of flags6 is 1, upper nibble of
	// flags7 (with low bits clear, i.e. not NES 2.0) is 0.
	img := buildImage(2, 1, 0x10, 0x00, false)

	rom, err := New(bytes.NewReader(img))
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if got, want := rom.MapperNumber(), uint16(1); got != want {
		t.Errorf("MapperNumber() = %d, want %d", got, want)
	}
}

func TestNewRejectsBadMagic(t *testing.T) {
	img := buildImage(1, 1, 0, 0, false)
	img[0] = 'X'

	if _, err := New(bytes.NewReader(img)); !errors.Is(err, ErrBadROM) {
		t.Errorf("New() error = %v, want wrapping %v", err, ErrBadROM)
	}
}

func TestNewRejectsTruncatedPRG(t *testing.T) {
	img := buildImage(2, 1, 0, 0, false)
	img = img[:len(img)-100] // truncate into the PRG block

	if _, err := New(bytes.NewReader(img)); !errors.Is(err, ErrBadROM) {
		t.Errorf("New() error = %v, want wrapping %v", err, ErrBadROM)
	}
}

func TestNewRejectsZeroPRG(t *testing.T) {
	img := buildImage(0, 1, 0, 0, false)

	if _, err := New(bytes.NewReader(img)); !errors.Is(err, ErrBadROM) {
		t.Errorf("New() error = %v, want wrapping %v", err, ErrBadROM)
	}
}
