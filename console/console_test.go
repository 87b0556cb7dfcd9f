package console

import (
	"bytes"
	"testing"

	"github.com/bdwalton/gintendo/nesrom"
	"github.com/bdwalton/gintendo/ppu"
)

// buildROM assembles a minimal in-memory iNES image, NROM-mapped (32
// KiB PRG, one 8 KiB CHR bank), with prg placed at the start of the
// 0x8000-0xFFFF window and the reset vector set to entry.
func buildROM(t *testing.T, prg []byte, entry uint16) *nesrom.ROM {
	t.Helper()

	bank := make([]byte, 32768)
	copy(bank, prg)
	bank[0x7FFC] = uint8(entry & 0xFF)
	bank[0x7FFD] = uint8(entry >> 8)

	var buf bytes.Buffer
	buf.WriteString("NES\x1a")
	buf.Write([]byte{2, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	buf.Write(bank)
	buf.Write(bytes.Repeat([]byte{0}, 8192))

	rom, err := nesrom.New(&buf)
	if err != nil {
		t.Fatalf("buildROM: %v", err)
	}
	return rom
}

type fakeInput struct{}

func (fakeInput) Poll(pad int) uint8 { return 0 }

func TestNewBuildsAPoweredConsole(t *testing.T) {
	// LDA #$42; STA $0010; loop: JMP loop
	prg := []byte{0xA9, 0x42, 0x8D, 0x10, 0x00, 0x4C, 0x05, 0x80}
	rom := buildROM(t, prg, 0x8000)

	n, err := New(rom, fakeInput{}, nil)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	n.Power()

	if got := n.DisassembleAt(0x8000); got == "" {
		t.Errorf("DisassembleAt(0x8000) returned empty string")
	}
}

func TestNewBuildsMapperFromROMHeader(t *testing.T) {
	prg := []byte{0xEA}
	rom := buildROM(t, prg, 0x8000)

	n, err := New(rom, fakeInput{}, nil)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if got := n.mapper.Name(); got != "NROM-256" {
		t.Errorf("mapper.Name() = %q, want NROM-256", got)
	}
}

func TestStepReturnsInstructionCycles(t *testing.T) {
	prg := []byte{0xEA} // NOP, 2 cycles
	rom := buildROM(t, prg, 0x8000)

	n, err := New(rom, fakeInput{}, nil)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	n.Power()

	cycles := n.Step()
	if cycles != 2 {
		t.Fatalf("Step() = %d cycles, want 2", cycles)
	}
}

func TestRunFrameElapsesAtLeastOneFrameOfCycles(t *testing.T) {
	// tight infinite loop: JMP $8000
	prg := []byte{0x4C, 0x00, 0x80}
	rom := buildROM(t, prg, 0x8000)

	frames := 0
	n, err := New(rom, fakeInput{}, func(px *[ppu.Width * ppu.Height * 4]byte) {
		frames++
	})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	n.Power()

	n.RunFrame()

	if frames == 0 {
		t.Errorf("RunFrame() did not deliver a completed frame via the callback")
	}
}

func TestCloneRunsIndependentlyOfOriginal(t *testing.T) {
	// LDA #$00; loop: LDA $10; CLC; ADC #$01; STA $10; JMP loop
	prg := []byte{
		0xA9, 0x00,
		0xA5, 0x10,
		0x18,
		0x69, 0x01,
		0x85, 0x10,
		0x4C, 0x02, 0x80,
	}
	rom := buildROM(t, prg, 0x8000)

	n, err := New(rom, fakeInput{}, nil)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	n.Power()

	for i := 0; i < 50; i++ {
		n.Step()
	}

	clone := n.Clone()

	for i := 0; i < 50; i++ {
		n.Step()
	}

	if n.DisassembleAt(0x8000) != clone.DisassembleAt(0x8000) {
		t.Fatalf("clone diverged in static disassembly, which should be identical")
	}

	beforeClonePixels := *clone.Pixels()
	for i := 0; i < 500; i++ {
		n.Step()
	}
	afterPixels := *clone.Pixels()
	if beforeClonePixels != afterPixels {
		t.Errorf("stepping the original mutated the clone's frame buffer")
	}
}
