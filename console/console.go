// Package console wires the CPU, PPU, cartridge mapper and controller
// ports into a single NES instance and schedules them in lockstep: one
// CPU instruction, then the PPU advanced dot-by-dot at three times the
// CPU's rate, with the PPU's pending-NMI flag and the mapper's pending
// IRQ line polled after every instruction.
package console

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/bdwalton/gintendo/controller"
	"github.com/bdwalton/gintendo/mappers"
	"github.com/bdwalton/gintendo/mos6502"
	"github.com/bdwalton/gintendo/nesrom"
	"github.com/bdwalton/gintendo/ppu"
)

// CyclesPerFrame is the number of CPU cycles in one NTSC video frame
// (341 PPU dots * 262 scanlines / 3).
const CyclesPerFrame = 29781

// InputSource supplies live controller state; see controller.InputSource.
type InputSource = controller.InputSource

// FrameCallback receives the PPU's pixel buffer once per frame.
type FrameCallback = ppu.FrameCallback

// NES is a complete emulated console: CPU, PPU, cartridge and
// controller ports scheduled together.
type NES struct {
	rom    *nesrom.ROM
	mapper mappers.Mapper
	ppu    *ppu.PPU
	cpu    *mos6502.CPU
	input  *controller.Pair
}

// New constructs a console bound to rom, reading controller state from
// input and delivering completed frames to onFrame (which may be nil).
func New(rom *nesrom.ROM, input InputSource, onFrame FrameCallback) (*NES, error) {
	m, err := mappers.Get(rom)
	if err != nil {
		return nil, fmt.Errorf("console: building mapper: %w", err)
	}

	n := &NES{rom: rom, mapper: m, input: controller.NewPair(input)}
	n.ppu = ppu.New(m, onFrame)
	n.cpu = mos6502.New(n.ppu, n.input, m)
	return n, nil
}

// Power resets the console to its post-power-on state.
func (n *NES) Power() {
	n.ppu.Power()
	n.cpu.Power()
}

// Pixels returns the PPU's current frame buffer.
func (n *NES) Pixels() *[ppu.Width * ppu.Height * 4]byte {
	return n.ppu.Pixels()
}

// Step executes exactly one CPU instruction (or interrupt service),
// advances the PPU the matching number of dots, and returns the
// number of CPU cycles it cost.
func (n *NES) Step() int {
	cycles := n.cpu.Step()

	for i := 0; i < cycles*3; i++ {
		n.ppu.Step()
	}

	if n.ppu.TakeNMI() {
		n.cpu.SetNMI()
	}
	n.cpu.SetIRQ(n.mapper.IRQPending())

	return cycles
}

// RunFrame steps the console until at least one full frame's worth of
// CPU cycles (CyclesPerFrame) has elapsed.
func (n *NES) RunFrame() {
	elapsed := 0
	for elapsed < CyclesPerFrame {
		elapsed += n.Step()
	}
}

// DisassembleAt renders the instruction at addr in mnemonic form.
func (n *NES) DisassembleAt(addr uint16) string {
	return n.cpu.DisassembleAt(addr)
}

// Clone returns an independent console sharing no mutable state with
// the original; running one further does not affect the other. Part
// of testable property #5.
func (n *NES) Clone() *NES {
	cp := &NES{
		rom:    n.rom,
		mapper: n.mapper.Clone(),
		input:  n.input.Clone(),
	}
	cp.ppu = n.ppu.Clone()
	cp.cpu = n.cpu.Clone()
	return cp
}

func readAddress(prompt string) uint16 {
	var a uint16
	fmt.Printf(prompt)
	fmt.Scanf("%04x\n", &a)
	return a
}

// BIOS is an interactive debugger REPL, grounded on the CPU's own
// single-instruction BIOS but frame/PPU-aware: stepping and running
// both advance the PPU in lockstep with the CPU.
func (n *NES) BIOS(ctx context.Context) {
	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, syscall.SIGINT, syscall.SIGTERM)

	breaks := make(map[uint16]struct{})

	for {
		fmt.Printf("%s\n\n", n.cpu)
		fmt.Println("(B)reak - add breakpoint")
		fmt.Println("(C)lear - clear breakpoints")
		fmt.Println("(R)un - run to completion")
		fmt.Println("(S)tep - step one instruction")
		fmt.Println("(F)rame - run one full frame")
		fmt.Println("R(e)set - hit the reset button")
		fmt.Println("(M)emory - display a memory range")
		fmt.Println("S(t)ack - show last 3 items on the stack")
		fmt.Println("(I)nstruction - show the instruction at PC")
		fmt.Println("(P)C - set the program counter")
		fmt.Println("(Q)uit - shut down")
		fmt.Printf("Choice: ")

		var in rune
		fmt.Scanf("%c\n", &in)

		switch in {
		case 'b', 'B':
			breaks[readAddress("Breakpoint (eg: ff15): ")] = struct{}{}
		case 'c', 'C':
			breaks = make(map[uint16]struct{})
		case 'p', 'P':
			n.cpu.SetPC(readAddress("Set PC to what address (eg: 0400)?: "))
		case 'q', 'Q':
			return
		case 'r', 'R':
			n.run(ctx, sigQuit, breaks)
		case 's', 'S':
			n.Step()
		case 'f', 'F':
			n.RunFrame()
		case 't', 'T':
			fmt.Println()
			for i := 0; i < 3; i++ {
				m := n.cpu.StackAddr() + uint16(i)
				fmt.Printf("0x%04x: 0x%02x ", m, n.cpu.ReadByte(m))
				if m == 0x01ff {
					break
				}
			}
			fmt.Printf("\n\n")
		case 'i', 'I':
			fmt.Printf("\n%s\n\n", n.cpu.Inst())
		case 'e', 'E':
			n.cpu.Reset()
		case 'm', 'M':
			fmt.Println()
			low := readAddress("Low address (eg f00d): ")
			high := readAddress("High address (eg beef): ")
			fmt.Println()

			x := 1
			for i := low; ; i++ {
				fmt.Printf("0x%04x: 0x%02x ", i, n.cpu.ReadByte(i))
				if x%5 == 0 {
					fmt.Println()
				}
				if i == high || i == math.MaxUint16 {
					break
				}
				x += 1
			}
			fmt.Printf("\n\n")
		}
	}
}

func (n *NES) run(ctx context.Context, sigQuit chan os.Signal, breaks map[uint16]struct{}) {
	cctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-sigQuit:
			cancel()
		case <-cctx.Done():
		}
	}()

	for {
		select {
		case <-cctx.Done():
			return
		default:
		}
		n.Step()
		if _, ok := breaks[n.cpu.PC()]; ok {
			fmt.Printf("Hit breakpoint at 0x%04x\n", n.cpu.PC())
			return
		}
	}
}
