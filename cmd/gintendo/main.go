// Command gintendo runs an NES ROM through an ebiten window, or into
// the interactive debugger with -debug.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/bdwalton/gintendo/console"
	"github.com/bdwalton/gintendo/nesrom"
	"github.com/bdwalton/gintendo/ppu"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	romFile = flag.String("nes_rom", "", "Path to NES ROM to run.")
	debug   = flag.Bool("debug", false, "Drop into the interactive debugger instead of running the game window.")
)

// Buttons, as bits:
// 0 - A
// 1 - B
// 2 - Select
// 3 - Start
// 4 - Up
// 5 - Down
// 6 - Left
// 7 - Right
var keys = []ebiten.Key{
	ebiten.KeyA,
	ebiten.KeyB,
	ebiten.KeySpace,
	ebiten.KeyEnter,
	ebiten.KeyUp,
	ebiten.KeyDown,
	ebiten.KeyLeft,
	ebiten.KeyRight,
}

// keyboardInput polls ebiten's key state for both controller ports,
// pad 1 from the keyboard and pad 2 permanently unpressed.
type keyboardInput struct{}

func (keyboardInput) Poll(pad int) uint8 {
	if pad != 0 {
		return 0
	}
	var buttons uint8
	for i, key := range keys {
		if ebiten.IsKeyPressed(key) {
			buttons |= 1 << i
		}
	}
	return buttons
}

// game adapts *console.NES to the ebiten.Game interface; the NES runs
// its own goroutine and game.Draw simply blits the latest frame.
type game struct {
	nes    *console.NES
	screen *ebiten.Image
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.Width, ppu.Height
}

func (g *game) Draw(screen *ebiten.Image) {
	g.screen.WritePixels(g.nes.Pixels()[:])
	screen.DrawImage(g.screen, nil)
}

// Update is a no-op: the NES is stepped by its own goroutine via
// console.NES.RunFrame, not by ebiten's tick.
func (g *game) Update() error {
	return nil
}

func main() {
	flag.Parse()

	f, err := os.Open(*romFile)
	if err != nil {
		log.Fatalf("opening %s: %v", *romFile, err)
	}
	defer f.Close()

	rom, err := nesrom.New(f)
	if err != nil {
		log.Fatalf("invalid ROM: %v", err)
	}

	g := &game{screen: ebiten.NewImage(ppu.Width, ppu.Height)}

	nes, err := console.New(rom, keyboardInput{}, nil)
	if err != nil {
		log.Fatalf("building console: %v", err)
	}
	g.nes = nes
	nes.Power()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *debug {
		nes.BIOS(ctx)
		return
	}

	go func() {
		// NTSC delivers a frame every ~16.639 ms (60.0988 Hz); pace
		// RunFrame against a ticker instead of running flat out.
		t := time.NewTicker(time.Duration(float64(time.Second) / 60.0988))
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				nes.RunFrame()
			}
		}
	}()

	ebiten.SetWindowSize(ppu.Width*2, ppu.Height*2)
	ebiten.SetWindowTitle("Gintendo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
