// Command goboy is the presentation harness: it loads a cartridge,
// wires it through the memory map and processor, and drives a window
// with ebiten, the way gintendo.go wires a mapper through console.Bus.
package main

import (
	"flag"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/mhollis/goboycore/cartridge"
	"github.com/mhollis/goboycore/internal/config"
	"github.com/mhollis/goboycore/internal/debugger"
	"github.com/mhollis/goboycore/memmap"
	"github.com/mhollis/goboycore/ppu"

	gbcpu "github.com/mhollis/goboycore/cpu"
)

var (
	romPath = flag.String("rom", "", "Path to a cartridge image to run.")
	scale   = flag.Int("scale", 0, "Override the persisted window scale (0 keeps the saved setting).")
	debug   = flag.Bool("debug", false, "Run the terminal inspector instead of the window.")
)

// Game adapts a Processor/MemoryMap pair to the ebiten.Game interface,
// the same division of responsibility as console.Bus's Update/Draw/
// Layout trio.
type Game struct {
	proc    *gbcpu.Processor
	mm      *memmap.MemoryMap
	cartLen int
}

func (g *Game) Update() error {
	mm := g.mm
	mm.StoreButtons(poll(buttonKeys))
	mm.StoreDPad(poll(dPadKeys))
	g.proc.StartCycle(g.cartLen)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	for _, cp := range g.mm.PPU().Screen() {
		screen.Set(cp.X, cp.Y, color.RGBA{R: cp.Color.R, G: cp.Color.G, B: cp.Color.B, A: 0xFF})
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.Width, ppu.Height
}

func main() {
	flag.Parse()

	cart, err := cartridge.Load(*romPath)
	if err != nil {
		log.Fatalf("couldn't load cartridge: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("couldn't load settings: %v", err)
	}
	if *scale > 0 {
		cfg.RenderScale = *scale
	}

	mm := memmap.New(cart)
	proc := gbcpu.New(mm)

	if *debug {
		if _, err := debugger.New(proc, cart.Len()).Run(); err != nil {
			log.Fatalf("debugger exited with error: %v", err)
		}
		return
	}

	ebiten.SetWindowSize(ppu.Width*cfg.RenderScale, ppu.Height*cfg.RenderScale)
	ebiten.SetWindowTitle("goboycore")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := &Game{proc: proc, mm: mm, cartLen: cart.Len()}
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
