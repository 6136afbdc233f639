// Command pioview is an interactive waveform viewer for a recorded
// pioemu trace: an ebiten.Game that scrubs through (before, after) pairs
// and draws GPIO pin timelines, the same draw-loop shape as
// IntuitionEngine's ebitenBackend, plus a "copy trace" action that places
// the rendered waveform text on the system clipboard.
package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/rp2040pio/emulator/pioemu"
)

const (
	screenWidth  = 960
	screenHeight = 480
	rowHeight    = 24
	pinCount     = 12
)

type cycle struct {
	Clock     uint64 `json:"clock"`
	PinValues uint32 `json:"pin_values"`
	PC        uint8  `json:"pc"`
}

type game struct {
	cycles []cycle
	cursor int
	width  int
}

func newGame(cycles []cycle) *game {
	return &game{cycles: cycles, width: 400}
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) && g.cursor+1 < len(g.cycles) {
		g.cursor++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) && g.cursor > 0 {
		g.cursor--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyTraceToClipboard()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	lo := g.cursor - g.width
	if lo < 0 {
		lo = 0
	}
	for pin := 0; pin < pinCount; pin++ {
		y := float32(pin * rowHeight)
		mask := uint32(1) << uint(pin)
		for i := lo; i <= g.cursor; i++ {
			high := g.cycles[i].PinValues&mask != 0
			x := float32(i - lo)
			c := color.RGBA{0x30, 0x30, 0x30, 0xff}
			if high {
				c = color.RGBA{0x20, 0xc0, 0x60, 0xff}
			}
			screen.Set(int(x), int(y)+rowHeight/2, c)
		}
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("cycle %d/%d  (←/→ scrub, c copy trace)", g.cursor, len(g.cycles)-1), 0, screenHeight-16)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func (g *game) copyTraceToClipboard() {
	var b strings.Builder
	for _, c := range g.cycles {
		fmt.Fprintf(&b, "%d\t%#08x\tpc=%d\n", c.Clock, c.PinValues, c.PC)
	}
	clipboard.Write(clipboard.FmtText, []byte(b.String()))
}

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: pioview <trace.json>")
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("pioview: %v", err)
	}
	var cycles []cycle
	if err := json.Unmarshal(data, &cycles); err != nil {
		log.Fatalf("pioview: parsing trace: %v", err)
	}
	if err := clipboard.Init(); err != nil {
		log.Printf("pioview: clipboard unavailable: %v", err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("pioview")
	if err := ebiten.RunGame(newGame(cycles)); err != nil {
		log.Fatalf("pioview: %v", err)
	}
}

// stateTrace is a convenience constructor used by pioemu-adjacent tooling
// to build the JSON file pioview consumes directly from a Sequence.
func stateTrace(states []pioemu.State) []cycle {
	out := make([]cycle, len(states))
	for i, s := range states {
		out[i] = cycle{Clock: s.Clock, PinValues: s.PinValues, PC: s.ProgramCounter}
	}
	return out
}
