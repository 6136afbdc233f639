// Package trace renders a cycle-by-cycle GPIO pin trace as an ANSI
// waveform in a real terminal, the way IntuitionEngine's
// terminal_host.go queries the terminal width before drawing a frame.
package trace

import (
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/rp2040pio/emulator/pioemu"
)

// Recorder accumulates (before, after) pairs from a pioemu.Sequence for
// later rendering. It holds no reference to the Sequence itself: callers
// drive Next() and feed pairs in, keeping the recorder ignorant of the
// emulator's option catalog.
type Recorder struct {
	pins   []uint32
	clocks []uint64
	pcs    []uint8
}

// Record appends one cycle's after-state to the trace.
func (r *Recorder) Record(after pioemu.State) {
	r.pins = append(r.pins, after.PinValues)
	r.clocks = append(r.clocks, after.Clock)
	r.pcs = append(r.pcs, after.ProgramCounter)
}

// Render draws the recorded pins as an ASCII/ANSI level waveform for bits
// [lowPin, lowPin+pinCount) into w. Width is taken from the attached
// terminal via term.GetSize when fd refers to one; callers piping to a
// file can pass a negative fd to fall back to an 80-column default.
func (r *Recorder) Render(w io.Writer, fd int, lowPin, pinCount uint8) error {
	width := 80
	if fd >= 0 {
		if cols, _, err := term.GetSize(fd); err == nil && cols > 0 {
			width = cols
		}
	}

	columns := len(r.pins)
	if max := width - 8; max > 0 && columns > max {
		columns = max
	}

	for bit := lowPin; bit < lowPin+pinCount; bit++ {
		if _, err := fmt.Fprintf(w, "pin%-3d ", bit); err != nil {
			return err
		}
		mask := uint32(1) << bit
		for i := 0; i < columns; i++ {
			if r.pins[i]&mask != 0 {
				if _, err := io.WriteString(w, "\x1b[7m \x1b[0m"); err != nil {
					return err
				}
			} else if _, err := io.WriteString(w, " "); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
