package pioemu

import "testing"

// ws2812Program is the WS2812 LED driver bitstream from
// rp2040-pio/piolib/ws2812.go, adapted here as a realistic fixture
// exercising OUT, JMP and side-set together rather than only synthetic
// single-instruction programs.
//
//	.wrap_target
//	out    x, 1            side 0 [2]
//	jmp    !x, 3            side 1 [1]
//	jmp    0                side 1 [4]
//	nop                     side 0 [4]
//	.wrap
var ws2812Program = []uint16{0x6221, 0x1123, 0x1400, 0xa442}

func TestWS2812Program_InvariantsHoldAcrossManyCycles(t *testing.T) {
	initial := NewState(WithTransmitFIFOValues(0xAA, 0x55, 0xFF, 0x00))
	seq, err := Emulate(ws2812Program, clockAtLeast(200),
		WithInitialState(initial),
		WithSideSet(0, 1),
		WithWrap(0, 3),
		WithAutoPull(1),
	)
	if err != nil {
		t.Fatalf("Emulate: %v", err)
	}

	var prevClock uint64
	for i := 0; ; i++ {
		before, after, ok := seq.Next()
		if !ok {
			break
		}
		if before.Clock != prevClock {
			t.Fatalf("cycle %d: before.Clock = %d, want %d", i, before.Clock, prevClock)
		}
		prevClock = after.Clock

		if after.ProgramCounter > 3 {
			t.Fatalf("cycle %d: PC = %d, outside program", i, after.ProgramCounter)
		}
		if after.TransmitFIFO.Len() > 4 || after.ReceiveFIFO.Len() > 4 {
			t.Fatalf("cycle %d: FIFO exceeded capacity", i)
		}
		if after.OutputShiftRegister.Counter > 32 || after.InputShiftRegister.Counter > 32 {
			t.Fatalf("cycle %d: shift register counter out of range", i)
		}
	}
}
