package pioemu

import (
	"errors"
	"testing"
)

func TestEmulate_MissingStopWhenIsValidationError(t *testing.T) {
	_, err := Emulate([]uint16{0x0000}, nil)
	if !errors.Is(err, ErrMissingStopWhen) {
		t.Errorf("err = %v, want ErrMissingStopWhen", err)
	}
}

func TestEmulate_ThresholdOutOfRangeIsValidationError(t *testing.T) {
	cases := []Option{
		WithAutoPush(0),
		WithAutoPush(33),
		WithAutoPull(0),
		WithAutoPull(33),
	}
	for _, opt := range cases {
		_, err := Emulate([]uint16{0x0000}, clockAtLeast(1), opt)
		if !errors.Is(err, ErrInvalidThreshold) {
			t.Errorf("err = %v, want ErrInvalidThreshold", err)
		}
	}
}

func TestEmulate_UndecodableOpcodeEndsSequenceCleanly(t *testing.T) {
	program := []uint16{0xC000} // IRQ family: never decodable.
	seq, err := Emulate(program, clockAtLeast(1))
	if err != nil {
		t.Fatalf("Emulate: %v", err)
	}
	if _, _, ok := seq.Next(); ok {
		t.Error("expected Next to report ok=false for an undecodable opcode")
	}
}

func TestEmulate_InputSourceMasksOnlyInputPins(t *testing.T) {
	// P4: pin_values for input-direction bits should track input_source;
	// output-direction bits are untouched by it.
	program := []uint16{0xE001, 0x0000} // set pins, 1 ; jmp 0 (drives bit 0 high)
	calls := 0
	source := func(State) uint32 {
		calls++
		return 0xFFFFFFFE // every bit except bit 0 high
	}
	initial := NewState(WithPinDirections(0x1)) // bit 0 is output, rest input
	seq, err := Emulate(program, clockAtLeast(2), WithInitialState(initial), WithInputSource(source))
	if err != nil {
		t.Fatalf("Emulate: %v", err)
	}

	// The first cycle's SET overwrites pin_values wholesale; the second
	// cycle (a JMP, which touches no pins) is where the input-injected
	// bits and the program-driven output bit coexist.
	if _, _, ok := seq.Next(); !ok {
		t.Fatal("expected a first cycle")
	}
	_, after, ok := seq.Next()
	if !ok {
		t.Fatal("expected a second cycle")
	}
	if after.PinValues&1 != 1 {
		t.Errorf("output bit 0 should be driven high by the program, got %#x", after.PinValues)
	}
	if after.PinValues&0x2 == 0 {
		t.Errorf("input bit 1 should reflect input_source, got %#x", after.PinValues)
	}
	if calls == 0 {
		t.Error("input source was never called")
	}
}

func TestEmulate_LegacyInputSourceAdapter(t *testing.T) {
	program := []uint16{0x0000} // jmp 0
	var sawClock uint64 = 99
	legacy := func(clock uint64) uint32 {
		sawClock = clock
		return 0
	}
	seq, err := Emulate(program, clockAtLeast(1), WithLegacyInputSource(legacy))
	if err != nil {
		t.Fatalf("Emulate: %v", err)
	}
	if _, _, ok := seq.Next(); !ok {
		t.Fatal("expected a cycle")
	}
	if sawClock != 0 {
		t.Errorf("legacy input source saw clock = %d, want 0", sawClock)
	}
}
