package pioemu

// fifoCapacity is the depth of both the transmit and receive FIFOs on every
// RP2040 state machine.
const fifoCapacity = 4

// FIFO is a fixed-capacity queue of 32-bit words. It is a plain array-backed
// value type rather than a slice so that copying a State by value also
// copies its FIFOs without aliasing the backing storage.
type FIFO struct {
	items [fifoCapacity]uint32
	len   uint8
}

// Len reports the number of words currently queued.
func (f FIFO) Len() int { return int(f.len) }

// Full reports whether the FIFO has reached its capacity.
func (f FIFO) Full() bool { return int(f.len) == fifoCapacity }

// Empty reports whether the FIFO holds no words.
func (f FIFO) Empty() bool { return f.len == 0 }

// PushBack appends a word to the queue. It returns the unchanged FIFO and
// false if the queue is already full.
func (f FIFO) PushBack(v uint32) (FIFO, bool) {
	if f.Full() {
		return f, false
	}
	f.items[f.len] = v
	f.len++
	return f, true
}

// PopFront removes and returns the oldest word. It returns the unchanged
// FIFO and false if the queue is empty.
func (f FIFO) PopFront() (FIFO, uint32, bool) {
	if f.Empty() {
		return f, 0, false
	}
	v := f.items[0]
	for i := 1; i < int(f.len); i++ {
		f.items[i-1] = f.items[i]
	}
	f.len--
	return f, v, true
}

// State is an immutable snapshot of a PIO state machine at one clock tick.
// Every field update used by the emulator produces a new State value; none
// of the With* helpers below mutate their receiver.
type State struct {
	Clock               uint64
	ProgramCounter      uint8
	PinDirections       uint32
	PinValues           uint32
	TransmitFIFO        FIFO
	ReceiveFIFO         FIFO
	InputShiftRegister  ShiftRegister
	OutputShiftRegister ShiftRegister
	XRegister           uint32
	YRegister           uint32
}

// NewState returns the zero-value starting state: clock and PC at 0, both
// shift registers empty, OSR's counter saturated at 32 (nothing pulled in
// yet), matching the reset state of a real RP2040 state machine.
func NewState(opts ...StateOption) State {
	s := State{
		OutputShiftRegister: ShiftRegister{Contents: 0, Counter: 32},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// StateOption customizes a State built by NewState. These mirror the
// original implementation's test-support builders (with_x_register,
// with_pin_values, ...) generalized into functional options so they compose
// with WithInitialState on the public Emulate entry point.
type StateOption func(*State)

// WithClock sets the initial clock value.
func WithClock(clock uint64) StateOption {
	return func(s *State) { s.Clock = clock }
}

// WithProgramCounter sets the initial program counter.
func WithProgramCounter(pc uint8) StateOption {
	return func(s *State) { s.ProgramCounter = pc }
}

// WithPinDirections sets the initial pin direction mask (1 = output).
func WithPinDirections(mask uint32) StateOption {
	return func(s *State) { s.PinDirections = mask }
}

// WithPinValues sets the initial pin value register.
func WithPinValues(values uint32) StateOption {
	return func(s *State) { s.PinValues = values }
}

// WithX sets the initial scratch X register.
func WithX(x uint32) StateOption {
	return func(s *State) { s.XRegister = x }
}

// WithY sets the initial scratch Y register.
func WithY(y uint32) StateOption {
	return func(s *State) { s.YRegister = y }
}

// WithInputShiftRegister sets the initial ISR contents and counter.
func WithInputShiftRegister(r ShiftRegister) StateOption {
	return func(s *State) { s.InputShiftRegister = r }
}

// WithOutputShiftRegister sets the initial OSR contents and counter,
// overriding the empty-OSR default NewState otherwise applies.
func WithOutputShiftRegister(r ShiftRegister) StateOption {
	return func(s *State) { s.OutputShiftRegister = r }
}

// WithTransmitFIFOValues pre-loads the transmit FIFO, in queue order,
// front first. It panics if more than four values are supplied, following
// the panic-on-programmer-error convention.
func WithTransmitFIFOValues(values ...uint32) StateOption {
	return func(s *State) {
		f, ok := fifoFromValues(values)
		if !ok {
			panic("pioemu: transmit FIFO cannot hold more than 4 words")
		}
		s.TransmitFIFO = f
	}
}

// WithReceiveFIFOValues pre-loads the receive FIFO, in queue order, front
// first.
func WithReceiveFIFOValues(values ...uint32) StateOption {
	return func(s *State) {
		f, ok := fifoFromValues(values)
		if !ok {
			panic("pioemu: receive FIFO cannot hold more than 4 words")
		}
		s.ReceiveFIFO = f
	}
}

func fifoFromValues(values []uint32) (FIFO, bool) {
	var f FIFO
	for _, v := range values {
		var ok bool
		f, ok = f.PushBack(v)
		if !ok {
			return f, false
		}
	}
	return f, true
}
