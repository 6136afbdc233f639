package pioemu

// Emulate is the library's single entry point. It validates opts against
// opcodes, then returns a Sequence that lazily produces one (before, after)
// State pair per clock cycle until stopWhen holds or the program becomes
// undecodable. No cycle is computed until the caller calls Next.
//
// stopWhen is a required argument, not an Option, so the zero-value
// omission error (ErrMissingStopWhen) can only happen if a caller passes
// nil explicitly. Every other knob in spec §6's catalog is an Option.
func Emulate(opcodes []uint16, stopWhen StopWhen, opts ...Option) (*Sequence, error) {
	cfg := defaultConfig()
	cfg.stopWhen = stopWhen
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(len(opcodes)); err != nil {
		return nil, err
	}
	cfg.wrapTop = cfg.resolvedWrapTop(len(opcodes))
	cfg.wrapTopSet = true

	return &Sequence{program: opcodes, cfg: cfg, state: cfg.initialState}, nil
}

// Sequence is a hand-written, cooperatively suspending iterator over
// (before, after) State pairs, per spec §5 and §9's generator contract.
// It holds no goroutine and does no work until Next is called.
type Sequence struct {
	program []uint16
	cfg     Config
	state   State
	done    bool
}

// Next advances the emulation by one clock cycle and reports the
// (before, after) pair. ok is false once stopWhen has been satisfied, once
// the program counter's opcode is undecodable, or after any previous call
// already reported ok == false.
//
// If an InputSource supplied via WithInputSource or WithLegacyInputSource
// panics, that panic propagates out of Next uncaught: Go has no
// recoverable-exception type distinct from panic, so a misbehaving input
// source ends the sequence fatally exactly as spec §7 requires.
func (seq *Sequence) Next() (before, after State, ok bool) {
	if seq.done {
		return State{}, State{}, false
	}
	if int(seq.state.ProgramCounter) >= len(seq.program) {
		seq.done = true
		return State{}, State{}, false
	}

	opcode := seq.program[seq.state.ProgramCounter]
	if seq.cfg.stopWhen(opcode, seq.state) {
		seq.done = true
		return State{}, State{}, false
	}

	before, after, stepped := step(seq.state, seq.cfg, seq.program)
	if !stepped {
		seq.done = true
		return State{}, State{}, false
	}
	seq.state = after
	return before, after, true
}

// State returns the most recently yielded "after" state (or the initial
// state if Next has never been called), letting tooling inspect progress
// without re-deriving it from a Next call's return values.
func (seq *Sequence) State() State { return seq.state }
