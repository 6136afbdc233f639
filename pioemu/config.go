package pioemu

// InputSource samples external GPIO input for one cycle, given the state
// as it stood before that cycle's step. It is the canonical signature; see
// WithLegacyInputSource for an adapter from the older (clock)->uint32 form
// (spec §9 "input-source signature variance").
type InputSource func(State) uint32

// StopWhen is evaluated before each cycle against the opcode about to
// execute and the state about to be consumed. A true result ends the
// sequence without producing that cycle.
type StopWhen func(opcode uint16, state State) bool

// Config collects every knob of the EXTERNAL INTERFACES option catalog.
// It is assembled by functional Options rather than StateMachineConfig's
// setter methods because, unlike a hardware register mirror, Config has no
// bit-packed backing store to mutate in place.
type Config struct {
	stopWhen     StopWhen
	initialState State
	inputSource  InputSource

	autoPush      bool
	autoPull      bool
	pushThreshold uint8
	pullThreshold uint8

	shiftISRRight bool
	shiftOSRRight bool

	sideSetBase     uint8
	sideSetCount    uint8
	sideSetOptional bool

	jmpPin uint8

	wrapTarget uint8
	wrapTop    uint8
	wrapTopSet bool
}

// Option customizes a Config built by Emulate, in the style of the
// teacher's SetWrap/SetInShift/... setters generalized to plain functions.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		initialState:  NewState(),
		pushThreshold: 32,
		pullThreshold: 32,
		shiftISRRight: true,
		shiftOSRRight: true,
	}
}

// WithInitialState overrides the zero-value starting state.
func WithInitialState(s State) Option {
	return func(c *Config) { c.initialState = s }
}

// WithInputSource installs the canonical (State)->uint32 GPIO sampler.
func WithInputSource(src InputSource) Option {
	return func(c *Config) { c.inputSource = src }
}

// WithLegacyInputSource adapts the older (clock uint64)->uint32 input
// source shape. Go's static typing can't distinguish the two signatures
// by reflection the way the original's _normalize_input_source does, so
// callers pick the right constructor explicitly (spec §9).
func WithLegacyInputSource(src func(clock uint64) uint32) Option {
	return func(c *Config) {
		c.inputSource = func(s State) uint32 { return src(s.Clock) }
	}
}

// WithAutoPush enables automatic ISR->receive-FIFO transfer at
// push_threshold bits shifted in, per spec §4.4 step 7.
func WithAutoPush(threshold uint8) Option {
	return func(c *Config) {
		c.autoPush = true
		c.pushThreshold = threshold
	}
}

// WithAutoPull enables automatic transmit-FIFO->OSR transfer at
// pull_threshold bits shifted out, per spec §4.4 step 8.
func WithAutoPull(threshold uint8) Option {
	return func(c *Config) {
		c.autoPull = true
		c.pullThreshold = threshold
	}
}

// WithShiftISRRight selects the ISR shift direction used by IN and
// auto-push framing. The RP2040 default is right-shift.
func WithShiftISRRight(right bool) Option {
	return func(c *Config) { c.shiftISRRight = right }
}

// WithShiftOSRRight selects the OSR shift direction used by OUT and
// auto-pull framing. The RP2040 default is right-shift.
func WithShiftOSRRight(right bool) Option {
	return func(c *Config) { c.shiftOSRRight = right }
}

// WithSideSet configures the side-set overlay: base pin index and bit
// count taken from the delay/side-set field.
func WithSideSet(base, count uint8) Option {
	return func(c *Config) {
		c.sideSetBase = base
		c.sideSetCount = count
	}
}

// WithSideSetOptional enables the supplemented "side_set_opt" mode: the
// top side-set bit becomes an enable flag rather than part of the
// applied value, per SPEC_FULL §4. It has no effect unless WithSideSet has
// also been given a count of at least 1.
func WithSideSetOptional() Option {
	return func(c *Config) { c.sideSetOptional = true }
}

// WithJmpPin sets the GPIO index tested by "JMP PIN".
func WithJmpPin(pin uint8) Option {
	return func(c *Config) { c.jmpPin = pin }
}

// WithWrap sets the program counter wrap range. wrap_top defaults to
// len(opcodes)-1 when this option is never supplied.
func WithWrap(target, top uint8) Option {
	return func(c *Config) {
		c.wrapTarget = target
		c.wrapTop = top
		c.wrapTopSet = true
	}
}

func (c Config) validate(programLen int) error {
	if c.stopWhen == nil {
		return ErrMissingStopWhen
	}
	if c.pushThreshold < 1 || c.pushThreshold > 32 {
		return ErrInvalidThreshold
	}
	if c.pullThreshold < 1 || c.pullThreshold > 32 {
		return ErrInvalidThreshold
	}
	if c.sideSetCount > 5 {
		return ErrInvalidSideSet
	}
	wrapTop := c.wrapTop
	if !c.wrapTopSet {
		wrapTop = uint8(programLen - 1)
	}
	if int(c.wrapTarget) > int(wrapTop) || int(wrapTop) >= programLen {
		return ErrInvalidWrapRange
	}
	return nil
}

func (c Config) resolvedWrapTop(programLen int) uint8 {
	if c.wrapTopSet {
		return c.wrapTop
	}
	return uint8(programLen - 1)
}
