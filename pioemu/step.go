package pioemu

// step advances State by exactly one clock cycle, implementing the
// thirteen-step order of spec §4.4. ok is false when the opcode at the
// current program counter cannot be decoded; per spec §7 this ends the
// sequence without producing a (before, after) pair for that cycle.
func step(s State, cfg Config, program []uint16) (before, after State, ok bool) {
	before = s

	// 1. Input injection.
	if cfg.inputSource != nil {
		input := cfg.inputSource(s)
		s.PinValues = (s.PinValues & s.PinDirections) | (input &^ s.PinDirections)
	}

	// 2. Fetch.
	opcode := program[s.ProgramCounter]

	// 3. Decode + build.
	instr, decoded := Decode(opcode, cfg.sideSetCount)
	if !decoded {
		return before, before, false
	}
	emulation := Build(instr, cfg)

	// 4. Condition check.
	conditionMet := emulation.condition(s)

	// 5. Effect application, with the instruction-specific auto-push/
	// auto-pull interleaving of steps 7 and 8. A condition that isn't met
	// is not itself a stall: PC advancement still proceeds per pc_policy
	// (e.g. a JMP whose condition fails falls through normally).
	stalled := false
	if conditionMet {
		var progressed bool
		s, progressed = applyEffect(instr, emulation, cfg, s)
		stalled = !progressed
	}

	// 6. Implicit post-decrement: unconditional, keyed off the raw opcode
	// bits rather than the decoded condition.
	s = applyImplicitPostDecrement(opcode, s)

	// 9. Side-set.
	if cfg.sideSetCount > 0 && !stalled {
		s = applySideSet(s, cfg, instr.SideSetValue)
	}

	// 10. PC advance.
	if !stalled {
		s.ProgramCounter = advanceProgramCounter(emulation.pcPolicy, conditionMet, cfg, s.ProgramCounter)
	}

	// 11. Delay accounting.
	if !stalled && (instr.Kind == KindJmp || conditionMet) {
		s.Clock += uint64(instr.DelayCycles)
	}

	// 12. Base cycle.
	s.Clock++

	// 13. Yield.
	return before, s, true
}

// applyEffect runs an Emulation's effect, folding in the auto-push hook
// (after IN) and auto-pull hook (before OUT) from spec §4.4 steps 7-8.
// Every other instruction kind just runs its effect directly.
func applyEffect(instr Instruction, emulation Emulation, cfg Config, s State) (State, bool) {
	switch instr.Kind {
	case KindIn:
		return applyInWithAutoPush(emulation, cfg, s)
	case KindOut:
		return applyOutWithAutoPull(emulation, cfg, s)
	default:
		next, ok := emulation.effect(s)
		if !ok {
			return s, false
		}
		return next, true
	}
}

func applyInWithAutoPush(emulation Emulation, cfg Config, s State) (State, bool) {
	next, ok := emulation.effect(s)
	if !ok {
		return s, false
	}
	if !cfg.autoPush || next.InputShiftRegister.Counter < cfg.pushThreshold {
		return next, true
	}
	if next.ReceiveFIFO.Full() {
		// The shift already completed; only the FIFO transfer stalls.
		return next, false
	}
	fifo, _ := next.ReceiveFIFO.PushBack(next.InputShiftRegister.Contents)
	next.ReceiveFIFO = fifo
	next.InputShiftRegister = ShiftRegister{}
	return next, true
}

func applyOutWithAutoPull(emulation Emulation, cfg Config, s State) (State, bool) {
	if cfg.autoPull && s.OutputShiftRegister.Counter >= cfg.pullThreshold {
		if s.TransmitFIFO.Empty() {
			return s, false
		}
		fifo, v, _ := s.TransmitFIFO.PopFront()
		s.TransmitFIFO = fifo
		s.OutputShiftRegister = ShiftRegister{Contents: v, Counter: 0}
	}
	next, ok := emulation.effect(s)
	if !ok {
		return s, false
	}
	return next, true
}

// applyImplicitPostDecrement matches the raw opcode against the JMP X--
// and JMP Y-- bit patterns (family JMP, condition field naming the
// post-decrementing variants) and decrements the named register
// regardless of whether the jump's condition was satisfied this cycle.
func applyImplicitPostDecrement(opcode uint16, s State) State {
	switch opcode & 0xE0E0 {
	case 0x0040:
		s.XRegister--
	case 0x0080:
		s.YRegister--
	}
	return s
}

func applySideSet(s State, cfg Config, sideSetValue uint8) State {
	count := cfg.sideSetCount
	value := uint32(sideSetValue)
	if cfg.sideSetOptional {
		if count == 0 {
			return s
		}
		enableBit := count - 1
		if value&(uint32(1)<<enableBit) == 0 {
			return s
		}
		count = enableBit
		value &= lowMask(enableBit)
	}
	if count == 0 {
		return s
	}
	mask := lowMask(count) << cfg.sideSetBase
	s.PinValues = (s.PinValues &^ mask) | ((value << cfg.sideSetBase) & mask)
	return s
}

func advanceProgramCounter(policy PCPolicy, conditionMet bool, cfg Config, pc uint8) uint8 {
	advance := func() uint8 {
		if pc == cfg.wrapTop {
			return cfg.wrapTarget
		}
		return pc + 1
	}
	switch policy {
	case PCAlways:
		return advance()
	case PCWhenConditionMet:
		if conditionMet {
			return advance()
		}
		return pc
	case PCWhenConditionNotMet:
		if !conditionMet {
			return advance()
		}
		return pc // The effect already set PC to the jump target.
	default: // PCNever
		return pc
	}
}
