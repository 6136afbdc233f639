package pioemu

// Build resolves a decoded Instruction into its executable Emulation,
// per spec §4.3. It is the only place the emulator consults per-run
// configuration (shift directions and jmp_pin) while turning an opcode's
// meaning into condition/effect/pc-policy closures; grounded in the
// dispatch tables of pioemu/instruction_decoder.py's create_emulation.
func Build(instr Instruction, cfg Config) Emulation {
	switch instr.Kind {
	case KindJmp:
		return buildJmp(instr, cfg)
	case KindWait:
		return buildWait(instr)
	case KindIn:
		return buildIn(instr, cfg)
	case KindOut:
		return buildOut(instr, cfg)
	case KindPush:
		return buildPush(instr)
	case KindPull:
		return buildPull(instr)
	case KindMov:
		return buildMov(instr, cfg)
	case KindSet:
		return buildSet(instr)
	default:
		panic("pioemu: Build called with an undecoded Instruction")
	}
}

func buildJmp(instr Instruction, cfg Config) Emulation {
	cond := jmpCondition(instr.JmpCondition, cfg.jmpPin)
	target := instr.JmpTarget
	return Emulation{
		condition: cond,
		effect: func(s State) (State, bool) {
			s.ProgramCounter = target & 0x1F
			return s, true
		},
		pcPolicy: PCWhenConditionNotMet,
	}
}

func jmpCondition(index uint8, jmpPin uint8) condition {
	switch index {
	case jmpAlways:
		return always
	case jmpXIsZero:
		return xRegisterEqualsZero
	case jmpXNotZeroThenDec:
		return xRegisterNotEqualToZero
	case jmpYIsZero:
		return yRegisterEqualsZero
	case jmpYNotZeroThenDec:
		return yRegisterNotEqualToZero
	case jmpXNotEqualY:
		return xRegisterNotEqualToYRegister
	case jmpPinHigh:
		return gpioHigh(jmpPin)
	case jmpOSRNotEmpty:
		return outputShiftRegisterNotEmpty
	default:
		return func(State) bool { return false }
	}
}

func buildWait(instr Instruction) Emulation {
	predicate := waitPredicate(instr)
	return Emulation{
		condition: always,
		effect: func(s State) (State, bool) {
			if predicate(s) {
				return s, true
			}
			return s, false
		},
		pcPolicy: PCAlways,
	}
}

// waitPredicate tests the configured GPIO level. Source 2 (IRQ) is decoded
// but never satisfied: no IRQ instruction family is implemented, so the
// IRQ flag bank is always clear (SPEC_FULL §4).
func waitPredicate(instr Instruction) func(State) bool {
	if instr.WaitSource == waitSourceIRQ {
		return func(State) bool { return false }
	}
	mask := uint32(1) << instr.WaitIndex
	return func(s State) bool {
		high := s.PinValues&mask != 0
		return high == instr.WaitPolarity
	}
}

func buildIn(instr Instruction, cfg Config) Emulation {
	supply := inSource(instr.Source)
	bitCount := instr.BitCount
	shiftRight := cfg.shiftISRRight
	return Emulation{
		condition: always,
		effect: func(s State) (State, bool) {
			return shiftIntoISR(supply, shiftRight, bitCount, s), true
		},
		pcPolicy: PCAlways,
	}
}

func inSource(source uint8) dataSupplier {
	switch source {
	case slotPins:
		return readFromPins
	case slotX:
		return readFromX
	case slotY:
		return readFromY
	case slotNull:
		return suppliesValue(0)
	case slotISR:
		return readFromISR
	case slotOSR:
		return readFromOSR
	default:
		return suppliesValue(0)
	}
}

func buildOut(instr Instruction, cfg Config) Emulation {
	destination := instr.Destination
	bitCount := instr.BitCount
	shiftRight := cfg.shiftOSRRight
	pcPolicy := PCAlways
	if destination == slotProgramCtr {
		pcPolicy = PCNever
	}
	return Emulation{
		condition: always,
		effect: func(s State) (State, bool) {
			next, bits := shiftFromOSR(shiftRight, bitCount, s)
			return writeOutDestination(destination, bitCount, suppliesValue(bits), next), true
		},
		pcPolicy: pcPolicy,
	}
}

func writeOutDestination(destination uint8, bitCount uint8, supply dataSupplier, s State) State {
	switch destination {
	case slotPins:
		return writeToPins(supply, s)
	case slotX:
		return writeToX(supply, s)
	case slotY:
		return writeToY(supply, s)
	case slotNull:
		return writeToNull(supply, s)
	case slotPinDirs:
		return writeToPinDirections(supply, s)
	case slotProgramCtr:
		return writeToProgramCounter(supply, s)
	case slotISR:
		count := bitCount
		return writeToISR(supply, s, &count)
	default:
		return s
	}
}

func buildPush(instr Instruction) Emulation {
	cond := condition(always)
	if instr.IfFull {
		cond = func(s State) bool { return inputShiftRegisterFull(s, 32) }
	}
	return Emulation{
		condition: cond,
		effect:    pushEffect(instr.Block),
		pcPolicy:  PCAlways,
	}
}

func pushEffect(block bool) effect {
	return func(s State) (State, bool) {
		if !s.ReceiveFIFO.Full() {
			fifo, _ := s.ReceiveFIFO.PushBack(s.InputShiftRegister.Contents)
			s.ReceiveFIFO = fifo
			s.InputShiftRegister = ShiftRegister{}
			return s, true
		}
		if block {
			return s, false
		}
		s.InputShiftRegister = ShiftRegister{}
		return s, true
	}
}

func buildPull(instr Instruction) Emulation {
	cond := condition(always)
	if instr.IfEmpty {
		cond = outputShiftRegisterEmpty
	}
	return Emulation{
		condition: cond,
		effect:    pullEffect(instr.Block),
		pcPolicy:  PCAlways,
	}
}

func pullEffect(block bool) effect {
	return func(s State) (State, bool) {
		if !s.TransmitFIFO.Empty() {
			fifo, v, _ := s.TransmitFIFO.PopFront()
			s.TransmitFIFO = fifo
			s.OutputShiftRegister = ShiftRegister{Contents: v, Counter: 0}
			return s, true
		}
		if block {
			return s, false
		}
		s.OutputShiftRegister = ShiftRegister{Contents: s.XRegister, Counter: 0}
		return s, true
	}
}

func buildMov(instr Instruction, cfg Config) Emulation {
	source := movSource(instr.Source)
	op := movOperation(instr.Operation)
	destination := instr.Destination
	supply := func(s State) uint32 { return op(source(s)) }
	pcPolicy := PCAlways
	if destination == slotProgramCtr {
		pcPolicy = PCNever
	}
	return Emulation{
		condition: always,
		effect: func(s State) (State, bool) {
			return writeMovDestination(destination, supply, s), true
		},
		pcPolicy: pcPolicy,
	}
}

func movSource(source uint8) dataSupplier {
	switch source {
	case slotPins:
		return readFromPins
	case slotX:
		return readFromX
	case slotY:
		return readFromY
	case slotNull:
		return suppliesValue(0)
	case slotISR:
		return readFromISR
	case slotOSR:
		return readFromOSR
	default:
		return suppliesValue(0)
	}
}

func movOperation(op uint8) func(uint32) uint32 {
	if op == 1 {
		return func(v uint32) uint32 { return v ^ 0xFFFFFFFF }
	}
	return func(v uint32) uint32 { return v }
}

func writeMovDestination(destination uint8, supply dataSupplier, s State) State {
	switch destination {
	case slotPins:
		return writeToPins(supply, s)
	case slotX:
		return writeToX(supply, s)
	case slotY:
		return writeToY(supply, s)
	case slotPinDirs:
		return writeToPinDirections(supply, s)
	case slotProgramCtr:
		return writeToProgramCounter(supply, s)
	case slotISR:
		return writeToISR(supply, s, nil)
	case slotOSR:
		return writeToOSR(supply, s)
	default:
		return s
	}
}

func buildSet(instr Instruction) Emulation {
	destination := instr.Destination
	supply := suppliesValue(uint32(instr.Immediate))
	return Emulation{
		condition: always,
		effect: func(s State) (State, bool) {
			switch destination {
			case slotPins:
				return writeToPins(supply, s), true
			case slotX:
				return writeToX(supply, s), true
			case slotY:
				return writeToY(supply, s), true
			case slotPinDirs:
				return writeToPinDirections(supply, s), true
			default:
				return s, true
			}
		},
		pcPolicy: PCAlways,
	}
}
