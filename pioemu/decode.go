package pioemu

// Decode turns a 16-bit opcode into an Instruction, per spec §4.2. It is a
// pure function of opcode and sideSetCount: no State is consulted and no
// side effects occur, matching the original's decoding/instruction_decoder.py
// contract extended here to cover every family that one only partially
// implements (WAIT, PUSH, PULL, MOV, SET are decoded directly from the
// RP2040 bit layout rather than ported line-by-line).
//
// ok is false for the IRQ family (not implemented, see design notes) and
// for any reserved source/destination slot.
func Decode(opcode uint16, sideSetCount uint8) (Instruction, bool) {
	sideSetValue, delayCycles := extractDelayAndSideSet(opcode, sideSetCount)
	base := Instruction{
		Opcode:       opcode,
		DelayCycles:  delayCycles,
		SideSetValue: sideSetValue,
	}

	family := uint8(opcode>>13) & 0x7
	switch family {
	case 0:
		return decodeJmp(base, opcode)
	case 1:
		return decodeWait(base, opcode)
	case 2:
		return decodeIn(base, opcode)
	case 3:
		return decodeOut(base, opcode)
	case 4:
		return decodePushPull(base, opcode)
	case 5:
		return decodeMov(base, opcode)
	case 6:
		return Instruction{}, false // IRQ family: not implemented.
	case 7:
		return decodeSet(base, opcode)
	default:
		return Instruction{}, false
	}
}

// extractDelayAndSideSet splits opcode bits 12..8 into the top sideSetCount
// bits (the side-set value) and the remaining low bits (the delay), per
// spec §4.2.
func extractDelayAndSideSet(opcode uint16, sideSetCount uint8) (sideSetValue, delayCycles uint8) {
	field := uint8(opcode>>8) & 0x1F
	delayBits := 5 - sideSetCount
	delayMask := uint8(1)<<delayBits - 1
	delayCycles = field & delayMask
	sideSetValue = field >> delayBits
	return sideSetValue, delayCycles
}

func decodeJmp(instr Instruction, opcode uint16) (Instruction, bool) {
	instr.Kind = KindJmp
	instr.JmpCondition = uint8(opcode>>5) & 0x7
	instr.JmpTarget = uint8(opcode) & 0x1F
	return instr, true
}

func decodeWait(instr Instruction, opcode uint16) (Instruction, bool) {
	instr.Kind = KindWait
	instr.WaitPolarity = opcode&0x80 != 0
	instr.WaitSource = uint8(opcode>>5) & 0x3
	instr.WaitIndex = uint8(opcode) & 0x1F
	if instr.WaitSource == 3 {
		// Source 3 is reserved.
		return Instruction{}, false
	}
	return instr, true
}

func decodeIn(instr Instruction, opcode uint16) (Instruction, bool) {
	instr.Kind = KindIn
	instr.Source = uint8(opcode>>5) & 0x7
	if instr.Source == 4 || instr.Source == 5 {
		// Sources 4 and 5 are reserved for IN.
		return Instruction{}, false
	}
	instr.BitCount = bitCountFromField(uint8(opcode) & 0x1F)
	return instr, true
}

func decodeOut(instr Instruction, opcode uint16) (Instruction, bool) {
	instr.Kind = KindOut
	instr.Destination = uint8(opcode>>5) & 0x7
	if instr.Destination == slotOSR {
		// Slot 7 is reserved for OUT.
		return Instruction{}, false
	}
	instr.BitCount = bitCountFromField(uint8(opcode) & 0x1F)
	return instr, true
}

func decodePushPull(instr Instruction, opcode uint16) (Instruction, bool) {
	isPull := opcode&0x80 != 0
	if isPull {
		instr.Kind = KindPull
		instr.IfEmpty = opcode&0x40 != 0
	} else {
		instr.Kind = KindPush
		instr.IfFull = opcode&0x40 != 0
	}
	instr.Block = opcode&0x20 != 0
	return instr, true
}

func decodeMov(instr Instruction, opcode uint16) (Instruction, bool) {
	instr.Kind = KindMov
	instr.Destination = uint8(opcode>>5) & 0x7
	instr.Operation = uint8(opcode>>3) & 0x3
	instr.Source = uint8(opcode) & 0x7
	if instr.Destination == slotNull {
		// MOV has no NULL destination; PINDIRS is a valid, optional one.
		return Instruction{}, false
	}
	if instr.Source == 4 || instr.Source == 5 {
		// Source slots 4 and 5 are reserved for MOV, as for IN.
		return Instruction{}, false
	}
	if instr.Operation >= 2 {
		// Only copy (0) and invert (1) are implemented; 2 and 3 are reserved.
		return Instruction{}, false
	}
	return instr, true
}

func decodeSet(instr Instruction, opcode uint16) (Instruction, bool) {
	instr.Kind = KindSet
	instr.Destination = uint8(opcode>>5) & 0x7
	switch instr.Destination {
	case slotPins, slotX, slotY, slotPinDirs:
	default:
		return Instruction{}, false
	}
	instr.Immediate = uint8(opcode) & 0x1F
	return instr, true
}

// bitCountFromField maps a raw 5-bit IN/OUT bit-count field to its actual
// value: a field of 0 means 32, per spec §4.2.
func bitCountFromField(field uint8) uint8 {
	if field == 0 {
		return 32
	}
	return field
}
