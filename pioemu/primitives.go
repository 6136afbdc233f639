package pioemu

// dataSupplier produces a 32-bit value from state; it is the read half of
// a primitive read-then-write pair, grounded in
// pioemu/primitive_operations.py's data_supplier closures.
type dataSupplier func(State) uint32

func suppliesValue(v uint32) dataSupplier {
	return func(State) uint32 { return v }
}

func readFromPins(s State) uint32 { return s.PinValues }
func readFromX(s State) uint32    { return s.XRegister }
func readFromY(s State) uint32    { return s.YRegister }
func readFromISR(s State) uint32  { return s.InputShiftRegister.Contents }
func readFromOSR(s State) uint32  { return s.OutputShiftRegister.Contents }

// writeToX/Y/Pins/PinDirections/Null write a 32-bit value computed by the
// given supplier into the named State field. PC and 32-bit registers mask
// on write per invariant I1/I2.

func writeToX(supply dataSupplier, s State) State {
	s.XRegister = supply(s)
	return s
}

func writeToY(supply dataSupplier, s State) State {
	s.YRegister = supply(s)
	return s
}

func writeToPins(supply dataSupplier, s State) State {
	s.PinValues = supply(s)
	return s
}

func writeToPinDirections(supply dataSupplier, s State) State {
	s.PinDirections = supply(s)
	return s
}

func writeToProgramCounter(supply dataSupplier, s State) State {
	s.ProgramCounter = uint8(supply(s) & 0x1F)
	return s
}

// writeToNull discards the supplied value but still evaluates the supplier,
// matching OUT NULL's role as a pure shift-and-discard.
func writeToNull(supply dataSupplier, s State) State {
	_ = supply(s)
	return s
}

// writeToISR writes a value into the input shift register. count, when
// non-nil, overrides the resulting counter instead of leaving it
// unchanged — used only by OUT ISR, which the RP2040 defines to also set
// ISR.counter to the shifted bit count (see the out-to-ISR quirk in
// pioemu/instruction_decoder.py).
func writeToISR(supply dataSupplier, s State, count *uint8) State {
	s.InputShiftRegister.Contents = supply(s)
	if count != nil {
		s.InputShiftRegister.Counter = *count
	}
	return s
}

func writeToOSR(supply dataSupplier, s State) State {
	s.OutputShiftRegister.Contents = supply(s)
	return s
}

// shiftIntoISR shifts bitCount bits supplied by supply into the ISR, in the
// configured direction, and bumps its counter accordingly.
func shiftIntoISR(supply dataSupplier, shiftRight bool, bitCount uint8, s State) State {
	data := supply(s)
	if shiftRight {
		s.InputShiftRegister, _ = s.InputShiftRegister.ShiftRight(bitCount, data)
	} else {
		s.InputShiftRegister, _ = s.InputShiftRegister.ShiftLeft(bitCount, data)
	}
	return s
}

// shiftFromOSR shifts bitCount bits out of the OSR, in the configured
// direction, and returns both the updated state and the bits that came out
// (right-aligned), for the caller to route to an OUT destination.
func shiftFromOSR(shiftRight bool, bitCount uint8, s State) (State, uint32) {
	var out uint32
	if shiftRight {
		s.OutputShiftRegister, out = s.OutputShiftRegister.ShiftRight(bitCount, 0)
	} else {
		s.OutputShiftRegister, out = s.OutputShiftRegister.ShiftLeft(bitCount, 0)
	}
	return s, out
}
