package pioemu

// Kind identifies an Instruction's family, decoded from the opcode's top
// three bits. IRQ has no Kind: per the design notes, it is treated as
// undecodable since no IRQ instruction family is implemented.
type Kind uint8

const (
	KindJmp Kind = iota
	KindWait
	KindIn
	KindOut
	KindPush
	KindPull
	KindMov
	KindSet
)

// Instruction is the pure, state-independent decode of a 16-bit opcode: a
// tagged variant with the fields common to every family plus the payload
// for whichever family Kind names. Decoding never depends on State and
// never has side effects (see Decode in decode.go).
type Instruction struct {
	Kind         Kind
	Opcode       uint16
	DelayCycles  uint8
	SideSetValue uint8

	// JMP
	JmpCondition uint8
	JmpTarget    uint8

	// WAIT
	WaitSource   uint8
	WaitIndex    uint8
	WaitPolarity bool

	// IN / OUT / MOV share Source/Destination/BitCount slots; each family
	// only populates the fields relevant to it.
	Source      uint8
	Destination uint8
	BitCount    uint8

	// PUSH / PULL
	IfFull  bool
	IfEmpty bool
	Block   bool

	// MOV
	Operation uint8

	// SET
	Immediate uint8
}

// Source/destination slot indices shared by IN, OUT, MOV and SET, per
// spec §4.3's resolution tables.
const (
	slotPins        = 0
	slotX           = 1
	slotY           = 2
	slotNull        = 3
	slotPinDirs     = 4
	slotProgramCtr  = 5
	slotISR         = 6
	slotOSR         = 7
)

// JMP condition table indices, per spec §4.3.
const (
	jmpAlways = iota
	jmpXIsZero
	jmpXNotZeroThenDec
	jmpYIsZero
	jmpYNotZeroThenDec
	jmpXNotEqualY
	jmpPinHigh
	jmpOSRNotEmpty
)

// WAIT source indices.
const (
	waitSourceGPIO = 0
	waitSourcePin  = 1
	waitSourceIRQ  = 2
)

// PCPolicy governs how the program counter moves after an instruction's
// effect has run, per spec §4.3/§4.4 step 10.
type PCPolicy uint8

const (
	PCAlways PCPolicy = iota
	PCWhenConditionMet
	PCWhenConditionNotMet
	PCNever
)

// effect applies an Instruction's behavior to State, returning the updated
// state and true on progress, or the unchanged/in-progress state and false
// to denote a stall (spec §9 "stalls as sentinel").
type effect func(State) (State, bool)

// Emulation is the executable form of a decoded Instruction: a condition
// gating whether the effect runs at all, the effect itself, and the policy
// for moving the program counter afterwards.
type Emulation struct {
	condition condition
	effect    effect
	pcPolicy  PCPolicy
}
