package pioemu

import "fmt"

// Disassemble renders a single opcode as RP2040 PIO assembly text, for use
// by trace output and the command-line front end only: the core decoder
// and step function never call this (spec §9 notes only MOV/SET/JMP etc.
// need a typed decode, not a printable one). sideSetCount must match the
// value the program was assembled with, since it determines where the
// delay/side-set field splits.
func Disassemble(opcode uint16, sideSetCount uint8) string {
	instr, ok := Decode(opcode, sideSetCount)
	if !ok {
		return fmt.Sprintf("; undecodable opcode %#04x", opcode)
	}

	var mnemonic string
	switch instr.Kind {
	case KindJmp:
		if cond := jmpConditionName(instr.JmpCondition); cond != "" {
			mnemonic = fmt.Sprintf("jmp    %s, %d", cond, instr.JmpTarget)
		} else {
			mnemonic = fmt.Sprintf("jmp    %d", instr.JmpTarget)
		}
	case KindWait:
		mnemonic = fmt.Sprintf("wait   %d %s, %d", boolToBit(instr.WaitPolarity), waitSourceName(instr.WaitSource), instr.WaitIndex)
	case KindIn:
		mnemonic = fmt.Sprintf("in     %s, %d", slotName(instr.Source), instr.BitCount)
	case KindOut:
		mnemonic = fmt.Sprintf("out    %s, %d", slotName(instr.Destination), instr.BitCount)
	case KindPush:
		mnemonic = fmt.Sprintf("push   %s %s", ifFlagName(instr.IfFull, "iffull"), blockFlagName(instr.Block))
	case KindPull:
		mnemonic = fmt.Sprintf("pull   %s %s", ifFlagName(instr.IfEmpty, "ifempty"), blockFlagName(instr.Block))
	case KindMov:
		mnemonic = fmt.Sprintf("mov    %s, %s%s", slotName(instr.Destination), movOpName(instr.Operation), slotName(instr.Source))
	case KindSet:
		mnemonic = fmt.Sprintf("set    %s, %d", slotName(instr.Destination), instr.Immediate)
	}

	if sideSetCount > 0 {
		mnemonic = fmt.Sprintf("%-24s side %d", mnemonic, instr.SideSetValue)
	}
	if instr.DelayCycles > 0 {
		mnemonic = fmt.Sprintf("%s [%d]", mnemonic, instr.DelayCycles)
	}
	return mnemonic
}

func boolToBit(b bool) int {
	if b {
		return 1
	}
	return 0
}

func jmpConditionName(c uint8) string {
	names := [...]string{"", "!x", "x--", "!y", "y--", "x!=y", "pin", "!osre"}
	if int(c) < len(names) {
		return names[c]
	}
	return "?"
}

func waitSourceName(source uint8) string {
	switch source {
	case waitSourceGPIO:
		return "gpio"
	case waitSourcePin:
		return "pin"
	case waitSourceIRQ:
		return "irq"
	default:
		return "?"
	}
}

func slotName(slot uint8) string {
	names := [...]string{"pins", "x", "y", "null", "pindirs", "pc", "isr", "osr"}
	if int(slot) < len(names) {
		return names[slot]
	}
	return "?"
}

func movOpName(op uint8) string {
	if op == 1 {
		return "!"
	}
	return ""
}

func ifFlagName(set bool, name string) string {
	if set {
		return name
	}
	return ""
}

func blockFlagName(block bool) string {
	if block {
		return "block"
	}
	return "noblock"
}
