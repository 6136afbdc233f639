package pioemu

import "testing"

func TestDecode_Families(t *testing.T) {
	cases := []struct {
		name         string
		opcode       uint16
		sideSetCount uint8
		want         Instruction
	}{
		{
			name:   "set pins immediate",
			opcode: 0xE001,
			want:   Instruction{Kind: KindSet, Opcode: 0xE001, Destination: slotPins, Immediate: 1},
		},
		{
			name:   "jmp always",
			opcode: 0x0000,
			want:   Instruction{Kind: KindJmp, Opcode: 0x0000, JmpCondition: jmpAlways, JmpTarget: 0},
		},
		{
			name:   "jmp x-- post decrement",
			opcode: 0x0041,
			want:   Instruction{Kind: KindJmp, Opcode: 0x0041, JmpCondition: jmpXNotZeroThenDec, JmpTarget: 1},
		},
		{
			name:   "out pins 8 bits",
			opcode: 0x6008,
			want:   Instruction{Kind: KindOut, Opcode: 0x6008, Destination: slotPins, BitCount: 8},
		},
		{
			name:   "in null 32 bits (zero field means 32)",
			opcode: 0x4060,
			want:   Instruction{Kind: KindIn, Opcode: 0x4060, Source: slotNull, BitCount: 32},
		},
		{
			name:         "nop encoded as mov y,y with side-set",
			opcode:       0xBC42,
			sideSetCount: 3,
			want: Instruction{
				Kind: KindMov, Opcode: 0xBC42, SideSetValue: 7,
				Destination: slotY, Source: slotY, Operation: 0,
			},
		},
		{
			name:   "pull block unconditional",
			opcode: 0x80A0,
			want:   Instruction{Kind: KindPull, Opcode: 0x80A0, IfEmpty: false, Block: true},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Decode(tc.opcode, tc.sideSetCount)
			if !ok {
				t.Fatalf("Decode(%#04x) reported undecodable", tc.opcode)
			}
			if got != tc.want {
				t.Errorf("Decode(%#04x) = %+v, want %+v", tc.opcode, got, tc.want)
			}
		})
	}
}

func TestDecode_IRQFamilyUndecodable(t *testing.T) {
	// Family 6 (bits 15..13 == 110) is IRQ; no IRQ instruction family is
	// implemented (spec §9), so every opcode in that family is
	// undecodable.
	opcode := uint16(0xC000)
	if _, ok := Decode(opcode, 0); ok {
		t.Errorf("Decode(%#04x) should report undecodable for the IRQ family", opcode)
	}
}

func TestDecode_ReservedSourcesAndDestinations(t *testing.T) {
	cases := []struct {
		name   string
		opcode uint16
	}{
		{"IN reserved source 4", 0x4080},
		{"OUT reserved destination 7", 0x60E0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := Decode(tc.opcode, 0); ok {
				t.Errorf("Decode(%#04x) should report undecodable", tc.opcode)
			}
		})
	}
}

func TestDecode_PurityAgainstOpcodeAndSideSetCountOnly(t *testing.T) {
	// P8: decode(op) depends only on op and side_set_count.
	opcode := uint16(0xBC42)
	first, ok1 := Decode(opcode, 3)
	second, ok2 := Decode(opcode, 3)
	if ok1 != ok2 || first != second {
		t.Errorf("Decode is not pure: %+v/%v vs %+v/%v", first, ok1, second, ok2)
	}
}

func TestExtractDelayAndSideSet(t *testing.T) {
	sideSetValue, delay := extractDelayAndSideSet(0xBC42, 3)
	if sideSetValue != 7 {
		t.Errorf("side-set value = %d, want 7", sideSetValue)
	}
	if delay != 0 {
		t.Errorf("delay = %d, want 0", delay)
	}
}
