package pioemu

import "testing"

func TestShiftRegister_ShiftLeft(t *testing.T) {
	cases := []struct {
		name         string
		reg          ShiftRegister
		n            uint8
		dataIn       uint32
		wantReg      ShiftRegister
		wantShiftOut uint32
	}{
		{
			name:         "shift 8 bits in with no prior counter",
			reg:          ShiftRegister{Contents: 0x000000FF, Counter: 0},
			n:            8,
			dataIn:       0xAB,
			wantReg:      ShiftRegister{Contents: 0x0000FFAB, Counter: 8},
			wantShiftOut: 0,
		},
		{
			name:         "counter saturates at 32",
			reg:          ShiftRegister{Contents: 0, Counter: 28},
			n:            8,
			dataIn:       0xFF,
			wantReg:      ShiftRegister{Contents: 0xFF, Counter: 32},
			wantShiftOut: 0,
		},
		{
			name:         "full-width shift",
			reg:          ShiftRegister{Contents: 0x12345678, Counter: 0},
			n:            32,
			dataIn:       0xCAFEBABE,
			wantReg:      ShiftRegister{Contents: 0xCAFEBABE, Counter: 32},
			wantShiftOut: 0x12345678,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, out := tc.reg.ShiftLeft(tc.n, tc.dataIn)
			if got != tc.wantReg {
				t.Errorf("register = %+v, want %+v", got, tc.wantReg)
			}
			if out != tc.wantShiftOut {
				t.Errorf("shifted-out = %#x, want %#x", out, tc.wantShiftOut)
			}
		})
	}
}

func TestShiftRegister_ShiftRight(t *testing.T) {
	reg := ShiftRegister{Contents: 0x1FF, Counter: 0}
	got, out := reg.ShiftRight(8, 0)
	if got.Contents != 0x001 {
		t.Errorf("contents = %#x, want 0x001", got.Contents)
	}
	if got.Counter != 8 {
		t.Errorf("counter = %d, want 8", got.Counter)
	}
	if out != 0xFF {
		t.Errorf("shifted-out = %#x, want 0xff", out)
	}
}

func TestShiftRegister_RoundTrip(t *testing.T) {
	// P9: shift_right(n) then shift_left(n) restores contents modulo the
	// bits that were pushed out.
	reg := ShiftRegister{Contents: 0xDEADBEEF, Counter: 0}
	afterRight, shiftedOut := reg.ShiftRight(8, 0)
	restored, _ := afterRight.ShiftLeft(8, shiftedOut)
	if restored.Contents != reg.Contents {
		t.Errorf("round trip contents = %#x, want %#x", restored.Contents, reg.Contents)
	}
}

func TestFIFO_CapacityAndOrdering(t *testing.T) {
	var f FIFO
	for i := uint32(0); i < 4; i++ {
		var ok bool
		f, ok = f.PushBack(i)
		if !ok {
			t.Fatalf("PushBack(%d) failed before reaching capacity", i)
		}
	}
	if !f.Full() {
		t.Fatal("FIFO should report full at 4 elements")
	}
	if _, ok := f.PushBack(99); ok {
		t.Fatal("PushBack should fail once full")
	}
	for i := uint32(0); i < 4; i++ {
		var v uint32
		var ok bool
		f, v, ok = f.PopFront()
		if !ok || v != i {
			t.Fatalf("PopFront = (%d, %v), want (%d, true)", v, ok, i)
		}
	}
	if !f.Empty() {
		t.Fatal("FIFO should be empty after draining")
	}
}
