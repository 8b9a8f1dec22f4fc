package word

import "testing"

func TestAdd(t *testing.T) {
	a := FromUint64(1)
	b := FromUint64(2)
	got := Add(a, b)
	if want := FromUint64(3); !got.Eq(&want) {
		t.Errorf("Add(1,2) = %v, want 3", got.String())
	}
}

func TestAddOverflowWraps(t *testing.T) {
	max := Not(Zero())
	got := Add(max, One())
	if !IsZero(got) {
		t.Errorf("Add(2^256-1, 1) = %v, want 0", got.String())
	}
}

func TestDivByZero(t *testing.T) {
	a := FromUint64(10)
	if got := Div(a, Zero()); !IsZero(got) {
		t.Errorf("Div(10,0) = %v, want 0", got.String())
	}
	if got := SDiv(a, Zero()); !IsZero(got) {
		t.Errorf("SDiv(10,0) = %v, want 0", got.String())
	}
	if got := Mod(a, Zero()); !IsZero(got) {
		t.Errorf("Mod(10,0) = %v, want 0", got.String())
	}
	if got := SMod(a, Zero()); !IsZero(got) {
		t.Errorf("SMod(10,0) = %v, want 0", got.String())
	}
}

func TestAddModNoOverflow(t *testing.T) {
	max := Not(Zero())
	got := AddMod(max, max, FromUint64(7))
	// (max+max) mod 7 computed over the unbounded integers.
	// 2**256 = 2 (mod 7), so max = 1 and max+max = 2 (mod 7).
	want := FromUint64(2)
	if !got.Eq(&want) {
		t.Errorf("AddMod = %v, want %v", got.String(), want.String())
	}
}

func TestMulModWithZeroModulus(t *testing.T) {
	if got := MulMod(FromUint64(3), FromUint64(4), Zero()); !IsZero(got) {
		t.Errorf("MulMod(3,4,0) = %v, want 0", got.String())
	}
}

func TestShiftsAtOrBeyondWidth(t *testing.T) {
	x := FromUint64(1)
	if got := Shl(FromUint64(256), x); !IsZero(got) {
		t.Errorf("Shl(256,1) = %v, want 0", got.String())
	}
	if got := Shr(FromUint64(256), x); !IsZero(got) {
		t.Errorf("Shr(256,1) = %v, want 0", got.String())
	}
}

func TestSarNegativeBeyondWidth(t *testing.T) {
	negOne := Not(Zero())
	got := Sar(FromUint64(300), negOne)
	want := Not(Zero())
	if !got.Eq(&want) {
		t.Errorf("Sar(300,-1) = %v, want all-ones", got.String())
	}
}

func TestSarNonNegativeBeyondWidth(t *testing.T) {
	got := Sar(FromUint64(300), FromUint64(5))
	if !IsZero(got) {
		t.Errorf("Sar(300,5) = %v, want 0", got.String())
	}
}

func TestByteOutOfRange(t *testing.T) {
	x := FromUint64(0xAABBCCDD)
	if got := Byte(FromUint64(32), x); !IsZero(got) {
		t.Errorf("Byte(32,x) = %v, want 0", got.String())
	}
}

func TestByteSelectsBigEndianByte(t *testing.T) {
	x := FromUint64(0x0102)
	// byte 31 is the least significant byte in big-endian indexing.
	got := Byte(FromUint64(31), x)
	want := FromUint64(0x02)
	if !got.Eq(&want) {
		t.Errorf("Byte(31,0x0102) = %v, want 2", got.String())
	}
}

func TestSignExtend(t *testing.T) {
	// 0xFF as a single byte sign-extends to all-ones.
	got := SignExtend(Zero(), FromUint64(0xFF))
	want := Not(Zero())
	if !got.Eq(&want) {
		t.Errorf("SignExtend(0, 0xFF) = %v, want all-ones", got.String())
	}
}

func TestExpGas(t *testing.T) {
	if got := ExpGas(Zero()); got != 0 {
		t.Errorf("ExpGas(0) = %d, want 0", got)
	}
	if got := ExpGas(FromUint64(256)); got != 100 {
		t.Errorf("ExpGas(256) = %d, want 100", got)
	}
}

func TestComparisons(t *testing.T) {
	if !Lt(FromUint64(1), FromUint64(2)) {
		t.Error("Lt(1,2) should be true")
	}
	if Gt(FromUint64(1), FromUint64(2)) {
		t.Error("Gt(1,2) should be false")
	}
	negOne := Not(Zero())
	if !Slt(negOne, FromUint64(1)) {
		t.Error("Slt(-1,1) should be true")
	}
	if Gt(negOne, FromUint64(1)) != true {
		// unsigned: -1 is the maximum value
		t.Error("Gt(-1,1) should be true unsigned")
	}
}

func TestBool(t *testing.T) {
	one := One()
	if got := Bool(true); !got.Eq(&one) {
		t.Errorf("Bool(true) = %v, want 1", got.String())
	}
	if got := Bool(false); !IsZero(got) {
		t.Errorf("Bool(false) = %v, want 0", got.String())
	}
}
