// Package word implements 256-bit unsigned integer arithmetic with the
// signed overlays required by the EVM instruction set, on top of
// github.com/holiman/uint256.
package word

import "github.com/holiman/uint256"

// Word is a 256-bit unsigned integer, the fundamental stack element of the
// interpreter. All arithmetic wraps modulo 2**256.
type Word = uint256.Int

// Zero returns the zero word.
func Zero() Word { return Word{} }

// One returns the word with value 1.
func One() Word {
	var w Word
	w.SetOne()
	return w
}

// FromUint64 builds a word from a native integer.
func FromUint64(v uint64) Word {
	var w Word
	w.SetUint64(v)
	return w
}

// FromBytes32 interprets 32 big-endian bytes as a word.
func FromBytes32(b [32]byte) Word {
	var w Word
	w.SetBytes32(b[:])
	return w
}

// Add returns (a+b) mod 2**256.
func Add(a, b Word) Word {
	var z Word
	z.Add(&a, &b)
	return z
}

// Sub returns (a-b) mod 2**256.
func Sub(a, b Word) Word {
	var z Word
	z.Sub(&a, &b)
	return z
}

// Mul returns (a*b) mod 2**256.
func Mul(a, b Word) Word {
	var z Word
	z.Mul(&a, &b)
	return z
}

// Div returns a/b using unsigned integer division; Div(a, 0) = 0.
func Div(a, b Word) Word {
	var z Word
	z.Div(&a, &b)
	return z
}

// SDiv returns a/b interpreting both operands as two's-complement signed
// 256-bit integers; SDiv(a, 0) = 0.
func SDiv(a, b Word) Word {
	var z Word
	z.SDiv(&a, &b)
	return z
}

// Mod returns a%b; Mod(a, 0) = 0.
func Mod(a, b Word) Word {
	var z Word
	z.Mod(&a, &b)
	return z
}

// SMod returns the signed remainder of a/b; SMod(a, 0) = 0.
func SMod(a, b Word) Word {
	var z Word
	z.SMod(&a, &b)
	return z
}

// AddMod returns (a+b) mod n, computed without intermediate overflow.
// AddMod(a, b, 0) = 0.
func AddMod(a, b, n Word) Word {
	var z Word
	z.AddMod(&a, &b, &n)
	return z
}

// MulMod returns (a*b) mod n, computed without intermediate overflow.
// MulMod(a, b, 0) = 0.
func MulMod(a, b, n Word) Word {
	var z Word
	z.MulMod(&a, &b, &n)
	return z
}

// Exp returns base**exponent mod 2**256, via repeated squaring.
func Exp(base, exponent Word) Word {
	var z Word
	z.Exp(&base, &exponent)
	return z
}

// ExpGas returns the additional gas EXP charges beyond its minimum, based
// on the byte length of the exponent: 50 gas per byte.
func ExpGas(exponent Word) int64 {
	return 50 * int64(exponent.ByteLen())
}

// And, Or, Xor, Not are bitwise operations over the full 256-bit word.
func And(a, b Word) Word {
	var z Word
	z.And(&a, &b)
	return z
}

func Or(a, b Word) Word {
	var z Word
	z.Or(&a, &b)
	return z
}

func Xor(a, b Word) Word {
	var z Word
	z.Xor(&a, &b)
	return z
}

func Not(a Word) Word {
	var z Word
	z.Not(&a)
	return z
}

// Byte returns the i-th big-endian byte of x, or zero when i >= 32.
func Byte(i, x Word) Word {
	var z Word
	z.Set(&x)
	z.Byte(&i)
	return z
}

// Shl returns x shifted left by shift bits; a shift >= 256 yields zero.
func Shl(shift, x Word) Word {
	var z Word
	if shift.LtUint64(256) {
		z.Lsh(&x, uint(shift.Uint64()))
	}
	return z
}

// Shr returns x shifted right (logically) by shift bits; a shift >= 256
// yields zero.
func Shr(shift, x Word) Word {
	var z Word
	if shift.LtUint64(256) {
		z.Rsh(&x, uint(shift.Uint64()))
	}
	return z
}

// Sar returns x arithmetic-shifted right by shift bits, treating x as a
// signed 256-bit integer. A shift >= 256 yields zero for a non-negative x
// and all-ones for a negative x.
func Sar(shift, x Word) Word {
	var z Word
	if !shift.LtUint64(256) {
		if x.Sign() >= 0 {
			return z
		}
		z.SetAllOne()
		return z
	}
	z.SRsh(&x, uint(shift.Uint64()))
	return z
}

// SignExtend treats x as a (b+1)-byte two's-complement value (for b < 31)
// and sign-extends it to the full 256 bits. For b >= 31, x is unchanged.
func SignExtend(b, x Word) Word {
	var z Word
	z.Set(&x)
	z.ExtendSign(&z, &b)
	return z
}

// Lt, Gt, Eq, Slt, Sgt, IsZero are the comparison predicates; the boolean
// results are lifted to 0/1 words by the caller (typically the stack
// handler), not here, since spec.md keeps the "push 0 or 1" behavior at
// the instruction level.
func Lt(a, b Word) bool  { return a.Lt(&b) }
func Gt(a, b Word) bool  { return a.Gt(&b) }
func Eq(a, b Word) bool  { return a.Eq(&b) }
func Slt(a, b Word) bool { return a.Slt(&b) }
func Sgt(a, b Word) bool { return a.Sgt(&b) }

// IsZero reports whether w is the zero word.
func IsZero(w Word) bool { return w.IsZero() }

// Bool converts a boolean predicate result into the 0/1 word EVM
// comparison opcodes push.
func Bool(b bool) Word {
	if b {
		return One()
	}
	return Zero()
}

// SizeInWords returns the number of 32-byte words required to hold size
// bytes, rounding up.
func SizeInWords(size uint64) uint64 {
	return (size + 31) / 32
}
