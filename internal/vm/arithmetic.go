package vm

import "github.com/chainkit/shevm/internal/word"

// registerArithmetic wires the fixed-point arithmetic opcodes (0x01-0x0B),
// grounded on the teacher's lfvm/instructions.go opAdd/opMul/... family,
// rebuilt atop internal/word's pure functions instead of in-place
// big.Int-style mutation.
func registerArithmetic() {
	register(ADD, func(f *Frame) Delta { return binaryOp(f, word.Add) })
	register(MUL, func(f *Frame) Delta { return binaryOp(f, word.Mul) })
	register(SUB, func(f *Frame) Delta { return binaryOp(f, word.Sub) })
	register(DIV, func(f *Frame) Delta { return binaryOp(f, word.Div) })
	register(SDIV, func(f *Frame) Delta { return binaryOp(f, word.SDiv) })
	register(MOD, func(f *Frame) Delta { return binaryOp(f, word.Mod) })
	register(SMOD, func(f *Frame) Delta { return binaryOp(f, word.SMod) })
	register(ADDMOD, func(f *Frame) Delta { return ternaryOp(f, word.AddMod) })
	register(MULMOD, func(f *Frame) Delta { return ternaryOp(f, word.MulMod) })
	register(SIGNEXTEND, func(f *Frame) Delta { return binaryOp(f, word.SignExtend) })

	register(EXP, func(f *Frame) Delta {
		base, s, err := f.Stack.Pop()
		if err != nil {
			return fail(err)
		}
		exponent, s, err := s.Pop()
		if err != nil {
			return fail(err)
		}
		s, err = s.Push(word.Exp(base, exponent))
		if err != nil {
			return fail(err)
		}
		return step(s, word.ExpGas(exponent))
	})
}
