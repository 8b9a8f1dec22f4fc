package vm

import "github.com/chainkit/shevm/internal/word"

// fail returns a Delta that terminates the frame fatally with err.
func fail(err error) Delta { return Delta{Err: err} }

// revert returns a Delta that terminates the frame via REVERT semantics,
// carrying data back to the caller and refunding unused gas.
func revert(data []byte) Delta { return Delta{Err: &Revert{Data: data}} }

// step builds the ordinary "keep going" Delta for an instruction that
// produced a new stack and consumed extraGas beyond its static minimum.
func step(s Stack, extraGas int64) Delta {
	return Delta{Stack: s, GasCost: extraGas, Continue: true}
}

// unaryOp pops one operand, applies fn, and pushes the result.
func unaryOp(f *Frame, fn func(Word) Word) Delta {
	a, s, err := f.Stack.Pop()
	if err != nil {
		return fail(err)
	}
	s, err = s.Push(fn(a))
	if err != nil {
		return fail(err)
	}
	return step(s, 0)
}

// binaryOp pops two operands (a is the top, b the second-from-top, which
// matches the EVM's stack order for e.g. SUB computing top-minus-second)
// and pushes fn(a, b).
func binaryOp(f *Frame, fn func(a, b Word) Word) Delta {
	a, s, err := f.Stack.Pop()
	if err != nil {
		return fail(err)
	}
	b, s, err := s.Pop()
	if err != nil {
		return fail(err)
	}
	s, err = s.Push(fn(a, b))
	if err != nil {
		return fail(err)
	}
	return step(s, 0)
}

// ternaryOp pops three operands and pushes fn(a, b, c).
func ternaryOp(f *Frame, fn func(a, b, c Word) Word) Delta {
	a, s, err := f.Stack.Pop()
	if err != nil {
		return fail(err)
	}
	b, s, err := s.Pop()
	if err != nil {
		return fail(err)
	}
	c, s, err := s.Pop()
	if err != nil {
		return fail(err)
	}
	s, err = s.Push(fn(a, b, c))
	if err != nil {
		return fail(err)
	}
	return step(s, 0)
}

// compareOp pops two operands and pushes the 0/1 word of fn(a, b).
func compareOp(f *Frame, fn func(a, b Word) bool) Delta {
	return binaryOp(f, func(a, b Word) Word { return word.Bool(fn(a, b)) })
}

// pushConst pushes a constant word onto the stack, the shape every
// environment/context-reading opcode (ADDRESS, CALLER, TIMESTAMP, ...)
// shares.
func pushConst(f *Frame, v Word) Delta {
	s, err := f.Stack.Push(v)
	if err != nil {
		return fail(err)
	}
	return step(s, 0)
}
