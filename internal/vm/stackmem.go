package vm

import "github.com/chainkit/shevm/internal/word"

// registerStackMemoryControl wires POP, the memory opcodes, SHA3, and the
// jump/control-flow family. PUSH/DUP/SWAP are generated separately by the
// factories below and registered from table.go's init().
func registerStackMemoryControl() {
	register(POP, func(f *Frame) Delta {
		_, s, err := f.Stack.Pop()
		if err != nil {
			return fail(err)
		}
		return step(s, 0)
	})

	register(MLOAD, func(f *Frame) Delta {
		offset, s, err := f.Stack.Pop()
		if err != nil {
			return fail(err)
		}
		v, gas, err := f.Memory.ReadWord(offset.Uint64())
		if err != nil {
			return fail(err)
		}
		s, err = s.Push(v)
		if err != nil {
			return fail(err)
		}
		return step(s, gas)
	})

	register(MSTORE, func(f *Frame) Delta {
		offset, s, err := f.Stack.Pop()
		if err != nil {
			return fail(err)
		}
		v, s, err := s.Pop()
		if err != nil {
			return fail(err)
		}
		gas, err := f.Memory.WriteWord(offset.Uint64(), v)
		if err != nil {
			return fail(err)
		}
		return step(s, gas)
	})

	register(MSTORE8, func(f *Frame) Delta {
		offset, s, err := f.Stack.Pop()
		if err != nil {
			return fail(err)
		}
		v, s, err := s.Pop()
		if err != nil {
			return fail(err)
		}
		gas, err := f.Memory.WriteByte(offset.Uint64(), byte(v.Uint64()))
		if err != nil {
			return fail(err)
		}
		return step(s, gas)
	})

	register(MSIZE, func(f *Frame) Delta {
		return pushConst(f, word.FromUint64(f.Memory.Len()))
	})

	register(SHA3, func(f *Frame) Delta {
		offset, s, err := f.Stack.Pop()
		if err != nil {
			return fail(err)
		}
		size, s, err := s.Pop()
		if err != nil {
			return fail(err)
		}
		data, expGas, err := f.Memory.Read(offset.Uint64(), size.Uint64())
		if err != nil {
			return fail(err)
		}
		digest := Keccak256(data)
		s, err = s.Push(word.FromBytes32(digest))
		if err != nil {
			return fail(err)
		}
		return step(s, expGas+Sha3WordGas(size.Uint64()))
	})

	register(JUMP, func(f *Frame) Delta {
		dest, s, err := f.Stack.Pop()
		if err != nil {
			return fail(err)
		}
		pc := int64(dest.Uint64())
		if !dest.IsUint64() || !f.jumpDests.IsValid(pc) {
			return fail(ErrInvalidJump)
		}
		return Delta{Stack: s, Jump: &pc, Continue: true}
	})

	register(JUMPI, func(f *Frame) Delta {
		dest, s, err := f.Stack.Pop()
		if err != nil {
			return fail(err)
		}
		cond, s, err := s.Pop()
		if err != nil {
			return fail(err)
		}
		if word.IsZero(cond) {
			return step(s, 0)
		}
		pc := int64(dest.Uint64())
		if !dest.IsUint64() || !f.jumpDests.IsValid(pc) {
			return fail(ErrInvalidJump)
		}
		return Delta{Stack: s, Jump: &pc, Continue: true}
	})

	register(JUMPDEST, func(f *Frame) Delta {
		return step(f.Stack, 0)
	})

	register(PC, func(f *Frame) Delta {
		return pushConst(f, word.FromUint64(uint64(f.PC)))
	})

	register(GAS, func(f *Frame) Delta {
		// f.GasLeft here is the pre-charge balance; the frame executor
		// charges GAS's own MinGas after the handler returns, so the
		// pushed value must already reflect that deduction.
		return pushConst(f, word.FromUint64(uint64(f.GasLeft-MinGas(GAS))))
	})

	register(STOP, func(f *Frame) Delta {
		return Delta{Continue: false}
	})

	register(RETURN, func(f *Frame) Delta {
		offset, s, err := f.Stack.Pop()
		if err != nil {
			return fail(err)
		}
		size, s, err := s.Pop()
		if err != nil {
			return fail(err)
		}
		data, gas, err := f.Memory.Read(offset.Uint64(), size.Uint64())
		if err != nil {
			return fail(err)
		}
		return Delta{Stack: s, GasCost: gas, ReturnData: data, Continue: false}
	})

	register(REVERT, func(f *Frame) Delta {
		offset, s, err := f.Stack.Pop()
		if err != nil {
			return fail(err)
		}
		size, s, err := s.Pop()
		if err != nil {
			return fail(err)
		}
		data, gas, err := f.Memory.Read(offset.Uint64(), size.Uint64())
		if err != nil {
			return fail(err)
		}
		d := revert(data)
		d.Stack = s
		d.GasCost = gas
		return d
	})

	register(INVALID, func(f *Frame) Delta {
		return fail(ErrInvalidOpcode)
	})
}

// makePush returns a handler that pushes the n immediate bytes following
// the opcode, zero-padded on the right if the bytecode ends early (the
// EVM reads past the end of code as implicit zeros).
func makePush(n int) Handler {
	return func(f *Frame) Delta {
		var buf [32]byte
		start := f.PC + 1
		code := f.Ctx.Bytecode
		for i := 0; i < n; i++ {
			if idx := start + int64(i); idx < int64(len(code)) {
				buf[32-n+i] = code[idx]
			}
		}
		v := word.FromBytes32(buf)
		s, err := f.Stack.Push(v)
		if err != nil {
			return fail(err)
		}
		return step(s, 0)
	}
}

// makeDup returns a handler that duplicates the n-th stack element.
func makeDup(n int) Handler {
	return func(f *Frame) Delta {
		s, err := f.Stack.Dup(n)
		if err != nil {
			return fail(err)
		}
		return step(s, 0)
	}
}

// makeSwap returns a handler that exchanges the top element with the
// n-th element beneath it.
func makeSwap(n int) Handler {
	return func(f *Frame) Delta {
		s, err := f.Stack.Swap(n)
		if err != nil {
			return fail(err)
		}
		return step(s, 0)
	}
}
