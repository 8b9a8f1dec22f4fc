package vm

import "github.com/chainkit/shevm/internal/word"

// registerContext wires the opcodes that project fields of Context and
// BlockHeader onto the stack, plus the calldata/code/returndata family.
// Grounded on the teacher's lfvm/instructions.go environment opcode
// handlers, which read the equivalent fields off runContext.
func registerContext() {
	register(ADDRESS, func(f *Frame) Delta { return pushConst(f, f.Ctx.Address) })
	register(ORIGIN, func(f *Frame) Delta { return pushConst(f, f.Ctx.Origin) })
	register(CALLER, func(f *Frame) Delta { return pushConst(f, f.Ctx.Caller) })
	register(CALLVALUE, func(f *Frame) Delta { return pushConst(f, f.Ctx.CallValue) })
	register(GASPRICE, func(f *Frame) Delta { return pushConst(f, f.Ctx.GasPrice) })

	register(BALANCE, func(f *Frame) Delta {
		addr, s, err := f.Stack.Pop()
		if err != nil {
			return fail(err)
		}
		bal := f.Ctx.State.Account(addr).Balance
		s, err = s.Push(bal)
		if err != nil {
			return fail(err)
		}
		return step(s, 0)
	})

	register(SELFBALANCE, func(f *Frame) Delta {
		return pushConst(f, f.Ctx.State.Account(f.Ctx.Address).Balance)
	})

	register(CALLDATASIZE, func(f *Frame) Delta {
		return pushConst(f, word.FromUint64(uint64(len(f.Ctx.CallData))))
	})

	register(CALLDATALOAD, func(f *Frame) Delta {
		offset, s, err := f.Stack.Pop()
		if err != nil {
			return fail(err)
		}
		var buf [32]byte
		readBounded(buf[:], f.Ctx.CallData, offset.Uint64())
		s, err = s.Push(word.FromBytes32(buf))
		if err != nil {
			return fail(err)
		}
		return step(s, 0)
	})

	register(CALLDATACOPY, func(f *Frame) Delta {
		return copyToMemory(f, f.Ctx.CallData)
	})

	register(CODESIZE, func(f *Frame) Delta {
		return pushConst(f, word.FromUint64(uint64(len(f.Ctx.Bytecode))))
	})

	register(CODECOPY, func(f *Frame) Delta {
		return copyToMemory(f, f.Ctx.Bytecode)
	})

	register(EXTCODESIZE, func(f *Frame) Delta {
		addr, s, err := f.Stack.Pop()
		if err != nil {
			return fail(err)
		}
		size := uint64(len(f.Ctx.State.Account(addr).Code))
		s, err = s.Push(word.FromUint64(size))
		if err != nil {
			return fail(err)
		}
		return step(s, 0)
	})

	register(EXTCODECOPY, func(f *Frame) Delta {
		addr, s, err := f.Stack.Pop()
		if err != nil {
			return fail(err)
		}
		f.Stack = s
		return copyToMemory(f, f.Ctx.State.Account(addr).Code)
	})

	register(EXTCODEHASH, func(f *Frame) Delta {
		addr, s, err := f.Stack.Pop()
		if err != nil {
			return fail(err)
		}
		acc := f.Ctx.State.Account(addr)
		digest := Keccak256(acc.Code)
		s, err = s.Push(word.FromBytes32(digest))
		if err != nil {
			return fail(err)
		}
		return step(s, 0)
	})

	register(RETURNDATASIZE, func(f *Frame) Delta {
		return pushConst(f, word.FromUint64(uint64(len(f.ReturnData))))
	})

	register(RETURNDATACOPY, func(f *Frame) Delta {
		destOffset, s, err := f.Stack.Pop()
		if err != nil {
			return fail(err)
		}
		srcOffset, s, err := s.Pop()
		if err != nil {
			return fail(err)
		}
		size, s, err := s.Pop()
		if err != nil {
			return fail(err)
		}
		end := srcOffset.Uint64() + size.Uint64()
		if !srcOffset.IsUint64() || !size.IsUint64() || end < srcOffset.Uint64() || end > uint64(len(f.ReturnData)) {
			return fail(ErrReturnDataBounds)
		}
		gas, err := f.Memory.Write(destOffset.Uint64(), f.ReturnData[srcOffset.Uint64():end])
		if err != nil {
			return fail(err)
		}
		return step(s, gas)
	})

	register(BLOCKHASH, func(f *Frame) Delta {
		// No historical block store is modeled; every lookup returns zero,
		// which is what a real EVM also does for any block outside the
		// trailing-256-block window.
		_, s, err := f.Stack.Pop()
		if err != nil {
			return fail(err)
		}
		s, err = s.Push(word.Zero())
		if err != nil {
			return fail(err)
		}
		return step(s, 0)
	})

	register(COINBASE, func(f *Frame) Delta { return pushConst(f, f.Ctx.Block.Coinbase) })
	register(TIMESTAMP, func(f *Frame) Delta { return pushConst(f, f.Ctx.Block.Timestamp) })
	register(NUMBER, func(f *Frame) Delta { return pushConst(f, f.Ctx.Block.Number) })
	register(DIFFICULTY, func(f *Frame) Delta { return pushConst(f, f.Ctx.Block.Difficulty) })
	register(GASLIMIT, func(f *Frame) Delta { return pushConst(f, f.Ctx.Block.GasLimit) })
	register(CHAINID, func(f *Frame) Delta { return pushConst(f, f.Ctx.Block.ChainID) })
	register(BASEFEE, func(f *Frame) Delta { return pushConst(f, f.Ctx.Block.BaseFee) })
}

// readBounded copies src[offset:offset+len(dst)] into dst, zero-filling
// any portion that falls outside src's bounds (CALLDATALOAD's
// read-past-the-end-is-zero semantics).
func readBounded(dst, src []byte, offset uint64) {
	if offset >= uint64(len(src)) {
		return
	}
	copy(dst, src[offset:])
}

// copyToMemory implements the *COPY family: pop (destOffset, srcOffset,
// size), then copy size bytes of src starting at srcOffset into memory at
// destOffset, zero-filling past src's end.
func copyToMemory(f *Frame, src []byte) Delta {
	destOffset, s, err := f.Stack.Pop()
	if err != nil {
		return fail(err)
	}
	srcOffset, s, err := s.Pop()
	if err != nil {
		return fail(err)
	}
	size, s, err := s.Pop()
	if err != nil {
		return fail(err)
	}
	n := size.Uint64()
	buf := make([]byte, n)
	if off := srcOffset.Uint64(); off < uint64(len(src)) {
		copy(buf, src[off:])
	}
	gas, err := f.Memory.Write(destOffset.Uint64(), buf)
	if err != nil {
		return fail(err)
	}
	return step(s, gas+3*int64(word.SizeInWords(n)))
}
