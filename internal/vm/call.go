package vm

import "github.com/chainkit/shevm/internal/word"

// MaxCallDepth bounds call nesting, mirroring the EVM's 1024-deep call
// stack limit.
const MaxCallDepth = 1024

// Execute is the call dispatcher's entry point: it runs ctx as a fresh
// top-level frame. CALL/DELEGATECALL/STATICCALL below invoke it
// recursively to drive nested frames, folding the nested Result back into
// the parent frame's stack, memory, and returndata.
func Execute(ctx *Context) Result {
	return Run(ctx)
}

// registerCalls wires CALL, DELEGATECALL, and STATICCALL. CREATE/CREATE2/
// SELFDESTRUCT are non-goals (see opcodes.go) and are left unmapped.
func registerCalls() {
	register(CALL, func(f *Frame) Delta { return dispatchCall(f, callKindCall) })
	register(DELEGATECALL, func(f *Frame) Delta { return dispatchCall(f, callKindDelegate) })
	register(STATICCALL, func(f *Frame) Delta { return dispatchCall(f, callKindStatic) })
}

type callKind int

const (
	callKindCall callKind = iota
	callKindDelegate
	callKindStatic
)

// dispatchCall implements the shared argument-popping, sub-Context
// construction, gas-forwarding, and result-folding logic for all three
// call opcodes, grounded on the teacher's lfvm genericCall/opCall family.
func dispatchCall(f *Frame, kind callKind) Delta {
	gasArg, s, err := f.Stack.Pop()
	if err != nil {
		return fail(err)
	}
	addr, s, err := s.Pop()
	if err != nil {
		return fail(err)
	}

	var value Word
	if kind == callKindCall {
		value, s, err = s.Pop()
		if err != nil {
			return fail(err)
		}
		if f.Ctx.IsStatic && !word.IsZero(value) {
			return fail(ErrStaticViolation)
		}
	}

	argsOffset, s, err := s.Pop()
	if err != nil {
		return fail(err)
	}
	argsSize, s, err := s.Pop()
	if err != nil {
		return fail(err)
	}
	retOffset, s, err := s.Pop()
	if err != nil {
		return fail(err)
	}
	retSize, s, err := s.Pop()
	if err != nil {
		return fail(err)
	}

	if f.Ctx.Depth+1 > MaxCallDepth {
		s, perr := s.Push(word.Zero())
		if perr != nil {
			return fail(perr)
		}
		return step(s, 0)
	}

	argsData, expGas1, err := f.Memory.Read(argsOffset.Uint64(), argsSize.Uint64())
	if err != nil {
		return fail(err)
	}
	// The return-data window is validated for gas-accounting purposes by
	// touching it now; the sub-call's actual output is copied back below
	// once its length is known.
	_, expGas2, err := f.Memory.Read(retOffset.Uint64(), retSize.Uint64())
	if err != nil {
		return fail(err)
	}
	expGas := expGas1 + expGas2

	// entry.MinGas (the opcode's static 100-gas base cost) is charged by
	// the frame executor on top of this Delta's GasCost; only the dynamic
	// value-transfer surcharge needs accounting for here.
	valueTransferGas := int64(0)
	stipend := int64(0)
	if kind == callKindCall && !word.IsZero(value) {
		valueTransferGas = CallValueTransferGas
		stipend = CallGasStipend
	}

	gasAfterBase := f.GasLeft - expGas - MinGas(opFor(kind)) - valueTransferGas
	forwarded := ForwardedCallGas(gasAfterBase, callGasArg(gasArg))

	callee := addr
	calleeCode := f.Ctx.State.Account(callee).Code

	subCtx := &Context{
		Address:   calleeAddress(kind, f.Ctx, callee),
		Caller:    callerAddress(kind, f.Ctx, callee),
		Origin:    f.Ctx.Origin,
		GasPrice:  f.Ctx.GasPrice,
		GasLeft:   forwarded + stipend,
		IsStatic:  f.Ctx.IsStatic || kind == callKindStatic,
		CallValue: callValue(kind, f.Ctx, value),
		CallData:  argsData,
		Bytecode:  calleeCode,
		Block:     f.Ctx.Block,
		State:     f.Ctx.State,
		Depth:     f.Ctx.Depth + 1,
	}

	if kind == callKindCall && !word.IsZero(value) {
		transferValue(f.Ctx.State, f.Ctx.Address, callee, value)
	}

	var sub Result
	if len(calleeCode) == 0 {
		// Calling an account with no code is a no-op beyond any value
		// transfer already applied above; it trivially succeeds with no
		// returndata, per spec.md's empty-code-account resolution.
		sub = Result{Success: true, GasLeft: subCtx.GasLeft}
	} else {
		sub = Execute(subCtx)
	}

	gasUsed := (forwarded + stipend) - sub.GasLeft
	if gasUsed < 0 {
		gasUsed = 0
	}

	copySize := retSize.Uint64()
	if uint64(len(sub.ReturnData)) < copySize {
		copySize = uint64(len(sub.ReturnData))
	}
	if copySize > 0 {
		if _, werr := f.Memory.Write(retOffset.Uint64(), sub.ReturnData[:copySize]); werr != nil {
			return fail(werr)
		}
	}
	f.ReturnData = sub.ReturnData

	result := word.Zero()
	if sub.Success {
		result = word.One()
	}
	s, err = s.Push(result)
	if err != nil {
		return fail(err)
	}
	return Delta{Stack: s, GasCost: expGas + valueTransferGas + gasUsed, Continue: true}
}

func opFor(kind callKind) OpCode {
	switch kind {
	case callKindDelegate:
		return DELEGATECALL
	case callKindStatic:
		return STATICCALL
	default:
		return CALL
	}
}

// callGasArg caps the requested gas argument at a value ForwardedCallGas
// can treat as "unbounded" when the stack pushed more than an int64 can
// hold; such a request is always clamped to the 63/64 ceiling anyway.
func callGasArg(v Word) int64 {
	if !v.IsUint64() || v.Uint64() > 1<<62 {
		return -1
	}
	return int64(v.Uint64())
}

func calleeAddress(kind callKind, caller *Context, callee Word) Word {
	if kind == callKindDelegate {
		return caller.Address
	}
	return callee
}

func callerAddress(kind callKind, caller *Context, callee Word) Word {
	if kind == callKindDelegate {
		return caller.Caller
	}
	return caller.Address
}

func callValue(kind callKind, caller *Context, value Word) Word {
	if kind == callKindDelegate {
		return caller.CallValue
	}
	return value
}

func transferValue(state State, from, to Word, value Word) {
	fromAcc := state.Account(from)
	toAcc := state.Account(to)
	fromAcc.Balance = word.Sub(fromAcc.Balance, value)
	toAcc.Balance = word.Add(toAcc.Balance, value)
}
