package vm

// Delta is the value an instruction handler returns: a description of the
// state change to apply, not an in-place mutation. The frame executor
// (Frame.run) is solely responsible for charging gas and committing the
// change, per spec.md §4.3/§4.4.
//
// Memory is the main piece of RunState handlers mutate directly through
// *Memory's methods rather than threading it through Delta (the call
// handlers also replace the frame's ReturnData directly, and EXTCODECOPY
// stores the stack with its address popped before copying): byte-buffer
// copying on every instruction would be wasteful, and
// Memory's own expansion bookkeeping (ExpansionCost/ensure) already makes
// it safe to treat as a mutable resource scoped to exactly one frame, the
// same way the teacher's lfvm.context treats its *Memory field.
type Delta struct {
	Stack      Stack     // the stack after this instruction
	Jump       *int64    // non-nil => explicit new PC (JUMP/JUMPI); nil => default advance
	GasCost    int64     // additional gas beyond the opcode's minimum
	ReturnData []byte    // non-nil => replaces the frame's returndata
	Log        *LogEntry // non-nil => appended to the frame's logs
	Continue   bool      // false => this instruction terminates the frame successfully
	Err        error     // non-nil => this instruction terminates the frame (fatally, or via Revert)
}

// Handler is a pure(-ish, modulo Memory — see Delta) mapping from a
// frame's current state to the change the opcode produces.
type Handler func(f *Frame) Delta

// Frame is the mutable per-call-activation machine state: RunState in
// spec.md's terms. One Frame is created per top-level call and per nested
// CALL/DELEGATECALL/STATICCALL, and discarded when that frame terminates.
type Frame struct {
	Ctx        *Context
	PC         int64
	Stack      Stack
	Memory     *Memory
	ReturnData []byte
	Logs       []LogEntry
	GasLeft    int64
	jumpDests  JumpDests
}

// NewFrame creates the RunState for a fresh call activation over ctx.
func NewFrame(ctx *Context) *Frame {
	return &Frame{
		Ctx:       ctx,
		Stack:     NewStack(),
		Memory:    NewMemory(),
		GasLeft:   ctx.GasLeft,
		jumpDests: sharedJumpDestCache.get(ctx.Bytecode),
	}
}

// defaultNextPC returns the PC an opcode advances to absent an explicit
// jump: 1 byte, plus PUSHn's immediate data.
func defaultNextPC(op OpCode, pc int64) int64 {
	if op.IsPush() {
		return pc + 1 + int64(op.PushSize())
	}
	return pc + 1
}

// outcome describes how a frame finished executing.
type outcome int

const (
	outcomeRunning outcome = iota
	outcomeStopped
	outcomeReturned
	outcomeReverted
	outcomeFailed
)

// Run drives the fetch-decode-dispatch loop to completion and converts
// the terminal outcome into a Result, per spec.md §4.4.
func Run(ctx *Context) Result {
	f := NewFrame(ctx)
	out, err := f.run()
	return f.result(out, err)
}

func (f *Frame) run() (outcome, error) {
	for {
		// Loop invariant: PC points at the next opcode, or past the end of
		// the bytecode, in which case the frame terminates as if STOP had
		// executed.
		if f.PC < 0 || f.PC >= int64(len(f.Ctx.Bytecode)) {
			return outcomeStopped, nil
		}

		op := OpCode(f.Ctx.Bytecode[f.PC])
		entry := &instructionTable[op]
		if entry.Handler == nil {
			f.GasLeft = 0
			return outcomeFailed, ErrInvalidOpcode
		}

		delta := entry.Handler(f)

		cost := entry.MinGas + delta.GasCost
		if f.GasLeft-cost < 0 {
			f.GasLeft = 0
			return outcomeFailed, ErrOutOfGas
		}
		f.GasLeft -= cost

		if delta.Stack != nil {
			f.Stack = delta.Stack
		}
		if delta.ReturnData != nil {
			f.ReturnData = delta.ReturnData
		}
		if delta.Log != nil {
			f.Logs = append(f.Logs, *delta.Log)
		}

		if delta.Err != nil {
			if rv, ok := delta.Err.(*Revert); ok {
				f.ReturnData = rv.Data
				return outcomeReverted, nil
			}
			f.GasLeft = 0
			return outcomeFailed, delta.Err
		}

		if !delta.Continue {
			if op == RETURN {
				return outcomeReturned, nil
			}
			return outcomeStopped, nil
		}

		if delta.Jump != nil {
			f.PC = *delta.Jump
		} else {
			f.PC = defaultNextPC(op, f.PC)
		}
	}
}

func (f *Frame) result(out outcome, _ error) Result {
	switch out {
	case outcomeStopped:
		return Result{Success: true, GasLeft: f.GasLeft, Stack: f.Stack.TopFirst(), Memory: f.Memory.Bytes(), Logs: f.Logs, State: f.Ctx.State}
	case outcomeReturned:
		return Result{Success: true, GasLeft: f.GasLeft, ReturnData: f.ReturnData, Stack: f.Stack.TopFirst(), Memory: f.Memory.Bytes(), Logs: f.Logs, State: f.Ctx.State}
	case outcomeReverted:
		return Result{Success: false, GasLeft: f.GasLeft, ReturnData: f.ReturnData, Stack: f.Stack.TopFirst(), Memory: f.Memory.Bytes(), Logs: f.Logs, State: f.Ctx.State}
	case outcomeFailed:
		return Result{Success: false, GasLeft: 0, Stack: f.Stack.TopFirst(), Memory: f.Memory.Bytes(), Logs: f.Logs, State: f.Ctx.State}
	default:
		panic("unreachable outcome")
	}
}
