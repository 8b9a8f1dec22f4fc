package vm

// Instruction is one entry of the dense opcode table: its mnemonic (for
// tracing), its minimum gas cost, and the handler that computes its
// Delta. A nil Handler marks an unmapped opcode, which the frame executor
// treats identically to 0xFE INVALID.
type Instruction struct {
	Mnemonic string
	MinGas   int64
	Handler  Handler
}

var instructionTable [256]Instruction

func register(op OpCode, h Handler) {
	instructionTable[op] = Instruction{
		Mnemonic: op.String(),
		MinGas:   MinGas(op),
		Handler:  h,
	}
}

func init() {
	registerArithmetic()
	registerBitwise()
	registerStackMemoryControl()
	registerContext()
	registerStorage()
	registerLogs()
	registerCalls()

	// PUSH0..PUSH32, DUP1..DUP16, SWAP1..SWAP16 are generated by small
	// factories rather than 65 hand-written handlers, per spec.md §9's
	// REDESIGN FLAG asking for "parameterized generators keyed on a
	// single length/count field".
	register(PUSH0, makePush(0))
	for n := 1; n <= 32; n++ {
		register(OpCode(int(PUSH1)+n-1), makePush(n))
	}
	for n := 1; n <= 16; n++ {
		register(OpCode(int(DUP1)+n-1), makeDup(n))
	}
	for n := 1; n <= 16; n++ {
		register(OpCode(int(SWAP1)+n-1), makeSwap(n))
	}
}
