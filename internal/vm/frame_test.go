package vm

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/chainkit/shevm/internal/word"
)

func mustDecode(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("invalid hex %q: %v", s, err)
	}
	return b
}

func runCode(t *testing.T, codeHex string, gas int64) Result {
	t.Helper()
	ctx := &Context{
		GasLeft:  gas,
		Bytecode: mustDecode(t, codeHex),
		State:    State{},
	}
	return Execute(ctx)
}

func TestPushAndAdd(t *testing.T) {
	r := runCode(t, "6001600201", 1_000_000)
	if !r.Success {
		t.Fatalf("expected success")
	}
	if len(r.Stack) != 1 || r.Stack[0].Uint64() != 3 {
		t.Fatalf("expected stack=[3], got %v", r.Stack)
	}
}

func TestUnsignedOverflow(t *testing.T) {
	code := "7F" + "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF" + "600101"
	r := runCode(t, code, 1_000_000)
	if !r.Success {
		t.Fatalf("expected success")
	}
	if len(r.Stack) != 1 || !word.IsZero(r.Stack[0]) {
		t.Fatalf("expected stack=[0], got %v", r.Stack)
	}
}

func TestDivisionByZeroThenReturn(t *testing.T) {
	r := runCode(t, "600060000460005260206000F3", 1_000_000)
	if !r.Success {
		t.Fatalf("expected success")
	}
	want := make([]byte, 32)
	if !bytes.Equal(r.ReturnData, want) {
		t.Fatalf("expected 32 zero bytes, got %x", r.ReturnData)
	}
}

func TestConditionalJumpTaken(t *testing.T) {
	// PUSH1 1, PUSH1 6, JUMPI, INVALID, JUMPDEST (offset 6), PUSH1 0x42
	r := runCode(t, "6001600657FE5B6042", 1_000_000)
	if !r.Success {
		t.Fatalf("expected success, logs=%v", r.Logs)
	}
	if len(r.Stack) != 1 || r.Stack[0].Uint64() != 0x42 {
		t.Fatalf("expected stack=[0x42], got %v", r.Stack)
	}
}

func TestStackUnderflow(t *testing.T) {
	r := runCode(t, "01", 1_000_000)
	if r.Success {
		t.Fatalf("expected failure")
	}
}

func TestMemoryExpansionGas(t *testing.T) {
	r := runCode(t, "60016201000052", 1_000_000)
	if !r.Success {
		t.Fatalf("expected success")
	}
	used := int64(1_000_000) - r.GasLeft
	want := int64(3+3+3) + expansionCost(65568)
	if used != want {
		t.Fatalf("expected gas used %d, got %d", want, used)
	}
}

func TestInvalidJumpDestination(t *testing.T) {
	// PUSH1 0x03, JUMP, STOP, JUMPDEST -- jumping to 3 lands on the STOP,
	// one byte before the JUMPDEST's own offset (4), so it is not a JUMPDEST.
	r := runCode(t, "600356005B", 1_000_000)
	if r.Success {
		t.Fatalf("expected failure for a non-JUMPDEST target")
	}
}

func TestJumpIntoPushImmediateIsRejected(t *testing.T) {
	// PUSH1 0x04, JUMP, PUSH1 0x5B: the 0x5B at PC 4 is PUSH1's immediate
	// data, not a real JUMPDEST, so the jump must fail.
	r := runCode(t, "600456605B", 1_000_000)
	if r.Success {
		t.Fatalf("expected failure: PC 4 is PUSH immediate data, not a JUMPDEST")
	}
}

func TestStopTerminatesSuccessfully(t *testing.T) {
	r := runCode(t, "00", 1_000_000)
	if !r.Success {
		t.Fatalf("expected success")
	}
}

func TestRevertRefundsGasAndCarriesData(t *testing.T) {
	// PUSH1 0x2A, PUSH1 0, MSTORE, PUSH1 32, PUSH1 0, REVERT
	r := runCode(t, "602A60005260206000FD", 1_000_000)
	if r.Success {
		t.Fatalf("expected REVERT to report failure")
	}
	if len(r.ReturnData) != 32 {
		t.Fatalf("expected 32 bytes of return data, got %d", len(r.ReturnData))
	}
	if r.GasLeft <= 0 {
		t.Fatalf("expected REVERT to leave unused gas, got %d", r.GasLeft)
	}
}

func TestOutOfGasZeroesRemainingGas(t *testing.T) {
	r := runCode(t, "6001600201", 1)
	if r.Success {
		t.Fatalf("expected out-of-gas failure")
	}
	if r.GasLeft != 0 {
		t.Fatalf("expected zero remaining gas after a fatal error, got %d", r.GasLeft)
	}
}

func TestSstoreSloadRoundTrip(t *testing.T) {
	// PUSH1 0x2A, PUSH1 0, SSTORE, PUSH1 0, SLOAD
	r := runCode(t, "602A600055600054", 1_000_000)
	if !r.Success {
		t.Fatalf("expected success")
	}
	if len(r.Stack) != 1 || r.Stack[0].Uint64() != 0x2A {
		t.Fatalf("expected SLOAD to read back 0x2A, got %v", r.Stack)
	}
}

func TestStaticContextRejectsSstore(t *testing.T) {
	ctx := &Context{
		GasLeft:  1_000_000,
		Bytecode: mustDecode(t, "6000600055"), // PUSH1 0, PUSH1 0, SSTORE
		State:    State{},
		IsStatic: true,
	}
	r := Execute(ctx)
	if r.Success {
		t.Fatalf("expected SSTORE under a static context to fail")
	}
}

func TestLogAppendsEntry(t *testing.T) {
	// PUSH1 0, PUSH1 0, MSTORE, PUSH1 0, PUSH1 0, LOG0
	r := runCode(t, "600060005260006000A0", 1_000_000)
	if !r.Success {
		t.Fatalf("expected success, got failure with stack=%v", r.Stack)
	}
	if len(r.Logs) != 1 {
		t.Fatalf("expected one log entry, got %d", len(r.Logs))
	}
}
