package vm

import (
	"testing"

	"github.com/chainkit/shevm/internal/word"
)

func addressWord(b byte) Word {
	return word.FromUint64(uint64(b))
}

func TestCallToEmptyCodeAccountTransfersValueAndSucceeds(t *testing.T) {
	callee := addressWord(0xAA)
	state := State{}
	state.Account(callee) // materialize, leave code empty

	caller := Address{}
	ctx := &Context{
		Address:  caller,
		GasLeft:  1_000_000,
		State:    state,
		// retSize, retOffset, argsSize, argsOffset, value=1000, address=0xAA, gas=1000000, CALL
		Bytecode: mustDecode(t, "60006000600060006103E860AA620F4240F1"),
	}
	state.Account(caller).Balance = word.FromUint64(5000)

	r := Execute(ctx)
	if !r.Success {
		t.Fatalf("expected top-level frame to succeed, stack=%v", r.Stack)
	}
	if len(r.Stack) != 1 || r.Stack[0].Uint64() != 1 {
		t.Fatalf("expected CALL to report success (1), got %v", r.Stack)
	}
	if state.Account(callee).Balance.Uint64() != 1000 {
		t.Fatalf("expected callee to receive 1000, got %d", state.Account(callee).Balance.Uint64())
	}
	if state.Account(caller).Balance.Uint64() != 4000 {
		t.Fatalf("expected caller balance to drop to 4000, got %d", state.Account(caller).Balance.Uint64())
	}
}

func TestDelegatecallIntoLibrarySucceeds(t *testing.T) {
	libAddr := addressWord(0xBB)
	state := State{}
	// Library code: ADDRESS, PUSH1 0, MSTORE, PUSH1 32, PUSH1 0, RETURN
	state.Account(libAddr).Code = mustDecode(t, "3060005260206000F3")

	ctx := &Context{
		Address:   addressWord(0x01),
		CallValue: word.FromUint64(77),
		GasLeft:   1_000_000,
		State:     state,
		Bytecode:  mustDecode(t, "600060006000600060BB5AF4"),
	}
	r := Execute(ctx)
	if !r.Success {
		t.Fatalf("expected success, stack=%v", r.Stack)
	}
	if len(r.Stack) != 1 || r.Stack[0].Uint64() != 1 {
		t.Fatalf("expected DELEGATECALL to report success, got %v", r.Stack)
	}
}

func TestStaticcallRejectsSstoreInCallee(t *testing.T) {
	calleeAddr := addressWord(0xCC)
	state := State{}
	// Callee: PUSH1 1, PUSH1 0, SSTORE
	state.Account(calleeAddr).Code = mustDecode(t, "6001600055")

	ctx := &Context{
		Address:  addressWord(0x01),
		GasLeft:  1_000_000,
		State:    state,
		// retSize, retOffset, argsSize, argsOffset, address=0xCC, gas, STATICCALL
		Bytecode: mustDecode(t, "600060006000600060CC5AFA"),
	}
	r := Execute(ctx)
	if !r.Success {
		t.Fatalf("expected the top-level frame itself to succeed regardless of the sub-call's outcome")
	}
	if len(r.Stack) != 1 || r.Stack[0].Uint64() != 0 {
		t.Fatalf("expected STATICCALL's pushed result to be 0 (sub-call failed), got %v", r.Stack)
	}
}
