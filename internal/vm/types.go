package vm

import (
	"github.com/chainkit/shevm/internal/word"
)

// Word is the 256-bit stack element type; re-exported from the word
// package so callers of this package don't need to import both.
type Word = word.Word

// Address is a 256-bit word interpreted as a 20-byte account address
// (the low 20 bytes are significant, mirroring how the EVM stack pushes
// addresses zero-extended to a full word).
type Address = Word

// Revision identifies the hardfork instruction set this interpreter
// implements. Only Shanghai is supported; the type exists so the code
// documents its target the way tosca.Revision documents Tosca's.
type Revision int

const RevisionShanghai Revision = 0

// AccountState is the per-account tuple tracked in the world state: a
// balance, a nonce, optional immutable code, and a key/value storage map.
type AccountState struct {
	Balance Word
	Nonce   Word
	Code    []byte
	Storage map[Word]Word
}

// GetStorage returns the value stored at key, or the zero word if unset.
func (a *AccountState) GetStorage(key Word) Word {
	if a.Storage == nil {
		return word.Zero()
	}
	return a.Storage[key]
}

// SetStorage writes value at key, allocating the storage map on first use.
func (a *AccountState) SetStorage(key, value Word) {
	if a.Storage == nil {
		a.Storage = make(map[Word]Word)
	}
	a.Storage[key] = value
}

// State is the world state: a mapping from address to account state. It is
// shared by reference across nested call frames; per spec.md §5 and §9
// there is no snapshot/rollback, so writes made by a reverted or failed
// sub-frame are not undone.
type State map[Word]*AccountState

// Account returns the account at addr, creating an empty one if it does
// not yet exist. The world state is treated as trusted input: reads of an
// address never previously touched simply materialize a zero-value
// account, matching an EVM's "every address has an implicit empty
// account" semantics.
func (s State) Account(addr Address) *AccountState {
	acc, ok := s[addr]
	if !ok {
		acc = &AccountState{}
		s[addr] = acc
	}
	return acc
}

// Exists reports whether addr has been recorded in the world state at all
// (as opposed to Account, which materializes a fresh entry on read).
func (s State) Exists(addr Address) bool {
	_, ok := s[addr]
	return ok
}

// BlockHeader carries the block-scoped values contextual opcodes project
// onto the stack.
type BlockHeader struct {
	BaseFee    Word
	Coinbase   Word
	Timestamp  Word
	Number     Word
	Difficulty Word
	GasLimit   Word
	ChainID    Word
}

// Context is the immutable-per-frame execution environment: who is
// executing, on whose behalf, with what inputs, against which world
// state.
type Context struct {
	Address   Address
	Caller    Address
	Origin    Address
	GasPrice  Word
	GasLeft   int64
	IsStatic  bool
	CallValue Word
	CallData  []byte
	Bytecode  []byte
	Block     BlockHeader
	State     State
	Depth     int
}

// LogEntry is a single log record appended by a LOG instruction.
type LogEntry struct {
	Address Address
	Data    []byte
	Topics  []Word
}

// Result is what the call dispatcher returns to its caller: either a
// successful termination with output data and the mutated world state, or
// a failed one, in which case Stack/Memory reflect the state at the moment
// of failure. ReturnData of a failed Result is set only for a REVERT; any
// other failure leaves it empty.
type Result struct {
	Success    bool
	Stack      []Word // top-first
	Memory     []byte
	GasLeft    int64
	ReturnData []byte
	Logs       []LogEntry
	State      State
}
