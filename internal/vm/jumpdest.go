package vm

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// JumpDests is the precomputed set of valid jump destinations for one
// piece of bytecode: the byte offsets whose opcode is JUMPDEST and which
// were not skipped over as a PUSHn's immediate data.
type JumpDests []bool

// analyzeJumpDests scans code once, grounded on spec.md §4.3's
// "Valid-jump-dest precomputation": walk the bytecode, skip PUSHn's n
// immediate bytes, and mark any JUMPDEST byte not skipped over as valid.
func analyzeJumpDests(code []byte) JumpDests {
	dests := make(JumpDests, len(code))
	for pc := 0; pc < len(code); {
		op := OpCode(code[pc])
		if op.IsPush() {
			pc += 1 + op.PushSize()
			continue
		}
		if op == JUMPDEST {
			dests[pc] = true
		}
		pc++
	}
	return dests
}

// IsValid reports whether pc is a valid JUMP/JUMPI destination.
func (d JumpDests) IsValid(pc int64) bool {
	if pc < 0 || pc >= int64(len(d)) {
		return false
	}
	return d[pc]
}

// jumpDestCache memoizes analyzeJumpDests results by the Keccak256 hash of
// the bytecode, so repeated CALLs into the same deployed contract within a
// process don't re-scan its code on every frame. Grounded on the
// teacher's lfvm/converter.go, which caches its own (heavier) bytecode
// conversion behind the same hashicorp/golang-lru library.
type jumpDestCache struct {
	cache *lru.Cache[[32]byte, JumpDests]
}

func newJumpDestCache(size int) *jumpDestCache {
	c, err := lru.New[[32]byte, JumpDests](size)
	if err != nil {
		// Only returns an error for a non-positive size, which callers of
		// this package never pass.
		panic(err)
	}
	return &jumpDestCache{cache: c}
}

func (c *jumpDestCache) get(code []byte) JumpDests {
	key := Keccak256(code)
	if dests, ok := c.cache.Get(key); ok {
		return dests
	}
	dests := analyzeJumpDests(code)
	c.cache.Add(key, dests)
	return dests
}

// defaultJumpDestCacheSize bounds how many distinct code bodies' analyses
// are retained; large enough to cover a conformance test suite's worth of
// distinct contracts without unbounded growth.
const defaultJumpDestCacheSize = 1024

var sharedJumpDestCache = newJumpDestCache(defaultJumpDestCacheSize)
