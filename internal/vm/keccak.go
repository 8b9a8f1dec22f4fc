package vm

import (
	"sync"

	"golang.org/x/crypto/sha3"
)

// hasherPool recycles Keccak-256 hash.Hash instances across calls, the
// same pattern the teacher's lfvm/keccak.go uses for its pure-Go fallback
// (keccak256_Go) — this interpreter always uses that path since it has no
// cgo dependency to call into.
var hasherPool = sync.Pool{
	New: func() any { return sha3.NewLegacyKeccak256() },
}

// Keccak256 returns the Keccak-256 digest of data.
func Keccak256(data []byte) [32]byte {
	h := hasherPool.Get().(interface {
		Reset()
		Write([]byte) (int, error)
		Sum([]byte) []byte
	})
	h.Reset()
	h.Write(data)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	hasherPool.Put(h)
	return out
}
