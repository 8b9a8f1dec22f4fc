package vm

import "github.com/chainkit/shevm/internal/word"

// Memory is the linear, byte-addressable, auto-expanding memory of a
// single frame. Its length is always a multiple of 32 bytes. Expansion is
// lazy: reads and writes grow the buffer to cover the accessed range and
// charge the incremental quadratic cost, grounded on the teacher's
// Memory.getExpansionCosts/expandMemory pair.
type Memory struct {
	store       []byte
	currentCost int64
}

// NewMemory returns an empty memory.
func NewMemory() *Memory { return &Memory{} }

// Len returns the current memory size in bytes (always a multiple of 32).
func (m *Memory) Len() uint64 { return uint64(len(m.store)) }

// Bytes returns the memory's current backing contents. Callers must treat
// this as read-only; it is exposed for producing a final Result.Memory
// snapshot.
func (m *Memory) Bytes() []byte { return m.store }

func toWordMultiple(size uint64) uint64 {
	return word.SizeInWords(size) * 32
}

// expansionCost returns the absolute quadratic cost of having size bytes
// of memory: floor(words^2/512) + 3*words.
func expansionCost(size uint64) int64 {
	words := word.SizeInWords(size)
	return int64(words*words/512 + 3*words)
}

// ExpansionCost returns the incremental gas cost of growing memory to
// cover size bytes, given its current length. Returns 0 if the memory
// already covers size.
func (m *Memory) ExpansionCost(size uint64) int64 {
	if m.Len() >= size {
		return 0
	}
	size = toWordMultiple(size)
	return expansionCost(size) - m.currentCost
}

// ensure grows the memory to cover offset+size bytes (rounded up to a
// 32-byte multiple) and charges the incremental cost against gasLeft. A
// size of 0 never triggers expansion, per spec.md's memory model. Returns
// the additional gas charged and an error if offset+size overflows a
// uint64 or the resulting size would exceed what can be charged for
// within the available gas.
func (m *Memory) ensure(offset, size uint64) (gasCost int64, err error) {
	if size == 0 {
		return 0, nil
	}
	needed := offset + size
	if needed < offset {
		return 0, ErrGasUintOverflow
	}
	if m.Len() >= needed {
		return 0, nil
	}
	cost := m.ExpansionCost(needed)
	newLen := toWordMultiple(needed)
	m.currentCost += cost
	if grown := int(newLen) - len(m.store); grown > 0 {
		m.store = append(m.store, make([]byte, grown)...)
	}
	return cost, nil
}

// Read returns a copy of size bytes starting at offset, expanding memory
// as needed and reporting the gas cost of any expansion. Reading beyond
// what has been written yields zero bytes, since expansion zero-fills.
func (m *Memory) Read(offset, size uint64) (data []byte, gasCost int64, err error) {
	gasCost, err = m.ensure(offset, size)
	if err != nil {
		return nil, 0, err
	}
	if size == 0 {
		return nil, gasCost, nil
	}
	out := make([]byte, size)
	copy(out, m.store[offset:offset+size])
	return out, gasCost, nil
}

// Write copies data into memory starting at offset, expanding as needed.
func (m *Memory) Write(offset uint64, data []byte) (gasCost int64, err error) {
	gasCost, err = m.ensure(offset, uint64(len(data)))
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return gasCost, nil
	}
	copy(m.store[offset:offset+uint64(len(data))], data)
	return gasCost, nil
}

// WriteWord writes a 32-byte big-endian word at offset (MSTORE).
func (m *Memory) WriteWord(offset uint64, v Word) (gasCost int64, err error) {
	gasCost, err = m.ensure(offset, 32)
	if err != nil {
		return 0, err
	}
	b := v.Bytes32()
	copy(m.store[offset:offset+32], b[:])
	return gasCost, nil
}

// WriteByte writes the single low-order byte of v at offset (MSTORE8).
func (m *Memory) WriteByte(offset uint64, v byte) (gasCost int64, err error) {
	gasCost, err = m.ensure(offset, 1)
	if err != nil {
		return 0, err
	}
	m.store[offset] = v
	return gasCost, nil
}

// ReadWord reads 32 bytes at offset as a big-endian word (MLOAD).
func (m *Memory) ReadWord(offset uint64) (Word, int64, error) {
	data, cost, err := m.Read(offset, 32)
	if err != nil {
		return Word{}, 0, err
	}
	var b [32]byte
	copy(b[:], data)
	return word.FromBytes32(b), cost, nil
}
