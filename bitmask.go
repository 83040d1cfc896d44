package ecsim

import (
	"math/bits"
)

// Bitmask is a 256-bit bitmask used for tracking component presence on an
// agent. It supports up to 256 unique component kinds.
type Bitmask [4]uint64

// Set sets the bit for the given kind.
func (m *Bitmask) Set(k Kind) {
	m[k/64] |= 1 << (k % 64)
}

// Clear clears the bit for the given kind.
func (m *Bitmask) Clear(k Kind) {
	m[k/64] &^= 1 << (k % 64)
}

// Has returns true if the bit for the given kind is set.
func (m *Bitmask) Has(k Kind) bool {
	return m[k/64]&(1<<(k%64)) != 0
}

// ContainsAll returns true if all bits set in other are also set in m.
// This is how component template filters are evaluated.
func (m *Bitmask) ContainsAll(other Bitmask) bool {
	return (m[0]&other[0] == other[0]) &&
		(m[1]&other[1] == other[1]) &&
		(m[2]&other[2] == other[2]) &&
		(m[3]&other[3] == other[3])
}

// IsZero returns true if no bits are set.
func (m *Bitmask) IsZero() bool {
	return m[0] == 0 && m[1] == 0 && m[2] == 0 && m[3] == 0
}

// Count returns the number of bits set.
func (m *Bitmask) Count() int {
	return bits.OnesCount64(m[0]) +
		bits.OnesCount64(m[1]) +
		bits.OnesCount64(m[2]) +
		bits.OnesCount64(m[3])
}
