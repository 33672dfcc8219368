// Package primitives defines the integer types used throughout beacon chain
// consensus code. Distinct types prevent mixing up slots, epochs, shards and
// validator indices at compile time.
package primitives

import "fmt"

// Slot represents a single slot.
type Slot uint64

// Mul multiplies slot by x.
func (s Slot) Mul(x uint64) Slot {
	return Slot(uint64(s) * x)
}

// Div divides slot by x. It panics on division by zero like plain integer division.
func (s Slot) Div(x uint64) Slot {
	return Slot(uint64(s) / x)
}

// Add increases slot by x.
func (s Slot) Add(x uint64) Slot {
	return Slot(uint64(s) + x)
}

// Sub subtracts x from the slot, saturating at zero.
func (s Slot) Sub(x uint64) Slot {
	if uint64(s) < x {
		return 0
	}
	return Slot(uint64(s) - x)
}

// Mod returns the slot modulo x.
func (s Slot) Mod(x uint64) Slot {
	return Slot(uint64(s) % x)
}

// String returns the decimal representation of the slot.
func (s Slot) String() string {
	return fmt.Sprintf("%d", uint64(s))
}
