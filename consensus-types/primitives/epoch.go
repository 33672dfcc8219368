package primitives

import "fmt"

// Epoch represents a single epoch.
type Epoch uint64

// Add increases epoch by x.
func (e Epoch) Add(x uint64) Epoch {
	return Epoch(uint64(e) + x)
}

// Sub subtracts x from the epoch, saturating at zero.
func (e Epoch) Sub(x uint64) Epoch {
	if uint64(e) < x {
		return 0
	}
	return Epoch(uint64(e) - x)
}

// Mod returns the epoch modulo x.
func (e Epoch) Mod(x uint64) Epoch {
	return Epoch(uint64(e) % x)
}

// String returns the decimal representation of the epoch.
func (e Epoch) String() string {
	return fmt.Sprintf("%d", uint64(e))
}

// MinEpoch returns the smaller of the two epochs.
func MinEpoch(a, b Epoch) Epoch {
	if a < b {
		return a
	}
	return b
}

// MaxEpoch returns the larger of the two epochs.
func MaxEpoch(a, b Epoch) Epoch {
	if a > b {
		return a
	}
	return b
}
