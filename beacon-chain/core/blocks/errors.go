package blocks

import "github.com/pkg/errors"

// Rejection kinds of an attestation. Every error returned by attestation
// verification wraps exactly one of these.
var (
	// ErrStructural is returned for an out of range committee index, a committee
	// shard mismatch or an aggregation bitlist that does not match its committee.
	ErrStructural = errors.New("malformed attestation")
	// ErrTiming is returned for an attestation outside its inclusion window or
	// whose target epoch is not the epoch of its slot.
	ErrTiming = errors.New("invalid attestation timing")
	// ErrSourceMismatch is returned when the source checkpoint is not the
	// justified checkpoint required for the target epoch.
	ErrSourceMismatch = errors.New("source checkpoint mismatch")
	// ErrCrosslinkChain is returned when the crosslink does not extend the
	// shard's committed crosslink.
	ErrCrosslinkChain = errors.New("crosslink does not chain")
	// ErrSignature is returned when the aggregate signature does not verify.
	ErrSignature = errors.New("attestation signature did not verify")
)

// ErrorKind returns a short name for the rejection kind wrapped by err, or
// "unknown" for any other error.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrStructural):
		return "structural"
	case errors.Is(err, ErrTiming):
		return "timing"
	case errors.Is(err, ErrSourceMismatch):
		return "source_mismatch"
	case errors.Is(err, ErrCrosslinkChain):
		return "crosslink_chain"
	case errors.Is(err, ErrSignature):
		return "signature"
	default:
		return "unknown"
	}
}
