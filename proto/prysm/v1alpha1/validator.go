package eth

import "github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"

// Validator is the registry record of a single validator.
type Validator struct {
	PublicKey        [48]byte
	EffectiveBalance uint64
	ActivationEpoch  primitives.Epoch
	ExitEpoch        primitives.Epoch
}

// Copy returns a copy of the validator record.
func (v *Validator) Copy() *Validator {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}
