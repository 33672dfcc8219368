package primitives

// Shard is the index of an independent shard data lane.
type Shard uint64

// ValidatorIndex is the index of a validator in the registry.
type ValidatorIndex uint64

// CommitteeIndex is the index of a committee within a slot.
type CommitteeIndex uint64

// Gwei is the denomination of validator balances.
type Gwei uint64

// DomainType is the four byte signature domain prefix.
type DomainType [4]byte
