package epoch

import "github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"

// sortableIndices implements the Sort interface to sort attesting validator
// indices by index number.
type sortableIndices []primitives.ValidatorIndex

// Len is the number of elements in the collection.
func (s sortableIndices) Len() int { return len(s) }

// Swap swaps the elements with indexes i and j.
func (s sortableIndices) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

// Less reports whether the element with index i must sort before the element with index j.
func (s sortableIndices) Less(i, j int) bool { return s[i] < s[j] }
