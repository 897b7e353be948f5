// Package epoch defines the epoch numbering used throughout the staking
// engine: a monotonically increasing counter plus the two sentinel uses of
// its maximum value (bootstrap activation, never-deactivated).
package epoch

import "math"

// Epoch is the protocol's epoch counter.
type Epoch = uint64

// Max is the sentinel meaning "never": a bootstrap stake's activation epoch,
// or a stake that has not been told to deactivate.
const Max Epoch = math.MaxUint64

// IsMax reports whether e is the sentinel.
func IsMax(e Epoch) bool {
	return e == Max
}
