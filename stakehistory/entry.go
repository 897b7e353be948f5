// Package stakehistory implements the per-epoch aggregate of effective,
// activating, and deactivating stake across every live delegation
// It is the shared, read-mostly ledger every
// Stake's warmup/cooldown arithmetic depends on.
package stakehistory

import "stakeengine/epoch"

// Entry is the aggregate over all stakes for a single epoch.
type Entry struct {
	Effective    uint64
	Activating   uint64
	Deactivating uint64
}

// Add returns the pointwise sum of e and other. It never mutates either
// receiver, matching the fold semantics the history builder relies on
// at the same epoch.
func (e Entry) Add(other Entry) Entry {
	return Entry{
		Effective:    e.Effective + other.Effective,
		Activating:   e.Activating + other.Activating,
		Deactivating: e.Deactivating + other.Deactivating,
	}
}

// epochEntry pairs an epoch with its aggregate for ordered iteration.
type epochEntry struct {
	Epoch epoch.Epoch
	Entry Entry
}
