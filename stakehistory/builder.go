package stakehistory

import "stakeengine/epoch"

// Contributor is anything that can report its own effective/activating/
// deactivating triple for a target epoch against a history snapshot. It is
// satisfied structurally by *stake.Stake without stakehistory importing the
// stake package (which itself depends on stakehistory.History as an
// argument type) — the history builder only ever needs this narrow surface.
type Contributor interface {
	ActivatingAndDeactivating(target epoch.Epoch, history *History) (effective, activating, deactivating uint64)
}

// BuildEntry folds every live stake's effective/activating/deactivating
// triple at epoch into a single Entry. priorHistory supplies
// the epoch E-1 (and older) aggregates each stake's arithmetic needs; it
// must not already contain an entry for epoch itself when this is first
// computed for that epoch boundary.
func BuildEntry(target epoch.Epoch, stakes []Contributor, priorHistory *History) Entry {
	var total Entry
	for _, s := range stakes {
		effective, activating, deactivating := s.ActivatingAndDeactivating(target, priorHistory)
		total = total.Add(Entry{Effective: effective, Activating: activating, Deactivating: deactivating})
	}
	return total
}
