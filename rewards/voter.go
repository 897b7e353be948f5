// Package rewards implements the reward-redemption arithmetic: walking a
// voter's per-epoch credit history against a stake's effective amount and
// producing a split payout plus an advanced watermark. The vote program
// itself is out of scope; only the narrow surface below is consumed.
package rewards

import "stakeengine/epoch"

// EpochCredit is one entry of a voter's lifetime credit history: the
// cumulative credit counter at the start and end of epoch. By construction
// EpochCredits()[i].Credits == EpochCredits()[i+1].PrevCredits.
type EpochCredit struct {
	Epoch       epoch.Epoch
	Credits     uint64
	PrevCredits uint64
}

// VoterState is the narrow surface this engine consumes from the vote
// program.
type VoterState interface {
	// Credits returns the voter's lifetime credit count.
	Credits() uint64

	// EpochCredits returns the voter's per-epoch credit history in
	// ascending epoch order.
	EpochCredits() []EpochCredit

	// CommissionSplit splits total rewards between the voter and the
	// staker, returning (voterShare, stakerShare, isSplit). isSplit is
	// false when the voter takes 100% or 0% commission (nothing to
	// actually split), true otherwise.
	CommissionSplit(total float64) (voterShare, stakerShare float64, isSplit bool)
}
