package rewards

import (
	"math"

	"stakeengine/epoch"
	"stakeengine/stake"
	"stakeengine/stakehistory"
)

// Result is the outcome of a successful reward calculation.
type Result struct {
	VoterReward        uint64
	StakerReward       uint64
	NewCreditsObserved uint64
}

// Calculate walks voter's per-epoch credit history against s's effective
// stake in each of those epochs and produces a split payout.
// It returns ok == false when there is nothing to collect: either the
// staker has already observed every credit the voter has earned, the
// collectible total rounds to less than one lamport, or a non-trivial
// commission split would leave one side with less than one lamport.
//
// The caller (account.RedeemVoteCredits) surfaces ok == false as
// errors.NothingToCollect() — the CustomError(1) sentinel.
//
// Step ordering below is load-bearing: the watermark only tightens *after*
// an epoch's contribution is computed, so an epoch straddling the prior
// observation still earns partial credit.
func Calculate(pointValue float64, s *stake.Stake, voter VoterState, history *stakehistory.History) (Result, bool) {
	if s.CreditsObserved >= voter.Credits() {
		return Result{}, false
	}

	watermark := s.CreditsObserved
	total := 0.0

	for _, ec := range voter.EpochCredits() {
		var epochCredits uint64
		switch {
		case s.CreditsObserved < ec.PrevCredits:
			epochCredits = ec.Credits - ec.PrevCredits // full epoch
		case s.CreditsObserved < ec.Credits:
			epochCredits = ec.Credits - watermark // partial epoch
		default:
			epochCredits = 0
		}

		effective := stakeEffectiveAt(s, ec.Epoch, history)
		total += float64(effective) * float64(epochCredits) * pointValue

		if ec.Credits > watermark {
			watermark = ec.Credits
		}
	}

	if total < 1.0 {
		return Result{}, false
	}

	voterShare, stakerShare, isSplit := voter.CommissionSplit(total)
	if isSplit && (voterShare < 1.0 || stakerShare < 1.0) {
		return Result{}, false
	}

	return Result{
		VoterReward:        uint64(math.Trunc(voterShare)),
		StakerReward:       uint64(math.Trunc(stakerShare)),
		NewCreditsObserved: watermark,
	}, true
}

func stakeEffectiveAt(s *stake.Stake, e epoch.Epoch, history *stakehistory.History) uint64 {
	return s.EffectiveAt(e, history)
}
