package rewards

import (
	"testing"

	"stakeengine/config"
	"stakeengine/epoch"
	"stakeengine/stake"
	"stakeengine/stakehistory"

	"github.com/stretchr/testify/require"
)

// fakeVote mimics the on-chain vote program's lazy epoch-credit bookkeeping:
// a call to IncrementCredits only *closes* the previously-current epoch (and
// makes it visible via EpochCredits) once a later epoch's first credit
// arrives. The still-open current epoch is never visible until it, too, is
// closed by a subsequent call. This mirrors the reference VoteState the
// spec's worked example is built against.
type fakeVote struct {
	closed       []EpochCredit
	hasCurrent   bool
	currentEpoch epoch.Epoch
	currentPrev  uint64
	lifetime     uint64
	commission   uint8 // fraction of 255, matching the on-chain representation
}

func (v *fakeVote) IncrementCredits(e epoch.Epoch) {
	switch {
	case !v.hasCurrent:
		v.hasCurrent = true
		v.currentEpoch = e
		v.currentPrev = v.lifetime
	case e != v.currentEpoch:
		v.closed = append(v.closed, EpochCredit{Epoch: v.currentEpoch, Credits: v.lifetime, PrevCredits: v.currentPrev})
		v.currentEpoch = e
		v.currentPrev = v.lifetime
	}
	v.lifetime++
}

func (v *fakeVote) Credits() uint64 { return v.lifetime }

func (v *fakeVote) EpochCredits() []EpochCredit {
	out := make([]EpochCredit, len(v.closed))
	copy(out, v.closed)
	return out
}

func (v *fakeVote) CommissionSplit(total float64) (voterShare, stakerShare float64, isSplit bool) {
	if v.commission == 0 {
		return 0, total, false
	}
	if v.commission == 255 {
		return total, 0, false
	}
	frac := float64(v.commission) / 255.0
	return total * frac, total * (1 - frac), true
}

func bootstrapStake(amount uint64, creditsObserved uint64) *stake.Stake {
	return &stake.Stake{
		Amount:            amount,
		ActivationEpoch:   epoch.Max,
		DeactivationEpoch: epoch.Max,
		CreditsObserved:   creditsObserved,
		Config:            config.Default(),
	}
}

func TestCalculateRewardsWorkedExample(t *testing.T) {
	vote := &fakeVote{}
	s := bootstrapStake(1, 0)
	history := stakehistory.New(0)

	_, ok := Calculate(1_000_000_000.0, s, vote, history)
	require.False(t, ok, "credits_observed == voter.Credits() initially")

	vote.IncrementCredits(0)
	vote.IncrementCredits(0)

	_, ok = Calculate(1_000_000_000_000.0, s, vote, history)
	require.False(t, ok, "no epoch credits have closed yet")

	vote.IncrementCredits(1)

	result, ok := Calculate(1.0, s, vote, history)
	require.True(t, ok)
	require.Equal(t, Result{VoterReward: 0, StakerReward: 2, NewCreditsObserved: 2}, result)

	s.CreditsObserved = 1
	result, ok = Calculate(1.0, s, vote, history)
	require.True(t, ok)
	require.Equal(t, Result{VoterReward: 0, StakerReward: 1, NewCreditsObserved: 2}, result)

	s.CreditsObserved = 2
	_, ok = Calculate(1.0, s, vote, history)
	require.False(t, ok, "the only closed epoch's credits are already observed")

	vote.IncrementCredits(2)
	result, ok = Calculate(1.0, s, vote, history)
	require.True(t, ok)
	require.Equal(t, Result{VoterReward: 0, StakerReward: 1, NewCreditsObserved: 3}, result)

	s.CreditsObserved = 0
	result, ok = Calculate(1.0, s, vote, history)
	require.True(t, ok)
	require.Equal(t, Result{VoterReward: 0, StakerReward: 3, NewCreditsObserved: 3}, result)

	vote.commission = 1
	_, ok = Calculate(1.0, s, vote, history)
	require.False(t, ok, "tiny commission rounds one side below one lamport")

	vote.commission = 254
	_, ok = Calculate(1.0, s, vote, history)
	require.False(t, ok, "near-total commission rounds the other side below one lamport")
}
