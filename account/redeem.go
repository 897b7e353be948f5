package account

import (
	"stakeengine/errors"
	"stakeengine/events"
	"stakeengine/rewards"
	"stakeengine/stakehistory"
)

// KeyedVoterAccount is the vote account named by a delegation: an account
// handle plus the narrow reward-arithmetic view of its credit history and
// commission. The vote program itself owns VoteState; this engine only
// reads through the rewards.VoterState surface.
type KeyedVoterAccount struct {
	Key         [20]byte
	VoterPubkey [32]byte
	Lamports    uint64
	VoteState   rewards.VoterState
}

// Pubkey returns the voter's 32-byte pubkey.
func (v *KeyedVoterAccount) Pubkey() [32]byte { return v.VoterPubkey }

// Credits returns the lifetime credit count of the underlying vote state.
func (v *KeyedVoterAccount) Credits() uint64 { return v.VoteState.Credits() }

// RedeemVoteCredits walks the voter's credit history against the stake's
// effective amount, splits the payout by commission, and moves lamports from
// rewardsPool to self and to the voter account. acct and rewardsPool must
// already hold the Stake and RewardsPool variants respectively, and voter's
// pubkey must match the delegation's voter_pubkey.
func RedeemVoteCredits(acct *KeyedAccount, voter *KeyedVoterAccount, rewardsPool *KeyedAccount, pointValue float64, history *stakehistory.History, emit events.Emitter, requestID string) error {
	if !acct.State.IsStake() || !rewardsPool.State.IsRewardsPool() {
		return errors.ErrInvalidAccountData
	}

	s := acct.State.Stake
	if s.VoterPubkey != voter.VoterPubkey {
		return errors.ErrInvalidArgument
	}

	result, ok := rewards.Calculate(pointValue, &s, voter.VoteState, history)
	if !ok {
		if emit != nil {
			emit.Emit(events.StakeNothingToCollect{RequestID: requestID, StakeAccount: acct.Key})
		}
		return errors.NothingToCollect()
	}

	total := result.VoterReward + result.StakerReward
	if rewardsPool.Lamports < total {
		return errors.ErrUnbalancedInstruction
	}

	rewardsPool.Lamports -= total
	acct.Lamports += result.StakerReward
	voter.Lamports += result.VoterReward

	s.CreditsObserved = result.NewCreditsObserved
	acct.State.Stake = s

	if emit != nil {
		emit.Emit(events.StakeRewardsClaimed{
			RequestID:       requestID,
			StakeAccount:    acct.Key,
			VoterAccount:    voter.Key,
			VoterReward:     result.VoterReward,
			StakerReward:    result.StakerReward,
			CreditsObserved: result.NewCreditsObserved,
		})
	}
	return nil
}
