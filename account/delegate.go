package account

import (
	"stakeengine/config"
	"stakeengine/epoch"
	"stakeengine/errors"
	"stakeengine/events"
	"stakeengine/stake"
)

// Delegate transitions an Uninitialized account into an active Stake,
// committing newStakeAmount of the account's own lamports. The account must
// be signed and must not already hold a delegation.
func Delegate(acct *KeyedAccount, voter *KeyedVoterAccount, newStakeAmount uint64, clock Clock, cfg config.Config, emit events.Emitter, requestID string) error {
	if !acct.Signer {
		return errors.ErrMissingRequiredSignature
	}
	if newStakeAmount > acct.Lamports {
		return errors.ErrInsufficientFunds
	}
	if !acct.State.IsUninitialized() {
		return errors.ErrInvalidAccountData
	}

	s := stake.Stake{
		VoterPubkey:       voter.Pubkey(),
		CreditsObserved:   voter.Credits(),
		Amount:            newStakeAmount,
		ActivationEpoch:   clock.Epoch,
		DeactivationEpoch: epoch.Max,
		Config:            cfg,
	}
	acct.State = stake.NewStake(s)

	if emit != nil {
		emit.Emit(events.StakeDelegated{
			RequestID:       requestID,
			StakeAccount:    acct.Key,
			VoterPubkey:     s.VoterPubkey,
			Amount:          s.Amount,
			ActivationEpoch: s.ActivationEpoch,
			CreditsObserved: s.CreditsObserved,
		})
	}
	return nil
}
