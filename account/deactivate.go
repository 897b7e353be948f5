package account

import (
	"stakeengine/errors"
	"stakeengine/events"
)

// Deactivate begins cooldown on an active delegation by stamping the
// current epoch as its deactivation epoch. voter is accepted but unused; the
// parameter is reserved for a future slashing transition.
func Deactivate(acct *KeyedAccount, voter *KeyedVoterAccount, clock Clock, emit events.Emitter, requestID string) error {
	_ = voter

	if !acct.Signer {
		return errors.ErrMissingRequiredSignature
	}
	if !acct.State.IsStake() {
		return errors.ErrInvalidAccountData
	}

	s := acct.State.Stake
	s.DeactivationEpoch = clock.Epoch
	acct.State.Stake = s

	if emit != nil {
		emit.Emit(events.StakeDeactivated{
			RequestID:         requestID,
			StakeAccount:      acct.Key,
			DeactivationEpoch: s.DeactivationEpoch,
		})
	}
	return nil
}
