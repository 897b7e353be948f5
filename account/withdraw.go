package account

import (
	"stakeengine/errors"
	"stakeengine/events"
	"stakeengine/stakehistory"
)

// Withdraw moves lamports out of acct into to, bounded by the portion of
// acct's balance not locked up in an active or cooling delegation.
func Withdraw(acct *KeyedAccount, lamports uint64, to *KeyedAccount, clock Clock, history *stakehistory.History, emit events.Emitter, requestID string) error {
	if !acct.Signer {
		return errors.ErrMissingRequiredSignature
	}

	var locked uint64
	switch {
	case acct.State.IsStake():
		s := acct.State.Stake
		if clock.Epoch >= s.DeactivationEpoch {
			locked = s.EffectiveAt(clock.Epoch, history)
		} else {
			locked = s.Amount
		}
	case acct.State.IsUninitialized():
		locked = 0
	default:
		return errors.ErrInvalidAccountData
	}

	available := uint64(0)
	if acct.Lamports > locked {
		available = acct.Lamports - locked
	}
	if lamports > available {
		return errors.ErrInsufficientFunds
	}

	acct.Lamports -= lamports
	to.Lamports += lamports

	if emit != nil {
		emit.Emit(events.StakeWithdrawn{
			RequestID:    requestID,
			StakeAccount: acct.Key,
			To:           to.Key,
			Lamports:     lamports,
			Locked:       locked,
		})
	}
	return nil
}
