// Package stake implements the core stake-activation arithmetic: for a
// given delegation and target epoch, how much of its committed amount is
// effective, still activating, or still deactivating. Every other stake
// accessor — account operations, reward calculation, the history builder —
// composes on top of the single function here.
package stake

import (
	"math"

	"stakeengine/config"
	"stakeengine/epoch"
	"stakeengine/stakehistory"
)

// Stake is one delegation: a committed lamport amount, the voter it is
// delegated to, the activation/deactivation schedule, the reward watermark,
// and a config snapshot taken at delegation time.
type Stake struct {
	VoterPubkey       [32]byte
	CreditsObserved   uint64
	Amount            uint64
	ActivationEpoch   epoch.Epoch
	DeactivationEpoch epoch.Epoch
	Config            config.Config
}

// IsBootstrap reports whether this is a genesis-assigned delegation that is
// effective immediately and never warms.
func (s *Stake) IsBootstrap() bool {
	return epoch.IsMax(s.ActivationEpoch)
}

// IsActive reports whether the stake has begun activating (or is bootstrap)
// and has not yet fully deactivated as of target — i.e. it still has a
// presence in the stake pool worth tracking.
func (s *Stake) IsActive(target epoch.Epoch, history *stakehistory.History) bool {
	if s.IsBootstrap() {
		return true
	}
	if target < s.ActivationEpoch {
		return false
	}
	effective, activating, deactivating := s.ActivatingAndDeactivating(target, history)
	return effective > 0 || activating > 0 || deactivating > 0
}

// ActivatingAndDeactivating computes the (effective, activating,
// deactivating) triple for this stake at the target epoch against history.
// history may be nil, which is treated the same as an empty history (every
// lookup misses).
//
// The two phases below, their loop structure, and the exact floating-point
// operation order are consensus-critical: all rate multiplications use
// IEEE-754 binary64 with
// left-to-right association exactly as written, casts to uint64 truncate
// toward zero, and the max(1) clamp is applied after truncation.
func (s *Stake) ActivatingAndDeactivating(target epoch.Epoch, history *stakehistory.History) (effective, activating, deactivating uint64) {
	e, a := s.activatingPhase(target, history)
	return s.deactivatingPhase(target, history, e, a)
}

// EffectiveAt returns just the effective component, the quantity withdraw()
// and the reward walk need.
func (s *Stake) EffectiveAt(target epoch.Epoch, history *stakehistory.History) uint64 {
	effective, _, _ := s.ActivatingAndDeactivating(target, history)
	return effective
}

// activatingPhase computes how much of the stake has warmed up.
func (s *Stake) activatingPhase(target epoch.Epoch, history *stakehistory.History) (effective, activating uint64) {
	a := s.ActivationEpoch

	if epoch.IsMax(a) {
		return s.Amount, 0
	}
	if target == a {
		return 0, s.Amount
	}
	if target < a {
		return 0, 0
	}

	entry, ok := lookup(history, a)
	if !ok {
		// History doesn't reach back to the activation epoch: assume fully
		// warmed, the history is past the retention window.
		return s.Amount, 0
	}

	var eff uint64
	next := a
	for {
		if entry.Activating == 0 {
			break
		}
		weight := float64(s.Amount-eff) / float64(entry.Activating)
		increment := floorWithMinOne(weight * float64(entry.Effective) * s.Config.WarmupRate)
		eff += increment
		if eff >= s.Amount {
			eff = s.Amount
			break
		}
		next++
		if next >= target {
			break
		}
		entry, ok = lookup(history, next)
		if !ok {
			break
		}
	}
	return eff, s.Amount - eff
}

// deactivatingPhase computes how much of the stake has cooled down,
// applied on top of the activating-phase result.
func (s *Stake) deactivatingPhase(target epoch.Epoch, history *stakehistory.History, phase1Effective, phase1Activating uint64) (effective, activating, deactivating uint64) {
	d := s.DeactivationEpoch

	if target < d {
		return phase1Effective, phase1Activating, 0
	}
	if target == d {
		deactivating := phase1Effective
		if s.Amount < deactivating {
			deactivating = s.Amount
		}
		return phase1Effective, 0, deactivating
	}

	// target > d
	entry, ok := lookup(history, d)
	if !ok {
		return 0, 0, 0
	}

	eff := phase1Effective
	next := d
	for {
		if entry.Deactivating == 0 {
			break
		}
		weight := float64(eff) / float64(entry.Deactivating)
		decrement := floorWithMinOne(weight * float64(entry.Effective) * s.Config.CooldownRate)
		if decrement >= eff {
			eff = 0
		} else {
			eff -= decrement
		}
		if eff == 0 {
			break
		}
		next++
		if next >= target {
			break
		}
		entry, ok = lookup(history, next)
		if !ok {
			break
		}
	}
	return eff, 0, eff
}

// floorWithMinOne truncates x toward zero and clamps the result to at least
// 1. x is always non-negative for the callers above.
func floorWithMinOne(x float64) uint64 {
	truncated := uint64(math.Trunc(x))
	if truncated < 1 {
		return 1
	}
	return truncated
}

func lookup(history *stakehistory.History, e epoch.Epoch) (stakehistory.Entry, bool) {
	if history == nil {
		return stakehistory.Entry{}, false
	}
	return history.Get(e)
}
