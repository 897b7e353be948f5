package rpc

import (
	"sort"
	"sync"

	"stakeengine/account"
	"stakeengine/rewards"
)

// simpleVoteState is an in-memory stand-in for a vote program account: the
// real engine would read VoteState off-chain, but this surface only needs
// the rewards.VoterState view, so tests and this service's demo voter
// registry populate one directly rather than decoding a vote account blob.
type simpleVoteState struct {
	mu       sync.RWMutex
	lifetime uint64
	history  []rewards.EpochCredit
	// commission is the fraction of rewards taken by the voter, out of 255,
	// matching the on-chain representation.
	commission uint8
}

func (v *simpleVoteState) Credits() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.lifetime
}

func (v *simpleVoteState) EpochCredits() []rewards.EpochCredit {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]rewards.EpochCredit, len(v.history))
	copy(out, v.history)
	return out
}

func (v *simpleVoteState) CommissionSplit(total float64) (voterShare, stakerShare float64, isSplit bool) {
	v.mu.RLock()
	c := v.commission
	v.mu.RUnlock()

	if c == 0 {
		return 0, total, false
	}
	if c == 255 {
		return total, 0, false
	}
	frac := float64(c) / 255.0
	return total * frac, total * (1 - frac), true
}

// closeEpoch adds creditsEarned to the lifetime counter and closes out epoch
// e at once: the new EpochCredit entry is visible via EpochCredits as soon as
// this returns.
func (v *simpleVoteState) closeEpoch(e uint64, creditsEarned uint64, commission uint8) {
	v.mu.Lock()
	defer v.mu.Unlock()
	prev := v.lifetime
	v.lifetime += creditsEarned
	v.commission = commission
	v.history = append(v.history, rewards.EpochCredit{Epoch: e, Credits: v.lifetime, PrevCredits: prev})
}

// voterRegistry holds every known voter account, keyed by its 32-byte
// pubkey.
type voterRegistry struct {
	mu      sync.RWMutex
	voters  map[[32]byte]*account.KeyedVoterAccount
	states  map[[32]byte]*simpleVoteState
	byOrder [][32]byte
}

func newVoterRegistry() *voterRegistry {
	return &voterRegistry{
		voters: make(map[[32]byte]*account.KeyedVoterAccount),
		states: make(map[[32]byte]*simpleVoteState),
	}
}

// register creates (or replaces) the voter account for pubkey.
func (r *voterRegistry) register(pubkey [32]byte, key [20]byte) *account.KeyedVoterAccount {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := &simpleVoteState{}
	voter := &account.KeyedVoterAccount{
		Key:         key,
		VoterPubkey: pubkey,
		VoteState:   state,
	}
	if _, exists := r.voters[pubkey]; !exists {
		r.byOrder = append(r.byOrder, pubkey)
	}
	r.voters[pubkey] = voter
	r.states[pubkey] = state
	return voter
}

func (r *voterRegistry) get(pubkey [32]byte) (*account.KeyedVoterAccount, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.voters[pubkey]
	return v, ok
}

func (r *voterRegistry) state(pubkey [32]byte) (*simpleVoteState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.states[pubkey]
	return s, ok
}

// all returns every registered voter, sorted by the hex form of its pubkey.
func (r *voterRegistry) all() []*account.KeyedVoterAccount {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*account.KeyedVoterAccount, 0, len(r.byOrder))
	for _, k := range r.byOrder {
		out = append(out, r.voters[k])
	}
	sort.Slice(out, func(i, j int) bool {
		return formatVoterPubkey(out[i].VoterPubkey) < formatVoterPubkey(out[j].VoterPubkey)
	})
	return out
}
