// Package rpc exposes the stake-account operations — delegate, deactivate,
// withdraw, redeem — over an HTTP JSON API plus a websocket event stream,
// and drives the per-epoch history build that the warmup/cooldown
// arithmetic depends on.
package rpc

import (
	"fmt"
	"sync"
	"time"

	"stakeengine/account"
	"stakeengine/archive"
	"stakeengine/config"
	"stakeengine/epoch"
	"stakeengine/errors"
	"stakeengine/events"
	"stakeengine/historydb"
	"stakeengine/observability"
	"stakeengine/stake"
	"stakeengine/stakehistory"
	"stakeengine/storage"

	"github.com/google/uuid"
)

// Service is the process-wide state a running stakenode server operates
// against: the account ledger, the voter registry, the shared stake
// history, and the optional side tables (analytics read-model, cold
// storage archive) that observe it.
type Service struct {
	mu sync.Mutex

	cfg     config.Config
	ledger  *ledger
	voters  *voterRegistry
	history *stakehistory.History
	emitter events.Emitter

	historyStore *historydb.Store
	collector    *archive.Collector
	hub          *hub

	clock epoch.Epoch
}

// NewService constructs a Service. store and historyStore may be nil (no
// persistence / no analytics read-model). Every event the account
// operations emit is additionally fanned out to the /stream websocket
// endpoint's subscribers via an internal hub.
func NewService(cfg config.Config, store *storage.StakeStore, historyStore *historydb.Store) *Service {
	history := stakehistory.New(0)
	collector := &archive.Collector{}
	history.OnEvict = collector.Collect

	h := newHub()
	var emitter events.Emitter = observability.NewMetricsEmitter(h)

	return &Service{
		cfg:          cfg,
		ledger:       newLedger(store),
		voters:       newVoterRegistry(),
		history:      history,
		emitter:      emitter,
		historyStore: historyStore,
		collector:    collector,
		hub:          h,
	}
}

func (s *Service) currentEpoch() epoch.Epoch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock
}

// Fund credits lamports to an account, creating it if necessary. There is no
// token-transfer instruction in this engine to source balances from, so
// delegation principal is funded through here. Fund leaves the account's
// StakeState as it is (a new account is Uninitialized); nothing in this
// package gives an account the RewardsPool state, so Redeem rejects a pool
// funded this way with ErrInvalidAccountData.
func (s *Service) Fund(key [20]byte, lamports uint64) account.KeyedAccount {
	acct := s.ledger.fund(key, lamports)
	return *acct
}

// RegisterVoter creates a voter account the redeem endpoint can target.
func (s *Service) RegisterVoter(pubkey [32]byte, key [20]byte) *account.KeyedVoterAccount {
	return s.voters.register(pubkey, key)
}

// CreditVote closes out creditsEarned credits for pubkey's current epoch,
// stamping commission for the redemptions that will read it. A real
// deployment would learn this from the vote program; the HTTP surface below
// exposes it directly for driving the engine in isolation.
func (s *Service) CreditVote(pubkey [32]byte, creditsEarned uint64, commission uint8) error {
	state, ok := s.voters.state(pubkey)
	if !ok {
		return fmt.Errorf("rpc: unknown voter %s", formatVoterPubkey(pubkey))
	}
	state.closeEpoch(s.currentEpoch(), creditsEarned, commission)
	return nil
}

// Account returns the current state of the account at key.
func (s *Service) Account(key [20]byte) (account.KeyedAccount, bool) {
	return s.ledger.get(key)
}

func (s *Service) clockSysvar() account.Clock {
	return account.Clock{Epoch: s.currentEpoch()}
}

// Delegate commits newStakeAmount of key's own lamports to voterPubkey.
func (s *Service) Delegate(key [20]byte, voterPubkey [32]byte, newStakeAmount uint64) (account.KeyedAccount, error) {
	voter, ok := s.voters.get(voterPubkey)
	if !ok {
		return account.KeyedAccount{}, fmt.Errorf("rpc: unknown voter %s", formatVoterPubkey(voterPubkey))
	}

	requestID := uuid.NewString()
	started := time.Now()
	result, err := s.ledger.withSigner(key, func(acct *account.KeyedAccount) error {
		return account.Delegate(acct, voter, newStakeAmount, s.clockSysvar(), s.cfg, s.emitter, requestID)
	})
	observability.Stake().Observe("delegate", err, time.Since(started))
	return result, err
}

// Deactivate begins cooldown on key's delegation.
func (s *Service) Deactivate(key [20]byte) (account.KeyedAccount, error) {
	requestID := uuid.NewString()
	started := time.Now()
	result, err := s.ledger.withSigner(key, func(acct *account.KeyedAccount) error {
		return account.Deactivate(acct, nil, s.clockSysvar(), s.emitter, requestID)
	})
	observability.Stake().Observe("deactivate", err, time.Since(started))
	return result, err
}

// Withdraw moves lamports from key to to, bounded by whatever isn't locked
// up in an active or cooling delegation.
func (s *Service) Withdraw(key [20]byte, lamports uint64, to [20]byte) (account.KeyedAccount, error) {
	toAcct := s.ledger.open(to)
	requestID := uuid.NewString()
	started := time.Now()
	result, err := s.ledger.withSigner(key, func(acct *account.KeyedAccount) error {
		return account.Withdraw(acct, lamports, toAcct, s.clockSysvar(), s.history, s.emitter, requestID)
	})
	observability.Stake().Observe("withdraw", err, time.Since(started))
	return result, err
}

// Redeem walks key's voter credit history and splits the accrued reward
// between the voter and key's own balance, paid out of rewardsPool.
func (s *Service) Redeem(key [20]byte, rewardsPoolKey [20]byte, pointValue float64) (account.KeyedAccount, error) {
	rewardsPool := s.ledger.open(rewardsPoolKey)

	acct, ok := s.ledger.peek(key)
	if !ok || !acct.State.IsStake() {
		return account.KeyedAccount{}, errors.ErrInvalidAccountData
	}
	voter, ok := s.voters.get(acct.State.Stake.VoterPubkey)
	if !ok {
		return account.KeyedAccount{}, fmt.Errorf("rpc: unknown voter %s", formatVoterPubkey(acct.State.Stake.VoterPubkey))
	}

	requestID := uuid.NewString()
	started := time.Now()
	var claimed *events.StakeRewardsClaimed
	recorder := recordingEmitter{next: s.emitter, onRewardsClaimed: func(e events.StakeRewardsClaimed) { claimed = &e }}

	result, err := s.ledger.withSigner(key, func(a *account.KeyedAccount) error {
		return account.RedeemVoteCredits(a, voter, rewardsPool, pointValue, s.history, recorder, requestID)
	})
	observability.Stake().Observe("redeem", err, time.Since(started))
	if err == nil && claimed != nil {
		observability.Stake().RecordReward("voter", claimed.VoterReward)
		observability.Stake().RecordReward("staker", claimed.StakerReward)
		if s.historyStore != nil {
			_ = s.historyStore.RecordRedemption(key, voter.Key, s.currentEpoch(), claimed.VoterReward, claimed.StakerReward, claimed.CreditsObserved)
		}
	}
	return result, err
}

// AdvanceEpoch closes the current epoch: it folds every live stake's
// effective/activating/deactivating triple into a new stakehistory.Entry,
// records it, advances the clock, and returns the entry built.
func (s *Service) AdvanceEpoch() stakehistory.Entry {
	s.mu.Lock()
	target := s.clock
	s.mu.Unlock()

	stakes := s.ledger.stakeSnapshots()
	contributors := make([]stakehistory.Contributor, len(stakes))
	for i, st := range stakes {
		contributors[i] = st
	}

	entry := stakehistory.BuildEntry(target, contributors, s.history)
	s.history.Add(target, entry)
	observability.Stake().RecordWarmupSteps(len(contributors))

	if s.historyStore != nil {
		_ = s.historyStore.RecordEpochEntry(target, entry)
	}

	s.mu.Lock()
	s.clock++
	s.mu.Unlock()

	return entry
}

// FlushArchive batches every history entry evicted by retention since the
// last flush and writes it to a parquet file at path. It returns the number
// of entries written.
func (s *Service) FlushArchive(path string) (int, error) {
	if s.collector.Len() == 0 {
		return 0, nil
	}
	batch := s.collector.Flush()
	if err := archive.WriteParquet(path, batch); err != nil {
		return 0, err
	}
	return len(batch.Entries), nil
}

// recordingEmitter forwards every event to next, additionally capturing the
// last StakeRewardsClaimed event it sees so Redeem can read the payout
// split without RedeemVoteCredits needing to return it directly.
type recordingEmitter struct {
	next             events.Emitter
	onRewardsClaimed func(events.StakeRewardsClaimed)
}

func (r recordingEmitter) Emit(e events.Event) {
	if claimed, ok := e.(events.StakeRewardsClaimed); ok && r.onRewardsClaimed != nil {
		r.onRewardsClaimed(claimed)
	}
	if r.next != nil {
		r.next.Emit(e)
	}
}

// kindString maps a stake.State variant to the friendly string kind handlers
// report; defined here to keep handlers.go focused on HTTP concerns.
func kindString(st stake.State) string {
	switch {
	case st.IsStake():
		return "stake"
	case st.IsRewardsPool():
		return "rewardsPool"
	default:
		return "uninitialized"
	}
}
