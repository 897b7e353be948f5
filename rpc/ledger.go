package rpc

import (
	"fmt"
	"sync"

	"stakeengine/account"
	"stakeengine/stake"
	"stakeengine/storage"
)

// ledger holds the live account set this service operates against. Lamport
// balances live only in memory (this engine has no separate token ledger to
// adapt); StakeState is written through store after every successful signed
// operation. The ledger does not read the store back at startup.
type ledger struct {
	mu       sync.Mutex
	accounts map[[20]byte]*account.KeyedAccount
	store    *storage.StakeStore
}

func newLedger(store *storage.StakeStore) *ledger {
	return &ledger{
		accounts: make(map[[20]byte]*account.KeyedAccount),
		store:    store,
	}
}

// open returns the account for key, creating an Uninitialized one with zero
// balance if it doesn't exist yet.
func (l *ledger) open(key [20]byte) *account.KeyedAccount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.openLocked(key)
}

func (l *ledger) openLocked(key [20]byte) *account.KeyedAccount {
	acct, ok := l.accounts[key]
	if !ok {
		acct = &account.KeyedAccount{Key: key, State: stake.Uninitialized()}
		l.accounts[key] = acct
	}
	return acct
}

// fund credits amount lamports to key, creating the account if necessary.
// It models the admin/bootstrap path a real deployment would wire to a
// token transfer instruction; this engine has none, so callers use it
// directly to seed balances. It leaves the account's StakeState unchanged.
func (l *ledger) fund(key [20]byte, amount uint64) *account.KeyedAccount {
	l.mu.Lock()
	defer l.mu.Unlock()
	acct := l.openLocked(key)
	acct.Lamports += amount
	return acct
}

// withSigner runs fn against the account for key with Signer forced true,
// persists the resulting state, and restores Signer to false afterward —
// every mutating HTTP endpoint is, by construction, signed by its caller.
func (l *ledger) withSigner(key [20]byte, fn func(acct *account.KeyedAccount) error) (account.KeyedAccount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct := l.openLocked(key)
	acct.Signer = true
	err := fn(acct)
	acct.Signer = false
	if err != nil {
		return *acct, err
	}
	if l.store != nil {
		if perr := l.store.Put(key, acct.State); perr != nil {
			return *acct, fmt.Errorf("rpc: persist account %x: %w", key, perr)
		}
	}
	return *acct, nil
}

// peek returns the live account pointer for key without copying it, for
// callers that need to read fields (e.g. the delegation's voter pubkey)
// before deciding how to mutate it.
func (l *ledger) peek(key [20]byte) (*account.KeyedAccount, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acct, ok := l.accounts[key]
	return acct, ok
}

func (l *ledger) get(key [20]byte) (account.KeyedAccount, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acct, ok := l.accounts[key]
	if !ok {
		return account.KeyedAccount{}, false
	}
	return *acct, true
}

// stakeSnapshots returns a copy of every currently delegated stake, for
// folding into an epoch's aggregate entry.
func (l *ledger) stakeSnapshots() []*stake.Stake {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*stake.Stake
	for _, acct := range l.accounts {
		if acct.State.IsStake() {
			s := acct.State.Stake
			out = append(out, &s)
		}
	}
	return out
}
