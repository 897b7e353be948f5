// Package account implements the externally invoked stake-account
// transitions: delegate, deactivate, withdraw, and redeem. Each operation
// takes a mutable KeyedAccount plus whatever sysvars it needs and either
// mutates the account's persisted state exactly once or leaves it untouched
// and returns a typed error.
package account

import (
	"stakeengine/epoch"
	"stakeengine/stake"
)

// Clock is the sysvar carrying the current epoch.
type Clock struct {
	Epoch epoch.Epoch
}

// KeyedAccount is the mutable account handle every operation below acts on:
// a lamport balance, a persisted StakeState, and whether the caller's
// signature over this transaction was verified.
type KeyedAccount struct {
	Key      [20]byte
	Lamports uint64
	State    stake.State
	Signer   bool
}
