package storage

import (
	"fmt"

	"stakeengine/stake"
)

// stakeAccountPrefix namespaces stake-account blobs within a shared
// Database so the same store can later hold other keyspaces.
const stakeAccountPrefix = "stake/account/"

// StakeStore persists StakeState blobs for account keys on top of a generic
// Database. It owns encoding and decoding; callers never touch raw bytes.
type StakeStore struct {
	db Database
}

// NewStakeStore wraps db as a stake-account store.
func NewStakeStore(db Database) *StakeStore {
	return &StakeStore{db: db}
}

// Put encodes and persists state under key.
func (s *StakeStore) Put(key [20]byte, state stake.State) error {
	return s.db.Put(stakeAccountKey(key), state.Encode())
}

// Get loads and decodes the state persisted under key.
func (s *StakeStore) Get(key [20]byte) (stake.State, error) {
	raw, err := s.db.Get(stakeAccountKey(key))
	if err != nil {
		return stake.State{}, fmt.Errorf("storage: load stake account %x: %w", key, err)
	}
	state, err := stake.Decode(raw)
	if err != nil {
		return stake.State{}, fmt.Errorf("storage: decode stake account %x: %w", key, err)
	}
	return state, nil
}

func stakeAccountKey(key [20]byte) []byte {
	return append([]byte(stakeAccountPrefix), key[:]...)
}
