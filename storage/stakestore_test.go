package storage

import (
	"testing"

	"stakeengine/stake"

	"github.com/stretchr/testify/require"
)

func TestStakeStoreRoundTrip(t *testing.T) {
	store := NewStakeStore(NewMemDB())
	key := [20]byte{1, 2, 3}
	state := stake.NewStake(stake.Stake{
		Amount:          1000,
		ActivationEpoch: 4,
	})

	require.NoError(t, store.Put(key, state))

	got, err := store.Get(key)
	require.NoError(t, err)
	require.Equal(t, state, got)
}

func TestStakeStoreGetMissing(t *testing.T) {
	store := NewStakeStore(NewMemDB())
	_, err := store.Get([20]byte{9})
	require.Error(t, err)
}
