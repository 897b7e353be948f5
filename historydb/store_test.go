package historydb

import (
	"testing"

	"stakeengine/stakehistory"

	"github.com/stretchr/testify/require"
)

func TestRecordAndLoadEpochEntry(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.RecordEpochEntry(5, stakehistory.Entry{Effective: 100, Activating: 10}))

	got, err := store.EpochEntry(5)
	require.NoError(t, err)
	require.Equal(t, uint64(100), got.Effective)
	require.Equal(t, uint64(10), got.Activating)
}

func TestRecordAndListRedemptions(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	stakeAcct := [20]byte{1}
	voterAcct := [20]byte{2}

	require.NoError(t, store.RecordRedemption(stakeAcct, voterAcct, 1, 0, 2, 2))
	require.NoError(t, store.RecordRedemption(stakeAcct, voterAcct, 2, 0, 1, 3))

	rows, err := store.RedemptionsForStake(stakeAcct)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, uint64(1), rows[0].Epoch)
	require.Equal(t, uint64(2), rows[1].Epoch)
}
