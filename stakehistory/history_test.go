package stakehistory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddAndGetRoundTrip(t *testing.T) {
	h := New(0)
	h.Add(5, Entry{Effective: 10, Activating: 1, Deactivating: 0})
	h.Add(3, Entry{Effective: 20})
	h.Add(5, Entry{Effective: 99}) // overwrite

	got, ok := h.Get(5)
	require.True(t, ok)
	require.Equal(t, Entry{Effective: 99}, got)

	_, ok = h.Get(4)
	require.False(t, ok)
}

func TestRangeIteratesInAscendingOrder(t *testing.T) {
	h := New(0)
	h.Add(10, Entry{Effective: 1})
	h.Add(2, Entry{Effective: 2})
	h.Add(6, Entry{Effective: 3})

	var epochs []uint64
	h.Range(func(e uint64, _ Entry) bool {
		epochs = append(epochs, e)
		return true
	})
	require.Equal(t, []uint64{2, 6, 10}, epochs)
}

func TestOnEvictFiresForDroppedEntries(t *testing.T) {
	h := New(1)
	var evicted []uint64
	h.OnEvict = func(e uint64, _ Entry) { evicted = append(evicted, e) }

	h.Add(0, Entry{Effective: 1})
	h.Add(1, Entry{Effective: 2})
	h.Add(3, Entry{Effective: 3})

	require.Equal(t, []uint64{0, 1}, evicted)
}

func TestRetentionEvictsOldEntries(t *testing.T) {
	h := New(2)
	h.Add(0, Entry{Effective: 1})
	h.Add(1, Entry{Effective: 2})
	h.Add(2, Entry{Effective: 3})
	h.Add(5, Entry{Effective: 4})

	require.Equal(t, 1, h.Len())
	_, ok := h.Get(0)
	require.False(t, ok)
	_, ok = h.Get(3)
	require.False(t, ok)
	got, ok := h.Get(5)
	require.True(t, ok)
	require.Equal(t, Entry{Effective: 4}, got)
}
