package archive

import (
	"path/filepath"
	"testing"

	"stakeengine/stakehistory"

	"github.com/stretchr/testify/require"
)

func TestNewBatchDigestIsDeterministic(t *testing.T) {
	entries := []EpochEntry{
		{Epoch: 1, Entry: stakehistory.Entry{Effective: 10}},
		{Epoch: 2, Entry: stakehistory.Entry{Effective: 20, Activating: 5}},
	}

	a := NewBatch(entries)
	b := NewBatch(append([]EpochEntry(nil), entries...))
	require.Equal(t, a.Digest, b.Digest)

	entries[0].Entry.Effective = 11
	c := NewBatch(entries)
	require.NotEqual(t, a.Digest, c.Digest)
}

func TestCollectorWiredToHistoryOnEvict(t *testing.T) {
	h := stakehistory.New(1)
	var c Collector
	h.OnEvict = c.Collect

	h.Add(0, stakehistory.Entry{Effective: 1})
	h.Add(1, stakehistory.Entry{Effective: 2})
	h.Add(3, stakehistory.Entry{Effective: 3})

	require.Equal(t, 2, c.Len())
	batch := c.Flush()
	require.Len(t, batch.Entries, 2)
	require.Equal(t, 0, c.Len())
}

func TestWriteParquetProducesNonEmptyFile(t *testing.T) {
	batch := NewBatch([]EpochEntry{
		{Epoch: 0, Entry: stakehistory.Entry{Effective: 100, Activating: 1}},
		{Epoch: 1, Entry: stakehistory.Entry{Effective: 101}},
	})

	path := filepath.Join(t.TempDir(), "history.parquet")
	require.NoError(t, WriteParquet(path, batch))
	require.FileExists(t, path)
}
