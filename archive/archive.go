// Package archive exports closed-out stake history entries to parquet for
// cold storage once they age out of the in-memory retention window that
// stakehistory.History keeps.
package archive

import (
	"encoding/binary"
	"fmt"
	"os"
	"sort"

	"stakeengine/epoch"
	"stakeengine/stakehistory"

	"github.com/xitongsys/parquet-go-source/writerfile"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
	"lukechampine.com/blake3"
)

type epochEntryRow struct {
	Epoch        int64 `parquet:"name=epoch, type=INT64"`
	Effective    int64 `parquet:"name=effective, type=INT64"`
	Activating   int64 `parquet:"name=activating, type=INT64"`
	Deactivating int64 `parquet:"name=deactivating, type=INT64"`
}

// Batch is a contiguous run of evicted history entries plus the digest a
// reader can use to verify it was written intact.
type Batch struct {
	Entries []EpochEntry
	Digest  [32]byte
}

// EpochEntry pairs an epoch with its aggregate totals at eviction time.
type EpochEntry struct {
	Epoch epoch.Epoch
	Entry stakehistory.Entry
}

// NewBatch snapshots entries into a Batch and computes its digest.
func NewBatch(entries []EpochEntry) Batch {
	return Batch{Entries: entries, Digest: digest(entries)}
}

// digest hashes the batch's entries in epoch order so the same set of
// entries always produces the same digest regardless of how they were
// collected.
func digest(entries []EpochEntry) [32]byte {
	ordered := append([]EpochEntry(nil), entries...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Epoch < ordered[j].Epoch })
	buf := make([]byte, 0, len(ordered)*32)
	for _, e := range ordered {
		var word [8]byte
		binary.LittleEndian.PutUint64(word[:], e.Epoch)
		buf = append(buf, word[:]...)
		binary.LittleEndian.PutUint64(word[:], e.Entry.Effective)
		buf = append(buf, word[:]...)
		binary.LittleEndian.PutUint64(word[:], e.Entry.Activating)
		buf = append(buf, word[:]...)
		binary.LittleEndian.PutUint64(word[:], e.Entry.Deactivating)
		buf = append(buf, word[:]...)
	}
	return blake3.Sum256(buf)
}

// WriteParquet writes batch's entries to path in parquet form, snappy
// compressed, one row group.
func WriteParquet(path string, batch Batch) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("archive: create %s: %w", path, err)
	}
	defer file.Close()

	fw := writerfile.NewWriterFile(file)
	pw, err := writer.NewParquetWriter(fw, new(epochEntryRow), 1)
	if err != nil {
		return fmt.Errorf("archive: parquet schema: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, e := range batch.Entries {
		row := epochEntryRow{
			Epoch:        int64(e.Epoch),
			Effective:    int64(e.Entry.Effective),
			Activating:   int64(e.Entry.Activating),
			Deactivating: int64(e.Entry.Deactivating),
		}
		if err := pw.Write(row); err != nil {
			return fmt.Errorf("archive: write row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("archive: finalize: %w", err)
	}
	return nil
}
