package archive

import (
	"sync"

	"stakeengine/epoch"
	"stakeengine/stakehistory"
)

// Collector accumulates evicted history entries — wire Collector.Collect
// directly to a stakehistory.History's OnEvict field — until the caller
// flushes them into a Batch.
type Collector struct {
	mu      sync.Mutex
	pending []EpochEntry
}

// Collect appends an evicted entry. Matches the signature of
// stakehistory.History.OnEvict.
func (c *Collector) Collect(e epoch.Epoch, entry stakehistory.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, EpochEntry{Epoch: e, Entry: entry})
}

// Flush returns a Batch of everything collected so far and resets the
// collector.
func (c *Collector) Flush() Batch {
	c.mu.Lock()
	defer c.mu.Unlock()
	batch := NewBatch(c.pending)
	c.pending = nil
	return batch
}

// Len reports how many entries are pending flush.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
