package stakehistory

import (
	"sort"
	"sync"

	"stakeengine/epoch"
)

// History is an ordered epoch -> Entry mapping with O(log n) point lookup.
// Each instance is mutated by a single transaction executor at a time and
// shared read-only between pure queries; the mutex here
// guards against accidental concurrent use rather than modeling any
// concurrency contract the spec requires.
//
// Entries older than Retention epochs (relative to the newest epoch added)
// are evicted on insert. A Retention of zero retains every entry.
type History struct {
	mu        sync.RWMutex
	entries   []epochEntry // sorted ascending by Epoch
	Retention uint64

	// OnEvict, if set, is called with every entry dropped by retention
	// before it is discarded, so a caller can archive it elsewhere.
	OnEvict func(e epoch.Epoch, entry Entry)
}

// New constructs an empty History with the given retention window, in
// epochs. A retention of zero means unbounded.
func New(retention uint64) *History {
	return &History{Retention: retention}
}

// search returns the index of epoch e in h.entries, and whether it was
// found. Callers must hold h.mu.
func (h *History) search(e epoch.Epoch) (int, bool) {
	i := sort.Search(len(h.entries), func(i int) bool {
		return h.entries[i].Epoch >= e
	})
	if i < len(h.entries) && h.entries[i].Epoch == e {
		return i, true
	}
	return i, false
}

// Add inserts or overwrites the entry at epoch e.
func (h *History) Add(e epoch.Epoch, entry Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	i, found := h.search(e)
	if found {
		h.entries[i].Entry = entry
	} else {
		h.entries = append(h.entries, epochEntry{})
		copy(h.entries[i+1:], h.entries[i:])
		h.entries[i] = epochEntry{Epoch: e, Entry: entry}
	}
	h.evictLocked()
}

// Get looks up the entry for epoch e.
func (h *History) Get(e epoch.Epoch) (Entry, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	i, found := h.search(e)
	if !found {
		return Entry{}, false
	}
	return h.entries[i].Entry, true
}

// Len returns the number of retained entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Range iterates entries in ascending epoch order, stopping early if fn
// returns false.
func (h *History) Range(fn func(e epoch.Epoch, entry Entry) bool) {
	h.mu.RLock()
	snapshot := make([]epochEntry, len(h.entries))
	copy(snapshot, h.entries)
	h.mu.RUnlock()

	for _, ee := range snapshot {
		if !fn(ee.Epoch, ee.Entry) {
			return
		}
	}
}

// evictLocked drops entries older than Retention epochs relative to the
// newest epoch currently held. Callers must hold h.mu for writing.
func (h *History) evictLocked() {
	if h.Retention == 0 || len(h.entries) == 0 {
		return
	}
	newest := h.entries[len(h.entries)-1].Epoch
	if newest < h.Retention {
		return
	}
	floor := newest - h.Retention
	cut := sort.Search(len(h.entries), func(i int) bool {
		return h.entries[i].Epoch > floor
	})
	if cut > 0 {
		if h.OnEvict != nil {
			for _, ee := range h.entries[:cut] {
				h.OnEvict(ee.Epoch, ee.Entry)
			}
		}
		h.entries = append([]epochEntry(nil), h.entries[cut:]...)
	}
}
