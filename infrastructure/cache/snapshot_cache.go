package cache

import (
	"slices"
	"sync"
	"time"

	"shiptrack/infrastructure/shipment"
)

// Snapshot is the row set from one successful refresh.
type Snapshot struct {
	RunID     string
	FetchedAt time.Time
	Rows      []shipment.Row
}

// SnapshotCache holds the current snapshot. Replace swaps it wholesale.
type SnapshotCache struct {
	mu      sync.RWMutex
	current Snapshot
}

func NewSnapshotCache() *SnapshotCache {
	return &SnapshotCache{}
}

func (c *SnapshotCache) Replace(s Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = Snapshot{RunID: s.RunID, FetchedAt: s.FetchedAt, Rows: slices.Clone(s.Rows)}
}

// Current returns a copy callers may reorder freely.
func (c *SnapshotCache) Current() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.current
	s.Rows = slices.Clone(c.current.Rows)
	return s
}

func (c *SnapshotCache) Rows() []shipment.Row {
	return c.Current().Rows
}
