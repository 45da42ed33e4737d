// Package stats holds the importer's runtime counters. Counters are
// atomic so concurrent transport deliveries never race; the aggregator
// is injected explicitly instead of living as process-global state.
package stats

import (
	"sync/atomic"
	"time"
)

type Importer struct {
	processed    atomic.Int64
	forwarded    atomic.Int64
	imported     atomic.Int64
	errors       atomic.Int64
	lastActivity atomic.Int64
}

func NewImporter() *Importer {
	return &Importer{}
}

func (s *Importer) MessageProcessed() {
	s.processed.Add(1)
	s.touch()
}

func (s *Importer) MessageForwarded() {
	s.forwarded.Add(1)
	s.touch()
}

func (s *Importer) ProductImported() {
	s.imported.Add(1)
	s.touch()
}

func (s *Importer) Error() {
	s.errors.Add(1)
	s.touch()
}

func (s *Importer) touch() {
	s.lastActivity.Store(time.Now().UnixNano())
}

type Snapshot struct {
	Processed    int64
	Forwarded    int64
	Imported     int64
	Errors       int64
	LastActivity time.Time
}

// Snapshot reads the counters. LastActivity is zero until the first
// recorded event.
func (s *Importer) Snapshot() Snapshot {
	snap := Snapshot{
		Processed: s.processed.Load(),
		Forwarded: s.forwarded.Load(),
		Imported:  s.imported.Load(),
		Errors:    s.errors.Load(),
	}
	if ns := s.lastActivity.Load(); ns != 0 {
		snap.LastActivity = time.Unix(0, ns)
	}
	return snap
}
