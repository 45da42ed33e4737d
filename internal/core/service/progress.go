package service

import (
	"sync"
	"time"

	"github.com/bazaarline/importer/internal/core/domain"
)

// ProgressTracker keeps in-memory progress for running batch imports
// so status polls do not hit the database on every request.
type ProgressTracker struct {
	mu   sync.RWMutex
	runs map[string]domain.BatchProgress
}

func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{runs: make(map[string]domain.BatchProgress)}
}

func (t *ProgressTracker) Start(runID string, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.runs[runID] = domain.BatchProgress{
		Status:    domain.RunStatusProcessing,
		Total:     total,
		CreatedAt: time.Now(),
	}
}

// Step records one processed row. errMsg is empty on success.
func (t *ProgressTracker) Step(runID string, errMsg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.runs[runID]
	if !ok {
		return
	}
	p.Processed++
	if errMsg == "" {
		p.SuccessCount++
	} else {
		p.ErrorCount++
		p.Errors = append(p.Errors, errMsg)
	}
	if p.Total > 0 {
		p.Progress = p.Processed * 100 / p.Total
	}
	t.runs[runID] = p
}

func (t *ProgressTracker) Finish(runID string, status string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.runs[runID]
	if !ok {
		return
	}
	p.Status = status
	p.Progress = 100
	t.runs[runID] = p
}

func (t *ProgressTracker) Get(runID string) (domain.BatchProgress, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.runs[runID]
	return p, ok
}
