// Package jobs runs SOE extractions in the background and tracks their
// progress for polling and streaming clients.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/techequipments/engine/internal/models"
	"github.com/techequipments/engine/internal/soe"
)

// Status represents the state of an extraction job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusComplete  Status = "complete"
	StatusCancelled Status = "cancelled"
	StatusError     Status = "error"
)

// Done reports whether the job has finished.
func (s Status) Done() bool {
	return s == StatusComplete || s == StatusCancelled || s == StatusError
}

// ErrNotFound is returned for unknown job IDs.
var ErrNotFound = errors.New("soe job not found")

// Extractor runs one aggregated extraction.
type Extractor interface {
	Extract(ctx context.Context, name string, opts soe.Options, progress soe.ProgressFunc) (*models.SoeResult, error)
}

// Job is a snapshot of an extraction job.
type Job struct {
	ID           string                 `json:"id"`
	Equipment    string                 `json:"equipment"`
	Options      soe.Options            `json:"options"`
	Status       Status                 `json:"status"`
	Progress     models.LoadingProgress `json:"progress"`
	RecordCount  int                    `json:"recordCount"`
	Truncated    bool                   `json:"truncated"`
	StoppedOnBad []string               `json:"stoppedOnBad,omitempty"`
	Message      string                 `json:"message,omitempty"`
	Error        string                 `json:"error,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
	CompletedAt  *time.Time             `json:"completedAt,omitempty"`
}

type jobState struct {
	job    Job
	result *models.SoeResult
	cancel context.CancelFunc
	done   chan struct{}
}

// Manager handles async SOE extractions.
type Manager struct {
	jobs      map[string]*jobState
	mu        sync.RWMutex
	extractor Extractor
	timeout   time.Duration
	sem       chan struct{}
}

// NewManager creates a job manager. At most maxConcurrent extractions run
// at once; the rest wait as pending. A zero timeout means none.
func NewManager(extractor Extractor, maxConcurrent int, timeout time.Duration) *Manager {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Manager{
		jobs:      make(map[string]*jobState),
		extractor: extractor,
		timeout:   timeout,
		sem:       make(chan struct{}, maxConcurrent),
	}
}

// StartJob queues an extraction of equipment.
func (m *Manager) StartJob(equipment string, opts soe.Options) (*Job, error) {
	equipment = strings.TrimSpace(equipment)
	if equipment == "" {
		return nil, fmt.Errorf("equipment is required")
	}

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if m.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), m.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}

	state := &jobState{
		job: Job{
			ID:        uuid.New().String(),
			Equipment: equipment,
			Options:   opts,
			Status:    StatusPending,
			CreatedAt: time.Now(),
		},
		cancel: cancel,
		done:   make(chan struct{}),
	}

	// snapshot before processJob can touch state.job
	job := state.job

	m.mu.Lock()
	m.jobs[job.ID] = state
	m.mu.Unlock()

	go m.processJob(ctx, state)
	return &job, nil
}

func (m *Manager) processJob(ctx context.Context, state *jobState) {
	id := state.job.ID[:8]
	defer close(state.done)
	defer state.cancel()
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("[SoeJob %s] PANIC recovered: %v\n", id, r)
			m.finish(state, nil, fmt.Errorf("extraction panicked: %v", r))
		}
	}()

	select {
	case m.sem <- struct{}{}:
		defer func() { <-m.sem }()
	case <-ctx.Done():
		m.finish(state, nil, ctx.Err())
		return
	}

	m.mu.Lock()
	state.job.Status = StatusRunning
	m.mu.Unlock()

	fmt.Printf("[SoeJob %s] Extracting %s\n", id, state.job.Equipment)
	result, err := m.extractor.Extract(ctx, state.job.Equipment, state.job.Options, func(p models.LoadingProgress) {
		m.mu.Lock()
		state.job.Progress = p
		m.mu.Unlock()
	})
	m.finish(state, result, err)
}

func (m *Manager) finish(state *jobState, result *models.SoeResult, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if state.job.Status.Done() {
		return
	}
	now := time.Now()
	state.job.CompletedAt = &now
	id := state.job.ID[:8]

	switch {
	case err == nil:
		state.result = result
		state.job.Status = StatusComplete
		if result != nil {
			state.job.RecordCount = len(result.Records)
			state.job.Truncated = result.Truncated
			state.job.StoppedOnBad = result.StoppedOnBad
		}
		fmt.Printf("[SoeJob %s] Complete: %d records\n", id, state.job.RecordCount)
	case errors.Is(err, context.Canceled):
		state.job.Status = StatusCancelled
		state.job.Message = "Cancelled"
		fmt.Printf("[SoeJob %s] Cancelled\n", id)
	case errors.Is(err, context.DeadlineExceeded):
		state.job.Status = StatusError
		state.job.Error = "extraction timed out"
		fmt.Printf("[SoeJob %s] Timed out\n", id)
	default:
		state.job.Status = StatusError
		state.job.Error = err.Error()
		fmt.Printf("[SoeJob %s] Error: %v\n", id, err)
	}
}

// GetJob returns a snapshot of a job.
func (m *Manager) GetJob(id string) (*Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.jobs[id]
	if !ok {
		return nil, false
	}
	job := state.job
	return &job, true
}

// Result returns the records of a completed job.
func (m *Manager) Result(id string) (*models.SoeResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	if state.job.Status != StatusComplete {
		return nil, fmt.Errorf("job %s is %s", id, state.job.Status)
	}
	return state.result, nil
}

// Cancel requests cancellation. It reports false for unknown or finished jobs.
func (m *Manager) Cancel(id string) bool {
	m.mu.RLock()
	state, ok := m.jobs[id]
	done := ok && state.job.Status.Done()
	m.mu.RUnlock()
	if !ok || done {
		return false
	}
	state.cancel()
	return true
}

// Wait blocks until the job has finished or ctx is done.
func (m *Manager) Wait(ctx context.Context, id string) (*Job, error) {
	m.mu.RLock()
	state, ok := m.jobs[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	select {
	case <-state.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	job, _ := m.GetJob(id)
	if job == nil {
		return nil, ErrNotFound
	}
	return job, nil
}

// CleanupOldJobs removes finished jobs older than maxAge.
func (m *Manager) CleanupOldJobs(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, state := range m.jobs {
		if state.job.Status.Done() && state.job.CompletedAt != nil && state.job.CompletedAt.Before(cutoff) {
			delete(m.jobs, id)
			removed++
		}
	}
	return removed
}

// Close cancels every running job.
func (m *Manager) Close() {
	m.mu.RLock()
	states := make([]*jobState, 0, len(m.jobs))
	for _, state := range m.jobs {
		states = append(states, state)
	}
	m.mu.RUnlock()

	for _, state := range states {
		state.cancel()
		<-state.done
	}
}
