package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/techequipments/engine/internal/metrics"
	"github.com/techequipments/engine/internal/models"
	"github.com/techequipments/engine/internal/trend"
)

// MaxSessions limits concurrent trend sessions.
const MaxSessions = 10

// SessionMaxAge is how long an idle session is kept before cleanup.
const SessionMaxAge = 30 * time.Minute

// SessionKeepAliveWindow protects recently touched sessions from eviction.
const SessionKeepAliveWindow = 5 * time.Minute

// DefaultPollInterval is the live poll period.
const DefaultPollInterval = 5 * time.Second

var (
	ErrNotFound        = errors.New("trend session not found")
	ErrTooManySessions = errors.New("too many trend sessions")
)

// Deps are the collaborators shared by every session controller.
type Deps struct {
	Source  trend.SampleSource
	Tags    trend.TagResolver
	Scale   trend.ScaleSource
	Catalog *trend.Catalog
	Config  trend.Config
}

// Info describes a trend session.
type Info struct {
	ID           string           `json:"id"`
	Equipment    string           `json:"equipment"`
	Group        models.TypeGroup `json:"group"`
	CreatedAt    time.Time        `json:"createdAt"`
	LastAccessed time.Time        `json:"lastAccessed"`
}

// Manager runs one trend controller and poll loop per viewer.
type Manager struct {
	sessions     map[string]*SessionState
	mu           sync.RWMutex
	deps         Deps
	pollInterval time.Duration
}

// SessionState holds a session's controller and its poll loop.
type SessionState struct {
	Info       Info
	Controller *trend.Controller

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int

	kick   chan struct{}
	cancel context.CancelFunc
	done   chan struct{}
}

// NewManager creates a session manager. A non-positive pollInterval uses
// DefaultPollInterval.
func NewManager(deps Deps, pollInterval time.Duration) *Manager {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if deps.Catalog == nil {
		deps.Catalog = trend.NewCatalog()
	}
	return &Manager{
		sessions:     make(map[string]*SessionState),
		deps:         deps,
		pollInterval: pollInterval,
	}
}

// StartSession opens a live trend of equipment and starts polling it.
// windowMinutes <= 0 keeps the configured window.
func (m *Manager) StartSession(equipment string, group models.TypeGroup, windowMinutes int) (*Info, error) {
	equipment = strings.TrimSpace(equipment)
	if equipment == "" {
		return nil, fmt.Errorf("equipment is required")
	}

	m.cleanupOldSessionsIfNeeded()

	ctrl := trend.NewController(m.deps.Source, m.deps.Tags, m.deps.Scale, m.deps.Catalog, m.deps.Config)
	ctrl.Select(equipment, group)
	if windowMinutes > 0 {
		ctrl.SetWindowMinutes(windowMinutes)
	}

	now := time.Now()
	ctx, cancel := context.WithCancel(context.Background())
	state := &SessionState{
		Info: Info{
			ID:           uuid.New().String(),
			Equipment:    equipment,
			Group:        group,
			CreatedAt:    now,
			LastAccessed: now,
		},
		Controller: ctrl,
		subs:       make(map[int]chan struct{}),
		kick:       make(chan struct{}, 1),
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	ctrl.OnUpdate(state.broadcast)

	m.mu.Lock()
	if len(m.sessions) >= MaxSessions {
		m.mu.Unlock()
		cancel()
		ctrl.Close()
		return nil, ErrTooManySessions
	}
	m.sessions[state.Info.ID] = state
	active := len(m.sessions)
	m.mu.Unlock()
	metrics.TrendSessionsActive.Set(float64(active))

	go m.runPoll(ctx, state)

	fmt.Printf("[Trend %s] Started for %s (%s)\n", state.Info.ID[:8], equipment, group)
	info := state.Info
	return &info, nil
}

func (m *Manager) runPoll(ctx context.Context, state *SessionState) {
	defer close(state.done)

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		m.pollOnce(ctx, state)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-state.kick:
		}
	}
}

func (m *Manager) pollOnce(ctx context.Context, state *SessionState) {
	id := state.Info.ID[:8]
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("[Trend %s] PANIC recovered: %v\n", id, r)
		}
	}()
	if err := state.Controller.PollOnce(ctx); err != nil {
		fmt.Printf("[Trend %s] Poll failed: %v\n", id, err)
	}
}

func (s *SessionState) broadcast() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *SessionState) stop() {
	s.cancel()
	<-s.done
	s.Controller.Close()

	s.subMu.Lock()
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
	s.subMu.Unlock()
}

func (m *Manager) get(id string) (*SessionState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return state, nil
}

// GetSession returns the session info.
func (m *Manager) GetSession(id string) (*Info, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	info := state.Info
	return &info, true
}

// Controller returns the controller of a session.
func (m *Manager) Controller(id string) (*trend.Controller, bool) {
	state, err := m.get(id)
	if err != nil {
		return nil, false
	}
	return state.Controller, true
}

// TouchSession updates the LastAccessed timestamp of a session.
func (m *Manager) TouchSession(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.sessions[id]
	if !ok {
		return false
	}
	state.Info.LastAccessed = time.Now()
	return true
}

// ChangeEquipment points the session at another equipment. The buffer is
// cleared and the view goes live; a poll is scheduled at once.
func (m *Manager) ChangeEquipment(ctx context.Context, id, equipment string, group models.TypeGroup) error {
	equipment = strings.TrimSpace(equipment)
	if equipment == "" {
		return fmt.Errorf("equipment is required")
	}
	state, err := m.get(id)
	if err != nil {
		return err
	}

	state.Controller.Select(equipment, group)
	if err := state.Controller.SetLiveMode(ctx, true); err != nil {
		return err
	}

	m.mu.Lock()
	state.Info.Equipment = equipment
	state.Info.Group = group
	state.Info.LastAccessed = time.Now()
	m.mu.Unlock()

	m.Poke(id)
	fmt.Printf("[Trend %s] Switched to %s (%s)\n", id[:8], equipment, group)
	return nil
}

// Poke schedules an immediate poll.
func (m *Manager) Poke(id string) bool {
	state, err := m.get(id)
	if err != nil {
		return false
	}
	select {
	case state.kick <- struct{}{}:
	default:
	}
	return true
}

// Subscribe returns a channel signalled after every state change of the
// session. The channel is closed when the session ends. Call the returned
// func to unsubscribe.
func (m *Manager) Subscribe(id string) (<-chan struct{}, func(), error) {
	state, err := m.get(id)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan struct{}, 1)
	state.subMu.Lock()
	subID := state.nextSub
	state.nextSub++
	state.subs[subID] = ch
	state.subMu.Unlock()

	unsubscribe := func() {
		state.subMu.Lock()
		defer state.subMu.Unlock()
		if c, ok := state.subs[subID]; ok {
			close(c)
			delete(state.subs, subID)
		}
	}
	return ch, unsubscribe, nil
}

// CloseSession stops and removes a session.
func (m *Manager) CloseSession(id string) bool {
	m.mu.Lock()
	state, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	active := len(m.sessions)
	m.mu.Unlock()
	if !ok {
		return false
	}

	state.stop()
	metrics.TrendSessionsActive.Set(float64(active))
	fmt.Printf("[Trend %s] Closed\n", id[:8])
	return true
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// cleanupOldSessionsIfNeeded evicts the least recently used sessions outside
// the keep-alive window when at capacity.
func (m *Manager) cleanupOldSessionsIfNeeded() {
	m.mu.Lock()
	if len(m.sessions) < MaxSessions {
		m.mu.Unlock()
		return
	}

	keepAliveCutoff := time.Now().Add(-SessionKeepAliveWindow)
	var oldest *SessionState
	for _, state := range m.sessions {
		if state.Info.LastAccessed.After(keepAliveCutoff) {
			continue
		}
		if oldest == nil || state.Info.LastAccessed.Before(oldest.Info.LastAccessed) {
			oldest = state
		}
	}
	if oldest == nil {
		m.mu.Unlock()
		return
	}
	delete(m.sessions, oldest.Info.ID)
	active := len(m.sessions)
	m.mu.Unlock()

	oldest.stop()
	metrics.TrendSessionsActive.Set(float64(active))
	fmt.Printf("[Manager] Evicted idle trend session %s\n", oldest.Info.ID[:8])
}

// CleanupOldSessions removes sessions not accessed within maxAge. Sessions
// touched within SessionKeepAliveWindow are always kept.
func (m *Manager) CleanupOldSessions(maxAge time.Duration) int {
	if maxAge < SessionKeepAliveWindow {
		maxAge = SessionKeepAliveWindow
	}
	cutoff := time.Now().Add(-maxAge)

	m.mu.Lock()
	var expired []*SessionState
	for id, state := range m.sessions {
		if state.Info.LastAccessed.Before(cutoff) {
			expired = append(expired, state)
			delete(m.sessions, id)
		}
	}
	active := len(m.sessions)
	m.mu.Unlock()

	for _, state := range expired {
		state.stop()
		fmt.Printf("[Manager] Cleaned up aged trend session %s (last accessed: %s ago)\n",
			state.Info.ID[:8], time.Since(state.Info.LastAccessed).Round(time.Second))
	}
	if len(expired) > 0 {
		metrics.TrendSessionsActive.Set(float64(active))
	}
	return len(expired)
}

// Close stops every session.
func (m *Manager) Close() {
	m.mu.Lock()
	states := make([]*SessionState, 0, len(m.sessions))
	for id, state := range m.sessions {
		states = append(states, state)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, state := range states {
		state.stop()
	}
	metrics.TrendSessionsActive.Set(0)
}
