package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techequipments/engine/internal/models"
	"github.com/techequipments/engine/internal/testutil"
	"github.com/techequipments/engine/internal/trend"
)

func newTestManager(t *testing.T) (*Manager, *testutil.MockHistorian) {
	t.Helper()
	hist := testutil.NewMockHistorian()
	dir := testutil.NewMockDirectory()
	dir.AddEquipment("ST1.AI01", "AnalogIn", map[string]string{"R": "AI01.R"})
	dir.AddEquipment("ST1.AI02", "AnalogIn", map[string]string{"R": "AI02.R"})

	start := time.Now().Add(-10 * time.Minute)
	hist.Add("AI01.R", testutil.Series(start, time.Minute, 1, 2, 3, 4, 5)...)
	hist.Add("AI02.R", testutil.Series(start, time.Minute, 7, 8)...)

	cfg := trend.DefaultConfig()
	cfg.Location = time.UTC
	m := NewManager(Deps{Source: hist, Tags: dir, Scale: dir, Config: cfg}, 50*time.Millisecond)
	t.Cleanup(m.Close)
	return m, hist
}

func waitPoints(t *testing.T, ctrl *trend.Controller, series string, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		count := 0
		for _, p := range ctrl.Snapshot().Points {
			if p.Series == series {
				count++
			}
		}
		return count == n
	}, 3*time.Second, 10*time.Millisecond)
}

func TestSessionManager_StartAndPoll(t *testing.T) {
	m, _ := newTestManager(t)

	info, err := m.StartSession("ST1.AI01", models.GroupAI, 30)
	require.NoError(t, err)
	assert.Len(t, info.ID, 36)
	assert.Equal(t, "ST1.AI01", info.Equipment)
	assert.Equal(t, 1, m.Len())

	ctrl, ok := m.Controller(info.ID)
	require.True(t, ok)
	waitPoints(t, ctrl, "R", 5)

	snap := ctrl.Snapshot()
	assert.Equal(t, models.ModeLive, snap.Mode)
	assert.Equal(t, 30*time.Minute, snap.Axis.VisualMax.Sub(snap.Axis.VisualMin))
}

func TestSessionManager_StartValidation(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.StartSession("  ", models.GroupAI, 0)
	assert.Error(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestSessionManager_ChangeEquipment(t *testing.T) {
	m, _ := newTestManager(t)

	info, err := m.StartSession("ST1.AI01", models.GroupAI, 0)
	require.NoError(t, err)
	ctrl, _ := m.Controller(info.ID)
	waitPoints(t, ctrl, "R", 5)

	require.NoError(t, m.ChangeEquipment(context.Background(), info.ID, "ST1.AI02", models.GroupAI))
	waitPoints(t, ctrl, "R", 2)

	got, ok := m.GetSession(info.ID)
	require.True(t, ok)
	assert.Equal(t, "ST1.AI02", got.Equipment)

	assert.ErrorIs(t, m.ChangeEquipment(context.Background(), "missing", "ST1.AI02", models.GroupAI), ErrNotFound)
	assert.Error(t, m.ChangeEquipment(context.Background(), info.ID, "", models.GroupAI))
}

func TestSessionManager_Subscribe(t *testing.T) {
	m, _ := newTestManager(t)

	info, err := m.StartSession("ST1.AI01", models.GroupAI, 0)
	require.NoError(t, err)

	updates, unsubscribe, err := m.Subscribe(info.ID)
	require.NoError(t, err)

	select {
	case <-updates:
	case <-time.After(3 * time.Second):
		t.Fatal("no update received")
	}

	unsubscribe()
	unsubscribe()
	_, open := <-updates
	assert.False(t, open)

	_, _, err = m.Subscribe("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionManager_CloseSessionEndsSubscribers(t *testing.T) {
	m, _ := newTestManager(t)

	info, err := m.StartSession("ST1.AI01", models.GroupAI, 0)
	require.NoError(t, err)
	updates, unsubscribe, err := m.Subscribe(info.ID)
	require.NoError(t, err)
	defer unsubscribe()

	assert.True(t, m.CloseSession(info.ID))
	assert.False(t, m.CloseSession(info.ID))
	assert.Equal(t, 0, m.Len())

	require.Eventually(t, func() bool {
		select {
		case _, open := <-updates:
			return !open
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestSessionManager_TouchAndCleanup(t *testing.T) {
	m, _ := newTestManager(t)

	info, err := m.StartSession("ST1.AI01", models.GroupAI, 0)
	require.NoError(t, err)
	assert.True(t, m.TouchSession(info.ID))
	assert.False(t, m.TouchSession("missing"))

	// fresh sessions are inside the keep-alive window
	assert.Equal(t, 0, m.CleanupOldSessions(time.Nanosecond))
	assert.Equal(t, 1, m.Len())

	m.mu.Lock()
	m.sessions[info.ID].Info.LastAccessed = time.Now().Add(-time.Hour)
	m.mu.Unlock()

	assert.Equal(t, 1, m.CleanupOldSessions(SessionMaxAge))
	assert.Equal(t, 0, m.Len())
	_, ok := m.GetSession(info.ID)
	assert.False(t, ok)
}

func TestSessionManager_MaxSessions(t *testing.T) {
	m, _ := newTestManager(t)

	ids := make([]string, 0, MaxSessions)
	for i := 0; i < MaxSessions; i++ {
		info, err := m.StartSession("ST1.AI01", models.GroupAI, 0)
		require.NoError(t, err)
		ids = append(ids, info.ID)
	}

	_, err := m.StartSession("ST1.AI01", models.GroupAI, 0)
	assert.ErrorIs(t, err, ErrTooManySessions)

	// an idle session outside the keep-alive window is evicted
	m.mu.Lock()
	m.sessions[ids[3]].Info.LastAccessed = time.Now().Add(-time.Hour)
	m.mu.Unlock()

	_, err = m.StartSession("ST1.AI02", models.GroupAI, 0)
	require.NoError(t, err)
	assert.Equal(t, MaxSessions, m.Len())
	_, ok := m.GetSession(ids[3])
	assert.False(t, ok)
}
