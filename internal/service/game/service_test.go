package game

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/iamasit07/connect4-solo/pkg/uid"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestManager(seed int64) (*SessionManager, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	sm := NewSessionManager(seed)
	sm.now = clock.Now
	return sm, clock
}

func TestSessionManager_CreateAndGet(t *testing.T) {
	sm, _ := newTestManager(1)

	session := sm.CreateSession()
	require.True(t, uid.IsGameID(session.GameID))
	require.Equal(t, 1, sm.Count())

	found, ok := sm.GetSessionByGameID(session.GameID)
	require.True(t, ok)
	require.Same(t, session, found)

	_, ok = sm.GetSessionByGameID("missing")
	require.False(t, ok)

	status := session.Status()
	require.Equal(t, domain.StateInProgress, status.State)
	require.Equal(t, domain.Human, status.CurrentPlayer)
}

func TestSessionManager_RemoveSession(t *testing.T) {
	sm, _ := newTestManager(1)
	session := sm.CreateSession()

	require.NoError(t, sm.RemoveSession(session.GameID))
	require.Equal(t, 0, sm.Count())

	err := sm.RemoveSession(session.GameID)
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionManager_SeededSessionsAreReproducible(t *testing.T) {
	play := func() []int {
		sm, _ := newTestManager(99)
		session := sm.CreateSession()
		columns := make([]int, 0)
		for rep := 0; rep < 3; rep++ {
			result, err := session.HandleMove(0)
			require.NoError(t, err)
			if result.ComputerMove == nil {
				break
			}
			columns = append(columns, result.ComputerMove.Column)
		}
		return columns
	}

	require.Equal(t, play(), play())
}

func TestGameSession_HandleMove(t *testing.T) {
	sm, clock := newTestManager(1)
	session := sm.CreateSession()
	clock.Advance(time.Minute)

	result, err := session.HandleMove(3)
	require.NoError(t, err)
	require.NotNil(t, result.HumanMove)
	require.Equal(t, clock.Now(), session.lastActive())

	_, err = session.HandleMove(42)
	require.ErrorIs(t, err, domain.ErrInvalidColumn)
}

func TestGameSession_Reset(t *testing.T) {
	sm, _ := newTestManager(1)
	session := sm.CreateSession()

	_, err := session.HandleMove(2)
	require.NoError(t, err)

	status := session.Reset()
	require.Equal(t, 0, status.MoveCount)
	require.Equal(t, domain.Human, status.CurrentPlayer)
}

func TestSessionManager_GetActiveGames(t *testing.T) {
	sm, clock := newTestManager(1)

	first := sm.CreateSession()
	clock.Advance(time.Second)
	second := sm.CreateSession()
	clock.Advance(time.Second)

	_, err := first.HandleMove(0)
	require.NoError(t, err)

	games := sm.GetActiveGames()
	require.Len(t, games, 2)
	require.Equal(t, first.GameID, games[0].GameID)
	require.Equal(t, 2, games[0].MoveCount)
	require.Equal(t, second.GameID, games[1].GameID)
	require.Equal(t, 0, games[1].MoveCount)
}

func TestSessionManager_CleanupIdleSessions(t *testing.T) {
	sm, clock := newTestManager(1)

	stale := sm.CreateSession()
	clock.Advance(20 * time.Minute)
	fresh := sm.CreateSession()
	clock.Advance(15 * time.Minute)

	removed := sm.CleanupIdleSessions(30 * time.Minute)
	require.Equal(t, 1, removed)

	_, ok := sm.GetSessionByGameID(stale.GameID)
	require.False(t, ok)
	_, ok = sm.GetSessionByGameID(fresh.GameID)
	require.True(t, ok)

	require.Equal(t, 0, sm.CleanupIdleSessions(30*time.Minute))
}

func TestGameSession_ConcurrentMoves(t *testing.T) {
	sm, _ := newTestManager(5)
	session := sm.CreateSession()

	var wg sync.WaitGroup
	for c := 0; c < domain.Columns; c++ {
		wg.Add(1)
		go func(column int) {
			defer wg.Done()
			_, _ = session.HandleMove(column)
			_ = session.Status()
		}(c)
	}
	wg.Wait()

	status := session.Status()
	require.Positive(t, status.MoveCount)
	require.LessOrEqual(t, status.MoveCount, 2*domain.Columns)
}
