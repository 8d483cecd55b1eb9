package game

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/iamasit07/connect4-solo/internal/service/round"
	"github.com/iamasit07/connect4-solo/pkg/uid"
)

// GameSession is one human playing the computer. The round inside is not
// safe for concurrent use, so every access goes through mu.
type GameSession struct {
	GameID       string
	CreatedAt    time.Time
	LastActivity time.Time
	round        *round.Round
	now          func() time.Time
	mu           sync.Mutex
}

// SessionManager manages active game sessions
type SessionManager struct {
	Session map[string]*GameSession // gameID → GameSession
	mu      sync.RWMutex
	seed    int64
	created int64
	now     func() time.Time
}

// GameSummary is a listing entry for an active session.
type GameSummary struct {
	GameID       string            `json:"gameId"`
	State        domain.RoundState `json:"state"`
	MoveCount    int               `json:"moveCount"`
	CreatedAt    time.Time         `json:"createdAt"`
	LastActivity time.Time         `json:"lastActivity"`
}

// NewSessionManager creates a manager. A non-zero seed makes the computer's
// moves reproducible across runs; zero seeds every session from the clock.
func NewSessionManager(seed int64) *SessionManager {
	return &SessionManager{
		Session: make(map[string]*GameSession),
		seed:    seed,
		now:     time.Now,
	}
}

func (sm *SessionManager) CreateSession() *GameSession {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.created++
	seed := sm.seed + sm.created
	if sm.seed == 0 {
		seed = sm.now().UnixNano() + sm.created
	}

	now := sm.now()
	session := &GameSession{
		GameID:       uid.GenerateGameID(),
		CreatedAt:    now,
		LastActivity: now,
		round:        round.NewSeeded(seed),
		now:          sm.now,
	}
	sm.Session[session.GameID] = session

	log.Printf("[SESSION] Created session %s", session.GameID)
	return session
}

func (sm *SessionManager) GetSessionByGameID(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.Session[gameID]; !exists {
		return fmt.Errorf("remove %s: %w", gameID, domain.ErrSessionNotFound)
	}
	delete(sm.Session, gameID)

	log.Printf("[SESSION] Removed session %s", gameID)
	return nil
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.Session)
}

// GetActiveGames lists every session, most recently active first.
func (sm *SessionManager) GetActiveGames() []GameSummary {
	sm.mu.RLock()
	sessions := make([]*GameSession, 0, len(sm.Session))
	for _, session := range sm.Session {
		sessions = append(sessions, session)
	}
	sm.mu.RUnlock()

	games := make([]GameSummary, 0, len(sessions))
	for _, session := range sessions {
		games = append(games, session.Summary())
	}

	sort.Slice(games, func(i, j int) bool {
		if games[i].LastActivity.Equal(games[j].LastActivity) {
			return games[i].GameID < games[j].GameID
		}
		return games[i].LastActivity.After(games[j].LastActivity)
	})
	return games
}

// CleanupIdleSessions drops sessions nobody touched for longer than maxIdle
// and returns how many were removed.
func (sm *SessionManager) CleanupIdleSessions(maxIdle time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	now := sm.now()

	for gameID, session := range sm.Session {
		if now.Sub(session.lastActive()) > maxIdle {
			delete(sm.Session, gameID)
			count++
		}
	}

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d idle game sessions", count)
	}
	return count
}

// HandleMove plays the human's column and the computer's answer.
func (gs *GameSession) HandleMove(column int) (round.TurnResult, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.LastActivity = gs.now()

	result, err := gs.round.PlayTurn(column)
	if err != nil {
		return result, err
	}

	if result.Finished {
		switch {
		case result.Draw:
			log.Printf("[SESSION] Game %s ended in a draw", gs.GameID)
		default:
			log.Printf("[SESSION] Game %s won by %s\n%s", gs.GameID, result.Winner, gs.round.String())
		}
	}
	return result, nil
}

func (gs *GameSession) Reset() round.Status {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.LastActivity = gs.now()
	gs.round.Reset()

	log.Printf("[SESSION] Game %s reset", gs.GameID)
	return gs.round.Status()
}

func (gs *GameSession) Status() round.Status {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.round.Status()
}

func (gs *GameSession) Summary() GameSummary {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	status := gs.round.Status()
	return GameSummary{
		GameID:       gs.GameID,
		State:        status.State,
		MoveCount:    status.MoveCount,
		CreatedAt:    gs.CreatedAt,
		LastActivity: gs.LastActivity,
	}
}

func (gs *GameSession) lastActive() time.Time {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.LastActivity
}
