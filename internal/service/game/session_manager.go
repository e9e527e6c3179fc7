package game

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
)

const ErrMatchNotFound domain.Error = "match not found"

// SessionManager keeps the matches that are played through the API.
type SessionManager struct {
	matches map[string]*Match // matchID → Match
	mu      sync.RWMutex
	botOpts []bot.Option
}

func NewSessionManager(botOpts ...bot.Option) *SessionManager {
	return &SessionManager{
		matches: make(map[string]*Match),
		botOpts: botOpts,
	}
}

// CreateBotMatch starts a human vs bot match. When the bot moves first its
// opening move is already played on return.
func (sm *SessionManager) CreateBotMatch(ctx context.Context, humanName string, difficulty bot.Difficulty, humanFirst bool) (*Match, error) {
	humanID, botID := domain.Player1, domain.Player2
	if !humanFirst {
		humanID, botID = domain.Player2, domain.Player1
	}

	b, err := NewBotPlayer(botID, difficulty, sm.botOpts...)
	if err != nil {
		return nil, err
	}
	human := NewHumanPlayer(humanID, humanName)

	var match *Match
	if humanFirst {
		match, err = NewMatch(human, b)
	} else {
		match, err = NewMatch(b, human)
	}
	if err != nil {
		return nil, err
	}

	if !humanFirst {
		if _, err := match.BotMove(ctx); err != nil {
			return nil, fmt.Errorf("opening move failed: %w", err)
		}
	}

	sm.mu.Lock()
	sm.matches[match.ID] = match
	sm.mu.Unlock()

	log.Info().Str("component", "SESSION").Str("match", match.ID).
		Str("human", human.Name()).Str("bot", b.Name()).Bool("humanFirst", humanFirst).
		Msg("created match")
	return match, nil
}

func (sm *SessionManager) Get(matchID string) (*Match, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	match, exists := sm.matches[matchID]
	if !exists {
		return nil, ErrMatchNotFound
	}
	return match, nil
}

func (sm *SessionManager) Remove(matchID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.matches[matchID]; !exists {
		return ErrMatchNotFound
	}
	delete(sm.matches, matchID)
	log.Info().Str("component", "SESSION").Str("match", matchID).Msg("removed match")
	return nil
}

// snapshot copies the registered matches out. Match locks are never taken
// while sm.mu is held.
func (sm *SessionManager) snapshot() []*Match {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	out := make([]*Match, 0, len(sm.matches))
	for _, match := range sm.matches {
		out = append(out, match)
	}
	return out
}

// Active returns the matches that are still being played, oldest first.
func (sm *SessionManager) Active() []*Match {
	all := sm.snapshot()
	active := make([]*Match, 0, len(all))
	for _, match := range all {
		if !match.State().IsTerminal() {
			active = append(active, match)
		}
	}

	slices.SortFunc(active, func(a, b *Match) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return active
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.matches)
}

// CleanupIdle drops matches with no activity for longer than maxIdle and
// returns how many were removed. Finished matches get a quarter of that.
func (sm *SessionManager) CleanupIdle(now time.Time, maxIdle time.Duration) int {
	var stale []*Match
	for _, match := range sm.snapshot() {
		limit := maxIdle
		if match.State().IsTerminal() {
			limit = maxIdle / 4
		}
		if now.Sub(match.LastActivity()) > limit {
			stale = append(stale, match)
		}
	}
	if len(stale) == 0 {
		return 0
	}

	sm.mu.Lock()
	count := 0
	for _, match := range stale {
		// the ID may have been removed or reused meanwhile
		if sm.matches[match.ID] == match {
			delete(sm.matches, match.ID)
			count++
		}
	}
	sm.mu.Unlock()

	if count > 0 {
		log.Info().Str("component", "SESSION").Int("removed", count).Msg("memory cleanup: removed stale matches")
	}
	return count
}
