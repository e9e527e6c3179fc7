package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/pkg/uid"
)

const (
	ErrNotHumanTurn   domain.Error = "it is not a human player's turn"
	ErrNotBotTurn     domain.Error = "it is not a bot's turn"
	ErrInvalidPlayers domain.Error = "players must be player 1 and player 2"
)

// MoveRecord is one entry of the move history. Search figures are zero for
// human moves.
type MoveRecord struct {
	Player   domain.PlayerID
	Column   int
	Row      int
	Score    int
	Nodes    int
	Duration time.Duration
}

// Match drives a game between two players. It is safe for concurrent use.
type Match struct {
	ID        string
	CreatedAt time.Time

	players      [2]Player
	state        *domain.GameState
	history      []MoveRecord
	lastActivity time.Time
	mu           sync.Mutex
}

func NewMatch(p1, p2 Player) (*Match, error) {
	if p1 == nil || p2 == nil || p1.ID() != domain.Player1 || p2.ID() != domain.Player2 {
		return nil, ErrInvalidPlayers
	}

	now := time.Now()
	return &Match{
		ID:           uid.GenerateMatchID(),
		CreatedAt:    now,
		players:      [2]Player{p1, p2},
		state:        domain.NewGameState(),
		lastActivity: now,
	}, nil
}

func (m *Match) State() *domain.GameState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Match) Players() [2]Player {
	return m.players
}

// Current is the player whose turn it is.
func (m *Match) Current() Player {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current()
}

func (m *Match) current() Player {
	return m.players[m.state.CurrentPlayer()-1]
}

// Winner returns the winning player, or nil while playing and after a draw.
func (m *Match) Winner() Player {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w := m.state.Winner(); w != domain.Empty {
		return m.players[w-1]
	}
	return nil
}

func (m *Match) History() []MoveRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MoveRecord, len(m.history))
	copy(out, m.history)
	return out
}

func (m *Match) LastActivity() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastActivity
}

// Play applies a human move for the current player.
func (m *Match) Play(column int) (MoveRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if IsBot(m.current()) && !m.state.IsTerminal() {
		return MoveRecord{}, ErrNotHumanTurn
	}
	return m.apply(MoveRecord{Player: m.state.CurrentPlayer(), Column: column})
}

// BotMove lets the current bot search and play. The context is checked
// before the search starts; the search itself runs to completion.
func (m *Match) BotMove(ctx context.Context) (MoveRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.IsTerminal() {
		return MoveRecord{}, &domain.InvalidMoveError{Column: domain.NoMove, Reason: domain.ErrGameOver}
	}
	b, ok := m.current().(*BotPlayer)
	if !ok {
		return MoveRecord{}, ErrNotBotTurn
	}
	if err := ctx.Err(); err != nil {
		return MoveRecord{}, err
	}

	res, err := b.Engine().ChooseMovePruned(m.state)
	if err != nil {
		return MoveRecord{}, fmt.Errorf("bot %s failed to move: %w", b.Name(), err)
	}

	rec, err := m.apply(MoveRecord{
		Player:   b.ID(),
		Column:   res.Column,
		Score:    res.Score,
		Nodes:    res.Nodes,
		Duration: res.Duration,
	})
	if err != nil {
		log.Error().Str("component", "MATCH").Str("match", m.ID).Int("column", res.Column).Err(err).
			Msg("engine chose an unplayable column")
		return MoveRecord{}, fmt.Errorf("bot %s chose column %d: %w", b.Name(), res.Column, err)
	}
	return rec, nil
}

// apply must be called with m.mu held.
func (m *Match) apply(rec MoveRecord) (MoveRecord, error) {
	if m.state.IsValidColumn(rec.Column) {
		g := m.state.Grid()
		rec.Row = g.DropRow(rec.Column - 1)
	}

	next, err := m.state.ApplyMove(rec.Player, rec.Column)
	if err != nil {
		return MoveRecord{}, err
	}

	m.state = next
	m.history = append(m.history, rec)
	m.lastActivity = time.Now()

	if next.IsTerminal() {
		ev := log.Info().Str("component", "MATCH").Str("match", m.ID).Int("moves", next.MoveCount())
		if w := next.Winner(); w != domain.Empty {
			ev.Str("winner", m.players[w-1].Name()).Msg("game over")
		} else {
			ev.Msg("game drawn")
		}
	}
	return rec, nil
}

// Reset starts a fresh game with the same players.
func (m *Match) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = domain.NewGameState()
	m.history = nil
	m.lastActivity = time.Now()
}
