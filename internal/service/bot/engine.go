package bot

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

const DefaultDepth = 5

const (
	// ErrTerminalState means the caller asked for a move where none exists.
	ErrTerminalState domain.Error = "search on terminal state"
	ErrInvalidDepth  domain.Error = "search depth must be at least 1"
)

// Engine picks moves for one player with a fixed search horizon.
// It keeps no state between calls, so one Engine may serve many games.
type Engine struct {
	player   domain.PlayerID
	opponent domain.PlayerID
	depth    int
	random   bool
	rng      *rand.Rand
	rngMu    sync.Mutex
	logger   zerolog.Logger
}

type Option func(*Engine)

func WithDepth(depth int) Option {
	return func(e *Engine) {
		e.depth = depth
	}
}

// WithRandomTieBreak makes the engine pick uniformly among root moves that
// share the best score. Without it the lowest such column wins. rng must not
// be shared with other engines.
func WithRandomTieBreak(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.random = true
		e.rng = rng
	}
}

// WithRandomTies is WithRandomTieBreak seeded from the global source.
func WithRandomTies() Option {
	return func(e *Engine) {
		e.random = true
		e.rng = nil
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func NewEngine(player domain.PlayerID, opts ...Option) (*Engine, error) {
	if !player.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidPlayer, player)
	}

	e := &Engine{
		player:   player,
		opponent: player.Other(),
		depth:    DefaultDepth,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.depth < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, e.depth)
	}
	return e, nil
}

func (e *Engine) Player() domain.PlayerID {
	return e.player
}

func (e *Engine) Depth() int {
	return e.depth
}

// SearchResult describes one root search.
type SearchResult struct {
	Column   int
	Score    int
	Nodes    int
	Depth    int
	Pruned   bool
	Duration time.Duration
}

// ChooseMove returns the column (1-based) the engine wants to play.
func (e *Engine) ChooseMove(state *domain.GameState) (int, error) {
	res, err := e.ChooseMovePruned(state)
	if err != nil {
		return domain.NoMove, err
	}
	return res.Column, nil
}

// ChooseMovePruned runs the alpha-beta search and reports how many nodes it visited.
func (e *Engine) ChooseMovePruned(state *domain.GameState) (SearchResult, error) {
	return e.run(state, true)
}

// ChooseMoveUnpruned walks the whole depth-bounded tree without cutoffs.
// It exists to measure how much work pruning saves.
func (e *Engine) ChooseMoveUnpruned(state *domain.GameState) (SearchResult, error) {
	return e.run(state, false)
}

// searchRand derives a per-search source so concurrent searches never share
// the configured one.
func (e *Engine) searchRand() *rand.Rand {
	if !e.random {
		return nil
	}
	if e.rng == nil {
		return rand.New(rand.NewSource(rand.Int63()))
	}
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return rand.New(rand.NewSource(e.rng.Int63()))
}

func (e *Engine) run(state *domain.GameState, prune bool) (SearchResult, error) {
	if state == nil || state.IsTerminal() || len(state.ValidMoves()) == 0 {
		return SearchResult{Column: domain.NoMove}, ErrTerminalState
	}

	s := &searcher{
		root:      e.player,
		opponent:  e.opponent,
		rootDepth: e.depth,
		prune:     prune,
		rng:       e.searchRand(),
	}

	start := time.Now()
	col, score := s.minimax(state, e.depth, minInf, maxInf, true)
	elapsed := time.Since(start)

	e.logger.Debug().
		Int("player", int(e.player)).
		Int("depth", e.depth).
		Bool("pruned", prune).
		Int("column", col).
		Int("score", score).
		Int("nodes", s.nodes).
		Dur("took", elapsed).
		Msg("search finished")

	return SearchResult{
		Column:   col,
		Score:    score,
		Nodes:    s.nodes,
		Depth:    e.depth,
		Pruned:   prune,
		Duration: elapsed,
	}, nil
}
