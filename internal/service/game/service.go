package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iamasit07/4-in-a-row/engine/internal/config"
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/engine/pkg/logger"
)

// MaxDepth bounds the horizon callers may request from the service.
const MaxDepth = config.MaxEngineDepth

const ErrDepthOutOfRange domain.Error = "depth out of range"

// CacheRepository is the key/value store used to remember chosen moves.
type CacheRepository interface {
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// Service answers one-off move and evaluation requests.
type Service struct {
	cache   CacheRepository
	ttl     time.Duration
	logger  zerolog.Logger
	botOpts []bot.Option
}

// NewService creates a service. cache may be nil. botOpts are applied to
// every search engine; the requested depth always wins over WithDepth.
func NewService(cache CacheRepository, ttl time.Duration, botOpts ...bot.Option) *Service {
	return &Service{
		cache:   cache,
		ttl:     ttl,
		logger:  logger.Component("CACHE"),
		botOpts: botOpts,
	}
}

type MoveResult struct {
	Column   int           `json:"column"`
	Score    int           `json:"score"`
	Nodes    int           `json:"nodes"`
	Depth    int           `json:"depth"`
	Duration time.Duration `json:"-"`
	Cached   bool          `json:"cached"`
}

func moveKey(state *domain.GameState, player domain.PlayerID, depth int) string {
	g := state.Grid()
	return fmt.Sprintf("move:%s:%d:%d", g.Key(), player, depth)
}

// BestMove searches for player's move at the given depth, consulting the
// cache first when one is configured.
func (s *Service) BestMove(ctx context.Context, state *domain.GameState, player domain.PlayerID, depth int) (MoveResult, error) {
	if depth < 1 || depth > MaxDepth {
		return MoveResult{}, fmt.Errorf("%w: %d not in [1, %d]", ErrDepthOutOfRange, depth, MaxDepth)
	}

	key := moveKey(state, player, depth)
	if cached, ok := s.lookup(ctx, key); ok && state.IsValidColumn(cached.Column) {
		cached.Cached = true
		return cached, nil
	}

	opts := make([]bot.Option, 0, len(s.botOpts)+2)
	opts = append(opts, bot.WithLogger(logger.Component("BOT")))
	opts = append(opts, s.botOpts...)
	opts = append(opts, bot.WithDepth(depth))
	engine, err := bot.NewEngine(player, opts...)
	if err != nil {
		return MoveResult{}, err
	}
	res, err := engine.ChooseMovePruned(state)
	if err != nil {
		return MoveResult{}, err
	}

	out := MoveResult{
		Column:   res.Column,
		Score:    res.Score,
		Nodes:    res.Nodes,
		Depth:    res.Depth,
		Duration: res.Duration,
	}
	s.store(ctx, key, out)
	return out, nil
}

func (s *Service) lookup(ctx context.Context, key string) (MoveResult, bool) {
	if s.cache == nil {
		return MoveResult{}, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !isMiss(err) {
			s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return MoveResult{}, false
	}

	var res MoveResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("dropping unreadable cache entry")
		_ = s.cache.Del(ctx, key)
		return MoveResult{}, false
	}
	return res, true
}

func (s *Service) store(ctx context.Context, key string, res MoveResult) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// missError lets cache implementations flag a miss without this package
// importing them.
type missError interface {
	CacheMiss() bool
}

func isMiss(err error) bool {
	var m missError
	return errors.As(err, &m) && m.CacheMiss()
}

// Evaluation is a static look at a position.
type Evaluation struct {
	Score      int             `json:"score"`
	Relative   int             `json:"relative"`
	Terminal   bool            `json:"terminal"`
	Winner     domain.PlayerID `json:"winner"`
	Status     string          `json:"status"`
	ValidMoves []int           `json:"validMoves"`
}

func (s *Service) Evaluate(state *domain.GameState, player domain.PlayerID) (Evaluation, error) {
	if !player.Valid() {
		return Evaluation{}, fmt.Errorf("%w: %d", domain.ErrInvalidPlayer, player)
	}
	return Evaluation{
		Score:      state.Evaluate(player),
		Relative:   state.RelativeScore(player),
		Terminal:   state.IsTerminal(),
		Winner:     state.Winner(),
		Status:     string(state.Status()),
		ValidMoves: state.ValidMoves(),
	}, nil
}
