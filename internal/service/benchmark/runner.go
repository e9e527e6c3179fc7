package benchmark

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/engine/pkg/logger"
	"github.com/iamasit07/4-in-a-row/engine/pkg/uid"
)

type Algorithm string

const (
	AlgorithmMinimax   Algorithm = "minimax"
	AlgorithmAlphaBeta Algorithm = "alphabeta"
)

// DefaultDepths are the horizons measured when none are configured.
var DefaultDepths = []int{1, 2, 3, 4, 5}

// Measurement is one search at one depth. A timed out measurement was
// skipped and carries no figures.
type Measurement struct {
	Nodes    int
	Duration time.Duration
	Column   int
	Score    int
	TimedOut bool
}

type DepthResult struct {
	Depth     int
	Minimax   Measurement
	AlphaBeta Measurement
}

// Efficiency is how many times fewer nodes alpha-beta visited. ok is false
// when either side has no figures.
func (d DepthResult) Efficiency() (ratio float64, ok bool) {
	if d.Minimax.TimedOut || d.AlphaBeta.TimedOut || d.AlphaBeta.Nodes == 0 {
		return 0, false
	}
	return float64(d.Minimax.Nodes) / float64(d.AlphaBeta.Nodes), true
}

// Improvement is the share of minimax nodes alpha-beta did not visit, in
// percent.
func (d DepthResult) Improvement() (pct float64, ok bool) {
	if d.Minimax.TimedOut || d.AlphaBeta.TimedOut || d.Minimax.Nodes == 0 {
		return 0, false
	}
	return 100 * (1 - float64(d.AlphaBeta.Nodes)/float64(d.Minimax.Nodes)), true
}

// Speedup is minimax wall time over alpha-beta wall time.
func (d DepthResult) Speedup() (ratio float64, ok bool) {
	if d.Minimax.TimedOut || d.AlphaBeta.TimedOut || d.AlphaBeta.Duration <= 0 {
		return 0, false
	}
	return float64(d.Minimax.Duration) / float64(d.AlphaBeta.Duration), true
}

type Report struct {
	RunID     string
	StartedAt time.Time
	MaxTime   time.Duration
	Results   []DepthResult
}

// Runner compares the unpruned and pruned searches from the empty board.
type Runner struct {
	Depths  []int
	MaxTime time.Duration

	logger zerolog.Logger
}

func NewRunner(depths []int, maxTime time.Duration) *Runner {
	if len(depths) == 0 {
		depths = DefaultDepths
	}
	return &Runner{
		Depths:  depths,
		MaxTime: maxTime,
		logger:  logger.Component("BENCH"),
	}
}

// Run measures every depth in order. Once an algorithm needs longer than
// MaxTime at some depth, it is not run at the deeper ones. A zero MaxTime
// disables the budget.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	started := time.Now()
	rep := &Report{
		RunID:     uid.GenerateRunID(started),
		StartedAt: started,
		MaxTime:   r.MaxTime,
	}

	var minimaxOver, alphaBetaOver bool
	for _, depth := range r.Depths {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		engine, err := bot.NewEngine(domain.Player1, bot.WithDepth(depth), bot.WithLogger(r.logger))
		if err != nil {
			return rep, err
		}

		r.logger.Info().Int("depth", depth).Msg("testing depth")
		res := DepthResult{Depth: depth}

		res.Minimax, err = r.measure(engine, AlgorithmMinimax, minimaxOver)
		if err != nil {
			return rep, err
		}
		minimaxOver = minimaxOver || r.over(res.Minimax)

		if err := ctx.Err(); err != nil {
			return rep, err
		}

		res.AlphaBeta, err = r.measure(engine, AlgorithmAlphaBeta, alphaBetaOver)
		if err != nil {
			return rep, err
		}
		alphaBetaOver = alphaBetaOver || r.over(res.AlphaBeta)

		rep.Results = append(rep.Results, res)
	}
	return rep, nil
}

func (r *Runner) over(m Measurement) bool {
	return r.MaxTime > 0 && !m.TimedOut && m.Duration > r.MaxTime
}

func (r *Runner) measure(engine *bot.Engine, algo Algorithm, skip bool) (Measurement, error) {
	if skip {
		r.logger.Warn().Str("algorithm", string(algo)).Int("depth", engine.Depth()).
			Msg("previous depth exceeded the time budget, skipping")
		return Measurement{TimedOut: true}, nil
	}

	state := domain.NewGameState()
	var (
		res bot.SearchResult
		err error
	)
	if algo == AlgorithmMinimax {
		res, err = engine.ChooseMoveUnpruned(state)
	} else {
		res, err = engine.ChooseMovePruned(state)
	}
	if err != nil {
		return Measurement{}, err
	}

	r.logger.Info().Str("algorithm", string(algo)).Int("depth", res.Depth).
		Int("nodes", res.Nodes).Dur("elapsed", res.Duration).Msg("search finished")
	return Measurement{
		Nodes:    res.Nodes,
		Duration: res.Duration,
		Column:   res.Column,
		Score:    res.Score,
	}, nil
}
