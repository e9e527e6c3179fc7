package bot

import (
	"math"
	"math/rand"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

const (
	minInf = math.MinInt
	maxInf = math.MaxInt
)

// searcher carries the bookkeeping of a single root search.
type searcher struct {
	root      domain.PlayerID
	opponent  domain.PlayerID
	rootDepth int
	prune     bool
	rng       *rand.Rand
	nodes     int
}

// minimax implements the minimax algorithm with alpha-beta pruning.
// Every leaf is scored from the root player's point of view; the layers only
// differ in whether they keep the largest or the smallest child score.
func (s *searcher) minimax(state *domain.GameState, depth, alpha, beta int, maximizing bool) (int, int) {
	s.nodes++

	// Terminal conditions
	if depth == 0 || state.IsTerminal() {
		return domain.NoMove, state.RelativeScore(s.root)
	}
	validColumns := state.ValidMoves()
	if len(validColumns) == 0 {
		return domain.NoMove, state.RelativeScore(s.root)
	}

	bestCol := domain.NoMove

	if maximizing {
		// With a random tie-break the root narrows its children's window by
		// one so a child equal to the best score is exact, not a bound.
		exactTies := s.rng != nil && depth == s.rootDepth
		ties := 0

		maxEval := minInf
		for _, col := range validColumns {
			child, err := state.ApplyMove(s.root, col)
			if err != nil {
				continue // columns come from ValidMoves
			}

			childAlpha := alpha
			if exactTies && childAlpha > minInf {
				childAlpha--
			}

			_, eval := s.minimax(child, depth-1, childAlpha, beta, false)
			switch {
			case eval > maxEval:
				maxEval, bestCol, ties = eval, col, 1
			case eval == maxEval && exactTies:
				ties++
				if s.rng.Intn(ties) == 0 {
					bestCol = col
				}
			}

			alpha = max(alpha, maxEval)
			if s.prune && beta <= alpha {
				break // Beta cutoff
			}
		}
		return bestCol, maxEval
	}

	minEval := maxInf
	for _, col := range validColumns {
		child, err := state.ApplyMove(s.opponent, col)
		if err != nil {
			continue
		}

		_, eval := s.minimax(child, depth-1, alpha, beta, true)
		if eval < minEval {
			minEval, bestCol = eval, col
		}

		beta = min(beta, minEval)
		if s.prune && beta <= alpha {
			break // Alpha cutoff
		}
	}
	return bestCol, minEval
}
