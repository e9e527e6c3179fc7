package domain

const (
	ScoreFour        = 100000 // four in a window, i.e. a won position
	ScoreThreeOpen   = 100    // three plus one empty cell
	ScoreTwoOpen     = 10     // two plus two empty cells
	ScoreCenter      = 3      // piece in the center column
	ScoreNearCenter  = 2      // piece in a column next to the center
	centerCol        = Columns / 2
	centerBandRadius = 1
)

// Evaluate is the static positional score of the board for player. It does
// not look at whose turn it is and has no blocking term of its own.
func (s *GameState) Evaluate(player PlayerID) int {
	return evaluateGrid(&s.grid, player)
}

// RelativeScore is Evaluate(player) minus Evaluate of the opponent.
func (s *GameState) RelativeScore(player PlayerID) int {
	return evaluateGrid(&s.grid, player) - evaluateGrid(&s.grid, player.Other())
}

func evaluateGrid(g *Grid, player PlayerID) int {
	score := 0

	// Center column preference
	for col := centerCol - centerBandRadius; col <= centerCol+centerBandRadius; col++ {
		weight := ScoreNearCenter
		if col == centerCol {
			weight = ScoreCenter
		}
		for row := 0; row < Rows; row++ {
			if g[row][col] == player {
				score += weight
			}
		}
	}

	for _, w := range windows {
		score += scoreWindow(g.counts(w, player))
	}

	return score
}

// scoreWindow rewards windows that can still become four for the player.
// Any window with an opponent piece next to ours falls through to zero.
func scoreWindow(own, empty, _ int) int {
	switch {
	case own == ToWin:
		return ScoreFour
	case own == 3 && empty == 1:
		return ScoreThreeOpen
	case own == 2 && empty == 2:
		return ScoreTwoOpen
	default:
		return 0
	}
}
