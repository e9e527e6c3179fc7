package domain

import "testing"

func place(t *testing.T, moves ...[2]int) *GameState {
	t.Helper()
	s := NewGameState()
	for _, m := range moves {
		next, err := s.ApplyMove(PlayerID(m[0]), m[1])
		if err != nil {
			t.Fatalf("ApplyMove(%d, %d): %v", m[0], m[1], err)
		}
		s = next
	}
	return s
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		moves [][2]int // {player, column}
		p1    int
		p2    int
	}{
		{"empty board", nil, 0, 0},
		{"center piece", [][2]int{{1, 4}}, ScoreCenter, 0},
		{"near center piece", [][2]int{{1, 3}}, ScoreNearCenter, 0},
		{"edge piece", [][2]int{{1, 1}}, 0, 0},
		{"open two", [][2]int{{1, 1}, {1, 2}}, ScoreTwoOpen, 0},
		// windows cols 1-4 (three+empty) and 2-5 (two+two), plus column 3 bonus
		{"open three", [][2]int{{1, 1}, {1, 2}, {1, 3}}, ScoreThreeOpen + ScoreTwoOpen + ScoreNearCenter, 0},
		// mixed windows are worth nothing to either side
		{"blocked two", [][2]int{{1, 1}, {1, 2}, {2, 3}}, 0, ScoreNearCenter},
		{"four", [][2]int{{1, 1}, {1, 2}, {1, 3}, {1, 4}},
			ScoreFour + ScoreThreeOpen + ScoreTwoOpen + ScoreNearCenter + ScoreCenter, 0},
		{"stacked center", [][2]int{{1, 4}, {2, 4}}, ScoreCenter, ScoreCenter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := place(t, tt.moves...)
			if got := s.Evaluate(Player1); got != tt.p1 {
				t.Errorf("Evaluate(P1) = %d, want %d\n%s", got, tt.p1, s)
			}
			if got := s.Evaluate(Player2); got != tt.p2 {
				t.Errorf("Evaluate(P2) = %d, want %d\n%s", got, tt.p2, s)
			}
			if got := s.RelativeScore(Player1); got != tt.p1-tt.p2 {
				t.Errorf("RelativeScore(P1) = %d, want %d", got, tt.p1-tt.p2)
			}
			if got := s.RelativeScore(Player2); got != tt.p2-tt.p1 {
				t.Errorf("RelativeScore(P2) = %d, want %d", got, tt.p2-tt.p1)
			}
		})
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	s := place(t, [2]int{1, 4}, [2]int{2, 3}, [2]int{1, 5}, [2]int{2, 4}, [2]int{1, 3})

	first := s.Evaluate(Player1)
	for i := 0; i < 3; i++ {
		if got := s.Evaluate(Player1); got != first {
			t.Fatalf("Evaluate changed between calls: %d then %d", first, got)
		}
	}
	if s.RelativeScore(Player1) != -s.RelativeScore(Player2) {
		t.Fatal("relative score must be zero-sum")
	}
}
