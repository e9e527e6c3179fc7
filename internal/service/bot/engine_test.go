package bot

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

// apply plays {player, column} pairs regardless of whose turn it is.
func apply(t *testing.T, moves ...[2]int) *domain.GameState {
	t.Helper()
	s := domain.NewGameState()
	for _, m := range moves {
		next, err := s.ApplyMove(domain.PlayerID(m[0]), m[1])
		if err != nil {
			t.Fatalf("ApplyMove(%d, %d): %v", m[0], m[1], err)
		}
		s = next
	}
	return s
}

func newEngine(t *testing.T, player domain.PlayerID, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(player, opts...)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestNewEngine(t *testing.T) {
	e := newEngine(t, domain.Player2)
	if e.Depth() != DefaultDepth || e.Player() != domain.Player2 || e.opponent != domain.Player1 {
		t.Fatalf("unexpected engine: depth=%d player=%v opponent=%v", e.Depth(), e.Player(), e.opponent)
	}

	if _, err := NewEngine(domain.Player1, WithDepth(0)); !errors.Is(err, ErrInvalidDepth) {
		t.Fatalf("expected ErrInvalidDepth, got %v", err)
	}
	if _, err := NewEngine(domain.Empty); !errors.Is(err, domain.ErrInvalidPlayer) {
		t.Fatalf("expected ErrInvalidPlayer, got %v", err)
	}
}

func TestChooseMoveEmptyBoardPrefersCenter(t *testing.T) {
	e := newEngine(t, domain.Player1, WithDepth(1))

	col, err := e.ChooseMove(domain.NewGameState())
	if err != nil {
		t.Fatalf("ChooseMove: %v", err)
	}
	if col != 4 {
		t.Fatalf("expected center column 4, got %d", col)
	}
}

func TestChooseMoveTakesImmediateWin(t *testing.T) {
	state := apply(t, [2]int{1, 1}, [2]int{1, 2}, [2]int{1, 3})

	for depth := 1; depth <= 4; depth++ {
		e := newEngine(t, domain.Player1, WithDepth(depth))
		res, err := e.ChooseMovePruned(state)
		if err != nil {
			t.Fatalf("depth %d: %v", depth, err)
		}
		if res.Column != 4 {
			t.Fatalf("depth %d: expected winning column 4, got %d", depth, res.Column)
		}
		if res.Score < domain.ScoreFour {
			t.Fatalf("depth %d: expected winning score, got %d", depth, res.Score)
		}
	}
}

func TestChooseMoveBlocksOpponent(t *testing.T) {
	// player 2 holds columns 1-3 of the bottom row, player 1 has two pieces in column 7
	state := apply(t,
		[2]int{2, 1}, [2]int{1, 7},
		[2]int{2, 2}, [2]int{1, 7},
		[2]int{2, 3},
	)

	for depth := 2; depth <= 5; depth++ {
		e := newEngine(t, domain.Player1, WithDepth(depth))
		col, err := e.ChooseMove(state)
		if err != nil {
			t.Fatalf("depth %d: %v", depth, err)
		}
		if col != 4 {
			t.Fatalf("depth %d: expected block in column 4, got %d\n%s", depth, col, state)
		}
	}
}

func TestChooseMoveOnTerminalState(t *testing.T) {
	won := apply(t, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3}, [2]int{2, 4})
	if !won.IsTerminal() {
		t.Fatal("setup: expected a finished game")
	}

	e := newEngine(t, domain.Player1)
	col, err := e.ChooseMove(won)
	if !errors.Is(err, ErrTerminalState) {
		t.Fatalf("expected ErrTerminalState, got %v", err)
	}
	if col != domain.NoMove {
		t.Fatalf("expected NoMove, got %d", col)
	}

	if _, err := e.ChooseMoveUnpruned(nil); !errors.Is(err, ErrTerminalState) {
		t.Fatalf("expected ErrTerminalState for nil state, got %v", err)
	}
}

func TestChooseMoveDoesNotTouchInput(t *testing.T) {
	state := apply(t, [2]int{1, 4}, [2]int{2, 3}, [2]int{1, 5})
	before := state.Grid()

	e := newEngine(t, domain.Player2, WithDepth(4))
	if _, err := e.ChooseMove(state); err != nil {
		t.Fatalf("ChooseMove: %v", err)
	}
	if _, err := e.ChooseMoveUnpruned(state); err != nil {
		t.Fatalf("ChooseMoveUnpruned: %v", err)
	}

	if state.Grid() != before || state.MoveCount() != 3 {
		t.Fatalf("search modified its input:\n%s", state)
	}
}

func TestRandomTieBreak(t *testing.T) {
	// symmetric position: columns 3 and 5 score the same
	state := apply(t, [2]int{1, 4}, [2]int{2, 4})

	det := newEngine(t, domain.Player1, WithDepth(1))
	want, err := det.ChooseMovePruned(state)
	if err != nil {
		t.Fatalf("ChooseMovePruned: %v", err)
	}
	if want.Column != 3 {
		t.Fatalf("deterministic tie-break should keep the lowest column, got %d", want.Column)
	}

	seen := map[int]bool{}
	for seed := int64(1); seed <= 64; seed++ {
		e := newEngine(t, domain.Player1, WithDepth(1), WithRandomTieBreak(rand.New(rand.NewSource(seed))))
		res, err := e.ChooseMovePruned(state)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if res.Score != want.Score {
			t.Fatalf("seed %d: score %d, want %d", seed, res.Score, want.Score)
		}
		if res.Column != 3 && res.Column != 5 {
			t.Fatalf("seed %d: column %d is not one of the tied moves", seed, res.Column)
		}
		seen[res.Column] = true
	}
	if !seen[3] || !seen[5] {
		t.Fatalf("expected both tied columns over 64 seeds, saw %v", seen)
	}
}

func TestRandomTieBreakKeepsValueAtDepth(t *testing.T) {
	state := apply(t, [2]int{1, 4}, [2]int{2, 4}, [2]int{1, 3})

	det := newEngine(t, domain.Player2, WithDepth(4))
	want, err := det.ChooseMoveUnpruned(state)
	if err != nil {
		t.Fatalf("ChooseMoveUnpruned: %v", err)
	}

	for seed := int64(1); seed <= 8; seed++ {
		e := newEngine(t, domain.Player2, WithDepth(4), WithRandomTieBreak(rand.New(rand.NewSource(seed))))
		res, err := e.ChooseMovePruned(state)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if res.Score != want.Score {
			t.Fatalf("seed %d: score %d, want %d", seed, res.Score, want.Score)
		}

		// the chosen column must really be worth the reported score
		child, err := state.ApplyMove(domain.Player2, res.Column)
		if err != nil {
			t.Fatalf("seed %d: engine picked unplayable column %d: %v", seed, res.Column, err)
		}
		if child.IsTerminal() {
			continue
		}
		reply := &searcher{root: domain.Player2, opponent: domain.Player1, rootDepth: 3}
		if _, v := reply.minimax(child, 3, minInf, maxInf, false); v != want.Score {
			t.Fatalf("seed %d: column %d is worth %d, not %d", seed, res.Column, v, want.Score)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in    string
		want  Difficulty
		depth int
		name  string
	}{
		{"easy", DifficultyEasy, 1, "Alice"},
		{"medium", DifficultyMedium, 3, "Bob"},
		{"hard", DifficultyHard, DefaultDepth, "Charles"},
		{"", DifficultyMedium, 3, "Bob"},
		{"impossible", DifficultyMedium, 3, "Bob"},
		{" Hard ", DifficultyHard, DefaultDepth, "Charles"},
		{"EASY", DifficultyEasy, 1, "Alice"},
	}
	for _, tt := range tests {
		d := ParseDifficulty(tt.in)
		if d != tt.want || d.Depth() != tt.depth || d.BotName() != tt.name {
			t.Errorf("ParseDifficulty(%q) = %q depth %d name %q", tt.in, d, d.Depth(), d.BotName())
		}
	}
}

func TestRandomTiesFromGlobalSource(t *testing.T) {
	state := apply(t, [2]int{1, 4}, [2]int{2, 4})
	e := newEngine(t, domain.Player1, WithDepth(1), WithRandomTies())

	for i := 0; i < 16; i++ {
		res, err := e.ChooseMovePruned(state)
		if err != nil {
			t.Fatal(err)
		}
		if res.Column != 3 && res.Column != 5 {
			t.Fatalf("column %d is not one of the tied moves", res.Column)
		}
	}
}
