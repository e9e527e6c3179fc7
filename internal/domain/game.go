package domain

import "fmt"

// GameState is one position of a game. States are never modified after they
// are returned: ApplyMove produces a fresh state and leaves the receiver alone.
type GameState struct {
	grid          Grid
	currentPlayer PlayerID
	terminal      bool
	winner        PlayerID
	moveCount     int
}

// NewGameState returns an empty board with Player1 to move.
func NewGameState() *GameState {
	return &GameState{
		currentPlayer: Player1,
		winner:        Empty,
	}
}

// NewGameStateFromGrid rebuilds a state from a grid, e.g. one sent by a client.
// The grid must respect gravity and the piece counts must be reachable by
// alternating play.
func NewGameStateFromGrid(grid Grid, toMove PlayerID) (*GameState, error) {
	if !toMove.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPlayer, toMove)
	}

	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows-1; row++ {
			if grid[row][col] != Empty && grid[row+1][col] == Empty {
				return nil, fmt.Errorf("%w: floating piece at row %d column %d", ErrInvalidGrid, row, col+1)
			}
		}
	}

	p1, p2 := grid.Count(Player1), grid.Count(Player2)
	if diff := p1 - p2; diff < -1 || diff > 1 {
		return nil, fmt.Errorf("%w: %d pieces for player 1 and %d for player 2", ErrInvalidGrid, p1, p2)
	}

	s := &GameState{
		grid:          grid,
		currentPlayer: toMove,
		moveCount:     p1 + p2,
	}

	won1, won2 := CheckWin(&grid, Player1), CheckWin(&grid, Player2)
	switch {
	case won1 && won2:
		return nil, fmt.Errorf("%w: both players have four in a row", ErrInvalidGrid)
	case won1:
		s.terminal, s.winner = true, Player1
	case won2:
		s.terminal, s.winner = true, Player2
	case grid.IsFull():
		s.terminal = true
	}
	return s, nil
}

func (s *GameState) Grid() Grid {
	return s.grid
}

// Cell returns the value at a 0-based row and column.
func (s *GameState) Cell(row, col int) PlayerID {
	return s.grid[row][col]
}

func (s *GameState) CurrentPlayer() PlayerID {
	return s.currentPlayer
}

func (s *GameState) IsTerminal() bool {
	return s.terminal
}

// Winner is Empty while the game runs and after a draw.
func (s *GameState) Winner() PlayerID {
	return s.winner
}

func (s *GameState) MoveCount() int {
	return s.moveCount
}

func (s *GameState) Status() GameStatus {
	switch {
	case !s.terminal:
		return StatusActive
	case s.winner != Empty:
		return StatusWon
	default:
		return StatusDraw
	}
}

// IsValidColumn reports whether a 1-based column can take another piece.
func (s *GameState) IsValidColumn(column int) bool {
	return column >= 1 && column <= Columns && s.grid.IsPlayable(column-1)
}

// ValidMoves lists the playable 1-based columns in ascending order.
func (s *GameState) ValidMoves() []int {
	moves := make([]int, 0, Columns)
	for col := 1; col <= Columns; col++ {
		if s.IsValidColumn(col) {
			moves = append(moves, col)
		}
	}
	return moves
}

// ApplyMove drops a piece for player into a 1-based column and returns the
// resulting state.
func (s *GameState) ApplyMove(player PlayerID, column int) (*GameState, error) {
	if !player.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPlayer, player)
	}
	if s.terminal {
		return nil, &InvalidMoveError{Column: column, Reason: ErrGameOver}
	}
	if column < 1 || column > Columns {
		return nil, &InvalidMoveError{Column: column, Reason: ErrColumnOutOfRange}
	}

	next := *s
	if _, err := next.grid.dropDisk(column-1, player); err != nil {
		return nil, &InvalidMoveError{Column: column, Reason: ErrColumnFull}
	}
	next.moveCount++

	switch {
	case CheckWin(&next.grid, player):
		next.terminal = true
		next.winner = player
	case next.grid.IsFull():
		next.terminal = true
		next.winner = Empty
	default:
		next.currentPlayer = player.Other()
	}
	return &next, nil
}

// Play applies a move for the player whose turn it is.
func (s *GameState) Play(column int) (*GameState, error) {
	return s.ApplyMove(s.currentPlayer, column)
}

// DetectWin reports whether player has four in a row anywhere on the board.
func (s *GameState) DetectWin(player PlayerID) bool {
	return CheckWin(&s.grid, player)
}

// quick text view for debugging
func (s *GameState) String() string {
	return s.grid.String()
}
