package domain

import "fmt"

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Other returns the opposing identity. Empty has no opponent and maps to itself.
func (p PlayerID) Other() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return Empty
	}
}

func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	default:
		return "Empty"
	}
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// NoMove is returned where a column is expected but none exists.
const NoMove = -1

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove      Error = "invalid move"
	ErrColumnOutOfRange Error = "column out of range"
	ErrColumnFull       Error = "column is full"
	ErrGameOver         Error = "game is already over"
	ErrInvalidPlayer    Error = "invalid player"
	ErrInvalidGrid      Error = "invalid grid"
)

// InvalidMoveError is returned by ApplyMove. It matches ErrInvalidMove and
// its Reason with errors.Is.
type InvalidMoveError struct {
	Column int
	Reason Error
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("%s: column %d: %s", ErrInvalidMove, e.Column, e.Reason)
}

func (e *InvalidMoveError) Unwrap() []error {
	return []error{ErrInvalidMove, e.Reason}
}
