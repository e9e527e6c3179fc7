package domain

import (
	"fmt"
	"strings"
)

// Grid is the playing field. Row 0 is the top row and Rows-1 the bottom row.
// It is an array so assignment copies every cell.
type Grid [Rows][Columns]PlayerID

// IsPlayable reports whether a 0-based column still has room.
func (g *Grid) IsPlayable(col int) bool {
	if col < 0 || col >= Columns {
		return false
	}

	// here row 0 represents the top row (0 -> top and 5 -> bottom)
	return g[0][col] == Empty
}

// DropRow returns the row a piece dropped in col would settle on, or -1 if
// the column is full.
func (g *Grid) DropRow(col int) int {
	for row := Rows - 1; row >= 0; row-- {
		if g[row][col] == Empty {
			return row
		}
	}
	return -1
}

// dropDisk places a piece in col and returns the row it landed on.
func (g *Grid) dropDisk(col int, player PlayerID) (int, error) {
	row := g.DropRow(col)
	if row < 0 {
		return -1, ErrColumnFull
	}
	g[row][col] = player
	return row, nil
}

func (g *Grid) IsFull() bool {
	for c := 0; c < Columns; c++ {
		if g[0][c] == Empty {
			return false
		}
	}
	return true
}

// Count returns how many cells hold the given value.
func (g *Grid) Count(p PlayerID) int {
	n := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if g[r][c] == p {
				n++
			}
		}
	}
	return n
}

// Key is a compact encoding of the grid, one digit per cell, top row first.
func (g Grid) Key() string {
	var sb strings.Builder
	sb.Grow(Rows * Columns)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			sb.WriteByte(byte('0' + g[r][c]))
		}
	}
	return sb.String()
}

// ParseGrid builds a grid from rows of cell values. Gravity is not checked.
func ParseGrid(cells [][]int) (Grid, error) {
	var g Grid
	if len(cells) != Rows {
		return g, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidGrid, Rows, len(cells))
	}
	for r, row := range cells {
		if len(row) != Columns {
			return g, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidGrid, r, len(row), Columns)
		}
		for c, v := range row {
			p := PlayerID(v)
			if p != Empty && !p.Valid() {
				return g, fmt.Errorf("%w: cell (%d,%d) has value %d", ErrInvalidGrid, r, c, v)
			}
			g[r][c] = p
		}
	}
	return g, nil
}

// Ints converts the grid to nested slices, e.g. for JSON responses.
func (g *Grid) Ints() [][]int {
	out := make([][]int, Rows)
	for r := range out {
		out[r] = make([]int, Columns)
		for c := range out[r] {
			out[r][c] = int(g[r][c])
		}
	}
	return out
}

func (g Grid) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(byte('0' + g[r][c]))
		}
		if r < Rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
