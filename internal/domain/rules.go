package domain

// cell is a (row, column) pair on the grid.
type cell struct {
	row, col int
}

// window is a run of exactly ToWin cells along one direction.
type window [ToWin]cell

var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal \
	{-1, 1}, // diagonal /
}

// windows holds every in-bounds window. Windows that would run off the grid
// are never generated, so there is no wraparound.
var windows = buildWindows()

func buildWindows() []window {
	var out []window
	for _, dir := range directions {
		dRow, dCol := dir[0], dir[1]
		for row := 0; row < Rows; row++ {
			for col := 0; col < Columns; col++ {
				endRow := row + dRow*(ToWin-1)
				endCol := col + dCol*(ToWin-1)
				if !isInBounds(endRow, endCol) {
					continue
				}
				var w window
				for k := 0; k < ToWin; k++ {
					w[k] = cell{row + dRow*k, col + dCol*k}
				}
				out = append(out, w)
			}
		}
	}
	return out
}

func isInBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Columns
}

// counts tallies the player, empty and opponent cells in a window.
func (g *Grid) counts(w window, player PlayerID) (own, empty, opp int) {
	for _, c := range w {
		switch g[c.row][c.col] {
		case player:
			own++
		case Empty:
			empty++
		default:
			opp++
		}
	}
	return own, empty, opp
}

// CheckWin scans every window on the grid for four pieces of player.
func CheckWin(g *Grid, player PlayerID) bool {
	if !player.Valid() {
		return false
	}
	for _, w := range windows {
		if own, _, _ := g.counts(w, player); own == ToWin {
			return true
		}
	}
	return false
}
