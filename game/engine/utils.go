package engine

import "strings"

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	return abs(from.Row-to.Row) + abs(from.Col-to.Col)
}

// Rows renders the board one string per row using the board alphabet.
// Theseus is drawn over the Minotaur, and both over tiles.
func (g *Game) Rows() []string {
	rows := make([]string, g.grid.Height())
	var sb strings.Builder
	for r := 0; r < g.grid.Height(); r++ {
		sb.Reset()
		for c := 0; c < g.grid.Width(); c++ {
			sb.WriteRune(g.MarkerAt(r, c))
		}
		rows[r] = sb.String()
	}
	return rows
}

// Render returns the board as newline-terminated text. The output of a
// freshly parsed game parses back to the same game.
func (g *Game) Render() string {
	return strings.Join(g.Rows(), "\n") + "\n"
}

// MarkerAt returns the board character shown at row,col, or 0 when out of bounds
func (g *Game) MarkerAt(row, col int) rune {
	kind, ok := g.grid.TileAt(row, col)
	switch {
	case !ok:
		return 0
	case g.IsTheseus(row, col):
		return TheseusMarker
	case g.IsMinotaur(row, col):
		return MinotaurMarker
	default:
		return kind.Marker()
	}
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
