package engine

// Grid is an immutable rectangular tile map
type Grid struct {
	tiles  [][]TileKind
	height int
	width  int
}

// newGrid takes ownership of rows, which must be non-empty and rectangular
func newGrid(rows [][]TileKind) *Grid {
	return &Grid{
		tiles:  rows,
		height: len(rows),
		width:  len(rows[0]),
	}
}

// Height returns the number of rows
func (g *Grid) Height() int {
	return g.height
}

// Width returns the number of columns
func (g *Grid) Width() int {
	return g.width
}

// InBounds reports whether row,col lies on the grid
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// TileAt returns the tile kind at row,col. ok is false when the cell is out
// of bounds; callers must treat that as impassable.
func (g *Grid) TileAt(row, col int) (kind TileKind, ok bool) {
	if !g.InBounds(row, col) {
		return "", false
	}
	return g.tiles[row][col], true
}

// Passable reports whether a piece may stand on row,col
func (g *Grid) Passable(row, col int) bool {
	kind, ok := g.TileAt(row, col)
	return ok && kind != Wall
}

// Count returns the number of tiles of the given kind
func (g *Grid) Count(kind TileKind) int {
	count := 0
	for _, row := range g.tiles {
		for _, tile := range row {
			if tile == kind {
				count++
			}
		}
	}
	return count
}
