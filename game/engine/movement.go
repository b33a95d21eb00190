package engine

// CanMove reports whether cmd would move Theseus onto an enterable tile.
// Skip never moves, so it reports false.
func (g *Game) CanMove(cmd Command) bool {
	dr, dc := cmd.delta()
	if dr == 0 && dc == 0 {
		return false
	}
	return g.grid.Passable(g.theseus.Row+dr, g.theseus.Col+dc)
}

// MovePlayer moves Theseus one tile in the given direction. Walls and the
// board edge block the move, leaving him in place. Stepping onto the
// Minotaur is allowed; the capture shows up in Status. Reports whether
// Theseus moved.
func (g *Game) MovePlayer(cmd Command) bool {
	if cmd == Skip || !g.CanMove(cmd) {
		return false
	}
	dr, dc := cmd.delta()
	g.theseus = Position{Row: g.theseus.Row + dr, Col: g.theseus.Col + dc}
	return true
}

// MovePursuer advances the Minotaur one tile toward Theseus. It does nothing
// once the game is over. Reports whether the Minotaur moved.
//
// A horizontal gap is always closed first. If that step is blocked the
// Minotaur loses the turn: he only moves vertically when already in
// Theseus' column.
func (g *Game) MovePursuer() bool {
	if g.Status() != Continue {
		return false
	}

	next, ok := g.chaseStep()
	if !ok || !g.grid.Passable(next.Row, next.Col) {
		return false
	}
	g.minotaur = next
	return true
}

// chaseStep returns the single tile the Minotaur tries to enter this turn
func (g *Game) chaseStep() (Position, bool) {
	colDiff := g.theseus.Col - g.minotaur.Col
	rowDiff := g.theseus.Row - g.minotaur.Row

	switch {
	case colDiff != 0:
		return Position{Row: g.minotaur.Row, Col: g.minotaur.Col + sign(colDiff)}, true
	case rowDiff != 0:
		return Position{Row: g.minotaur.Row + sign(rowDiff), Col: g.minotaur.Col}, true
	default:
		return g.minotaur, false
	}
}
