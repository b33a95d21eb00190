package engine

// Game holds the grid and the positions of the three pieces
type Game struct {
	grid     *Grid
	theseus  Position
	minotaur Position
	goal     Position

	// starting positions, restored by Reset
	startTheseus  Position
	startMinotaur Position

	history    []TurnRecord
	totalTurns int
}

func newGame(grid *Grid, theseus, minotaur, goal Position) *Game {
	return &Game{
		grid:          grid,
		theseus:       theseus,
		minotaur:      minotaur,
		goal:          goal,
		startTheseus:  theseus,
		startMinotaur: minotaur,
		history:       []TurnRecord{},
	}
}

// Grid returns the immutable tile grid
func (g *Game) Grid() *Grid {
	return g.grid
}

// Theseus returns the player position
func (g *Game) Theseus() Position {
	return g.theseus
}

// Minotaur returns the pursuer position
func (g *Game) Minotaur() Position {
	return g.minotaur
}

// Goal returns the goal position
func (g *Game) Goal() Position {
	return g.goal
}

// Status reports Win when Theseus stands on the goal, Lose when he shares a
// tile with the Minotaur, Continue otherwise. Win takes precedence.
func (g *Game) Status() Status {
	if g.theseus == g.goal {
		return Win
	}
	if g.theseus == g.minotaur {
		return Lose
	}
	return Continue
}

// IsOver reports whether the game has reached a terminal status
func (g *Game) IsOver() bool {
	return g.Status() != Continue
}

// Turn plays one full turn: Theseus moves, then the Minotaur if the game is
// still going. A turn requested after the game ended is not applied.
func (g *Game) Turn(cmd Command) TurnRecord {
	record := TurnRecord{
		Command:      cmd,
		PlayerFrom:   g.theseus,
		MinotaurFrom: g.minotaur,
	}

	if g.IsOver() || !cmd.Valid() {
		record.PlayerTo = g.theseus
		record.MinotaurTo = g.minotaur
		record.Status = g.Status()
		return record
	}

	record.Applied = true
	record.PlayerMoved = g.MovePlayer(cmd)
	if g.Status() == Continue {
		record.MinotaurMoved = g.MovePursuer()
	}
	record.PlayerTo = g.theseus
	record.MinotaurTo = g.minotaur
	record.Status = g.Status()

	g.totalTurns++
	record.Number = g.totalTurns
	g.history = append(g.history, record)

	return record
}

// Reset puts Theseus and the Minotaur back on their starting tiles.
// The turn counter keeps counting; the history of the previous attempt is
// dropped.
func (g *Game) Reset() {
	g.theseus = g.startTheseus
	g.minotaur = g.startMinotaur
	g.history = []TurnRecord{}
}

// Clone returns a new game on the same grid with both pieces on their
// starting tiles, no history and a zero turn counter
func (g *Game) Clone() *Game {
	return newGame(g.grid, g.startTheseus, g.startMinotaur, g.goal)
}

// Turns returns the number of turns applied since the game was created
func (g *Game) Turns() int {
	return g.totalTurns
}

// History returns the turns played since the last reset
func (g *Game) History() []TurnRecord {
	out := make([]TurnRecord, len(g.history))
	copy(out, g.history)
	return out
}

// LastTurn returns the most recent turn, or nil if none
func (g *Game) LastTurn() *TurnRecord {
	if len(g.history) == 0 {
		return nil
	}
	last := g.history[len(g.history)-1]
	return &last
}

// PossibleMoves returns the directions Theseus can move in, followed by
// Skip. Empty once the game is over.
func (g *Game) PossibleMoves() []Command {
	if g.IsOver() {
		return nil
	}
	var moves []Command
	for _, dir := range Directions {
		if g.CanMove(dir) {
			moves = append(moves, dir)
		}
	}
	return append(moves, Skip)
}

// State returns a serialisable snapshot of the game
func (g *Game) State() *GameState {
	return &GameState{
		Layout:             g.Rows(),
		Height:             g.grid.Height(),
		Width:              g.grid.Width(),
		Theseus:            g.theseus,
		Minotaur:           g.minotaur,
		Goal:               g.goal,
		Status:             g.Status(),
		Turns:              g.totalTurns,
		DistanceToMinotaur: ManhattanDistance(g.theseus, g.minotaur),
		DistanceToGoal:     ManhattanDistance(g.theseus, g.goal),
		PossibleMoves:      g.PossibleMoves(),
		History:            g.History(),
	}
}

// IsTheseus reports whether Theseus stands on row,col
func (g *Game) IsTheseus(row, col int) bool {
	return g.theseus == Position{Row: row, Col: col}
}

// IsMinotaur reports whether the Minotaur stands on row,col
func (g *Game) IsMinotaur(row, col int) bool {
	return g.minotaur == Position{Row: row, Col: col}
}

// IsWall reports whether row,col is a wall tile
func (g *Game) IsWall(row, col int) bool {
	kind, ok := g.grid.TileAt(row, col)
	return ok && kind == Wall
}

// IsGoal reports whether row,col is the goal position
func (g *Game) IsGoal(row, col int) bool {
	return g.goal == Position{Row: row, Col: col}
}

// IsOpenAndUnoccupied reports whether row,col is an open tile with no piece on it
func (g *Game) IsOpenAndUnoccupied(row, col int) bool {
	kind, ok := g.grid.TileAt(row, col)
	return ok && kind == Open && !g.IsTheseus(row, col) && !g.IsMinotaur(row, col)
}
