package validate

import (
	"fmt"
	"io"
	"strings"

	"github.com/nilla-moige/Theseus-and-minotaur/game/engine"
)

// Analysis summarises a board and how the Minotaur behaves on it when
// Theseus never moves
type Analysis struct {
	Height             int
	Width              int
	Walls              int
	Open               int
	Theseus            engine.Position
	Minotaur           engine.Position
	Goal               engine.Position
	DistanceToGoal     int
	DistanceToMinotaur int
	// ShortestPath is -1 when the goal cannot be reached
	ShortestPath int
	// SkipStatus is the status reached by skipping every turn: Lose if the
	// Minotaur gets to Theseus, Continue if he gets stuck first
	SkipStatus  engine.Status
	SkipTurns   int
	MinotaurEnd engine.Position
	// Solution is the shortest winning command sequence, nil when the board
	// cannot be won
	Solution []engine.Command
	Solvable bool
}

// Analyze parses board text and gathers its statistics
func Analyze(board string) (*Analysis, error) {
	game, err := engine.Parse(board)
	if err != nil {
		return nil, err
	}

	grid := game.Grid()
	a := &Analysis{
		Height:             grid.Height(),
		Width:              grid.Width(),
		Walls:              grid.Count(engine.Wall),
		Open:               grid.Count(engine.Open),
		Theseus:            game.Theseus(),
		Minotaur:           game.Minotaur(),
		Goal:               game.Goal(),
		DistanceToGoal:     engine.ManhattanDistance(game.Theseus(), game.Goal()),
		DistanceToMinotaur: engine.ManhattanDistance(game.Theseus(), game.Minotaur()),
		ShortestPath:       ShortestPath(grid, game.Theseus(), game.Goal()),
	}

	a.Solution, a.Solvable = Solve(game)

	// With Theseus standing still the Minotaur's moves are deterministic, so
	// once he fails to move he never will
	for !game.IsOver() {
		record := game.Turn(engine.Skip)
		if !record.MinotaurMoved {
			break
		}
	}
	a.SkipStatus = game.Status()
	a.SkipTurns = len(game.History())
	a.MinotaurEnd = game.Minotaur()

	return a, nil
}

// Write prints the analysis in a human-readable form
func (a *Analysis) Write(w io.Writer) {
	fmt.Fprintf(w, "Grid Size: %d x %d\n", a.Height, a.Width)
	fmt.Fprintf(w, "Walls: %d, Open tiles: %d\n", a.Walls, a.Open)
	fmt.Fprintf(w, "Theseus: %s, Minotaur: %s, Goal: %s\n", a.Theseus, a.Minotaur, a.Goal)
	fmt.Fprintf(w, "Manhattan distance to goal: %d, to Minotaur: %d\n", a.DistanceToGoal, a.DistanceToMinotaur)

	if a.ShortestPath < 0 {
		fmt.Fprintf(w, "⚠️  CRITICAL: the goal cannot be reached\n")
	} else {
		fmt.Fprintf(w, "Shortest path to goal: %d moves\n", a.ShortestPath)
	}

	if a.Solvable {
		moves := make([]string, len(a.Solution))
		for i, cmd := range a.Solution {
			moves[i] = cmd.String()
		}
		fmt.Fprintf(w, "✅ Solvable in %d turns: %s\n", len(a.Solution), strings.Join(moves, ", "))
	} else {
		fmt.Fprintf(w, "⚠️  CRITICAL: no sequence of moves wins this board\n")
	}

	switch a.SkipStatus {
	case engine.Lose:
		fmt.Fprintf(w, "⚠️  Standing still loses after %d turns\n", a.SkipTurns)
	default:
		fmt.Fprintf(w, "✅ Standing still is safe: the Minotaur gets stuck at %s after %d turns\n",
			a.MinotaurEnd, a.SkipTurns)
	}
}
