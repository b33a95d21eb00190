// Package validate checks board files and prints quick statistics about them.
//
// A board is valid when it parses and the goal can be reached from
// Theseus' starting tile, ignoring the Minotaur. Validation collects
// human-readable messages: errors when the board is invalid, a short summary
// when it is valid.
package validate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nilla-moige/Theseus-and-minotaur/game/engine"
)

// Result captures the outcome of validating a single board.
// If Valid is true, Messages holds the summary; otherwise it holds the
// problems that were found.
type Result struct {
	File     string
	Valid    bool
	Messages []string
	// Err is the underlying parse error, if any
	Err error
}

// File reads and validates a board file
func File(path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{
			File:     filepath.Base(path),
			Messages: []string{fmt.Sprintf("Failed to read file: %v", err)},
			Err:      err,
		}
	}
	return Board(filepath.Base(path), string(data))
}

// Board validates board text. name only labels the result.
func Board(name, text string) Result {
	result := Result{
		File:     name,
		Valid:    true,
		Messages: []string{},
	}

	game, err := engine.Parse(text)
	if err != nil {
		result.Valid = false
		result.Err = err
		result.Messages = append(result.Messages, err.Error())
		return result
	}

	steps := ShortestPath(game.Grid(), game.Theseus(), game.Goal())
	if steps < 0 {
		result.Valid = false
		result.Messages = append(result.Messages,
			fmt.Sprintf("Goal %s is not reachable from Theseus at %s", game.Goal(), game.Theseus()))
		return result
	}

	grid := game.Grid()
	result.Messages = append(result.Messages,
		fmt.Sprintf("✓ Grid: %dx%d", grid.Height(), grid.Width()),
		fmt.Sprintf("✓ Theseus: %s", game.Theseus()),
		fmt.Sprintf("✓ Minotaur: %s", game.Minotaur()),
		fmt.Sprintf("✓ Goal: %s", game.Goal()),
		fmt.Sprintf("✓ Shortest path to goal: %d moves", steps),
	)
	return result
}

// ShortestPath returns the number of moves on the shortest path between two
// tiles over passable tiles, or -1 when there is none
func ShortestPath(grid *engine.Grid, from, to engine.Position) int {
	if !grid.Passable(from.Row, from.Col) || !grid.Passable(to.Row, to.Col) {
		return -1
	}

	dist := map[engine.Position]int{from: 0}
	queue := []engine.Position{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == to {
			return dist[current]
		}

		for _, dir := range engine.Directions {
			next := step(current, dir)
			if _, seen := dist[next]; seen || !grid.Passable(next.Row, next.Col) {
				continue
			}
			dist[next] = dist[current] + 1
			queue = append(queue, next)
		}
	}
	return -1
}

func step(p engine.Position, cmd engine.Command) engine.Position {
	switch cmd {
	case engine.Up:
		p.Row--
	case engine.Down:
		p.Row++
	case engine.Left:
		p.Col--
	case engine.Right:
		p.Col++
	}
	return p
}
