// Package engine provides the core game logic for Theseus and the Minotaur.
//
// The engine package implements the game mechanics including:
//   - Board parsing and validation
//   - An immutable tile grid with bounds-safe queries
//   - Player movement with wall and boundary collision
//   - The Minotaur's greedy chase heuristic
//   - Win/lose evaluation and turn history
//
// Core Types:
//
// Game owns a Grid plus the positions of Theseus, the Minotaur and the goal.
// Grid is built once by Parse and never changes afterwards. Command is the
// closed set of player actions and Status classifies the current state.
//
// Usage:
//
//	game, err := engine.Parse(board)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Play one turn: Theseus moves, then the Minotaur chases
//	record := game.Turn(engine.Right)
//	if record.Status != engine.Continue {
//		fmt.Println(record.Status)
//	}
//
// Game Rules:
//
// Theseus moves one tile per turn (or skips). Walls and the board edge block
// movement silently. After Theseus moves, the Minotaur steps one tile toward
// him, preferring to close the horizontal gap first. Reaching the goal wins,
// sharing a tile with the Minotaur loses, and the goal takes precedence when
// both happen at once.
//
// A Game has a single owner and performs no locking; callers that share a
// Game between goroutines must serialise access themselves.
package engine
