package validate

import "github.com/nilla-moige/Theseus-and-minotaur/game/engine"

// solveCommands is the order moves are tried in
var solveCommands = []engine.Command{engine.Up, engine.Down, engine.Left, engine.Right, engine.Skip}

type solveState struct {
	theseus  engine.Position
	minotaur engine.Position
}

type solveNode struct {
	state solveState
	path  []engine.Command
}

// Solve searches for the shortest sequence of commands that wins the game
// from its starting positions. It returns false when no sequence wins.
//
// The search is breadth-first over (Theseus, Minotaur) positions. Each node
// is expanded by replaying its path on a clone of game, so game itself is
// not touched.
func Solve(game *engine.Game) ([]engine.Command, bool) {
	game = game.Clone()

	start := solveState{game.Theseus(), game.Minotaur()}
	seen := map[solveState]bool{start: true}
	queue := []solveNode{{state: start}}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		for _, cmd := range solveCommands {
			replay(game, node.path)
			record := game.Turn(cmd)

			switch record.Status {
			case engine.Win:
				return appendPath(node.path, cmd), true
			case engine.Lose:
				continue
			}

			next := solveState{record.PlayerTo, record.MinotaurTo}
			if seen[next] {
				continue
			}
			seen[next] = true
			queue = append(queue, solveNode{state: next, path: appendPath(node.path, cmd)})
		}
	}
	return nil, false
}

func replay(game *engine.Game, path []engine.Command) {
	game.Reset()
	for _, cmd := range path {
		game.Turn(cmd)
	}
}

func appendPath(path []engine.Command, cmd engine.Command) []engine.Command {
	out := make([]engine.Command, len(path), len(path)+1)
	copy(out, path)
	return append(out, cmd)
}
