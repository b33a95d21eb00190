package validate

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nilla-moige/Theseus-and-minotaur/game/boards"
	"github.com/nilla-moige/Theseus-and-minotaur/game/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corridor = "XXXXXXXXXXX\n" +
	"XT       GX\n" +
	"XXXX XXXXXX\n" +
	"XM        X\n" +
	"XXXXXXXXXXX\n"

const walledIn = "XXXXX\n" +
	"XTXGX\n" +
	"XMXXX\n" +
	"XXXXX\n"

func TestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corridor.txt")
	if err := os.WriteFile(path, []byte(corridor), 0644); err != nil {
		t.Fatalf("Failed to write board: %v", err)
	}

	result := File(path)
	if !result.Valid {
		t.Errorf("Expected valid board, but got: %v", result.Messages)
	}
	if result.File != "corridor.txt" {
		t.Errorf("Expected file name corridor.txt, got %s", result.File)
	}

	missing := File(filepath.Join(dir, "missing.txt"))
	if missing.Valid {
		t.Error("Expected missing file to be invalid")
	}
	if len(missing.Messages) == 0 || !strings.Contains(missing.Messages[0], "Failed to read file") {
		t.Errorf("Expected read failure message, got %v", missing.Messages)
	}
}

func TestBoard(t *testing.T) {
	tests := []struct {
		name     string
		board    string
		valid    bool
		contains string
		errIs    error
	}{
		{
			name:     "valid board",
			board:    corridor,
			valid:    true,
			contains: "✓ Shortest path to goal: 8 moves",
		},
		{
			name:     "goal walled off",
			board:    walledIn,
			valid:    false,
			contains: "Goal (1,3) is not reachable from Theseus at (1,1)",
		},
		{
			name:     "missing goal",
			board:    "XXXX\nXTMX\nXXXX\n",
			valid:    false,
			contains: "goal",
			errIs:    engine.ErrNoGoal,
		},
		{
			name:  "bad character",
			board: "XXXX\nXT?X\nXMGX\n",
			valid: false,
			errIs: engine.ErrInvalidCharacter,
		},
		{
			name:  "ragged rows",
			board: "XXXX\nXTMGX\n",
			valid: false,
			errIs: engine.ErrInvalidSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Board("test.txt", tt.board)
			assert.Equal(t, tt.valid, result.Valid, result.Messages)
			assert.Equal(t, "test.txt", result.File)
			require.NotEmpty(t, result.Messages)
			if tt.contains != "" {
				assert.Contains(t, strings.Join(result.Messages, "\n"), tt.contains)
			}
			if tt.errIs != nil {
				assert.ErrorIs(t, result.Err, tt.errIs)
			} else {
				assert.NoError(t, result.Err)
			}
		})
	}
}

func TestShortestPath(t *testing.T) {
	game := engine.MustParse(corridor)
	grid := game.Grid()

	assert.Equal(t, 8, ShortestPath(grid, game.Theseus(), game.Goal()))
	assert.Equal(t, 0, ShortestPath(grid, game.Goal(), game.Goal()))
	// Down through the gap and back along the lower corridor
	assert.Equal(t, 8, ShortestPath(grid, game.Theseus(), game.Minotaur()))
	assert.Equal(t, -1, ShortestPath(grid, game.Theseus(), engine.Position{Row: 0, Col: 0}))
	assert.Equal(t, -1, ShortestPath(grid, game.Theseus(), engine.Position{Row: 9, Col: 9}))
}

func TestAnalyze(t *testing.T) {
	t.Run("minotaur gets stuck", func(t *testing.T) {
		a, err := Analyze(corridor)
		require.NoError(t, err)

		assert.Equal(t, 5, a.Height)
		assert.Equal(t, 11, a.Width)
		assert.Equal(t, 36, a.Walls)
		assert.Equal(t, 18, a.Open)
		assert.Equal(t, 8, a.DistanceToGoal)
		assert.Equal(t, 2, a.DistanceToMinotaur)
		assert.Equal(t, 8, a.ShortestPath)
		assert.Equal(t, engine.Continue, a.SkipStatus)
		assert.Equal(t, 1, a.SkipTurns)
		assert.Equal(t, engine.Position{Row: 3, Col: 1}, a.MinotaurEnd)
		assert.True(t, a.Solvable)
		assert.Len(t, a.Solution, 8)

		var out bytes.Buffer
		a.Write(&out)
		assert.Contains(t, out.String(), "Grid Size: 5 x 11")
		assert.Contains(t, out.String(), "Solvable in 8 turns: right, right")
		assert.Contains(t, out.String(), "Standing still is safe: the Minotaur gets stuck at (3,1) after 1 turns")
	})

	t.Run("minotaur catches a still player", func(t *testing.T) {
		a, err := Analyze("T M G\n")
		require.NoError(t, err)

		assert.Equal(t, 4, a.ShortestPath)
		assert.Equal(t, engine.Lose, a.SkipStatus)
		assert.Equal(t, 2, a.SkipTurns)
		assert.Equal(t, engine.Position{Row: 0, Col: 0}, a.MinotaurEnd)

		var out bytes.Buffer
		a.Write(&out)
		assert.Contains(t, out.String(), "Standing still loses after 2 turns")
		assert.Contains(t, out.String(), "no sequence of moves wins this board")
	})

	t.Run("unreachable goal", func(t *testing.T) {
		a, err := Analyze(walledIn)
		require.NoError(t, err)
		assert.Equal(t, -1, a.ShortestPath)

		var out bytes.Buffer
		a.Write(&out)
		assert.Contains(t, out.String(), "CRITICAL: the goal cannot be reached")
	})

	t.Run("invalid board", func(t *testing.T) {
		_, err := Analyze("TM\n")
		assert.ErrorIs(t, err, engine.ErrNoGoal)
	})
}

func TestSolve(t *testing.T) {
	t.Run("straight run", func(t *testing.T) {
		game := engine.MustParse(corridor)
		solution, ok := Solve(game)
		require.True(t, ok)
		assert.Equal(t, []engine.Command{
			engine.Right, engine.Right, engine.Right, engine.Right,
			engine.Right, engine.Right, engine.Right, engine.Right,
		}, solution)

		assert.Equal(t, engine.Position{Row: 1, Col: 1}, game.Theseus())
		assert.Equal(t, engine.Position{Row: 3, Col: 1}, game.Minotaur())
		assert.Empty(t, game.History())
		assert.Equal(t, 0, game.Turns())
	})

	t.Run("game in progress is left alone", func(t *testing.T) {
		game := engine.MustParse(corridor)
		game.Turn(engine.Right)
		game.Turn(engine.Right)

		solution, ok := Solve(game)
		require.True(t, ok)
		assert.Len(t, solution, 8, "solved from the starting positions")

		assert.Equal(t, engine.Position{Row: 1, Col: 3}, game.Theseus())
		assert.Len(t, game.History(), 2)
		assert.Equal(t, 2, game.Turns())
	})

	t.Run("minotaur blocks the only way", func(t *testing.T) {
		solution, ok := Solve(engine.MustParse("T M G\n"))
		assert.False(t, ok)
		assert.Nil(t, solution)
	})

	t.Run("goal walled off", func(t *testing.T) {
		_, ok := Solve(engine.MustParse(walledIn))
		assert.False(t, ok)
	})
}

func TestSolve_BuiltinBoards(t *testing.T) {
	library, err := boards.NewLibrary("")
	require.NoError(t, err)

	list, err := library.ListBoards()
	require.NoError(t, err)

	want := map[string]int{"classic": 22, "corridor": 8, "labyrinth": 18}
	for _, info := range list {
		t.Run(info.Name, func(t *testing.T) {
			game, err := library.NewGame(info.Name)
			require.NoError(t, err)

			solution, ok := Solve(game)
			require.True(t, ok, "every built-in board must be winnable")
			assert.Len(t, solution, want[info.Name])

			// Replaying the solution wins
			var record engine.TurnRecord
			for _, cmd := range solution {
				record = game.Turn(cmd)
			}
			assert.Equal(t, engine.Win, record.Status)
		})
	}
}
