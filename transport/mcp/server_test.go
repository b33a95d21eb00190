package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/nilla-moige/Theseus-and-minotaur/game/boards"
	"github.com/nilla-moige/Theseus-and-minotaur/game/service"
	"github.com/nilla-moige/Theseus-and-minotaur/game/session"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *logtest.Hook) {
	t.Helper()
	library, err := boards.NewLibrary("")
	require.NoError(t, err)

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	game := service.NewGameService(session.NewManager(), library, logger)
	return NewServer(game, "test", logger), hook
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Name = name
	if args != nil {
		request.Params.Arguments = args
	}
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

// createSession creates a session on board and returns its ID
func createSession(t *testing.T, s *Server, board string) string {
	t.Helper()
	result, err := s.handleCreateSession(context.Background(), callRequest("create_session", map[string]interface{}{
		"board_name": board,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))

	text := resultText(t, result)
	line := strings.SplitN(text, "\n", 2)[0]
	id := strings.TrimPrefix(line, "Created session: ")
	require.NotEqual(t, line, id, "unexpected create output: %s", text)
	return id
}

func move(t *testing.T, s *Server, sessionID, direction string) *mcp.CallToolResult {
	t.Helper()
	result, err := s.handleMove(context.Background(), callRequest("move", map[string]interface{}{
		"session_id": sessionID,
		"direction":  direction,
	}))
	require.NoError(t, err)
	return result
}

func TestNewServer(t *testing.T) {
	s, _ := newTestServer(t)
	require.NotNil(t, s.GetMCPServer())

	nilLogger := NewServer(s.game, "test", nil)
	assert.NotNil(t, nilLogger.log)
}

func TestServer_ListBoards(t *testing.T) {
	s, _ := newTestServer(t)

	result, err := s.handleListBoards(context.Background(), callRequest("list_boards", nil))
	require.NoError(t, err)
	text := resultText(t, result)

	assert.Contains(t, text, "Available Boards:")
	assert.Contains(t, text, "• classic (7x9, builtin)")
	assert.Contains(t, text, "• corridor (5x11, builtin)")
	assert.Contains(t, text, "labyrinth")
}

func TestServer_CreateSession(t *testing.T) {
	s, _ := newTestServer(t)

	t.Run("default board", func(t *testing.T) {
		result, err := s.handleCreateSession(context.Background(), callRequest("create_session", nil))
		require.NoError(t, err)
		text := resultText(t, result)
		assert.False(t, result.IsError)
		assert.Contains(t, text, "Board: classic")
		assert.Contains(t, text, "Possible moves:")
	})

	t.Run("unknown board", func(t *testing.T) {
		result, err := s.handleCreateSession(context.Background(), callRequest("create_session", map[string]interface{}{
			"board_name": "atlantis",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "board not found")
	})

	t.Run("caller supplied id is resumed", func(t *testing.T) {
		result, err := s.handleCreateSession(context.Background(), callRequest("create_session", map[string]interface{}{
			"session_id": "Ariadne",
			"board_name": "corridor",
		}))
		require.NoError(t, err)
		require.False(t, result.IsError, resultText(t, result))
		assert.True(t, strings.HasPrefix(resultText(t, result), "Created session: Ariadne\nBoard: corridor"))

		move(t, s, "Ariadne", "right")

		result, err = s.handleCreateSession(context.Background(), callRequest("create_session", map[string]interface{}{
			"session_id": "ariadne",
		}))
		require.NoError(t, err)
		require.False(t, result.IsError, resultText(t, result))
		text := resultText(t, result)
		assert.True(t, strings.HasPrefix(text, "Created session: Ariadne\nBoard: corridor"))
		assert.Contains(t, text, "Turns: 1")
	})

	t.Run("invalid id", func(t *testing.T) {
		result, err := s.handleCreateSession(context.Background(), callRequest("create_session", map[string]interface{}{
			"session_id": "two words",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "invalid session ID")
	})
}

func TestServer_SessionRequired(t *testing.T) {
	s, _ := newTestServer(t)

	handlers := map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		"get_session":    s.handleGetSession,
		"delete_session": s.handleDeleteSession,
		"game_state":     s.handleGameState,
		"move":           s.handleMove,
		"reset_game":     s.handleReset,
		"move_history":   s.handleMoveHistory,
	}

	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			result, err := handler(context.Background(), callRequest(name, nil))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Equal(t, "session_id is required", resultText(t, result))

			result, err = handler(context.Background(), callRequest(name, map[string]interface{}{
				"session_id": "missing",
				"direction":  "up",
			}))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), "session not found")
		})
	}
}

func TestServer_Move(t *testing.T) {
	s, hook := newTestServer(t)
	id := createSession(t, s, "corridor")

	result, err := s.handleMove(context.Background(), callRequest("move", map[string]interface{}{
		"session_id": id,
		"direction":  "right",
		"intent":     "run for the goal",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Turn 1: Theseus at (1,2), Minotaur at (3,2).")
	assert.Contains(t, text, "[player_moved] Theseus moved right to (1,2)")
	assert.Contains(t, text, "[minotaur_moved]")
	assert.Contains(t, text, "|XXXX XXXXXX|")

	var intentLogged bool
	for _, entry := range hook.AllEntries() {
		if strings.HasPrefix(entry.Message, "move intent: run for the goal") {
			intentLogged = true
			assert.Equal(t, "right", entry.Data["direction"])
		}
	}
	assert.True(t, intentLogged, "intent should be logged")
}

func TestServer_MoveInvalidDirection(t *testing.T) {
	s, _ := newTestServer(t)
	id := createSession(t, s, "corridor")

	result := move(t, s, id, "sideways")
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "invalid command")
}

func TestServer_Win(t *testing.T) {
	s, _ := newTestServer(t)
	id := createSession(t, s, "corridor")

	var result *mcp.CallToolResult
	for i := 0; i < 8; i++ {
		result = move(t, s, id, "right")
		require.False(t, result.IsError)
	}
	text := resultText(t, result)
	assert.Contains(t, text, "Turn 8: Theseus escaped the labyrinth!")
	assert.Contains(t, text, "VICTORY!")

	result = move(t, s, id, "left")
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Game is over (win). Reset to play again.")
}

func TestServer_LoseAndReset(t *testing.T) {
	s, _ := newTestServer(t)
	id := createSession(t, s, "corridor")

	for _, dir := range []string{"right", "right", "right", "skip"} {
		require.False(t, move(t, s, id, dir).IsError)
	}
	text := resultText(t, move(t, s, id, "skip"))
	assert.Contains(t, text, "Turn 5: the Minotaur caught Theseus.")
	assert.Contains(t, text, "GAME OVER.")

	result, err := s.handleReset(context.Background(), callRequest("reset_game", map[string]interface{}{
		"session_id": id,
	}))
	require.NoError(t, err)
	text = resultText(t, result)
	assert.Contains(t, text, "Game reset to starting positions")
	assert.Contains(t, text, "Theseus: (1,1) | Minotaur: (3,1)")

	// Reset flag on move restarts before playing
	for _, dir := range []string{"right", "right", "right", "skip", "skip"} {
		move(t, s, id, dir)
	}
	result, err = s.handleMove(context.Background(), callRequest("move", map[string]interface{}{
		"session_id": id,
		"direction":  "right",
		"reset":      true,
	}))
	require.NoError(t, err)
	text = resultText(t, result)
	assert.Contains(t, text, "[reset]")
	assert.Contains(t, text, "Theseus at (1,2), Minotaur at (3,2).")
}

func TestServer_GameStateAndSession(t *testing.T) {
	s, _ := newTestServer(t)
	id := createSession(t, s, "corridor")

	result, err := s.handleGameState(context.Background(), callRequest("game_state", map[string]interface{}{
		"session_id": id,
	}))
	require.NoError(t, err)
	text := resultText(t, result)
	assert.Contains(t, text, "Theseus: (1,1) | Minotaur: (3,1) | Goal: (1,9) | Turns: 0")
	assert.Contains(t, text, "Distance to goal: 8 | Distance to Minotaur: 2")
	assert.Contains(t, text, "|XT       GX|")
	assert.Contains(t, text, "Possible moves: right, skip")

	result, err = s.handleGetSession(context.Background(), callRequest("get_session", map[string]interface{}{
		"session_id": id,
	}))
	require.NoError(t, err)
	text = resultText(t, result)
	assert.Contains(t, text, "Session: "+id)
	assert.Contains(t, text, "Board: corridor")
}

func TestServer_ListAndDeleteSessions(t *testing.T) {
	s, _ := newTestServer(t)
	first := createSession(t, s, "classic")
	second := createSession(t, s, "corridor")

	result, err := s.handleListSessions(context.Background(), callRequest("list_sessions", nil))
	require.NoError(t, err)
	text := resultText(t, result)
	assert.Contains(t, text, "Active Sessions (2):")
	assert.Contains(t, text, first+" (Board: classic, Status: continue")
	assert.Contains(t, text, second+" (Board: corridor")

	result, err = s.handleDeleteSession(context.Background(), callRequest("delete_session", map[string]interface{}{
		"session_id": first,
	}))
	require.NoError(t, err)
	assert.Equal(t, "Deleted session: "+first, resultText(t, result))

	result, err = s.handleListSessions(context.Background(), callRequest("list_sessions", nil))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "Active Sessions (1):")
}

func TestServer_MoveHistory(t *testing.T) {
	s, _ := newTestServer(t)
	id := createSession(t, s, "corridor")

	result, err := s.handleMoveHistory(context.Background(), callRequest("move_history", map[string]interface{}{
		"session_id": id,
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "(no turns since the last reset)")

	move(t, s, id, "right")
	move(t, s, id, "up")
	move(t, s, id, "skip")

	tests := []struct {
		name     string
		args     map[string]interface{}
		contains []string
		first    string
	}{
		{
			name:     "default order is newest first",
			args:     map[string]interface{}{},
			contains: []string{"Turn History (Page 1/1) - Total: 3"},
			first:    "3. skip",
		},
		{
			name:     "ascending",
			args:     map[string]interface{}{"order": "asc"},
			contains: []string{"1. right | T (1,1)->(1,2) | M (3,1)->(3,2) [continue]"},
			first:    "1. right",
		},
		{
			name:     "paged",
			args:     map[string]interface{}{"order": "asc", "page": float64(2), "limit": float64(2)},
			contains: []string{"Turn History (Page 2/2) - Total: 3"},
			first:    "3. skip",
		},
		{
			name:     "page far past the end",
			args:     map[string]interface{}{"order": "desc", "page": float64(1e17)},
			contains: []string{"Turn History (Page 100000000000000000/1) - Total: 3"},
			first:    "(no turns on this page)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.args["session_id"] = id
			result, err := s.handleMoveHistory(context.Background(), callRequest("move_history", tt.args))
			require.NoError(t, err)
			text := resultText(t, result)
			for _, want := range tt.contains {
				assert.Contains(t, text, want)
			}
			lines := strings.Split(text, "\n")
			require.Greater(t, len(lines), 2)
			assert.True(t, strings.HasPrefix(lines[2], tt.first), "first turn line %q", lines[2])
		})
	}

	text := resultText(t, mustCall(t, s.handleMoveHistory, map[string]interface{}{"session_id": id, "order": "asc"}))
	assert.Contains(t, text, "2. up | T stayed | M stayed [continue]")
}

func mustCall(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	result, err := handler(context.Background(), callRequest("", args))
	require.NoError(t, err)
	require.False(t, result.IsError)
	return result
}

func TestServer_GameInstructions(t *testing.T) {
	s, _ := newTestServer(t)

	text := resultText(t, mustCall(t, s.handleGameInstructions, nil))
	assert.Contains(t, text, "GAME OBJECTIVE:")
	assert.Contains(t, text, "X - Wall")
}

func TestServer_Listen(t *testing.T) {
	s, _ := newTestServer(t)

	requests := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}}}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"list_boards","arguments":{}}}`,
	}, "\n") + "\n"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	in, input := io.Pipe()
	go func() {
		_, _ = io.WriteString(input, requests)
	}()

	var out syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- s.Listen(ctx, in, &out)
	}()

	require.Eventually(t, func() bool {
		return strings.Count(out.String(), "\n") >= 2
	}, 2*time.Second, 10*time.Millisecond)
	cancel()
	input.Close()
	<-done

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	var ids []float64
	var toolText string
	for _, line := range lines {
		var resp struct {
			ID     float64 `json:"id"`
			Result struct {
				ServerInfo struct {
					Name string `json:"name"`
				} `json:"serverInfo"`
				Content []struct {
					Text string `json:"text"`
				} `json:"content"`
			} `json:"result"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		ids = append(ids, resp.ID)
		if resp.ID == 1 {
			assert.Equal(t, ServerName, resp.Result.ServerInfo.Name)
		}
		if resp.ID == 2 && len(resp.Result.Content) > 0 {
			toolText = resp.Result.Content[0].Text
		}
	}
	assert.ElementsMatch(t, []float64{1, 2}, ids)
	assert.Contains(t, toolText, "corridor")
}

// syncBuffer is a bytes.Buffer safe for one writer and one reader
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
