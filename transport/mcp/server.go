package mcp

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/nilla-moige/Theseus-and-minotaur/game/service"
	"github.com/sirupsen/logrus"
)

// ServerName is reported to MCP clients during initialization
const ServerName = "Theseus and the Minotaur"

// Server exposes a GameService as MCP tools
type Server struct {
	game      service.GameService
	log       logrus.FieldLogger
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server backed by the given game service
func NewServer(game service.GameService, version string, logger logrus.FieldLogger) *Server {
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	s := &Server{
		game: game,
		log:  logger,
	}

	s.initMCPServer(version)
	return s
}

// initMCPServer initializes the MCP server with all tools
func (s *Server) initMCPServer(version string) {
	s.mcpServer = server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(`Theseus and the Minotaur - MCP Interface

GAME OBJECTIVE:
Guide Theseus (T) to the goal (G) without being caught by the Minotaur (M).
After every move of Theseus the Minotaur takes one step towards him.

AVAILABLE TOOLS:
- list_boards: List boards you can start a session on
- create_session: Create a new game session, or resume one by ID
- list_sessions: List all active sessions
- get_session: Get session details
- game_state: Get the current board and positions
- move: Play one turn (up/down/left/right/skip) - requires intent explanation
- reset_game: Put both pieces back on their starting tiles
- move_history: View past turns
- delete_session: Remove a session
- game_instructions: Get the full rules

NOTE: The 'intent' parameter on the move tool serves as rubber duck debugging - explain your reasoning!`),
	)

	s.registerTools()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	sessionIDSchema := map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}

	// Boards
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_boards",
		Description: "List the boards available for new sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListBoards)

	// Session management
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session, optionally on a specific board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"board_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the board to play (optional, see list_boards)",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to use (optional, generated when empty; an existing session with this ID is resumed)",
				},
			},
		},
	}, s.handleCreateSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListSessions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDSchema,
			},
			Required: []string{"session_id"},
		},
	}, s.handleGetSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a game session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDSchema,
			},
			Required: []string{"session_id"},
		},
	}, s.handleDeleteSession)

	// Game operations
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDSchema,
			},
			Required: []string{"session_id"},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Play one turn: Theseus moves (or skips), then the Minotaur moves",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDSchema,
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right", "skip"},
					"description": "Direction to move, or skip to stay put",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the game to its starting positions",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDSchema,
			},
			Required: []string{"session_id"},
		},
	}, s.handleReset)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get the turns played since the last reset",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDSchema,
				"page": map[string]interface{}{
					"type":        "number",
					"description": "Page number (default 1)",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Turns per page (default 20, max 100)",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest first (asc) or newest first (desc, default)",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleMoveHistory)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules of the game",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// Listen serves MCP over the given streams until ctx is done or in closes
func (s *Server) Listen(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(log.New(errorLogWriter{s.log}, "", 0))
	return stdio.Listen(ctx, in, out)
}

// errorLogWriter forwards the stdio server's error log to logrus
type errorLogWriter struct {
	log logrus.FieldLogger
}

func (w errorLogWriter) Write(p []byte) (int, error) {
	w.log.WithField("component", "mcp").Error(strings.TrimSpace(string(p)))
	return len(p), nil
}

// Tool handlers

func (s *Server) handleListBoards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	boards, err := s.game.ListBoards(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBoards(boards)), nil
}

func (s *Server) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	boardName, _ := args["board_name"].(string)
	sessionID, _ := args["session_id"].(string)

	session, err := s.game.CreateSession(ctx, sessionID, boardName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nBoard: %s\n\n%s",
		session.ID, session.BoardName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.game.ListSessions(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Active Sessions (%d):\n\n", len(sessions)))
	for _, sess := range sessions {
		status := ""
		if sess.GameState != nil {
			status = sess.GameState.Status.String()
		}
		result.WriteString(fmt.Sprintf("- %s (Board: %s, Status: %s, Created: %s)\n",
			sess.ID, sess.BoardName, status, sess.CreatedAt.Format("15:04:05")))
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(request)
	if errResult != nil {
		return errResult, nil
	}

	session, err := s.game.GetSession(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(session)), nil
}

func (s *Server) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(request)
	if errResult != nil {
		return errResult, nil
	}

	if err := s.game.DeleteSession(ctx, sessionID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Deleted session: %s", sessionID)), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(request)
	if errResult != nil {
		return errResult, nil
	}

	state, err := s.game.GetGameState(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(state)), nil
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(request)
	if errResult != nil {
		return errResult, nil
	}

	args := arguments(request)
	direction, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	if intent != "" {
		s.log.WithFields(logrus.Fields{
			"session":   sessionID,
			"direction": direction,
		}).Debugf("move intent: %s", intent)
	}

	result, err := s.game.Play(ctx, sessionID, direction, reset)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatTurnResult(result)), nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(request)
	if errResult != nil {
		return errResult, nil
	}

	state, err := s.game.Reset(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Game reset to starting positions\n\n%s", formatGameState(state))
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(request)
	if errResult != nil {
		return errResult, nil
	}

	args := arguments(request)
	opts := service.HistoryOptions{}
	if page, ok := args["page"].(float64); ok {
		opts.Page = int(page)
	}
	if limit, ok := args["limit"].(float64); ok {
		opts.Limit = int(limit)
	}
	opts.Order, _ = args["order"].(string)

	history, err := s.game.GetHistory(ctx, sessionID, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(history)), nil
}

func (s *Server) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

// arguments returns the tool call arguments, or an empty map
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok || args == nil {
		return map[string]interface{}{}
	}
	return args
}

func requireSessionID(request mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	sessionID, _ := arguments(request)["session_id"].(string)
	if strings.TrimSpace(sessionID) == "" {
		return "", mcp.NewToolResultError("session_id is required")
	}
	return sessionID, nil
}

const instructions = `Theseus and the Minotaur - Complete Instructions

GAME OBJECTIVE:
Move Theseus (T) onto the goal (G) before the Minotaur (M) catches him.

BOARD LEGEND:
• T - Theseus (you)
• M - The Minotaur
• G - Goal
• X - Wall (impassable for both pieces)
• (space) - Open floor

TURNS:
1. Theseus moves one tile up, down, left or right, or skips.
   Moving into a wall or off the board wastes the move.
2. If Theseus reached the goal the game is won immediately.
3. If Theseus stepped onto the Minotaur the game is lost.
4. Otherwise the Minotaur takes exactly one step:
   • If he is not in Theseus' column he steps sideways towards him.
     If a wall is in the way he stays where he is.
   • Only when he already shares Theseus' column does he step up or down
     towards him, again staying put if a wall blocks the way.
5. If the Minotaur lands on Theseus the game is lost.

STRATEGY:
• The Minotaur never goes around walls. Put a wall between you and him,
  keep him off your column, and he is stuck.
• Skipping is a real move: it gives the Minotaur a step without moving you.
• Use move_history to review what happened, reset_game to start over.`
