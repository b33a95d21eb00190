// Package mcp exposes the game as a Model Context Protocol server.
//
// The server talks to the game service directly and serves over stdio, so
// an MCP client can start the binary and play without any network setup.
//
// MCP Tools:
//   - list_boards: List boards available for new sessions
//   - create_session: Create a session, optionally on a named board
//   - list_sessions / get_session / delete_session: Session management
//   - game_state: Board picture, positions and possible moves
//   - move: Play one turn (up, down, left, right or skip)
//   - reset_game: Restart the current session
//   - move_history: Paged list of turns since the last reset
//   - game_instructions: The rules of the game
//
// Usage:
//
//	srv := mcp.NewServer(gameService, version, logger)
//	err := srv.Listen(ctx, os.Stdin, os.Stdout)
//
// Tool failures (unknown session, invalid direction, unknown board) are
// reported as MCP tool errors rather than protocol errors.
package mcp
