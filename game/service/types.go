package service

import (
	"time"

	"github.com/nilla-moige/Theseus-and-minotaur/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	BoardName      string            `json:"board_name"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
}

// TurnResult contains the result of a single Play call
type TurnResult struct {
	Applied   bool              `json:"applied"`
	Turn      engine.TurnRecord `json:"turn"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Events    []GameEvent       `json:"events,omitempty"`
}

// Event types reported in TurnResult.Events
const (
	EventPlayerMoved     = "player_moved"
	EventPlayerBlocked   = "player_blocked"
	EventMinotaurMoved   = "minotaur_moved"
	EventMinotaurBlocked = "minotaur_blocked"
	EventWin             = "win"
	EventLose            = "lose"
	EventReset           = "reset"
)

// GameEvent represents an event that occurred during a turn
type GameEvent struct {
	Type      string           `json:"type"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Position  *engine.Position `json:"position,omitempty"`
}

// HistoryOptions configures turn history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated turn history
type HistoryResponse struct {
	Turns       []engine.TurnRecord `json:"turns"`
	TotalTurns  int                 `json:"total_turns"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// Board sources
const (
	SourceBuiltin   = "builtin"
	SourceDirectory = "directory"
)

// BoardInfo describes a board available to new sessions
type BoardInfo struct {
	Name     string   `json:"name"` // identifier to use for session creation
	Filename string   `json:"filename"`
	Source   string   `json:"source"`
	Height   int      `json:"height"`
	Width    int      `json:"width"`
	Layout   []string `json:"layout,omitempty"`
}
