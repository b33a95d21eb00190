package service

import (
	"context"
	"errors"
	"time"

	"github.com/nilla-moige/Theseus-and-minotaur/game/engine"
)

var ErrInvalidCommand = errors.New("invalid command")

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, sessionID, boardName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Play(ctx context.Context, sessionID, command string, reset bool) (*TurnResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Boards
	ListBoards(ctx context.Context) ([]*BoardInfo, error)
	LoadBoard(ctx context.Context, boardName string) (*BoardInfo, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, boardName string, game *engine.Game) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id, boardName string, game *engine.Game) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// BoardLibrary provides parsed boards by name
type BoardLibrary interface {
	NewGame(name string) (*engine.Game, error)
	Info(name string) (*BoardInfo, error)
	ListBoards() ([]*BoardInfo, error)
	DefaultName() string
}

// Session represents an active game session
type Session struct {
	ID             string
	BoardName      string
	Game           *engine.Game
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
