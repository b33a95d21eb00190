package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/nilla-moige/Theseus-and-minotaur/game/engine"
	"github.com/sirupsen/logrus"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	boards   BoardLibrary
	log      logrus.FieldLogger
	mu       sync.Mutex
}

// NewGameService creates a new game service instance. A nil logger discards
// all output.
func NewGameService(sessions SessionManager, boards BoardLibrary, log logrus.FieldLogger) GameService {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &gameServiceImpl{
		sessions: sessions,
		boards:   boards,
		log:      log,
	}
}

// CreateSession creates a new game session on the named board, or on the
// library default when boardName is empty. An empty sessionID gets a
// generated one; a sessionID that is already in use returns that session
// unchanged.
func (s *gameServiceImpl) CreateSession(ctx context.Context, sessionID, boardName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if boardName == "" {
		boardName = s.boards.DefaultName()
	}

	game, err := s.boards.NewGame(boardName)
	if err != nil {
		// Provide helpful error message with available options
		if boards, listErr := s.boards.ListBoards(); listErr == nil && len(boards) > 0 {
			names := make([]string, 0, len(boards))
			for _, b := range boards {
				names = append(names, b.Name)
			}
			return nil, fmt.Errorf("failed to load board %q (available: %v): %w", boardName, names, err)
		}
		return nil, fmt.Errorf("failed to load board %q: %w", boardName, err)
	}

	sess, err := s.sessions.GetOrCreate(sessionID, boardName, game)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log := s.log.WithFields(logrus.Fields{
		"session": sess.ID,
		"board":   sess.BoardName,
	})
	if sess.Game != game {
		if err := s.sessions.UpdateLastAccessed(sess.ID); err != nil {
			return nil, err
		}
		log.Info("session resumed")
	} else {
		log.Info("session created")
	}

	return sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.log.WithField("session", sessionID).Info("session deleted")
	return nil
}

// Play resolves one turn for a session. The command is parsed with
// engine.ParseCommand; unrecognised input fails with ErrInvalidCommand
// before anything is changed, including the optional reset.
func (s *gameServiceImpl) Play(ctx context.Context, sessionID, command string, reset bool) (*TurnResult, error) {
	cmd, ok := engine.ParseCommand(command)
	if !ok {
		return nil, fmt.Errorf("%w: %q (expected up, down, left, right or skip)", ErrInvalidCommand, command)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	events := []GameEvent{}
	if reset {
		sess.Game.Reset()
		events = append(events, resetEvent())
	}

	record := sess.Game.Turn(cmd)
	state := sess.Game.State()

	result := &TurnResult{
		Applied:   record.Applied,
		Turn:      record,
		GameState: state,
		Events:    events,
	}

	if !record.Applied {
		result.Message = fmt.Sprintf("Game is over (%s). Reset to play again.", record.Status)
	} else {
		result.Events = append(result.Events, turnEvents(record)...)
		result.Message = turnMessage(record)
	}

	s.log.WithFields(logrus.Fields{
		"session":  sess.ID,
		"board":    sess.BoardName,
		"command":  cmd.String(),
		"turn":     record.Number,
		"applied":  record.Applied,
		"theseus":  record.PlayerTo.String(),
		"minotaur": record.MinotaurTo.String(),
		"status":   record.Status.String(),
	}).Debug("turn played")

	if record.Applied && record.Status != engine.Continue {
		s.log.WithFields(logrus.Fields{
			"session": sess.ID,
			"board":   sess.BoardName,
			"status":  record.Status.String(),
			"turns":   sess.Game.Turns(),
		}).Info("game finished")
	}

	return result, nil
}

// Reset puts a session's game back to its starting positions
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Game.Reset()
	s.log.WithField("session", sess.ID).Debug("game reset")
	return sess.Game.State(), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Game.State(), nil
}

// GetHistory returns paginated turn history since the last reset
func (s *gameServiceImpl) GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	return paginate(sess.Game.History(), opts), nil
}

// ListBoards returns the boards available for new sessions
func (s *gameServiceImpl) ListBoards(ctx context.Context) ([]*BoardInfo, error) {
	return s.boards.ListBoards()
}

// LoadBoard returns details and layout of a single board
func (s *gameServiceImpl) LoadBoard(ctx context.Context, boardName string) (*BoardInfo, error) {
	return s.boards.Info(boardName)
}

// session looks up a session and touches its access time. Callers hold s.mu.
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		s.log.WithError(err).WithField("session", sessionID).Warn("failed to update access time")
	}
	return sess, nil
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		BoardName:      sess.BoardName,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Game.State(),
	}
}

func paginate(history []engine.TurnRecord, opts HistoryOptions) *HistoryResponse {
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultHistoryLimit
	}
	if opts.Limit > maxHistoryLimit {
		opts.Limit = maxHistoryLimit
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	// Pages past the end are empty; Page is bounded before multiplying
	turns := []engine.TurnRecord{}
	if opts.Page <= totalPages {
		start := (opts.Page - 1) * opts.Limit
		end := start + opts.Limit
		if end > total {
			end = total
		}

		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end && i >= 0; i-- {
				turns = append(turns, history[i])
			}
		} else if start < end {
			turns = append(turns, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Turns:       turns,
		TotalTurns:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}
}

func resetEvent() GameEvent {
	return GameEvent{
		Type:      EventReset,
		Message:   "Game reset to starting positions",
		Timestamp: time.Now(),
	}
}

// turnEvents describes an applied turn as a list of events
func turnEvents(record engine.TurnRecord) []GameEvent {
	now := time.Now()
	events := make([]GameEvent, 0, 3)

	playerTo := record.PlayerTo
	if record.PlayerMoved {
		events = append(events, GameEvent{
			Type:      EventPlayerMoved,
			Message:   fmt.Sprintf("Theseus moved %s to %s", record.Command, playerTo),
			Timestamp: now,
			Position:  &playerTo,
		})
	} else {
		msg := fmt.Sprintf("Theseus stayed at %s", playerTo)
		if record.Command != engine.Skip {
			msg = fmt.Sprintf("Theseus could not move %s from %s", record.Command, playerTo)
		}
		events = append(events, GameEvent{
			Type:      EventPlayerBlocked,
			Message:   msg,
			Timestamp: now,
			Position:  &playerTo,
		})
	}

	// The Minotaur sits out the turn when Theseus' own move ended the game
	minotaurActed := record.Status != engine.Win && record.PlayerTo != record.MinotaurFrom
	minotaurTo := record.MinotaurTo
	switch {
	case record.MinotaurMoved:
		events = append(events, GameEvent{
			Type:      EventMinotaurMoved,
			Message:   fmt.Sprintf("The Minotaur moved from %s to %s", record.MinotaurFrom, minotaurTo),
			Timestamp: now,
			Position:  &minotaurTo,
		})
	case minotaurActed:
		events = append(events, GameEvent{
			Type:      EventMinotaurBlocked,
			Message:   fmt.Sprintf("The Minotaur is stuck at %s", minotaurTo),
			Timestamp: now,
			Position:  &minotaurTo,
		})
	}

	switch record.Status {
	case engine.Win:
		events = append(events, GameEvent{
			Type:      EventWin,
			Message:   "Theseus reached the goal",
			Timestamp: now,
			Position:  &playerTo,
		})
	case engine.Lose:
		events = append(events, GameEvent{
			Type:      EventLose,
			Message:   "The Minotaur caught Theseus",
			Timestamp: now,
			Position:  &playerTo,
		})
	}

	return events
}

func turnMessage(record engine.TurnRecord) string {
	switch record.Status {
	case engine.Win:
		return fmt.Sprintf("Turn %d: Theseus escaped the labyrinth!", record.Number)
	case engine.Lose:
		return fmt.Sprintf("Turn %d: the Minotaur caught Theseus.", record.Number)
	default:
		return fmt.Sprintf("Turn %d: Theseus at %s, Minotaur at %s.", record.Number, record.PlayerTo, record.MinotaurTo)
	}
}
