package engine

import (
	"fmt"
	"strings"
)

// BoardErrorKind identifies why a board was rejected
type BoardErrorKind int

const (
	InvalidCharacter BoardErrorKind = iota
	InvalidSize
	NoMinotaur
	NoTheseus
	NoGoal
	MultipleMinotaur
	MultipleTheseus
	MultipleGoal
)

var boardErrorMessages = map[BoardErrorKind]string{
	InvalidCharacter: "invalid character",
	InvalidSize:      "invalid size",
	NoMinotaur:       "no minotaur",
	NoTheseus:        "no theseus",
	NoGoal:           "no goal",
	MultipleMinotaur: "multiple minotaur",
	MultipleTheseus:  "multiple theseus",
	MultipleGoal:     "multiple goal",
}

// String returns the error kind message
func (k BoardErrorKind) String() string {
	if msg, ok := boardErrorMessages[k]; ok {
		return msg
	}
	return fmt.Sprintf("board error(%d)", int(k))
}

// BoardError reports a board that cannot be turned into a Game.
// Line is the 1-based source line of the failure, or 0 for checks made
// after the whole board was read.
type BoardError struct {
	Kind BoardErrorKind
	Char rune
	Line int
}

// Error implements error
func (e *BoardError) Error() string {
	msg := e.Kind.String()
	if e.Kind == InvalidCharacter {
		msg = fmt.Sprintf("%s: %q", msg, e.Char)
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, e.Line)
	}
	return msg
}

// Is matches board errors of the same kind. An InvalidCharacter target with
// a zero Char matches any character.
func (e *BoardError) Is(target error) bool {
	t, ok := target.(*BoardError)
	if !ok || t.Kind != e.Kind {
		return false
	}
	return t.Kind != InvalidCharacter || t.Char == 0 || t.Char == e.Char
}

// Sentinels for errors.Is
var (
	ErrInvalidCharacter = &BoardError{Kind: InvalidCharacter}
	ErrInvalidSize      = &BoardError{Kind: InvalidSize}
	ErrNoMinotaur       = &BoardError{Kind: NoMinotaur}
	ErrNoTheseus        = &BoardError{Kind: NoTheseus}
	ErrNoGoal           = &BoardError{Kind: NoGoal}
	ErrMultipleMinotaur = &BoardError{Kind: MultipleMinotaur}
	ErrMultipleTheseus  = &BoardError{Kind: MultipleTheseus}
	ErrMultipleGoal     = &BoardError{Kind: MultipleGoal}
)

// Parse builds a Game from board text.
//
// Blank and whitespace-only lines are ignored. Every other line is a grid
// row and must be as wide as the first one. Exactly one T, M and G must be
// present; duplicates are reported as soon as they are seen, missing pieces
// are reported in the order Theseus, Minotaur, goal.
func Parse(board string) (*Game, error) {
	var rows [][]TileKind
	var theseus, minotaur, goal *Position

	for i, line := range strings.Split(board, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		lineNo := i + 1
		r := len(rows)
		row := make([]TileKind, 0, len(line))
		for c, ch := range []rune(line) {
			switch ch {
			case OpenMarker:
				row = append(row, Open)
			case WallMarker:
				row = append(row, Wall)
			case TheseusMarker:
				if theseus != nil {
					return nil, &BoardError{Kind: MultipleTheseus, Line: lineNo}
				}
				theseus = &Position{Row: r, Col: c}
				row = append(row, Open)
			case MinotaurMarker:
				if minotaur != nil {
					return nil, &BoardError{Kind: MultipleMinotaur, Line: lineNo}
				}
				minotaur = &Position{Row: r, Col: c}
				row = append(row, Open)
			case GoalMarker:
				if goal != nil {
					return nil, &BoardError{Kind: MultipleGoal, Line: lineNo}
				}
				goal = &Position{Row: r, Col: c}
				row = append(row, Goal)
			default:
				return nil, &BoardError{Kind: InvalidCharacter, Char: ch, Line: lineNo}
			}
		}

		if len(row) == 0 || (len(rows) > 0 && len(row) != len(rows[0])) {
			return nil, &BoardError{Kind: InvalidSize, Line: lineNo}
		}
		rows = append(rows, row)
	}

	if theseus == nil {
		return nil, &BoardError{Kind: NoTheseus}
	}
	if minotaur == nil {
		return nil, &BoardError{Kind: NoMinotaur}
	}
	if goal == nil {
		return nil, &BoardError{Kind: NoGoal}
	}

	return newGame(newGrid(rows), *theseus, *minotaur, *goal), nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// compiled-in boards.
func MustParse(board string) *Game {
	game, err := Parse(board)
	if err != nil {
		panic(fmt.Sprintf("engine: invalid board: %v", err))
	}
	return game
}
