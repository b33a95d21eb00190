package engine

import (
	"fmt"
	"strings"
)

// Command is one of the five player actions
type Command int

const (
	Up Command = iota
	Down
	Left
	Right
	Skip
)

// Directions lists the commands that displace the player
var Directions = []Command{Up, Down, Left, Right}

var commandNames = map[Command]string{
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
	Skip:  "skip",
}

// ParseCommand maps raw player input to a Command.
// Accepts w/a/s/d, the words up/down/left/right and skip, case-insensitive
// and trimmed. The second result is false for unrecognised input.
func ParseCommand(input string) (Command, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "w", "up":
		return Up, true
	case "a", "left":
		return Left, true
	case "s", "down":
		return Down, true
	case "d", "right":
		return Right, true
	case "skip":
		return Skip, true
	default:
		return Skip, false
	}
}

// String returns the lower-case command name
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// Valid reports whether c is one of the five commands
func (c Command) Valid() bool {
	_, ok := commandNames[c]
	return ok
}

// MarshalText implements encoding.TextMarshaler
func (c Command) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown command %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Command) UnmarshalText(text []byte) error {
	cmd, ok := ParseCommand(string(text))
	if !ok {
		return fmt.Errorf("unknown command %q", string(text))
	}
	*c = cmd
	return nil
}

// delta returns the row and column displacement of the command
func (c Command) delta() (int, int) {
	switch c {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	default:
		return 0, 0
	}
}
