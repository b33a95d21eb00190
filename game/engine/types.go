package engine

import "fmt"

// TileKind represents the static content of a grid cell
type TileKind string

const (
	Open TileKind = "open"
	Wall TileKind = "wall"
	Goal TileKind = "goal"
)

// Board characters
const (
	OpenMarker     = ' '
	WallMarker     = 'X'
	TheseusMarker  = 'T'
	MinotaurMarker = 'M'
	GoalMarker     = 'G'
)

// String returns the tile kind name
func (k TileKind) String() string {
	return string(k)
}

// Marker returns the board character used for the tile kind
func (k TileKind) Marker() rune {
	switch k {
	case Wall:
		return WallMarker
	case Goal:
		return GoalMarker
	default:
		return OpenMarker
	}
}

// Position represents row,col coordinates
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String formats the position as (row,col)
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Status classifies the current game state
type Status int

const (
	Continue Status = iota
	Win
	Lose
)

var statusNames = map[Status]string{
	Continue: "continue",
	Win:      "win",
	Lose:     "lose",
}

// String returns the lower-case status name
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler
func (s Status) MarshalText() ([]byte, error) {
	if _, ok := statusNames[s]; !ok {
		return nil, fmt.Errorf("unknown status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Status) UnmarshalText(text []byte) error {
	for status, name := range statusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", string(text))
}

// TurnRecord describes one resolved turn
type TurnRecord struct {
	Number        int      `json:"number"`
	Command       Command  `json:"command"`
	Applied       bool     `json:"applied"`
	PlayerFrom    Position `json:"player_from"`
	PlayerTo      Position `json:"player_to"`
	PlayerMoved   bool     `json:"player_moved"`
	MinotaurFrom  Position `json:"minotaur_from"`
	MinotaurTo    Position `json:"minotaur_to"`
	MinotaurMoved bool     `json:"minotaur_moved"`
	Status        Status   `json:"status"`
}

// GameState is a serialisable snapshot of a game
type GameState struct {
	Layout             []string     `json:"layout"`
	Height             int          `json:"height"`
	Width              int          `json:"width"`
	Theseus            Position     `json:"theseus"`
	Minotaur           Position     `json:"minotaur"`
	Goal               Position     `json:"goal"`
	Status             Status       `json:"status"`
	Turns              int          `json:"turns"`
	DistanceToMinotaur int          `json:"distance_to_minotaur"`
	DistanceToGoal     int          `json:"distance_to_goal"`
	PossibleMoves      []Command    `json:"possible_moves,omitempty"`
	History            []TurnRecord `json:"history,omitempty"`
}
