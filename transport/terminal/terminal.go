package terminal

import (
	"context"
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/nilla-moige/Theseus-and-minotaur/game/engine"
	"github.com/sirupsen/logrus"
)

// Action is what a key press asks the UI to do
type Action int

const (
	ActionNone Action = iota
	ActionMove
	ActionReset
	ActionQuit
)

// Board drawing offsets
const (
	boardTop  = 2
	boardLeft = 1
)

var (
	titleStyle    = tcell.StyleDefault.Bold(true)
	wallStyle     = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorGray)
	goalStyle     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	theseusStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	minotaurStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	winStyle      = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	loseStyle     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	helpStyle     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

const helpText = "arrows/wasd move  space skip  r reset  q quit"

// UI plays a game full-screen on a tcell screen
type UI struct {
	screen    tcell.Screen
	game      *engine.Game
	boardName string
	log       logrus.FieldLogger
	message   string
}

// New creates a UI on an initialised screen. The caller owns the screen and
// must call Fini on it.
func New(screen tcell.Screen, game *engine.Game, boardName string, log logrus.FieldLogger) *UI {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &UI{
		screen:    screen,
		game:      game,
		boardName: boardName,
		log:       log,
	}
}

// Run handles key presses until the player quits or ctx is done. A finished
// game stays on screen so it can be reset.
func (u *UI) Run(ctx context.Context) (engine.Status, error) {
	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	u.draw()
	for {
		select {
		case <-ctx.Done():
			return u.game.Status(), ctx.Err()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !u.handleKey(ev) {
					return u.game.Status(), nil
				}
			case *tcell.EventResize:
				u.screen.Sync()
			}
			u.draw()
		}
	}
}

// handleKey applies a key press and reports whether the UI keeps running
func (u *UI) handleKey(ev *tcell.EventKey) bool {
	action, cmd := KeyAction(ev.Key(), ev.Rune())
	switch action {
	case ActionQuit:
		return false

	case ActionReset:
		u.game.Reset()
		u.message = "Reset to the starting positions."
		u.log.Debug("game reset")

	case ActionMove:
		if u.game.IsOver() {
			u.message = "Game over. Press r to play again."
			return true
		}
		record := u.game.Turn(cmd)
		u.message = turnMessage(record)
		u.log.WithFields(logrus.Fields{
			"board":    u.boardName,
			"command":  cmd.String(),
			"turn":     record.Number,
			"theseus":  record.PlayerTo.String(),
			"minotaur": record.MinotaurTo.String(),
			"status":   record.Status.String(),
		}).Debug("turn played")
	}
	return true
}

// KeyAction maps a key press to an action. The command is only meaningful
// for ActionMove.
func KeyAction(key tcell.Key, r rune) (Action, engine.Command) {
	switch key {
	case tcell.KeyUp:
		return ActionMove, engine.Up
	case tcell.KeyDown:
		return ActionMove, engine.Down
	case tcell.KeyLeft:
		return ActionMove, engine.Left
	case tcell.KeyRight:
		return ActionMove, engine.Right
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit, engine.Skip
	case tcell.KeyRune:
	default:
		return ActionNone, engine.Skip
	}

	switch r {
	case ' ', '.':
		return ActionMove, engine.Skip
	case 'r', 'R':
		return ActionReset, engine.Skip
	case 'q', 'Q':
		return ActionQuit, engine.Skip
	}
	if cmd, ok := engine.ParseCommand(string(r)); ok {
		return ActionMove, cmd
	}
	return ActionNone, engine.Skip
}

func (u *UI) draw() {
	u.screen.Clear()
	Draw(u.screen, u.game, u.boardName, u.message)
	u.screen.Show()
}

// Draw paints the title, board, status line and help onto screen without
// showing it
func Draw(screen tcell.Screen, game *engine.Game, boardName, message string) {
	drawText(screen, boardLeft, 0, titleStyle, "Theseus and the Minotaur: "+boardName)

	grid := game.Grid()
	for row := 0; row < grid.Height(); row++ {
		for col := 0; col < grid.Width(); col++ {
			marker := game.MarkerAt(row, col)
			screen.SetContent(boardLeft+col, boardTop+row, marker, nil, markerStyle(marker))
		}
	}

	y := boardTop + grid.Height() + 1
	drawText(screen, boardLeft, y, statusStyle(game.Status()), statusLine(game))
	if message != "" {
		drawText(screen, boardLeft, y+1, tcell.StyleDefault, message)
	}
	drawText(screen, boardLeft, y+3, helpStyle, helpText)
}

func markerStyle(marker rune) tcell.Style {
	switch marker {
	case engine.WallMarker:
		return wallStyle
	case engine.GoalMarker:
		return goalStyle
	case engine.TheseusMarker:
		return theseusStyle
	case engine.MinotaurMarker:
		return minotaurStyle
	default:
		return tcell.StyleDefault
	}
}

func statusStyle(status engine.Status) tcell.Style {
	switch status {
	case engine.Win:
		return winStyle
	case engine.Lose:
		return loseStyle
	default:
		return tcell.StyleDefault
	}
}

func statusLine(game *engine.Game) string {
	switch game.Status() {
	case engine.Win:
		return fmt.Sprintf("Turn %d: Theseus escaped! Press r to play again.", game.Turns())
	case engine.Lose:
		return fmt.Sprintf("Turn %d: caught by the Minotaur. Press r to try again.", game.Turns())
	default:
		return fmt.Sprintf("Turn %d  distance to goal %d  distance to Minotaur %d",
			game.Turns(),
			engine.ManhattanDistance(game.Theseus(), game.Goal()),
			engine.ManhattanDistance(game.Theseus(), game.Minotaur()))
	}
}

func turnMessage(record engine.TurnRecord) string {
	switch {
	case record.Command == engine.Skip:
		return "Theseus waits."
	case !record.PlayerMoved:
		return fmt.Sprintf("Theseus cannot move %s.", record.Command)
	default:
		return fmt.Sprintf("Theseus moves %s.", record.Command)
	}
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
