package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/nilla-moige/Theseus-and-minotaur/game/engine"
	"github.com/sirupsen/logrus"
)

const prompt = "Move (w/a/s/d, up/down/left/right, skip, q to quit): "

// Player drives a game over line-oriented input and output
type Player struct {
	in  io.Reader
	out io.Writer
	log logrus.FieldLogger
}

// NewPlayer creates a console player. A nil logger discards all output.
func NewPlayer(in io.Reader, out io.Writer, log logrus.FieldLogger) *Player {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Player{in: in, out: out, log: log}
}

// Play runs the game until it is won or lost, the player quits, input runs
// out or ctx is done. It returns the status the game was left in.
func (p *Player) Play(ctx context.Context, game *engine.Game) (engine.Status, error) {
	done := make(chan struct{})
	defer close(done)
	lines, readErr := p.readLines(done)

	redraw := true
	for {
		if redraw {
			p.show(game)
		}
		if game.IsOver() {
			p.announce(game.Status())
			return game.Status(), nil
		}
		fmt.Fprint(p.out, prompt)

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(p.out)
			return game.Status(), ctx.Err()
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(p.out)
				if err := <-readErr; err != nil {
					return game.Status(), fmt.Errorf("failed to read input: %w", err)
				}
				return game.Status(), nil
			}
			line = l
		}

		if isQuit(line) {
			fmt.Fprintln(p.out, "Bye.")
			return game.Status(), nil
		}

		cmd, ok := engine.ParseCommand(line)
		if !ok {
			fmt.Fprintf(p.out, "Unknown command %q.\n", strings.TrimSpace(line))
			redraw = false
			continue
		}

		record := game.Turn(cmd)
		p.log.WithFields(logrus.Fields{
			"command":  cmd.String(),
			"turn":     record.Number,
			"theseus":  record.PlayerTo.String(),
			"minotaur": record.MinotaurTo.String(),
			"status":   record.Status.String(),
		}).Debug("turn played")
		redraw = true
	}
}

// readLines scans p.in on its own goroutine so a blocked read never holds up
// cancellation. readErr receives the scanner error before lines is closed.
func (p *Player) readLines(done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(p.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()
	return lines, readErr
}

func (p *Player) show(game *engine.Game) {
	fmt.Fprintf(p.out, "\nTurn %d\n", game.Turns())
	fmt.Fprint(p.out, game.Render())
}

func (p *Player) announce(status engine.Status) {
	switch status {
	case engine.Win:
		fmt.Fprintln(p.out, "Theseus escaped the labyrinth!")
	case engine.Lose:
		fmt.Fprintln(p.out, "The Minotaur caught Theseus.")
	}
}

func isQuit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "q", "quit", "exit":
		return true
	}
	return false
}
