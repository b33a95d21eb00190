// Command theseus plays Theseus and the Minotaur.
//
// It supports several modes:
//  1. "play" (default) – line-based play on stdin/stdout
//  2. "tui" – full-screen terminal play
//  3. "mcp" – an MCP stdio server so AI agents can play
//
// plus board tooling: "boards" lists the available boards, "validate" checks
// board files and "analyze" prints board statistics.
//
// Flags control the boards directory, debug logging and the log format. A
// .env file in the working directory is loaded before flags are read.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/nilla-moige/Theseus-and-minotaur/game/boards"
	"github.com/nilla-moige/Theseus-and-minotaur/game/engine"
	"github.com/nilla-moige/Theseus-and-minotaur/game/service"
	"github.com/nilla-moige/Theseus-and-minotaur/game/session"
	"github.com/nilla-moige/Theseus-and-minotaur/transport/console"
	"github.com/nilla-moige/Theseus-and-minotaur/transport/mcp"
	"github.com/nilla-moige/Theseus-and-minotaur/transport/terminal"
	"github.com/nilla-moige/Theseus-and-minotaur/validate"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "theseus"
)

var errInvalidBoards = errors.New("invalid boards")

// main loads .env, builds the command tree and runs it until done or
// interrupted.
func main() {
	// Load .env file if it exists (ignore error if not found). Other errors
	// are logged once the logger is configured.
	envErr := godotenv.Load()
	if os.IsNotExist(envErr) {
		envErr = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand(envErr).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(1)
	}
}

// app holds what the Before hook sets up for the subcommands
type app struct {
	log     *logrus.Logger
	library *boards.Library
	envErr  error
}

// newCommand builds the root command. Subcommands share the logger and board
// library configured in Before. A non-nil envErr is logged as a warning
// there.
func newCommand(envErr error) *cli.Command {
	a := &app{log: logrus.New(), envErr: envErr}

	return &cli.Command{
		Name:      AppName,
		Usage:     "Guide Theseus out of the labyrinth before the Minotaur catches him",
		Version:   Version,
		ArgsUsage: "[board]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "boards-dir",
				Usage:   "directory of extra board files (*.txt), overriding built-ins with the same name",
				Sources: cli.EnvVars("BOARDS_DIR"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("DEBUG"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "text",
				Usage:   "log format: text or json",
				Sources: cli.EnvVars("LOG_FORMAT"),
			},
		},
		Before: a.before,
		Action: a.play,
		Commands: []*cli.Command{
			{
				Name:      "play",
				Usage:     "play on the console, one command per line (default)",
				ArgsUsage: "[board]",
				Action:    a.play,
			},
			{
				Name:      "tui",
				Usage:     "play full-screen in the terminal",
				ArgsUsage: "[board]",
				Action:    a.tui,
			},
			{
				Name:  "mcp",
				Usage: "serve the game as MCP tools over stdio",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:    "session-ttl",
						Value:   24 * time.Hour,
						Usage:   "remove sessions not used for this long",
						Sources: cli.EnvVars("SESSION_TTL"),
					},
					&cli.DurationFlag{
						Name:    "cleanup-interval",
						Value:   time.Hour,
						Usage:   "how often to look for expired sessions",
						Sources: cli.EnvVars("SESSION_CLEANUP_INTERVAL"),
					},
				},
				Action: a.mcp,
			},
			{
				Name:   "boards",
				Usage:  "list the available boards",
				Action: a.boards,
			},
			{
				Name:      "validate",
				Usage:     "check board files",
				ArgsUsage: "<file>...",
				Action:    a.validate,
			},
			{
				Name:      "analyze",
				Usage:     "print statistics about boards",
				ArgsUsage: "<board or file>...",
				Action:    a.analyze,
			},
		},
	}
}

func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if err := configureLogger(a.log, errWriter(cmd), cmd.Bool("debug"), cmd.String("log-format")); err != nil {
		return ctx, err
	}
	if a.envErr != nil {
		a.log.WithError(a.envErr).Warn("failed to load .env file")
	}

	library, err := boards.NewLibrary(cmd.String("boards-dir"))
	if err != nil {
		return ctx, fmt.Errorf("failed to load boards: %w", err)
	}
	a.library = library

	a.log.WithFields(logrus.Fields{
		"version":    Version,
		"boards_dir": cmd.String("boards-dir"),
		"default":    library.DefaultName(),
	}).Debug("starting")
	return ctx, nil
}

// configureLogger sets the logger's output, level and formatter
func configureLogger(logger *logrus.Logger, out io.Writer, debug bool, format string) error {
	logger.SetOutput(out)

	logger.SetLevel(logrus.InfoLevel)
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	switch strings.ToLower(format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q (expected text or json)", format)
	}
	return nil
}

// newGame starts a game on the board named by the first argument, or the
// default board
func (a *app) newGame(cmd *cli.Command) (*engine.Game, string, error) {
	name := cmd.Args().First()
	if name == "" {
		name = a.library.DefaultName()
	}
	game, err := a.library.NewGame(name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load board %q: %w", name, err)
	}
	return game, strings.TrimSuffix(name, boards.Extension), nil
}

func (a *app) play(ctx context.Context, cmd *cli.Command) error {
	game, name, err := a.newGame(cmd)
	if err != nil {
		return err
	}

	out := writer(cmd)
	fmt.Fprintf(out, "Theseus and the Minotaur: %s\n", name)

	player := console.NewPlayer(reader(cmd), out, a.log.WithField("board", name))
	status, err := player.Play(ctx, game)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	a.logFinished(name, status, game.Turns())
	return nil
}

func (a *app) tui(ctx context.Context, cmd *cli.Command) error {
	game, name, err := a.newGame(cmd)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}

	ui := terminal.New(screen, game, name, a.log.WithField("board", name))
	status, err := ui.Run(ctx)
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	a.logFinished(name, status, game.Turns())
	return nil
}

func (a *app) logFinished(board string, status engine.Status, turns int) {
	a.log.WithFields(logrus.Fields{
		"board":  board,
		"status": status.String(),
		"turns":  turns,
	}).Info("game finished")
}

func (a *app) mcp(ctx context.Context, cmd *cli.Command) error {
	sessions := session.NewManager()
	gameService := service.NewGameService(sessions, a.library, a.log)
	server := mcp.NewServer(gameService, Version, a.log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go sessionCleanupRoutine(ctx, sessions, cmd.Duration("cleanup-interval"), cmd.Duration("session-ttl"), a.log)

	a.log.Info("MCP stdio server ready")
	if err := server.Listen(ctx, reader(cmd), writer(cmd)); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within maxAge, until ctx is done
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval, maxAge time.Duration, log logrus.FieldLogger) {
	if interval <= 0 || maxAge <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(maxAge); removed > 0 {
				log.WithField("removed", removed).Info("cleaned up expired sessions")
			}
		}
	}
}

func (a *app) boards(ctx context.Context, cmd *cli.Command) error {
	list, err := a.library.ListBoards()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(writer(cmd), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tSOURCE\t")
	for _, b := range list {
		name := b.Name
		if name == a.library.DefaultName() {
			name += " (default)"
		}
		fmt.Fprintf(w, "%s\t%dx%d\t%s\t\n", name, b.Height, b.Width, b.Source)
	}
	return w.Flush()
}

func (a *app) validate(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return errors.New("no board files given")
	}

	out := writer(cmd)
	invalid := 0
	for _, file := range files {
		result := validate.File(file)
		if result.Valid {
			fmt.Fprintf(out, "✅ %s\n", result.File)
		} else {
			invalid++
			fmt.Fprintf(out, "❌ %s\n", result.File)
		}
		for _, msg := range result.Messages {
			fmt.Fprintf(out, "   %s\n", msg)
		}
	}

	fmt.Fprintf(out, "\n%d of %d board files valid\n", len(files)-invalid, len(files))
	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalidBoards, invalid, len(files))
	}
	return nil
}

func (a *app) analyze(ctx context.Context, cmd *cli.Command) error {
	names := cmd.Args().Slice()
	if len(names) == 0 {
		names = []string{a.library.DefaultName()}
	}

	out := writer(cmd)
	for _, name := range names {
		text, err := a.boardText(name)
		if err != nil {
			return err
		}

		analysis, err := validate.Analyze(text)
		if err != nil {
			return fmt.Errorf("failed to analyze %s: %w", name, err)
		}

		fmt.Fprintf(out, "\n=== Analyzing %s ===\n", name)
		analysis.Write(out)
	}
	return nil
}

// boardText reads name as a file when it exists, otherwise from the library
func (a *app) boardText(name string) (string, error) {
	if strings.ContainsAny(name, `/\`) || filepath.Ext(name) == boards.Extension {
		if data, err := os.ReadFile(name); err == nil {
			return string(data), nil
		}
	}

	board, err := a.library.Load(filepath.Base(name))
	if err != nil {
		return "", fmt.Errorf("failed to load board %q: %w", name, err)
	}
	return board.Text, nil
}

func reader(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}

func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
