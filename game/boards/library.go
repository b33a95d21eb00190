package boards

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/nilla-moige/Theseus-and-minotaur/game/engine"
	"github.com/nilla-moige/Theseus-and-minotaur/game/service"
)

// Extension is the file suffix of board files
const Extension = ".txt"

// DefaultBoard is the board used when no name is given
const DefaultBoard = "classic"

var (
	ErrBoardNotFound = errors.New("board not found")
	ErrInvalidBoard  = errors.New("invalid board")
)

//go:embed builtin/*.txt
var builtinFS embed.FS

const builtinDir = "builtin"

// Board is a validated board definition
type Board struct {
	Name     string
	Filename string
	Source   string
	Text     string
	Height   int
	Width    int
	Layout   []string
}

// Info describes the board for listings
func (b *Board) Info() *service.BoardInfo {
	return &service.BoardInfo{
		Name:     b.Name,
		Filename: b.Filename,
		Source:   b.Source,
		Height:   b.Height,
		Width:    b.Width,
	}
}

// Library handles board loading and caching. Boards come from the built-in
// set, overlaid by an optional directory of board files.
type Library struct {
	dir          string
	defaultBoard *Board
	boards       map[string]*Board
	mu           sync.RWMutex
}

// NewLibrary creates a board library. An empty dir means built-in boards only.
func NewLibrary(dir string) (*Library, error) {
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("boards directory does not exist: %s", dir)
			}
			return nil, fmt.Errorf("failed to stat boards directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("boards path is not a directory: %s", dir)
		}
	}

	l := &Library{
		dir:    dir,
		boards: make(map[string]*Board),
	}

	if err := l.loadDefaultBoard(); err != nil {
		return nil, fmt.Errorf("failed to load default board: %w", err)
	}

	return l, nil
}

// Load loads a board by name. The .txt suffix is optional.
func (l *Library) Load(name string) (*Board, error) {
	name = strings.TrimSuffix(name, Extension)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, ErrBoardNotFound
	}

	l.mu.RLock()
	// Check cache first
	if board, exists := l.boards[name]; exists {
		l.mu.RUnlock()
		return board, nil
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if board, exists := l.boards[name]; exists {
		return board, nil
	}

	board, err := l.readBoard(name)
	if err != nil {
		return nil, err
	}

	l.boards[name] = board
	return board, nil
}

// NewGame parses a fresh game from the named board
func (l *Library) NewGame(name string) (*engine.Game, error) {
	board, err := l.Load(name)
	if err != nil {
		return nil, err
	}
	return engine.Parse(board.Text)
}

// Info returns the details and layout of the named board
func (l *Library) Info(name string) (*service.BoardInfo, error) {
	board, err := l.Load(name)
	if err != nil {
		return nil, err
	}
	info := board.Info()
	info.Layout = append([]string(nil), board.Layout...)
	return info, nil
}

// ListBoards returns information about all valid boards, sorted by name.
// Invalid board files are skipped.
func (l *Library) ListBoards() ([]*service.BoardInfo, error) {
	names, err := l.names()
	if err != nil {
		return nil, err
	}

	boards := make([]*service.BoardInfo, 0, len(names))
	for _, name := range names {
		board, err := l.Load(name)
		if err != nil {
			continue
		}
		boards = append(boards, board.Info())
	}

	return boards, nil
}

// Default returns the default board
func (l *Library) Default() *Board {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.defaultBoard
}

// DefaultName returns the name of the default board
func (l *Library) DefaultName() string {
	return l.Default().Name
}

// SetDefault sets the default board by name
func (l *Library) SetDefault(name string) error {
	board, err := l.Load(name)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.defaultBoard = board
	return nil
}

// RefreshCache drops all cached boards so the next Load rereads them
func (l *Library) RefreshCache() error {
	l.mu.Lock()
	defaultName := ""
	if l.defaultBoard != nil {
		defaultName = l.defaultBoard.Name
	}
	l.boards = make(map[string]*Board)
	l.mu.Unlock()

	if defaultName != "" {
		if err := l.SetDefault(defaultName); err == nil {
			return nil
		}
	}
	return l.loadDefaultBoard()
}

// loadDefaultBoard picks classic, falling back to the first valid board
func (l *Library) loadDefaultBoard() error {
	board, err := l.Load(DefaultBoard)
	if err != nil {
		names, listErr := l.names()
		if listErr != nil {
			return listErr
		}
		for _, name := range names {
			if board, err = l.Load(name); err == nil {
				break
			}
		}
		if board == nil {
			return fmt.Errorf("no valid boards available: %w", err)
		}
	}

	l.mu.Lock()
	l.defaultBoard = board
	l.mu.Unlock()
	return nil
}

// readBoard reads and validates a board, preferring the directory over the
// built-in set. Callers hold l.mu.
func (l *Library) readBoard(name string) (*Board, error) {
	filename := name + Extension
	source := service.SourceDirectory

	var data []byte
	var err error
	if l.dir != "" {
		data, err = os.ReadFile(filepath.Join(l.dir, filename))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read board file: %w", err)
		}
	}
	if l.dir == "" || err != nil {
		source = service.SourceBuiltin
		data, err = fs.ReadFile(builtinFS, path.Join(builtinDir, filename))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, ErrBoardNotFound
			}
			return nil, fmt.Errorf("failed to read built-in board: %w", err)
		}
	}

	game, err := engine.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidBoard, filename, err)
	}

	return &Board{
		Name:     name,
		Filename: filename,
		Source:   source,
		Text:     string(data),
		Height:   game.Grid().Height(),
		Width:    game.Grid().Width(),
		Layout:   game.Rows(),
	}, nil
}

// names lists board names from both sources, deduplicated and sorted
func (l *Library) names() ([]string, error) {
	seen := make(map[string]bool)

	entries, err := fs.ReadDir(builtinFS, builtinDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read built-in boards: %w", err)
	}
	if l.dir != "" {
		dirEntries, err := os.ReadDir(l.dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read boards directory: %w", err)
		}
		entries = append(entries, dirEntries...)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		seen[strings.TrimSuffix(entry.Name(), Extension)] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
