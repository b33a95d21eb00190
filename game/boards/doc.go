// Package boards provides the board library used to start new games.
//
// Boards are plain text files in the engine's board alphabet:
//
//	X  wall
//	T  Theseus' starting tile
//	M  the Minotaur's starting tile
//	G  the goal
//	   (space) open floor
//
// A set of built-in boards (classic, corridor, labyrinth) is compiled into
// the binary. A boards directory may be layered on top; a file there with the
// same name as a built-in board replaces it.
//
// Usage:
//
//	library, err := boards.NewLibrary(os.Getenv("BOARDS_DIR"))
//	if err != nil {
//		return err
//	}
//
//	game, err := library.NewGame("labyrinth")
//
// Validation:
//
// Every board is run through engine.Parse when first loaded. Errors wrap
// ErrInvalidBoard and the underlying *engine.BoardError, so callers can use
// errors.Is and errors.As on either.
package boards
