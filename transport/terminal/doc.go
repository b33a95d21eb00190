// Package terminal is a full-screen tcell front end for a single game.
//
// Keys: arrows or w/a/s/d move, space or . skips, r resets, q, Esc or
// Ctrl-C quit. Screen events are polled on a separate goroutine and fed to
// the UI loop over a channel. KeyAction and Draw are pure enough to test
// against tcell's simulation screen.
package terminal
