// Package console plays a game over plain line-based input and output.
//
// Each round the board is printed, a command is read from one line of input
// and one turn is played. Unknown input is reported and the prompt repeats.
// The loop ends on a win or loss, on q/quit, at end of input, or when the
// context is cancelled.
package console
