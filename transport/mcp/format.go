package mcp

import (
	"fmt"
	"strings"

	"github.com/nilla-moige/Theseus-and-minotaur/game/engine"
	"github.com/nilla-moige/Theseus-and-minotaur/game/service"
)

func formatBoards(boards []*service.BoardInfo) string {
	var result strings.Builder
	result.WriteString("Available Boards:\n\n")
	for _, b := range boards {
		result.WriteString(fmt.Sprintf("• %s (%dx%d, %s)\n", b.Name, b.Height, b.Width, b.Source))
	}
	return result.String()
}

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nBoard: %s\nCreated: %s\nLast Accessed: %s\n\n%s",
		session.ID, session.BoardName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		session.LastAccessedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	// Header
	result.WriteString(fmt.Sprintf("Theseus: %s | Minotaur: %s | Goal: %s | Turns: %d\n",
		state.Theseus, state.Minotaur, state.Goal, state.Turns))
	result.WriteString(fmt.Sprintf("Distance to goal: %d | Distance to Minotaur: %d\n\n",
		state.DistanceToGoal, state.DistanceToMinotaur))

	// Board, framed so leading and trailing open tiles stay visible
	border := "+" + strings.Repeat("-", state.Width) + "+\n"
	result.WriteString(border)
	for _, row := range state.Layout {
		result.WriteString("|" + row + "|\n")
	}
	result.WriteString(border)

	switch state.Status {
	case engine.Win:
		result.WriteString("\nVICTORY! Theseus escaped.")
	case engine.Lose:
		result.WriteString("\nGAME OVER. The Minotaur caught Theseus.")
	default:
		moves := make([]string, 0, len(state.PossibleMoves))
		for _, cmd := range state.PossibleMoves {
			moves = append(moves, cmd.String())
		}
		result.WriteString(fmt.Sprintf("\nPossible moves: %s", strings.Join(moves, ", ")))
	}

	return result.String()
}

func formatTurnResult(result *service.TurnResult) string {
	var b strings.Builder
	b.WriteString(result.Message)
	b.WriteString("\n")

	for _, ev := range result.Events {
		b.WriteString(fmt.Sprintf("• [%s] %s\n", ev.Type, ev.Message))
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Turn History (Page %d/%d) - Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalTurns))

	if history.TotalTurns == 0 {
		b.WriteString("(no turns since the last reset)\n")
		return b.String()
	}
	if len(history.Turns) == 0 {
		b.WriteString("(no turns on this page)\n")
		return b.String()
	}

	for _, turn := range history.Turns {
		b.WriteString(formatTurnLine(turn))
	}
	return b.String()
}

func formatTurnLine(turn engine.TurnRecord) string {
	theseus := "stayed"
	if turn.PlayerMoved {
		theseus = fmt.Sprintf("%s->%s", turn.PlayerFrom, turn.PlayerTo)
	}
	minotaur := "stayed"
	if turn.MinotaurMoved {
		minotaur = fmt.Sprintf("%s->%s", turn.MinotaurFrom, turn.MinotaurTo)
	}
	return fmt.Sprintf("%d. %s | T %s | M %s [%s]\n",
		turn.Number, turn.Command, theseus, minotaur, turn.Status)
}
