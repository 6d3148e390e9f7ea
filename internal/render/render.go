// Package render turns a game state into the display payload the chat
// transport forwards to the player: an emoji board plus a status line.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/vancomm/minesweeper-bot/internal/mines"
)

const (
	hiddenCell  = "🟫"
	flaggedCell = "🚩"
	mineCell    = "💥"
)

var numberCells = [9]string{"🟦", "1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣"}

type Payload struct {
	SessionID string `json:"session_id"`
	Board     string `json:"board"`
	Status    string `json:"status"`
	Moves     int    `json:"moves"`
	ElapsedMs int64  `json:"elapsed_ms,omitempty"`
	GameOver  bool   `json:"game_over"`
	Won       bool   `json:"won"`
}

func Game(sessionID string, s *mines.GameState) Payload {
	return Payload{
		SessionID: sessionID,
		Board:     BoardText(s),
		Status:    statusText(s),
		Moves:     s.Moves,
		ElapsedMs: s.Elapsed().Milliseconds(),
		GameOver:  s.GameOver,
		Won:       s.Won,
	}
}

// NoActiveGame is the payload for a cell action with nothing in storage:
// not an error, just a prompt to start over.
func NoActiveGame(sessionID string) Payload {
	return Payload{
		SessionID: sessionID,
		Status:    "no game in progress — send /new to start one",
	}
}

func BoardText(s *mines.GameState) string {
	var sb strings.Builder
	for row := range s.Rows {
		for col := range s.Cols {
			sb.WriteString(cellText(s, row, col))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cellText(s *mines.GameState, row, col int) string {
	i := row*s.Cols + col
	switch {
	case s.Flags[i] && !s.Mask[i]:
		return flaggedCell
	case !s.Mask[i]:
		return hiddenCell
	case s.Board[i] == mines.Mine:
		return mineCell
	default:
		return numberCells[s.Board[i]]
	}
}

func statusText(s *mines.GameState) string {
	elapsed := s.Elapsed().Round(time.Second)
	switch {
	case s.Won:
		return fmt.Sprintf("you win! all %d mines flagged in %s (%d moves)",
			s.MineCount, elapsed, s.Moves)
	case s.GameOver:
		return fmt.Sprintf("boom — that was a mine. %d moves in %s", s.Moves, elapsed)
	default:
		return fmt.Sprintf("%d mines to find, %d moves so far", s.MineCount, s.Moves)
	}
}
