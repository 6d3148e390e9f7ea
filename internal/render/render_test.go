package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vancomm/minesweeper-bot/internal/mines"
)

func testState(t *testing.T) *mines.GameState {
	t.Helper()
	params := mines.GameParams{Rows: 2, Cols: 3, MineCount: 1, RevealBudget: 8}
	return &mines.GameState{
		GameParams: params,
		Board:      mines.Board{mines.Mine, 1, 0, 1, 1, 0},
		Mask:       make([]bool, 6),
		Flags:      make([]bool, 6),
		StartedAt:  time.Now(),
	}
}

func TestBoardText(t *testing.T) {
	s := testState(t)
	s.Click(0, 2) // cascades through the zero column

	got := BoardText(s)
	want := "🟫1️⃣🟦\n🟫1️⃣🟦\n"
	assert.Equal(t, want, got)
}

func TestBoardTextFlagsAndMines(t *testing.T) {
	s := testState(t)
	s.Flags[1] = true
	assert.Equal(t, "🟫🚩🟫\n🟫🟫🟫\n", BoardText(s))

	s.Flags[1] = false
	s.Click(0, 0) // mine hit discloses the layout
	assert.True(t, s.GameOver)
	assert.True(t, strings.HasPrefix(BoardText(s), mineCell))
}

func TestStatusText(t *testing.T) {
	s := testState(t)
	p := Game("abc", s)
	assert.Equal(t, "abc", p.SessionID)
	assert.Contains(t, p.Status, "1 mines to find")
	assert.False(t, p.GameOver)

	s.Click(0, 0)
	p = Game("abc", s)
	assert.True(t, p.GameOver)
	assert.False(t, p.Won)
	assert.Contains(t, p.Status, "boom")
}

func TestNoActiveGame(t *testing.T) {
	p := NoActiveGame("xyz")
	assert.Equal(t, "xyz", p.SessionID)
	assert.False(t, p.GameOver)
	assert.Contains(t, p.Status, "no game in progress")
}
