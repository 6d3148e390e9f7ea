package mines

import (
	"math/rand/v2"
	"time"

	"github.com/gammazero/deque"
)

// GameState is everything there is to know about one game. It is rehydrated
// from storage at the start of a move, mutated in place, and written back
// when the move completes; nothing holds on to it between moves.
type GameState struct {
	GameParams
	Board     Board
	Mask      []bool // true once a cell has been revealed; never unset
	Flags     []bool // player-asserted mine guesses; only ever set on hidden cells
	GameOver  bool
	Won       bool
	StartedAt time.Time
	EndedAt   time.Time // zero while the game is in progress
	Moves     int
}

func NewGame(params GameParams, rnd *rand.Rand) *GameState {
	return &GameState{
		GameParams: params,
		Board:      NewBoard(params, rnd),
		Mask:       make([]bool, params.CellCount()),
		Flags:      make([]bool, params.CellCount()),
		StartedAt:  time.Now(),
	}
}

// Click handles one cell action. The branch taken is inferred entirely from
// the targeted cell's state:
//
//   - terminal game or out-of-bounds coordinate: no-op
//   - flagged cell: no-op (flags block reveal)
//   - hidden mine: loss transition
//   - hidden safe cell: bounded cascading reveal
//   - revealed numbered cell: chord (safe reveal, mine hit, or auto-flag)
//   - revealed zero cell: no-op
//
// The win check runs after any branch that left the game in progress.
func (s *GameState) Click(row, col int) {
	if s.GameOver || !s.Contains(row, col) {
		return
	}
	i := s.index(row, col)
	switch {
	case s.Flags[i]:
		// no-op
	case !s.Mask[i] && s.Board[i] == Mine:
		s.Moves++
		s.hitMine()
	case !s.Mask[i]:
		s.Moves++
		s.reveal(row, col, s.RevealBudget)
	case s.Board[i] > 0:
		s.chord(row, col)
	}
	if !s.GameOver {
		s.checkWin()
	}
}

// reveal marks cells visible starting at (row, col), expanding through
// zero-valued cells. The explicit work list replicates the recursive flood
// fill depth-first: neighbors of a zero cell are pushed in reverse so that
// NW is visited first. budget is a hard ceiling on cells revealed in this
// call; when it runs out the cascade stops and the rest stays hidden for a
// later click. Returns the budget left over. Callers never point this at a
// mine.
func (s *GameState) reveal(row, col, budget int) int {
	var stack deque.Deque[[2]int]
	stack.PushBack([2]int{row, col})

	for stack.Len() > 0 && budget > 0 {
		cell := stack.PopBack()
		r, c := cell[0], cell[1]
		if !s.Contains(r, c) {
			continue
		}
		i := s.index(r, c)
		if s.Mask[i] || s.Flags[i] {
			continue
		}

		s.Mask[i] = true
		budget--

		if s.Board[i] != 0 {
			continue
		}
		for k := len(neighborOffsets) - 1; k >= 0; k-- {
			d := neighborOffsets[k]
			stack.PushBack([2]int{r + d[0], c + d[1]})
		}
	}
	return budget
}

// chord resolves a click on an already revealed numbered cell. Exactly one
// of two branches may fire. If the player has flagged as many neighbors as
// the number shows, the remaining hidden neighbors are treated as safe: any
// true mine among them loses the game, otherwise each one is revealed with
// its own budget. Failing that, if the count of hidden neighbors exactly
// matches the mines still unaccounted for, they are all flagged. The flag
// branch is a single-cell heuristic, not a solver: it trusts the player's
// existing flags and will happily mis-flag a safe cell if those are wrong.
func (s *GameState) chord(row, col int) {
	value := int(s.Board[s.index(row, col)])

	var (
		flagCount int
		hidden    [][2]int
	)
	for _, d := range neighborOffsets {
		r, c := row+d[0], col+d[1]
		if !s.Contains(r, c) {
			continue
		}
		j := s.index(r, c)
		switch {
		case s.Flags[j]:
			flagCount++
		case !s.Mask[j]:
			hidden = append(hidden, [2]int{r, c})
		}
	}

	if flagCount == value {
		for _, cell := range hidden {
			if s.Board[s.index(cell[0], cell[1])] == Mine {
				s.Moves++
				s.hitMine()
				return
			}
		}
		revealed := 0
		for _, cell := range hidden {
			if s.reveal(cell[0], cell[1], s.RevealBudget) < s.RevealBudget {
				revealed++
			}
		}
		if revealed > 0 {
			s.Moves++
		}
		return
	}

	if len(hidden) > 0 && len(hidden) == value-flagCount {
		for _, cell := range hidden {
			s.Flags[s.index(cell[0], cell[1])] = true
		}
		s.Moves++
	}
}

// hitMine is the loss transition: the game ends and every mine is disclosed,
// flagged or not, so the player sees the full layout.
func (s *GameState) hitMine() {
	s.GameOver = true
	s.EndedAt = time.Now()
	for i, v := range s.Board {
		if v == Mine {
			s.Mask[i] = true
		}
	}
}

// checkWin ends the game as won once every mine is flagged and no safe cell
// is. Revealing all safe cells is not required; a game can be won with most
// of the board still hidden.
func (s *GameState) checkWin() {
	var total, correct int
	for i, flagged := range s.Flags {
		if !flagged {
			continue
		}
		total++
		if s.Board[i] == Mine {
			correct++
		}
	}
	if total == s.MineCount && correct == s.MineCount {
		s.GameOver = true
		s.Won = true
		s.EndedAt = time.Now()
	}
}

// Elapsed is the wall-clock game duration: up to EndedAt for a finished
// game, up to now for one still in progress.
func (s GameState) Elapsed() time.Duration {
	if s.EndedAt.IsZero() {
		return time.Since(s.StartedAt)
	}
	return s.EndedAt.Sub(s.StartedAt)
}
