package mines

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Mine is the board value of a mine-bearing cell. Every other cell holds
// the count of its up-to-8 mined neighbors.
const Mine int8 = -1

type GameParams struct {
	Rows         int
	Cols         int
	MineCount    int
	RevealBudget int
}

// Validate rejects parameter sets that cannot produce a playable board.
// This runs once at startup; the engine itself assumes valid params.
func (p GameParams) Validate() error {
	if p.Rows <= 0 || p.Cols <= 0 {
		return fmt.Errorf("grid dimensions must be positive, got %dx%d", p.Rows, p.Cols)
	}
	if p.MineCount <= 0 || p.MineCount >= p.Rows*p.Cols {
		return fmt.Errorf(
			"mine count must be between 1 and %d, got %d",
			p.Rows*p.Cols-1, p.MineCount,
		)
	}
	if p.RevealBudget <= 0 {
		return fmt.Errorf("reveal budget must be positive, got %d", p.RevealBudget)
	}
	return nil
}

func (p GameParams) CellCount() int {
	return p.Rows * p.Cols
}

func (p GameParams) Contains(row, col int) bool {
	return 0 <= row && row < p.Rows && 0 <= col && col < p.Cols
}

func (p GameParams) index(row, col int) int {
	return row*p.Cols + col
}

// The 8 neighbor directions in a fixed order: NW, N, NE, W, E, SW, S, SE.
// Reveal cascades and chord scans depend on this order being stable.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Board is a flat row-major grid of cell values. Immutable once generated.
type Board []int8

// NewBoard places MineCount mines by rejection-sampling uniformly random
// cells, then fills every safe cell with its neighboring mine count. There
// is no first-click safety: any cell may hold a mine.
func NewBoard(params GameParams, rnd *rand.Rand) Board {
	board := make(Board, params.CellCount())

	placed := 0
	for placed < params.MineCount {
		i := rnd.IntN(len(board))
		if board[i] == Mine {
			continue
		}
		board[i] = Mine
		placed++
	}

	fillCounts(board, params)
	return board
}

func fillCounts(board Board, params GameParams) {
	for row := range params.Rows {
		for col := range params.Cols {
			i := params.index(row, col)
			if board[i] == Mine {
				continue
			}
			var count int8
			for _, d := range neighborOffsets {
				r, c := row+d[0], col+d[1]
				if params.Contains(r, c) && board[params.index(r, c)] == Mine {
					count++
				}
			}
			board[i] = count
		}
	}
}

func (b Board) String(cols int) string {
	var sb strings.Builder
	for i, v := range b {
		if v == Mine {
			sb.WriteByte('*')
		} else {
			sb.WriteByte('0' + byte(v))
		}
		if (i+1)%cols == 0 {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
