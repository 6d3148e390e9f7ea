package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vancomm/minesweeper-bot/internal/mines"
)

// Default game geometry: classic beginner board. The reveal budget caps how
// many cells one cascade may open; 64 covers a full beginner board.
const (
	defaultRows         = 8
	defaultCols         = 8
	defaultMineCount    = 10
	defaultRevealBudget = 64
)

func intEnv(name string, fallback int) (int, error) {
	value, ok := os.LookupEnv(name)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an int, got %q", name, value)
	}
	return n, nil
}

// NewGameParams reads the deployment-fixed game constants. A mine count
// that cannot fit the grid is a configuration fault and fails startup;
// the engine never re-checks it at move time.
func NewGameParams() (mines.GameParams, error) {
	var (
		params mines.GameParams
		err    error
	)
	if params.Rows, err = intEnv("GAME_ROWS", defaultRows); err != nil {
		return params, err
	}
	if params.Cols, err = intEnv("GAME_COLS", defaultCols); err != nil {
		return params, err
	}
	if params.MineCount, err = intEnv("GAME_MINE_COUNT", defaultMineCount); err != nil {
		return params, err
	}
	if params.RevealBudget, err = intEnv("GAME_REVEAL_BUDGET", defaultRevealBudget); err != nil {
		return params, err
	}
	if err := params.Validate(); err != nil {
		return params, fmt.Errorf("invalid game configuration: %w", err)
	}
	return params, nil
}
