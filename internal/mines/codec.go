package mines

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
)

// ErrInvalidState marks a persisted payload that does not decode into a
// structurally valid GameState. Callers should treat the stored game as
// unrecoverable and require a new one.
var ErrInvalidState = errors.New("invalid game state")

// Bytes serializes the state for storage. DecodeGameState(s.Bytes()) is a
// lossless round trip for every state the engine can produce.
func (s GameState) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeGameState restores a state previously produced by [GameState.Bytes].
// Malformed or structurally inconsistent input returns an error wrapping
// [ErrInvalidState]; a partially populated state is never returned.
func DecodeGameState(buf []byte) (*GameState, error) {
	var game GameState
	if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&game); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if err := game.validate(); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s GameState) validate() error {
	if err := s.GameParams.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	n := s.CellCount()
	if len(s.Board) != n || len(s.Mask) != n || len(s.Flags) != n {
		return fmt.Errorf(
			"%w: grid sizes %d/%d/%d do not match %dx%d board",
			ErrInvalidState, len(s.Board), len(s.Mask), len(s.Flags), s.Rows, s.Cols,
		)
	}
	mineCells := 0
	for i, v := range s.Board {
		if v == Mine {
			mineCells++
		} else if v < 0 || v > 8 {
			return fmt.Errorf("%w: cell %d holds impossible value %d", ErrInvalidState, i, v)
		}
		if !s.GameOver && s.Flags[i] && s.Mask[i] {
			return fmt.Errorf("%w: cell %d is both flagged and revealed", ErrInvalidState, i)
		}
	}
	if mineCells != s.MineCount {
		return fmt.Errorf(
			"%w: board holds %d mines, params say %d",
			ErrInvalidState, mineCells, s.MineCount,
		)
	}
	if s.Moves < 0 {
		return fmt.Errorf("%w: negative move count %d", ErrInvalidState, s.Moves)
	}
	if s.Won && !s.GameOver {
		return fmt.Errorf("%w: won game still in progress", ErrInvalidState)
	}
	return nil
}
