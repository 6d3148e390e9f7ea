package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-bot/internal/mines"
	"github.com/vancomm/minesweeper-bot/internal/render"
	"github.com/vancomm/minesweeper-bot/internal/store"
)

var testParams = mines.GameParams{Rows: 8, Cols: 8, MineCount: 10, RevealBudget: 64}

func setupServer(t *testing.T) (*httptest.Server, *store.Memory) {
	t.Helper()

	st := store.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	game := NewGameHandler(logger, st, testParams, rand.New(rand.NewPCG(1, 2)))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /game", game.NewGame)
	mux.HandleFunc("GET /game/{id}", game.Fetch)
	mux.HandleFunc("POST /game/{id}/click", game.Click)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, st
}

func doRequest(t *testing.T, method, url string) (int, render.Payload) {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var payload render.Payload
	if res.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	}
	return res.StatusCode, payload
}

// putGame stores a hand-built state so tests control the exact layout.
func putGame(t *testing.T, st store.Store, sessionID string, s *mines.GameState) {
	t.Helper()
	buf, err := s.Bytes()
	require.NoError(t, err)
	require.NoError(t, st.Put(context.Background(), store.GameKey(sessionID), buf))
}

// oneByTwo is the smallest playable game: a mine at 0:0 and a "1" at 0:1.
func oneByTwo() *mines.GameState {
	params := mines.GameParams{Rows: 1, Cols: 2, MineCount: 1, RevealBudget: 8}
	return &mines.GameState{
		GameParams: params,
		Board:      mines.Board{mines.Mine, 1},
		Mask:       make([]bool, 2),
		Flags:      make([]bool, 2),
		StartedAt:  time.Now(),
	}
}

func TestNewGame(t *testing.T) {
	server, st := setupServer(t)

	status, payload := doRequest(t, http.MethodPost, server.URL+"/game?session_id=alice")

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", payload.SessionID)
	assert.False(t, payload.GameOver)
	assert.Zero(t, payload.Moves)

	buf, err := st.Get(context.Background(), store.GameKey("alice"))
	require.NoError(t, err)
	game, err := mines.DecodeGameState(buf)
	require.NoError(t, err)
	assert.Equal(t, testParams, game.GameParams)
}

func TestNewGameGeneratesSessionID(t *testing.T) {
	server, st := setupServer(t)

	status, payload := doRequest(t, http.MethodPost, server.URL+"/game")

	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, payload.SessionID)
	_, err := st.Get(context.Background(), store.GameKey(payload.SessionID))
	assert.NoError(t, err)
}

func TestNewGameOverwritesExisting(t *testing.T) {
	server, st := setupServer(t)

	s := oneByTwo()
	s.Moves = 3
	putGame(t, st, "alice", s)

	_, payload := doRequest(t, http.MethodPost, server.URL+"/game?session_id=alice")
	assert.Zero(t, payload.Moves, "new-game must replace the stored state")
}

func TestClickWithoutGame(t *testing.T) {
	server, _ := setupServer(t)

	status, payload := doRequest(t, http.MethodPost, server.URL+"/game/nobody/click?row=0&col=0")

	require.Equal(t, http.StatusOK, status, "absent game is not an error")
	assert.Contains(t, payload.Status, "no game in progress")
}

func TestClickRejectsBadCoordinates(t *testing.T) {
	server, _ := setupServer(t)

	for _, query := range []string{"", "row=1", "col=1", "row=x&col=1"} {
		status, _ := doRequest(t, http.MethodPost, server.URL+"/game/alice/click?"+query)
		assert.Equal(t, http.StatusBadRequest, status, "query %q must be rejected", query)
	}
}

func TestClickOutOfBoundsIsNoOp(t *testing.T) {
	server, st := setupServer(t)
	putGame(t, st, "alice", oneByTwo())

	status, payload := doRequest(t, http.MethodPost, server.URL+"/game/alice/click?row=5&col=5")

	require.Equal(t, http.StatusOK, status)
	assert.Zero(t, payload.Moves)
	assert.False(t, payload.GameOver)
}

func TestClickDiscardsCorruptState(t *testing.T) {
	server, st := setupServer(t)
	key := store.GameKey("alice")
	require.NoError(t, st.Put(context.Background(), key, []byte("scrambled")))

	status, payload := doRequest(t, http.MethodPost, server.URL+"/game/alice/click?row=0&col=0")

	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, payload.Status, "no game in progress")
	_, err := st.Get(context.Background(), key)
	assert.ErrorIs(t, err, store.ErrNotFound, "corrupt state must be evicted")
}

func TestClickMineEndsAndEvictsGame(t *testing.T) {
	server, st := setupServer(t)
	putGame(t, st, "alice", oneByTwo())

	status, payload := doRequest(t, http.MethodPost, server.URL+"/game/alice/click?row=0&col=0")

	require.Equal(t, http.StatusOK, status)
	assert.True(t, payload.GameOver)
	assert.False(t, payload.Won)

	_, err := st.Get(context.Background(), store.GameKey("alice"))
	assert.ErrorIs(t, err, store.ErrNotFound, "finished game must be evicted")
}

func TestPlayThroughToWin(t *testing.T) {
	server, st := setupServer(t)
	putGame(t, st, "alice", oneByTwo())

	// reveal the numbered cell: state persists between the two moves
	_, payload := doRequest(t, http.MethodPost, server.URL+"/game/alice/click?row=0&col=1")
	require.False(t, payload.GameOver)
	require.Equal(t, 1, payload.Moves)

	// chord on it: the auto-flag heuristic pins the mine and wins the game
	_, payload = doRequest(t, http.MethodPost, server.URL+"/game/alice/click?row=0&col=1")
	assert.True(t, payload.Won)
	assert.True(t, payload.GameOver)
	assert.Equal(t, 2, payload.Moves)

	_, err := st.Get(context.Background(), store.GameKey("alice"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFetchDoesNotMutate(t *testing.T) {
	server, st := setupServer(t)
	putGame(t, st, "alice", oneByTwo())

	status, payload := doRequest(t, http.MethodGet, server.URL+"/game/alice")
	require.Equal(t, http.StatusOK, status)
	assert.Zero(t, payload.Moves)

	buf, err := st.Get(context.Background(), store.GameKey("alice"))
	require.NoError(t, err)
	game, err := mines.DecodeGameState(buf)
	require.NoError(t, err)
	assert.Zero(t, game.Moves)
	assert.False(t, game.GameOver)
}

func TestFetchWithoutGame(t *testing.T) {
	server, _ := setupServer(t)

	status, payload := doRequest(t, http.MethodGet, server.URL+"/game/nobody")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, payload.Status, "no game in progress")
}
