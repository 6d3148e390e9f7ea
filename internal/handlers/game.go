package handlers

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper-bot/internal/middleware"
	"github.com/vancomm/minesweeper-bot/internal/mines"
	"github.com/vancomm/minesweeper-bot/internal/render"
	"github.com/vancomm/minesweeper-bot/internal/store"
)

// GameHandler is the glue between the transport and the engine. Each
// request is one synchronous unit of work: load state, mutate, store,
// render. Nothing is cached between requests, so two concurrent moves on
// the same session race at the storage layer and the later write wins.
type GameHandler struct {
	logger *slog.Logger
	store  store.Store
	params mines.GameParams
	rnd    *rand.Rand
}

func NewGameHandler(
	logger *slog.Logger,
	st store.Store,
	params mines.GameParams,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		logger: logger,
		store:  st,
		params: params,
		rnd:    rnd,
	}
}

// NewGame starts a fresh game for the session, overwriting any game
// already stored under its key. Callers without a session id get a
// generated one back in the payload.
func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	game := mines.NewGame(g.params, g.rnd)

	buf, err := game.Bytes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to encode game state", "error", err)
		return
	}
	if err := g.store.Put(r.Context(), store.GameKey(sessionID), buf); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to store game state", "error", err)
		return
	}

	middleware.GamesStarted.Inc()
	g.logger.Debug("created game", "sessionId", sessionID)
	sendJSONOrLog(w, g.logger, render.Game(sessionID, game))
}

// Click applies one cell action to the session's stored game.
func (g GameHandler) Click(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	key := store.GameKey(sessionID)

	dto, err := ParseClickDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	buf, err := g.store.Get(r.Context(), key)
	if errors.Is(err, store.ErrNotFound) {
		// nothing to do: the player has to ask for a new game first
		sendJSONOrLog(w, g.logger, render.NoActiveGame(sessionID))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to read game state", "error", err)
		return
	}

	game, err := mines.DecodeGameState(buf)
	if err != nil {
		// fatal for this session: drop the stored game and start over
		g.logger.Warn("discarding undecodable game state",
			slog.String("key", key), slog.Any("error", err))
		if err := g.store.Delete(r.Context(), key); err != nil {
			g.logger.Error("unable to delete game state", "error", err)
		}
		sendJSONOrLog(w, g.logger, render.NoActiveGame(sessionID))
		return
	}

	game.Click(dto.Row, dto.Col)
	middleware.MovesHandled.Inc()

	if game.GameOver {
		// terminal games are evicted, the final render still goes out
		outcome := "lost"
		if game.Won {
			outcome = "won"
		}
		middleware.GamesFinished.WithLabelValues(outcome).Inc()
		if err := g.store.Delete(r.Context(), key); err != nil {
			g.logger.Error("unable to evict finished game", "error", err)
		}
	} else {
		buf, err := game.Bytes()
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			g.logger.Error("unable to encode game state", "error", err)
			return
		}
		if err := g.store.Put(r.Context(), key, buf); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			g.logger.Error("unable to store game state", "error", err)
			return
		}
	}

	sendJSONOrLog(w, g.logger, render.Game(sessionID, game))
}

// Fetch renders the session's game without touching it.
func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	buf, err := g.store.Get(r.Context(), store.GameKey(sessionID))
	if errors.Is(err, store.ErrNotFound) {
		sendJSONOrLog(w, g.logger, render.NoActiveGame(sessionID))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to read game state", "error", err)
		return
	}

	game, err := mines.DecodeGameState(buf)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("stored game state does not decode", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, render.Game(sessionID, game))
}
