package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-bot/internal/config"
	"github.com/vancomm/minesweeper-bot/internal/database"
	"github.com/vancomm/minesweeper-bot/internal/middleware"
	"github.com/vancomm/minesweeper-bot/internal/mines"
	"github.com/vancomm/minesweeper-bot/internal/store"
)

type App struct {
	logger     *slog.Logger
	router     *http.ServeMux
	store      store.Store
	params     mines.GameParams
	migrations fs.FS
}

func New(logger *slog.Logger, migrations fs.FS) *App {
	return &App{
		logger:     logger,
		router:     http.NewServeMux(),
		migrations: migrations,
	}
}

func (a *App) connectStore(ctx context.Context, cfg *config.Storage) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		return store.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case config.BackendPostgres:
		db, _, err := database.ConnectAndMigrate(ctx, a.migrations)
		if err != nil {
			return nil, fmt.Errorf("unable to connect to db: %w", err)
		}
		return store.NewPostgres(db), nil
	case config.BackendSqlite:
		return store.NewSqlite(cfg.SqlitePath)
	case config.BackendMemory:
		return store.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

func (a *App) Start(ctx context.Context) error {
	params, err := config.NewGameParams()
	if err != nil {
		return err
	}
	a.params = params

	storageCfg, err := config.NewStorage()
	if err != nil {
		return err
	}
	st, err := a.connectStore(ctx, storageCfg)
	if err != nil {
		return err
	}
	a.store = st

	a.loadRoutes()

	server := &http.Server{
		Addr: config.Addr(),
		Handler: middleware.Wrap(
			a.router,
			middleware.Metrics(),
			middleware.Logging(a.logger),
		),
	}

	a.logger.Info("server listening",
		slog.String("addr", server.Addr),
		slog.String("backend", string(storageCfg.Backend)),
		slog.Int("rows", params.Rows),
		slog.Int("cols", params.Cols),
		slog.Int("mines", params.MineCount),
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		return server.Shutdown(context.Background())
	})

	return g.Wait()
}
