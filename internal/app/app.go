package app

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"

	"wcgoals/internal/config"
	"wcgoals/internal/service"
	"wcgoals/internal/source"
	"wcgoals/internal/storage"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Out    io.Writer

	// openStore is swapped in tests.
	openStore func(ctx context.Context) (storage.RunStore, func(), error)
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	a := &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger(), Out: os.Stdout}
	a.openStore = a.openPostgres
	return a
}

func (a *App) newService() *service.Service {
	loader := source.NewLoader(source.Options{
		Timeout:   a.Config.Source.RequestTimeout,
		UserAgent: a.Config.Source.UserAgent,
	}, a.Logger)
	return service.New(loader, a.Logger)
}

func (a *App) openPostgres(ctx context.Context) (storage.RunStore, func(), error) {
	if a.Config.Database.DSN == "" {
		return nil, nil, nil
	}

	pool, err := storage.NewPool(ctx, a.Config.Database)
	if err != nil {
		return nil, nil, err
	}

	store := storage.NewStore(pool)
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, nil, err
	}
	return store, store.Close, nil
}

// TestOptions hold parameters for a hypothesis test run.
type TestOptions struct {
	MenSource   string
	WomenSource string
	Alpha       float64
	Format      string
	PlotPath    string
	NoPlot      bool
	CSVPath     string
	NoSave      bool
}

// HistoryOptions configure the history command.
type HistoryOptions struct {
	Limit int
}
