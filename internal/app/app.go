package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/doplab/jobfinder/internal/config"
	"github.com/doplab/jobfinder/internal/logger"
	"github.com/doplab/jobfinder/internal/state"
	"github.com/doplab/jobfinder/internal/store"
)

// App is the dependency container for the CLI application.
type App struct {
	Store      *store.Store
	State      *state.State
	Config     *config.Config
	Logger     *zap.Logger
	HTTPClient *http.Client
}

// NewApp initializes configuration, the database, the logger and the
// in-memory projection.
func NewApp(ctx context.Context) (*App, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg := config.AppConfig

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	proj := state.New(st, log, state.PublishRule(cfg.Offer.PublishRule))
	if err := proj.Load(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	return &App{
		Store:  st,
		State:  proj,
		Config: cfg,
		Logger: log,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Close closes all resources.
func (a *App) Close() error {
	if a.Logger != nil {
		a.Logger.Sync()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
