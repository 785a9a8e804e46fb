package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/movies-etl/internal/data/db"
	"github.com/yungbote/movies-etl/internal/observability"
	"github.com/yungbote/movies-etl/internal/pkg/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Repos    Repos
	Services Services

	store        *db.Service
	otelShutdown func(context.Context) error
}

func New(ctx context.Context, ov Overrides) (*App, error) {
	logMode := strings.TrimSpace(ov.LogMode)
	if logMode == "" {
		logMode = os.Getenv("LOG_MODE")
	}
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log).Apply(ov)

	shutdown := observability.InitOTel(ctx, log, cfg.Otel)

	store, err := db.Open(log, cfg.DB)
	if err != nil {
		_ = shutdown(ctx)
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}

	reposet := wireRepos(store.DB(), log)
	serviceset, err := wireServices(store, log, reposet, nil)
	if err != nil {
		_ = store.Close()
		_ = shutdown(ctx)
		log.Sync()
		return nil, err
	}

	return &App{
		Log:          log,
		DB:           store.DB(),
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		store:        store,
		otelShutdown: shutdown,
	}, nil
}

// Close releases the database handle, the storage client and the tracer provider.
// It is safe to call more than once.
func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Services.Opener != nil {
		if err := a.Services.Opener.Close(); err != nil {
			a.Log.Warn("Closing source opener failed", "error", err)
		}
		a.Services.Opener = nil
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.Log.Warn("Closing database failed", "error", err)
		}
		a.store = nil
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("Flushing traces failed", "error", err)
		}
		cancel()
		a.otelShutdown = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
