package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/gradecalc/internal/config"
	httpapi "github.com/yungbote/gradecalc/internal/http"
	"github.com/yungbote/gradecalc/internal/observability"
	"github.com/yungbote/gradecalc/internal/platform/logger"
	"github.com/yungbote/gradecalc/internal/store"
)

type App struct {
	Log      *logger.Logger
	Config   *config.Config
	Store    store.Store
	Services Services

	server        *httpapi.Server
	otelShutdown  func(context.Context) error
	closeServices func() error
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: observability.DefaultServiceName,
		Environment: cfg.Env,
		Version:     cfg.Version,
		Telemetry:   cfg.Telemetry,
	})

	log.Info("Opening settings store...", "driver", cfg.Storage.Driver, "profile_key", cfg.Storage.ProfileKey)
	st, err := store.Open(ctx, cfg.Storage, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	serviceset, closeServices, err := wireServices(ctx, log, cfg, st)
	if err != nil {
		_ = st.Close()
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, serviceset)
	serviceName := ""
	if cfg.Telemetry.Enabled {
		serviceName = observability.DefaultServiceName
	}
	server := httpapi.NewServer(httpapi.RouterConfig{
		Log:              log,
		ServiceName:      serviceName,
		CORSOrigins:      cfg.HTTP.CORSOrigins,
		MaxRequestBytes:  cfg.HTTP.MaxRequestBytes,
		StateHandler:     handlerset.State,
		SchemeHandler:    handlerset.Scheme,
		ModuleHandler:    handlerset.Module,
		ResultHandler:    handlerset.Result,
		StatementHandler: handlerset.Statement,
		FeedbackHandler:  handlerset.Feedback,
		HealthHandler:    handlerset.Health,
	}, cfg.HTTP)

	return &App{
		Log:           log,
		Config:        cfg,
		Store:         st,
		Services:      serviceset,
		server:        server,
		otelShutdown:  otelShutdown,
		closeServices: closeServices,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests
// within the configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("HTTP server listening", "addr", a.Config.HTTP.Addr)
		return a.server.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.HTTP.ShutdownTimeout.Duration)
		defer cancel()
		a.Log.Info("HTTP server shutting down")
		return a.server.Shutdown(shutdownCtx)
	})
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.closeServices != nil {
		if err := a.closeServices(); err != nil {
			a.Log.Warn("close services failed", "error", err)
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Log.Warn("close store failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Config.HTTP.ShutdownTimeout.Duration)
		defer cancel()
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	a.Log.Sync()
}
