package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/config"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/adapters/backend"
	httpx "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/http"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/observability/metrics"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/observability/statsd"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/ports"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/screens"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/service"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/validation"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/viewmodel"
)

const shutdownWaitTimeout = 10 * time.Second

// AppDeps are optional overrides for infrastructure, used by tests.
type AppDeps struct {
	Redis    redis.UniversalClient
	Backend  ports.Backend
	Sessions ports.SessionStore
}

// App is the wired console.
type App struct {
	cfg      config.AppConfig
	logger   *slog.Logger
	handler  http.Handler
	registry *screens.Registry
	metrics  *statsd.Client
	redis    redis.UniversalClient
	ownRedis bool
}

// NewApp wires the console from cfg. Infrastructure missing from deps is connected here.
func NewApp(ctx context.Context, cfg config.AppConfig, logger *slog.Logger, deps AppDeps) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	app := &App{cfg: cfg, logger: logger, redis: deps.Redis}

	if deps.Sessions == nil && cfg.UsesRedisSessions() && app.redis == nil {
		client, err := ConnectRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		app.redis = client
		app.ownRedis = true
	}
	store := deps.Sessions
	if store == nil {
		store = NewSessionStore(cfg.Session, app.redis)
	}

	b := deps.Backend
	if b == nil {
		client, err := backend.NewClient(backend.Config{
			BaseURL:   cfg.Backend.BaseURL,
			Timeout:   cfg.Backend.Timeout,
			UserAgent: cfg.Backend.UserAgent,
			Logger:    logger,
		})
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("backend client: %w", err)
		}
		b = client
	}

	sink, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Observability.Metrics.IsEnabled(),
		Address: cfg.Observability.Metrics.StatsdAddress,
		Prefix:  cfg.Observability.Metrics.Prefix,
		Logger:  logger,
	})
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("metrics client: %w", err)
	}
	app.metrics = sink

	resolver := service.NewPermissionResolver(service.PermissionResolverOptions{Logger: logger})
	registry, err := screens.NewRegistry(screens.RegistryOptions{
		Deps: screens.Deps{
			Backend:  b,
			Resolver: resolver,
			Binder:   validation.NewBinder(),
			Timing: viewmodel.ScreenTiming{
				SubmitCooldown: cfg.Screens.SubmitCooldown,
				RefreshTimeout: cfg.Screens.RefreshTimeout,
				ToastCapacity:  cfg.Screens.ToastCapacity,
			},
			Logger:   logger,
			Recorder: metrics.NewScreenRecorder(sink),
		},
		Logger: logger,
	})
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("screen registry: %w", err)
	}
	app.registry = registry

	app.handler = httpx.NewRouter(httpx.RouterServices{
		Sessions: service.NewSessionService(service.SessionServiceOptions{
			Sessions: store,
			TTL:      cfg.Session.TTL,
		}),
		Screens:      registry,
		Resolver:     resolver,
		Guard:        service.RouteGuard{LoginPath: cfg.HTTP.LoginPath},
		CookieName:   cfg.Session.CookieName,
		CookieDomain: cfg.HTTP.CookieDomain,
		DevSession:   DevSession(cfg),
		Logger:       logger,
	})
	return app, nil
}

// Handler returns the console's HTTP handler.
func (a *App) Handler() http.Handler { return a.handler }

// Registry returns the screen registry.
func (a *App) Registry() *screens.Registry { return a.registry }

// Run serves HTTP and sweeps idle screens until ctx is canceled, then shuts
// the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	addr := a.cfg.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return a.registry.RunSweeper(gctx, a.cfg.Screens.SweepInterval, a.cfg.Screens.IdleTimeout)
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWaitTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		a.logger.Info("HTTP server stopped")
		return nil
	})

	err := g.Wait()
	a.Close()
	return err
}

// Close releases the registry, metrics and any Redis client the app opened.
func (a *App) Close() {
	if a.registry != nil {
		a.registry.Close()
	}
	if a.metrics != nil {
		if err := a.metrics.Close(); err != nil {
			a.logger.Warn("close metrics client", "error", err)
		}
	}
	if a.ownRedis && a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("close redis failed", "error", err)
		}
		a.redis = nil
	}
}
