package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-container/framework/config"
	"github.com/km-arc/go-container/framework/container"
	"github.com/km-arc/go-container/framework/logging"
	"github.com/km-arc/go-container/framework/providers"
	"github.com/km-arc/go-container/framework/routing"
	"github.com/km-arc/go-container/framework/schedule"
)

const shutdownTimeout = 10 * time.Second

// Application is the top-level application. It embeds the Container and the
// ProviderRegistry so user code can call app.Bind(), app.Singleton() and
// app.Register() directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// New loads configuration from envFiles (default ".env"), builds the logger
// and bootstraps the application.
func New(envFiles ...string) (*Application, error) {
	cfg := config.Load(envFiles...)
	logger, err := logging.New(cfg.Log, cfg.App.Debug)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, logger), nil
}

// NewWithConfig bootstraps the application from an existing configuration.
func NewWithConfig(cfg *config.Config, logger *zap.Logger) *Application {
	c := container.New(container.WithLogger(logger))
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
	}

	registry.Register(&providers.ConfigServiceProvider{Config: cfg})
	registry.Register(&providers.LogServiceProvider{})
	registry.Register(&providers.RoutingServiceProvider{})
	registry.Register(&providers.ScheduleServiceProvider{})
	registry.Register(&providers.DatabaseServiceProvider{})

	return app
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot applies the binding manifest (if configured) and runs the Boot phase
// of every provider. The manifest goes last among registrations so it can
// override provider bindings.
func (a *Application) Boot() error {
	if a.Providers.Booted() {
		return nil
	}
	if path := a.Config().Container.Manifest; path != "" {
		m, err := container.LoadManifestFile(path)
		if err != nil {
			return err
		}
		if err := m.Apply(a.Container); err != nil {
			return fmt.Errorf("app: apply manifest %s: %w", path, err)
		}
		a.Logger().Info("binding manifest applied", zap.String("path", path), zap.Int("bindings", len(m.Bindings)))
	}
	a.Providers.Boot()
	return nil
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.MustResolve[*config.Config](a.Container, providers.ConfigKey)
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.MustResolve[*routing.Router](a.Container, providers.RouterKey)
}

// Scheduler resolves *schedule.Scheduler from the container.
func (a *Application) Scheduler() *schedule.Scheduler {
	return container.MustResolve[*schedule.Scheduler](a.Container, providers.ScheduleKey)
}

// Run boots the application (if needed), starts the scheduler and serves HTTP
// on APP_PORT until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if err := a.Boot(); err != nil {
		return err
	}
	cfg := a.Config()
	logger := a.Logger()

	scheduler := a.Scheduler()
	scheduler.Start()

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("app", cfg.App.Name),
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case err := <-errCh:
		if err != nil {
			serveErr = fmt.Errorf("app: serve: %w", err)
			logger.Error("server failed", zap.Error(err))
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	err := errors.Join(serveErr, srv.Shutdown(shutdownCtx), scheduler.Stop(shutdownCtx))
	_ = logger.Sync()
	return err
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
