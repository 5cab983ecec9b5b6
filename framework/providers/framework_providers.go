package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-container/framework/config"
	"github.com/km-arc/go-container/framework/container"
	"github.com/km-arc/go-container/framework/database"
	"github.com/km-arc/go-container/framework/routing"
	"github.com/km-arc/go-container/framework/schedule"
)

// Abstracts bound by the framework providers.
const (
	ConfigKey    = "config"
	LogKey       = "log"
	RouterKey    = "router"
	ScheduleKey  = "schedule"
	DatabaseKey  = "db"
	DatabaseType = "DatabaseConnection"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the loaded configuration as a direct instance.
//
// Bound abstracts:
//   - "config"  → *config.Config
type ConfigServiceProvider struct {
	container.BaseProvider
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	app.Instance(ConfigKey, p.Config)
}

// ── LogServiceProvider ────────────────────────────────────────────────────────

// LogServiceProvider exposes the container's zap logger.
//
// Bound abstracts:
//   - "log"  → *zap.Logger
type LogServiceProvider struct {
	container.BaseProvider
}

func (p *LogServiceProvider) Register(app *container.Container) {
	app.Instance(LogKey, app.Logger())
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Bound abstracts:
//   - "router"  → *routing.Router
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton(RouterKey, container.Factory(func(c *container.Container, _ container.Params) (any, error) {
		logger, err := container.Resolve[*zap.Logger](c, LogKey)
		if err != nil {
			return nil, err
		}
		return routing.New(c, logger), nil
	}))
}

// ── ScheduleServiceProvider ───────────────────────────────────────────────────

// ScheduleServiceProvider registers the cron scheduler.
//
// Bound abstracts:
//   - "schedule"  → *schedule.Scheduler
type ScheduleServiceProvider struct {
	container.BaseProvider
}

func (p *ScheduleServiceProvider) Register(app *container.Container) {
	app.Singleton(ScheduleKey, container.Factory(func(c *container.Container, _ container.Params) (any, error) {
		logger, err := container.Resolve[*zap.Logger](c, LogKey)
		if err != nil {
			return nil, err
		}
		return schedule.New(c, logger), nil
	}))
}

// ── DatabaseServiceProvider ───────────────────────────────────────────────────

// DatabaseServiceProvider is deferred: the connection is only configured the
// first time something resolves it.
//
// Bound abstracts:
//   - "db", "DatabaseConnection"  → *database.Connection (one shared instance)
type DatabaseServiceProvider struct {
	container.BaseProvider
}

func (p *DatabaseServiceProvider) Register(app *container.Container) {
	app.Singleton(DatabaseKey, container.Factory(func(c *container.Container, _ container.Params) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, ConfigKey)
		if err != nil {
			return nil, err
		}
		return database.NewConnection(cfg.DB), nil
	}))
	app.Singleton(DatabaseType, container.Factory(func(c *container.Container, _ container.Params) (any, error) {
		return c.Make(DatabaseKey)
	}))
}

func (p *DatabaseServiceProvider) IsDeferred() bool { return true }

func (p *DatabaseServiceProvider) Provides() []string {
	return []string{DatabaseKey, DatabaseType}
}
