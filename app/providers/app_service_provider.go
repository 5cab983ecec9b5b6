// Package providers wires the example services into the container.
package providers

import (
	"context"

	"go.uber.org/zap"

	"github.com/km-arc/go-container/app/services"
	"github.com/km-arc/go-container/framework/config"
	"github.com/km-arc/go-container/framework/container"
	fwproviders "github.com/km-arc/go-container/framework/providers"
	"github.com/km-arc/go-container/framework/schedule"
)

// AppServiceProvider registers the service descriptors and their bindings:
//
//   - Logger        → FileLogger writing to LOG_FILE (singleton)
//   - UserService   → self (per-request)
//   - EmailService  → factory using the mail config (transient)
//
// The database connection comes from the framework's deferred
// DatabaseServiceProvider.
type AppServiceProvider struct {
	container.BaseProvider
}

func (p *AppServiceProvider) Register(app *container.Container) {
	if err := services.Register(app.Types()); err != nil {
		// Descriptors are static; a failure here is a programming error.
		panic(err)
	}

	app.Singleton(services.LoggerKey, container.Factory(func(c *container.Container, _ container.Params) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, fwproviders.ConfigKey)
		if err != nil {
			return nil, err
		}
		return c.MakeWith(services.FileLoggerKey, container.Params{"logFile": cfg.Log.File})
	}))

	app.PerRequest(services.UserServiceKey, nil)

	app.Transient(services.EmailServiceKey, container.Factory(func(c *container.Container, _ container.Params) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, fwproviders.ConfigKey)
		if err != nil {
			return nil, err
		}
		logger, err := container.Resolve[services.Logger](c, services.LoggerKey)
		if err != nil {
			return nil, err
		}
		return services.NewEmailService(logger, cfg.Mail.Host, cfg.Mail.Port), nil
	}))
}

// Boot schedules the heartbeat job when SCHEDULE_HEARTBEAT is set.
func (p *AppServiceProvider) Boot(app *container.Container) {
	cfg := container.MustResolve[*config.Config](app, fwproviders.ConfigKey)
	if cfg.Schedule.Heartbeat == "" {
		return
	}

	scheduler := container.MustResolve[*schedule.Scheduler](app, fwproviders.ScheduleKey)
	if err := scheduler.Call("heartbeat", cfg.Schedule.Heartbeat, Heartbeat); err != nil {
		app.Logger().Warn("heartbeat not scheduled", zap.Error(err))
	}
}

// Heartbeat writes one line to the application log from a fresh request.
func Heartbeat(_ context.Context, c *container.Container) error {
	logger, err := container.Resolve[services.Logger](c, services.LoggerKey)
	if err != nil {
		return err
	}
	logger.Log("heartbeat " + c.RequestID())
	return nil
}
