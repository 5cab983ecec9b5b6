package providers_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/km-arc/go-container/app/providers"
	"github.com/km-arc/go-container/app/services"
	"github.com/km-arc/go-container/framework/app"
	"github.com/km-arc/go-container/framework/config"
	"github.com/km-arc/go-container/framework/container"
)

func newApp(t *testing.T, heartbeat string) *app.Application {
	t.Helper()
	cfg := &config.Config{
		App:      config.AppConfig{Name: "test", Env: "testing"},
		DB:       config.DBConfig{Driver: "mysql", Host: "db.test", Database: "app"},
		Mail:     config.MailConfig{Host: "smtp.test.com", Port: 2525},
		Log:      config.LogConfig{File: filepath.Join(t.TempDir(), "app.log")},
		Schedule: config.ScheduleConfig{Heartbeat: heartbeat},
	}
	a := app.NewWithConfig(cfg, zap.NewNop())
	a.Register(&providers.AppServiceProvider{})
	require.NoError(t, a.Boot())
	return a
}

func TestLogger_SingletonOnConfiguredFile(t *testing.T) {
	a := newApp(t, "")

	l1, err := container.Resolve[*services.FileLogger](a.Container, services.LoggerKey)
	require.NoError(t, err)
	l2, err := container.Resolve[*services.FileLogger](a.Container, services.LoggerKey)
	require.NoError(t, err)

	assert.Same(t, l1, l2)
	assert.Equal(t, a.Config().Log.File, l1.LogFile())
}

func TestUserService_PerRequest(t *testing.T) {
	a := newApp(t, "")

	u1, err := container.Resolve[*services.UserService](a.Container, services.UserServiceKey)
	require.NoError(t, err)
	u2, err := container.Resolve[*services.UserService](a.Container, services.UserServiceKey)
	require.NoError(t, err)
	assert.Same(t, u1, u2)
	assert.Equal(t, "db.test", u1.DatabaseInfo()["host"])

	a.StartNewRequest()
	u3, err := container.Resolve[*services.UserService](a.Container, services.UserServiceKey)
	require.NoError(t, err)
	assert.NotSame(t, u1, u3)
	assert.Same(t, u1.Logger(), u3.Logger())
}

func TestEmailService_TransientFromMailConfig(t *testing.T) {
	a := newApp(t, "")

	m1, err := container.Resolve[*services.EmailService](a.Container, services.EmailServiceKey)
	require.NoError(t, err)
	m2, err := container.Resolve[*services.EmailService](a.Container, services.EmailServiceKey)
	require.NoError(t, err)
	assert.NotSame(t, m1, m2)

	host, port := m1.SMTPConfig()
	assert.Equal(t, "smtp.test.com", host)
	assert.Equal(t, 2525, port)
}

func TestBoot_SchedulesHeartbeat(t *testing.T) {
	assert.Empty(t, newApp(t, "").Scheduler().Jobs())
	assert.Equal(t, []string{"heartbeat"}, newApp(t, "*/30 * * * * *").Scheduler().Jobs())
}

func TestHeartbeat_LogsRequestID(t *testing.T) {
	a := newApp(t, "")

	require.NoError(t, a.Scheduler().Run(context.Background(), "heartbeat", providers.Heartbeat))

	logger := container.MustResolve[*services.FileLogger](a.Container, services.LoggerKey)
	logs := logger.Logs()
	require.Len(t, logs, 1)
	assert.True(t, strings.Contains(logs[0], "heartbeat request_"))
}
