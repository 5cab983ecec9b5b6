package services_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-container/app/services"
	"github.com/km-arc/go-container/framework/config"
	"github.com/km-arc/go-container/framework/container"
	"github.com/km-arc/go-container/framework/database"
)

func newContainer(t *testing.T) *container.Container {
	t.Helper()
	c := container.New()
	require.NoError(t, services.Register(c.Types()))
	return c
}

func bindDatabase(c *container.Container, host string) {
	c.Transient(services.DatabaseConnectionKey, container.Factory(func(_ *container.Container, _ container.Params) (any, error) {
		return database.NewConnection(config.DBConfig{Driver: "mysql", Host: host, Database: "testdb"}), nil
	}))
}

// ── FileLogger ────────────────────────────────────────────────────────────────

func TestFileLogger_WritesFileAndMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l := services.NewFileLogger(path)

	l.Log("Edge case test log entry")
	l.Log("Another test log entry")

	logs := l.Logs()
	require.Len(t, logs, 2)
	assert.True(t, strings.HasSuffix(logs[0], "] Edge case test log entry"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
	assert.Equal(t, path, l.LogFile())
}

func TestFileLogger_UnwritableFile(t *testing.T) {
	l := services.NewFileLogger(filepath.Join(t.TempDir(), "missing", "app.log"))
	l.Log("hello")

	logs := l.Logs()
	require.Len(t, logs, 2)
	assert.Contains(t, logs[1], "log write failed")
}

// ── Container wiring ──────────────────────────────────────────────────────────

func TestResolve_FileLoggerWithoutBinding(t *testing.T) {
	c := newContainer(t)

	l, err := container.Resolve[*services.FileLogger](c, services.FileLoggerKey)
	require.NoError(t, err)
	assert.Equal(t, services.DefaultLogFile, l.LogFile())
}

func TestResolve_UnboundLoggerInterface(t *testing.T) {
	c := newContainer(t)

	_, err := c.Make(services.LoggerKey)
	assert.True(t, container.IsNotInstantiable(err))
}

func TestResolve_UserService(t *testing.T) {
	c := newContainer(t)
	c.Transient(services.LoggerKey, container.TypeRef(services.FileLoggerKey))
	bindDatabase(c, "complex-host")

	users, err := container.Resolve[*services.UserService](c, services.UserServiceKey)
	require.NoError(t, err)

	assert.Equal(t, "UserService", users.ServiceName())
	assert.Equal(t, map[string]string{"host": "complex-host", "database": "testdb"}, users.DatabaseInfo())
	assert.IsType(t, &services.FileLogger{}, users.Logger())
}

func TestResolve_UserServiceCustomName(t *testing.T) {
	c := newContainer(t)
	c.Transient(services.LoggerKey, container.TypeRef(services.FileLoggerKey))
	bindDatabase(c, "test-host")

	users, err := container.ResolveWith[*services.UserService](c, services.UserServiceKey,
		container.Params{"serviceName": "CustomUserService"})
	require.NoError(t, err)
	assert.Equal(t, "CustomUserService", users.ServiceName())
}

func TestResolve_UserServiceWithoutDatabase(t *testing.T) {
	c := newContainer(t)
	c.Transient(services.LoggerKey, container.TypeRef(services.FileLoggerKey))

	_, err := c.Make(services.UserServiceKey)
	require.Error(t, err)

	var ce *container.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, container.KindUnresolvableDependency, ce.Kind)
	assert.Equal(t, "db", ce.Param)
	assert.Equal(t, services.UserServiceKey, ce.Type)

	var inner *container.Error
	require.ErrorAs(t, ce.Cause, &inner)
	assert.Equal(t, "host", inner.Param)
	assert.Equal(t, services.DatabaseConnectionKey, inner.Type)
}

func TestResolve_DatabaseConnectionFromOverrides(t *testing.T) {
	c := newContainer(t)

	conn, err := container.ResolveWith[*database.Connection](c, services.DatabaseConnectionKey, container.Params{
		"host": "localhost", "database": "testdb", "username": "user", "password": "pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "localhost", conn.Host())
	assert.Equal(t, "mysql", conn.Driver())
}

func TestResolve_EmailServiceDefaults(t *testing.T) {
	c := newContainer(t)
	c.Transient(services.LoggerKey, container.TypeRef(services.FileLoggerKey))

	mail, err := container.Resolve[*services.EmailService](c, services.EmailServiceKey)
	require.NoError(t, err)

	host, port := mail.SMTPConfig()
	assert.Equal(t, "localhost", host)
	assert.Equal(t, 587, port)
}

func TestResolve_EmailServiceFactory(t *testing.T) {
	c := newContainer(t)
	c.Singleton(services.LoggerKey, container.TypeRef(services.FileLoggerKey))
	c.Transient(services.EmailServiceKey, container.Factory(func(c *container.Container, _ container.Params) (any, error) {
		logger, err := container.Resolve[services.Logger](c, services.LoggerKey)
		if err != nil {
			return nil, err
		}
		return services.NewEmailService(logger, "smtp.test.com", 587), nil
	}))

	mail, err := container.Resolve[*services.EmailService](c, services.EmailServiceKey)
	require.NoError(t, err)
	host, port := mail.SMTPConfig()
	assert.Equal(t, "smtp.test.com", host)
	assert.Equal(t, 587, port)
}

func TestResolve_EmailServiceWrongOverrideType(t *testing.T) {
	c := newContainer(t)
	c.Transient(services.LoggerKey, container.TypeRef(services.FileLoggerKey))

	_, err := c.MakeWith(services.EmailServiceKey, container.Params{"smtpPort": "587"})
	assert.True(t, container.IsConstructorFailed(err))
}

// ── Services ──────────────────────────────────────────────────────────────────

func TestUserService_CreateAndGet(t *testing.T) {
	logger := services.NewFileLogger(filepath.Join(t.TempDir(), "app.log"))
	users := services.NewUserService(logger, database.NewConnection(config.DBConfig{}), "UserService")

	u := users.CreateUser("edge_case_user", "edge@example.com")
	assert.Equal(t, "edge_case_user", u.Username)
	assert.Positive(t, u.ID)

	next := users.CreateUser("second", "second@example.com")
	assert.Greater(t, next.ID, u.ID)

	got := users.GetUser(7)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "john_doe", got.Username)

	assert.Len(t, logger.Logs(), 5)
}

func TestEmailService_Send(t *testing.T) {
	logger := services.NewFileLogger(filepath.Join(t.TempDir(), "app.log"))
	mail := services.NewEmailService(logger, "localhost", 587)

	require.NoError(t, mail.SendEmail("a@example.com", "hi", "body"))
	assert.Len(t, logger.Logs(), 2)
	assert.Error(t, mail.SendEmail("", "hi", "body"))
}
