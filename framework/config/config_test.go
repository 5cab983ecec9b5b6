package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-container/framework/config"
)

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load("testdata/empty.env")

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"App.Name", cfg.App.Name, "GoContainer"},
		{"App.Env", cfg.App.Env, "local"},
		{"App.Port", cfg.App.Port, "8000"},
		{"DB.Driver", cfg.DB.Driver, "mysql"},
		{"DB.Host", cfg.DB.Host, "127.0.0.1"},
		{"DB.Port", cfg.DB.Port, "3306"},
		{"DB.Username", cfg.DB.Username, "root"},
		{"Mail.Host", cfg.Mail.Host, "localhost"},
		{"Mail.Port", cfg.Mail.Port, 587},
		{"Log.Level", cfg.Log.Level, "info"},
		{"Log.File", cfg.Log.File, "/tmp/app.log"},
		{"Container.Manifest", cfg.Container.Manifest, ""},
		{"Schedule.Heartbeat", cfg.Schedule.Heartbeat, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("APP_NAME", "MyApp")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DATABASE", "mydb")
	t.Setenv("MAIL_PORT", "2525")
	t.Setenv("CONTAINER_MANIFEST", "bindings.yaml")

	cfg := config.Load()

	assert.Equal(t, "MyApp", cfg.App.Name)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "mydb", cfg.DB.Database)
	assert.Equal(t, 2525, cfg.Mail.Port)
	assert.Equal(t, "bindings.yaml", cfg.Container.Manifest)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\nSCHEDULE_HEARTBEAT=*/5 * * * * *\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("SCHEDULE_HEARTBEAT")
	})

	cfg := config.Load(path)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "*/5 * * * * *", cfg.Schedule.Heartbeat)
}

func TestLoad_AppDebug(t *testing.T) {
	t.Setenv("APP_DEBUG", "false")
	assert.False(t, config.Load().App.Debug)

	t.Setenv("APP_DEBUG", "true")
	assert.True(t, config.Load().App.Debug)
}

// ── Get / GetInt / GetBool ───────────────────────────────────────────────────

func TestGet(t *testing.T) {
	t.Setenv("CUSTOM_KEY", "hello")
	assert.Equal(t, "hello", config.Get("CUSTOM_KEY", "default"))

	os.Unsetenv("MISSING_KEY")
	assert.Equal(t, "fallback", config.Get("MISSING_KEY", "fallback"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("SOME_INT", "42")
	assert.Equal(t, 42, config.GetInt("SOME_INT", 0))

	t.Setenv("SOME_INT", "notanint")
	assert.Equal(t, 99, config.GetInt("SOME_INT", 99))
}

func TestGetBool(t *testing.T) {
	for _, val := range []string{"true", "1", "True", "TRUE"} {
		t.Setenv("BOOL_KEY", val)
		assert.True(t, config.GetBool("BOOL_KEY", false), val)
	}

	t.Setenv("BOOL_KEY", "false")
	assert.False(t, config.GetBool("BOOL_KEY", true))

	t.Setenv("BOOL_KEY", "notabool")
	assert.True(t, config.GetBool("BOOL_KEY", true))
}
