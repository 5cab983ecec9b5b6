package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the central typed configuration struct.
type Config struct {
	App       AppConfig
	DB        DBConfig
	Mail      MailConfig
	Log       LogConfig
	Container ContainerConfig
	Schedule  ScheduleConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	Port  string
}

type DBConfig struct {
	Driver   string // mysql | postgres | sqlite3
	Host     string
	Port     string
	Database string
	Username string
	Password string
}

type MailConfig struct {
	Host string
	Port int
	From string
}

type LogConfig struct {
	Level string // debug | info | warn | error
	// File receives the application log lines written by services.FileLogger.
	File string
}

type ContainerConfig struct {
	// Manifest is an optional YAML binding manifest applied at boot.
	Manifest string
}

type ScheduleConfig struct {
	// Heartbeat is a cron spec (with seconds) for the heartbeat job; empty disables it.
	Heartbeat string
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "GoContainer"),
			Env:   env("APP_ENV", "local"),
			Debug: envBool("APP_DEBUG", true),
			Port:  env("APP_PORT", "8000"),
		},
		DB: DBConfig{
			Driver:   env("DB_DRIVER", "mysql"),
			Host:     env("DB_HOST", "127.0.0.1"),
			Port:     env("DB_PORT", "3306"),
			Database: env("DB_DATABASE", ""),
			Username: env("DB_USERNAME", "root"),
			Password: env("DB_PASSWORD", ""),
		},
		Mail: MailConfig{
			Host: env("MAIL_HOST", "localhost"),
			Port: GetInt("MAIL_PORT", 587),
			From: env("MAIL_FROM_ADDRESS", ""),
		},
		Log: LogConfig{
			Level: env("LOG_LEVEL", "info"),
			File:  env("LOG_FILE", "/tmp/app.log"),
		},
		Container: ContainerConfig{
			Manifest: env("CONTAINER_MANIFEST", ""),
		},
		Schedule: ScheduleConfig{
			Heartbeat: env("SCHEDULE_HEARTBEAT", ""),
		},
	}
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
