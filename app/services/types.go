// Package services holds the example application services and their
// constructor descriptors for the container.
package services

import (
	"os"
	"path/filepath"

	"github.com/km-arc/go-container/framework/config"
	"github.com/km-arc/go-container/framework/container"
	"github.com/km-arc/go-container/framework/database"
)

// Abstract keys of the services registered by Register.
const (
	LoggerKey             = "Logger"
	FileLoggerKey         = "FileLogger"
	DatabaseConnectionKey = "DatabaseConnection"
	UserServiceKey        = "UserService"
	EmailServiceKey       = "EmailService"
)

// DefaultLogFile is FileLogger's logFile default.
var DefaultLogFile = filepath.Join(os.TempDir(), "app.log")

// Register adds the services' constructor descriptors to types.
func Register(types *container.Types) error {
	return types.Register(
		container.Interface(LoggerKey),

		container.Define(FileLoggerKey, func(a container.Args) (*FileLogger, error) {
			logFile, err := container.Arg[string](a, "logFile")
			if err != nil {
				return nil, err
			}
			return NewFileLogger(logFile), nil
		}, container.Optional("logFile", DefaultLogFile)),

		container.Define(DatabaseConnectionKey, func(a container.Args) (*database.Connection, error) {
			cfg := config.DBConfig{Driver: "mysql", Port: "3306"}
			var err error
			if cfg.Host, err = container.Arg[string](a, "host"); err != nil {
				return nil, err
			}
			if cfg.Database, err = container.Arg[string](a, "database"); err != nil {
				return nil, err
			}
			if cfg.Username, err = container.Arg[string](a, "username"); err != nil {
				return nil, err
			}
			if cfg.Password, err = container.Arg[string](a, "password"); err != nil {
				return nil, err
			}
			return database.NewConnection(cfg), nil
		},
			container.Primitive("host"),
			container.Primitive("database"),
			container.Primitive("username"),
			container.Primitive("password"),
		),

		container.Define(UserServiceKey, func(a container.Args) (*UserService, error) {
			logger, err := container.Arg[Logger](a, "logger")
			if err != nil {
				return nil, err
			}
			db, err := container.Arg[*database.Connection](a, "db")
			if err != nil {
				return nil, err
			}
			name, err := container.Arg[string](a, "serviceName")
			if err != nil {
				return nil, err
			}
			return NewUserService(logger, db, name), nil
		},
			container.Needs("logger", LoggerKey),
			container.Needs("db", DatabaseConnectionKey),
			container.Optional("serviceName", "UserService"),
		),

		container.Define(EmailServiceKey, func(a container.Args) (*EmailService, error) {
			logger, err := container.Arg[Logger](a, "logger")
			if err != nil {
				return nil, err
			}
			host, err := container.Arg[string](a, "smtpHost")
			if err != nil {
				return nil, err
			}
			port, err := container.Arg[int](a, "smtpPort")
			if err != nil {
				return nil, err
			}
			return NewEmailService(logger, host, port), nil
		},
			container.Needs("logger", LoggerKey),
			container.Optional("smtpHost", "localhost"),
			container.Optional("smtpPort", 587),
		),
	)
}
