// Package database provides a lazily opened SQL connection configured from
// config.DBConfig. Supported drivers: mysql, postgres and sqlite3.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"sync"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/km-arc/go-container/framework/config"
)

// Connection holds connection settings and opens the pool on first use.
type Connection struct {
	cfg config.DBConfig

	mu sync.Mutex
	db *sql.DB
}

// NewConnection stores the settings; nothing is dialled until Connect.
func NewConnection(cfg config.DBConfig) *Connection {
	return &Connection{cfg: cfg}
}

func (c *Connection) Driver() string   { return c.cfg.Driver }
func (c *Connection) Host() string     { return c.cfg.Host }
func (c *Connection) Database() string { return c.cfg.Database }

// DSN renders the driver-specific data source name.
func (c *Connection) DSN() (string, error) {
	switch c.cfg.Driver {
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = c.cfg.Username
		mc.Passwd = c.cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.cfg.Host, c.cfg.Port)
		mc.DBName = c.cfg.Database
		mc.ParseTime = true
		return mc.FormatDSN(), nil
	case "postgres":
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.cfg.Username, c.cfg.Password),
			Host:     net.JoinHostPort(c.cfg.Host, c.cfg.Port),
			Path:     "/" + c.cfg.Database,
			RawQuery: "sslmode=disable",
		}
		return u.String(), nil
	case "sqlite3":
		if c.cfg.Database == "" {
			return ":memory:", nil
		}
		return c.cfg.Database, nil
	default:
		return "", fmt.Errorf("database: unsupported driver %q", c.cfg.Driver)
	}
}

// Connect opens and pings the pool once; later calls return the same pool.
func (c *Connection) Connect(ctx context.Context) (*sql.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db, nil
	}

	dsn, err := c.DSN()
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(c.cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", c.cfg.Driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: ping %s: %w", c.cfg.Driver, err)
	}
	c.db = db
	return db, nil
}

// Close closes the pool if it was opened.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}
