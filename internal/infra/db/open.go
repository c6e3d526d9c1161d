// Package db opens relational store connections and applies the development schema.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"content-api/pkg/config"
)

// Supported values for the driver argument of Open.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// sqlDriverName maps our driver names onto registered database/sql drivers.
func sqlDriverName(driver string) (string, error) {
	switch driver {
	case DriverPostgres, "pgx":
		return "pgx", nil
	case DriverSQLite, "sqlite3":
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Open creates and configures a connection pool and verifies it with a ping.
// driver is "postgres" or "sqlite"; dsn is passed to the underlying driver unchanged.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("open %s: empty DSN", driver)
	}
	name, err := sqlDriverName(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	cfg := getConnectionConfigFromEnv()
	if name == "sqlite3" {
		// single writer; one long-lived connection keeps in-memory databases alive
		cfg.MaxOpenConns = 1
		cfg.MaxIdleConns = 1
		cfg.ConnMaxLifetime = 0
		cfg.ConnMaxIdleTime = 0
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.String("driver", driver),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	slog.Info("database connection established successfully", slog.String("driver", driver))
	return db, nil
}

// getConnectionConfigFromEnv reads connection pool configuration from environment variables.
// Non-positive values fall back to the defaults.
func getConnectionConfigFromEnv() ConnectionConfig {
	cfg := DefaultConnectionConfig()

	if v := config.GetEnvInt("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns); v > 0 {
		cfg.MaxOpenConns = v
	}
	if v := config.GetEnvInt("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns); v > 0 {
		cfg.MaxIdleConns = v
	}
	if v := config.GetEnvDuration("DB_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime); v > 0 {
		cfg.ConnMaxLifetime = v
	}
	if v := config.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", cfg.ConnMaxIdleTime); v > 0 {
		cfg.ConnMaxIdleTime = v
	}

	return cfg
}
