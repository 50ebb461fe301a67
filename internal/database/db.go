// Package database opens connections to the customer databases being
// profiled. The service keeps no database of its own.
package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectionParams carries per-request connection settings. They are used
// for the duration of one extraction and never persisted.
type ConnectionParams struct {
	DBType   string `json:"db_type" binding:"required,oneof=postgresql"`
	Host     string `json:"host" binding:"required"`
	Port     int    `json:"port" binding:"required"`
	Database string `json:"database" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	SSLMode  string `json:"ssl_mode"`
}

// URL builds a postgres:// connection string with properly escaped
// credentials and database name.
func (p ConnectionParams) URL() string {
	sslMode := p.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}
	userInfo := url.UserPassword(p.Username, p.Password)
	return fmt.Sprintf(
		"postgres://%s@%s:%d/%s?sslmode=%s",
		userInfo.String(),
		p.Host,
		p.Port,
		url.PathEscape(p.Database),
		sslMode,
	)
}

// Connect opens a small pool against the target database and verifies the
// connection with a ping before returning it.
func Connect(ctx context.Context, params ConnectionParams) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(params.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	config.MaxConns = 4
	config.MaxConnLifetime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}
