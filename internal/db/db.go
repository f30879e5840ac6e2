// Package db opens the Postgres pool behind the call log and follow-up
// repositories.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/lib/pq"

	"github.com/dialpro/apiserver/config"
)

const (
	pingTimeout     = 5 * time.Second
	connMaxIdleTime = 2 * time.Minute
	connMaxLifetime = 30 * time.Minute
	maxIdleConns    = 5
	maxOpenConns    = 25
)

// DSN builds the Postgres connection URL from config. The migrate
// command feeds the same URL to golang-migrate.
func DSN(cfg config.Config) string {
	sslmode := "disable"
	if cfg.Database.UseSSL {
		sslmode = "require"
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", cfg.Database.Host, cfg.Database.Port),
		User:   url.UserPassword(cfg.Database.User, cfg.Database.Password),
		Path:   cfg.Database.DBName,
	}
	q := u.Query()
	q.Set("sslmode", sslmode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Open connects to Postgres with pool tuning and verifies the
// connection before returning it.
func Open(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	conn, err := sql.Open("postgres", DSN(cfg))
	if err != nil {
		return nil, err
	}

	conn.SetConnMaxIdleTime(connMaxIdleTime)
	conn.SetConnMaxLifetime(connMaxLifetime)
	conn.SetMaxIdleConns(maxIdleConns)
	conn.SetMaxOpenConns(maxOpenConns)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}
