package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type DBConfig struct {
	DSN          string        `envconfig:"DSN" split_words:"true" required:"true"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" split_words:"true" default:"5s"`
	MaxOpenConns int           `envconfig:"MAX_OPEN_CONNS" split_words:"true" default:"10"`
}

// NewDB opens the Postgres connection backing the domain collaborators.
func NewDB(cfg DBConfig) (*bun.DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	connector := pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithDialTimeout(cfg.DialTimeout),
	)
	sqldb := sql.OpenDB(connector)
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	return bun.NewDB(sqldb, pgdialect.New()), nil
}

// Ping verifies connectivity within the given context.
func Ping(ctx context.Context, db *bun.DB) error {
	return db.PingContext(ctx)
}
