package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/mcdev12/kickoff/go/internal/dbconfig"
	"github.com/rs/zerolog/log"
)

// setupDatabase opens the pool without pinging it. Reachability is checked by
// the bulk driver so that an unreachable store is reported as a fatal run error.
func setupDatabase(cfg dbconfig.Config) (*sql.DB, error) {
	database, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	log.Info().Str("database", cfg.Redacted()).Msg("database configured")
	return database, nil
}

// dbHealth adapts *sql.DB to the Ping(ctx) health check
type dbHealth struct {
	db *sql.DB
}

func (h dbHealth) Ping(ctx context.Context) error {
	return h.db.PingContext(ctx)
}
