package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/mcdev12/kickoff/go/internal/assets"
	"github.com/mcdev12/kickoff/go/internal/dbconfig"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	// 1) Connect using shared dbconfig
	cfg, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to reach %s: %v\n", cfg.Redacted(), err)
		os.Exit(1)
	}

	// 2) Apply the embedded schema; every statement is idempotent
	if _, err := pool.Exec(ctx, assets.Schema); err != nil {
		fmt.Fprintf(os.Stderr, "apply schema: %v\n", err)
		os.Exit(1)
	}

	// 3) Print summary
	var leagues, teams, venues int
	err = pool.QueryRow(ctx, `
            SELECT
              (SELECT COUNT(*) FROM leagues),
              (SELECT COUNT(*) FROM teams),
              (SELECT COUNT(*) FROM venues)
        `).Scan(&leagues, &teams, &venues)
	if err != nil {
		fmt.Fprintf(os.Stderr, "count rows: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf(
		"Schema applied to %s: %d leagues, %d teams, %d venues\n",
		cfg.Redacted(), leagues, teams, venues,
	)
}
