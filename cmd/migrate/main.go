package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jeong-wonho/heremap-start/internal/adapters/postgres"
	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
	"github.com/Jeong-wonho/heremap-start/internal/pkg/config"
	"github.com/Jeong-wonho/heremap-start/internal/pkg/logging"
)

const seedFile = "configs/locations.json"

func main() {
	logging.Setup("info", "text")

	if len(os.Args) < 2 {
		fatal("usage: migrate <up|down|seed>")
	}

	cfg, err := config.Load("heremap-migrate")
	if err != nil {
		fatal("config", "error", err)
	}

	ctx := context.Background()
	db, err := postgres.New(ctx, cfg.Database.DSN(), postgres.PoolOptions{MaxConns: cfg.Database.MaxConns})
	if err != nil {
		fatal("db", "error", err)
	}
	defer db.Close()

	switch os.Args[1] {
	case "up":
		runMigrations(ctx, db.Pool)
		seed(ctx, db)
	case "seed":
		seed(ctx, db)
	case "down":
		if _, err := db.Pool.Exec(ctx, `DROP TABLE IF EXISTS locations`); err != nil {
			fatal("down", "error", err)
		}
		slog.Info("locations table dropped")
	default:
		fatal("unknown command", "command", os.Args[1])
	}
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool) {
	files := []string{
		"migrations/001_locations.sql",
	}

	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			fatal("read migration", "file", f, "error", err)
		}

		if _, err := pool.Exec(ctx, string(data)); err != nil {
			fatal("exec migration", "file", f, "error", err)
		}

		fmt.Printf("OK  %s\n", f)
	}

	slog.Info("all migrations applied")
}

func seed(ctx context.Context, db *postgres.DB) {
	data, err := os.ReadFile(seedFile)
	if err != nil {
		fatal("read seed", "file", seedFile, "error", err)
	}
	var locs []domain.NamedLocation
	if err := json.Unmarshal(data, &locs); err != nil {
		fatal("parse seed", "file", seedFile, "error", err)
	}
	for _, l := range locs {
		if !l.Point().Valid() {
			fatal("invalid seed coordinate", "id", l.ID)
		}
	}

	if err := postgres.NewLocationRepo(db).UpsertBatch(ctx, locs); err != nil {
		fatal("seed locations", "error", err)
	}
	slog.Info("locations seeded", "count", len(locs))
}

func fatal(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}
