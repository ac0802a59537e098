package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"dutyfree-pos/internal/config"
	"dutyfree-pos/internal/db"
	"dutyfree-pos/internal/logx"
	"dutyfree-pos/internal/migrate"
)

func main() {
	down := flag.Bool("down", false, "Revert the most recent migration instead of applying")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logx.New(cfg.AppEnv).With().Str("app", "migrate").Logger()
	if !cfg.JournalEnabled() {
		logger.Fatal().Msg("DB_DSN is required")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, "dutyfree-pos/migrate")
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	if *down {
		err = migrate.Rollback(ctx, pool)
	} else {
		err = migrate.Apply(ctx, pool)
	}
	if err != nil {
		logger.Fatal().Err(err).Bool("down", *down).Msg("migrate")
	}

	version, dirty, err := migrate.Version(ctx, pool)
	if err != nil {
		logger.Fatal().Err(err).Msg("read schema version")
	}
	logger.Info().Uint("version", version).Bool("dirty", dirty).Msg("migrations applied")
}
