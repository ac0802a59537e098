package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"dutyfree-pos/internal/config"
	"dutyfree-pos/internal/db"
	"dutyfree-pos/internal/export"
	"dutyfree-pos/internal/logx"
	"dutyfree-pos/internal/repository/journal"
)

const dateLayout = "2006-01-02"

func main() {
	var (
		fromFlag string
		toFlag   string
		outPath  string
	)
	today := time.Now().Format(dateLayout)
	flag.StringVar(&fromFlag, "from", today, "First day to export (YYYY-MM-DD, local time)")
	flag.StringVar(&toFlag, "to", "", "Last day to export, inclusive (defaults to -from)")
	flag.StringVar(&outPath, "out", "", "CSV output file (defaults to stdout)")
	flag.Parse()

	from, err := time.ParseInLocation(dateLayout, fromFlag, time.Local)
	if err != nil {
		flag.Usage()
		os.Exit(2)
	}
	to := from
	if toFlag != "" {
		if to, err = time.ParseInLocation(dateLayout, toFlag, time.Local); err != nil {
			flag.Usage()
			os.Exit(2)
		}
	}
	to = to.AddDate(0, 0, 1)

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logx.NewWithWriter(cfg.AppEnv, os.Stderr).With().Str("app", "journal-export").Logger()
	if !cfg.JournalEnabled() {
		logger.Fatal().Msg("DB_DSN is required")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, "dutyfree-pos/journal-export")
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	var out io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("create output file")
		}
		defer f.Close()
		out = f
	}

	start := time.Now()
	entries, err := export.NewCSVExporter(out, journal.NewPostgres(pool, logger)).Run(ctx, from, to)
	if err != nil {
		logger.Fatal().Err(err).Msg("export failed")
	}

	for _, s := range export.Summarize(entries) {
		logger.Info().Str("currency", s.Currency.String()).Int("sales", s.Sales).Int("failed", s.Failed).
			Str("subtotal", s.Subtotal.String()).Str("tax", s.TaxAmount.String()).Str("total", s.Total.String()).
			Msg("summary")
	}
	logger.Info().Int("entries", len(entries)).Dur("took", time.Since(start).Truncate(time.Millisecond)).Msg("journal exported")
}
