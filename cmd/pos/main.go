package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dutyfree-pos/internal/checkout"
	"dutyfree-pos/internal/config"
	"dutyfree-pos/internal/db"
	"dutyfree-pos/internal/domain"
	"dutyfree-pos/internal/httpserver"
	"dutyfree-pos/internal/logx"
	journalrepo "dutyfree-pos/internal/repository/journal"
	tokenrepo "dutyfree-pos/internal/repository/token"
	"dutyfree-pos/internal/salesapi"
	catalogsvc "dutyfree-pos/internal/service/catalog"
	terminalsvc "dutyfree-pos/internal/service/terminal"
	"dutyfree-pos/internal/session"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logx.New(cfg.AppEnv).With().Str("app", "pos").Str("terminal", cfg.TerminalID).Logger()

	ctx := context.Background()

	journalRepo := journalrepo.NewNop()
	var dbPinger httpserver.Pinger
	if cfg.JournalEnabled() {
		dbpool, err := db.Connect(ctx, cfg.DBConnString, "dutyfree-pos/"+cfg.TerminalID)
		if err != nil {
			logger.Fatal().Err(err).Msg("connect to db")
		}
		defer dbpool.Close()
		journalRepo = journalrepo.NewPostgres(dbpool, logger)
		dbPinger = dbpool
	} else {
		logger.Warn().Msg("DB_DSN not set, checkout journal disabled")
	}

	tokenRepo := tokenrepo.NewMemory()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Msg("connect to redis")
		}
		tokenRepo = tokenrepo.NewRedis(rdb)
	}

	client, err := salesapi.New(cfg.SalesAPIURL, cfg.SalesAPITimeout, salesapi.WithLogger(logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("init sales api client")
	}
	sess := session.New(client, tokenRepo, cfg.TerminalID, cfg.SessionTTL, logger)
	client.SetTokenSource(sess)
	client.SetUnauthorizedHook(sess.Invalidate)

	catalogService := catalogsvc.New(client, logger)
	recorder := terminalsvc.NewRecorder(journalRepo, cfg.TerminalID, sess, logger)
	submitter := checkout.NewSubmitter(client, recorder, logger)
	terminalService := terminalsvc.New(cfg.TerminalID, cfg.Currency(), catalogService, submitter, logger)

	sess.Subscribe(terminalService.OnSession)
	sess.Subscribe(func(user *domain.User) {
		if user == nil {
			return
		}
		go func() {
			refreshCtx, cancel := context.WithTimeout(context.Background(), cfg.SalesAPITimeout)
			defer cancel()
			if _, err := terminalService.RefreshCatalog(refreshCtx); err != nil {
				logger.Error().Err(err).Msg("load catalog after login")
			}
		}()
	})

	if err := sess.Init(ctx); err != nil {
		logger.Fatal().Err(err).Msg("resume session")
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Session:  sess,
		Catalog:  catalogService,
		Terminal: terminalService,
		DB:       dbPinger,
	}, cfg.CORSOrigins)
	if err != nil {
		logger.Fatal().Err(err).Msg("init server")
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Str("sales_api", cfg.SalesAPIURL).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		logger.Error().Err(err).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	} else {
		logger.Info().Msg("server stopped")
	}
}
