package main

import (
	"database/sql"
	"net/http"
	"time"

	"pocket-squeak/internal/adapters/notify"
	pg "pocket-squeak/internal/adapters/storage/postgres"
	"pocket-squeak/internal/platform/config"
	"pocket-squeak/internal/platform/logger"
	"pocket-squeak/internal/router"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.AppName, cfg.LogLevel)

	var db *sql.DB
	if cfg.DatabaseDSN != "" {
		opened, err := pg.Open(cfg.DatabaseDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to postgres")
		}
		db = opened
		log.Info().Msg("using postgres storage")
	} else {
		log.Info().Str("path", cfg.SQLitePath).Msg("using sqlite storage")
	}

	r := router.NewRouter(router.Options{
		DB:         db,
		SQLitePath: cfg.SQLitePath,
		Log:        log,
		Notifier:   notify.NewLogNotifier(log),
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info().Str("addr", cfg.Addr).Msg("starting server")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}
}
