package main

import (
	"database/sql"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/tile2048/assets"
	"github.com/robalobadob/tile2048/internal/config"
	"github.com/robalobadob/tile2048/internal/database"
	"github.com/robalobadob/tile2048/internal/httpserver"
	"github.com/robalobadob/tile2048/internal/store"
)

func main() {
	cfg := config.Load()
	zerolog.SetGlobalLevel(cfg.LogLevel)

	// The replay service works without a database; records are skipped.
	var db *sql.DB
	if cfg.DBPath != "" {
		var err error
		if db, err = database.Open(cfg.DBPath); err != nil {
			log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
		}
		defer db.Close()
		if err := database.Migrate(db, assets.Migrations()); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(cfg, mem, db)
	log.Info().
		Str("port", cfg.Port).
		Int("searchDepth", cfg.SearchDepth).
		Int("replayDepth", cfg.ReplayDepth).
		Msg("starting tile2048 server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
