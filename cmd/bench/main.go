// cmd/bench plays many AI games and reports win rate and tile statistics.
//
//	bench -games 100 -depth 3 -workers 8 -db ./data/app.db -parquet ./out/games.parquet
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/tile2048/assets"
	"github.com/robalobadob/tile2048/internal/autoplay"
	"github.com/robalobadob/tile2048/internal/config"
	"github.com/robalobadob/tile2048/internal/database"
	"github.com/robalobadob/tile2048/internal/export"
	"github.com/robalobadob/tile2048/internal/stats"
)

func main() {
	cfg := config.Load()

	games := flag.Int("games", 20, "Number of games to play")
	depth := flag.Int("depth", cfg.ReplayDepth, "Search depth per move")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Base seed (game i uses a seed derived from it)")
	workers := flag.Int("workers", 4, "Games played concurrently")
	winTile := flag.Int("win", cfg.WinTile, "Tile that ends a game as won")
	maxTurns := flag.Int("max-turns", cfg.ReplayMaxTurns, "Move cap per game (0 = unlimited)")
	dbPath := flag.String("db", "", "Record the run in this SQLite database")
	parquetPath := flag.String("parquet", "", "Export every turn of every game to this Parquet file")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	run := stats.RunConfig{
		Games:    *games,
		Depth:    *depth,
		Seed:     *seed,
		Workers:  *workers,
		WinTile:  *winTile,
		MaxTurns: *maxTurns,
	}

	var pw *export.Writer
	if *parquetPath != "" {
		var err error
		if pw, err = export.NewWriter(*parquetPath); err != nil {
			log.Fatal().Err(err).Msg("failed to create parquet writer")
		}
	}
	run.OnGame = func(i int, h autoplay.History) error {
		log.Info().
			Int("game", i).
			Int("score", h.Final().Score).
			Int("maxTile", h.MaxTile()).
			Int("moves", len(h.Turns)-1).
			Bool("won", h.Won).
			Msg("game finished")
		if pw != nil {
			return pw.WriteGame(h, stats.GameSeed(*seed, i), *depth)
		}
		return nil
	}

	log.Info().Int("games", *games).Int("depth", *depth).Int64("seed", *seed).Int("workers", *workers).Msg("starting run")
	report, err := stats.Run(ctx, run)
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}

	if pw != nil {
		if err := pw.Close(); err != nil {
			log.Fatal().Err(err).Msg("failed to finish parquet file")
		}
		log.Info().Str("path", *parquetPath).Int("rows", pw.Rows()).Int("games", pw.Games()).Msg("parquet written")
	}

	if *dbPath != "" {
		db, err := database.Open(*dbPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open database")
		}
		defer db.Close()
		if err := database.Migrate(db, assets.Migrations()); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
		id, err := stats.NewStore(db).InsertRun(ctx, report)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to record run")
		}
		report.ID = id
		log.Info().Int64("id", id).Str("db", *dbPath).Msg("run recorded")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)
}
