// cmd/play is an interactive terminal 2048 with an AI hint and autoplay.
//
//	play -depth 4 -seed 1
package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/tile2048/internal/ai"
	"github.com/robalobadob/tile2048/internal/config"
)

func main() {
	cfg := config.Load()

	depth := flag.Int("depth", 4, "Search depth for hints and autoplay")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Tile spawn seed")
	winTile := flag.Int("win", cfg.WinTile, "Tile that counts as a win")
	interval := flag.Duration("interval", 150*time.Millisecond, "Delay between autoplay moves")
	flag.Parse()

	// The TUI owns stdout; keep search logs out of the way.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	s := ai.NewSearcher(ai.WithParallelRoot(true))
	m := newModel(rand.New(rand.NewSource(*seed)), s, *depth, *winTile, *interval)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal().Err(err).Msg("play exited")
	}
}
