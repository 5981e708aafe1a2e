// internal/stats/harness.go
//
// Statistics harness: play the AI repeatedly and report how it does.
// Games run concurrently; each game draws its tiles from its own RNG seeded
// from RunConfig.Seed and the game index, so a run is reproducible whatever
// the worker count.

package stats

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/tile2048/internal/ai"
	"github.com/robalobadob/tile2048/internal/autoplay"
)

// RunConfig describes one harness run.
type RunConfig struct {
	Games    int
	Depth    int
	Seed     int64
	Workers  int // <= 0 means one game at a time
	WinTile  int
	MaxTurns int

	// OnGame, when set, is called with each finished game. Calls are
	// serialized but arrive in completion order.
	OnGame func(index int, h autoplay.History) error
}

// Report summarizes a run.
type Report struct {
	ID        int64         `json:"id,omitempty"`
	Games     int           `json:"games"`
	Depth     int           `json:"depth"`
	Seed      int64         `json:"seed"`
	Wins      int           `json:"wins"`
	WinRate   float64       `json:"winRate"`
	AvgScore  float64       `json:"avgScore"`
	BestScore int           `json:"bestScore"`
	BestTile  int           `json:"bestTile"`
	MaxTiles  map[int]int   `json:"maxTiles"` // max tile → games
	Elapsed   time.Duration `json:"elapsedNs"`
	CreatedAt string        `json:"createdAt,omitempty"`
}

// Tiles returns the histogram keys in ascending order.
func (r Report) Tiles() []int {
	out := make([]int, 0, len(r.MaxTiles))
	for t := range r.MaxTiles {
		out = append(out, t)
	}
	sort.Ints(out)
	return out
}

// GameSeed derives the seed of game i.
func GameSeed(base int64, i int) int64 {
	return base*1_000_003 + int64(i)
}

// Run plays cfg.Games games with the alpha-beta searcher.
func Run(ctx context.Context, cfg RunConfig) (Report, error) {
	if cfg.Games <= 0 {
		return Report{}, errors.New("games must be positive")
	}
	if cfg.Depth < 0 {
		return Report{}, ai.ErrInvalidDepth
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()
	player := autoplay.SearchPlayer{Searcher: ai.NewSearcher(), Depth: cfg.Depth}
	opts := autoplay.Options{WinTile: cfg.WinTile, MaxTurns: cfg.MaxTurns}

	histories := make([]autoplay.History, cfg.Games)
	done := make(chan int)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	collected := make(chan error, 1)
	go func() {
		var err error
		for i := range done {
			if err == nil && cfg.OnGame != nil {
				err = cfg.OnGame(i, histories[i])
			}
		}
		collected <- err
	}()

	for i := 0; i < cfg.Games; i++ {
		i := i
		eg.Go(func() error {
			rng := rand.New(rand.NewSource(GameSeed(cfg.Seed, i)))
			h, err := autoplay.Play(egCtx, player, rng, opts)
			if err != nil {
				return err
			}
			histories[i] = h
			log.Debug().Int("game", i).Int("score", h.Final().Score).Int("maxTile", h.MaxTile()).Bool("won", h.Won).Msg("game finished")
			done <- i
			return nil
		})
	}
	err := eg.Wait()
	close(done)
	if cbErr := <-collected; err == nil {
		err = cbErr
	}
	if err != nil {
		return Report{}, err
	}

	rep := Summarize(histories)
	rep.Depth, rep.Seed = cfg.Depth, cfg.Seed
	rep.Elapsed = time.Since(start)
	return rep, nil
}

// Summarize aggregates finished games.
func Summarize(histories []autoplay.History) Report {
	rep := Report{Games: len(histories), MaxTiles: map[int]int{}}
	total := 0
	for _, h := range histories {
		final := h.Final()
		total += final.Score
		if h.Won {
			rep.Wins++
		}
		if final.Score > rep.BestScore {
			rep.BestScore = final.Score
		}
		tile := h.MaxTile()
		rep.MaxTiles[tile]++
		if tile > rep.BestTile {
			rep.BestTile = tile
		}
	}
	if rep.Games > 0 {
		rep.WinRate = float64(rep.Wins) / float64(rep.Games)
		rep.AvgScore = float64(total) / float64(rep.Games)
	}
	return rep
}
