package stats

import (
	"context"
	"sync"
	"testing"

	"github.com/robalobadob/tile2048/assets"
	"github.com/robalobadob/tile2048/internal/autoplay"
	"github.com/robalobadob/tile2048/internal/database"
	"github.com/robalobadob/tile2048/internal/game"
)

func TestRunIsReproducibleAcrossWorkerCounts(t *testing.T) {
	cfg := RunConfig{Games: 4, Depth: 2, Seed: 11, WinTile: 128}
	seq, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Workers = 4
	par, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if seq.Wins != par.Wins || seq.AvgScore != par.AvgScore || seq.BestTile != par.BestTile {
		t.Errorf("sequential %+v != parallel %+v", seq, par)
	}
	if seq.Games != 4 || seq.Depth != 2 || seq.Seed != 11 {
		t.Errorf("report metadata %+v", seq)
	}
	n := 0
	for _, c := range seq.MaxTiles {
		n += c
	}
	if n != 4 {
		t.Errorf("histogram counts %d games", n)
	}
}

func TestRunCallsOnGameOncePerGame(t *testing.T) {
	var mu sync.Mutex
	seen := map[int]bool{}
	_, err := Run(context.Background(), RunConfig{
		Games: 3, Depth: 1, Seed: 2, Workers: 2, MaxTurns: 30,
		OnGame: func(i int, h autoplay.History) error {
			mu.Lock()
			defer mu.Unlock()
			if seen[i] {
				t.Errorf("game %d reported twice", i)
			}
			seen[i] = true
			if len(h.Turns) == 0 {
				t.Errorf("game %d has no turns", i)
			}
			return nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 3 {
		t.Errorf("saw %d games", len(seen))
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	if _, err := Run(context.Background(), RunConfig{Games: 0, Depth: 2}); err == nil {
		t.Errorf("expected error for zero games")
	}
	if _, err := Run(context.Background(), RunConfig{Games: 1, Depth: -1}); err == nil {
		t.Errorf("expected error for negative depth")
	}
}

func TestSummarize(t *testing.T) {
	mk := func(score int, tile int, won bool) autoplay.History {
		return autoplay.History{Won: won, Turns: []autoplay.Turn{{Grid: game.Grid{{tile}}, Score: score}}}
	}
	rep := Summarize([]autoplay.History{mk(100, 64, false), mk(300, 128, true), mk(200, 64, false), mk(400, 2048, true)})
	if rep.Wins != 2 || rep.WinRate != 0.5 || rep.AvgScore != 250 || rep.BestScore != 400 || rep.BestTile != 2048 {
		t.Errorf("report %+v", rep)
	}
	if rep.MaxTiles[64] != 2 {
		t.Errorf("histogram %v", rep.MaxTiles)
	}
	if tiles := rep.Tiles(); len(tiles) != 3 || tiles[0] != 64 || tiles[2] != 2048 {
		t.Errorf("Tiles() = %v", tiles)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	db, err := database.Open(database.Memory)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if err := database.Migrate(db, assets.Migrations()); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	st := NewStore(db)
	first := Report{Games: 2, Depth: 3, Seed: 1, Wins: 1, WinRate: 0.5, AvgScore: 10, BestScore: 12, BestTile: 2048,
		MaxTiles: map[int]int{1024: 1, 2048: 1}}
	second := Report{Games: 1, Depth: 5, Seed: 2, MaxTiles: map[int]int{512: 1}, BestTile: 512}
	if _, err := st.InsertRun(ctx, first); err != nil {
		t.Fatal(err)
	}
	id, err := st.InsertRun(ctx, second)
	if err != nil {
		t.Fatal(err)
	}

	runs, err := st.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].ID != id || runs[0].Depth != 5 {
		t.Fatalf("runs %+v", runs)
	}
	if runs[1].MaxTiles[2048] != 1 || runs[1].WinRate != 0.5 || runs[1].CreatedAt == "" {
		t.Errorf("first run %+v", runs[1])
	}
}
