package daily

import (
	"context"
	"testing"
	"time"

	"github.com/robalobadob/tile2048/assets"
	"github.com/robalobadob/tile2048/internal/database"
)

func TestDateKeyIsUTC(t *testing.T) {
	loc := time.FixedZone("east", 10*3600)
	tm := time.Date(2026, 3, 2, 5, 0, 0, 0, loc) // 2026-03-01 19:00 UTC
	if got := DateKey(tm); got != "2026-03-01" {
		t.Errorf("DateKey = %s", got)
	}
}

func TestSeed(t *testing.T) {
	day := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	later := day.Add(10 * time.Hour)
	if Seed(day, "salt") != Seed(later, "salt") {
		t.Errorf("same day should share a seed")
	}
	if Seed(day, "salt") == Seed(day.AddDate(0, 0, 1), "salt") {
		t.Errorf("consecutive days should differ")
	}
	if Seed(day, "salt") == Seed(day, "pepper") {
		t.Errorf("salt should change the seed")
	}
	if Seed(day, "salt") < 0 {
		t.Errorf("seed should be non-negative")
	}
	long := string(make([]byte, 100))
	_ = Seed(day, long) // must not panic
}

func TestStore(t *testing.T) {
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
	r := Result{Date: "2026-10-19", Seed: 42, Depth: 3, Score: 1200, MaxTile: 128, Moves: 150}
	if err := st.InsertResult(ctx, r); err != nil {
		t.Fatal(err)
	}
	dup := r
	dup.Score = 1
	if err := st.InsertResult(ctx, dup); err != nil {
		t.Fatal(err)
	}
	deeper := r
	deeper.Depth, deeper.Won = 5, true
	if err := st.InsertResult(ctx, deeper); err != nil {
		t.Fatal(err)
	}

	got, err := st.Results(ctx, "2026-10-19")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].Depth != 5 || !got[0].Won || got[1].Score != 1200 {
		t.Errorf("unexpected rows %+v", got)
	}

	none, err := st.Results(ctx, "1999-01-01")
	if err != nil || len(none) != 0 {
		t.Errorf("empty date: %v %v", none, err)
	}
}
