package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/robalobadob/tile2048/internal/autoplay"
	"github.com/robalobadob/tile2048/internal/game"
	"github.com/robalobadob/tile2048/internal/replay"
)

func session(id string) *replay.Session {
	h := autoplay.History{Turns: []autoplay.Turn{{Grid: game.Grid{{2, 2}}}}}
	return replay.New(id, replay.ModeRandom, 1, 3, h)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	if _, err := st.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	s := session("a")
	if err := st.Save(ctx, s); err != nil {
		t.Fatal(err)
	}
	got, err := st.Get(ctx, "a")
	if err != nil || got != s {
		t.Fatalf("Get = %p, %v", got, err)
	}

	if err := st.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("session still present after Delete")
	}
	if err := st.Delete(ctx, "a"); err != nil {
		t.Errorf("deleting twice: %v", err)
	}
}

func TestMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i%8))
			_ = st.Save(ctx, session(id))
			_, _ = st.Get(ctx, id)
		}(i)
	}
	wg.Wait()
	if st.Len() != 8 {
		t.Errorf("Len = %d, want 8", st.Len())
	}
}
