package game

import (
	"math/rand"
	"testing"
)

func countTiles(g Grid) int {
	n := 0
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if g[i][j] != 0 {
				n++
			}
		}
	}
	return n
}

func TestNewGameSpawnsTwoTiles(t *testing.T) {
	g := NewGame(rand.New(rand.NewSource(1)))
	if n := countTiles(g.Board()); n != 2 {
		t.Fatalf("expected 2 starting tiles, got %d\n%v", n, g.Board())
	}
	if g.Score() != 0 || g.State() != "playing" {
		t.Errorf("fresh game: score=%d state=%s", g.Score(), g.State())
	}
	if len(g.ID) != 16 {
		t.Errorf("unexpected id %q", g.ID)
	}
}

func TestStepScoresAndSpawns(t *testing.T) {
	start := Grid{{2, 2, 0, 0}}
	g := NewGame(rand.New(rand.NewSource(1)), WithBoard(start))

	gained, moved := g.Step(Left)
	if !moved || gained != 4 {
		t.Fatalf("Step(Left) = %d, %v", gained, moved)
	}
	if g.Score() != 4 || g.Moves() != 1 {
		t.Errorf("score=%d moves=%d", g.Score(), g.Moves())
	}
	if g.Board()[0][0] != 4 {
		t.Errorf("merged tile missing:\n%v", g.Board())
	}
	if n := countTiles(g.Board()); n != 2 {
		t.Errorf("expected merged tile plus one spawn, got %d tiles", n)
	}
}

func TestStepInvalidIsNoop(t *testing.T) {
	start := Grid{{2, 0, 0, 0}}
	g := NewGame(rand.New(rand.NewSource(1)), WithBoard(start))
	if _, moved := g.Step(Left); moved {
		t.Fatalf("left should be invalid")
	}
	if g.Board() != start || g.Moves() != 0 {
		t.Errorf("invalid step changed the game")
	}
}

func TestStates(t *testing.T) {
	won := NewGame(rand.New(rand.NewSource(1)), WithBoard(Grid{{64, 0, 0, 0}}), WithWinTile(64))
	if won.State() != "won" {
		t.Errorf("state = %s, want won", won.State())
	}
	lost := NewGame(rand.New(rand.NewSource(1)), WithBoard(loseGrid))
	if lost.State() != "lost" || !lost.Over() {
		t.Errorf("state = %s, want lost", lost.State())
	}
}

func TestSpawnDistribution(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	fours := 0
	const n = 2000
	for i := 0; i < n; i++ {
		g := &Game{rng: r}
		g.spawn()
		if g.board.MaxTile() == SpawnHigh {
			fours++
		}
	}
	if fours < n/20 || fours > n/5 {
		t.Errorf("4s spawned %d/%d times, expected about 10%%", fours, n)
	}
}
