// internal/game/engine.go
//
// Game harness for a single played game.
// Responsibilities:
//   - Create new games with two starting tiles.
//   - Apply a move through the merge engine, accumulate score and spawn
//     a new tile after every valid move.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - Spawns pick a uniformly random empty cell; the value is 2 with
//     probability 0.9 and 4 otherwise.
//   - The search never calls into this file. It only sees Grid values.
package game

import (
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand"
)

const (
	// DefaultWinTile is the tile that ends a game as won.
	DefaultWinTile = 2048

	// SpawnLow is the common (and minimum) spawned value.
	SpawnLow = 2
	// SpawnHigh is the rare spawned value.
	SpawnHigh = 4

	spawnHighProb = 0.1
)

// Option configures a Game.
type Option func(*Game)

// WithWinTile overrides the tile value that counts as a win.
func WithWinTile(v int) Option {
	return func(g *Game) {
		if v > 0 {
			g.winTile = v
		}
	}
}

// WithBoard starts the game from a fixed board instead of two random tiles.
func WithBoard(b Grid) Option {
	return func(g *Game) { g.board = b }
}

// NewGame constructs a game. Unless WithBoard is given, two tiles are
// spawned on an empty board.
func NewGame(rng *mrand.Rand, opts ...Option) *Game {
	g := &Game{
		ID:      randomID(),
		winTile: DefaultWinTile,
		rng:     rng,
	}
	for _, o := range opts {
		o(g)
	}
	if g.board == (Grid{}) {
		g.spawn()
		g.spawn()
	}
	return g
}

// Board returns the current board.
func (g *Game) Board() Grid { return g.board }

// Score returns the accumulated merge score.
func (g *Game) Score() int { return g.score }

// Moves returns how many valid moves were applied.
func (g *Game) Moves() int { return g.moves }

// WinTile returns the configured winning tile.
func (g *Game) WinTile() int { return g.winTile }

// Step applies m. On a valid move the score grows by the merge delta and a
// new tile is spawned. Invalid moves leave the game untouched.
func (g *Game) Step(m Move) (gained int, moved bool) {
	res := Apply(g.board, m)
	if !res.Valid {
		return 0, false
	}
	g.board = res.Grid
	g.score += res.Score
	g.moves++
	g.spawn()
	return res.Score, true
}

// Over reports that no legal move remains.
func (g *Game) Over() bool { return IsLose(g.board) }

// Won reports that the win tile has been reached.
func (g *Game) Won() bool { return g.board.MaxTile() >= g.winTile }

// State reports a coarse string representation of the game state.
func (g *Game) State() string {
	switch {
	case g.Won():
		return "won"
	case g.Over():
		return "lost"
	}
	return "playing"
}

// spawn places a new tile on a random empty cell. A full board is left as is.
func (g *Game) spawn() {
	free := g.board.EmptyCells()
	if len(free) == 0 {
		return
	}
	v := SpawnLow
	if g.rng.Float64() < spawnHighProb {
		v = SpawnHigh
	}
	g.board = g.board.Place(free[g.rng.Intn(len(free))], v)
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
