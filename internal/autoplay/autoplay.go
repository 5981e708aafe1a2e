// internal/autoplay/autoplay.go
//
// Turn-by-turn game harness.
// Responsibilities:
//   - Ask a Player for a move once per turn with the authoritative grid.
//   - Apply the move through game.Game (merge + random spawn).
//   - Record every state so services can replay or export the game.
//   - Stop on "no move", a lost board, the win tile, or a turn cap.

package autoplay

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/robalobadob/tile2048/internal/ai"
	"github.com/robalobadob/tile2048/internal/game"
)

// Player picks the next move. ok=false means the player sees no legal move.
type Player interface {
	NextMove(ctx context.Context, g game.Grid) (m game.Move, ok bool, err error)
}

// SearchPlayer plays with the alpha-beta searcher at a fixed depth.
type SearchPlayer struct {
	Searcher *ai.Searcher
	Depth    int
}

// NextMove implements Player.
func (p SearchPlayer) NextMove(ctx context.Context, g game.Grid) (game.Move, bool, error) {
	res, err := p.Searcher.Search(ctx, g, p.Depth)
	if err != nil {
		return 0, false, err
	}
	return res.Move, res.OK, nil
}

// Turn is one recorded state. Move is nil for the initial state.
type Turn struct {
	Grid  game.Grid
	Score int
	Move  *game.Move
}

// History is a played game.
type History struct {
	GameID string
	Turns  []Turn
	Won    bool
}

// Final returns the last recorded turn.
func (h History) Final() Turn { return h.Turns[len(h.Turns)-1] }

// MaxTile returns the largest tile on the final board.
func (h History) MaxTile() int { return h.Final().Grid.MaxTile() }

// Options tune a single game.
type Options struct {
	WinTile     int  // 0 means game.DefaultWinTile
	KeepPlaying bool // continue after reaching WinTile
	MaxTurns    int  // 0 means unlimited
}

// Play runs one game to completion.
func Play(ctx context.Context, p Player, rng *rand.Rand, opts Options) (History, error) {
	g := game.NewGame(rng, game.WithWinTile(opts.WinTile))
	h := History{
		GameID: g.ID,
		Turns:  []Turn{{Grid: g.Board(), Score: g.Score()}},
	}

	for {
		if g.Won() {
			h.Won = true
			if !opts.KeepPlaying {
				break
			}
		}
		if g.Over() {
			break
		}
		if opts.MaxTurns > 0 && g.Moves() >= opts.MaxTurns {
			break
		}
		if err := ctx.Err(); err != nil {
			return h, err
		}

		m, ok, err := p.NextMove(ctx, g.Board())
		if err != nil {
			return h, fmt.Errorf("turn %d: %w", g.Moves(), err)
		}
		if !ok {
			break
		}
		if _, moved := g.Step(m); !moved {
			return h, fmt.Errorf("turn %d: player chose invalid move %v", g.Moves(), m)
		}
		h.Turns = append(h.Turns, Turn{Grid: g.Board(), Score: g.Score(), Move: &m})
	}
	return h, nil
}
