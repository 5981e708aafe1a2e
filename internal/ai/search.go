// internal/ai/search.go
//
// Depth-limited alpha-beta search over the tile game.
//
// The tree alternates between the player (max) choosing one of the four
// slides and "nature" (min) placing a tile on an empty cell. Nature only
// ever places the minimum spawn value.
//
// The tree is implicit: each call receives its own Grid value, so branches
// share nothing and the root moves can be searched concurrently.

package ai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/tile2048/internal/game"
)

// ErrInvalidDepth is returned for negative search depths.
var ErrInvalidDepth = errors.New("invalid search depth")

// pollInterval is how many nodes are visited between context checks.
const pollInterval = 1 << 10

// Searcher chooses moves. The zero value is not usable; call NewSearcher.
type Searcher struct {
	eval     Evaluator
	spawn    int
	parallel bool
	pruning  bool
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithEvaluator replaces the default Heuristic.
func WithEvaluator(e Evaluator) Option {
	return func(s *Searcher) { s.eval = e }
}

// WithSpawnValue sets the tile nature places at min nodes.
func WithSpawnValue(v int) Option {
	return func(s *Searcher) { s.spawn = v }
}

// WithParallelRoot searches each root move in its own goroutine.
func WithParallelRoot(on bool) Option {
	return func(s *Searcher) { s.parallel = on }
}

// WithoutPruning turns the search into plain full-width minimax.
func WithoutPruning() Option {
	return func(s *Searcher) { s.pruning = false }
}

// NewSearcher returns a sequential alpha-beta searcher using the default
// heuristic and the minimum spawn value.
func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{
		eval:    NewHeuristic(),
		spawn:   game.SpawnLow,
		pruning: true,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Result describes one root search.
type Result struct {
	Move    game.Move
	OK      bool                  // false when no legal move exists
	Value   float64               // value of Move; 0 when the search was skipped
	Values  map[game.Move]float64 // per root move; nil when the search was skipped
	Depth   int
	Nodes   uint64
	Cutoffs uint64
	Elapsed time.Duration
}

// ChooseMove returns the best move for g searched to depth plies.
// ok is false when g has no legal move, which callers must treat as game over.
func (s *Searcher) ChooseMove(g game.Grid, depth int) (m game.Move, ok bool, err error) {
	res, err := s.Search(context.Background(), g, depth)
	if err != nil {
		return 0, false, err
	}
	return res.Move, res.OK, nil
}

// Search is ChooseMove with instrumentation and cancellation. ctx is polled
// at node boundaries; a cancelled search returns ctx.Err().
func (s *Searcher) Search(ctx context.Context, g game.Grid, depth int) (Result, error) {
	if err := g.Validate(); err != nil {
		return Result{}, err
	}
	if depth < 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	start := time.Now()
	res := Result{Depth: depth}
	valid := game.ValidMoves(g)
	switch len(valid) {
	case 0:
		return res, nil
	case 1:
		res.Move, res.OK = valid[0], true
		return res, nil
	}

	values := make([]float64, len(valid))
	runs := make([]*run, len(valid))
	if s.parallel {
		eg, egCtx := errgroup.WithContext(ctx)
		for i, m := range valid {
			i, m := i, m
			runs[i] = &run{s: s, ctx: egCtx}
			eg.Go(func() error {
				values[i] = runs[i].root(game.Apply(g, m).Grid, depth)
				return runs[i].err
			})
		}
		if err := eg.Wait(); err != nil {
			return Result{}, err
		}
	} else {
		for i, m := range valid {
			runs[i] = &run{s: s, ctx: ctx}
			values[i] = runs[i].root(game.Apply(g, m).Grid, depth)
			if runs[i].err != nil {
				return Result{}, runs[i].err
			}
		}
	}

	// Strict comparison: ties keep the earliest move in enumeration order.
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}

	res.Move, res.OK, res.Value = valid[best], true, values[best]
	res.Values = make(map[game.Move]float64, len(valid))
	for i, m := range valid {
		res.Values[m] = values[i]
		res.Nodes += runs[i].nodes
		res.Cutoffs += runs[i].cutoffs
	}
	res.Elapsed = time.Since(start)

	log.Debug().
		Int("depth", depth).
		Str("move", res.Move.String()).
		Float64("value", res.Value).
		Uint64("nodes", res.Nodes).
		Uint64("cutoffs", res.Cutoffs).
		Dur("elapsed", res.Elapsed).
		Msg("search")
	return res, nil
}

// Deepen runs Search at depths 1..maxDepth and returns the deepest
// completed result. It stops early once ctx expires, or when the position
// needs no search at all (zero or one legal move).
func (s *Searcher) Deepen(ctx context.Context, g game.Grid, maxDepth int) (Result, error) {
	if maxDepth < 1 {
		return s.Search(ctx, g, maxDepth)
	}
	var best Result
	for d := 1; d <= maxDepth; d++ {
		res, err := s.Search(ctx, g, d)
		if err != nil {
			if d > 1 && ctx.Err() != nil {
				log.Debug().Int("completed", best.Depth).Msg("deepening stopped")
				return best, nil
			}
			return Result{}, err
		}
		best = res
		if res.Values == nil {
			break
		}
	}
	return best, nil
}

// run carries the counters of one root subtree.
type run struct {
	s       *Searcher
	ctx     context.Context
	nodes   uint64
	cutoffs uint64
	err     error
}

// root searches the min node reached after a root move.
func (r *run) root(child game.Grid, depth int) float64 {
	if r.s.pruning {
		return r.alphaBeta(child, depth-1, math.Inf(-1), math.Inf(1), false)
	}
	return r.minimax(child, depth-1, false)
}

func (r *run) visit() bool {
	r.nodes++
	if r.nodes%pollInterval == 0 {
		r.err = r.ctx.Err()
	}
	return r.err == nil
}

func (r *run) alphaBeta(g game.Grid, depth int, alpha, beta float64, maximizing bool) float64 {
	if !r.visit() {
		return 0
	}
	if depth <= 0 || game.IsLose(g) {
		return r.s.eval.Evaluate(g)
	}

	if maximizing {
		for _, m := range game.Moves {
			res := game.Apply(g, m)
			if !res.Valid {
				continue
			}
			alpha = math.Max(alpha, r.alphaBeta(res.Grid, depth-1, alpha, beta, false))
			if r.err != nil {
				return 0
			}
			if beta <= alpha {
				r.cutoffs++
				break
			}
		}
		return alpha
	}

	for _, c := range g.EmptyCells() {
		beta = math.Min(beta, r.alphaBeta(g.Place(c, r.s.spawn), depth-1, alpha, beta, true))
		if r.err != nil {
			return 0
		}
		if beta <= alpha {
			r.cutoffs++
			break
		}
	}
	return beta
}

// minimax is the unpruned reference search.
func (r *run) minimax(g game.Grid, depth int, maximizing bool) float64 {
	if !r.visit() {
		return 0
	}
	if depth <= 0 || game.IsLose(g) {
		return r.s.eval.Evaluate(g)
	}

	if maximizing {
		best := math.Inf(-1)
		for _, m := range game.Moves {
			res := game.Apply(g, m)
			if !res.Valid {
				continue
			}
			best = math.Max(best, r.minimax(res.Grid, depth-1, false))
			if r.err != nil {
				return 0
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, c := range g.EmptyCells() {
		best = math.Min(best, r.minimax(g.Place(c, r.s.spawn), depth-1, true))
		if r.err != nil {
			return 0
		}
	}
	return best
}
