package ai

import "github.com/robalobadob/tile2048/internal/game"

// Evaluator scores a board from the maximizing player's point of view.
type Evaluator interface {
	Evaluate(g game.Grid) float64
}

// Weights are the coefficients of the static evaluation terms.
type Weights struct {
	Score        float64 `json:"score"`
	Clustering   float64 `json:"clustering"`
	Monotonicity float64 `json:"monotonicity"`
	Empty        float64 `json:"empty"`
}

// DefaultWeights leave the monotonicity and empty-cell terms switched off.
var DefaultWeights = Weights{
	Score:        1.0,
	Clustering:   0.35,
	Monotonicity: 0.0,
	Empty:        0.0,
}

// positionWeights decrease away from the top-left corner.
var positionWeights = game.Grid{
	{16, 15, 14, 13},
	{15, 14, 13, 12},
	{14, 13, 12, 11},
	{13, 12, 11, 10},
}

// clusterWeights grow away from the top-left corner.
var clusterWeights = game.Grid{
	{1, 2, 3, 4},
	{2, 3, 4, 5},
	{3, 4, 5, 6},
	{4, 5, 6, 7},
}

// Heuristic is the corner-building evaluation.
type Heuristic struct {
	Weights Weights
}

// NewHeuristic returns a Heuristic with DefaultWeights.
func NewHeuristic() *Heuristic {
	return &Heuristic{Weights: DefaultWeights}
}

// Evaluate implements Evaluator.
func (h *Heuristic) Evaluate(g game.Grid) float64 {
	w := h.Weights
	return w.Score*float64(positional(g)) -
		w.Clustering*float64(clustering(g)) -
		w.Monotonicity*float64(monotonicity(g)) -
		w.Empty*float64(len(g.EmptyCells()))
}

func positional(g game.Grid) int {
	return weightedSum(g, positionWeights)
}

func clustering(g game.Grid) int {
	return weightedSum(g, clusterWeights)
}

func weightedSum(g, w game.Grid) int {
	s := 0
	for i := 0; i < game.Size; i++ {
		for j := 0; j < game.Size; j++ {
			s += g[i][j] * w[i][j]
		}
	}
	return s
}

// monotonicity sums, per row and per column, the absolute value of the
// summed neighbour differences.
func monotonicity(g game.Grid) int {
	m := 0
	for i := 0; i < game.Size; i++ {
		rowDiff, colDiff := 0, 0
		for j := 0; j < game.Size-1; j++ {
			rowDiff += g[i][j] - g[i][j+1]
			colDiff += g[j][i] - g[j+1][i]
		}
		m += abs(rowDiff) + abs(colDiff)
	}
	return m
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
