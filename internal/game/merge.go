package game

// MergeResult is the outcome of sliding the whole board in one direction.
type MergeResult struct {
	Grid  Grid
	Valid bool // true iff Grid differs from the input
	Score int  // sum of all tiles created by merges
}

// MergeLeft is the canonical primitive; the other directions are derived
// from it through Transpose and ReverseRows.
//
// Each row is scanned left to right with one pending slot. A second nonzero
// value equal to the pending one merges into their sum and clears the slot;
// an unequal value flushes the pending one and takes its place. A merged
// tile never merges again in the same move: [2,2,2,0] becomes [4,2,0,0].
func MergeLeft(g Grid) MergeResult {
	var out Grid
	score := 0
	for i := 0; i < Size; i++ {
		n := 0
		pending := 0
		for _, v := range g[i] {
			if v == 0 {
				continue
			}
			if pending == 0 {
				pending = v
				continue
			}
			if pending == v {
				out[i][n] = pending + v
				score += pending + v
				pending = 0
			} else {
				out[i][n] = pending
				pending = v
			}
			n++
		}
		if pending != 0 {
			out[i][n] = pending
		}
	}
	return MergeResult{Grid: out, Valid: out != g, Score: score}
}

// MergeRight slides toward the right edge.
func MergeRight(g Grid) MergeResult {
	r := MergeLeft(ReverseRows(g))
	r.Grid = ReverseRows(r.Grid)
	return r
}

// MergeDown slides toward the bottom edge.
func MergeDown(g Grid) MergeResult {
	r := MergeRight(Transpose(g))
	r.Grid = Transpose(r.Grid)
	return r
}

// MergeUp slides toward the top edge.
func MergeUp(g Grid) MergeResult {
	r := MergeLeft(Transpose(g))
	r.Grid = Transpose(r.Grid)
	return r
}

// Apply dispatches to the merge for m. Unknown moves leave the grid
// untouched and report Valid=false.
func Apply(g Grid, m Move) MergeResult {
	switch m {
	case Up:
		return MergeUp(g)
	case Left:
		return MergeLeft(g)
	case Down:
		return MergeDown(g)
	case Right:
		return MergeRight(g)
	}
	return MergeResult{Grid: g}
}
