package game

// ValidMoves returns the directions that change the board, in enumeration order.
func ValidMoves(g Grid) []Move {
	out := make([]Move, 0, len(Moves))
	for _, m := range Moves {
		if Apply(g, m).Valid {
			out = append(out, m)
		}
	}
	return out
}

// IsLose reports a full board with no horizontally or vertically adjacent
// equal pair, i.e. a position with no legal move.
func IsLose(g Grid) bool {
	if g.HasEmpty() {
		return false
	}
	for i := 0; i < Size; i++ {
		for j := 0; j < Size-1; j++ {
			if g[i][j] == g[i][j+1] || g[j][i] == g[j+1][i] {
				return false
			}
		}
	}
	return true
}
