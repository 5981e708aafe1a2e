// internal/game/grid.go
//
// Board representation and the transform library.
// Responsibilities:
//   - Grid: a 4x4 value type; 0 is an empty cell.
//   - Transpose / ReverseRows: pure involutions used to reduce all four
//     merge directions to the single left-merge primitive.
//   - Small helpers (empty cells, placement, validation) shared by the
//     oracle, the search and the harnesses.
//
// Grids are arrays, so assignment copies. No function here mutates its input.

package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Size is the board width and height.
const Size = 4

// ErrInvalidGrid is returned for grids with the wrong shape or negative cells.
var ErrInvalidGrid = errors.New("invalid grid")

// Grid is a 4x4 board of tile magnitudes.
type Grid [Size][Size]int

// Cell addresses a single grid position.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// FromRows builds a Grid from a slice-of-rows (e.g. decoded JSON).
// Wrong dimensions or negative values yield ErrInvalidGrid.
func FromRows(rows [][]int) (Grid, error) {
	var g Grid
	if len(rows) != Size {
		return g, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidGrid, Size, len(rows))
	}
	for i, row := range rows {
		if len(row) != Size {
			return g, fmt.Errorf("%w: row %d has %d cells", ErrInvalidGrid, i, len(row))
		}
		copy(g[i][:], row)
	}
	if err := g.Validate(); err != nil {
		return Grid{}, err
	}
	return g, nil
}

// Validate rejects grids holding negative values.
func (g Grid) Validate() error {
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if g[i][j] < 0 {
				return fmt.Errorf("%w: negative value %d at (%d,%d)", ErrInvalidGrid, g[i][j], i, j)
			}
		}
	}
	return nil
}

// Rows returns the grid as freshly allocated slices (JSON friendly).
func (g Grid) Rows() [][]int {
	out := make([][]int, Size)
	for i := range out {
		out[i] = append([]int(nil), g[i][:]...)
	}
	return out
}

// Transpose swaps rows and columns.
func Transpose(g Grid) Grid {
	var out Grid
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			out[j][i] = g[i][j]
		}
	}
	return out
}

// ReverseRows mirrors every row left to right.
func ReverseRows(g Grid) Grid {
	var out Grid
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			out[i][Size-1-j] = g[i][j]
		}
	}
	return out
}

// EmptyCells lists the empty positions in row-major order.
func (g Grid) EmptyCells() []Cell {
	var out []Cell
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if g[i][j] == 0 {
				out = append(out, Cell{Row: i, Col: j})
			}
		}
	}
	return out
}

// HasEmpty reports whether at least one cell is 0.
func (g Grid) HasEmpty() bool {
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if g[i][j] == 0 {
				return true
			}
		}
	}
	return false
}

// Place returns a copy of g with value v at c.
func (g Grid) Place(c Cell, v int) Grid {
	g[c.Row][c.Col] = v
	return g
}

// MaxTile returns the largest value on the board.
func (g Grid) MaxTile() int {
	m := 0
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if g[i][j] > m {
				m = g[i][j]
			}
		}
	}
	return m
}

// String renders the grid as right-aligned columns, '.' for empty cells.
func (g Grid) String() string {
	width := len(strconv.Itoa(g.MaxTile()))
	if width < 1 {
		width = 1
	}
	var b strings.Builder
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			s := "."
			if g[i][j] != 0 {
				s = strconv.Itoa(g[i][j])
			}
			b.WriteString(strings.Repeat(" ", width-len(s)))
			b.WriteString(s)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
