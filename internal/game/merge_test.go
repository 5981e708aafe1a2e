package game

import (
	"math/rand"
	"testing"
)

func rowGrid(row [Size]int) Grid {
	var g Grid
	g[0] = row
	return g
}

func TestMergeLeftRows(t *testing.T) {
	tests := []struct {
		name      string
		in, want  [Size]int
		valid     bool
		wantScore int
	}{
		{"first pair merges once", [Size]int{2, 2, 2, 0}, [Size]int{4, 2, 0, 0}, true, 4},
		{"no double merge", [Size]int{2, 2, 2, 2}, [Size]int{4, 4, 0, 0}, true, 8},
		{"already left", [Size]int{2, 0, 0, 0}, [Size]int{2, 0, 0, 0}, false, 0},
		{"slide only", [Size]int{0, 2, 0, 0}, [Size]int{2, 0, 0, 0}, true, 0},
		{"gap merge", [Size]int{4, 0, 0, 4}, [Size]int{8, 0, 0, 0}, true, 8},
		{"unequal flush", [Size]int{2, 4, 4, 8}, [Size]int{2, 8, 8, 0}, true, 8},
		{"merged tile stays", [Size]int{4, 4, 8, 0}, [Size]int{8, 8, 0, 0}, true, 8},
		{"non powers of two", [Size]int{3, 3, 5, 5}, [Size]int{6, 10, 0, 0}, true, 16},
		{"empty", [Size]int{}, [Size]int{}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := MergeLeft(rowGrid(tt.in))
			if res.Grid[0] != tt.want {
				t.Errorf("row = %v, want %v", res.Grid[0], tt.want)
			}
			if res.Valid != tt.valid {
				t.Errorf("valid = %v, want %v", res.Valid, tt.valid)
			}
			if res.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", res.Score, tt.wantScore)
			}
		})
	}
}

func TestMergeDirections(t *testing.T) {
	g := Grid{
		{2, 2, 0, 4},
		{0, 2, 0, 4},
		{0, 0, 8, 0},
		{2, 0, 8, 0},
	}
	tests := []struct {
		m     Move
		want  Grid
		score int
	}{
		{Up, Grid{{4, 4, 16, 8}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}, 32},
		{Down, Grid{{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {4, 4, 16, 8}}, 32},
		{Left, Grid{{4, 4, 0, 0}, {2, 4, 0, 0}, {8, 0, 0, 0}, {2, 8, 0, 0}}, 4},
		{Right, Grid{{0, 0, 4, 4}, {0, 0, 2, 4}, {0, 0, 0, 8}, {0, 0, 2, 8}}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.m.String(), func(t *testing.T) {
			res := Apply(g, tt.m)
			if res.Grid != tt.want {
				t.Errorf("grid =\n%vwant\n%v", res.Grid, tt.want)
			}
			if res.Score != tt.score {
				t.Errorf("score = %d, want %d", res.Score, tt.score)
			}
			if !res.Valid {
				t.Errorf("expected valid move")
			}
		})
	}
}

func TestDirectionEquivalence(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for n := 0; n < 1000; n++ {
		g := randomGrid(r)

		up := MergeUp(g)
		viaLeft := MergeLeft(Transpose(g))
		viaLeft.Grid = Transpose(viaLeft.Grid)
		if up != viaLeft {
			t.Fatalf("up != T∘left∘T for\n%v", g)
		}

		down := MergeDown(g)
		viaRight := MergeRight(Transpose(g))
		viaRight.Grid = Transpose(viaRight.Grid)
		if down != viaRight {
			t.Fatalf("down != T∘right∘T for\n%v", g)
		}

		right := MergeRight(g)
		mirrored := MergeLeft(ReverseRows(g))
		mirrored.Grid = ReverseRows(mirrored.Grid)
		if right != mirrored {
			t.Fatalf("right != R∘left∘R for\n%v", g)
		}
	}
}

func TestValidityIsGridChange(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for n := 0; n < 500; n++ {
		g := randomGrid(r)
		for _, m := range Moves {
			res := Apply(g, m)
			if res.Valid != (res.Grid != g) {
				t.Fatalf("%v: valid=%v but changed=%v", m, res.Valid, res.Grid != g)
			}
		}
	}
}

func TestApplyUnknownMove(t *testing.T) {
	g := rowGrid([Size]int{0, 2, 0, 0})
	res := Apply(g, Move(9))
	if res.Valid || res.Grid != g {
		t.Errorf("unknown move should be a no-op, got %+v", res)
	}
}
