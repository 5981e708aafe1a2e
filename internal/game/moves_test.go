package game

import "testing"

var loseGrid = Grid{
	{2, 4, 2, 4},
	{4, 2, 4, 2},
	{2, 4, 2, 4},
	{4, 2, 4, 2},
}

func TestIsLose(t *testing.T) {
	if !IsLose(loseGrid) {
		t.Fatalf("checkerboard should be lost")
	}

	withHole := loseGrid
	withHole[1][1] = 0
	if IsLose(withHole) {
		t.Errorf("grid with an empty cell is never lost")
	}

	rowPair := loseGrid
	rowPair[3][3] = 4 // equals its left neighbour
	if IsLose(rowPair) {
		t.Errorf("horizontal pair should keep the game alive")
	}

	colPair := loseGrid
	colPair[0][0] = 4 // equals the cell below
	if IsLose(colPair) {
		t.Errorf("vertical pair should keep the game alive")
	}
}

func TestValidMoves(t *testing.T) {
	tests := []struct {
		name string
		g    Grid
		want []Move
	}{
		{"lost", loseGrid, nil},
		{"only down", Grid{
			{2, 4, 2, 4},
			{4, 2, 4, 2},
			{2, 4, 2, 4},
			{0, 0, 0, 0},
		}, []Move{Down}},
		{"corner tile", Grid{{2, 0, 0, 0}}, []Move{Down, Right}},
		{"empty board", Grid{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidMoves(tt.g)
			if len(got) != len(tt.want) {
				t.Fatalf("ValidMoves = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ValidMoves[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseMove(t *testing.T) {
	for _, m := range Moves {
		for _, s := range []string{m.String(), m.Key(), " " + m.Key() + " "} {
			got, err := ParseMove(s)
			if err != nil || got != m {
				t.Errorf("ParseMove(%q) = %v, %v", s, got, err)
			}
		}
	}
	if _, err := ParseMove("sideways"); err == nil {
		t.Errorf("expected error for unknown move")
	}
}
