package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/robalobadob/tile2048/internal/autoplay"
	"github.com/robalobadob/tile2048/internal/game"
)

func sampleHistory() autoplay.History {
	left := game.Left
	return autoplay.History{
		GameID: "abc",
		Turns: []autoplay.Turn{
			{Grid: game.Grid{{0, 2, 0, 2}}},
			{Grid: game.Grid{{4, 0, 0, 0}, {0, 0, 2, 0}}, Score: 4, Move: &left},
		},
	}
}

func TestRows(t *testing.T) {
	rows := Rows(sampleHistory(), 7, 3)
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0].Move != "" || rows[0].Final || rows[0].Board[1] != 2 {
		t.Errorf("initial row %+v", rows[0])
	}
	last := rows[1]
	if last.Move != "left" || !last.Final || last.Score != 4 || last.Board[0] != 4 || last.Board[6] != 2 {
		t.Errorf("final row %+v", last)
	}
	if len(last.Board) != 16 || last.Seed != 7 || last.Depth != 3 || last.Turn != 1 {
		t.Errorf("final row metadata %+v", last)
	}
}

func TestWriterRenamesOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "games.parquet")
	w, err := NewWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := w.WriteGame(sampleHistory(), int64(i), 2); err != nil {
			t.Fatal(err)
		}
	}
	if w.Rows() != 6 || w.Games() != 3 {
		t.Errorf("rows=%d games=%d", w.Rows(), w.Games())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("target should not exist before Close")
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := w.WriteGame(sampleHistory(), 0, 2); err == nil {
		t.Errorf("write after Close should fail")
	}

	rows, err := parquet.ReadFile[TurnRow](path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 6 {
		t.Errorf("read back %d rows", len(rows))
	}
}
