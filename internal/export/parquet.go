package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/robalobadob/tile2048/internal/autoplay"
	"github.com/robalobadob/tile2048/internal/game"
)

// TurnRow is one recorded state of one game.
//
// Board holds the 16 cells in row-major order. Move is the direction that
// produced this state ("" for the initial state). Final marks the last
// state of the game.
type TurnRow struct {
	GameID string  `parquet:"game_id,dict"`
	Seed   int64   `parquet:"seed"`
	Depth  int32   `parquet:"depth"`
	Turn   int32   `parquet:"turn"`
	Board  []int32 `parquet:"board"`
	Score  int32   `parquet:"score"`
	Move   string  `parquet:"move,dict"`
	Final  bool    `parquet:"final"`
	Won    bool    `parquet:"won"`
}

// Rows flattens a played game.
func Rows(h autoplay.History, seed int64, depth int) []TurnRow {
	out := make([]TurnRow, len(h.Turns))
	for i, t := range h.Turns {
		board := make([]int32, 0, game.Size*game.Size)
		for r := 0; r < game.Size; r++ {
			for c := 0; c < game.Size; c++ {
				board = append(board, int32(t.Grid[r][c]))
			}
		}
		move := ""
		if t.Move != nil {
			move = t.Move.String()
		}
		out[i] = TurnRow{
			GameID: h.GameID,
			Seed:   seed,
			Depth:  int32(depth),
			Turn:   int32(i),
			Board:  board,
			Score:  int32(t.Score),
			Move:   move,
			Final:  i == len(h.Turns)-1,
			Won:    h.Won,
		}
	}
	return out
}

// Writer streams TurnRows into a parquet file. Rows go to a temporary
// file next to the target, which is renamed into place on Close.
type Writer struct {
	path    string
	tmpPath string
	file    *os.File
	writer  *parquet.GenericWriter[TurnRow]
	rows    int
	games   int
}

// NewWriter creates the temporary file for path.
func NewWriter(path string) (*Writer, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create dir: %w", err)
	}
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open tmp parquet: %w", err)
	}
	w := parquet.NewGenericWriter[TurnRow](
		f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	w.SetKeyValueMetadata("schema", "turn_row_v1")
	return &Writer{path: path, tmpPath: tmpPath, file: f, writer: w}, nil
}

// WriteGame appends every turn of h.
func (w *Writer) WriteGame(h autoplay.History, seed int64, depth int) error {
	if w.writer == nil {
		return fmt.Errorf("parquet writer is closed")
	}
	rows := Rows(h, seed, depth)
	if _, err := w.writer.Write(rows); err != nil {
		return err
	}
	w.rows += len(rows)
	w.games++
	return nil
}

// Rows reports how many rows were written so far.
func (w *Writer) Rows() int { return w.rows }

// Games reports how many games were written so far.
func (w *Writer) Games() int { return w.games }

// Close flushes the file and moves it into place.
func (w *Writer) Close() error {
	if w.writer == nil {
		return nil
	}
	closeErr := w.writer.Close()
	w.writer = nil
	_ = w.file.Sync()
	fileErr := w.file.Close()
	if closeErr != nil {
		return fmt.Errorf("close parquet writer: %w", closeErr)
	}
	if fileErr != nil {
		return fmt.Errorf("close parquet file: %w", fileErr)
	}
	if err := os.Rename(w.tmpPath, w.path); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}
