package daily

import (
	"context"
	"database/sql"
)

// Result is the AI's outcome on one day's seeded game at one depth.
type Result struct {
	Date    string `json:"date"`
	Seed    int64  `json:"seed"`
	Depth   int    `json:"depth"`
	Score   int    `json:"score"`
	MaxTile int    `json:"maxTile"`
	Moves   int    `json:"moves"`
	Won     bool   `json:"won"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// InsertResult records a result; a row for the same (date, depth) is kept.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(date, seed, depth, score, max_tile, moves, won)
		VALUES(?,?,?,?,?,?,?)`, r.Date, r.Seed, r.Depth, r.Score, r.MaxTile, r.Moves, r.Won,
	)
	return err
}

// Results lists the rows for a date, deepest search first.
func (s *Store) Results(ctx context.Context, date string) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, seed, depth, score, max_tile, moves, won
		FROM daily_results
		WHERE date=?
		ORDER BY depth DESC`, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Result{}
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.Date, &r.Seed, &r.Depth, &r.Score, &r.MaxTile, &r.Moves, &r.Won); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
