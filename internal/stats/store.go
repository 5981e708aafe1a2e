package stats

import (
	"context"
	"database/sql"
	"time"
)

// Store persists harness reports.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// InsertRun records a report and its max-tile histogram; returns the row id.
func (s *Store) InsertRun(ctx context.Context, r Report) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
        INSERT INTO stats_runs
            (games, depth, seed, wins, win_rate, avg_score, best_score, best_tile, elapsed_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Games, r.Depth, r.Seed, r.Wins, r.WinRate, r.AvgScore, r.BestScore, r.BestTile,
		r.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, tile := range r.Tiles() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO stats_run_tiles(run_id, tile, games) VALUES (?, ?, ?)`,
			id, tile, r.MaxTiles[tile],
		); err != nil {
			return 0, err
		}
	}
	return id, tx.Commit()
}

// RecentRuns returns the newest reports first. Default limit is 20.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Report, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, games, depth, seed, wins, win_rate, avg_score, best_score, best_tile, elapsed_ms, created_at
        FROM stats_runs
        ORDER BY id DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Report, 0, limit)
	for rows.Next() {
		var r Report
		var ms int64
		if err := rows.Scan(&r.ID, &r.Games, &r.Depth, &r.Seed, &r.Wins, &r.WinRate, &r.AvgScore,
			&r.BestScore, &r.BestTile, &ms, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Elapsed = time.Duration(ms) * time.Millisecond
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		tiles, err := s.tiles(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].MaxTiles = tiles
	}
	return out, nil
}

func (s *Store) tiles(ctx context.Context, runID int64) (map[int]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tile, games FROM stats_run_tiles WHERE run_id=?`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[int]int{}
	for rows.Next() {
		var tile, games int
		if err := rows.Scan(&tile, &games); err != nil {
			return nil, err
		}
		out[tile] = games
	}
	return out, rows.Err()
}
