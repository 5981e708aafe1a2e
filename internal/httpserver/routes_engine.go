// internal/httpserver/routes_engine.go
//
// Stateless engine queries and run statistics.
//   - POST /api/move        {matrix, depth?} → best move for a board
//   - GET  /api/stats/runs  ?limit=N        → recent harness runs

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/tile2048/internal/game"
)

const maxQueryDepth = 12

type moveReq struct {
	Matrix [][]int `json:"matrix"`
	Depth  *int    `json:"depth"`
}

type moveRes struct {
	Move  *string `json:"move"`
	Key   *string `json:"key"`
	Valid bool    `json:"valid"`
	Value float64 `json:"value"`
	Nodes uint64  `json:"nodes"`
	Depth int     `json:"depth"`
}

// handleMove searches the posted board with iterative deepening under the
// configured timeout and reports the deepest completed answer.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var body moveReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, err := game.FromRows(body.Matrix)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_grid")
		return
	}
	depth := s.cfg.SearchDepth
	if body.Depth != nil {
		depth = *body.Depth
	}
	if depth < 1 || depth > maxQueryDepth {
		writeError(w, http.StatusBadRequest, "depth_out_of_range")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.SearchTimeout)
	defer cancel()
	res, err := s.searcher.Deepen(ctx, g, depth)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			writeError(w, http.StatusServiceUnavailable, "search_timeout")
			return
		}
		log.Error().Err(err).Msg("search")
		writeError(w, http.StatusInternalServerError, "search_failed")
		return
	}

	out := moveRes{Valid: res.OK, Value: res.Value, Nodes: res.Nodes, Depth: res.Depth}
	if res.OK {
		name, key := res.Move.String(), res.Move.Key()
		out.Move, out.Key = &name, &key
	}
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleStatsRuns(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		writeError(w, http.StatusServiceUnavailable, "no_database")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 200 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = n
	}
	runs, err := s.stats.RecentRuns(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("stats runs")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"runs": runs})
}
