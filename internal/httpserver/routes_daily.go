// internal/httpserver/routes_daily.go
//
// Daily game records.
//   - POST /api/initialize {"mode":"daily"} plays the day's seeded game
//     (see routes_replay.go) and records its outcome here.
//   - GET  /api/daily[?date=YYYY-MM-DD] lists the recorded outcomes for a
//     date (default today, UTC), deepest search first.
//
// Every client gets the same game for a given date and salt. One row is
// kept per (date, depth); later plays of the same day are ignored.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/tile2048/internal/autoplay"
	"github.com/robalobadob/tile2048/internal/daily"
	"github.com/robalobadob/tile2048/internal/replay"
)

// dailyRes is returned by GET /api/daily.
type dailyRes struct {
	Date    string         `json:"date"`
	Seed    int64          `json:"seed"`
	Results []daily.Result `json:"results"`
}

// recordDaily persists the outcome of a daily session. Best effort.
func (s *Server) recordDaily(r *http.Request, sess *replay.Session, h autoplay.History) {
	if s.daily == nil {
		return
	}
	res := daily.Result{
		Date:    daily.DateKey(s.now()),
		Seed:    sess.Seed,
		Depth:   sess.Depth,
		Score:   h.Final().Score,
		MaxTile: h.MaxTile(),
		Moves:   len(h.Turns) - 1,
		Won:     h.Won,
	}
	if err := s.daily.InsertResult(r.Context(), res); err != nil {
		log.Warn().Err(err).Str("date", res.Date).Msg("daily result not recorded")
	}
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	if s.daily == nil {
		writeError(w, http.StatusServiceUnavailable, "no_database")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_date")
		return
	}
	rows, err := s.daily.Results(r.Context(), date)
	if err != nil {
		log.Error().Err(err).Msg("daily results")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	_ = json.NewEncoder(w).Encode(dailyRes{
		Date:    date,
		Seed:    daily.Seed(day, s.cfg.DailySalt),
		Results: rows,
	})
}
