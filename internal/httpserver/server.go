// internal/httpserver/server.go
//
// HTTP server wiring for the tile2048 backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Replay endpoints: POST /api/initialize, /api/next_move, /api/prev_move,
//     GET /api/replay/stream (websocket).
//   - Engine endpoint: POST /api/move (stateless best-move query).
//   - Records: GET /api/daily, GET /api/stats/runs (SQLite, optional).
//
// Notes:
//   - Replay sessions live in the in-memory store; a signed token (cookie or
//     bearer header) ties a client to its current session.
//   - The database is optional. Without it the record endpoints answer 503
//     and daily results are simply not persisted.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/tile2048/internal/ai"
	"github.com/robalobadob/tile2048/internal/config"
	"github.com/robalobadob/tile2048/internal/daily"
	"github.com/robalobadob/tile2048/internal/stats"
	"github.com/robalobadob/tile2048/internal/store"
)

// Server bundles router, session store, searcher and DB-backed records.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	store    store.Store
	searcher *ai.Searcher
	stats    *stats.Store // nil without a database
	daily    *daily.Store // nil without a database
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
// db may be nil.
func New(cfg config.Config, st store.Store, db *sql.DB) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		store:    st,
		searcher: ai.NewSearcher(ai.WithParallelRoot(true)),
		now:      time.Now,
	}
	if db != nil {
		s.stats = stats.NewStore(db)
		s.daily = daily.NewStore(db)
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(s.cors)          // credentials-friendly CORS

	// Websocket streaming hijacks the connection, so it stays outside the
	// JSON/timeout group.
	s.r.With(s.requireSession()).Get("/api/replay/stream", s.handleStream)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(60 * time.Second)) // replays are precomputed in-request
		r.Use(jsonContentType)

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"tile2048-go","endpoints":["/health","POST /api/initialize","POST /api/next_move","POST /api/prev_move","GET /api/replay/stream","POST /api/move","GET /api/daily","GET /api/stats/runs"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		// Replay endpoints
		r.Post("/api/initialize", s.handleInitialize)
		r.With(s.requireSession()).Post("/api/next_move", s.handleNext)
		r.With(s.requireSession()).Post("/api/prev_move", s.handlePrev)

		// Engine + records
		r.Post("/api/move", s.handleMove)
		r.Get("/api/daily", s.handleDaily)
		r.Get("/api/stats/runs", s.handleStatsRuns)

		// JSON 404 for easier debugging
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "not_found")
		})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS. CLIENT_ORIGIN="*" reflects the caller's
// Origin, since browsers refuse a literal "*" together with credentials.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := s.cfg.ClientOrigin
		if origin == "*" || origin == "" {
			origin = r.Header.Get("Origin")
		}
		if origin != "" {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- helpers -----------------------------------

// writeError writes {"error": code} with the given status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// decodeBody decodes an optional JSON body. An empty body is not an error.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		log.Debug().Err(err).Str("path", r.URL.Path).Msg("bad json")
	}
	return err
}
