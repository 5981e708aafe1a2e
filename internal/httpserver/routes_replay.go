// internal/httpserver/routes_replay.go
//
// Replay endpoints.
//   - POST /api/initialize     → play a fresh AI game, start a new session
//   - POST /api/next_move      → step forward (clamped at the last state)
//   - POST /api/prev_move      → step back (clamped at the initial state)
//   - GET  /api/replay/stream  → websocket; remaining frames, one per message
//
// A client owns at most one session: initializing again discards the
// session named by the caller's current token.

package httpserver

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	mrand "math/rand"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/tile2048/internal/autoplay"
	"github.com/robalobadob/tile2048/internal/daily"
	"github.com/robalobadob/tile2048/internal/replay"
)

type initializeReq struct {
	Mode  string `json:"mode"`
	Seed  *int64 `json:"seed"`
	Depth *int   `json:"depth"`
}

type initializeResp struct {
	replay.Frame
	SessionID string `json:"session_id"`
	Mode      string `json:"mode"`
	Seed      int64  `json:"seed"`
	Won       bool   `json:"won"`
	Token     string `json:"token"`
}

const maxReplayDepth = 6

func (s *Server) handleInitialize(w http.ResponseWriter, r *http.Request) {
	var body initializeReq
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	mode := body.Mode
	if mode == "" {
		mode = replay.ModeRandom
	}
	depth := s.cfg.ReplayDepth
	if body.Depth != nil {
		depth = *body.Depth
	}
	if depth < 1 || depth > maxReplayDepth {
		writeError(w, http.StatusBadRequest, "depth_out_of_range")
		return
	}

	var seed int64
	switch mode {
	case replay.ModeRandom:
		if body.Seed != nil {
			seed = *body.Seed
		} else {
			seed = randomSeed()
		}
	case replay.ModeDaily:
		seed = daily.Seed(s.now(), s.cfg.DailySalt)
	default:
		writeError(w, http.StatusBadRequest, "unknown_mode")
		return
	}

	start := time.Now()
	player := autoplay.SearchPlayer{Searcher: s.searcher, Depth: depth}
	h, err := autoplay.Play(r.Context(), player, mrand.New(mrand.NewSource(seed)), autoplay.Options{
		WinTile:  s.cfg.WinTile,
		MaxTurns: s.cfg.ReplayMaxTurns,
	})
	if err != nil {
		log.Error().Err(err).Int64("seed", seed).Msg("replay game failed")
		writeError(w, http.StatusInternalServerError, "game_failed")
		return
	}

	sess := replay.New(genID(), mode, seed, depth, h)

	// Discard the caller's previous session, if any.
	if tok := s.bearerOrCookie(r); tok != "" {
		if sid, err := s.parseToken(tok); err == nil {
			_ = s.store.Delete(r.Context(), sid)
		}
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		writeError(w, http.StatusInternalServerError, "store_failed")
		return
	}

	if mode == replay.ModeDaily {
		s.recordDaily(r, sess, h)
	}

	token, exp, err := s.signToken(sess.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token_failed")
		return
	}
	s.setSessionCookie(w, token, exp)

	log.Info().
		Str("session", sess.ID).
		Str("mode", mode).
		Int64("seed", seed).
		Int("states", len(sess.States)).
		Bool("won", sess.Won).
		Dur("elapsed", time.Since(start)).
		Msg("replay initialized")

	_ = json.NewEncoder(w).Encode(initializeResp{
		Frame:     sess.Current(),
		SessionID: sess.ID,
		Mode:      mode,
		Seed:      seed,
		Won:       sess.Won,
		Token:     token,
	})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(sessionFrom(r.Context()).Next())
}

func (s *Server) handlePrev(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(sessionFrom(r.Context()).Prev())
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// handleStream sends every frame from the session's current index to the
// end, then closes the socket normally. The session cursor does not move.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	up := upgrader
	up.CheckOrigin = s.checkOrigin

	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error.
		log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	for _, f := range sess.FramesFrom(sess.Index()) {
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(f); err != nil {
			log.Debug().Err(err).Str("session", sess.ID).Msg("stream write failed")
			return
		}
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "end of replay"),
		time.Now().Add(time.Second))
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if s.cfg.ClientOrigin == "*" || s.cfg.ClientOrigin == "" {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || origin == s.cfg.ClientOrigin
}

// randomSeed draws a non-negative seed from crypto/rand.
func randomSeed() int64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return int64(binary.BigEndian.Uint64(b[:]) &^ (1 << 63))
}
