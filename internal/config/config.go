// internal/config/config.go
//
// Environment-driven configuration shared by the server and the tools.
// A .env file in the working directory is loaded first (development);
// real environment variables win over it.
//
// Environment variables:
//   PORT=5175                 HTTP listen port
//   LOG_LEVEL=info            zerolog level
//   DB_PATH=./data/app.db     SQLite file (statistics and daily results)
//   SEARCH_DEPTH=7            plies searched per AI move
//   SEARCH_TIMEOUT_MS=2000    budget for stateless /api/move searches
//   REPLAY_DEPTH=3            plies per move when precomputing replays
//   REPLAY_MAX_TURNS=20000    cap on moves in a precomputed replay
//   WIN_TILE=2048             tile that ends a game as won
//   JWT_SECRET=...            signs replay session tokens
//   SESSION_TTL_HOURS=24      replay session token lifetime
//   COOKIE_NAME=tile2048_session
//   CLIENT_ORIGIN=*           CORS origin
//   DAILY_SALT=...            keys the daily game seed
//   NODE_ENV=production       enables Secure cookies

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds every tunable.
type Config struct {
	Port           string
	LogLevel       zerolog.Level
	DBPath         string
	SearchDepth    int
	SearchTimeout  time.Duration
	ReplayDepth    int
	ReplayMaxTurns int
	WinTile        int
	JWTSecret      string
	SessionTTL     time.Duration
	CookieName     string
	ClientOrigin   string
	DailySalt      string
	Production     bool
}

// Load reads .env (if present) and the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() Config {
	lvl, err := zerolog.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return Config{
		Port:           GetEnv("PORT", "5175"),
		LogLevel:       lvl,
		DBPath:         GetEnv("DB_PATH", "./data/app.db"),
		SearchDepth:    getInt("SEARCH_DEPTH", 7),
		SearchTimeout:  time.Duration(getInt("SEARCH_TIMEOUT_MS", 2000)) * time.Millisecond,
		ReplayDepth:    getInt("REPLAY_DEPTH", 3),
		ReplayMaxTurns: getInt("REPLAY_MAX_TURNS", 20000),
		WinTile:        getInt("WIN_TILE", 2048),
		JWTSecret:      GetEnv("JWT_SECRET", "dev_secret_change_me"),
		SessionTTL:     time.Duration(getInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		CookieName:     GetEnv("COOKIE_NAME", "tile2048_session"),
		ClientOrigin:   GetEnv("CLIENT_ORIGIN", "*"),
		DailySalt:      GetEnv("DAILY_SALT", "local_dev_salt"),
		Production:     os.Getenv("NODE_ENV") == "production",
	}
}

// GetEnv returns the value of k or def if unset/empty.
func GetEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
