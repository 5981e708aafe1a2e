// internal/game/types.go
//
// Core type definitions for the tile engine.
// Defines:
//   - Move: one of the four slide directions, in a fixed enumeration order.
//   - Game: the authoritative board, score and RNG of a single played game.

package game

import (
	"fmt"
	"math/rand"
	"strings"
)

// Move is a slide direction.
// The enumeration order Up, Left, Down, Right is used for deterministic
// tie-breaking by the search.
type Move int

const (
	Up Move = iota
	Left
	Down
	Right
)

// Moves lists every direction in enumeration order.
var Moves = [...]Move{Up, Left, Down, Right}

var (
	moveNames = [...]string{"up", "left", "down", "right"}
	moveKeys  = [...]string{"w", "a", "s", "d"}
)

// String returns the lowercase direction name ("up", "left", ...).
func (m Move) String() string {
	if m < Up || m > Right {
		return fmt.Sprintf("Move(%d)", int(m))
	}
	return moveNames[m]
}

// Key returns the keyboard symbol the classic harness uses for m.
func (m Move) Key() string {
	if m < Up || m > Right {
		return ""
	}
	return moveKeys[m]
}

// ParseMove accepts a direction name or its key symbol, case-insensitively.
func ParseMove(s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range Moves {
		if s == moveNames[m] || s == moveKeys[m] {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown move %q", s)
}

// Game holds the state of a single played game.
type Game struct {
	ID      string     // Unique game identifier (random hex string).
	board   Grid       // Current authoritative board.
	score   int        // Accumulated merge score.
	moves   int        // Number of valid moves applied.
	winTile int        // Tile value that counts as a win.
	rng     *rand.Rand // Source for tile spawns.
}
