// internal/replay/session.go
//
// Replay session for a precomputed AI game.
// Responsibilities:
//   - Hold the full state history of one played game.
//   - Navigate it with Next/Prev, clamped to the ends.
//   - Produce response frames (matrix, score, move label, position).
//
// Lifecycle: a Session is created when a client initializes, is only
// mutated by Next/Prev, and is discarded when that client initializes again.

package replay

import (
	"sync"

	"github.com/robalobadob/tile2048/internal/autoplay"
)

// InitialLabel is the move label of the first state.
const InitialLabel = "Initial state"

// Modes a session can be created in.
const (
	ModeRandom = "random"
	ModeDaily  = "daily"
)

// State is one recorded board.
type State struct {
	Matrix [][]int `json:"matrix"`
	Score  int     `json:"score"`
	Move   string  `json:"move"`
}

// Frame is what clients receive for the current position.
type Frame struct {
	Matrix       [][]int `json:"matrix"`
	Score        int     `json:"score"`
	Move         string  `json:"move"`
	CurrentIndex int     `json:"current_index"`
	StatesCount  int     `json:"states_count"`
	GameOver     bool    `json:"game_over"`
}

// Session is a navigable game history.
type Session struct {
	ID     string
	Mode   string
	Seed   int64
	Depth  int
	States []State
	Over   bool // the game ended (won, or a full final board)
	Won    bool

	mu    sync.Mutex
	index int
}

// New builds a session from a played game. h must hold at least the
// initial state.
func New(id, mode string, seed int64, depth int, h autoplay.History) *Session {
	states := make([]State, len(h.Turns))
	for i, t := range h.Turns {
		label := InitialLabel
		if t.Move != nil {
			label = t.Move.String()
		}
		states[i] = State{Matrix: t.Grid.Rows(), Score: t.Score, Move: label}
	}
	return &Session{
		ID:     id,
		Mode:   mode,
		Seed:   seed,
		Depth:  depth,
		States: states,
		Over:   len(states) > 1 && (h.Won || !h.Final().Grid.HasEmpty()),
		Won:    h.Won,
	}
}

// Index returns the current position.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Current returns the frame at the current position.
func (s *Session) Current() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame(s.Over)
}

// Next advances one state (staying on the last one) and returns its frame.
func (s *Session) Next() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index < len(s.States)-1 {
		s.index++
	}
	return s.frame(s.Over)
}

// Prev steps back one state (staying on the first one). Frames reached by
// stepping back never report game over.
func (s *Session) Prev() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index > 0 {
		s.index--
	}
	return s.frame(false)
}

// FramesFrom returns the frames from i to the end without moving the cursor.
func (s *Session) FramesFrom(i int) []Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 {
		i = 0
	}
	var out []Frame
	for j := i; j < len(s.States); j++ {
		out = append(out, s.frameAt(j, s.Over))
	}
	return out
}

func (s *Session) frame(over bool) Frame {
	return s.frameAt(s.index, over)
}

func (s *Session) frameAt(i int, over bool) Frame {
	st := s.States[i]
	return Frame{
		Matrix:       st.Matrix,
		Score:        st.Score,
		Move:         st.Move,
		CurrentIndex: i,
		StatesCount:  len(s.States),
		GameOver:     over && i == len(s.States)-1,
	}
}
