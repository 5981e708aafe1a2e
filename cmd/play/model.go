package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/tile2048/internal/ai"
	"github.com/robalobadob/tile2048/internal/game"
)

type tickMsg struct{}

// model is the bubbletea state of one interactive session.
type model struct {
	g        *game.Game
	rng      *rand.Rand
	searcher *ai.Searcher
	depth    int
	winTile  int
	interval time.Duration

	auto   bool
	hint   string
	status string
}

func newModel(rng *rand.Rand, s *ai.Searcher, depth, winTile int, interval time.Duration) model {
	return model{
		g:        game.NewGame(rng, game.WithWinTile(winTile)),
		rng:      rng,
		searcher: s,
		depth:    depth,
		winTile:  winTile,
		interval: interval,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "w":
			return m.step(game.Up), nil
		case "left", "a":
			return m.step(game.Left), nil
		case "down", "s":
			return m.step(game.Down), nil
		case "right", "d":
			return m.step(game.Right), nil
		case "h":
			return m.suggest(), nil
		case "p":
			m.auto = !m.auto
			if m.auto {
				m.status = "autoplay on"
				return m, m.tick()
			}
			m.status = "autoplay off"
			return m, nil
		case "n":
			m.g = game.NewGame(m.rng, game.WithWinTile(m.winTile))
			m.auto, m.hint, m.status = false, "", "new game"
			return m, nil
		}

	case tickMsg:
		if !m.auto {
			return m, nil
		}
		mv, ok, err := m.searcher.ChooseMove(m.g.Board(), m.depth)
		if err != nil || !ok {
			m.auto = false
			m.status = "autoplay stopped: no move"
			return m, nil
		}
		m = m.step(mv)
		if m.g.Over() {
			m.auto = false
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m model) step(mv game.Move) model {
	gained, moved := m.g.Step(mv)
	m.hint = ""
	switch {
	case !moved:
		m.status = fmt.Sprintf("%s does nothing", mv)
	case m.g.Over():
		m.status = "no moves left"
	case gained > 0:
		m.status = fmt.Sprintf("%s +%d", mv, gained)
	default:
		m.status = mv.String()
	}
	return m
}

func (m model) suggest() model {
	mv, ok, err := m.searcher.ChooseMove(m.g.Board(), m.depth)
	switch {
	case err != nil:
		m.hint = err.Error()
	case !ok:
		m.hint = "none"
	default:
		m.hint = fmt.Sprintf("%s (%s)", mv, mv.Key())
	}
	return m
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	cellStyle  = lipgloss.NewStyle().Width(6).Align(lipgloss.Right)
	emptyStyle = cellStyle.Foreground(lipgloss.Color("240"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	// 256-color palette by log2(tile).
	tileColors = []string{"", "252", "230", "215", "209", "203", "196", "227", "226", "220", "214", "208", "201"}
)

func tileStyle(v int) lipgloss.Style {
	exp := 0
	for x := v; x > 1; x >>= 1 {
		exp++
	}
	if exp >= len(tileColors) {
		exp = len(tileColors) - 1
	}
	return cellStyle.Foreground(lipgloss.Color(tileColors[exp])).Bold(exp >= 7)
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("2048  score %d  moves %d  %s", m.g.Score(), m.g.Moves(), m.g.State())))
	b.WriteString("\n\n")
	board := m.g.Board()
	for r := 0; r < game.Size; r++ {
		for c := 0; c < game.Size; c++ {
			v := board[r][c]
			if v == 0 {
				b.WriteString(emptyStyle.Render("."))
				continue
			}
			b.WriteString(tileStyle(v).Render(fmt.Sprint(v)))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.hint != "" {
		b.WriteString("hint: " + m.hint + "\n")
	}
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(helpStyle.Render("arrows/wasd move · h hint · p autoplay · n new · q quit"))
	b.WriteString("\n")
	return b.String()
}
