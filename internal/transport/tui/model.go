package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
)

var discs = map[domain.PlayerID]string{
	domain.Empty:   ".",
	domain.Player1: "X",
	domain.Player2: "O",
}

type botMoveMsg struct {
	rec game.MoveRecord
	err error
}

// Model renders a match and feeds it keyboard moves. Bot turns run as
// commands so the screen stays responsive while the engine searches.
type Model struct {
	match    *game.Match
	cursor   int // 0-based column
	thinking bool
	last     string
	err      error
}

func New(match *game.Match) Model {
	m := Model{match: match, cursor: domain.Columns / 2}
	m.thinking = m.botToMove()
	return m
}

func (m Model) Init() tea.Cmd {
	if m.thinking {
		return botMove(m.match)
	}
	return nil
}

func (m Model) botToMove() bool {
	return !m.match.State().IsTerminal() && game.IsBot(m.match.Current())
}

func botMove(match *game.Match) tea.Cmd {
	return func() tea.Msg {
		rec, err := match.BotMove(context.Background())
		return botMoveMsg{rec: rec, err: err}
	}
}

// next schedules the bot when it is its turn.
func (m Model) next() (tea.Model, tea.Cmd) {
	if m.botToMove() {
		m.thinking = true
		return m, botMove(m.match)
	}
	return m, nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case botMoveMsg:
		m.thinking = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.last = describe(m.match, msg.rec)
		return m.next()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	if m.thinking {
		return m, nil
	}

	switch key {
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < domain.Columns-1 {
			m.cursor++
		}
	case "1", "2", "3", "4", "5", "6", "7":
		m.cursor = int(key[0] - '1')
	case "enter", " ":
		rec, err := m.match.Play(m.cursor + 1)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.last = describe(m.match, rec)
		return m.next()
	case "r":
		m.match.Reset()
		m.err = nil
		m.last = ""
		return m.next()
	}
	return m, nil
}

func describe(match *game.Match, rec game.MoveRecord) string {
	name := match.Players()[rec.Player-1].Name()
	if rec.Nodes == 0 {
		return fmt.Sprintf("%s played column %d", name, rec.Column)
	}
	return fmt.Sprintf("%s played column %d (score %d, %d nodes, %s)", name, rec.Column, rec.Score, rec.Nodes, rec.Duration.Round(time.Microsecond))
}

func (m Model) View() string {
	state := m.match.State()
	var b strings.Builder

	b.WriteString("Connect Four\n\n")

	// cursor
	b.WriteString(" ")
	for col := 0; col < domain.Columns; col++ {
		if col == m.cursor && !state.IsTerminal() {
			b.WriteString("v ")
		} else {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	for row := 0; row < domain.Rows; row++ {
		b.WriteString("|")
		for col := 0; col < domain.Columns; col++ {
			b.WriteString(discs[state.Cell(row, col)])
			b.WriteString("|")
		}
		b.WriteString("\n")
	}
	b.WriteString(" ")
	for col := 1; col <= domain.Columns; col++ {
		fmt.Fprintf(&b, "%d ", col)
	}
	b.WriteString("\n\n")

	switch {
	case state.IsTerminal():
		if w := m.match.Winner(); w != nil {
			fmt.Fprintf(&b, "Winner: %s\n", w.Name())
		} else {
			b.WriteString("Draw!\n")
		}
	case m.thinking:
		fmt.Fprintf(&b, "%s is thinking...\n", m.match.Current().Name())
	default:
		cur := m.match.Current()
		fmt.Fprintf(&b, "%s to move (%s)\n", cur.Name(), discs[cur.ID()])
	}

	if m.last != "" {
		b.WriteString(m.last + "\n")
	}
	if m.err != nil {
		fmt.Fprintf(&b, "Error: %v\n", m.err)
	}

	b.WriteString("\n←/→ or 1-7 choose, enter drops, r resets, q quits.\n")
	return b.String()
}
