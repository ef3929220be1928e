package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neon-pong/internal/game"
	"github.com/vovakirdan/neon-pong/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the mode sidebar
	sidebarWidth       = 18  // Width of the mode sidebar
	maxMatches         = 200 // Max matches to load per tab
)

var (
	scoreboardTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF2A6D"))
	scoreboardDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	scoreboardFrame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#05D9E8")).
			Padding(0, 1)
	scoreboardActive = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#01012B")).
				Background(lipgloss.Color("#05D9E8")).
				Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the history browser.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.NextMode, k.PrevMode, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev mode"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel browses the match history: one tab per mode plus "All",
// a scrollable table of matches and the statistics of the selected mode.
type ScoreboardModel struct {
	store    *storage.Store
	tabs     []game.Mode // "" lists every mode
	tab      int
	matches  []storage.MatchRecord
	stats    map[game.Mode]*storage.ModeStats
	err      error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a history browser showing every mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		tabs:   append([]game.Mode{""}, game.Modes...),
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ScoreboardModel) showSidebar() bool { return m.width >= minWidthForSidebar }

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 16},
		{Title: "Mode", Width: 11},
		{Title: "Level", Width: 6},
		{Title: "Score", Width: 7},
		{Title: "Winner", Width: 8},
		{Title: "Time", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // header, stats, help and borders
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#01012B")).
		Background(lipgloss.Color("#FF2A6D")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads the matches of the current tab and the statistics.
func (m *ScoreboardModel) load() {
	m.matches, m.stats, m.err = nil, nil, nil
	if m.store != nil {
		m.matches, m.err = m.store.RecentMatches(m.tabs[m.tab], maxMatches)
		if m.err == nil {
			m.stats, m.err = m.store.Stats()
		}
	}
	m.updateTableRows()
}

func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.matches))
	for i, r := range m.matches {
		winner := r.Winner
		if !r.Completed() {
			winner = "-"
		}
		rows[i] = table.Row{
			r.PlayedAt.Local().Format("2006-01-02 15:04"),
			modeLabel(r.Mode),
			r.Difficulty,
			fmt.Sprintf("%d-%d", r.ScoreLeft, r.ScoreRight),
			winner,
			shortDuration(r.Duration),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMode):
			m.tab = (m.tab + 1) % len(m.tabs)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			m.tab = (m.tab - 1 + len(m.tabs)) % len(m.tabs)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.updateTableRows()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) tabLabel(i int) string {
	if m.tabs[i] == "" {
		return "All"
	}
	return modeLabel(m.tabs[i])
}

// View renders the history browser.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, scoreboardTitle.Render("MATCH HISTORY - "+m.tabLabel(m.tab))))
	b.WriteString("\n\n")

	body := scoreboardFrame.Render(m.renderTableContent())
	if m.showSidebar() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", body)
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderTabs()))
		b.WriteString("\n\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body))
	b.WriteString("\n")

	if line := m.statsLine(); line != "" {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, scoreboardDim.Render(line)))
		b.WriteString("\n")
	}
	b.WriteString(scoreboardDim.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString("Modes\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")
	for i := range m.tabs {
		if i == m.tab {
			sb.WriteString(scoreboardActive.Render(m.tabLabel(i)))
		} else {
			sb.WriteString("  " + m.tabLabel(i))
		}
		sb.WriteString("\n")
	}
	return scoreboardFrame.Width(sidebarWidth).Render(sb.String())
}

func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.tabs))
	for i := range m.tabs {
		if i == m.tab {
			tabs[i] = scoreboardActive.Render(m.tabLabel(i))
		} else {
			tabs[i] = scoreboardDim.Render(" " + m.tabLabel(i) + " ")
		}
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) renderTableContent() string {
	switch {
	case m.store == nil:
		return scoreboardDim.Italic(true).Padding(2, 4).Render("History unavailable.")
	case m.err != nil:
		return scoreboardDim.Italic(true).Padding(2, 4).Render("Could not load history:\n" + m.err.Error())
	case len(m.matches) == 0:
		return scoreboardDim.Italic(true).Padding(2, 4).Render("No matches recorded yet.\nPlay a match to start the history!")
	}
	return m.table.View()
}

// statsLine summarises the selected mode, or every mode on the All tab.
func (m ScoreboardModel) statsLine() string {
	var played, completed, left, right int
	var total time.Duration
	for mode, st := range m.stats {
		if m.tabs[m.tab] != "" && mode != m.tabs[m.tab] {
			continue
		}
		played += st.Played
		completed += st.Completed
		left += st.LeftWins
		right += st.RightWins
		total += st.AvgDuration * time.Duration(st.Played)
	}
	if played == 0 {
		return ""
	}
	return fmt.Sprintf("played %d  finished %d  left wins %d  right wins %d  avg %s",
		played, completed, left, right, shortDuration(total/time.Duration(played)))
}

// RunScoreboard runs the history browser until the user quits.
func RunScoreboard(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
