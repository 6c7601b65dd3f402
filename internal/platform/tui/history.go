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

	"github.com/vovakirdan/tui-unscrew/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show level list sidebar
	sidebarWidth       = 20  // Width of level list sidebar
	maxRounds          = 100 // Max rounds to load
)

// allLevels is the tab that lists rounds of every level.
const allLevels = ""

// HistoryKeyMap defines the key bindings for the round history.
type HistoryKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Back      key.Binding
	Quit      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev level"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next level"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev level"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "H"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the round history screen.
// It runs standalone (unscrew scores) or embedded in a game Model, where
// Back closes it instead of quitting the program.
type HistoryModel struct {
	levels      []string // Level IDs, allLevels first
	levelCursor int
	store       *storage.Store
	stats       map[string]storage.RoundStats
	rounds      []storage.Round
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	embedded    bool
	closed      bool // Embedded history was dismissed
	quitting    bool
	goingBack   bool
	showSidebar bool
	showLevel   bool // Level column fits in the table
	loadErr     string
}

// NewHistoryModel creates a history model. When level is non-empty and has
// recorded rounds, its tab is selected first.
func NewHistoryModel(store *storage.Store, level string, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		levels:      []string{allLevels},
		store:       store,
		stats:       make(map[string]storage.RoundStats),
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	if store != nil {
		all, err := store.AllRoundStats()
		if err != nil {
			m.loadErr = err.Error()
		}
		for _, st := range all {
			m.levels = append(m.levels, st.LevelID)
			m.stats[st.LevelID] = st
		}
		m.stats[allLevels] = sumStats(all)
	}

	for i, id := range m.levels {
		if id == level && level != allLevels {
			m.levelCursor = i
		}
	}

	m.table = m.createTable()
	m.loadRounds()
	return m
}

// newEmbeddedHistory creates a history view hosted by a game Model.
func newEmbeddedHistory(store *storage.Store, level string, width, height int) *HistoryModel {
	m := NewHistoryModel(store, level, width, height)
	m.embedded = true
	return &m
}

// sumStats aggregates per-level stats into one line for the all-levels tab.
func sumStats(all []storage.RoundStats) storage.RoundStats {
	var sum storage.RoundStats
	var clicks float64
	for _, st := range all {
		sum.Rounds += st.Rounds
		sum.Wins += st.Wins
		sum.Losses += st.Losses
		sum.BestScore = max(sum.BestScore, st.BestScore)
		sum.TotalPlayed += st.TotalPlayed
		clicks += st.AvgClicks * float64(st.Rounds)
	}
	if sum.Rounds > 0 {
		sum.AvgClicks = clicks / float64(sum.Rounds)
	}
	return sum
}

// levelTitle returns the display name of a level tab.
func levelTitle(id string) string {
	if id == allLevels {
		return "All levels"
	}
	return id
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	m.showLevel = tableWidth >= 66

	columns := []table.Column{{Title: "Date", Width: 12}}
	if m.showLevel {
		columns = append(columns, table.Column{Title: "Level", Width: 10})
	}
	columns = append(columns,
		table.Column{Title: "Result", Width: 9},
		table.Column{Title: "Score", Width: 7},
		table.Column{Title: "Pieces", Width: 7},
		table.Column{Title: "Clicks", Width: 6},
		table.Column{Title: "Time", Width: 7},
	)

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, stats, help and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// currentLevel returns the level ID of the selected tab.
func (m HistoryModel) currentLevel() string {
	return m.levels[m.levelCursor]
}

// loadRounds loads the recent rounds of the selected tab.
func (m *HistoryModel) loadRounds() {
	m.rounds = nil
	if m.store != nil {
		rounds, err := m.store.RecentRounds(m.currentLevel(), maxRounds)
		if err != nil {
			m.loadErr = err.Error()
		} else {
			m.rounds = rounds
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current rounds.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		row := table.Row{r.CreatedAt.Local().Format("Jan 02 15:04")}
		if m.showLevel {
			row = append(row, r.LevelID)
		}
		rows[i] = append(row,
			r.Outcome,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d/%d", r.Absorbed, r.Total),
			fmt.Sprintf("%d", r.Clicks),
			formatDuration(r.Duration),
		)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatDuration renders a round duration as m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.embedded {
				m.closed = true
				return m, nil
			}
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextLevel), key.Matches(msg, m.keys.Right):
			m.levelCursor = (m.levelCursor + 1) % len(m.levels)
			m.loadRounds()
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel), key.Matches(msg, m.keys.Left):
			m.levelCursor--
			if m.levelCursor < 0 {
				m.levelCursor = len(m.levels) - 1
			}
			m.loadRounds()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// resize rebuilds the layout for a new terminal size.
func (m *HistoryModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.showSidebar = m.width >= minWidthForSidebar
	m.table = m.createTable()
	m.updateTableRows()
	m.help.Width = width
}

// View renders the round history.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("ROUND HISTORY - %s", levelTitle(m.currentLevel()))
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes the selected tab.
func (m HistoryModel) statsLine() string {
	if m.loadErr != "" {
		return "Error: " + m.loadErr
	}
	st := m.stats[m.currentLevel()]
	if st.Rounds == 0 {
		return ""
	}
	return fmt.Sprintf("%d rounds | %d won | %d lost | win rate %.0f%% | best %d | avg clicks %.1f | played %s",
		st.Rounds, st.Wins, st.Losses, st.WinRate()*100, st.BestScore, st.AvgClicks,
		st.TotalPlayed.Round(time.Second))
}

// renderWideLayout renders the history with a sidebar for level selection.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Levels\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, id := range m.levels {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.levelCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := levelTitle(id)
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the history with level tabs above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.levels))
	for i, id := range m.levels {
		name := levelTitle(id)
		if len(name) > 10 {
			name = name[:9] + "."
		}
		if i == m.levelCursor {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", levelTitle(m.currentLevel()))
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.rounds) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No rounds recorded yet.\nClear a board to start your history!")
	}

	return m.table.View()
}

// Rounds returns the rounds shown in the selected tab.
func (m HistoryModel) Rounds() []storage.Round {
	return m.rounds
}

// Levels returns the tab level IDs; the first entry is the all-levels tab.
func (m HistoryModel) Levels() []string {
	return m.levels
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the round history screen.
// Returns true if user wants to go back to the menu, false if quitting.
func RunHistory(store *storage.Store, level string, width, height int) (goBack bool, err error) {
	model := NewHistoryModel(store, level, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
