package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-unscrew/internal/core"
	"github.com/vovakirdan/tui-unscrew/internal/registry"
	"github.com/vovakirdan/tui-unscrew/internal/storage"
)

// RoundHook is called after a round has been recorded.
type RoundHook func(r storage.Round)

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithSession tags recorded rounds with a session name, such as the SSH user.
func WithSession(name string) ModelOption {
	return func(m *Model) {
		m.session = name
	}
}

// WithRoundHook registers a callback invoked for every recorded round.
func WithRoundHook(h RoundHook) ModelOption {
	return func(m *Model) {
		m.onRound = h
	}
}

// WithBackToMenu lets Back leave a finished, stalled or paused round.
// Used when a menu hosts the model.
func WithBackToMenu() ModelOption {
	return func(m *Model) {
		m.allowBack = true
	}
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	history    *HistoryModel
	session    string
	onRound    RoundHook
	allowBack  bool
	backToMenu bool
	quitting   bool
	roundSaved bool   // Whether the current round has been recorded
	lastRound  string // UUID of the most recently recorded round
	loop       uint64 // Tick loop owned by this model
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		loop:       nextLoop(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.history == nil {
			m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.history != nil {
		return m.handleHistoryKey(msg)
	}

	keys := m.keyMapper.Keys()
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.History):
		if m.store != nil {
			m.history = newEmbeddedHistory(m.store, m.levelID(), m.config.ScreenW, m.config.ScreenH)
		}
		return m, nil
	case key.Matches(msg, keys.Restart):
		m.restart()
		return m, nil
	case m.allowBack && key.Matches(msg, keys.Back):
		st := m.game.State()
		if st.GameOver || st.Stalled || st.Paused {
			m.recordAbandoned()
			m.backToMenu = true
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.recordAbandoned()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleHistoryKey forwards keys to the embedded round history.
func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	updated, cmd := m.history.Update(msg)
	h, ok := updated.(HistoryModel)
	if !ok {
		m.history = nil
		return m, cmd
	}
	if h.IsQuitting() {
		m.recordAbandoned()
		m.quitting = true
		return m, tea.Quit
	}
	if h.closed {
		m.history = nil
		return m, cmd
	}
	m.history = &h
	return m, cmd
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if m.history != nil {
		m.history.resize(msg.Width, msg.Height)
	}

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	m.gameState = m.game.State()

	return m, nil
}

// handleTick processes animation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.history == nil {
		result := m.game.Step(m.inputFrame)
		m.gameState = result.State
	}

	// Record the round on game over (once)
	if m.gameState.GameOver && !m.roundSaved {
		m.recordRound()
	}

	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate, m.loop)
}

// restart starts a new round. An unfinished round with moves is recorded as abandoned.
func (m *Model) restart() {
	m.recordAbandoned()

	if s, ok := m.game.(registry.Seeder); ok {
		m.config.Seed = s.NextSeed()
	} else {
		m.config.Seed = time.Now().UnixNano()
	}
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.roundSaved = false
	m.inputFrame.Clear()
}

// recordAbandoned records the current round if it was played but not finished.
func (m *Model) recordAbandoned() {
	if m.roundSaved {
		return
	}
	rr, ok := m.game.(registry.RoundReporter)
	if !ok || rr.Round().Clicks == 0 {
		return
	}
	m.recordRound()
}

// recordRound persists the current round and its score. Storage errors are
// ignored so the game keeps running without persistence.
func (m *Model) recordRound() {
	m.roundSaved = true

	rr, ok := m.game.(registry.RoundReporter)
	if !ok {
		if m.store != nil && m.gameState.Score > 0 {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.store.SaveScore(m.game.ID(), m.gameState.Score)
		}
		return
	}

	round := roundFromSummary(rr.Round(), m.session)
	if m.store != nil {
		if round.Outcome != storage.OutcomeAbandoned && round.Score > 0 {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.store.SaveScore(round.LevelID, round.Score)
		}
		if id, err := m.store.SaveRound(round); err == nil {
			round.RoundID = id
			m.lastRound = id
		}
	}
	if m.onRound != nil {
		m.onRound(round)
	}
}

// roundFromSummary converts a game's round summary to a storage record.
func roundFromSummary(sum core.RoundSummary, session string) storage.Round {
	outcome := sum.Outcome
	switch outcome {
	case storage.OutcomeWon, storage.OutcomeLost:
	default:
		outcome = storage.OutcomeAbandoned
	}
	return storage.Round{
		LevelID:  sum.Level,
		Seed:     sum.Seed,
		Outcome:  outcome,
		Clicks:   sum.Clicks,
		Absorbed: sum.Absorbed,
		Total:    sum.Total,
		Score:    sum.Score,
		Duration: sum.Duration,
		Session:  session,
	}
}

// levelID returns the level being played, used to preselect the history tab.
func (m Model) levelID() string {
	if rr, ok := m.game.(registry.RoundReporter); ok {
		return rr.Round().Level
	}
	return m.game.ID()
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// LastRound returns the UUID of the most recently recorded round, or "".
func (m Model) LastRound() string {
	return m.lastRound
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".unscrew", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.levelID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.history != nil {
		return m.history.View()
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
