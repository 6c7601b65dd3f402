// Package unscrew provides the layered unscrew puzzle for the terminal platform.
package unscrew

import (
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-unscrew/internal/config"
	platformcore "github.com/vovakirdan/tui-unscrew/internal/core"
	"github.com/vovakirdan/tui-unscrew/internal/games/unscrew/core"
	"github.com/vovakirdan/tui-unscrew/internal/games/unscrew/levels"
	"github.com/vovakirdan/tui-unscrew/internal/registry"
)

// GameID is the registry identifier of the puzzle.
const GameID = "unscrew"

// Screen chrome around the play area.
const (
	hudHeight    = 2
	footerHeight = 3
	minScreenW   = 40
	minScreenH   = 12
)

// Package-level variables for configuration
var (
	logger           = log.New(io.Discard)
	configPath       string
	difficultyPreset config.DifficultyPreset
	levelRef         string
)

// SetLogger routes adapter logs to l. A nil logger discards them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// SetConfigPath sets a custom config file path. Empty means use the search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the preset applied on top of the loaded config.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetLevel selects the level for new games: a builtin level ID, a path to a
// YAML level file, or "" / "random" for a generated level.
func SetLevel(ref string) {
	levelRef = ref
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

var (
	_ registry.RoundReporter = (*Game)(nil)
	_ registry.Resizer       = (*Game)(nil)
	_ registry.Seeder        = (*Game)(nil)
	_ registry.LevelSelector = (*Game)(nil)
)

// Game adapts the rules engine to the terminal platform.
type Game struct {
	cfg       config.UnscrewConfig
	cfgLoaded bool
	palette   []platformcore.Color
	ref       string        // Level selection as given
	source    *levels.Level // Nil for generated levels
	loadErr   string

	engine *core.Engine
	view   core.View
	vp     viewport
	seed   int64
	seeds  *rand.Rand

	screenW  int
	screenH  int
	tickRate int
	tick     uint64
	tooSmall bool
	paused   bool
	showHelp bool

	cursor   platformcore.Point // Screen cell
	targetID int                // Piece the cursor was jumped to, or -1
	tabIndex int

	message      string
	messageTicks int
	emptiedAt    map[int]uint64 // Layer index -> tick it became empty

	now      func() time.Time
	started  time.Time
	finished time.Time
}

// New creates a game configured from the package-level settings.
func New() *Game {
	return &Game{ref: levelRef, targetID: -1, now: time.Now}
}

// NewWithConfig creates a game with an explicit configuration and level selection.
func NewWithConfig(cfg config.UnscrewConfig, ref string) *Game {
	g := &Game{ref: ref, targetID: -1, now: time.Now}
	g.setConfig(cfg)
	return g
}

func (g *Game) setConfig(cfg config.UnscrewConfig) {
	g.cfg = cfg
	g.cfgLoaded = true
	g.palette = paletteColors(cfg.Display.Palette)
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Unscrew"
}

// LevelID returns the ID of the level being played.
func (g *Game) LevelID() string {
	if g.source != nil {
		return g.source.ID
	}
	return levels.RandomID
}

// SelectLevel chooses the level the next Reset loads: a builtin ID,
// a path to a level file, or "random".
func (g *Game) SelectLevel(ref string) {
	g.ref = ref
}

// Engine returns the rules engine of the current round, or nil before a round starts.
func (g *Game) Engine() *core.Engine {
	return g.engine
}

func loadConfig() config.UnscrewConfig {
	cfg, err := config.Load(configPath, difficultyPreset)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultUnscrewConfig()
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// ResolveLevel loads the level a reference names: nil for a generated level,
// a level file for a .yaml/.yml path, otherwise a builtin level ID.
func ResolveLevel(ref string) (*levels.Level, error) {
	if ref == "" || ref == levels.RandomID {
		return nil, nil
	}
	var (
		lvl levels.Level
		err error
	)
	switch strings.ToLower(filepath.Ext(ref)) {
	case ".yaml", ".yml":
		lvl, err = levels.LoadPath(ref)
	default:
		lvl, err = levels.Builtin().LoadByID(ref)
	}
	if err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	if !g.cfgLoaded {
		g.setConfig(loadConfig())
	}
	g.seed = cfg.Seed
	if g.seed == 0 {
		g.seed = time.Now().UnixNano()
	}
	g.seeds = rand.New(rand.NewSource(g.seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = platformcore.DefaultConfig().TickRate
	}

	g.engine = nil
	g.view = core.View{}
	g.tick = 0
	g.paused = false
	g.showHelp = false
	g.targetID = -1
	g.tabIndex = -1
	g.message = ""
	g.messageTicks = 0
	g.emptiedAt = make(map[int]uint64)
	g.loadErr = ""

	src, err := ResolveLevel(g.ref)
	if err != nil {
		g.loadErr = err.Error()
		logger.Error("cannot load level", "level", g.ref, "err", err)
		return
	}
	g.source = src

	g.layoutScreen()
	if !g.tooSmall {
		g.startRound()
	}
}

// Resize adapts the play area to a new screen size without restarting the round.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.layoutScreen()
	if g.tooSmall {
		return
	}
	if g.engine == nil && g.loadErr == "" && g.seeds != nil {
		g.startRound()
		return
	}
	g.cursor = g.clampCursor(g.cursor)
}

// layoutScreen computes the play area between the HUD and the footer.
func (g *Game) layoutScreen() {
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
	g.vp.area = platformcore.NewRect(0, hudHeight, g.screenW, max(g.screenH-hudHeight-footerHeight, 0))
}

// startRound builds the level for the current seed and play area.
func (g *Game) startRound() {
	rng := core.NewRNG(uint64(g.seed))

	var (
		lv  *core.Level
		err error
	)
	if g.source != nil {
		base := g.cfg.CoreRules(core.DefaultWorldWidth, core.DefaultWorldHeight)
		lv, err = g.source.NewLevel(base, g.cfg.Generation.Inset, rng)
	} else {
		world := generatedWorld(g.vp.area)
		r := g.cfg.CoreRules(world.W, world.H)
		r.PieceRadius = scaledRadius(r.PieceRadius, world.W, world.H)
		lv, err = core.NewRandomLevel(r, g.cfg.GenParams(world.W, world.H), rng)
	}
	if err != nil {
		g.loadErr = err.Error()
		logger.Error("cannot build level", "level", g.LevelID(), "err", err)
		return
	}

	g.engine = core.NewEngine(lv, core.NotifierFuncs{Win: g.onWin, Fail: g.onFail})
	g.refresh()
	g.vp.world = g.view.World
	g.started = g.now()
	g.finished = time.Time{}

	g.cursor = g.vp.area.Center()
	g.jump(1)

	logger.Debug("round started",
		"level", g.LevelID(),
		"seed", g.seed,
		"pieces", lv.Total(),
		"layers", lv.Stack().Len(),
		"policy", lv.Rules().RefreshPolicy,
	)
}

func (g *Game) onWin() {
	g.finished = g.now()
	logger.Info("round won", "level", g.LevelID(), "seed", g.seed, "clicks", g.engine.Clicks())
}

func (g *Game) onFail() {
	g.finished = g.now()
	logger.Info("round lost", "level", g.LevelID(), "seed", g.seed, "clicks", g.engine.Clicks())
}

// NextSeed returns a seed for the next round derived from the current one.
func (g *Game) NextSeed() int64 {
	if g.seeds == nil {
		return time.Now().UnixNano()
	}
	return g.seeds.Int63()
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}

	if in.Has(platformcore.ActionHelp) {
		g.showHelp = !g.showHelp
	}
	if in.Has(platformcore.ActionPause) && g.engine != nil && !g.over() {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall || g.engine == nil || g.over() {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionUp) {
		g.moveCursor(0, -1)
	}
	if in.Has(platformcore.ActionDown) {
		g.moveCursor(0, 1)
	}
	if in.Has(platformcore.ActionLeft) {
		g.moveCursor(-1, 0)
	}
	if in.Has(platformcore.ActionRight) {
		g.moveCursor(1, 0)
	}
	if in.Has(platformcore.ActionNext) {
		g.jump(1)
	}
	if in.Has(platformcore.ActionPrev) {
		g.jump(-1)
	}

	if in.Has(platformcore.ActionSelect) {
		g.clickCell(g.cursor)
	}
	if in.Click != nil && g.vp.area.Contains(*in.Click) && !g.over() {
		if *in.Click != g.cursor {
			g.targetID = -1
		}
		g.cursor = *in.Click
		g.clickCell(g.cursor)
	}

	return platformcore.StepResult{State: g.State()}
}

func (g *Game) over() bool {
	return g.engine != nil && g.engine.State().Terminal()
}

func (g *Game) clampCursor(c platformcore.Point) platformcore.Point {
	a := g.vp.area
	if a.Empty() {
		return c
	}
	return platformcore.Point{
		X: platformcore.Clamp(c.X, a.X, a.Right()-1),
		Y: platformcore.Clamp(c.Y, a.Y, a.Bottom()-1),
	}
}

func (g *Game) moveCursor(dx, dy int) {
	g.cursor = g.clampCursor(platformcore.Point{X: g.cursor.X + dx, Y: g.cursor.Y + dy})
	g.targetID = -1
}

// clickablePieces returns the clickable pieces in reading order of their cells.
func (g *Game) clickablePieces() []core.PieceView {
	var out []core.PieceView
	for _, l := range g.view.Layers {
		for _, pv := range l.Pieces {
			if pv.Clickable {
				out = append(out, pv)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := g.vp.toCell(out[i].Pos), g.vp.toCell(out[j].Pos)
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// jump moves the cursor to the next (dir > 0) or previous clickable piece.
func (g *Game) jump(dir int) {
	pieces := g.clickablePieces()
	if len(pieces) == 0 {
		return
	}
	n := len(pieces)
	if g.tabIndex < 0 && dir < 0 {
		g.tabIndex = 0
	}
	g.tabIndex = ((g.tabIndex+dir)%n + n) % n
	pv := pieces[g.tabIndex]
	g.cursor = g.vp.toCell(pv.Pos)
	g.targetID = pv.ID
}

// pieceAt returns the piece whose glyph is visible in cell c, following the paint order.
func (g *Game) pieceAt(c platformcore.Point) (core.PieceView, bool) {
	for i := len(g.view.Layers) - 1; i >= 0; i-- {
		l := g.view.Layers[i]
		if !g.layerDrawn(l) {
			continue
		}
		for j := len(l.Pieces) - 1; j >= 0; j-- {
			pv := l.Pieces[j]
			if g.pieceDrawn(pv) && g.vp.toCell(pv.Pos) == c {
				return pv, true
			}
		}
		if onBorder(g.vp.toCells(l.Rect), c) {
			return core.PieceView{}, false
		}
	}
	return core.PieceView{}, false
}

// pointAt resolves a screen cell to the world point a click there means:
// the jump target, else the center of the piece glyph drawn in the cell,
// else the center of the cell.
func (g *Game) pointAt(c platformcore.Point) core.Point {
	if g.targetID >= 0 {
		for _, l := range g.view.Layers {
			for _, pv := range l.Pieces {
				if pv.ID == g.targetID && g.vp.toCell(pv.Pos) == c {
					return pv.Pos
				}
			}
		}
	}
	if pv, ok := g.pieceAt(c); ok {
		return pv.Pos
	}
	return g.vp.toWorld(c)
}

func (g *Game) clickCell(c platformcore.Point) {
	res := g.engine.HandleClick(g.pointAt(c))
	g.refresh()

	switch res.Outcome {
	case core.OutcomeBlocked:
		g.flash(fmt.Sprintf("Covered %d%% - clear the boards above first", int(res.Coverage*100)))
	case core.OutcomePlaced:
		g.flash(fmt.Sprintf("%s into the %s lane", res.Piece.Color, res.Side))
	case core.OutcomeQueued:
		g.flash(fmt.Sprintf("%s held (%d/%d)", res.Piece.Color, len(g.view.Queue), g.view.QueueCapacity))
	case core.OutcomeOverflow:
		g.flash("Holding queue overflowed")
	}
	if len(res.Drained) > 0 {
		g.flash(fmt.Sprintf("%s | %d released from the queue", g.message, len(res.Drained)))
	}
	if res.Outcome.Changed() {
		g.targetID = -1
		g.tabIndex = -1
	}
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.messageTicks = 2 * g.tickRate
}

// refresh rebuilds the view snapshot and records layers that became empty.
func (g *Game) refresh() {
	g.view = g.engine.View()
	for _, l := range g.view.Layers {
		if _, seen := g.emptiedAt[l.Index]; l.Empty && !seen {
			g.emptiedAt[l.Index] = g.tick
		}
	}
}

// score computes points for the round so far.
func (g *Game) score() int {
	if g.engine == nil {
		return 0
	}
	s := g.view.Absorbed * g.cfg.Scoring.PerPiece
	switch g.view.State {
	case core.Won:
		s += g.cfg.Scoring.WinBonus
	case core.Lost:
		s -= len(g.view.Queue) * g.cfg.Scoring.PerQueuedLeft
	}
	return max(s, 0)
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		Score:  g.score(),
		Paused: g.paused,
		Status: g.status(),
	}
	if g.engine != nil {
		st.GameOver = g.over()
		st.Won = g.engine.State() == core.Won
		st.Stalled = g.view.Stalled
	}
	return st
}

func (g *Game) status() string {
	if g.engine == nil {
		return ""
	}
	v := g.view
	return fmt.Sprintf("lanes %s %d/%d | %s %d/%d | queue %d/%d | %d left",
		v.Left.Color, v.Left.Filled, v.Left.Slots,
		v.Right.Color, v.Right.Filled, v.Right.Slots,
		len(v.Queue), v.QueueCapacity, v.Resident)
}

// Round describes the round in progress, or the one that just ended.
func (g *Game) Round() platformcore.RoundSummary {
	sum := platformcore.RoundSummary{
		Seed:    g.seed,
		Level:   g.LevelID(),
		Outcome: "abandoned",
		Score:   g.score(),
	}
	if g.engine == nil {
		return sum
	}
	if g.over() {
		sum.Outcome = g.engine.State().String()
	}
	sum.Clicks = g.engine.Clicks()
	sum.Absorbed = g.view.Absorbed
	sum.Total = g.view.Total
	end := g.finished
	if end.IsZero() {
		end = g.now()
	}
	sum.Duration = end.Sub(g.started)
	return sum
}
