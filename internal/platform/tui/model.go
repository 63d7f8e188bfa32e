package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/astroidz/internal/config"
	"github.com/vovakirdan/astroidz/internal/core"
	"github.com/vovakirdan/astroidz/internal/engine"
	"github.com/vovakirdan/astroidz/internal/games/asteroids"
	"github.com/vovakirdan/astroidz/internal/leaderboard"
)

// mode is the screen the model is showing.
type mode int

const (
	modePlay mode = iota
	modeNameEntry
	modeScores
)

// Options configures a game model.
type Options struct {
	Config  config.AsteroidsConfig
	Runtime core.RuntimeConfig

	// Board receives finished games. Nil disables name entry.
	Board *leaderboard.Board

	// Status is the HUD connectivity label. Empty keeps the game default.
	Status string

	// Logger must not write to the terminal the program draws on.
	Logger *log.Logger

	// Clock drives held-key expiry. Nil uses time.Now.
	Clock func() time.Time

	// ScreenshotDir defaults to ~/.astroidz/screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model for one player's game: the field, the name
// prompt after a game over, and the resulting scoreboard.
type Model struct {
	game    *asteroids.Game
	sched   *engine.Scheduler
	held    *HeldKeys
	keys    KeyMap
	help    help.Model
	screen  *core.Screen
	board   *leaderboard.Board
	logger  *log.Logger
	config  core.RuntimeConfig
	nameMax int
	shotDir string

	mode     mode
	name     textinput.Model
	nameErr  string
	pending  int // score waiting for a name
	scores   ScoreboardModel
	handled  bool // current game over already went through the board
	blurred  bool
	quitting bool
	lastShot string
}

// NewModel creates a model with a fresh, idle game.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	game := asteroids.New(opts.Config)
	if opts.Status != "" {
		game.SetServerStatus(opts.Status)
	}
	game.Reset(cfg)

	nameMax := opts.Config.Leaderboard.NameMaxLen
	if nameMax <= 0 {
		nameMax = leaderboard.DefaultNameMaxLen
	}

	ti := textinput.New()
	ti.Placeholder = "YOUR NAME"
	ti.CharLimit = nameMax
	ti.Width = nameMax + 1

	return Model{
		game:    game,
		sched:   engine.New(game, logger),
		held:    NewHeldKeys(HoldDuration, opts.Clock),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		screen:  core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		board:   opts.Board,
		logger:  logger,
		config:  cfg,
		nameMax: nameMax,
		shotDir: opts.ScreenshotDir,
		name:    ti,
	}
}

// playHeight leaves the bottom row for the help bar.
func playHeight(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.BlurMsg:
		m.blurred = true
		m.sched.Pause()
		return m, nil

	case tea.FocusMsg:
		m.blurred = false
		if m.mode == modePlay {
			m.sched.Resume()
		}
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	if m.mode == modeNameEntry {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes a key press to the active screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.mode {
	case modeNameEntry:
		return m.handleNameKey(msg)
	case modeScores:
		return m.handleScoresKey(msg)
	}

	if msg.String() == "ctrl+s" {
		m.lastShot = m.saveScreenshot()
		return m, nil
	}

	m.lastShot = ""
	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	m.held.Press(action)
	return m, nil
}

func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyEsc:
		return m.showScores(0)
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	m.nameErr = ""
	return m, cmd
}

func (m Model) handleScoresKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.PlayAgain():
		m.resume()
		m.held.Press(core.ActionRestart)
		return m, nil
	case m.scores.IsGoingBack():
		m.resume()
		return m, nil
	}
	return m, cmd
}

// handleResize processes window resize events. The renderer rescales the
// world, so the round keeps going.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playHeight(msg.Height))
	m.help.Width = msg.Width

	next, _ := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)
	return m, nil
}

// handleTick advances the game by one tick with the currently held keys.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	snap, ran := m.sched.Step(m.held.Frame())
	if ran {
		m = m.afterTick(snap.State)
	}
	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.mode == modeNameEntry && !m.name.Focused() {
		cmds = append(cmds, m.name.Focus())
	}
	return m, tea.Batch(cmds...)
}

// afterTick opens the name prompt once per game over when the score makes
// the board.
func (m Model) afterTick(st core.GameState) Model {
	if st.Phase != core.PhaseGameOver {
		m.handled = false
		return m
	}
	if m.handled {
		return m
	}
	m.handled = true

	if m.board == nil || st.Score <= 0 {
		return m
	}
	records, err := m.board.Top(context.Background())
	if err != nil {
		m.logger.Error("could not read leaderboard", "error", err)
		return m
	}
	if leaderboard.Rank(records, st.Score, m.board.Size()) == 0 {
		return m
	}

	m.sched.Pause()
	m.held.Reset()
	m.mode = modeNameEntry
	m.pending = st.Score
	m.nameErr = ""
	m.name.Reset()
	return m
}

// submit sends the typed name to the board.
func (m Model) submit() (tea.Model, tea.Cmd) {
	records, err := m.board.Submit(context.Background(), m.name.Value(), m.pending)
	switch {
	case errors.Is(err, leaderboard.ErrEmptyName):
		m.nameErr = "Enter a name to save your score"
		return m, nil
	case err != nil:
		m.logger.Error("could not save score", "error", err)
		m.nameErr = "Could not save score (esc to skip)"
		return m, nil
	}

	name, _ := leaderboard.NormalizeName(m.name.Value(), m.nameMax)
	m.scores = NewScoreboardModel(records, m.config.ScreenW, m.config.ScreenH).
		WithHighlight(placement(records, name, m.pending))
	m.mode = modeScores
	m.name.Blur()
	return m, nil
}

// showScores switches to the scoreboard without submitting.
func (m Model) showScores(highlight int) (tea.Model, tea.Cmd) {
	var records []leaderboard.ScoreRecord
	if m.board != nil {
		var err error
		records, err = m.board.Top(context.Background())
		if err != nil {
			m.logger.Error("could not read leaderboard", "error", err)
		}
	}
	m.scores = NewScoreboardModel(records, m.config.ScreenW, m.config.ScreenH).WithHighlight(highlight)
	m.mode = modeScores
	m.name.Blur()
	return m, nil
}

// resume returns to the field after the scoreboard.
func (m *Model) resume() {
	m.mode = modePlay
	m.held.Reset()
	if !m.blurred {
		m.sched.Resume()
	}
}

// placement finds the 1-based row of the newest entry for name and score.
// Ties keep submission order, so the newest is the last match.
func placement(records []leaderboard.ScoreRecord, name string, score int) int {
	rank := 0
	for i, r := range records {
		if r.Name == name && r.Score == score {
			rank = i + 1
		}
	}
	return rank
}

// saveScreenshot writes the current frame as plain text and returns its path.
func (m *Model) saveScreenshot() string {
	m.game.Render(m.screen)

	dir := m.shotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.logger.Warn("screenshot skipped", "error", err)
			return ""
		}
		dir = filepath.Join(home, ".astroidz", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return ""
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return ""
	}
	m.logger.Info("screenshot saved", "path", path)
	return path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeNameEntry:
		return m.nameEntryView()
	case modeScores:
		return m.scores.View()
	}

	m.game.Render(m.screen)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	footer := m.help.View(m.keys)
	if m.lastShot != "" {
		footer = "saved " + m.lastShot
	}
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(footer)
}

func (m Model) nameEntryView() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warn := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	body := title.Render("NEW HIGH SCORE") + "\n\n" +
		fmt.Sprintf("Score: %d", m.pending) + "\n\n" +
		m.name.View() + "\n"
	if m.nameErr != "" {
		body += warn.Render(m.nameErr) + "\n"
	}
	body += "\n" + hint.Render("enter: save  esc: skip")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 3).
		Render(body)
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, box)
}

// Snapshot returns the latest frame. Used by the SSH server for session logs.
func (m Model) Snapshot() asteroids.Snapshot {
	return m.sched.Latest()
}

// Run starts the Bubble Tea program for one local player.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
