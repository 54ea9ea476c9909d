package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/depthscraper/internal/core"
	"github.com/vovakirdan/depthscraper/internal/highscore"
	"github.com/vovakirdan/depthscraper/internal/registry"
	"github.com/vovakirdan/depthscraper/internal/storage"
)

// Services bundles the collaborators of a game screen.
type Services struct {
	Store      *storage.Store // Optional; without it no scores are kept
	PlayerID   string
	PlayerName string // Prefills the name prompt
	Logger     *log.Logger
}

// gamePhase tracks the screen flow around one game.
type gamePhase int

const (
	phasePlaying    gamePhase = iota
	phaseNaming               // Game over, asking for a name
	phaseSubmitting           // Waiting for the submission to finish
	phaseFinished             // Game over, score handled
)

// scoresMsg carries a leaderboard fetch result.
type scoresMsg struct {
	entries []highscore.Entry
	err     error
}

// submittedMsg reports the end of a score submission.
type submittedMsg struct {
	err error
}

// resizer is implemented by games that keep their progress on resize.
type resizer interface {
	Resize(w, h int)
}

// GameModel is the Bubble Tea model for one running game.
type GameModel struct {
	game        registry.Game
	screen      *core.Screen
	config      core.RuntimeConfig // Full terminal size
	inputFrame  core.InputFrame
	gameState   core.GameState
	keyMapper   *KeyMapper
	scores      *highscore.Service // nil without storage
	board       []highscore.Entry
	nameInput   textinput.Model
	defaultName string
	phase       gamePhase
	logger      *log.Logger
	quitOnBack  bool // Local runs end the program to return to the menu
	quitting    bool
	backToMenu  bool
}

// NewGameModel creates a model for game.
func NewGameModel(game registry.Game, svc Services, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := svc.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var scores *highscore.Service
	if svc.Store != nil {
		scores = highscore.NewService(svc.Store, game.ID(), svc.PlayerID, logger)
	}

	ti := textinput.New()
	ti.Prompt = "Name: "
	ti.Placeholder = highscore.DefaultName
	ti.CharLimit = highscore.MaxNameLen
	ti.Width = highscore.MaxNameLen + 1

	m := GameModel{
		game:        game,
		config:      cfg,
		inputFrame:  core.NewInputFrame(),
		keyMapper:   NewKeyMapper(),
		scores:      scores,
		nameInput:   ti,
		defaultName: svc.PlayerName,
		logger:      logger,
	}
	m.screen = core.NewScreen(m.gameWidth(), cfg.ScreenH)
	return m
}

// showSidebar reports whether the leaderboard fits next to the game.
func (m GameModel) showSidebar() bool {
	return m.scores != nil && m.config.ScreenW >= sidebarMinWidth
}

// gameWidth is the terminal width left for the game itself.
func (m GameModel) gameWidth() int {
	if m.showSidebar() {
		return m.config.ScreenW - sidebarWidth
	}
	return m.config.ScreenW
}

// gameConfig is the runtime config as the game sees it.
func (m GameModel) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenW = m.gameWidth()
	return cfg
}

// Init starts the game, the frame loop and the first leaderboard fetch.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	return tea.Batch(tickCmd(m.config.TickRate), m.fetchCmd())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case scoresMsg:
		if msg.err != nil {
			m.logger.Warn("could not load leaderboard", "game", m.game.ID(), "err", msg.err)
			return m, nil
		}
		m.board = msg.entries
		return m, nil

	case submittedMsg:
		if m.phase == phaseSubmitting {
			m.phase = phaseFinished
		}
		return m, m.fetchCmd()
	}

	if m.phase == phaseNaming {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.phase == phaseNaming {
		return m.handleNameKey(msg)
	}

	keys := m.keyMapper.Keys()
	if m.gameState.GameOver && key.Matches(msg, keys.Menu) {
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleNameKey edits the name prompt shown after a scoring game.
func (m GameModel) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		m.phase = phaseSubmitting
		m.nameInput.Blur()
		e := highscore.Entry{
			Name:  m.nameInput.Value(),
			Score: m.gameState.Score,
			Moves: m.gameState.Move,
		}
		return m, submitCmd(m.scores, e)
	case "esc":
		m.phase = phaseFinished
		m.nameInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// handleResize keeps the game running at the new size when it supports it.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	w := m.gameWidth()
	m.screen.Resize(w, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(w, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.gameConfig())
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.gameConfig())
		m.gameState = m.game.State()
		m.phase = phasePlaying
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()
	for _, ev := range result.Events {
		m.logger.Debug(ev, "game", m.game.ID())
	}

	var cmd tea.Cmd
	if m.gameState.GameOver && m.phase == phasePlaying {
		cmd = m.enterGameOver()
	}
	return m, tea.Batch(tickCmd(m.config.TickRate), cmd)
}

// enterGameOver opens the name prompt for scoring games.
func (m *GameModel) enterGameOver() tea.Cmd {
	m.logger.Info("game over", "game", m.game.ID(), "score", m.gameState.Score, "moves", m.gameState.Move)
	if m.scores == nil || m.gameState.Score <= 0 {
		m.phase = phaseFinished
		return nil
	}
	m.phase = phaseNaming
	m.nameInput.SetValue(m.defaultName)
	m.nameInput.CursorEnd()
	return m.nameInput.Focus()
}

// fetchCmd loads the leaderboard in the background.
func (m GameModel) fetchCmd() tea.Cmd {
	svc := m.scores
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), highscore.DefaultTimeout)
		defer cancel()
		entries, err := svc.Fetch(ctx)
		return scoresMsg{entries: entries, err: err}
	}
}

// submitCmd hands e to the service and reports back once it is stored.
func submitCmd(svc *highscore.Service, e highscore.Entry) tea.Cmd {
	return func() tea.Msg {
		done := make(chan error, 1)
		svc.SubmitAsync(e, func(err error) { done <- err })
		return submittedMsg{err: <-done}
	}
}

// saveScreenshot writes the current screen as plain text under
// ~/.depthscraper/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".depthscraper", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	if m.phase == phaseNaming || m.phase == phaseSubmitting {
		return m.promptView()
	}

	m.game.Render(m.screen)
	view := RenderScreen(m.screen)
	if m.showSidebar() {
		view = lipgloss.JoinHorizontal(lipgloss.Top, view, renderSidebar(m.board))
	}
	return view
}

var (
	promptBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3)
	promptTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	promptHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// promptView asks for the name to record the score under.
func (m GameModel) promptView() string {
	input := m.nameInput.View()
	hint := "enter save  esc skip"
	if m.phase == phaseSubmitting {
		input = "Saving..."
		hint = ""
	}

	panel := promptBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		promptTitleStyle.Render("GAME OVER"),
		"",
		fmt.Sprintf("Score %d in %d moves", m.gameState.Score, m.gameState.Move),
		"",
		input,
		"",
		promptHintStyle.Render(hint),
	))
	if m.showSidebar() {
		panel = lipgloss.JoinHorizontal(lipgloss.Center, panel, "  ", renderSidebar(m.board))
	}
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, panel)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Wait blocks until pending score submissions finish.
func (m GameModel) Wait() {
	if m.scores != nil {
		m.scores.Wait()
	}
}

// Run starts game on the local terminal. It reports whether the player
// asked to return to the menu.
func Run(game registry.Game, svc Services, cfg core.RuntimeConfig) (bool, error) {
	model := NewGameModel(game, svc, cfg)
	model.quitOnBack = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()

	m, ok := final.(GameModel)
	if !ok {
		return false, err
	}
	m.Wait()
	return m.BackToMenu(), err
}
