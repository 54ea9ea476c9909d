package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/depthscraper/internal/core"
	"github.com/vovakirdan/depthscraper/internal/highscore"
	"github.com/vovakirdan/depthscraper/internal/registry"
	"github.com/vovakirdan/depthscraper/internal/storage"
)

// MenuItem represents a selectable mode in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Best   int // Best recorded score, 0 when none
}

// bestMsg carries the best scores per mode.
type bestMsg map[string]int

// MenuModel is the Bubble Tea model for the mode picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when the user picks a mode
	openScoreboard bool      // True if the user pressed Tab
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title})
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init loads the best score of every mode.
func (m MenuModel) Init() tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	ids := make([]string, len(m.items))
	for i, it := range m.items {
		ids[i] = it.GameID
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), highscore.DefaultTimeout)
		defer cancel()
		best := make(bestMsg, len(ids))
		for _, id := range ids {
			if v, err := store.HighScore(ctx, id); err == nil {
				best[id] = v
			}
		}
		return best
	}
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil

	case bestMsg:
		for i := range m.items {
			m.items[i].Best = msg[m.items[i].GameID]
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		menuTitleStyle.Render("D E P T H S C R A P E R"),
		"",
		menuDimStyle.Render("Select a mode"),
		"",
	}

	for i, item := range m.items {
		best := "-"
		if item.Best > 0 {
			best = fmt.Sprintf("%d", item.Best)
		}
		line := fmt.Sprintf("%-24s best %6s", item.Title, best)
		if i == m.cursor {
			lines = append(lines, menuActiveStyle.Render("> "+line))
		} else {
			lines = append(lines, menuItemStyle.Render("  "+line))
		}
	}

	lines = append(lines, "", menuDimStyle.Render("↑/↓ navigate  enter select  tab scores  q quit"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		strings.Join(lines, "\n"))
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result summarizes how the menu ended.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}
	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
