package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/depthscraper/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"vim down", runeKey("j"), core.ActionDown, false},
		{"wasd left", runeKey("a"), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"slot 1", runeKey("1"), core.ActionSlot1, false},
		{"slot 3", runeKey("3"), core.ActionSlot3, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionConfirm, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionBack, false},
		{"restart", runeKey("r"), core.ActionRestart, false},
		{"quit", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.quit, quit)
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	assert.False(t, km.MapKeyToFrame(runeKey("2"), &frame))
	assert.False(t, km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyEnter}, &frame))
	assert.True(t, frame.Has(core.ActionSlot2))
	assert.True(t, frame.Has(core.ActionConfirm))

	assert.True(t, km.MapKeyToFrame(runeKey("q"), &frame))
	assert.False(t, frame.Has(core.ActionQuit), "quit is reported, not queued")
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	assert.Equal(t, MenuActionUp, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyUp}))
	assert.Equal(t, MenuActionDown, km.MapKeyToMenuAction(runeKey("j")))
	assert.Equal(t, MenuActionSelect, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, MenuActionBack, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEscape}))
	assert.Equal(t, MenuActionScoreboard, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}))
	assert.Equal(t, MenuActionQuit, km.MapKeyToMenuAction(runeKey("q")))
	assert.Equal(t, MenuActionNone, km.MapKeyToMenuAction(runeKey("z")))
}
