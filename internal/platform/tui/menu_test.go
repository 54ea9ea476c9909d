package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/depthscraper/internal/games/depthscraper"
	"github.com/vovakirdan/depthscraper/internal/storage"
)

func sendMenu(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	require.True(t, ok)
	return mm
}

func TestMenuListsModes(t *testing.T) {
	m := NewMenuModel(nil, testConfig(80, 24))
	require.Len(t, m.items, 2)
	assert.Equal(t, depthscraper.IDMoves, m.items[0].GameID)
	assert.Equal(t, depthscraper.IDScore, m.items[1].GameID)
	assert.Nil(t, m.Init(), "nothing to load without a store")

	view := m.View()
	assert.Contains(t, view, "Depthscraper")
	assert.Contains(t, view, "Depthscraper (Endless)")
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, testConfig(80, 24))
	m = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	res := m.Result()
	assert.Equal(t, depthscraper.IDScore, res.GameID, "cursor stops at the last item")
	assert.False(t, res.Quit)
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := sendMenu(t, NewMenuModel(nil, testConfig(80, 24)), tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.Result().WantsScoreboard)

	m = sendMenu(t, NewMenuModel(nil, testConfig(80, 24)), runeKey("q"))
	assert.True(t, m.Result().Quit)
	assert.Empty(t, m.View())
}

func TestMenuBestScores(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	_, err := store.SaveScore(ctx, storage.Score{Mode: depthscraper.IDMoves, Score: 30, PlayerName: "a", PlayerID: "a"})
	require.NoError(t, err)
	_, err = store.SaveScore(ctx, storage.Score{Mode: depthscraper.IDMoves, Score: 55, PlayerName: "b", PlayerID: "b"})
	require.NoError(t, err)

	m := NewMenuModel(store, testConfig(80, 24))
	cmd := m.Init()
	require.NotNil(t, cmd)
	m = sendMenu(t, m, cmd())

	assert.Equal(t, 55, m.items[0].Best)
	assert.Zero(t, m.items[1].Best)
	assert.Contains(t, m.View(), "55")
}

func TestScoreboard(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	for _, s := range []storage.Score{
		{Mode: depthscraper.IDMoves, Score: 12, PlayerName: "me", PlayerID: "p-me", Moves: 9},
		{Mode: depthscraper.IDMoves, Score: 40, PlayerName: "rival", PlayerID: "p-rival", Moves: 20},
	} {
		_, err := store.SaveScore(ctx, s)
		require.NoError(t, err)
	}

	m := NewScoreboardModel(store, "p-me", 100, 30)
	require.Len(t, m.scores, 2)
	rows := m.table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"#1", "rival", "40", "20"}, withoutDate(rows[0]))
	assert.Equal(t, []string{"#2*", "me", "12", "9"}, withoutDate(rows[1]))
	assert.Equal(t, 2, m.stats.GamesCount)
	assert.Contains(t, m.View(), "2 games")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	assert.Empty(t, m.scores, "endless mode has no scores")
	assert.Contains(t, m.View(), "No scores recorded yet")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = next.(ScoreboardModel)
	assert.True(t, m.IsGoingBack())
}

// withoutDate drops the date column.
func withoutDate(row []string) []string {
	return row[:4]
}

func TestSessionFlow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	depthscraper.SetConfigPath("")
	depthscraper.SetDifficultyPreset("")

	svc := Services{PlayerID: "p-1", PlayerName: "ssh-user"}
	var m tea.Model = NewSessionModel(svc, testConfig(80, 24))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, screenScoreboard, m.(SessionModel).screen)
	assert.Contains(t, m.View(), "Scores are not being recorded")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	require.Equal(t, screenMenu, m.(SessionModel).screen)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenGame, m.(SessionModel).screen)
	assert.Equal(t, depthscraper.IDMoves, m.(SessionModel).gameModel.game.ID())

	m, cmd := m.Update(runeKey("q"))
	assert.True(t, m.(SessionModel).quitting)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
