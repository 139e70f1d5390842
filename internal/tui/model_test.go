package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thekrishmellow/life-sorter/internal/store"
	"github.com/thekrishmellow/life-sorter/internal/tracker"
)

func newTestTracker(t *testing.T) *tracker.Tracker {
	t.Helper()
	ctx := context.Background()

	st, err := store.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	tr, err := tracker.New(ctx, st)
	require.NoError(t, err)
	return tr
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// Mutating keys must finish their write before Update returns and must not
// schedule a command: commands run on their own goroutines, and the tracker
// only supports one mutation at a time.
func TestCompleteKeyMutatesBeforeUpdateReturns(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()
	_, err := tr.AddTask(ctx, "write report", tracker.QuadrantSchedule)
	require.NoError(t, err)

	m := newBoardModel(ctx, tr)
	updated, cmd := m.Update(keyMsg("enter"))
	assert.Nil(t, cmd)

	m = updated.(boardModel)
	assert.Equal(t, tracker.PointsPerTask, tr.Points())
	assert.True(t, m.tasks[0].Completed)
	assert.Contains(t, m.lastLog, "pts")
}

func TestRapidCompleteKeysApplyBothAwards(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()
	_, err := tr.AddTask(ctx, "first", tracker.QuadrantDoFirst)
	require.NoError(t, err)
	_, err = tr.AddTask(ctx, "second", tracker.QuadrantDoFirst)
	require.NoError(t, err)

	m := newBoardModel(ctx, tr)
	for _, k := range []string{"c", "j", "c"} {
		updated, cmd := m.Update(keyMsg(k))
		require.Nil(t, cmd, "key %q must not schedule a command", k)
		m = updated.(boardModel)
	}

	assert.Equal(t, 2*tracker.PointsPerTask, tr.Points())
	for _, task := range tr.Tasks() {
		assert.True(t, task.Completed, task.Text)
	}
}

func TestProtocolCheckKeyAwardsOnce(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()
	_, err := tr.AddProtocol(ctx, "morning run")
	require.NoError(t, err)

	m := newBoardModel(ctx, tr)
	for _, k := range []string{"tab", "enter", "enter"} {
		updated, cmd := m.Update(keyMsg(k))
		require.Nil(t, cmd)
		m = updated.(boardModel)
	}

	// The second check of the same day is the tracker's no-op.
	assert.Equal(t, tracker.PointsPerProtocol, tr.Points())
}

func TestDeleteKeyRemovesTask(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()
	_, err := tr.AddTask(ctx, "ephemeral", tracker.QuadrantEliminate)
	require.NoError(t, err)

	m := newBoardModel(ctx, tr)
	updated, cmd := m.Update(keyMsg("d"))
	require.Nil(t, cmd)
	m = updated.(boardModel)

	assert.Empty(t, tr.Tasks())
	assert.Empty(t, m.tasks)
}

func TestQuickAddViaInput(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	m := newBoardModel(ctx, tr)
	updated, _ := m.Update(keyMsg("a")) // the blink command is cosmetic
	m = updated.(boardModel)
	require.True(t, m.inputting)

	updated, _ = m.Update(keyMsg("water plants"))
	m = updated.(boardModel)
	updated, cmd := m.Update(keyMsg("enter"))
	require.Nil(t, cmd)
	m = updated.(boardModel)

	tasks := tr.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "water plants", tasks[0].Text)
	assert.False(t, m.inputting)
}
