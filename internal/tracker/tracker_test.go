package tracker

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thekrishmellow/life-sorter/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	st, err := store.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func newTestTracker(t *testing.T) (*Tracker, *store.Store) {
	t.Helper()
	st := newTestStore(t)
	tr, err := New(context.Background(), st)
	require.NoError(t, err)
	return tr, st
}

func fourShots() []string {
	return []string{"data:image/png;base64,a", "data:image/png;base64,b", "data:image/png;base64,c", "data:image/png;base64,d"}
}

func TestAddAndCompleteTask(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	task, err := tr.AddTask(ctx, "write report", QuadrantSchedule)
	require.NoError(t, err)
	assert.False(t, task.Completed)
	assert.NotZero(t, task.CreatedAt)

	res, err := tr.CompleteTask(ctx, task.ID)
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.True(t, res.Task.Completed)
	assert.GreaterOrEqual(t, res.Task.CompletedAt, res.Task.CreatedAt)
	assert.Equal(t, PointsPerTask, res.PointsAwarded)
	assert.Equal(t, PointsPerTask, tr.Points())

	// Completion happens exactly once; a second attempt is a no-op.
	res2, err := tr.CompleteTask(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, res2.Done)
	assert.Equal(t, PointsPerTask, tr.Points())
}

func TestCompleteTaskStaleID(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	res, err := tr.CompleteTask(ctx, "no-such-id")
	require.NoError(t, err)
	assert.False(t, res.Done)
	assert.Zero(t, tr.Points())
}

func TestDeleteTaskIdempotent(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	task, err := tr.AddTask(ctx, "ephemeral", QuadrantEliminate)
	require.NoError(t, err)

	removed, err := tr.DeleteTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = tr.DeleteTask(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Empty(t, tr.Tasks())
}

func TestAddTaskAutoCategorizes(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	task, err := tr.AddTask(ctx, "URGENT: finish project ASAP", "")
	require.NoError(t, err)
	assert.Equal(t, QuadrantDoFirst, task.Quadrant)

	task, err = tr.AddTask(ctx, "organize desk", "")
	require.NoError(t, err)
	assert.Equal(t, QuadrantSchedule, task.Quadrant)
}

func TestCheckProtocolIdempotentAppend(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	p, err := tr.AddProtocol(ctx, "meditate")
	require.NoError(t, err)

	today := time.Now().Format(time.DateOnly)
	res, err := tr.CheckProtocol(ctx, p.ID, today)
	require.NoError(t, err)
	assert.True(t, res.Done)
	assert.Equal(t, PointsPerProtocol, res.PointsAwarded)

	// Same (id, date) again: completedDates still holds the day exactly once.
	res, err = tr.CheckProtocol(ctx, p.ID, today)
	require.NoError(t, err)
	assert.False(t, res.Done)
	assert.Equal(t, PointsPerProtocol, tr.Points())

	got := tr.Protocols()[0].CompletedDates
	assert.Equal(t, []string{today}, got)
}

func TestCheckProtocolRejectsBadDates(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	p, err := tr.AddProtocol(ctx, "sleep by 23:00")
	require.NoError(t, err)

	res, err := tr.CheckProtocol(ctx, p.ID, "not-a-date")
	require.NoError(t, err)
	assert.False(t, res.Done)

	// A day before the protocol existed never enters the set.
	yesterday := time.Now().AddDate(0, 0, -1).Format(time.DateOnly)
	res, err = tr.CheckProtocol(ctx, p.ID, yesterday)
	require.NoError(t, err)
	assert.False(t, res.Done)
	assert.Empty(t, tr.Protocols()[0].CompletedDates)
	assert.Zero(t, tr.Points())
}

func TestNewSessionEnforcesProofFloor(t *testing.T) {
	tr, _ := newTestTracker(t)

	_, err := tr.NewSession([]string{"a", "b", "c"}, "not enough")
	require.ErrorIs(t, err, ErrTooFewScreenshots)
	assert.Empty(t, tr.Sessions())
	assert.Zero(t, tr.Points())
}

func TestAddSessionPrependsAndAwards(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	first, err := tr.NewSession(fourShots(), "first")
	require.NoError(t, err)
	_, err = tr.AddSession(ctx, first)
	require.NoError(t, err)

	second, err := tr.NewSession(fourShots(), "second")
	require.NoError(t, err)
	res, err := tr.AddSession(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, PointsPerSession, res.PointsAwarded)

	sessions := tr.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, "second", sessions[0].Notes)
	assert.Equal(t, "first", sessions[1].Notes)
	assert.Equal(t, 2*PointsPerSession, tr.Points())
}

func TestDeleteSessionIdempotent(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	s, err := tr.NewSession(fourShots(), "")
	require.NoError(t, err)
	_, err = tr.AddSession(ctx, s)
	require.NoError(t, err)

	removed, err := tr.DeleteSession(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = tr.DeleteSession(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestActivityPointsFloored(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	a, err := tr.NewActivity("Learning", "read papers", 2.5, time.Now())
	require.NoError(t, err)

	res, err := tr.AddActivity(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, 50, res.PointsAwarded) // floor(20 x 2.5)

	a2, err := tr.NewActivity("Learning", "short skim", 0.49, time.Now())
	require.NoError(t, err)
	res, err = tr.AddActivity(ctx, a2)
	require.NoError(t, err)
	assert.Equal(t, 9, res.PointsAwarded) // floor(9.8)
}

func TestNewActivityValidation(t *testing.T) {
	tr, _ := newTestTracker(t)

	_, err := tr.NewActivity("Project", "", 1, time.Now())
	assert.Error(t, err)

	_, err = tr.NewActivity("Project", "something", 0, time.Now())
	assert.Error(t, err)

	_, err = tr.NewActivity("Project", "something", -2, time.Now())
	assert.Error(t, err)
}

func TestLevelUpCrossesThreshold(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, KeyPoints, "950"))
	require.NoError(t, st.Set(ctx, KeyLevel, "1"))

	tr, err := New(ctx, st)
	require.NoError(t, err)
	require.Equal(t, 950, tr.Points())
	require.Equal(t, 1, tr.Level())

	s, err := tr.NewSession(fourShots(), "")
	require.NoError(t, err)
	res, err := tr.AddSession(ctx, s)
	require.NoError(t, err)

	assert.Equal(t, 1050, tr.Points())
	assert.Equal(t, 2, tr.Level())
	assert.True(t, res.LevelUp)
	assert.Equal(t, 1, res.LevelBefore)
	assert.Equal(t, 2, res.LevelAfter)
}

func TestLevelUpSingleStepPerAward(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	// One award of 4000 points crosses several thresholds but advances
	// exactly one level.
	a, err := tr.NewActivity("Hackathon", "all-nighter", 200, time.Now())
	require.NoError(t, err)
	res, err := tr.AddActivity(ctx, a)
	require.NoError(t, err)

	assert.Equal(t, 4000, res.PointsAwarded)
	assert.Equal(t, 4000, tr.Points())
	assert.Equal(t, 2, tr.Level())
}

func TestRoundTripRehydrate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	tr, err := New(ctx, st)
	require.NoError(t, err)

	_, err = tr.AddTask(ctx, "study for the exam", "")
	require.NoError(t, err)
	task, err := tr.AddTask(ctx, "water plants", QuadrantEliminate)
	require.NoError(t, err)
	_, err = tr.CompleteTask(ctx, task.ID)
	require.NoError(t, err)

	p, err := tr.AddProtocol(ctx, "morning run")
	require.NoError(t, err)
	_, err = tr.CheckProtocol(ctx, p.ID, time.Now().Format(time.DateOnly))
	require.NoError(t, err)

	s, err := tr.NewSession(fourShots(), "two problems solved")
	require.NoError(t, err)
	_, err = tr.AddSession(ctx, s)
	require.NoError(t, err)

	a, err := tr.NewActivity("Research", "paper reading", 1.5, time.Now())
	require.NoError(t, err)
	_, err = tr.AddActivity(ctx, a)
	require.NoError(t, err)

	// A fresh tracker over the same store sees identical state.
	reloaded, err := New(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, tr.Tasks(), reloaded.Tasks())
	assert.Equal(t, tr.Protocols(), reloaded.Protocols())
	assert.Equal(t, tr.Sessions(), reloaded.Sessions())
	assert.Equal(t, tr.Activities(), reloaded.Activities())
	assert.Equal(t, tr.Points(), reloaded.Points())
	assert.Equal(t, tr.Level(), reloaded.Level())
}

func TestHydrateDiscardsMalformedState(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, KeyTasks, "{not json"))
	require.NoError(t, st.Set(ctx, KeyPoints, "many"))
	require.NoError(t, st.Set(ctx, KeyLevel, "-3"))

	tr, err := New(ctx, st)
	require.NoError(t, err)
	assert.Empty(t, tr.Tasks())
	assert.Zero(t, tr.Points())
	assert.Equal(t, 1, tr.Level())
}

func TestReset(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	tr, err := New(ctx, st)
	require.NoError(t, err)
	task, err := tr.AddTask(ctx, "doomed", QuadrantDoFirst)
	require.NoError(t, err)
	_, err = tr.CompleteTask(ctx, task.ID)
	require.NoError(t, err)

	require.NoError(t, tr.Reset(ctx))
	assert.Empty(t, tr.Tasks())
	assert.Zero(t, tr.Points())
	assert.Equal(t, 1, tr.Level())

	_, ok, err := st.Get(ctx, KeyTasks)
	require.NoError(t, err)
	assert.False(t, ok)

	reloaded, err := New(ctx, st)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Tasks())
	assert.Equal(t, 1, reloaded.Level())
}

func TestPersistedCounterLayout(t *testing.T) {
	tr, st := newTestTracker(t)
	ctx := context.Background()

	task, err := tr.AddTask(ctx, "one", QuadrantSchedule)
	require.NoError(t, err)
	_, err = tr.CompleteTask(ctx, task.ID)
	require.NoError(t, err)

	raw, ok, err := st.Get(ctx, KeyPoints)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, strconv.Itoa(PointsPerTask), raw)

	raw, ok, err = st.Get(ctx, KeyLevel)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1", raw)
}
