package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thekrishmellow/life-sorter/internal/tracker"
)

// A fixed reference point keeps every bucket boundary deterministic:
// Wednesday 2024-06-12 15:30 UTC.
var testNow = time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)

func completedTask(at time.Time) tracker.Task {
	return tracker.Task{
		ID:          "t-" + at.Format("20060102-150405"),
		Text:        "done",
		Quadrant:    tracker.QuadrantSchedule,
		Completed:   true,
		CreatedAt:   at.Add(-time.Hour).UnixMilli(),
		CompletedAt: at.UnixMilli(),
	}
}

func sessionOn(at time.Time) tracker.CodingSession {
	return tracker.CodingSession{
		ID:          "s-" + at.Format("20060102-150405"),
		Date:        at.Format(time.RFC3339),
		Screenshots: []string{"a", "b", "c", "d"},
	}
}

func TestWeeklyCompletions(t *testing.T) {
	tasks := []tracker.Task{
		completedTask(testNow),                           // today
		completedTask(testNow.Add(-time.Hour)),           // today
		completedTask(testNow.AddDate(0, 0, -2)),         // two days ago
		completedTask(testNow.AddDate(0, 0, -7)),         // outside the window
		{ID: "pending", Text: "open", CreatedAt: testNow.UnixMilli()},
	}

	week := WeeklyCompletions(tasks, testNow)
	require.Len(t, week, 7)

	assert.Equal(t, "Thu", week[0].Label) // oldest first
	assert.Equal(t, "Wed", week[6].Label)
	assert.Equal(t, 2, week[6].Count)
	assert.Equal(t, 1, week[4].Count)
	for i, d := range week {
		if i != 4 && i != 6 {
			assert.Zero(t, d.Count, "day %s", d.Date)
		}
	}
}

func TestCompletionRate(t *testing.T) {
	assert.Zero(t, CompletionRate(nil)) // no tasks: defined as 0

	tasks := []tracker.Task{
		completedTask(testNow),
		{ID: "p1"},
		{ID: "p2"},
	}
	assert.Equal(t, 33, CompletionRate(tasks)) // round(100/3)
	assert.Equal(t, 1, CompletedCount(tasks))
}

func TestCategoryHours(t *testing.T) {
	activities := []tracker.Activity{
		{ID: "a1", Category: "Learning", Hours: 1.5, Date: "2024-06-12T09:00:00Z"},
		{ID: "a2", Category: "Learning", Hours: 0.5, Date: "2024-06-12T20:00:00Z"},
		{ID: "a3", Category: "Project", Hours: 2, Date: "2024-06-12T10:00:00Z"},
		{ID: "a4", Category: "Project", Hours: 4, Date: "2024-06-11T10:00:00Z"},
	}

	dist := CategoryHours(activities, "2024-06-12")
	assert.Equal(t, map[string]float64{"Learning": 2, "Project": 2}, dist)

	assert.Empty(t, CategoryHours(activities, "2024-06-10"))
}

func TestStreakConsecutiveDays(t *testing.T) {
	sessions := []tracker.CodingSession{
		sessionOn(testNow),
		sessionOn(testNow.AddDate(0, 0, -1)),
		sessionOn(testNow.AddDate(0, 0, -2)),
		// gap at -3
		sessionOn(testNow.AddDate(0, 0, -4)),
	}
	assert.Equal(t, 3, Streak(sessions, testNow))
}

func TestStreakStartsYesterdayWhenTodayEmpty(t *testing.T) {
	sessions := []tracker.CodingSession{
		sessionOn(testNow.AddDate(0, 0, -1)),
	}
	assert.Equal(t, 1, Streak(sessions, testNow))
}

func TestStreakEdges(t *testing.T) {
	assert.Zero(t, Streak(nil, testNow))

	// Only a session two days back: neither today nor yesterday, streak 0.
	sessions := []tracker.CodingSession{sessionOn(testNow.AddDate(0, 0, -2))}
	assert.Zero(t, Streak(sessions, testNow))

	// Multiple sessions on one day still count it once.
	sameDay := []tracker.CodingSession{
		sessionOn(testNow),
		sessionOn(testNow.Add(-2 * time.Hour)),
	}
	assert.Equal(t, 1, Streak(sameDay, testNow))

	// Malformed dates are skipped, not fatal.
	withJunk := append(sameDay, tracker.CodingSession{ID: "junk", Date: "yesterday-ish"})
	assert.Equal(t, 1, Streak(withJunk, testNow))
}

func TestProtocolSeries(t *testing.T) {
	dayBefore := func(i int) string { return testNow.AddDate(0, 0, -i).Format(time.DateOnly) }

	protocols := []tracker.LifeProtocol{
		{
			ID:             "p1",
			Text:           "run",
			CreatedAt:      testNow.AddDate(0, 0, -10).UnixMilli(),
			CompletedDates: []string{dayBefore(0), dayBefore(1), dayBefore(2)},
		},
		{
			ID:   "p2",
			Text: "read",
			// Created mid-window: not active for the older buckets.
			CreatedAt:      testNow.AddDate(0, 0, -1).UnixMilli(),
			CompletedDates: []string{dayBefore(0)},
		},
	}

	series := ProtocolSeries(protocols, testNow)
	require.Len(t, series, 7)

	// Oldest buckets: only p1 active, unchecked.
	assert.Zero(t, series[0].Score)
	// Two days ago: only p1 active and checked.
	assert.Equal(t, 100, series[4].Score)
	// Yesterday: both active, only p1 checked.
	assert.Equal(t, 50, series[5].Score)
	// Today: both active and checked.
	assert.Equal(t, 100, series[6].Score)
}

func TestProtocolSeriesNoProtocols(t *testing.T) {
	series := ProtocolSeries(nil, testNow)
	require.Len(t, series, 7)
	for _, d := range series {
		assert.Zero(t, d.Score)
	}
}

func TestTodayEfficiency(t *testing.T) {
	assert.Zero(t, TodayEfficiency(nil, testNow))

	today := testNow.Format(time.DateOnly)
	protocols := []tracker.LifeProtocol{
		{ID: "p1", CompletedDates: []string{today}},
		{ID: "p2", CompletedDates: []string{}},
		{ID: "p3", CompletedDates: []string{today}},
	}
	assert.Equal(t, 67, TodayEfficiency(protocols, testNow)) // round(200/3)
}
