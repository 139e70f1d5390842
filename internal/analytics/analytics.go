// Package analytics computes the derived views over the tracker's
// collections. Everything here is pure and recomputed on demand: the inputs
// are small in-memory slices, so there is no caching or invalidation.
//
// All calendar-day bucketing uses the location of the supplied reference
// time, which in practice is the host's local timezone.
package analytics

import (
	"math"
	"strings"
	"time"

	"github.com/thekrishmellow/life-sorter/internal/tracker"
)

// WindowDays is the length of the trailing windows (histogram, efficiency).
const WindowDays = 7

// DayCount is one bucket of the weekly completion histogram.
type DayCount struct {
	Label string // short weekday name, e.g. "Mon"
	Date  string // YYYY-MM-DD
	Count int
}

// DayScore is one bucket of the 7-day protocol efficiency series.
type DayScore struct {
	Label string
	Date  string
	Score int // 0-100
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeeklyCompletions buckets completed tasks over the trailing 7 calendar
// days, today inclusive, oldest first.
func WeeklyCompletions(tasks []tracker.Task, now time.Time) []DayCount {
	out := make([]DayCount, 0, WindowDays)
	for i := WindowDays - 1; i >= 0; i-- {
		day := dayStart(now.AddDate(0, 0, -i))
		count := 0
		for _, t := range tasks {
			if done, ok := t.CompletedDay(now.Location()); ok && done.Equal(day) {
				count++
			}
		}
		out = append(out, DayCount{
			Label: day.Format("Mon"),
			Date:  day.Format(time.DateOnly),
			Count: count,
		})
	}
	return out
}

// CompletedCount returns the number of completed tasks.
func CompletedCount(tasks []tracker.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// CompletionRate returns round(100 x completed / total), and 0 when there
// are no tasks at all.
func CompletionRate(tasks []tracker.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	return roundPct(CompletedCount(tasks), len(tasks))
}

// CategoryHours sums activity hours per category for the given YYYY-MM-DD
// day. Activities match by date-string prefix, mirroring how the records
// store an ISO datetime.
func CategoryHours(activities []tracker.Activity, date string) map[string]float64 {
	out := map[string]float64{}
	for _, a := range activities {
		if strings.HasPrefix(a.Date, date) {
			out[a.Category] += a.Hours
		}
	}
	return out
}

// Streak counts consecutive calendar days with at least one session, walking
// backward from today. A day without a session ends the walk; if today has
// none yet, the walk starts from yesterday so an unfinished day does not
// break the streak.
func Streak(sessions []tracker.CodingSession, now time.Time) int {
	days := map[string]bool{}
	for _, s := range sessions {
		at, err := time.Parse(time.RFC3339, s.Date)
		if err != nil {
			continue
		}
		days[at.In(now.Location()).Format(time.DateOnly)] = true
	}
	if len(days) == 0 {
		return 0
	}

	check := dayStart(now)
	if !days[check.Format(time.DateOnly)] {
		check = check.AddDate(0, 0, -1)
	}

	streak := 0
	for days[check.Format(time.DateOnly)] {
		streak++
		check = check.AddDate(0, 0, -1)
	}
	return streak
}

// ProtocolSeries scores each of the trailing 7 days: the share of protocols
// active on that day (created by its end) that were checked on it. Days with
// no active protocols score 0.
func ProtocolSeries(protocols []tracker.LifeProtocol, now time.Time) []DayScore {
	out := make([]DayScore, 0, WindowDays)
	for i := WindowDays - 1; i >= 0; i-- {
		day := dayStart(now.AddDate(0, 0, -i))
		dayEnd := day.AddDate(0, 0, 1)
		date := day.Format(time.DateOnly)

		active, checked := 0, 0
		for _, p := range protocols {
			created := time.UnixMilli(p.CreatedAt).In(now.Location())
			if !created.Before(dayEnd) {
				continue
			}
			active++
			if p.HasDate(date) {
				checked++
			}
		}

		score := 0
		if active > 0 {
			score = roundPct(checked, active)
		}
		out = append(out, DayScore{Label: day.Format("Mon"), Date: date, Score: score})
	}
	return out
}

// TodayEfficiency is the share of all protocols checked today, 0 with none.
func TodayEfficiency(protocols []tracker.LifeProtocol, now time.Time) int {
	if len(protocols) == 0 {
		return 0
	}
	today := now.Format(time.DateOnly)
	checked := 0
	for _, p := range protocols {
		if p.HasDate(today) {
			checked++
		}
	}
	return roundPct(checked, len(protocols))
}

func roundPct(part, total int) int {
	return int(math.Round(100 * float64(part) / float64(total)))
}
