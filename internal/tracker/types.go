package tracker

import "time"

// Task is a single to-do entry on the Eisenhower board. Timestamps are epoch
// milliseconds to keep the persisted layout stable.
type Task struct {
	ID          string   `json:"id" yaml:"id"`
	Text        string   `json:"text" yaml:"text"`
	Quadrant    Quadrant `json:"quadrant" yaml:"quadrant"`
	Completed   bool     `json:"completed" yaml:"completed"`
	CreatedAt   int64    `json:"createdAt" yaml:"createdAt"`
	CompletedAt int64    `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
}

// LifeProtocol is a recurring daily commitment. CompletedDates holds
// YYYY-MM-DD strings and only ever grows; there is no uncheck.
type LifeProtocol struct {
	ID             string   `json:"id" yaml:"id"`
	Text           string   `json:"text" yaml:"text"`
	CompletedDates []string `json:"completedDates" yaml:"completedDates"`
	CreatedAt      int64    `json:"createdAt" yaml:"createdAt"`
}

// CodingSession is a timed study/coding session with screenshot proof.
// Screenshots are inline data URIs, not file references.
type CodingSession struct {
	ID          string   `json:"id" yaml:"id"`
	Date        string   `json:"date" yaml:"date"`
	Screenshots []string `json:"screenshots" yaml:"screenshots"`
	Notes       string   `json:"notes" yaml:"notes"`
}

// Activity is a free-form time-logged entry.
type Activity struct {
	ID          string  `json:"id" yaml:"id"`
	Category    string  `json:"category" yaml:"category"`
	Description string  `json:"description" yaml:"description"`
	Hours       float64 `json:"hours" yaml:"hours"`
	Date        string  `json:"date" yaml:"date"`
	Timestamp   int64   `json:"timestamp" yaml:"timestamp"`
}

// CompletedDay returns the local calendar day the task was completed on,
// and false for pending tasks.
func (t Task) CompletedDay(loc *time.Location) (time.Time, bool) {
	if !t.Completed || t.CompletedAt == 0 {
		return time.Time{}, false
	}
	ts := time.UnixMilli(t.CompletedAt).In(loc)
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, loc), true
}

// HasDate reports whether the protocol was checked on the given YYYY-MM-DD day.
func (p LifeProtocol) HasDate(date string) bool {
	for _, d := range p.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}
