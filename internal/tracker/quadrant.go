package tracker

import (
	"fmt"
	"strings"
)

// Quadrant is one of the four Eisenhower priority buckets.
type Quadrant string

const (
	QuadrantDoFirst   Quadrant = "do_first"
	QuadrantSchedule  Quadrant = "schedule"
	QuadrantDelegate  Quadrant = "delegate"
	QuadrantEliminate Quadrant = "eliminate"
)

func (q Quadrant) IsValid() bool {
	switch q {
	case QuadrantDoFirst, QuadrantSchedule, QuadrantDelegate, QuadrantEliminate:
		return true
	default:
		return false
	}
}

// Label returns the human-readable quadrant name.
func (q Quadrant) Label() string {
	switch q {
	case QuadrantDoFirst:
		return "Do First"
	case QuadrantSchedule:
		return "Schedule"
	case QuadrantDelegate:
		return "Delegate"
	case QuadrantEliminate:
		return "Eliminate"
	default:
		return string(q)
	}
}

func ParseQuadrant(input string) (Quadrant, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	s = strings.ReplaceAll(s, "-", "_")
	q := Quadrant(s)
	if !q.IsValid() {
		return "", fmt.Errorf("invalid quadrant: %q", input)
	}
	return q, nil
}

var (
	urgentWords    = []string{"urgent", "now", "asap", "today", "due", "deadline"}
	importantWords = []string{"important", "critical", "must", "project", "study", "exam", "work"}
)

// Categorize suggests a quadrant from free task text by scanning for urgency
// and importance keywords. It is a default, never an enforcement: the caller
// may override with any valid quadrant.
func Categorize(text string) Quadrant {
	lower := strings.ToLower(text)
	urgent := containsAny(lower, urgentWords)
	important := containsAny(lower, importantWords)

	switch {
	case urgent && important:
		return QuadrantDoFirst
	case !urgent && important:
		return QuadrantSchedule
	case urgent && !important:
		return QuadrantDelegate
	default:
		// Neither signal: schedule is the safe default.
		return QuadrantSchedule
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
