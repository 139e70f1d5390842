package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Jarvis theme (CLI + TUI). Matrix-green with cyan accents, like the
// dashboard it grew out of.

const (
	IconTask     = "🗂️"
	IconCheck    = "✅"
	IconPlus     = "➕"
	IconTrophy   = "🏆"
	IconBolt     = "⚡"
	IconFire     = "🔥"
	IconCamera   = "📸"
	IconClock    = "⏱️"
	IconChart    = "📊"
	IconWarn     = "⚠️"
	IconError    = "🧨"
	IconSparkle  = "✨"
	IconProtocol = "🧬"
)

var (
	cPrimary = lipgloss.Color("42")  // green
	cAccent  = lipgloss.Color("51")  // cyan
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	H2     = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	Key    = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	Good   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Warn   = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad    = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold   = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Muted  = lipgloss.NewStyle().Foreground(cMuted)
	Accent = lipgloss.NewStyle().Foreground(cAccent)

	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	BadgeLevelUp = Gold.Render(IconTrophy + " LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// Bar renders a fixed-width horizontal bar for value out of max.
func Bar(value, max, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	filled := value * width / max
	if filled > width {
		filled = width
	}
	if value > 0 && filled == 0 {
		filled = 1
	}
	return Good.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}

// QuadrantStyle colors a quadrant label by its priority.
func QuadrantStyle(quadrant string) lipgloss.Style {
	switch quadrant {
	case "do_first":
		return Bad
	case "schedule":
		return Good
	case "delegate":
		return Warn
	default:
		return Muted
	}
}
