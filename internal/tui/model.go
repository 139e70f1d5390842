package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thekrishmellow/life-sorter/internal/analytics"
	"github.com/thekrishmellow/life-sorter/internal/tracker"
	"github.com/thekrishmellow/life-sorter/internal/ui"
)

type tab int

const (
	tabTasks tab = iota
	tabProtocols
	tabAnalytics
	tabCount
)

func (t tab) title() string {
	switch t {
	case tabTasks:
		return "Tasks"
	case tabProtocols:
		return "Protocols"
	case tabAnalytics:
		return "Analytics"
	default:
		return "?"
	}
}

type boardModel struct {
	ctx context.Context
	tr  *tracker.Tracker

	width  int
	height int

	tasks     []tracker.Task
	protocols []tracker.LifeProtocol
	sessions  []tracker.CodingSession
	points    int
	level     int

	active   tab
	selected int

	input     textinput.Model
	inputting bool

	lastLog string
}

func newBoardModel(ctx context.Context, tr *tracker.Tracker) boardModel {
	in := textinput.New()
	in.Placeholder = "describe it..."
	in.CharLimit = 200
	in.Width = 48

	m := boardModel{
		ctx:     ctx,
		tr:      tr,
		input:   in,
		lastLog: "Loaded.",
	}
	m.refresh()
	return m
}

// refresh re-queries the tracker. The derived views are cheap enough to
// recompute on every render, so no caching happens here.
func (m *boardModel) refresh() {
	m.tasks = m.tr.Tasks()
	m.protocols = m.tr.Protocols()
	m.sessions = m.tr.Sessions()
	m.points = m.tr.Points()
	m.level = m.tr.Level()
	if m.selected >= m.rowCount() {
		m.selected = m.rowCount() - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) rowCount() int {
	switch m.active {
	case tabTasks:
		return len(m.tasks)
	case tabProtocols:
		return len(m.protocols)
	default:
		return 0
	}
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

// mutate records a mutation outcome and re-queries the tracker. Mutations run
// inline on the update loop rather than as tea.Cmds: bubbletea executes
// commands on their own goroutines, and the tracker is a single-writer type,
// so every write must complete before Update returns.
func (m *boardModel) mutate(res *tracker.CompleteResult, err error) {
	switch {
	case err != nil:
		m.lastLog = "Failed: " + err.Error()
	case res != nil && res.Done:
		m.lastLog = fmt.Sprintf("+%d pts", res.PointsAwarded)
		if res.Affirmation != "" {
			m.lastLog += "  " + res.Affirmation
		}
		if res.LevelUp {
			m.lastLog += "  " + ui.BadgeLevelUp
		}
	default:
		m.lastLog = fmt.Sprintf("Updated at %s.", time.Now().Format("15:04:05"))
	}
	m.refresh()
}

func (m *boardModel) addEntry(text string) {
	var err error
	if m.active == tabProtocols {
		_, err = m.tr.AddProtocol(m.ctx, text)
	} else {
		_, err = m.tr.AddTask(m.ctx, text, "")
	}
	m.mutate(&tracker.CompleteResult{}, err)
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.inputting {
			switch msg.String() {
			case "esc":
				m.inputting = false
				m.input.Blur()
				m.input.SetValue("")
				return m, nil
			case "enter":
				text := strings.TrimSpace(m.input.Value())
				m.inputting = false
				m.input.Blur()
				m.input.SetValue("")
				if text != "" {
					m.addEntry(text)
				}
				return m, nil
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab", "l", "right":
			m.active = (m.active + 1) % tabCount
			m.selected = 0
			return m, nil
		case "shift+tab", "h", "left":
			m.active = (m.active + tabCount - 1) % tabCount
			m.selected = 0
			return m, nil
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < m.rowCount()-1 {
				m.selected++
			}
			return m, nil
		case "a":
			if m.active == tabAnalytics {
				return m, nil
			}
			m.inputting = true
			m.input.Focus()
			return m, textinput.Blink
		case "enter", "c", " ":
			switch m.active {
			case tabTasks:
				if m.selected < len(m.tasks) {
					res, err := m.tr.CompleteTask(m.ctx, m.tasks[m.selected].ID)
					m.mutate(res, err)
				}
			case tabProtocols:
				if m.selected < len(m.protocols) {
					today := time.Now().Format(time.DateOnly)
					res, err := m.tr.CheckProtocol(m.ctx, m.protocols[m.selected].ID, today)
					m.mutate(res, err)
				}
			}
			return m, nil
		case "d":
			if m.active == tabTasks && m.selected < len(m.tasks) {
				_, err := m.tr.DeleteTask(m.ctx, m.tasks[m.selected].ID)
				m.mutate(&tracker.CompleteResult{}, err)
			}
			return m, nil
		case "r":
			m.refresh()
			m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
			return m, nil
		}
	}

	return m, nil
}

func (m boardModel) View() string {
	var b strings.Builder

	now := time.Now()
	streak := analytics.Streak(m.sessions, now)
	header := fmt.Sprintf("%s  %s  %s",
		ui.LabelValue("Level", m.level),
		ui.LabelValue("Points", m.points),
		ui.LabelValue("Streak", fmt.Sprintf("%d", streak)),
	)
	b.WriteString(ui.Heading(ui.IconBolt, "JARVIS"))
	b.WriteString("\n")
	b.WriteString(header)
	b.WriteString("\n\n")

	for t := tab(0); t < tabCount; t++ {
		label := " " + t.title() + " "
		if t == m.active {
			b.WriteString(ui.SelectedRow.Render("[" + strings.TrimSpace(label) + "]"))
		} else {
			b.WriteString(ui.Muted.Render(label))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	switch m.active {
	case tabTasks:
		b.WriteString(m.viewTasks())
	case tabProtocols:
		b.WriteString(m.viewProtocols(now))
	case tabAnalytics:
		b.WriteString(m.viewAnalytics(now))
	}

	if m.inputting {
		b.WriteString("\n")
		b.WriteString(ui.Key.Render("New: "))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(ui.Muted.Render("a add · enter complete/check · d delete · tab switch · q quit"))
	b.WriteString("\n")
	b.WriteString(ui.Accent.Render(m.lastLog))
	b.WriteString("\n")
	return b.String()
}

func (m boardModel) viewTasks() string {
	if len(m.tasks) == 0 {
		return ui.Muted.Render("No tasks. Press a to add one.") + "\n"
	}
	var b strings.Builder
	for i, t := range m.tasks {
		cursor := "  "
		if i == m.selected {
			cursor = ui.SelectedRow.Render("> ")
		}
		mark := ui.Muted.Render("[ ]")
		text := t.Text
		if t.Completed {
			mark = ui.Good.Render("[x]")
			text = ui.Muted.Render(text)
		}
		quad := ui.QuadrantStyle(string(t.Quadrant)).Render(t.Quadrant.Label())
		fmt.Fprintf(&b, "%s%s %s %s\n", cursor, mark, text, ui.Muted.Render("·")+" "+quad)
	}
	return b.String()
}

func (m boardModel) viewProtocols(now time.Time) string {
	if len(m.protocols) == 0 {
		return ui.Muted.Render("No protocols defined.") + "\n"
	}
	today := now.Format(time.DateOnly)
	var b strings.Builder
	for i, p := range m.protocols {
		cursor := "  "
		if i == m.selected {
			cursor = ui.SelectedRow.Render("> ")
		}
		mark := ui.Muted.Render("[ ]")
		if p.HasDate(today) {
			mark = ui.Good.Render("[x]")
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, mark, p.Text)
	}
	fmt.Fprintf(&b, "\n%s\n", ui.LabelValue("Daily efficiency", fmt.Sprintf("%d%%", analytics.TodayEfficiency(m.protocols, now))))
	return b.String()
}

func (m boardModel) viewAnalytics(now time.Time) string {
	var b strings.Builder

	week := analytics.WeeklyCompletions(m.tasks, now)
	max := 1
	for _, d := range week {
		if d.Count > max {
			max = d.Count
		}
	}
	b.WriteString(ui.H2.Render("Weekly productivity"))
	b.WriteString("\n")
	for _, d := range week {
		fmt.Fprintf(&b, "%s %s %d\n", ui.Muted.Render(d.Label), ui.Bar(d.Count, max, 20), d.Count)
	}

	b.WriteString("\n")
	b.WriteString(ui.H2.Render("Protocol efficiency"))
	b.WriteString("\n")
	for _, d := range analytics.ProtocolSeries(m.protocols, now) {
		fmt.Fprintf(&b, "%s %s %d%%\n", ui.Muted.Render(d.Label), ui.Bar(d.Score, 100, 20), d.Score)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n", ui.LabelValue("Completion rate", fmt.Sprintf("%d%%", analytics.CompletionRate(m.tasks))))
	fmt.Fprintf(&b, "%s\n", ui.LabelValue("Session streak", fmt.Sprintf("%d day(s)", analytics.Streak(m.sessions, now))))
	return b.String()
}
