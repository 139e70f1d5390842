package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thekrishmellow/life-sorter/internal/tracker"
)

// RunBoard opens the interactive dashboard over the given tracker.
func RunBoard(ctx context.Context, tr *tracker.Tracker, out io.Writer) error {
	m := newBoardModel(ctx, tr)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
