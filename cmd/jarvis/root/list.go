package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thekrishmellow/life-sorter/internal/tracker"
	"github.com/thekrishmellow/life-sorter/internal/ui"
)

func newListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks grouped by quadrant",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			tr, _, cleanup, err := openTracker(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks := tr.Tasks()
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No tasks."))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconTask, "Tasks"))

			quadrants := []tracker.Quadrant{
				tracker.QuadrantDoFirst,
				tracker.QuadrantSchedule,
				tracker.QuadrantDelegate,
				tracker.QuadrantEliminate,
			}
			for _, q := range quadrants {
				printed := false
				for _, t := range tasks {
					if t.Quadrant != q {
						continue
					}
					if t.Completed && !all {
						continue
					}
					if !printed {
						fmt.Fprintln(cmd.OutOrStdout(), ui.QuadrantStyle(string(q)).Render(q.Label()))
						printed = true
					}
					mark := "[ ]"
					if t.Completed {
						mark = "[x]"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "  %s %s %s\n", ui.Muted.Render(mark), t.Text, ui.Muted.Render(shortID(t.ID)))
				}
				if printed {
					fmt.Fprintln(cmd.OutOrStdout(), "")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed tasks")

	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
