package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thekrishmellow/life-sorter/internal/tracker"
	"github.com/thekrishmellow/life-sorter/internal/ui"
)

func newAddCmd() *cobra.Command {
	var quadrant string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task (auto-categorized unless --quadrant is given)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("task text is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			tr, _, cleanup, err := openTracker(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			text := strings.Join(args, " ")
			var q tracker.Quadrant
			if quadrant != "" {
				q, err = tracker.ParseQuadrant(quadrant)
				if err != nil {
					return err
				}
			}

			task, err := tr.AddTask(ctx, text, q)
			if err != nil {
				return err
			}

			label := ui.QuadrantStyle(string(task.Quadrant)).Render(task.Quadrant.Label())
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconPlus+" Added"), task.Text, ui.Muted.Render("→ ")+label)
			return nil
		},
	}

	cmd.Flags().StringVarP(&quadrant, "quadrant", "q", "", "Quadrant (do_first|schedule|delegate|eliminate)")

	return cmd
}
