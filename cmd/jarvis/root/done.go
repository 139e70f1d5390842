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

func newDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
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

			id, err := resolveTaskID(tr.Tasks(), args[0])
			if err != nil {
				return err
			}

			res, err := tr.CompleteTask(ctx, id)
			if err != nil {
				return err
			}
			if !res.Done {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing to do: task is gone or already completed."))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconCheck+" Completed"), res.Task.Text,
				ui.Muted.Render(fmt.Sprintf("(+%d pts)", res.PointsAwarded)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Accent.Render(ui.IconSparkle+" "+res.Affirmation))
			if res.LevelUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.BadgeLevelUp, ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
			}
			return nil
		},
	}

	return cmd
}

// resolveTaskID matches a full id or a unique id prefix. A stale id is not an
// error (deletes already resolved the race); ambiguity is.
func resolveTaskID(tasks []tracker.Task, arg string) (string, error) {
	var matches []string
	for _, t := range tasks {
		if t.ID == arg {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t.ID)
		}
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("id prefix %q is ambiguous (%d matches)", arg, len(matches))
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	return arg, nil
}
