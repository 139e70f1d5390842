package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thekrishmellow/life-sorter/internal/ui"
)

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
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

			removed, err := tr.DeleteTask(ctx, id)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing matched."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Deleted ")+shortID(id))
			return nil
		},
	}

	return cmd
}
