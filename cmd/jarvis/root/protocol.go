package root

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thekrishmellow/life-sorter/internal/analytics"
	"github.com/thekrishmellow/life-sorter/internal/tracker"
	"github.com/thekrishmellow/life-sorter/internal/ui"
)

func newProtocolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "protocol",
		Aliases: []string{"proto"},
		Short:   "Manage daily life protocols",
	}

	cmd.AddCommand(
		newProtocolAddCmd(),
		newProtocolCheckCmd(),
		newProtocolListCmd(),
	)

	return cmd
}

func newProtocolAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Define a new protocol",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("protocol text is required")
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

			p, err := tr.AddProtocol(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconProtocol+" Protocol defined"), p.Text, ui.Muted.Render(shortID(p.ID)))
			return nil
		},
	}
}

func newProtocolCheckCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "check <id>",
		Short: "Check a protocol off for a day (today by default)",
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

			if date == "" {
				date = time.Now().Format(time.DateOnly)
			}

			id, err := resolveProtocolID(tr.Protocols(), args[0])
			if err != nil {
				return err
			}

			res, err := tr.CheckProtocol(ctx, id, date)
			if err != nil {
				return err
			}
			if !res.Done {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing to do: already checked, unknown id, or the date predates the protocol."))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconCheck+" Checked"), date,
				ui.Muted.Render(fmt.Sprintf("(+%d pts)", res.PointsAwarded)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Accent.Render(ui.IconSparkle+" "+res.Affirmation))
			if res.LevelUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.BadgeLevelUp, ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to check off (YYYY-MM-DD, default today)")

	return cmd
}

func newProtocolListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List protocols with today's state and efficiency",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			tr, _, cleanup, err := openTracker(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			protocols := tr.Protocols()
			if len(protocols) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No protocols defined."))
				return nil
			}

			now := time.Now()
			today := now.Format(time.DateOnly)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconProtocol, "Life Protocols"))
			for _, p := range protocols {
				mark := ui.Muted.Render("[ ]")
				if p.HasDate(today) {
					mark = ui.Good.Render("[x]")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", mark, p.Text, ui.Muted.Render(shortID(p.ID)))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Daily efficiency", fmt.Sprintf("%d%%", analytics.TodayEfficiency(protocols, now))))
			return nil
		},
	}
}

func resolveProtocolID(protocols []tracker.LifeProtocol, arg string) (string, error) {
	var matches []string
	for _, p := range protocols {
		if p.ID == arg {
			return p.ID, nil
		}
		if strings.HasPrefix(p.ID, arg) {
			matches = append(matches, p.ID)
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
