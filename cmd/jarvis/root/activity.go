package root

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thekrishmellow/life-sorter/internal/analytics"
	"github.com/thekrishmellow/life-sorter/internal/ui"
)

func newActivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Log and browse time-logged activities",
	}

	cmd.AddCommand(
		newActivityLogCmd(),
		newActivityListCmd(),
	)

	return cmd
}

func newActivityLogCmd() *cobra.Command {
	var category string
	var hours float64
	var date string

	cmd := &cobra.Command{
		Use:   "log <description>",
		Short: "Log an activity with a duration in hours",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("description is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			tr, cfg, cleanup, err := openTracker(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			at := time.Now()
			if date != "" {
				day, err := time.ParseInLocation(time.DateOnly, date, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
				}
				at = day
			}
			if category == "" && len(cfg.Categories) > 0 {
				category = cfg.Categories[0]
			}

			activity, err := tr.NewActivity(category, strings.Join(args, " "), hours, at)
			if err != nil {
				return err
			}
			res, err := tr.AddActivity(ctx, activity)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconClock+" Logged"), activity.Description,
				ui.Accent.Render(fmt.Sprintf("%.1fh %s", activity.Hours, activity.Category)),
				ui.Muted.Render(fmt.Sprintf("(+%d pts)", res.PointsAwarded)))
			if res.LevelUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.BadgeLevelUp, ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (free-form; config suggests a default)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Duration in hours (required, positive)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Day of the activity (YYYY-MM-DD, default now)")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}

func newActivityListCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List activities for a day with per-category hour totals",
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

			activities := tr.Activities()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconClock, "Activities — "+date))

			shown := 0
			for _, a := range activities {
				if !strings.HasPrefix(a.Date, date) {
					continue
				}
				shown++
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s %s\n",
					ui.Accent.Render(fmt.Sprintf("%5.1fh", a.Hours)),
					a.Description,
					ui.Muted.Render(a.Category))
			}
			if shown == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No activities on this day."))
				return nil
			}

			dist := analytics.CategoryHours(activities, date)
			categories := make([]string, 0, len(dist))
			for c := range dist {
				categories = append(categories, c)
			}
			sort.Strings(categories)

			fmt.Fprintln(cmd.OutOrStdout(), "")
			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render("By category"))
			for _, c := range categories {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %.1fh\n", ui.Key.Render(c+":"), dist[c])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to show (YYYY-MM-DD, default today)")

	return cmd
}
