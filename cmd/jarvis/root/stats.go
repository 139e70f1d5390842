package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/thekrishmellow/life-sorter/internal/analytics"
	"github.com/thekrishmellow/life-sorter/internal/ui"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show points, level, streak and the weekly views",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			tr, _, cleanup, err := openTracker(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			now := time.Now()
			tasks := tr.Tasks()
			protocols := tr.Protocols()
			sessions := tr.Sessions()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconChart, "Analytics"))
			fmt.Fprintln(out, ui.LabelValue("Level", tr.Level()))
			fmt.Fprintln(out, ui.LabelValue("Points", fmt.Sprintf("%d (next level at %d)", tr.Points(), tr.Level()*1000)))
			fmt.Fprintln(out, ui.LabelValue("Session streak", fmt.Sprintf("%d day(s) %s", analytics.Streak(sessions, now), ui.IconFire)))
			fmt.Fprintln(out, "")

			completed := analytics.CompletedCount(tasks)
			fmt.Fprintln(out, ui.H2.Render("Tasks"))
			fmt.Fprintln(out, ui.LabelValue("Total completed", completed))
			fmt.Fprintln(out, ui.LabelValue("Pending", len(tasks)-completed))
			fmt.Fprintln(out, ui.LabelValue("Completion rate", fmt.Sprintf("%d%%", analytics.CompletionRate(tasks))))
			fmt.Fprintln(out, "")

			week := analytics.WeeklyCompletions(tasks, now)
			max := 1
			for _, d := range week {
				if d.Count > max {
					max = d.Count
				}
			}
			fmt.Fprintln(out, ui.H2.Render("Weekly productivity"))
			for _, d := range week {
				fmt.Fprintf(out, "%s %s %d\n", ui.Muted.Render(d.Label), ui.Bar(d.Count, max, 24), d.Count)
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("Protocol efficiency (7 days)"))
			for _, d := range analytics.ProtocolSeries(protocols, now) {
				fmt.Fprintf(out, "%s %s %d%%\n", ui.Muted.Render(d.Label), ui.Bar(d.Score, 100, 24), d.Score)
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.LabelValue("Daily efficiency", fmt.Sprintf("%d%%", analytics.TodayEfficiency(protocols, now))))

			return nil
		},
	}

	return cmd
}
