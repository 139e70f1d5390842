package root

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thekrishmellow/life-sorter/internal/analytics"
	"github.com/thekrishmellow/life-sorter/internal/tracker"
	"github.com/thekrishmellow/life-sorter/internal/ui"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Log and browse coding sessions",
	}

	cmd.AddCommand(
		newSessionLogCmd(),
		newSessionListCmd(),
		newSessionRmCmd(),
	)

	return cmd
}

func newSessionLogCmd() *cobra.Command {
	var shots []string
	var notes string

	cmd := &cobra.Command{
		Use:   "log --shot a.png --shot b.png ...",
		Short: "Log a session with screenshot proof (minimum 4)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			tr, _, cleanup, err := openTracker(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			// Enforce the proof floor before touching any file, so a short
			// submission leaves no trace at all.
			if len(shots) < tracker.MinScreenshots {
				return fmt.Errorf("protocol violation: %w (got %d)", tracker.ErrTooFewScreenshots, len(shots))
			}

			screenshots := make([]string, 0, len(shots))
			for _, path := range shots {
				payload, err := encodeScreenshot(path)
				if err != nil {
					return err
				}
				screenshots = append(screenshots, payload)
			}

			session, err := tr.NewSession(screenshots, notes)
			if err != nil {
				return err
			}
			res, err := tr.AddSession(ctx, session)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %d screenshot(s) %s\n",
				ui.Good.Render(ui.IconCamera+" Session logged:"), len(screenshots),
				ui.Muted.Render(fmt.Sprintf("(+%d pts)", res.PointsAwarded)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Accent.Render(ui.IconSparkle+" "+res.Affirmation))
			if res.LevelUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.BadgeLevelUp, ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", fmt.Sprintf("%d day(s) %s", analytics.Streak(tr.Sessions(), time.Now()), ui.IconFire)))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&shots, "shot", nil, "Screenshot file (repeat at least 4 times)")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Session notes")

	return cmd
}

// encodeScreenshot inlines an image file as a base64 data URI, the payload
// form sessions persist.
func encodeScreenshot(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read screenshot %s: %w", path, err)
	}
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" || !strings.HasPrefix(mimeType, "image/") {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func newSessionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first, with the current streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			tr, _, cleanup, err := openTracker(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sessions := tr.Sessions()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconCamera, "Coding Sessions"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", fmt.Sprintf("%d day(s) %s", analytics.Streak(sessions, time.Now()), ui.IconFire)))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No sessions logged."))
				return nil
			}
			for _, s := range sessions {
				when := s.Date
				if at, err := time.Parse(time.RFC3339, s.Date); err == nil {
					when = at.Local().Format("2006-01-02 15:04")
				}
				notes := s.Notes
				if notes == "" {
					notes = ui.Muted.Render("no notes")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s %d  %s  %s\n",
					ui.Accent.Render(when), ui.IconCamera, len(s.Screenshots), notes, ui.Muted.Render(shortID(s.ID)))
			}
			return nil
		},
	}
}

func newSessionRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a session",
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

			id := args[0]
			for _, s := range tr.Sessions() {
				if strings.HasPrefix(s.ID, id) {
					id = s.ID
					break
				}
			}

			removed, err := tr.DeleteSession(ctx, id)
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
}
