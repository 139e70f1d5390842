package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thekrishmellow/life-sorter/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "jarvis",
	Short:         "Jarvis — personal productivity dashboard",
	Long:          "Jarvis tracks Eisenhower-matrix tasks, daily life protocols, proof-of-work coding sessions and time-logged activities, with points and levels on top.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newListCmd(),
		newDoneCmd(),
		newRmCmd(),
		newProtocolCmd(),
		newSessionCmd(),
		newActivityCmd(),
		newStatsCmd(),
		newDashCmd(),
		newExportCmd(),
		newResetCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
