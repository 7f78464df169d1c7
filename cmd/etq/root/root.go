package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/victordelrosal/epictaskquest/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "etq",
	Short:         "Epic Task Quest — gamified task tracker",
	Long:          "Epic Task Quest is a local-first CLI/TUI task tracker with hashtag grouping, points, levels and badges.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newListCmd(),
		newDoCmd(),
		newEditCmd(),
		newWishCmd(),
		newRmCmd(),
		newSyncCmd(),
		newResetCmd(),
		newStatusCmd(),
		newConfigCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
