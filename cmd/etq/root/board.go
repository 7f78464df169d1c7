package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/victordelrosal/epictaskquest/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openServiceWithConfig(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, svc, cfg, cmd.OutOrStdout())
		},
	}

	return cmd
}
