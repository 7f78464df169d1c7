package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/victordelrosal/epictaskquest/internal/ui"
)

func newResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every task and reset progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return errors.New("this wipes all tasks and banked points; re-run with --force")
			}
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("All tasks deleted. Back to level 1."))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Confirm the wipe")

	return cmd
}
