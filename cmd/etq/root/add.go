package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/victordelrosal/epictaskquest/internal/engine"
	"github.com/victordelrosal/epictaskquest/internal/ui"
)

func newAddCmd() *cobra.Command {
	var diff int
	var points int
	var wishlist bool

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task (hashtags group it, !HH:MM sets an alarm)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("text is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var custom *int
			if engine.Difficulty(diff) == engine.DifficultyCustom && points > 0 {
				custom = &points
			}

			id, err := svc.AddTask(ctx, args[0], engine.Difficulty(diff), custom, wishlist)
			var queued engine.OfflineQueuedError
			if errors.As(err, &queued) {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Store unavailable; task queued for the next sync."))
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s Added task %d.", ui.IconPlus, id)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&diff, "diff", "d", 1, "Difficulty (1-6, 6 = custom points)")
	cmd.Flags().IntVarP(&points, "points", "p", 0, "Custom points (with --diff 6)")
	cmd.Flags().BoolVarP(&wishlist, "wishlist", "w", false, "Add to the wishlist (appends "+engine.WishlistTag+")")

	return cmd
}
