package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/victordelrosal/epictaskquest/internal/ui"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Drain the offline queue and repair wishlist tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			flushed, err := svc.DrainOffline(ctx)
			if flushed > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("Flushed %d queued task(s).", flushed)))
			}
			if err != nil {
				return err
			}

			// Migration and sync passes run as part of the reload.
			if err := svc.SyncWishlist(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconSparkle+" Wishlist tags in sync."))
			return nil
		},
	}

	return cmd
}
