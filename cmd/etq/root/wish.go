package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/victordelrosal/epictaskquest/internal/ui"
)

func newWishCmd() *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "wish <id>",
		Short: "Put a task on the wishlist (or take it off with --off)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("id must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, _ := strconv.ParseInt(args[0], 10, 64)

			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.Reload(ctx); err != nil {
				return err
			}
			if err := svc.SetWishlist(ctx, id, !off); err != nil {
				return err
			}

			verb := "added to"
			if off {
				verb = "removed from"
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s Task %d %s the wishlist.", ui.IconCart, id, verb)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Remove from the wishlist")

	return cmd
}
