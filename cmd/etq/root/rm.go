package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/victordelrosal/epictaskquest/internal/ui"
)

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
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
			if err := svc.Delete(ctx, id); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("Deleted task %d.", id)))
			return nil
		},
	}

	return cmd
}
