package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/victordelrosal/epictaskquest/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Toggle a task's completion (repeat tasks bank points and stay active)",
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
			if err := svc.ToggleCompletion(ctx, id); err != nil {
				return err
			}

			s := svc.Stats()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s Task %d toggled.", ui.IconDone, id)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", s.Level))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Points", s.TotalPoints))
			return nil
		},
	}

	return cmd
}
