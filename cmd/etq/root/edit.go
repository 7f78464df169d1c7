package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/victordelrosal/epictaskquest/internal/engine"
	"github.com/victordelrosal/epictaskquest/internal/ui"
)

func newEditCmd() *cobra.Command {
	var diff int
	var points int

	cmd := &cobra.Command{
		Use:   "edit <id> [new text]",
		Short: "Edit a task's text or difficulty",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
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

			changed := false
			if len(args) > 1 {
				if err := svc.EditText(ctx, id, args[1]); err != nil {
					return err
				}
				changed = true
			}
			if cmd.Flags().Changed("diff") {
				var custom *int
				if engine.Difficulty(diff) == engine.DifficultyCustom && points > 0 {
					custom = &points
				}
				if err := svc.SetDifficulty(ctx, id, engine.Difficulty(diff), custom); err != nil {
					return err
				}
				changed = true
			}
			if !changed {
				return errors.New("nothing to change: pass new text or --diff")
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s Task %d updated.", ui.IconSparkle, id)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&diff, "diff", "d", 0, "New difficulty (1-6)")
	cmd.Flags().IntVarP(&points, "points", "p", 0, "Custom points (with --diff 6)")

	return cmd
}
