package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/victordelrosal/epictaskquest/internal/engine"
	"github.com/victordelrosal/epictaskquest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show points, level, progress and badge",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.Reload(ctx); err != nil {
				return err
			}
			s := svc.Stats()
			toNext := engine.PointsPerLevel - s.Progress

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconTrophy, "Quest Status"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", s.Level))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Total points", s.TotalPoints))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Progress", fmt.Sprintf("%d/%d (%d to next level)", s.Progress, engine.PointsPerLevel, toNext)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Completed", s.Completed))

			badge := svc.BadgeIndex()
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Badge", fmt.Sprintf("%d/%d %s", badge+1, engine.BadgeCount(), engine.BadgeImage(badge))))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			h := svc.Hierarchy()
			var tags []string
			for _, g := range h.Excluded {
				tags = append(tags, fmt.Sprintf("%s(%d)", g.Tag, len(g.Tasks)))
			}
			for _, g := range h.Nested {
				tags = append(tags, fmt.Sprintf("%s(%d)", g.Tag, len(g.Tasks)))
			}
			if len(tags) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconTag+" Tags"))
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(strings.Join(tags, " ")))
			}
			return nil
		},
	}

	return cmd
}
