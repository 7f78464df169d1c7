package root

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/victordelrosal/epictaskquest/internal/engine"
	"github.com/victordelrosal/epictaskquest/internal/render"
	"github.com/victordelrosal/epictaskquest/internal/storage"
	"github.com/victordelrosal/epictaskquest/internal/ui"
)

func newListCmd() *cobra.Command {
	var wishlistOnly bool
	var query string
	var showCompleted bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks grouped by hashtag",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openServiceWithConfig(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.Reload(ctx); err != nil {
				return err
			}
			style := storage.DefaultStyleConfig()
			if loaded, err := cfg.Load(ctx); err == nil {
				style = loaded
			}

			filter := render.Filter{Query: query, WishlistOnly: wishlistOnly}
			// nil toggle store renders everything expanded.
			view := render.Build(svc.Hierarchy(), svc.CompletedTasks(), nil, style, filter)

			out := cmd.OutOrStdout()
			for _, sec := range view.Sections {
				if sec.Key == render.UntaggedKey && sec.Count == 0 {
					continue
				}
				printSection(out, sec, 0)
			}
			if showCompleted && len(view.Completed) > 0 {
				fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Completed (%d)", ui.IconDone, len(view.Completed))))
				for _, r := range view.Completed {
					printRow(out, r, 1)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&wishlistOnly, "wishlist", "w", false, "Only wishlist items")
	cmd.Flags().StringVarP(&query, "search", "s", "", "Filter tasks by substring")
	cmd.Flags().BoolVarP(&showCompleted, "all", "a", false, "Include completed tasks")

	return cmd
}

func printSection(out io.Writer, sec render.Section, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintln(out, indent+ui.PanelTitle.Render(fmt.Sprintf("%s %s (%d)", ui.IconTag, sec.Label, sec.Count)))
	for _, r := range sec.Rows {
		printRow(out, r, depth+1)
	}
	for _, child := range sec.Children {
		printSection(out, child, depth+1)
	}
}

func printRow(out io.Writer, r render.Row, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(out, "%s%d · %s %s %s%s\n", indent, r.ID, r.Text,
		ui.DifficultyText(r.Difficulty),
		ui.Gold.Render(fmt.Sprintf("%dp", r.Points)),
		ui.TaskIcons(r.Wishlist, engine.HasRepeatTag(r.Text)))
}
