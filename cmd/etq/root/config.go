package root

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/victordelrosal/epictaskquest/internal/storage"
	"github.com/victordelrosal/epictaskquest/internal/ui"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change per-tag section styling",
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigSetCmd(), newConfigUnsetCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current style config",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, cfg, cleanup, err := openServiceWithConfig(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			style, err := cfg.Load(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.H2.Render("Default"))
			printStyle(cmd, style.Default)

			tags := make([]string, 0, len(style.Tags))
			for tag := range style.Tags {
				tags = append(tags, tag)
			}
			sort.Strings(tags)
			for _, tag := range tags {
				fmt.Fprintln(out, ui.H2.Render(tag))
				printStyle(cmd, style.Tags[tag])
			}
			return nil
		},
	}
}

func printStyle(cmd *cobra.Command, st storage.TagStyle) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "  "+ui.LabelValue("font-size", st.FontSize))
	fmt.Fprintln(out, "  "+ui.LabelValue("font-family", st.FontFamily))
	fmt.Fprintln(out, "  "+ui.LabelValue("hover", st.HoverColor))
	fmt.Fprintln(out, "  "+ui.LabelValue("height", st.Height))
	if st.EasterEgg != "" {
		fmt.Fprintln(out, "  "+ui.LabelValue("easter-egg", st.EasterEgg))
	}
}

func newConfigSetCmd() *cobra.Command {
	var fontSize, fontFamily, hover, egg, height string

	cmd := &cobra.Command{
		Use:   "set <tag>",
		Short: "Override styling for one tag (use 'default' for the fallback)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("tag is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, cfg, cleanup, err := openServiceWithConfig(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			style, err := cfg.Load(ctx)
			if err != nil {
				return err
			}

			apply := func(st *storage.TagStyle) {
				if cmd.Flags().Changed("font-size") {
					st.FontSize = fontSize
				}
				if cmd.Flags().Changed("font-family") {
					st.FontFamily = fontFamily
				}
				if cmd.Flags().Changed("hover") {
					st.HoverColor = hover
				}
				if cmd.Flags().Changed("easter-egg") {
					st.EasterEgg = egg
				}
				if cmd.Flags().Changed("height") {
					st.Height = height
				}
			}

			tag := args[0]
			if tag == "default" {
				apply(&style.Default)
			} else {
				if style.Tags == nil {
					style.Tags = map[string]storage.TagStyle{}
				}
				st := style.Tags[tag]
				apply(&st)
				style.Tags[tag] = st
			}

			if err := cfg.Save(ctx, style); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconSparkle+" Style saved."))
			return nil
		},
	}

	cmd.Flags().StringVar(&fontSize, "font-size", "", "Header font size (e.g. 20px)")
	cmd.Flags().StringVar(&fontFamily, "font-family", "", "Header font family")
	cmd.Flags().StringVar(&hover, "hover", "", "Hover background color")
	cmd.Flags().StringVar(&egg, "easter-egg", "", "Glyph shown instead of the label on hover")
	cmd.Flags().StringVar(&height, "height", "", "Section row height (e.g. 45px)")

	return cmd
}

func newConfigUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <tag>",
		Short: "Drop a tag's style override",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("tag is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, cfg, cleanup, err := openServiceWithConfig(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			style, err := cfg.Load(ctx)
			if err != nil {
				return err
			}
			if _, ok := style.Tags[args[0]]; !ok {
				return fmt.Errorf("no override for %s", args[0])
			}
			delete(style.Tags, args[0])
			if err := cfg.Save(ctx, style); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Override removed."))
			return nil
		},
	}
}
