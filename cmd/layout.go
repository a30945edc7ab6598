package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func layoutCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Inspect or reset the saved node positions",
	}
	cmd.AddCommand(
		layoutShowCmd(opts),
		layoutResetCmd(opts),
		layoutShuffleCmd(opts),
	)
	return cmd
}

func layoutShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the layout the gallery would start with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			layout := a.Layout()
			defaults := a.Catalog.DefaultLayout()
			rows := make([][]string, 0, a.Catalog.Len())
			moved := 0
			for i, n := range a.Catalog.Nodes() {
				pos, _ := layout.At(i)
				mark := ""
				if def, ok := defaults.At(i); ok && def != pos {
					mark = "*"
					moved++
				}
				rows = append(rows, []string{
					fmt.Sprint(n.ID),
					n.Category,
					fmt.Sprintf("%.1f", pos.X),
					fmt.Sprintf("%.1f", pos.Y),
					mark,
				})
			}
			w := cmd.OutOrStdout()
			table(w, []string{"ID", "CATEGORY", "X%", "Y%", ""}, rows)
			fmt.Fprintf(w, "\n  %d nodes, %d moved from the default layout\n", len(rows), moved)
			return nil
		},
	}
}

func layoutResetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget edited positions and go back to the default layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.ResetLayout(cmd.Context()); err != nil {
				return fmt.Errorf("reset layout: %w", err)
			}
			Good.Fprintln(cmd.OutOrStdout(), "  layout reset")
			return nil
		},
	}
}

func layoutShuffleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "shuffle",
		Short: "Save a random layout (use --seed to repeat one)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			if _, err := a.ShuffleLayout(cmd.Context(), opts.seed); err != nil {
				return fmt.Errorf("shuffle layout: %w", err)
			}
			if !a.Config.Cache.Enabled {
				Warn.Fprintln(cmd.OutOrStdout(), "  cache disabled, the layout was not kept")
				return nil
			}
			Good.Fprintln(cmd.OutOrStdout(), "  layout shuffled")
			return nil
		},
	}
}
