package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"xarxa/internal/catalog"
)

func catalogCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Work with catalog files",
	}
	cmd.AddCommand(
		catalogValidateCmd(),
		catalogListCmd(opts),
		catalogDumpCmd(opts),
	)
	return cmd
}

func catalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a YAML catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %d nodes, %d categories, %d connections\n",
				Good.Sprint("ok"), cat.Len(), len(cat.Categories()), len(cat.Connections()))
			return nil
		},
	}
}

func catalogListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories and their nodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			counts := make(map[string]int)
			for _, n := range a.Catalog.Nodes() {
				counts[n.Category]++
			}
			rows := make([][]string, 0, len(a.Catalog.Categories()))
			for i, c := range a.Catalog.Categories() {
				rows = append(rows, []string{fmt.Sprint(i + 1), c.ID, c.Label, c.Color, fmt.Sprint(counts[c.ID])})
			}
			table(cmd.OutOrStdout(), []string{"KEY", "ID", "LABEL", "COLOR", "NODES"}, rows)
			return nil
		},
	}
}

func catalogDumpCmd(opts *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write the active catalog as YAML",
		Long:  "Write the active catalog as YAML, a starting point for a custom --catalog file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if out == "" {
				return a.Catalog.Encode(cmd.OutOrStdout())
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := a.Catalog.Encode(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", Good.Sprint("wrote"), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
