package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iamNilotpal/squash/internal/core/services/quality"
)

func newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the compression levels and their qualities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "LEVEL\tLABEL\tQUALITY")
			for _, l := range quality.Levels() {
				fmt.Fprintf(w, "%s\t%s\t%d\n", l.Value, l.Label, l.Quality)
			}
			return w.Flush()
		},
	}
}
