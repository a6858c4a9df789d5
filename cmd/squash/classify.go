package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iamNilotpal/squash/internal/core/services/classifier"
	"github.com/iamNilotpal/squash/pkg/fs"
)

func newClassifyCmd(a *app) *cobra.Command {
	var mediaType string

	cmd := &cobra.Command{
		Use:   "classify <file>...",
		Short: "Show how files would be classified",
		Long: `Show the file type and format squash assigns to each file, and whether
the classifier had to fall back to DOCUMENT/TXT.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lfs := fs.NewLocalFileSystem()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FILE\tMEDIA TYPE\tFILE TYPE\tFORMAT\tFALLBACK")

			for _, path := range args {
				data, err := lfs.ReadFile(path)
				if err != nil {
					a.reportError("Failed to read file", err)
					return err
				}

				name := filepath.Base(path)
				mt := detectMediaType(name, data, mediaType)
				c := classifier.Classify(mt, name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", path, mt, c.FileType, c.Format, c.Fallback)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&mediaType, "type", "", "declared media type, detected from content when empty")
	return cmd
}
