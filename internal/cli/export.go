package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cutline/internal/export"
)

func newExportCmd(app *App) *cobra.Command {
	var format string
	var out string
	var title string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the timeline (edl|json)",
		Long: `Produces a presentational encoding of the sorted timeline: tracks by
order, items by (start time, track order). The encoding carries no
semantics beyond that structure.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, _, err := loadTimeline(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			prepared := export.Prepare(tl.Snapshot())

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				w = f
			}

			if title == "" && out != "" {
				title = filepath.Base(out)
			}

			switch format {
			case "edl":
				return export.WriteEDL(w, prepared, title)
			case "", "json":
				return export.WriteJSON(w, prepared, app.PrettyJSON)
			default:
				return writeErr(cmd, fmt.Errorf("unknown export format: %s", format))
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Export format (edl|json)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Write to file (default: stdout)")
	cmd.Flags().StringVar(&title, "title", "", "EDL title (default: output file name)")
	return cmd
}
