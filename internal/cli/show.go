package cli

import (
	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print a project summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, _, err := loadTimeline(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			snap := tl.Snapshot()
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":      app.Dir,
					"tracks":   snap.Tracks,
					"items":    len(snap.Items),
					"duration": snap.Duration,
					"zoom":     snap.Zoom,
				},
			})
		},
	}
}
