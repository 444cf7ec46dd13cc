package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"cutline/internal/validate"
)

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Review the project for structural problems and overlaps",
		Long: `Runs the whole-state review: track invariants, item invariants, and
overlap detection. Findings are reported, never fixed; overlaps are
warnings while structural violations are errors. Exits non-zero when any
error-severity finding is present.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, _, err := loadTimeline(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			snap := tl.Snapshot()
			findings := validate.Timeline(snap.Tracks, snap.Items)
			if err := writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"findings": findings,
					"valid":    !validate.HasErrors(findings),
				},
			}); err != nil {
				return err
			}
			if validate.HasErrors(findings) {
				return errors.New("validation failed")
			}
			return nil
		},
	}
}
