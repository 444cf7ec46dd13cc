package cli

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"cutline/internal/store"
	"cutline/internal/timeline"
)

func newInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .cutline project in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := app.Dir
			if dir == "" {
				dir = ".cutline"
			}
			dir = filepath.Clean(dir)

			s := store.Store{Dir: dir}
			if s.Exists() && !force {
				return writeErr(cmd, errors.New("project already exists (use --force to reinitialize)"))
			}

			tl := timeline.New()
			if err := s.Save(context.Background(), tl.Snapshot()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":    dir,
					"tracks": len(tl.TracksInOrder()),
				},
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Reinitialize even if a project exists")
	return cmd
}
