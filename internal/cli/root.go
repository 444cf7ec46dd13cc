package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cutline/internal/store"
	"cutline/internal/timeline"
	"cutline/internal/tui"
)

type App struct {
	Dir        string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "cutline",
		Short:        "cutline (local-first) timeline editor CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive editor on the current project
  cutline

  # Create a project in the current directory
  cutline init

  # Scriptable commands
  cutline tracks list
  cutline items add --track trk-xxxxxxxx --kind video --url clip.mp4 --start 0 --duration 4

  # Review and export
  cutline validate
  cutline export --format edl -o cut.edl
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("CUTLINE_DIR", ""), "Path to project dir (default: discovered .cutline)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newValidateCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newTracksCmd(app))
	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	tl, s, err := loadTimeline(app)
	if err != nil {
		return err
	}
	cfg, _ := store.LoadConfig()
	return tui.Run(tl, s, cfg)
}

// loadTimeline resolves the project dir, loads the persisted snapshot, and
// restores it into a fresh store. A missing project loads as the initial
// single-track state.
func loadTimeline(app *App) (*timeline.Store, store.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return nil, store.Store{}, err
		}
		dir = d
		app.Dir = dir
	}

	s := store.Store{Dir: dir}
	tl := timeline.New()
	if s.Exists() {
		snap, err := s.Load(context.Background())
		if err != nil {
			return nil, s, err
		}
		tl.Restore(snap)
	}
	return tl, s, nil
}

func saveTimeline(tl *timeline.Store, s store.Store) error {
	return s.Save(context.Background(), tl.Snapshot())
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// writeOut writes strict JSON output for CLI commands.
func writeOut(cmd *cobra.Command, app *App, v any) error {
	var b []byte
	var err error
	if app.PrettyJSON {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
