package cli

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"cutline/internal/docs"
	"cutline/internal/store"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show the user manual",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				topics := docs.Topics()
				sort.Strings(topics)
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"topics": topics}})
			}

			body, ok := docs.Get(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `cutline docs` to list topics)", args[0]))
			}

			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}

			cfg, _ := store.LoadConfig()

			// Avoid WithAutoStyle: it can block querying terminal capabilities.
			r, err := glamour.NewTermRenderer(
				glamour.WithStandardStyle(cfg.GlamourStyle()),
				glamour.WithWordWrap(80),
			)
			if err != nil {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			out, err := r.Render(body)
			if err != nil {
				out = body
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown")
	return cmd
}
