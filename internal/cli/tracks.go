package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cutline/internal/model"
	"cutline/internal/timeline"
)

func newTracksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracks",
		Short: "Manage tracks",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tracks in vertical order",
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, _, err := loadTimeline(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": tl.TracksInOrder()})
		},
	}

	var kind string
	var name string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Append a track",
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, s, err := loadTimeline(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			k := model.TrackKind(kind)
			switch k {
			case model.TrackKindVideo, model.TrackKindAudio, model.TrackKindText:
			default:
				return writeErr(cmd, fmt.Errorf("unknown track kind: %s", kind))
			}
			tr := tl.AddTrack(k, name)
			if err := saveTimeline(tl, s); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": tr})
		},
	}
	addCmd.Flags().StringVar(&kind, "kind", "video", "Track kind (video|audio|text)")
	addCmd.Flags().StringVar(&name, "name", "", "Track name (default: generated)")

	removeCmd := &cobra.Command{
		Use:   "remove <track-id>",
		Short: "Remove a track (cascades its items; last track is kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, s, err := loadTimeline(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !tl.RemoveTrack(args[0]) {
				return writeErr(cmd, errors.New("track not removed (unknown id or last remaining track)"))
			}
			if err := saveTimeline(tl, s); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"removed": args[0]}})
		},
	}

	var newName string
	renameCmd := &cobra.Command{
		Use:   "rename <track-id>",
		Short: "Rename a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, s, err := loadTimeline(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !tl.UpdateTrack(args[0], timeline.TrackChanges{Name: &newName}) {
				return writeErr(cmd, errors.New("track not found: "+args[0]))
			}
			if err := saveTimeline(tl, s); err != nil {
				return writeErr(cmd, err)
			}
			tr, _ := tl.Track(args[0])
			return writeOut(cmd, app, map[string]any{"data": tr})
		},
	}
	renameCmd.Flags().StringVar(&newName, "name", "", "New track name")
	_ = renameCmd.MarkFlagRequired("name")

	cmd.AddCommand(listCmd)
	cmd.AddCommand(addCmd)
	cmd.AddCommand(removeCmd)
	cmd.AddCommand(renameCmd)
	return cmd
}
