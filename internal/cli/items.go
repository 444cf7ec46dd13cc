package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cutline/internal/model"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage timeline items",
	}

	var trackID string
	var atTime float64
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List items (optionally scoped to a track or a playhead time)",
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, _, err := loadTimeline(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			switch {
			case trackID != "":
				return writeOut(cmd, app, map[string]any{"data": tl.ItemsOnTrack(trackID)})
			case cmd.Flags().Changed("at"):
				return writeOut(cmd, app, map[string]any{"data": tl.ItemsAtTime(atTime)})
			default:
				return writeOut(cmd, app, map[string]any{"data": tl.Items()})
			}
		},
	}
	listCmd.Flags().StringVar(&trackID, "track", "", "Only items on this track")
	listCmd.Flags().Float64Var(&atTime, "at", 0, "Only items whose interval contains this time")

	var addTrack, kind, url, content string
	var start, duration float64
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Place a new item",
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, s, err := loadTimeline(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			it := model.TimelineItem{
				TrackID:   addTrack,
				Kind:      model.ItemKind(kind),
				StartTime: start,
				Duration:  duration,
			}
			switch it.Kind {
			case model.ItemKindVideo, model.ItemKindImage, model.ItemKindAudio:
				if url == "" {
					return writeErr(cmd, errors.New("media items require --url"))
				}
				it.Media = &model.MediaPayload{URL: url}
				if it.Kind.HasAudio() {
					it.Speed = 1
					it.Volume = model.MaxLevel
				}
				if it.Kind != model.ItemKindAudio {
					it.Opacity = model.MaxLevel
				}
			case model.ItemKindText:
				if content == "" {
					return writeErr(cmd, errors.New("text items require --content"))
				}
				it.Text = &model.TextPayload{Content: content}
				it.Opacity = model.MaxLevel
			default:
				return writeErr(cmd, fmt.Errorf("unknown item kind: %s", kind))
			}

			placed, ok := tl.AddItem(it)
			if !ok {
				return writeErr(cmd, errors.New("track not found: "+addTrack))
			}
			if err := saveTimeline(tl, s); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": placed})
		},
	}
	addCmd.Flags().StringVar(&addTrack, "track", "", "Destination track id")
	addCmd.Flags().StringVar(&kind, "kind", "video", "Item kind (video|image|text|audio)")
	addCmd.Flags().StringVar(&url, "url", "", "Media url (video/image/audio)")
	addCmd.Flags().StringVar(&content, "content", "", "Text content (text items)")
	addCmd.Flags().Float64Var(&start, "start", 0, "Start time in seconds")
	addCmd.Flags().Float64Var(&duration, "duration", 4, "Duration in seconds")
	_ = addCmd.MarkFlagRequired("track")

	removeCmd := &cobra.Command{
		Use:   "remove <item-id>...",
		Short: "Remove items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, s, err := loadTimeline(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			removed := tl.RemoveItems(args)
			if err := saveTimeline(tl, s); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"removed": removed}})
		},
	}

	var moveTrack string
	var moveStart float64
	moveCmd := &cobra.Command{
		Use:   "move <item-id>",
		Short: "Move an item to a track/time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, s, err := loadTimeline(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			it, found := tl.Item(args[0])
			if !found {
				return writeErr(cmd, errors.New("item not found: "+args[0]))
			}
			target := it.TrackID
			if moveTrack != "" {
				target = moveTrack
			}
			startTime := it.StartTime
			if cmd.Flags().Changed("start") {
				startTime = moveStart
			}
			if !tl.MoveItem(args[0], target, startTime) {
				return writeErr(cmd, errors.New("move rejected"))
			}
			if err := saveTimeline(tl, s); err != nil {
				return writeErr(cmd, err)
			}
			moved, _ := tl.Item(args[0])
			return writeOut(cmd, app, map[string]any{"data": moved})
		},
	}
	moveCmd.Flags().StringVar(&moveTrack, "track", "", "Destination track id (default: unchanged)")
	moveCmd.Flags().Float64Var(&moveStart, "start", 0, "New start time in seconds")

	duplicateCmd := &cobra.Command{
		Use:   "duplicate <item-id>",
		Short: "Clone an item immediately after the original",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, s, err := loadTimeline(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			clone, ok := tl.DuplicateItem(args[0])
			if !ok {
				return writeErr(cmd, errors.New("item not found: "+args[0]))
			}
			if err := saveTimeline(tl, s); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": clone})
		},
	}

	var splitAt float64
	splitCmd := &cobra.Command{
		Use:   "split <item-id>",
		Short: "Cut an item in two at a time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, s, err := loadTimeline(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			right, ok := tl.SplitItem(args[0], splitAt)
			if !ok {
				return writeErr(cmd, errors.New("split rejected (unknown item or cut outside the item)"))
			}
			if err := saveTimeline(tl, s); err != nil {
				return writeErr(cmd, err)
			}
			left, _ := tl.Item(args[0])
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"left": left, "right": right}})
		},
	}
	splitCmd.Flags().Float64Var(&splitAt, "at", 0, "Cut time in seconds")
	_ = splitCmd.MarkFlagRequired("at")

	cmd.AddCommand(listCmd)
	cmd.AddCommand(addCmd)
	cmd.AddCommand(removeCmd)
	cmd.AddCommand(moveCmd)
	cmd.AddCommand(duplicateCmd)
	cmd.AddCommand(splitCmd)
	return cmd
}
