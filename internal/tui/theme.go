package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"cutline/internal/model"
)

// Theme/palette helpers.
//
// The editor must stay readable on both light and dark terminals, so colors
// are lipgloss.AdaptiveColor pairs throughout.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorRulerFg   = ac("240", "245")
	colorLaneBg    = ac("255", "235")
	colorLaneFg    = ac("250", "240")
	colorGutterFg  = ac("238", "250")
	colorPlayhead  = ac("160", "203")
	colorStatusFg  = ac("240", "246")
	colorSnapFlash = ac("28", "42")

	colorClipVideo = ac("25", "31")
	colorClipAudio = ac("28", "35")
	colorClipImage = ac("130", "172")
	colorClipText  = ac("90", "140")

	clipFg         = ac("255", "255")
	colorSelected  = ac("232", "255")
	colorPreviewBg = ac("244", "243")
)

var (
	styleRuler  = lipgloss.NewStyle().Foreground(colorRulerFg)
	styleGutter = lipgloss.NewStyle().Foreground(colorGutterFg)
	styleStatus = lipgloss.NewStyle().Foreground(colorStatusFg)
)

func clipColor(kind model.ItemKind) lipgloss.AdaptiveColor {
	switch kind {
	case model.ItemKindAudio:
		return colorClipAudio
	case model.ItemKindImage:
		return colorClipImage
	case model.ItemKindText:
		return colorClipText
	default:
		return colorClipVideo
	}
}

// setupColorProfile respects NO_COLOR and CLICOLOR_FORCE the way termenv
// defines them, then pins lipgloss to the detected profile so rendering is
// consistent for the whole session.
func setupColorProfile() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	if strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")) != "" && profile == termenv.Ascii {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}
