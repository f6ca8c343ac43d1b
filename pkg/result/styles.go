package result

import "github.com/charmbracelet/lipgloss"

var (
	colorHigh    = lipgloss.Color("#16a34a")
	colorMedium  = lipgloss.Color("#eab308")
	colorLow     = lipgloss.Color("#ef4444")
	colorPrimary = lipgloss.Color("#4338ca")
	colorMuted   = lipgloss.Color("#9ca3af")
)

type styles struct {
	success  lipgloss.Style
	failure  lipgloss.Style
	heading  lipgloss.Style
	emphasis lipgloss.Style
	muted    lipgloss.Style
	tiers    map[Tier]lipgloss.Style
}

func defaultStyles() styles {
	badge := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Bold(true).
		Padding(0, 1)

	return styles{
		success: lipgloss.NewStyle().
			Foreground(colorHigh).
			Bold(true),
		failure: lipgloss.NewStyle().
			Foreground(colorLow).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(colorLow).
			PaddingLeft(1),
		heading: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			Underline(true),
		emphasis: lipgloss.NewStyle().Bold(true),
		muted:    lipgloss.NewStyle().Foreground(colorMuted),
		tiers: map[Tier]lipgloss.Style{
			TierHigh:   badge.Background(colorHigh),
			TierMedium: badge.Background(colorMedium),
			TierLow:    badge.Background(colorLow),
		},
	}
}
