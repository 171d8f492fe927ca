package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Warning   lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Primary:   lipgloss.Color("#ff00ff"),
		Secondary: lipgloss.Color("#00ffff"),
		Accent:    lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Warning:   lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Warning:   lipgloss.Color("#ffff00"),
	}

	// plum and steel blue, as in the gui window
	ThemePlum = Theme{
		Name:      "plum",
		Primary:   lipgloss.Color("#4682b4"),
		Secondary: lipgloss.Color("#dda0dd"),
		Accent:    lipgloss.Color("#ffffff"),
		Text:      lipgloss.Color("#f0e6f0"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Warning:   lipgloss.Color("#ffc048"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemePlum,
	}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

type styles struct {
	canvas lipgloss.Style
	stats  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	status lipgloss.Style
	paused lipgloss.Style
	graph  lipgloss.Style
	help   lipgloss.Style
}

func (t Theme) styles() styles {
	return styles{
		canvas: lipgloss.NewStyle().Padding(canvasPadY, canvasPadX).Foreground(t.Primary),
		stats:  lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(1, 2).Width(44),
		header: lipgloss.NewStyle().Foreground(t.Secondary).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(14),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		status: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		paused: lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		graph:  lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 0),
		help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
	}
}
