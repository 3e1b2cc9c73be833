package theme

import "github.com/charmbracelet/lipgloss"

// Colors follows the dark palette of the desktop build: grey chrome,
// blue highlights, white text.
type Colors struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

type Theme struct {
	Colors Colors

	AppFrame      lipgloss.Style
	PaneBorder    lipgloss.Style
	PaneFocused   lipgloss.Style
	PaneTitle     lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	StatusBar     lipgloss.Style
	StatusBarKey  lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusError   lipgloss.Style
	Hint          lipgloss.Style
	Label         lipgloss.Style
	Value         lipgloss.Style
	Selected      lipgloss.Style
	Disabled      lipgloss.Style
	MethodBadge   lipgloss.Style
	Overlay       lipgloss.Style
	OverlayTitle  lipgloss.Style
}

func Dark() Theme {
	colors := Colors{
		Background: lipgloss.Color("#232323"),
		Surface:    lipgloss.Color("#353535"),
		Border:     lipgloss.Color("#555555"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#9e9e9e"),
		Accent:     lipgloss.Color("#2a82da"),
		Success:    lipgloss.Color("#4caf50"),
		Warning:    lipgloss.Color("#ffb74d"),
		Error:      lipgloss.Color("#ef5350"),
	}

	border := lipgloss.RoundedBorder()
	return Theme{
		Colors: colors,

		AppFrame: lipgloss.NewStyle().
			Foreground(colors.Text),
		PaneBorder: lipgloss.NewStyle().
			Border(border).
			BorderForeground(colors.Border),
		PaneFocused: lipgloss.NewStyle().
			Border(border).
			BorderForeground(colors.Accent),
		PaneTitle: lipgloss.NewStyle().
			Foreground(colors.Accent).
			Bold(true),
		TabActive: lipgloss.NewStyle().
			Foreground(colors.Text).
			Background(colors.Accent).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(colors.Muted).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(colors.Muted),
		StatusBarKey: lipgloss.NewStyle().
			Foreground(colors.Accent).
			Bold(true),
		StatusSuccess: lipgloss.NewStyle().
			Foreground(colors.Success).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(colors.Error).
			Bold(true),
		Hint: lipgloss.NewStyle().
			Foreground(colors.Muted).
			Italic(true),
		Label: lipgloss.NewStyle().
			Foreground(colors.Muted),
		Value: lipgloss.NewStyle().
			Foreground(colors.Text),
		Selected: lipgloss.NewStyle().
			Foreground(colors.Text).
			Background(lipgloss.Color("#3a3a3a")).
			Bold(true),
		Disabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6b6b6b")).
			Strikethrough(true),
		MethodBadge: lipgloss.NewStyle().
			Foreground(colors.Accent).
			Bold(true),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colors.Accent).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().
			Foreground(colors.Accent).
			Bold(true).
			Underline(true),
	}
}

// StatusStyle picks the style for an HTTP status code line.
func (t Theme) StatusStyle(code int) lipgloss.Style {
	switch {
	case code >= 200 && code < 300:
		return t.StatusSuccess
	case code >= 400 || code == 0:
		return t.StatusError
	default:
		return lipgloss.NewStyle().Foreground(t.Colors.Warning).Bold(true)
	}
}
