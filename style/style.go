// Package style holds the lipgloss palette for terminal message rendering.
package style

import "github.com/charmbracelet/lipgloss"

// Colors, reassigned by SetTheme.
var (
	Primary   lipgloss.TerminalColor = lipgloss.Color("#7C3AED")
	Secondary lipgloss.TerminalColor = lipgloss.Color("#06B6D4")
	Muted     lipgloss.TerminalColor = lipgloss.Color("#6B7280")
)

// Styles, rebuilt by SetTheme.
var (
	Faint lipgloss.Style

	// Avatars: neutral for the user, accent for the assistant.
	AvatarUser      lipgloss.Style
	AvatarAssistant lipgloss.Style

	UserLabel  lipgloss.Style
	AgentLabel lipgloss.Style

	// Streaming cursor placeholder.
	Cursor lipgloss.Style

	// Actions row
	ActionKey  lipgloss.Style
	ActionHint lipgloss.Style

	// Viewer
	Selected   lipgloss.Style
	StatusLine lipgloss.Style
)

func init() {
	SetTheme(CurrentThemeName)
}

// SetTheme switches the palette. Unknown names are ignored and reported
// with false.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if !ok {
		return false
	}
	CurrentThemeName = name
	Primary = t.Primary
	Secondary = t.Secondary
	Muted = t.Muted
	rebuildStyles(t)
	return true
}

// Current returns the active theme.
func Current() Theme {
	return Themes[CurrentThemeName]
}

func rebuildStyles(t Theme) {
	Faint = lipgloss.NewStyle().Foreground(Muted)

	AvatarUser = lipgloss.NewStyle().
		Foreground(t.AvatarNeutralFg).
		Background(t.AvatarNeutralBg).
		Padding(0, 1)
	AvatarAssistant = lipgloss.NewStyle().
		Foreground(t.AvatarAccentFg).
		Background(t.AvatarAccentBg).
		Padding(0, 1)

	UserLabel = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
	AgentLabel = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Cursor = lipgloss.NewStyle().
		Foreground(Primary).
		Blink(true)

	ActionKey = lipgloss.NewStyle().
		Foreground(Secondary)
	ActionHint = lipgloss.NewStyle().
		Foreground(Muted)

	Selected = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(Primary).
		PaddingLeft(1)
	StatusLine = lipgloss.NewStyle().
		Foreground(Muted).
		PaddingLeft(1)
}
