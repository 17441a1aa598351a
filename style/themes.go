package style

import "github.com/charmbracelet/lipgloss"

// Theme defines a color palette plus the matching code and markdown styles.
type Theme struct {
	Name                            string
	Primary, Secondary              lipgloss.TerminalColor
	Muted                           lipgloss.TerminalColor
	AvatarNeutralBg, AvatarAccentBg lipgloss.TerminalColor
	AvatarNeutralFg, AvatarAccentFg lipgloss.TerminalColor

	// ChromaStyle names the Chroma style used for HTML code blocks.
	ChromaStyle string
	// GlamourStyle names the glamour standard style used in the terminal.
	GlamourStyle string
}

// Built-in themes.
var (
	darkTheme = Theme{
		Name:            "dark",
		Primary:         lipgloss.Color("#7C3AED"), // violet-600
		Secondary:       lipgloss.Color("#06B6D4"), // cyan-500
		Muted:           lipgloss.Color("#6B7280"), // gray-500
		AvatarNeutralBg: lipgloss.Color("#1F2937"), // gray-800
		AvatarNeutralFg: lipgloss.Color("#E5E7EB"),
		AvatarAccentBg:  lipgloss.Color("#7C3AED"),
		AvatarAccentFg:  lipgloss.Color("#FFFFFF"),
		ChromaStyle:     "monokai",
		GlamourStyle:    "dark",
	}

	lightTheme = Theme{
		Name:            "light",
		Primary:         lipgloss.Color("#6D28D9"), // violet-700
		Secondary:       lipgloss.Color("#0891B2"), // cyan-600
		Muted:           lipgloss.Color("#9CA3AF"), // gray-400
		AvatarNeutralBg: lipgloss.Color("#F3F4F6"), // gray-100
		AvatarNeutralFg: lipgloss.Color("#111827"),
		AvatarAccentBg:  lipgloss.Color("#6D28D9"),
		AvatarAccentFg:  lipgloss.Color("#FFFFFF"),
		ChromaStyle:     "github",
		GlamourStyle:    "light",
	}

	catppuccinTheme = Theme{
		Name:            "catppuccin",
		Primary:         lipgloss.Color("#CBA6F7"), // mauve
		Secondary:       lipgloss.Color("#89DCEB"), // sky
		Muted:           lipgloss.Color("#6C7086"), // overlay0
		AvatarNeutralBg: lipgloss.Color("#313244"), // surface0
		AvatarNeutralFg: lipgloss.Color("#CDD6F4"),
		AvatarAccentBg:  lipgloss.Color("#CBA6F7"),
		AvatarAccentFg:  lipgloss.Color("#1E1E2E"), // base
		ChromaStyle:     "catppuccin-mocha",
		GlamourStyle:    "dracula",
	}
)

// Themes maps theme names to their definitions.
var Themes = map[string]Theme{
	"dark":       darkTheme,
	"light":      lightTheme,
	"catppuccin": catppuccinTheme,
}

// ThemeNames lists available themes in display order.
var ThemeNames = []string{"dark", "light", "catppuccin"}

// CurrentThemeName tracks the active theme name.
var CurrentThemeName = "dark"
