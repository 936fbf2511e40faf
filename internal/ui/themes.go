package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	// Primary colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	// Semantic colors
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	// UI colors
	Border    lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Selected  lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
}

// buildTheme creates a theme with the given [light, dark] colors
func buildTheme(name string, primary, secondary, accent, success, warning, errorColor, border, muted, selected, highlight [2]string) Theme {
	return Theme{
		Name:      name,
		Primary:   lipgloss.AdaptiveColor{Light: primary[0], Dark: primary[1]},
		Secondary: lipgloss.AdaptiveColor{Light: secondary[0], Dark: secondary[1]},
		Accent:    lipgloss.AdaptiveColor{Light: accent[0], Dark: accent[1]},
		Success:   lipgloss.AdaptiveColor{Light: success[0], Dark: success[1]},
		Warning:   lipgloss.AdaptiveColor{Light: warning[0], Dark: warning[1]},
		Error:     lipgloss.AdaptiveColor{Light: errorColor[0], Dark: errorColor[1]},
		Border:    lipgloss.AdaptiveColor{Light: border[0], Dark: border[1]},
		Muted:     lipgloss.AdaptiveColor{Light: muted[0], Dark: muted[1]},
		Selected:  lipgloss.AdaptiveColor{Light: selected[0], Dark: selected[1]},
		Highlight: lipgloss.AdaptiveColor{Light: highlight[0], Dark: highlight[1]},
	}
}

// Available themes
var (
	EmeraldTheme = buildTheme("emerald",
		[2]string{"#047857", "#10B981"}, [2]string{"#475569", "#94A3B8"}, [2]string{"#1D4ED8", "#3B82F6"},
		[2]string{"#059669", "#34D399"}, [2]string{"#B45309", "#F59E0B"}, [2]string{"#B91C1C", "#EF4444"},
		[2]string{"#A7F3D0", "#064E3B"}, [2]string{"#64748B", "#475569"}, [2]string{"#D1FAE5", "#022C22"},
		[2]string{"#ECFDF5", "#0F172A"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#333333", "#DDDDDD"}, [2]string{"#000080", "#8080FF"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC6600", "#FFAA00"}, [2]string{"#CC0000", "#FF4444"},
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#444444", "#BBBBBB"}, [2]string{"#FFFF00", "#444444"},
		[2]string{"#FFFFFF", "#000000"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"}, [2]string{"#4A5568", "#CBD5E0"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#C05621", "#F6AD55"}, [2]string{"#C53030", "#FC8181"},
		[2]string{"#E2E8F0", "#2D3748"}, [2]string{"#A0AEC0", "#718096"}, [2]string{"#EDF2F7", "#2D3748"},
		[2]string{"#F7FAFC", "#1A202C"})
)

// ThemeByName returns the named theme
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "emerald", "":
		return EmeraldTheme, true
	case "high-contrast":
		return HighContrastTheme, true
	case "minimal":
		return MinimalTheme, true
	default:
		return EmeraldTheme, false
	}
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"emerald", "high-contrast", "minimal"}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	Header  lipgloss.Style
	Sidebar lipgloss.Style
	Main    lipgloss.Style
	Footer  lipgloss.Style
	Box     lipgloss.Style

	NavItem     lipgloss.Style
	NavSelected lipgloss.Style

	Echo  lipgloss.Style
	Gauge lipgloss.Style
}

// NewStyles builds the styles for theme
func NewStyles(theme Theme) *Styles {
	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Main: lipgloss.NewStyle().
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		NavItem: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Padding(0, 1),

		NavSelected: lipgloss.NewStyle().
			Background(theme.Selected).
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Echo: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Gauge: lipgloss.NewStyle().
			Foreground(theme.Success),
	}
}
