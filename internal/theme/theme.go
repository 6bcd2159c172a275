// Package theme provides the color palettes used for prompt segments.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme assigns a color to every colored prompt segment.
type Theme struct {
	Attention lipgloss.Color // non-zero exit code
	Info      lipgloss.Color // elapsed time
	Identity  lipgloss.Color // user name, rendered bold
	Highlight lipgloss.Color // git ref and dirty suffix
}

// Theme names.
const (
	ANSIName            = "ansi"
	DraculaName         = "dracula"
	NordName            = "nord"
	GruvboxDarkName     = "gruvbox-dark"
	SolarizedDarkName   = "solarized-dark"
	MonokaiName         = "monokai"
	CatppuccinMochaName = "catppuccin-mocha"
)

// ANSI uses the terminal's own 16-color palette.
func ANSI() *Theme {
	return &Theme{
		Attention: lipgloss.Color("1"), // red
		Info:      lipgloss.Color("6"), // cyan
		Identity:  lipgloss.Color("2"), // green
		Highlight: lipgloss.Color("5"), // magenta
	}
}

// Dracula returns the Dracula palette.
func Dracula() *Theme {
	return &Theme{
		Attention: lipgloss.Color("#FF5555"),
		Info:      lipgloss.Color("#8BE9FD"),
		Identity:  lipgloss.Color("#50FA7B"),
		Highlight: lipgloss.Color("#FF79C6"),
	}
}

// Nord returns the Nord palette.
func Nord() *Theme {
	return &Theme{
		Attention: lipgloss.Color("#BF616A"),
		Info:      lipgloss.Color("#88C0D0"),
		Identity:  lipgloss.Color("#A3BE8C"),
		Highlight: lipgloss.Color("#B48EAD"),
	}
}

// GruvboxDark returns the Gruvbox dark palette.
func GruvboxDark() *Theme {
	return &Theme{
		Attention: lipgloss.Color("#FB4934"),
		Info:      lipgloss.Color("#83A598"),
		Identity:  lipgloss.Color("#B8BB26"),
		Highlight: lipgloss.Color("#D3869B"),
	}
}

// SolarizedDark returns the Solarized dark palette.
func SolarizedDark() *Theme {
	return &Theme{
		Attention: lipgloss.Color("#DC322F"),
		Info:      lipgloss.Color("#2AA198"),
		Identity:  lipgloss.Color("#859900"),
		Highlight: lipgloss.Color("#D33682"),
	}
}

// Monokai returns the Monokai palette.
func Monokai() *Theme {
	return &Theme{
		Attention: lipgloss.Color("#F92672"),
		Info:      lipgloss.Color("#66D9EF"),
		Identity:  lipgloss.Color("#A6E22E"),
		Highlight: lipgloss.Color("#AE81FF"),
	}
}

// CatppuccinMocha returns the Catppuccin Mocha palette.
func CatppuccinMocha() *Theme {
	return &Theme{
		Attention: lipgloss.Color("#F38BA8"),
		Info:      lipgloss.Color("#89DCEB"),
		Identity:  lipgloss.Color("#A6E3A1"),
		Highlight: lipgloss.Color("#F5C2E7"),
	}
}

// GetTheme returns a theme by name, or ANSI if not found.
func GetTheme(name string) *Theme {
	switch name {
	case DraculaName:
		return Dracula()
	case NordName:
		return Nord()
	case GruvboxDarkName:
		return GruvboxDark()
	case SolarizedDarkName:
		return SolarizedDark()
	case MonokaiName:
		return Monokai()
	case CatppuccinMochaName:
		return CatppuccinMocha()
	default:
		return ANSI()
	}
}

// DefaultName returns the default theme name.
func DefaultName() string {
	return ANSIName
}

// AvailableThemes returns a list of available theme names.
func AvailableThemes() []string {
	return []string{
		ANSIName,
		DraculaName,
		NordName,
		GruvboxDarkName,
		SolarizedDarkName,
		MonokaiName,
		CatppuccinMochaName,
	}
}
