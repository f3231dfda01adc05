package annotate

import "github.com/charmbracelet/lipgloss"

// Color palette shared with the other terminal views
var (
	ColorPrimary = lipgloss.Color("#8B5CF6") // Violet
	ColorSuccess = lipgloss.Color("#10B981") // Emerald
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorText    = lipgloss.Color("#F8FAFC") // Slate 50
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	IndexStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SentenceStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	KeptStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	DroppedStyle = lipgloss.NewStyle().
			Foreground(ColorError)
)
