package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mmarks/auditdeck/internal/domain"
)

// Color palette
var (
	Amber      = lipgloss.Color("#E5A00D")
	Violet     = lipgloss.Color("#8B5CF6")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Blue       = lipgloss.Color("#3B82F6")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Amber)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Amber)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Amber)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Progress bar fill styles, one per accent variant
var (
	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(DimGray)

	ProgressDefaultStyle = lipgloss.NewStyle().
				Foreground(Blue)

	ProgressAuditStyle = lipgloss.NewStyle().
				Foreground(Amber)

	ProgressOwnershipStyle = lipgloss.NewStyle().
				Foreground(Violet)
)

// Spinner frames for the running-state indicator dot
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// StatusColor maps a job status to its banner color. Exhaustive over the
// closed status set.
func StatusColor(status domain.Status) lipgloss.Color {
	switch status {
	case domain.StatusRunning:
		return Blue
	case domain.StatusPaused:
		return Amber
	case domain.StatusQuotaExceeded:
		return Amber
	case domain.StatusCompleted:
		return Green
	case domain.StatusError:
		return Red
	case domain.StatusIdle:
		return DimGray
	default:
		return DimGray
	}
}

// StatusDot renders the indicator dot for a status. The dot animates
// through the spinner frames only while running.
func StatusDot(status domain.Status, frame int) string {
	style := lipgloss.NewStyle().Foreground(StatusColor(status))
	if status == domain.StatusRunning {
		return style.Render(SpinnerFrames[frame%len(SpinnerFrames)])
	}
	return style.Render("●")
}

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
