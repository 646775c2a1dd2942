package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mmarks/auditdeck/internal/domain"
	"github.com/mmarks/auditdeck/internal/tui/styles"
)

// AuditStatus is the audit progress banner: an indicator dot, a status
// label, and a progress bar inside a status-colored border. The status
// is owned by the caller; the component is a pure function of its
// fields, and renders nothing at all while idle.
type AuditStatus struct {
	Status domain.Status
	Bar    ProgressBar
	Frame  int // Spinner animation frame, advanced by the caller's tick
	Width  int
}

// View renders the banner, or "" when status is idle.
func (a AuditStatus) View() string {
	if a.Status == domain.StatusIdle {
		return ""
	}

	bar := a.Bar
	bar.Variant = VariantAudit

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		styles.StatusDot(a.Status, a.Frame),
		" ",
		styles.TitleStyle.Render("Audit"),
		styles.DimStyle.Render(" · "),
		lipgloss.NewStyle().Foreground(styles.StatusColor(a.Status)).Render(a.Status.Label()),
	)

	body := lipgloss.JoinVertical(lipgloss.Left, header, bar.View())

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.StatusColor(a.Status)).
		Padding(0, 1)
	if a.Width > 0 {
		border = border.Width(a.Width - border.GetHorizontalFrameSize())
	}

	return border.Render(body)
}
