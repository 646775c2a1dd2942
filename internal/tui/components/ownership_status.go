package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmarks/auditdeck/internal/domain"
	"github.com/mmarks/auditdeck/internal/tui/styles"
)

// OwnershipStatus is the ownership-discovery banner. Same shape as the
// audit banner, plus two optional affordances: stop while running,
// resume while paused or over quota. The callbacks take no arguments and
// the component performs no optimistic update; the caller re-renders
// with whatever status the next poll reports.
type OwnershipStatus struct {
	Status domain.Status
	Bar    ProgressBar
	Frame  int
	Width  int

	OnStop   func() // Nil hides the stop affordance
	OnResume func() // Nil hides the resume affordance
}

// showStop reports whether the stop affordance is visible.
func (o OwnershipStatus) showStop() bool {
	return o.Status == domain.StatusRunning && o.OnStop != nil
}

// showResume reports whether the resume affordance is visible.
func (o OwnershipStatus) showResume() bool {
	return o.Status.CanResume() && o.OnResume != nil
}

// Update handles the stop/resume keys. Everything else passes through
// untouched.
func (o OwnershipStatus) Update(msg tea.Msg) (OwnershipStatus, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch keyMsg.String() {
	case "s":
		if o.showStop() {
			o.OnStop()
		}
	case "r":
		if o.showResume() {
			o.OnResume()
		}
	}

	return o, nil
}

// View renders the banner, or "" when status is idle.
func (o OwnershipStatus) View() string {
	if o.Status == domain.StatusIdle {
		return ""
	}

	bar := o.Bar
	bar.Variant = VariantOwnership

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		styles.StatusDot(o.Status, o.Frame),
		" ",
		styles.TitleStyle.Render("Ownership discovery"),
		styles.DimStyle.Render(" · "),
		lipgloss.NewStyle().Foreground(styles.StatusColor(o.Status)).Render(o.Status.Label()),
	)

	rows := []string{header, bar.View()}
	if hints := o.hints(); hints != "" {
		rows = append(rows, hints)
	}

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.StatusColor(o.Status)).
		Padding(0, 1)
	if o.Width > 0 {
		border = border.Width(o.Width - border.GetHorizontalFrameSize())
	}

	return border.Render(body)
}

// hints renders the key hints for the visible affordances.
func (o OwnershipStatus) hints() string {
	switch {
	case o.showStop():
		return styles.HelpKeyStyle.Render("[s]") + styles.HelpDescStyle.Render(" stop")
	case o.showResume():
		return styles.HelpKeyStyle.Render("[r]") + styles.HelpDescStyle.Render(" resume")
	default:
		return ""
	}
}
