package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/mmarks/auditdeck/internal/tui/styles"
)

// Variant selects the accent treatment for a progress bar.
type Variant int

const (
	VariantDefault Variant = iota
	VariantAudit
	VariantOwnership
)

const defaultBarWidth = 30

// ProgressBar renders a filled bar for a value out of Max. It holds no
// state; every field is caller-supplied and View is a pure function of
// them.
//
// Max defaults to 100 when zero. Whatever the inputs, the displayed
// percentage is clamped to [0, 100]; out-of-range values are never an
// error.
type ProgressBar struct {
	Value       float64
	Max         float64
	CurrentStep int    // Optional, shown with TotalSteps as "Step m of n"
	TotalSteps  int    // Optional
	StepName    string // Optional label under the step indicator
	ShowPercent bool
	Width       int // Bar width in cells, defaults to 30
	Variant     Variant
}

// Percentage returns the display percentage, clamped to [0, 100].
func (p ProgressBar) Percentage() float64 {
	max := p.Max
	if max == 0 {
		max = 100
	}
	pct := p.Value / max * 100
	if math.IsNaN(pct) || pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// fillStyle returns the accent style for the variant. Exhaustive over
// the closed variant set.
func (p ProgressBar) fillStyle() (filled, empty string) {
	switch p.Variant {
	case VariantAudit:
		return styles.ProgressAuditStyle.Render("█"), styles.ProgressEmptyStyle.Render("░")
	case VariantOwnership:
		return styles.ProgressOwnershipStyle.Render("█"), styles.ProgressEmptyStyle.Render("░")
	case VariantDefault:
		return styles.ProgressDefaultStyle.Render("█"), styles.ProgressEmptyStyle.Render("░")
	default:
		return styles.ProgressDefaultStyle.Render("█"), styles.ProgressEmptyStyle.Render("░")
	}
}

// View renders the bar with its optional step indicator, step name, and
// percentage label.
func (p ProgressBar) View() string {
	width := p.Width
	if width <= 0 {
		width = defaultBarWidth
	}

	pct := p.Percentage()
	filledCells := int(float64(width) * pct / 100)
	if filledCells > width {
		filledCells = width
	}

	filled, empty := p.fillStyle()

	var b strings.Builder
	if p.CurrentStep > 0 && p.TotalSteps > 0 {
		b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Step %d of %d", p.CurrentStep, p.TotalSteps)))
		b.WriteString("\n")
	}
	if p.StepName != "" {
		b.WriteString(styles.DimStyle.Render(p.StepName))
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat(filled, filledCells))
	b.WriteString(strings.Repeat(empty, width-filledCells))

	if p.ShowPercent {
		b.WriteString(" ")
		b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("%d%%", int(math.Round(pct)))))
	}

	return b.String()
}
