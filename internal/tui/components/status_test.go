package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmarks/auditdeck/internal/domain"
	"github.com/stretchr/testify/assert"
)

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestAuditStatusIdleRendersNothing(t *testing.T) {
	banner := AuditStatus{
		Status: domain.StatusIdle,
		Bar:    ProgressBar{Value: 80, Max: 100, ShowPercent: true},
		Width:  60,
	}
	assert.Empty(t, banner.View(), "idle banners are hidden regardless of other props")
}

func TestAuditStatusShowsLabel(t *testing.T) {
	for _, tt := range []struct {
		status domain.Status
		label  string
	}{
		{domain.StatusRunning, "Running"},
		{domain.StatusPaused, "Paused"},
		{domain.StatusQuotaExceeded, "Quota exceeded"},
		{domain.StatusCompleted, "Completed"},
		{domain.StatusError, "Error"},
	} {
		banner := AuditStatus{Status: tt.status, Bar: ProgressBar{Value: 50}}
		view := stripANSI(banner.View())
		assert.Contains(t, view, tt.label)
		assert.Contains(t, view, "Audit")
	}
}

func TestOwnershipStatusIdleRendersNothing(t *testing.T) {
	banner := OwnershipStatus{
		Status:   domain.StatusIdle,
		OnStop:   func() {},
		OnResume: func() {},
	}
	assert.Empty(t, banner.View())
}

func TestOwnershipStopAffordance(t *testing.T) {
	tests := []struct {
		name     string
		status   domain.Status
		withStop bool
		want     bool
	}{
		{"running with callback", domain.StatusRunning, true, true},
		{"running without callback", domain.StatusRunning, false, false},
		{"paused with callback", domain.StatusPaused, true, false},
		{"completed with callback", domain.StatusCompleted, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			banner := OwnershipStatus{Status: tt.status}
			if tt.withStop {
				banner.OnStop = func() {}
			}
			view := stripANSI(banner.View())
			if tt.want {
				assert.Contains(t, view, "[s]")
			} else {
				assert.NotContains(t, view, "[s]")
			}
		})
	}
}

func TestOwnershipResumeAffordance(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.Status
		withResume bool
		want       bool
	}{
		{"paused with callback", domain.StatusPaused, true, true},
		{"quota exceeded with callback", domain.StatusQuotaExceeded, true, true},
		{"paused without callback", domain.StatusPaused, false, false},
		{"running with callback", domain.StatusRunning, true, false},
		{"error with callback", domain.StatusError, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			banner := OwnershipStatus{Status: tt.status}
			if tt.withResume {
				banner.OnResume = func() {}
			}
			view := stripANSI(banner.View())
			if tt.want {
				assert.Contains(t, view, "[r]")
			} else {
				assert.NotContains(t, view, "[r]")
			}
		})
	}
}

func TestOwnershipStopKeyInvokesCallback(t *testing.T) {
	called := false
	banner := OwnershipStatus{
		Status: domain.StatusRunning,
		OnStop: func() { called = true },
	}

	banner.Update(keyMsg('s'))
	assert.True(t, called)
}

func TestOwnershipStopKeyIgnoredWhenNotRunning(t *testing.T) {
	called := false
	banner := OwnershipStatus{
		Status: domain.StatusPaused,
		OnStop: func() { called = true },
	}

	banner.Update(keyMsg('s'))
	assert.False(t, called, "stop only applies while running")
}

func TestOwnershipResumeKeyInvokesCallback(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusPaused, domain.StatusQuotaExceeded} {
		called := false
		banner := OwnershipStatus{
			Status:   status,
			OnResume: func() { called = true },
		}

		banner.Update(keyMsg('r'))
		assert.True(t, called, "resume should fire from %s", status)
	}
}

func TestOwnershipOtherKeysPassThrough(t *testing.T) {
	called := false
	banner := OwnershipStatus{
		Status:   domain.StatusRunning,
		OnStop:   func() { called = true },
		OnResume: func() { called = true },
	}

	banner.Update(keyMsg('x'))
	banner.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, called)
}
