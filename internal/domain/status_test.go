package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []Status{StatusIdle, StatusRunning, StatusPaused, StatusQuotaExceeded, StatusCompleted, StatusError} {
		got, ok := ParseStatus(string(s))
		assert.True(t, ok, "status %q should parse", s)
		assert.Equal(t, s, got)
	}

	got, ok := ParseStatus("bogus")
	assert.False(t, ok)
	assert.Equal(t, StatusIdle, got, "unknown statuses fall back to idle")
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusError.IsTerminal())
	assert.False(t, StatusRunning.IsTerminal())
	assert.False(t, StatusPaused.IsTerminal())

	assert.True(t, StatusRunning.IsActive())
	assert.False(t, StatusPaused.IsActive())

	assert.True(t, StatusPaused.CanResume())
	assert.True(t, StatusQuotaExceeded.CanResume())
	assert.False(t, StatusRunning.CanResume())
	assert.False(t, StatusCompleted.CanResume())
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "Quota exceeded", StatusQuotaExceeded.Label())
	assert.Equal(t, "Running", StatusRunning.Label())
	assert.Equal(t, "Idle", Status("whatever").Label())
}
