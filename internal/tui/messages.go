package tui

import (
	"time"

	"github.com/mmarks/auditdeck/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// CompaniesLoadedMsg signals that the company list has been loaded
type CompaniesLoadedMsg struct {
	Companies []domain.Company
}

// AuditStartedMsg signals that a new audit run was started
type AuditStartedMsg struct {
	AuditID   string
	CompanyID string
}

// AuditProgressMsg carries one audit progress snapshot
type AuditProgressMsg struct {
	AuditID  string
	Progress domain.Progress
}

// OwnershipUpdatedMsg carries one ownership discovery snapshot
type OwnershipUpdatedMsg struct {
	Ownership domain.Ownership
}

// ChatReplyMsg carries the assistant's answer
type ChatReplyMsg struct {
	Reply domain.ChatReply
}

// ChatClearedMsg signals that the server-side chat session was dropped
type ChatClearedMsg struct{}

// ExportDoneMsg signals that a report was written to disk
type ExportDoneMsg struct {
	Path string
}

// TickMsg drives the spinner animation
type TickMsg time.Time

// PollMsg schedules the next audit progress poll
type PollMsg struct {
	AuditID string
}

// OwnershipPollMsg schedules the next ownership discovery poll
type OwnershipPollMsg struct {
	CompanyID string
}

// StatusMsg sets a temporary status bar message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
