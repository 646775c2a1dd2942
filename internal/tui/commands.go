package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmarks/auditdeck/internal/service"
)

// Command factories for async operations

// LoadCompaniesCmd loads the company list
func LoadCompaniesCmd(svc *service.CompanyService, refresh bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		companies, err := svc.List(ctx, refresh)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading companies"}
		}
		return CompaniesLoadedMsg{Companies: companies}
	}
}

// StartAuditCmd starts an audit run for a company
func StartAuditCmd(svc *service.AuditService, companyID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		auditID, err := svc.Start(ctx, companyID)
		if err != nil {
			return ErrMsg{Err: err, Context: "starting audit"}
		}
		return AuditStartedMsg{AuditID: auditID, CompanyID: companyID}
	}
}

// PollAuditCmd fetches one audit progress snapshot
func PollAuditCmd(svc *service.AuditService, auditID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		progress, err := svc.Progress(ctx, auditID)
		if err != nil {
			return ErrMsg{Err: err, Context: "polling audit progress"}
		}
		return AuditProgressMsg{AuditID: auditID, Progress: *progress}
	}
}

// DiscoverOwnershipCmd fetches one ownership discovery snapshot
func DiscoverOwnershipCmd(svc *service.OwnershipService, companyID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		ownership, err := svc.Discover(ctx, companyID)
		if err != nil {
			return ErrMsg{Err: err, Context: "discovering ownership"}
		}
		return OwnershipUpdatedMsg{Ownership: *ownership}
	}
}

// SendChatCmd sends a chat message to the audit assistant
func SendChatCmd(svc *service.ChatService, message, companyID, auditID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		reply, err := svc.Send(ctx, message, companyID, auditID)
		if err != nil {
			return ErrMsg{Err: err, Context: "sending chat message"}
		}
		return ChatReplyMsg{Reply: *reply}
	}
}

// ClearChatCmd drops the server-side chat session
func ClearChatCmd(svc *service.ChatService, companyID, auditID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := svc.ClearSession(ctx, companyID, auditID); err != nil {
			return ErrMsg{Err: err, Context: "clearing chat session"}
		}
		return ChatClearedMsg{}
	}
}

// ExportCmd downloads a finished audit's report to a file
func ExportCmd(svc *service.AuditService, auditID string, format service.ExportFormat) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
		defer cancel()

		path := fmt.Sprintf("audit-%s.%s", auditID, format)
		if err := svc.Export(ctx, auditID, format, path); err != nil {
			return ErrMsg{Err: err, Context: "exporting report"}
		}
		return ExportDoneMsg{Path: path}
	}
}

// tickCmd drives the spinner animation
func tickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// pollAuditLater schedules the next audit progress poll
func pollAuditLater(auditID string, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return PollMsg{AuditID: auditID}
	})
}

// pollOwnershipLater schedules the next ownership discovery poll
func pollOwnershipLater(companyID string, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return OwnershipPollMsg{CompanyID: companyID}
	})
}

// clearStatusLater clears the status bar after a delay
func clearStatusLater() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
