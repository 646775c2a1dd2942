package service

import (
	"context"
	"log/slog"

	"github.com/mmarks/auditdeck/internal/domain"
)

// ChatService handles the audit assistant conversation. The transcript
// lives with the caller; the server keeps its own session keyed by
// company (and optionally audit).
type ChatService struct {
	api    domain.ChatAPI
	logger *slog.Logger
}

// NewChatService creates a chat service
func NewChatService(a domain.ChatAPI, logger *slog.Logger) *ChatService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatService{api: a, logger: logger}
}

// Send asks the assistant a question, optionally scoped to a company and
// audit run.
func (s *ChatService) Send(ctx context.Context, message, companyID, auditID string) (*domain.ChatReply, error) {
	reply, err := s.api.SendChat(ctx, message, companyID, auditID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("chat reply", "citations", len(reply.Citations), "confidence", reply.Confidence)
	return reply, nil
}

// ClearSession drops the server-side conversation for a company.
func (s *ChatService) ClearSession(ctx context.Context, companyID, auditID string) error {
	status, err := s.api.ClearChatSession(ctx, companyID, auditID)
	if err != nil {
		return err
	}

	s.logger.Info("chat session cleared", "companyID", companyID, "status", status)
	return nil
}
