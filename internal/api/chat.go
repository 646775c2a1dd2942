package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mmarks/auditdeck/internal/domain"
)

// chatRequest is the POST /api/chat/ body. Company and audit scoping are
// optional; the server answers from general context without them.
type chatRequest struct {
	Message   string `json:"message"`
	CompanyID string `json:"company_id,omitempty"`
	AuditID   string `json:"audit_id,omitempty"`
}

// SendChat sends a message to the audit assistant, optionally scoped to a
// company and audit run.
func (c *Client) SendChat(ctx context.Context, message, companyID, auditID string) (*domain.ChatReply, error) {
	req := chatRequest{Message: message, CompanyID: companyID, AuditID: auditID}

	var reply domain.ChatReply
	if err := c.doJSON(ctx, http.MethodPost, "/api/chat/", nil, req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// ClearChatSession drops the server-side conversation history for a
// company, optionally narrowed to one audit. Returns the server's status
// string.
func (c *Client) ClearChatSession(ctx context.Context, companyID, auditID string) (string, error) {
	path := fmt.Sprintf("/api/chat/session/%s", url.PathEscape(companyID))

	var query url.Values
	if auditID != "" {
		query = url.Values{}
		query.Set("audit_id", auditID)
	}

	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodDelete, path, query, nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}
