package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mmarks/auditdeck/internal/domain"
)

// StartAudit kicks off a new audit run for a company and returns the
// new audit's ID.
func (c *Client) StartAudit(ctx context.Context, companyID string) (string, error) {
	path := fmt.Sprintf("/api/audit/%s", url.PathEscape(companyID))

	var resp struct {
		AuditID string `json:"audit_id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, path, nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.AuditID, nil
}

// GetAudit fetches an audit run's full record.
func (c *Client) GetAudit(ctx context.Context, auditID string) (*domain.Audit, error) {
	path := fmt.Sprintf("/api/audit/%s", url.PathEscape(auditID))

	var audit domain.Audit
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &audit); err != nil {
		return nil, err
	}
	return &audit, nil
}

// GetAuditProgress fetches the current progress snapshot for an audit run.
func (c *Client) GetAuditProgress(ctx context.Context, auditID string) (*domain.Progress, error) {
	path := fmt.Sprintf("/api/audit/%s/progress", url.PathEscape(auditID))

	var progress domain.Progress
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}
