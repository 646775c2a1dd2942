package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ExportPDF downloads the PDF report for a completed audit. The payload
// is returned as-is; no JSON decoding happens on export paths.
func (c *Client) ExportPDF(ctx context.Context, auditID string) ([]byte, error) {
	return c.export(ctx, auditID, "pdf")
}

// ExportCSV downloads the findings CSV for a completed audit.
func (c *Client) ExportCSV(ctx context.Context, auditID string) ([]byte, error) {
	return c.export(ctx, auditID, "csv")
}

func (c *Client) export(ctx context.Context, auditID, format string) ([]byte, error) {
	path := fmt.Sprintf("/api/export/%s/%s", url.PathEscape(auditID), format)
	return c.do(ctx, http.MethodGet, path, nil, nil, nil)
}
