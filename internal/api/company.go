package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/mmarks/auditdeck/internal/domain"
)

// CreateCompany registers a company by uploading its filing documents as
// multipart form data. This is the one call that bypasses the JSON
// content type; the multipart boundary header replaces it.
func (c *Client) CreateCompany(ctx context.Context, fields map[string]string, files []domain.Upload) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return "", fmt.Errorf("failed to write form field: %w", err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return "", fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return "", fmt.Errorf("failed to write form file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	headers := map[string]string{"Content-Type": w.FormDataContentType()}
	body, err := c.do(ctx, http.MethodPost, "/api/company/", nil, &buf, headers)
	if err != nil {
		return "", err
	}

	var resp struct {
		CompanyID string `json:"company_id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	return resp.CompanyID, nil
}

// GetCompany fetches a single company record.
func (c *Client) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	path := fmt.Sprintf("/api/company/%s", url.PathEscape(companyID))

	var company domain.Company
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// ListCompanies fetches all registered companies.
func (c *Client) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	var companies []domain.Company
	if err := c.doJSON(ctx, http.MethodGet, "/api/company/", nil, nil, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}
