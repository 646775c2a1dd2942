package domain

import (
	"context"
	"io"
)

// Upload is one file attached to a company creation request.
type Upload struct {
	Field    string
	Filename string
	Content  io.Reader
}

// CompanyAPI is the backend surface for company records.
type CompanyAPI interface {
	CreateCompany(ctx context.Context, fields map[string]string, files []Upload) (string, error)
	GetCompany(ctx context.Context, companyID string) (*Company, error)
	ListCompanies(ctx context.Context) ([]Company, error)
}

// AuditAPI is the backend surface for audit runs and report exports.
type AuditAPI interface {
	StartAudit(ctx context.Context, companyID string) (string, error)
	GetAudit(ctx context.Context, auditID string) (*Audit, error)
	GetAuditProgress(ctx context.Context, auditID string) (*Progress, error)
	ExportPDF(ctx context.Context, auditID string) ([]byte, error)
	ExportCSV(ctx context.Context, auditID string) ([]byte, error)
}

// OwnershipAPI is the backend surface for ownership discovery.
type OwnershipAPI interface {
	DiscoverOwnership(ctx context.Context, companyID string) (*Ownership, error)
}

// ChatAPI is the backend surface for the audit-aware chat assistant.
type ChatAPI interface {
	SendChat(ctx context.Context, message, companyID, auditID string) (*ChatReply, error)
	ClearChatSession(ctx context.Context, companyID, auditID string) (string, error)
}
