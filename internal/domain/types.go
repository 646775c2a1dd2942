package domain

import "time"

// Company is a registered company the backend knows about.
type Company struct {
	ID           string    `json:"company_id"`
	Name         string    `json:"name"`
	Jurisdiction string    `json:"jurisdiction,omitempty"`
	RegistryID   string    `json:"registry_id,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// Audit is a single audit run over a company's filings.
type Audit struct {
	ID          string    `json:"audit_id"`
	CompanyID   string    `json:"company_id"`
	Status      Status    `json:"status"`
	Findings    int       `json:"findings,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

// Progress is a point-in-time snapshot of a running job, re-fetched by
// polling. Percent is the raw server value; display clamping happens in
// the rendering layer.
type Progress struct {
	Status      Status  `json:"status"`
	Percent     float64 `json:"percent"`
	CurrentStep int     `json:"current_step,omitempty"`
	TotalSteps  int     `json:"total_steps,omitempty"`
	StepName    string  `json:"step_name,omitempty"`
}

// ChatReply is the assistant's answer to a chat message. Citations keep
// the order the server returned them in.
type ChatReply struct {
	Message    string   `json:"message"`
	Citations  []string `json:"citations"`
	Confidence float64  `json:"confidence"`
}

// Entity is a node in an ownership graph: a company, person, or trust.
type Entity struct {
	ID           string `json:"entity_id"`
	Name         string `json:"name"`
	Kind         string `json:"kind,omitempty"`
	Jurisdiction string `json:"jurisdiction,omitempty"`
}

// OwnershipEdge is a directed ownership stake between two entities.
type OwnershipEdge struct {
	ParentID string  `json:"parent_id"`
	ChildID  string  `json:"child_id"`
	Percent  float64 `json:"percent"`
	Source   string  `json:"source,omitempty"`
}

// Ownership is the discovery result (possibly partial) for a company.
type Ownership struct {
	CompanyID string          `json:"company_id"`
	Status    Status          `json:"status"`
	Percent   float64         `json:"percent"`
	Entities  []Entity        `json:"entities"`
	Edges     []OwnershipEdge `json:"edges"`
}
