package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Contract is the backend contract record as the UI sees it.
type Contract struct {
	ID          ID                  `json:"id"`
	Title       string              `json:"title,omitempty"`
	Name        string              `json:"name,omitempty"`
	Description string              `json:"description,omitempty"`
	Status      string              `json:"status"` // draft, pending, approved, rejected
	Content     string              `json:"content,omitempty"`
	Value       decimal.NullDecimal `json:"value"`
	CreatedBy   string              `json:"created_by,omitempty"`
	CreatedAt   string              `json:"created_at,omitempty"`
	UpdatedAt   string              `json:"updated_at,omitempty"`
}

// ContractStatus constants
const (
	StatusDraft    = "draft"
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// UntitledContract is shown when the backend record carries no title or name.
const UntitledContract = "Untitled"

// DisplayTitle falls back from title to name to "Untitled".
func (c *Contract) DisplayTitle() string {
	if t := strings.TrimSpace(c.Title); t != "" {
		return t
	}
	if n := strings.TrimSpace(c.Name); n != "" {
		return n
	}
	return UntitledContract
}

// Created parses CreatedAt. The zero time is returned for missing or malformed values.
func (c *Contract) Created() time.Time {
	return ParseTime(c.CreatedAt)
}

// ContractUpdate is the writable subset sent on create and update.
type ContractUpdate struct {
	Title       string           `json:"title,omitempty"`
	Description string           `json:"description,omitempty"`
	Status      string           `json:"status,omitempty"`
	Content     string           `json:"content,omitempty"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	Metadata    map[string]any   `json:"metadata,omitempty"`
}

// ContractVersion is one saved revision of a contract.
type ContractVersion struct {
	ID            ID     `json:"id"`
	VersionNumber int    `json:"version_number"`
	ChangeSummary string `json:"change_summary,omitempty"`
	CreatedBy     string `json:"created_by,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// GenerateRequest asks the backend to render a contract from a template.
type GenerateRequest struct {
	TemplateID       string         `json:"template_id,omitempty"`
	Filename         string         `json:"filename,omitempty"`
	StructuredInputs map[string]any `json:"structured_inputs"`
	UserInstructions string         `json:"user_instructions,omitempty"`
	Title            string         `json:"title,omitempty"`
	SelectedClauses  []string       `json:"selected_clauses"`
}

type GenerateResponse struct {
	Contract          Contract         `json:"contract"`
	Version           *ContractVersion `json:"version,omitempty"`
	MandatoryClauses  []Clause         `json:"mandatory_clauses,omitempty"`
	ClauseSuggestions map[string]any   `json:"clause_suggestions,omitempty"`
	ValidationErrors  []any            `json:"validation_errors,omitempty"`
}

type GenerateFromFileResponse struct {
	Contract     Contract `json:"contract"`
	RenderedText string   `json:"rendered_text"`
	RawText      string   `json:"raw_text"`
}

// Statistics is the contract count breakdown shown on the dashboard.
type Statistics struct {
	Total    int `json:"total"`
	Draft    int `json:"draft"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// ParseTime accepts the timestamp shapes the backend emits. Unparseable input yields the zero time.
func ParseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
