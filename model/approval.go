package model

import (
	"fmt"
	"strings"
)

// ApprovalRequest is a pending or decided approval on some entity.
type ApprovalRequest struct {
	ID          ID     `json:"id"`
	EntityType  string `json:"entity_type"`
	EntityID    ID     `json:"entity_id"`
	RequesterID ID     `json:"requester_id"`
	Status      string `json:"status"` // pending, approved, rejected
	Comment     string `json:"comment,omitempty"`
	Priority    string `json:"priority,omitempty"` // low, normal, high
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ApprovalUpdate is the body of approve/reject and generic updates.
type ApprovalUpdate struct {
	Status   string `json:"status,omitempty"`
	Comment  string `json:"comment,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// NewApproval is the body used to submit an entity for approval.
type NewApproval struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Comment    string `json:"comment,omitempty"`
	Priority   string `json:"priority,omitempty"`
}

// Approval priorities
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// PriorityOrDefault returns the priority, treating anything unknown as normal.
func (a *ApprovalRequest) PriorityOrDefault() string {
	switch a.Priority {
	case PriorityLow, PriorityHigh:
		return a.Priority
	default:
		return PriorityNormal
	}
}

// FallbackTitle is "<entity_type> #<entity_id>", with "Entity" for a missing type.
func (a *ApprovalRequest) FallbackTitle() string {
	kind := a.EntityType
	if kind == "" {
		kind = "Entity"
	}
	return fmt.Sprintf("%s #%s", kind, a.EntityID)
}

// IsContract reports whether the approval targets a contract the UI can look up.
func (a *ApprovalRequest) IsContract() bool {
	return strings.Contains(strings.ToLower(a.EntityType), "contract") && a.EntityID != ""
}

// RequesterLabel is a short, human label for the requester.
func (a *ApprovalRequest) RequesterLabel() string {
	if a.RequesterID == "" {
		return "Requester"
	}
	return "Requester " + a.RequesterID.Short(6)
}
