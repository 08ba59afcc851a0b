package model

type Workflow struct {
	ID          ID             `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Status      string         `json:"status"` // active, inactive, archived
	Steps       []WorkflowStep `json:"steps"`
	CreatedAt   string         `json:"created_at,omitempty"`
}

type WorkflowStep struct {
	StepNumber int      `json:"step_number"`
	Name       string   `json:"name"`
	AssignedTo []string `json:"assigned_to"`
	ActionType string   `json:"action_type,omitempty"`
}

// WorkflowInstance is one running execution of a workflow.
type WorkflowInstance struct {
	ID          ID     `json:"id"`
	WorkflowID  ID     `json:"workflow_id"`
	EntityType  string `json:"entity_type,omitempty"`
	EntityID    ID     `json:"entity_id,omitempty"`
	Status      string `json:"status"`
	CurrentStep int    `json:"current_step"`
	CreatedAt   string `json:"created_at,omitempty"`
}
