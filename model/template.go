package model

// ContractTemplate is a database-backed contract template.
type ContractTemplate struct {
	ID           ID       `json:"id"`
	Name         string   `json:"name"`
	ContractType string   `json:"contract_type,omitempty"`
	Description  string   `json:"description,omitempty"`
	R2Key        string   `json:"r2_key,omitempty"`
	MergeFields  []string `json:"merge_fields,omitempty"`
	Status       string   `json:"status,omitempty"`
}

// Clause is a reusable clause from the clause library.
type Clause struct {
	ID           ID     `json:"id"`
	ClauseID     string `json:"clause_id"`
	Name         string `json:"name"`
	Version      int    `json:"version,omitempty"`
	ContractType string `json:"contract_type,omitempty"`
	Content      string `json:"content"`
	Status       string `json:"status,omitempty"`
	IsMandatory  bool   `json:"is_mandatory,omitempty"`
	Tags         any    `json:"tags,omitempty"`
}

// TemplateFile is the content of a file-backed template type.
type TemplateFile struct {
	Success      bool   `json:"success"`
	TemplateType string `json:"template_type"`
	Filename     string `json:"filename"`
	Content      string `json:"content"`
	Size         int64  `json:"size"`
	DisplayName  string `json:"display_name,omitempty"`
	Description  string `json:"description,omitempty"`
}

// FileTemplate is a listing entry for file-backed templates.
type FileTemplate struct {
	ID             string `json:"id"`
	Filename       string `json:"filename"`
	Name           string `json:"name"`
	ContractType   string `json:"contract_type"`
	Description    string `json:"description,omitempty"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at,omitempty"`
	UpdatedAt      string `json:"updated_at,omitempty"`
	CreatedByID    string `json:"created_by_id,omitempty"`
	CreatedByEmail string `json:"created_by_email,omitempty"`
}

type FileTemplateContent struct {
	Success      bool   `json:"success"`
	Filename     string `json:"filename"`
	Name         string `json:"name"`
	TemplateType string `json:"template_type"`
	Content      string `json:"content"`
	Size         int64  `json:"size"`
}

type NewFileTemplate struct {
	Name        string `json:"name,omitempty"`
	Filename    string `json:"filename,omitempty"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content"`
}

type CreatedFileTemplate struct {
	Success  bool         `json:"success"`
	Template FileTemplate `json:"template"`
}
