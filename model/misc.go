package model

type Notification struct {
	ID        ID     `json:"id"`
	Type      string `json:"type"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
	ActionURL string `json:"action_url,omitempty"`
}

type SearchResult struct {
	ID             ID      `json:"id"`
	Title          string  `json:"title"`
	EntityType     string  `json:"entity_type"`
	ContentPreview string  `json:"content_preview"`
	RelevanceScore float64 `json:"relevance_score"`
}

// PrivateUpload is an object in the user's private upload area.
type PrivateUpload struct {
	Key        string  `json:"key"`
	Filename   string  `json:"filename"`
	FileType   string  `json:"file_type"`
	Size       int64   `json:"size"`
	UploadedAt *string `json:"uploaded_at,omitempty"`
}

type PrivateUploadURL struct {
	Success   bool   `json:"success"`
	Key       string `json:"key"`
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}

// MetadataField is an indexing field applied to contracts, templates or workflows.
type MetadataField struct {
	ID          ID     `json:"id,omitempty"`
	Name        string `json:"name"`
	FieldType   string `json:"field_type"` // text, date, currency, dropdown
	Source      string `json:"source,omitempty"`
	EntityType  string `json:"entity_type,omitempty"`
	IsMandatory bool   `json:"is_mandatory"`
	Usage       int    `json:"usage,omitempty"` // percent of records populated
	Archived    bool   `json:"archived,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Folder is a repository folder.
type Folder struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	ParentID *ID    `json:"parent_id,omitempty"`
}

type Document struct {
	ID        ID     `json:"id"`
	Title     string `json:"title,omitempty"`
	Filename  string `json:"filename,omitempty"`
	FileType  string `json:"file_type,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Health is the backend health probe payload.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
