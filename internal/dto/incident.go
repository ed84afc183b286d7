package dto

// ── incidents ──

// CreateIncidentRequest new incident
type CreateIncidentRequest struct {
	Title          string                 `json:"title"           binding:"required,max=200"`
	Description    string                 `json:"description"`
	Category       string                 `json:"category"        binding:"required"`
	Severity       string                 `json:"severity"`
	BranchLocation string                 `json:"branch_location"`
	Answers        map[string]interface{} `json:"answers"`
	Vendor         *VendorInfo            `json:"vendor"`
}

// VendorInfo vendor contact captured with an incident
type VendorInfo struct {
	Name      string `json:"name"`
	Contact   string `json:"contact,omitempty"`
	TicketRef string `json:"ticket_ref,omitempty"`
}

// UpdateIncidentRequest partial update
type UpdateIncidentRequest struct {
	Title       *string                `json:"title"       binding:"omitempty,max=200"`
	Description *string                `json:"description"`
	Category    *string                `json:"category"`
	Severity    *string                `json:"severity"`
	Answers     map[string]interface{} `json:"answers"`
	Vendor      *VendorInfo            `json:"vendor"`
	Version     int                    `json:"version" binding:"required,min=1"`
}

// IncidentListRequest list filters
type IncidentListRequest struct {
	PaginationRequest
	Status   string `form:"status"`
	Category string `form:"category"`
	Severity string `form:"severity"`
	Keyword  string `form:"keyword"`
}

// IncidentMetadata stored in incidents.metadata
type IncidentMetadata struct {
	Answers map[string]interface{} `json:"answers,omitempty"`
	Vendor  *VendorInfo            `json:"vendor,omitempty"`
}

// IncidentResponse incident row
type IncidentResponse struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	Category       string           `json:"category"`
	Status         string           `json:"status"`
	Severity       string           `json:"severity"`
	ReporterID     string           `json:"reporter_id"`
	ReporterName   string           `json:"reporter_name,omitempty"`
	BranchLocation string           `json:"branch_location"`
	Metadata       IncidentMetadata `json:"metadata"`
	ResolvedAt     string           `json:"resolved_at,omitempty"`
	CreatedAt      string           `json:"created_at"`
	Version        int              `json:"version"`
}

// IncidentStatsResponse counts per status
type IncidentStatsResponse struct {
	Open       int64 `json:"open"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
	Closed     int64 `json:"closed"`
	Total      int64 `json:"total"`
}

// CreateCommentRequest comment body
type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,max=2000"`
}

// CommentResponse comment row
type CommentResponse struct {
	ID        string `json:"id"`
	AuthorID  string `json:"author_id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// FollowUpQuestion one follow-up question for a category
type FollowUpQuestion struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Type     string   `json:"type"` // text | boolean | select
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
}

// CategoryResponse category with its follow-up questions
type CategoryResponse struct {
	Category  string             `json:"category"`
	Label     string             `json:"label"`
	Questions []FollowUpQuestion `json:"questions"`
}
