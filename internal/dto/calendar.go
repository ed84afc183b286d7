package dto

// ── calendar sessions ──

// CreateSessionRequest new exam session
type CreateSessionRequest struct {
	ClientName     string `json:"client_name"     binding:"required,max=100"`
	ExamName       string `json:"exam_name"       binding:"omitempty,max=150"`
	Date           string `json:"date"            binding:"required,datetime=2006-01-02"`
	StartTime      string `json:"start_time"      binding:"required,datetime=15:04"`
	EndTime        string `json:"end_time"        binding:"required,datetime=15:04"`
	CandidateCount int    `json:"candidate_count" binding:"min=0"`
	BranchLocation string `json:"branch_location"`
	Notes          string `json:"notes"`
}

// UpdateSessionRequest partial update
type UpdateSessionRequest struct {
	ClientName     *string `json:"client_name"     binding:"omitempty,max=100"`
	ExamName       *string `json:"exam_name"       binding:"omitempty,max=150"`
	Date           *string `json:"date"            binding:"omitempty,datetime=2006-01-02"`
	StartTime      *string `json:"start_time"      binding:"omitempty,datetime=15:04"`
	EndTime        *string `json:"end_time"        binding:"omitempty,datetime=15:04"`
	CandidateCount *int    `json:"candidate_count" binding:"omitempty,min=0"`
	BranchLocation *string `json:"branch_location"`
	Notes          *string `json:"notes"`
}

// MonthRequest month selector
type MonthRequest struct {
	Month string `form:"month" binding:"omitempty,datetime=2006-01"`
}

// SessionResponse exam session
type SessionResponse struct {
	ID             string `json:"id"`
	ClientName     string `json:"client_name"`
	ExamName       string `json:"exam_name,omitempty"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	CandidateCount int    `json:"candidate_count"`
	BranchLocation string `json:"branch_location"`
	Notes          string `json:"notes,omitempty"`
}
