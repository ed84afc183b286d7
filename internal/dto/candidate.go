package dto

// ── candidates ──

// CreateCandidateRequest register a candidate.
// RequireClient enforces a client selection.
type CreateCandidateRequest struct {
	FullName       string `json:"full_name"       binding:"max=150"`
	Address        string `json:"address"         binding:"omitempty,max=300"`
	Phone          string `json:"phone"           binding:"omitempty,max=30"`
	ExamDate       string `json:"exam_date"       binding:"omitempty,datetime=2006-01-02"`
	ExamName       string `json:"exam_name"       binding:"omitempty,max=150"`
	ClientName     string `json:"client_name"     binding:"omitempty,max=100"`
	BranchLocation string `json:"branch_location"`
	Notes          string `json:"notes"`
	RequireClient  bool   `json:"require_client"`
}

// UpdateCandidateRequest partial update
type UpdateCandidateRequest struct {
	FullName       *string `json:"full_name"       binding:"omitempty,max=150"`
	Address        *string `json:"address"         binding:"omitempty,max=300"`
	Phone          *string `json:"phone"           binding:"omitempty,max=30"`
	ExamDate       *string `json:"exam_date"       binding:"omitempty,datetime=2006-01-02"`
	ExamName       *string `json:"exam_name"       binding:"omitempty,max=150"`
	ClientName     *string `json:"client_name"     binding:"omitempty,max=100"`
	Status         *string `json:"status"`
	BranchLocation *string `json:"branch_location"`
	Notes          *string `json:"notes"`
}

// UpdateStatusRequest status transition
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CandidateListRequest list filters
type CandidateListRequest struct {
	PaginationRequest
	Status   string `form:"status"`
	Client   string `form:"client"`
	From     string `form:"from"      binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to"        binding:"omitempty,datetime=2006-01-02"` // inclusive
	Search   string `form:"search"`
	SortBy   string `form:"sort_by"   binding:"omitempty,oneof=exam_date created_at full_name"`
	SortDesc bool   `form:"sort_desc"`
}

// CandidateResponse candidate row with the display client
type CandidateResponse struct {
	ID                 string `json:"id"`
	FullName           string `json:"full_name"`
	Address            string `json:"address,omitempty"`
	Phone              string `json:"phone,omitempty"`
	ExamDate           string `json:"exam_date,omitempty"`
	ExamName           string `json:"exam_name,omitempty"`
	ClientName         string `json:"client_name,omitempty"`
	DisplayClient      string `json:"display_client"`
	Status             string `json:"status"`
	ConfirmationNumber string `json:"confirmation_number"`
	BranchLocation     string `json:"branch_location"`
	Notes              string `json:"notes,omitempty"`
	CreatedAt          string `json:"created_at"`
}
