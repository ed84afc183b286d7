package dto

import "encoding/json"

// ── checklists ──

// ChecklistItem one question of a template
type ChecklistItem struct {
	ID       string `json:"id"       binding:"required"`
	Label    string `json:"label"    binding:"required"`
	Type     string `json:"type"` // checkbox | text | number
	Required bool   `json:"required"`
}

// CreateTemplateRequest new template; empty branch means global
type CreateTemplateRequest struct {
	Name           string          `json:"name"            binding:"required,max=150"`
	Type           string          `json:"type"            binding:"required,oneof=pre_exam post_exam custom"`
	BranchLocation string          `json:"branch_location"`
	Items          []ChecklistItem `json:"items"           binding:"required,min=1,dive"`
}

// TemplateListRequest list filters
type TemplateListRequest struct {
	Type            string `form:"type" binding:"omitempty,oneof=pre_exam post_exam custom"`
	IncludeInactive bool   `form:"include_inactive"`
}

// TemplateResponse template row
type TemplateResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	BranchLocation string          `json:"branch_location,omitempty"`
	Items          []ChecklistItem `json:"items"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      string          `json:"created_at"`
}

// SubmitChecklistRequest completed checklist
type SubmitChecklistRequest struct {
	TemplateID     string          `json:"template_id"     binding:"required,uuid"`
	BranchLocation string          `json:"branch_location"`
	ExamDate       string          `json:"exam_date"       binding:"omitempty,datetime=2006-01-02"`
	Answers        json.RawMessage `json:"answers"         binding:"required"`
}

// SubmissionListRequest list filters
type SubmissionListRequest struct {
	PaginationRequest
	TemplateID string `form:"template_id" binding:"omitempty,uuid"`
}

// SubmissionResponse submission row
type SubmissionResponse struct {
	ID             string          `json:"id"`
	TemplateID     string          `json:"template_id"`
	BranchLocation string          `json:"branch_location"`
	SubmittedBy    string          `json:"submitted_by"`
	ExamDate       string          `json:"exam_date,omitempty"`
	Answers        json.RawMessage `json:"answers"`
	CreatedAt      string          `json:"created_at"`
}
