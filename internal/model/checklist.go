package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ChecklistPreExam  = "pre_exam"
	ChecklistPostExam = "post_exam"
	ChecklistCustom   = "custom"
)

// ChecklistTemplate branch-scoped procedure questionnaire (checklist_templates)
// A nil BranchLocation or "global" marks a template usable everywhere.
type ChecklistTemplate struct {
	TemplateID     string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"template_id"`
	Name           string         `gorm:"type:varchar(150);not null"                     json:"name"`
	Type           string         `gorm:"type:varchar(20);not null;index"                json:"type"`
	BranchLocation *string        `gorm:"type:varchar(20)"                               json:"branch_location,omitempty"`
	Items          datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"               json:"items"`
	IsActive       bool           `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

func (ChecklistTemplate) TableName() string { return "checklist_templates" }

// ChecklistSubmission completed checklist (checklist_submissions)
type ChecklistSubmission struct {
	SubmissionID   string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_id"`
	TemplateID     string         `gorm:"type:uuid;not null;index"                       json:"template_id"`
	BranchLocation string         `gorm:"type:varchar(20);not null"                      json:"branch_location"`
	SubmittedBy    string         `gorm:"type:uuid;not null"                             json:"submitted_by"`
	ExamDate       *time.Time     `gorm:"type:date"                                      json:"exam_date,omitempty"`
	Answers        datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"               json:"answers"`
	CreatedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

func (ChecklistSubmission) TableName() string { return "checklist_submissions" }
