package model

import "time"

const (
	CandidateRegistered = "registered"
	CandidateCheckedIn  = "checked_in"
	CandidateInProgress = "in_progress"
	CandidateCompleted  = "completed"
	CandidateNoShow     = "no_show"
	CandidateCancelled  = "cancelled"
)

// CandidateStatuses lists every valid candidate status.
var CandidateStatuses = []string{
	CandidateRegistered, CandidateCheckedIn, CandidateInProgress,
	CandidateCompleted, CandidateNoShow, CandidateCancelled,
}

// Candidate registered exam candidate (candidates)
type Candidate struct {
	CandidateID        string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"   json:"candidate_id"`
	FullName           string     `gorm:"type:varchar(150);not null"                       json:"full_name"`
	Address            string     `gorm:"type:varchar(300)"                                json:"address,omitempty"`
	Phone              string     `gorm:"type:varchar(30)"                                 json:"phone,omitempty"`
	ExamDate           *time.Time `gorm:"type:date"                                        json:"exam_date,omitempty"`
	ExamName           string     `gorm:"type:varchar(150)"                                json:"exam_name,omitempty"`
	ClientName         string     `gorm:"type:varchar(100)"                                json:"client_name,omitempty"`
	Status             string     `gorm:"type:varchar(20);not null;default:'registered'"   json:"status"`
	ConfirmationNumber string     `gorm:"type:varchar(20);not null;index"                  json:"confirmation_number"`
	BranchLocation     string     `gorm:"type:varchar(20);not null;index"                  json:"branch_location"`
	Notes              string     `gorm:"type:text"                                        json:"notes,omitempty"`
	SoftDeleteModel
}

func (Candidate) TableName() string { return "candidates" }
