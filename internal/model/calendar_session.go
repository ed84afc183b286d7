package model

import "time"

// CalendarSession scheduled exam session (calendar_sessions)
// CandidateCount is the manually entered capacity, not a live count.
type CalendarSession struct {
	SessionID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	ClientName     string    `gorm:"type:varchar(100);not null"                     json:"client_name"`
	ExamName       string    `gorm:"type:varchar(150)"                              json:"exam_name"`
	Date           time.Time `gorm:"type:date;not null;index"                       json:"date"`
	StartTime      string    `gorm:"type:varchar(5);not null"                       json:"start_time"` // HH:MM
	EndTime        string    `gorm:"type:varchar(5);not null"                       json:"end_time"`
	CandidateCount int       `gorm:"not null;default:0"                             json:"candidate_count"`
	BranchLocation string    `gorm:"type:varchar(20);not null;index"                json:"branch_location"`
	Notes          string    `gorm:"type:text"                                      json:"notes,omitempty"`
	SoftDeleteModel
}

func (CalendarSession) TableName() string { return "calendar_sessions" }
