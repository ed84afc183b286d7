package model

import "time"

// BranchStatus live operating status of a centre (branch_status)
type BranchStatus struct {
	BranchLocation string    `gorm:"type:varchar(20);primaryKey"                json:"branch_location"`
	Status         string    `gorm:"type:varchar(20);not null;default:'normal'" json:"status"` // normal | degraded | closed
	Message        string    `gorm:"type:varchar(500)"                          json:"message,omitempty"`
	UpdatedBy      *string   `gorm:"type:uuid"                                  json:"updated_by,omitempty"`
	UpdatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"         json:"updated_at"`
}

func (BranchStatus) TableName() string { return "branch_status" }
