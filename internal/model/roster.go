package model

import "time"

// RosterSchedule one staff shift on one date (roster_schedules)
type RosterSchedule struct {
	ScheduleID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	ProfileID     string    `gorm:"type:uuid;not null;uniqueIndex:uq_roster_profile_date" json:"profile_id"`
	Date          time.Time `gorm:"type:date;not null;uniqueIndex:uq_roster_profile_date" json:"date"`
	ShiftCode     string    `gorm:"type:varchar(10);not null"                      json:"shift_code"` // D | E | HD | RD | L | OT ...
	OvertimeHours float64   `gorm:"type:numeric(4,1);not null;default:0"           json:"overtime_hours"`
	Status        string    `gorm:"type:varchar(20);not null;default:'scheduled'"  json:"status"`
	BaseModel

	Profile *StaffProfile `gorm:"foreignKey:ProfileID;references:ProfileID" json:"profile,omitempty"`
}

func (RosterSchedule) TableName() string { return "roster_schedules" }

const (
	RequestLeave     = "leave"
	RequestShiftSwap = "shift_swap"

	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// LeaveRequest leave or shift swap request (leave_requests)
type LeaveRequest struct {
	RequestID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	UserID         string     `gorm:"type:uuid;not null;index"                       json:"user_id"`
	RequestType    string     `gorm:"type:varchar(20);not null"                      json:"request_type"` // leave | shift_swap
	RequestedDate  time.Time  `gorm:"type:date;not null"                             json:"requested_date"`
	SwapWithUserID *string    `gorm:"type:uuid"                                      json:"swap_with_user_id,omitempty"`
	Status         string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | approved | rejected
	Reason         string     `gorm:"type:varchar(500)"                              json:"reason,omitempty"`
	ReviewedBy     *string    `gorm:"type:uuid"                                      json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	ReviewNote     string     `gorm:"type:varchar(500)"                              json:"review_note,omitempty"`
	VersionedModel
}

func (LeaveRequest) TableName() string { return "leave_requests" }
