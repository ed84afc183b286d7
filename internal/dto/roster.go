package dto

// ── roster ──

// RosterListRequest date range [from, to]
type RosterListRequest struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to"   binding:"required,datetime=2006-01-02"`
}

// UpsertShiftRequest set one staff shift
type UpsertShiftRequest struct {
	ProfileID     string  `json:"profile_id"     binding:"required,uuid"`
	Date          string  `json:"date"           binding:"required,datetime=2006-01-02"`
	ShiftCode     string  `json:"shift_code"     binding:"required,max=10"`
	OvertimeHours float64 `json:"overtime_hours" binding:"min=0,max=24"`
	Status        string  `json:"status"         binding:"omitempty,max=20"`
}

// ShiftResponse roster row
type ShiftResponse struct {
	ID            string  `json:"id"`
	ProfileID     string  `json:"profile_id"`
	StaffName     string  `json:"staff_name,omitempty"`
	Branch        string  `json:"branch,omitempty"`
	Date          string  `json:"date"`
	ShiftCode     string  `json:"shift_code"`
	OvertimeHours float64 `json:"overtime_hours"`
	Status        string  `json:"status"`
}

// ── leave / swap requests ──

// CreateLeaveRequest new leave or shift swap request
type CreateLeaveRequest struct {
	RequestType    string `json:"request_type"      binding:"required,oneof=leave shift_swap"`
	RequestedDate  string `json:"requested_date"    binding:"required,datetime=2006-01-02"`
	SwapWithUserID string `json:"swap_with_user_id" binding:"omitempty,uuid"`
	Reason         string `json:"reason"            binding:"omitempty,max=500"`
}

// ReviewRequest reviewer note
type ReviewRequest struct {
	Note string `json:"note" binding:"omitempty,max=500"`
}

// LeaveListRequest list filters
type LeaveListRequest struct {
	PaginationRequest
	Status      string `form:"status"       binding:"omitempty,oneof=pending approved rejected"`
	RequestType string `form:"request_type" binding:"omitempty,oneof=leave shift_swap"`
	All         bool   `form:"all"` // admins only
}

// LeaveResponse request row
type LeaveResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	RequestType    string `json:"request_type"`
	RequestedDate  string `json:"requested_date"`
	SwapWithUserID string `json:"swap_with_user_id,omitempty"`
	Status         string `json:"status"`
	Reason         string `json:"reason,omitempty"`
	ReviewedBy     string `json:"reviewed_by,omitempty"`
	ReviewedAt     string `json:"reviewed_at,omitempty"`
	ReviewNote     string `json:"review_note,omitempty"`
	CreatedAt      string `json:"created_at"`
}

// ── audit ──

// AuditListRequest list filters
type AuditListRequest struct {
	PaginationRequest
	Action string `form:"action"`
}

// AuditResponse audit row
type AuditResponse struct {
	ID         string `json:"id"`
	Action     string `json:"action"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	ActorID    string `json:"actor_id"`
	Details    string `json:"details,omitempty"`
	CreatedAt  string `json:"created_at"`
}
