package dto

// ── staff profiles ──

// ProfileListRequest list filters
type ProfileListRequest struct {
	PaginationRequest
	Role       string `form:"role"       binding:"omitempty,oneof=staff admin super_admin"`
	Department string `form:"department"`
	Keyword    string `form:"keyword"`
}

// UpdateProfileRequest partial update; role and branch need an admin
type UpdateProfileRequest struct {
	FullName       *string `json:"full_name"       binding:"omitempty,min=1,max=150"`
	Role           *string `json:"role"            binding:"omitempty,oneof=staff admin super_admin"`
	Department     *string `json:"department"      binding:"omitempty,max=100"`
	BranchAssigned *string `json:"branch_assigned"`
	AvatarURL      *string `json:"avatar_url"      binding:"omitempty,max=500"`
	Bio            *string `json:"bio"`
	Version        int     `json:"version"         binding:"required,min=1"`
}

// ProfileResponse staff profile
type ProfileResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	FullName       string `json:"full_name"`
	Role           string `json:"role"`
	Department     string `json:"department,omitempty"`
	BranchAssigned string `json:"branch_assigned"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	Bio            string `json:"bio,omitempty"`
	Version        int    `json:"version"`
}

// ── branch context ──

// BranchOption one selectable branch
type BranchOption struct {
	Value       string `json:"value"`
	DisplayName string `json:"display_name"`
}

// BranchContextResponse active branch and what the user may pick
type BranchContextResponse struct {
	ActiveBranch string         `json:"active_branch"`
	DisplayName  string         `json:"display_name"`
	Accessible   []BranchOption `json:"accessible"`
	CanSwitch    bool           `json:"can_switch"`
	Changed      bool           `json:"changed"`
}

// SwitchBranchRequest target branch
type SwitchBranchRequest struct {
	Branch string `json:"branch" binding:"required"`
}
