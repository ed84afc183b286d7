package model

const (
	RoleStaff      = "staff"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// StaffProfile staff member details: staff_profiles (1:1 with users)
type StaffProfile struct {
	ProfileID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"profile_id"`
	UserID         string `gorm:"type:uuid;not null;uniqueIndex"                 json:"user_id"`
	FullName       string `gorm:"type:varchar(150);not null"                     json:"full_name"`
	Role           string `gorm:"type:varchar(20);not null;default:'staff'"      json:"role"` // staff | admin | super_admin
	Department     string `gorm:"type:varchar(100)"                              json:"department,omitempty"`
	BranchAssigned string `gorm:"type:varchar(20);not null;default:'calicut'"    json:"branch_assigned"`
	AvatarURL      string `gorm:"type:varchar(500)"                              json:"avatar_url,omitempty"`
	Bio            string `gorm:"type:text"                                      json:"bio,omitempty"`
	VersionedModel
}

func (StaffProfile) TableName() string { return "staff_profiles" }

// IsAdmin reports admin or super admin.
func IsAdmin(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}
