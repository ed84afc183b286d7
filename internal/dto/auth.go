package dto

// ── auth ──

// LoginRequest email + password login
type LoginRequest struct {
	Email      string `json:"email"    binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RefreshTokenRequest refresh token exchange
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest password change for the signed-in user
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=64"`
}

// CreateStaffRequest admin creates an account with its profile
type CreateStaffRequest struct {
	Email          string `json:"email"           binding:"required,email"`
	Password       string `json:"password"        binding:"required,min=8,max=64"`
	FullName       string `json:"full_name"       binding:"required,max=150"`
	Role           string `json:"role"            binding:"omitempty,oneof=staff admin super_admin"`
	Department     string `json:"department"      binding:"omitempty,max=100"`
	BranchAssigned string `json:"branch_assigned" binding:"required"`
}

// TokenResponse token pair
type TokenResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token,omitempty"`
	ExpiresIn    int             `json:"expires_in"` // seconds
	User         AccountResponse `json:"user"`
}

// AccountResponse signed-in account with its profile
type AccountResponse struct {
	ID      string           `json:"id"`
	Email   string           `json:"email"`
	Role    string           `json:"role"`
	Profile *ProfileResponse `json:"profile,omitempty"`
}
