package dto

// ── vault ──

// CreateVaultItemRequest new vault entry
type CreateVaultItemRequest struct {
	Title          string   `json:"title"           binding:"required,max=200"`
	Category       string   `json:"category"        binding:"omitempty,max=50"`
	Content        string   `json:"content"`
	Tags           []string `json:"tags"            binding:"omitempty,max=20,dive,max=40"`
	BranchLocation string   `json:"branch_location"`
}

// UpdateVaultItemRequest partial update
type UpdateVaultItemRequest struct {
	Title    *string  `json:"title"    binding:"omitempty,max=200"`
	Category *string  `json:"category" binding:"omitempty,max=50"`
	Content  *string  `json:"content"`
	Tags     []string `json:"tags"     binding:"omitempty,max=20,dive,max=40"`
}

// VaultListRequest list filters
type VaultListRequest struct {
	PaginationRequest
	Category string `form:"category"`
	Tag      string `form:"tag"`
	Keyword  string `form:"keyword"`
}

// VaultItemResponse vault entry
type VaultItemResponse struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Category       string   `json:"category"`
	Content        string   `json:"content,omitempty"`
	Tags           []string `json:"tags"`
	BranchLocation string   `json:"branch_location"`
	UpdatedAt      string   `json:"updated_at"`
}
