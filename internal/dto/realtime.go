package dto

// ── branch status board ──

// UpdateBranchStatusRequest new status for one branch
type UpdateBranchStatusRequest struct {
	Status  string `json:"status"  binding:"required,oneof=normal degraded closed"`
	Message string `json:"message" binding:"omitempty,max=500"`
}

// BranchStatusResponse status row; also the pub/sub payload
type BranchStatusResponse struct {
	Branch      string `json:"branch"`
	DisplayName string `json:"display_name"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
	UpdatedBy   string `json:"updated_by,omitempty"`
	UpdatedAt   string `json:"updated_at"`
}

// ── device capabilities ──

// RegisterPushRequest push registration from a client runtime
type RegisterPushRequest struct {
	Platform   string `json:"platform"   binding:"required,oneof=web ios android"`
	Permission string `json:"permission" binding:"required,oneof=granted denied prompt"`
	Token      string `json:"token"      binding:"omitempty,max=500"`
}

// CapabilityRequest status bar / haptics probe
type CapabilityRequest struct {
	Platform string `json:"platform" binding:"required,oneof=web ios android"`
}

// CapabilityResponse result of a capability call
type CapabilityResponse struct {
	Result string `json:"result"` // ok | unavailable | denied
}

// ── assistant ──

// ChatRequest user message
type ChatRequest struct {
	Message string `json:"message" binding:"required,max=4000"`
}

// ChatResponse assistant reply
type ChatResponse struct {
	Reply     string `json:"reply"`
	Available bool   `json:"available"`
	Branch    string `json:"branch"`
}
