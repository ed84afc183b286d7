package dto

// ── clients ──

// CreateClientRequest new client
type CreateClientRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateClientExamRequest new exam under a client
type CreateClientExamRequest struct {
	Name string `json:"name" binding:"required,min=1,max=150"`
	Code string `json:"code" binding:"omitempty,max=50"`
}

// ClientExamResponse exam offered by a client
type ClientExamResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// ClientResponse client with its exams
type ClientResponse struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	IsActive bool                 `json:"is_active"`
	Exams    []ClientExamResponse `json:"exams"`
}
