package dto

// ── register/calendar reconciliation ──

// DiscrepancyRow one (client, exam) group
type DiscrepancyRow struct {
	Key           string `json:"key"`
	Client        string `json:"client"`
	Exam          string `json:"exam"`
	CalendarCount int    `json:"calendar_count"`
	RegisterCount int    `json:"register_count"`
	Difference    int    `json:"difference"`
	Status        string `json:"status"` // match | excess | shortage
}

// ReconciliationSummary per-status roll-up
type ReconciliationSummary struct {
	Match         int `json:"match"`
	Excess        int `json:"excess"`
	Shortage      int `json:"shortage"`
	TotalCalendar int `json:"total_calendar"`
	TotalRegister int `json:"total_register"`
}

// ReconciliationReport month report
type ReconciliationReport struct {
	Month               string                `json:"month"`
	Branch              string                `json:"branch"`
	Rows                []DiscrepancyRow      `json:"rows"`
	Summary             ReconciliationSummary `json:"summary"`
	CalendarUnavailable bool                  `json:"calendar_unavailable"`
	GeneratedAt         string                `json:"generated_at"`
}
