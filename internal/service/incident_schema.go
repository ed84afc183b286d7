package service

import "fets-live/backend/internal/dto"

var incidentSeverities = map[string]bool{
	"low":      true,
	"medium":   true,
	"high":     true,
	"critical": true,
}

var incidentStatuses = map[string]bool{
	"open":        true,
	"in_progress": true,
	"resolved":    true,
	"closed":      true,
}

// incidentCategories in display order with their follow-up questions.
var incidentCategories = []dto.CategoryResponse{
	{Category: "roster", Label: "Roster", Questions: []dto.FollowUpQuestion{
		{Key: "shift_date", Label: "Affected shift date", Type: "text", Required: true},
		{Key: "staff_affected", Label: "Staff affected", Type: "text"},
	}},
	{Category: "calendar", Label: "Calendar", Questions: []dto.FollowUpQuestion{
		{Key: "session_date", Label: "Session date", Type: "text", Required: true},
		{Key: "client", Label: "Client", Type: "select", Options: []string{"PEARSON VUE", "PROMETRIC", "PSI", "ITTS", "OTHER"}},
	}},
	{Category: "facility", Label: "Facility", Questions: []dto.FollowUpQuestion{
		{Key: "area", Label: "Area of the centre", Type: "select", Options: []string{"exam room", "reception", "washroom", "power", "other"}, Required: true},
		{Key: "exam_impacted", Label: "Did it affect a running exam?", Type: "boolean"},
	}},
	{Category: "systems", Label: "Systems", Questions: []dto.FollowUpQuestion{
		{Key: "workstation", Label: "Workstation number", Type: "text", Required: true},
		{Key: "error_message", Label: "Error message shown", Type: "text"},
	}},
	{Category: "network", Label: "Network", Questions: []dto.FollowUpQuestion{
		{Key: "outage_minutes", Label: "Outage duration (minutes)", Type: "text", Required: true},
		{Key: "isp_ticket", Label: "ISP ticket raised?", Type: "boolean"},
	}},
	{Category: "exam", Label: "Exam", Questions: []dto.FollowUpQuestion{
		{Key: "candidate_confirmation", Label: "Candidate confirmation number", Type: "text"},
		{Key: "exam_name", Label: "Exam", Type: "text", Required: true},
		{Key: "reported_to_client", Label: "Reported to the client?", Type: "boolean"},
	}},
	{Category: "assets", Label: "Assets", Questions: []dto.FollowUpQuestion{
		{Key: "asset_tag", Label: "Asset tag", Type: "text", Required: true},
		{Key: "condition", Label: "Condition", Type: "select", Options: []string{"damaged", "missing", "faulty"}},
	}},
	{Category: "vendor", Label: "Vendor", Questions: []dto.FollowUpQuestion{
		{Key: "vendor_name", Label: "Vendor", Type: "text", Required: true},
		{Key: "sla_breached", Label: "SLA breached?", Type: "boolean"},
	}},
	{Category: "staff", Label: "Staff", Questions: []dto.FollowUpQuestion{
		{Key: "staff_name", Label: "Staff member", Type: "text", Required: true},
		{Key: "hr_informed", Label: "HR informed?", Type: "boolean"},
	}},
}

var incidentCategoryIndex = func() map[string]dto.CategoryResponse {
	m := make(map[string]dto.CategoryResponse, len(incidentCategories))
	for _, c := range incidentCategories {
		m[c.Category] = c
	}
	return m
}()

// missingAnswers lists required follow-up keys that are absent or blank.
func missingAnswers(category string, answers map[string]interface{}) []string {
	var missing []string
	for _, q := range incidentCategoryIndex[category].Questions {
		if !q.Required {
			continue
		}
		v, ok := answers[q.Key]
		if !ok || v == nil {
			missing = append(missing, q.Key)
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			missing = append(missing, q.Key)
		}
	}
	return missing
}
