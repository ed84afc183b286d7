package service

import (
	"sort"
	"strings"

	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/model"
)

const (
	ClientPearson   = "PEARSON"
	ClientPrometric = "PROMETRIC"
	ClientPSI       = "PSI"
	ClientITTS      = "ITTS"
	ClientOther     = "OTHER"

	StatusMatch    = "match"
	StatusExcess   = "excess"
	StatusShortage = "shortage"

	defaultExamName = "General"
)

// NormalizeClient folds a raw client string onto the reconciliation
// vendors. It is case-insensitive and idempotent.
func NormalizeClient(raw string) string {
	upper := strings.ToUpper(raw)
	switch {
	case strings.Contains(upper, "PEARSON"), strings.Contains(upper, "VUE"):
		return ClientPearson
	case strings.Contains(upper, "PROMETRIC"):
		return ClientPrometric
	case strings.Contains(upper, "PSI"):
		return ClientPSI
	case strings.Contains(upper, "ITTS"):
		return ClientITTS
	default:
		return ClientOther
	}
}

// Classify maps a register-minus-calendar difference to its status.
func Classify(difference int) string {
	switch {
	case difference > 0:
		return StatusExcess
	case difference < 0:
		return StatusShortage
	default:
		return StatusMatch
	}
}

func examOrDefault(exam string) string {
	if e := strings.TrimSpace(exam); e != "" {
		return e
	}
	return defaultExamName
}

// Reconcile compares calendar capacity with registered candidates per
// (normalised client, exam). Rows are ordered by descending absolute
// difference, then key.
func Reconcile(sessions []model.CalendarSession, candidates []model.Candidate) ([]dto.DiscrepancyRow, dto.ReconciliationSummary) {
	rows := make(map[string]*dto.DiscrepancyRow)
	get := func(client, exam string) *dto.DiscrepancyRow {
		key := client + "_" + exam
		r, ok := rows[key]
		if !ok {
			r = &dto.DiscrepancyRow{Key: key, Client: client, Exam: exam}
			rows[key] = r
		}
		return r
	}

	for i := range sessions {
		r := get(NormalizeClient(sessions[i].ClientName), examOrDefault(sessions[i].ExamName))
		r.CalendarCount += sessions[i].CandidateCount
	}
	for i := range candidates {
		c := &candidates[i]
		r := get(NormalizeClient(DisplayClientName(c.ClientName, c.ExamName)), examOrDefault(c.ExamName))
		r.RegisterCount++
	}

	var summary dto.ReconciliationSummary
	result := make([]dto.DiscrepancyRow, 0, len(rows))
	for _, r := range rows {
		r.Difference = r.RegisterCount - r.CalendarCount
		r.Status = Classify(r.Difference)
		switch r.Status {
		case StatusMatch:
			summary.Match++
		case StatusExcess:
			summary.Excess++
		case StatusShortage:
			summary.Shortage++
		}
		summary.TotalCalendar += r.CalendarCount
		summary.TotalRegister += r.RegisterCount
		result = append(result, *r)
	}

	sort.Slice(result, func(i, j int) bool {
		ai, aj := abs(result[i].Difference), abs(result[j].Difference)
		if ai != aj {
			return ai > aj
		}
		return result[i].Key < result[j].Key
	})
	return result, summary
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
