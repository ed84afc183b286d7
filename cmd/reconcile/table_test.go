package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"fets-live/backend/internal/dto"
)

func init() {
	color.NoColor = true
}

func TestPrintReport(t *testing.T) {
	report := &dto.ReconciliationReport{
		Month:  "2026-03",
		Branch: "calicut",
		Rows: []dto.DiscrepancyRow{
			{Client: "Pearson Vue", Exam: "TOEFL", CalendarCount: 3, RegisterCount: 1, Difference: -2, Status: "shortage"},
			{Client: "Prometric", Exam: "CMA", CalendarCount: 2, RegisterCount: 2, Difference: 0, Status: "match"},
		},
		Summary: dto.ReconciliationSummary{Match: 1, Shortage: 1, TotalCalendar: 5, TotalRegister: 3},
	}

	var buf bytes.Buffer
	printReport(&buf, report)
	out := buf.String()

	for _, want := range []string{"Calicut", "2026-03", "TOEFL", "SHORTAGE", "MATCH", "-2", "1/0/1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestPrintReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, &dto.ReconciliationReport{Month: "2026-04", Branch: "kannur", CalendarUnavailable: true})

	out := buf.String()
	if !strings.Contains(out, "no sessions or candidates") {
		t.Errorf("expected empty notice, got %s", out)
	}
	if !strings.Contains(out, "calendar could not be read") {
		t.Errorf("expected calendar warning, got %s", out)
	}
}
