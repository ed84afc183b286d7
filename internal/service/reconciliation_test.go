package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/model"
)

func day(s string) time.Time {
	d, _ := time.Parse(dateLayout, s)
	return d
}

func dayPtr(s string) *time.Time {
	d := day(s)
	return &d
}

// ── pure functions ──

func TestNormalizeClient(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Pearson Vue", ClientPearson},
		{"PEARSON VUE", ClientPearson},
		{"vue", ClientPearson},
		{"prometric", ClientPrometric},
		{"PSI Services", ClientPSI},
		{"itts", ClientITTS},
		{"ETS", ClientOther},
		{"", ClientOther},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeClient(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeClient(%q) = %s, want %s", tt.in, got, tt.want)
			}
			if again := NormalizeClient(got); again != got {
				t.Errorf("not idempotent: %s -> %s", got, again)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	for _, d := range []int{-7, -1, 0, 1, 12} {
		status := Classify(d)
		switch {
		case d > 0 && status != StatusExcess,
			d < 0 && status != StatusShortage,
			d == 0 && status != StatusMatch:
			t.Errorf("Classify(%d) = %s", d, status)
		}
	}
}

func TestReconcile_Example(t *testing.T) {
	sessions := []model.CalendarSession{{ClientName: "Pearson Vue", ExamName: "TOEFL", CandidateCount: 10}}
	var candidates []model.Candidate
	for i := 0; i < 5; i++ {
		candidates = append(candidates, model.Candidate{ClientName: "PEARSON VUE", ExamName: "TOEFL"})
	}

	rows, summary := Reconcile(sessions, candidates)
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	r := rows[0]
	if r.Client != ClientPearson || r.Exam != "TOEFL" || r.CalendarCount != 10 || r.RegisterCount != 5 {
		t.Errorf("unexpected row %+v", r)
	}
	if r.Difference != -5 || r.Status != StatusShortage {
		t.Errorf("expected -5 shortage, got %d %s", r.Difference, r.Status)
	}
	if summary.Shortage != 1 || summary.TotalCalendar != 10 || summary.TotalRegister != 5 {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestReconcile_GroupsAndOrders(t *testing.T) {
	sessions := []model.CalendarSession{
		{ClientName: "Prometric", ExamName: "CMA", CandidateCount: 3},
		{ClientName: "PSI", ExamName: "", CandidateCount: 2},
		{ClientName: "psi", ExamName: " ", CandidateCount: 1},
	}
	candidates := []model.Candidate{
		{ClientName: "PROMETRIC", ExamName: "CMA"},
		{ClientName: "PROMETRIC", ExamName: "CMA"},
		{ClientName: "PROMETRIC", ExamName: "CMA"},
		{ClientName: "", ExamName: "CELPIP General"}, // derived client CELPIP -> OTHER
	}

	rows, summary := Reconcile(sessions, candidates)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %+v", len(rows), rows)
	}
	// largest |difference| first
	if rows[0].Key != "PSI_General" || rows[0].Difference != -3 {
		t.Errorf("expected PSI_General -3 first, got %+v", rows[0])
	}
	if rows[1].Key != "OTHER_CELPIP General" || rows[1].Status != StatusExcess {
		t.Errorf("expected OTHER_CELPIP General excess second, got %+v", rows[1])
	}
	if rows[2].Key != "PROMETRIC_CMA" || rows[2].Status != StatusMatch {
		t.Errorf("expected PROMETRIC_CMA match last, got %+v", rows[2])
	}
	if summary.Match != 1 || summary.Excess != 1 || summary.Shortage != 1 {
		t.Errorf("unexpected summary %+v", summary)
	}
	for _, r := range rows {
		if Classify(r.Difference) != r.Status {
			t.Errorf("status %s does not match difference %d", r.Status, r.Difference)
		}
	}
}

func TestReconcile_Empty(t *testing.T) {
	rows, summary := Reconcile(nil, nil)
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
	if summary.TotalCalendar != 0 || summary.TotalRegister != 0 {
		t.Errorf("expected zero totals, got %+v", summary)
	}
}

// ── ReconciliationService ──

func setupReconciliationService() (*reconciliationService, *mocks) {
	repo, m := newMockRepository()
	svc := NewReconciliationService(repo, zap.NewNop()).(*reconciliationService)
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, IST) }
	return svc, m
}

func TestReconciliationService_Report_MonthAndScope(t *testing.T) {
	svc, m := setupReconciliationService()
	ctx := context.Background()

	_ = m.calendar.Create(ctx, &model.CalendarSession{ClientName: "Pearson Vue", ExamName: "TOEFL", Date: day("2026-03-10"), CandidateCount: 4, BranchLocation: "calicut"})
	_ = m.calendar.Create(ctx, &model.CalendarSession{ClientName: "Pearson Vue", ExamName: "TOEFL", Date: day("2026-04-01"), CandidateCount: 9, BranchLocation: "calicut"})
	_ = m.calendar.Create(ctx, &model.CalendarSession{ClientName: "Pearson Vue", ExamName: "TOEFL", Date: day("2026-03-11"), CandidateCount: 7, BranchLocation: "cochin"})
	_ = m.candidate.Create(ctx, &model.Candidate{ClientName: "PEARSON VUE", ExamName: "TOEFL", ExamDate: dayPtr("2026-03-10"), BranchLocation: "calicut"})
	_ = m.candidate.Create(ctx, &model.Candidate{ClientName: "PEARSON VUE", ExamName: "TOEFL", ExamDate: dayPtr("2026-03-31"), BranchLocation: "calicut"})

	report, err := svc.Report(ctx, branch.NewScope(branch.Calicut), "")
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if report.Month != "2026-03" || report.Branch != "calicut" {
		t.Errorf("unexpected header %s %s", report.Month, report.Branch)
	}
	if len(report.Rows) != 1 || report.Rows[0].CalendarCount != 4 || report.Rows[0].RegisterCount != 2 {
		t.Errorf("unexpected rows %+v", report.Rows)
	}

	global, err := svc.Report(ctx, branch.GlobalScope(), "2026-03")
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if global.Summary.TotalCalendar != 11 {
		t.Errorf("expected global calendar total 11, got %d", global.Summary.TotalCalendar)
	}
}

func TestReconciliationService_Report_CalendarUnavailable(t *testing.T) {
	svc, m := setupReconciliationService()
	m.calendar.listErr = errors.New("calendar down")
	_ = m.candidate.Create(context.Background(), &model.Candidate{ClientName: "PSI", ExamName: "X", ExamDate: dayPtr("2026-03-02"), BranchLocation: "kannur"})

	report, err := svc.Report(context.Background(), branch.NewScope(branch.Kannur), "2026-03")
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if !report.CalendarUnavailable {
		t.Error("expected calendar_unavailable")
	}
	if report.Summary.Excess != 1 {
		t.Errorf("expected register-only row as excess, got %+v", report.Summary)
	}
}

func TestReconciliationService_Report_CandidatesFail(t *testing.T) {
	svc, m := setupReconciliationService()
	m.candidate.listErr = errors.New("db down")

	if _, err := svc.Report(context.Background(), branch.GlobalScope(), "2026-03"); err == nil {
		t.Error("expected error when candidates cannot be read")
	}
}

func TestReconciliationService_Report_BadMonth(t *testing.T) {
	svc, _ := setupReconciliationService()

	if _, err := svc.Report(context.Background(), branch.GlobalScope(), "2026-13"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}
