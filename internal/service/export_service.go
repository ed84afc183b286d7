package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/repository"
)

// ── export errors ──

var (
	ErrExportFormat       = errors.New("unsupported export format")
	ErrExportGenerateFail = errors.New("failed to render export file")
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
	FormatTXT  = "txt"
	FormatICS  = "ics"
)

var contentTypes = map[string]string{
	FormatCSV:  "text/csv; charset=utf-8",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatPDF:  "application/pdf",
	FormatTXT:  "text/plain; charset=utf-8",
	FormatICS:  "text/calendar; charset=utf-8",
}

var candidateHeader = []string{
	"Confirmation", "Full name", "Phone", "Exam date", "Exam", "Client", "Status", "Branch",
}

var discrepancyHeader = []string{
	"Client", "Exam", "Calendar", "Register", "Difference", "Status",
}

// ExportService renders downloads. Every method returns the file body with
// a suggested filename; the handler sets the response headers.
type ExportService interface {
	ExportCandidates(ctx context.Context, scope branch.Scope, req *dto.CandidateListRequest, format string) (*dto.ExportFile, error)
	ExportReconciliation(ctx context.Context, scope branch.Scope, month, format string) (*dto.ExportFile, error)
	ExportCalendar(ctx context.Context, scope branch.Scope, month string) (*dto.ExportFile, error)
}

type exportService struct {
	repo           *repository.Repository
	candidates     CandidateService
	reconciliation ReconciliationService
	logger         *zap.Logger
	now            func() time.Time
}

// NewExportService creates an ExportService
func NewExportService(
	repo *repository.Repository,
	candidates CandidateService,
	reconciliation ReconciliationService,
	logger *zap.Logger,
) ExportService {
	return &exportService{
		repo:           repo,
		candidates:     candidates,
		reconciliation: reconciliation,
		logger:         logger,
		now:            time.Now,
	}
}

// ═══════════════════════════════════════════════════════════
// ExportCandidates: csv | xlsx | pdf
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportCandidates(ctx context.Context, scope branch.Scope, req *dto.CandidateListRequest, format string) (*dto.ExportFile, error) {
	if format != FormatCSV && format != FormatXLSX && format != FormatPDF {
		return nil, ErrExportFormat
	}

	list, err := s.candidates.ListAll(ctx, scope, req)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(list))
	for _, c := range list {
		rows = append(rows, []string{
			c.ConfirmationNumber, c.FullName, c.Phone, c.ExamDate,
			c.ExamName, c.DisplayClient, c.Status, c.BranchLocation,
		})
	}

	title := fmt.Sprintf("Candidates, %s", scopeLabel(scope))
	var body []byte
	switch format {
	case FormatCSV:
		body, err = renderCSV(candidateHeader, rows)
	case FormatXLSX:
		body, err = renderXLSX("Candidates", title, candidateHeader, rows)
	case FormatPDF:
		body, err = renderPDF(title, candidateHeader, rows, []float64{34, 48, 30, 24, 52, 32, 26, 24})
	}
	if err != nil {
		s.logger.Error("render candidate export failed", zap.String("format", format), zap.Error(err))
		return nil, ErrExportGenerateFail
	}

	return &dto.ExportFile{
		Filename:    fmt.Sprintf("candidates_%s_%s.%s", scope.Branch(), s.now().In(IST).Format("20060102"), format),
		ContentType: contentTypes[format],
		Body:        body,
	}, nil
}

// ═══════════════════════════════════════════════════════════
// ExportReconciliation: txt | csv | xlsx
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportReconciliation(ctx context.Context, scope branch.Scope, month, format string) (*dto.ExportFile, error) {
	if format != FormatTXT && format != FormatCSV && format != FormatXLSX {
		return nil, ErrExportFormat
	}

	report, err := s.reconciliation.Report(ctx, scope, month)
	if err != nil {
		return nil, err
	}

	var body []byte
	switch format {
	case FormatTXT:
		body = []byte(RenderReconciliationText(report))
	case FormatCSV:
		body, err = renderCSV(discrepancyHeader, discrepancyRows(report.Rows))
	case FormatXLSX:
		title := fmt.Sprintf("Reconciliation %s, %s", report.Month, scopeLabel(scope))
		body, err = renderXLSX("Reconciliation", title, discrepancyHeader, discrepancyRows(report.Rows))
	}
	if err != nil {
		s.logger.Error("render reconciliation export failed", zap.String("format", format), zap.Error(err))
		return nil, ErrExportGenerateFail
	}

	return &dto.ExportFile{
		Filename:    fmt.Sprintf("reconciliation_%s_%s.%s", report.Branch, report.Month, format),
		ContentType: contentTypes[format],
		Body:        body,
	}, nil
}

// RenderReconciliationText plain-text report, also printed by the reconcile CLI.
func RenderReconciliationText(r *dto.ReconciliationReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FETS.LIVE register reconciliation\n")
	fmt.Fprintf(&b, "Month:     %s\n", r.Month)
	fmt.Fprintf(&b, "Branch:    %s\n", r.Branch)
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt)
	if r.CalendarUnavailable {
		b.WriteString("WARNING: calendar could not be read; calendar counts are zero.\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%-14s %-28s %9s %9s %11s  %s\n", "CLIENT", "EXAM", "CALENDAR", "REGISTER", "DIFFERENCE", "STATUS")
	for _, row := range r.Rows {
		fmt.Fprintf(&b, "%-14s %-28s %9d %9d %+11d  %s\n",
			row.Client, truncate(row.Exam, 28), row.CalendarCount, row.RegisterCount, row.Difference, strings.ToUpper(row.Status))
	}
	if len(r.Rows) == 0 {
		b.WriteString("(no sessions or candidates this month)\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Matches: %d  Excess: %d  Shortage: %d\n", r.Summary.Match, r.Summary.Excess, r.Summary.Shortage)
	fmt.Fprintf(&b, "Total calendar: %d  Total register: %d\n", r.Summary.TotalCalendar, r.Summary.TotalRegister)
	return b.String()
}

// ═══════════════════════════════════════════════════════════
// ExportCalendar: one VEVENT per session
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportCalendar(ctx context.Context, scope branch.Scope, month string) (*dto.ExportFile, error) {
	month, from, to, err := monthRange(month, s.now())
	if err != nil {
		return nil, err
	}
	sessions, err := s.repo.Calendar.ListByDate(ctx, scope, from, to)
	if err != nil {
		s.logger.Error("list sessions for calendar export failed", zap.Error(err))
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//FETS.LIVE//Exam Sessions//EN")
	cal.SetXWRCalName(fmt.Sprintf("FETS exam sessions %s", month))

	stamp := s.now().UTC()
	for _, sess := range sessions {
		start, errStart := sessionInstant(sess.Date, sess.StartTime)
		end, errEnd := sessionInstant(sess.Date, sess.EndTime)
		if errStart != nil || errEnd != nil {
			s.logger.Warn("skipping session with bad times", zap.String("session_id", sess.SessionID))
			continue
		}

		ev := cal.AddEvent(sess.SessionID + "@fets.live")
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		summary := sess.ClientName
		if sess.ExamName != "" {
			summary += " " + sess.ExamName
		}
		ev.SetSummary(summary)
		ev.SetLocation(branch.Branch(sess.BranchLocation).DisplayName())
		ev.SetDescription(fmt.Sprintf("Candidates: %d\n%s", sess.CandidateCount, sess.Notes))
	}

	return &dto.ExportFile{
		Filename:    fmt.Sprintf("sessions_%s_%s.ics", scope.Branch(), month),
		ContentType: contentTypes[FormatICS],
		Body:        []byte(cal.Serialize()),
	}, nil
}

// sessionInstant combines a DATE column with an HH:MM local time in IST.
func sessionInstant(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, IST), nil
}

// ── renderers ──

func renderCSV(header []string, rows [][]string) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(sheetName, title string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	titleStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 13}})

	// title row
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", cell(colName(len(header)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	// header row
	for i, h := range header {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
		f.SetColWidth(sheetName, colName(i), colName(i), 18)
	}
	f.SetCellStyle(sheetName, "A2", cell(colName(len(header)-1), 2), headerStyle)

	// data rows
	for r, row := range rows {
		for i, v := range row {
			f.SetCellValue(sheetName, cell(colName(i), r+3), v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPDF(title string, header []string, rows [][]string, widths []float64) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(68, 114, 196)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, row := range rows {
		for i, v := range row {
			pdf.CellFormat(widths[i], 6, tr(truncate(v, int(widths[i]/1.8))), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ── helpers ──

func discrepancyRows(rows []dto.DiscrepancyRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Client, r.Exam,
			fmt.Sprint(r.CalendarCount), fmt.Sprint(r.RegisterCount),
			fmt.Sprintf("%+d", r.Difference), r.Status,
		})
	}
	return out
}

func scopeLabel(scope branch.Scope) string {
	if scope.IsGlobal() {
		return "all branches"
	}
	return scope.Branch().DisplayName()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
