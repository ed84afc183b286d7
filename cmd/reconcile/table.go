package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/service"
)

var (
	heading  = color.New(color.FgCyan, color.Bold)
	warning  = color.New(color.FgYellow)
	okText   = color.New(color.FgGreen).SprintFunc()
	overText = color.New(color.FgYellow).SprintFunc()
	lowText  = color.New(color.FgRed, color.Bold).SprintFunc()
)

func printReport(w io.Writer, r *dto.ReconciliationReport) {
	heading.Fprintf(w, "Register reconciliation · %s · %s\n", branch.Branch(r.Branch).DisplayName(), r.Month)
	fmt.Fprintf(w, "generated %s\n", r.GeneratedAt)
	if r.CalendarUnavailable {
		warning.Fprintln(w, "calendar could not be read; calendar counts are zero")
	}

	if len(r.Rows) == 0 {
		fmt.Fprintln(w, "no sessions or candidates this month")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Client", "Exam", "Calendar", "Register", "Difference", "Status"})
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})
	for _, row := range r.Rows {
		table.Append([]string{
			row.Client,
			row.Exam,
			strconv.Itoa(row.CalendarCount),
			strconv.Itoa(row.RegisterCount),
			fmt.Sprintf("%+d", row.Difference),
			statusLabel(row.Status),
		})
	}
	table.SetFooter([]string{
		"", "Total",
		strconv.Itoa(r.Summary.TotalCalendar),
		strconv.Itoa(r.Summary.TotalRegister),
		fmt.Sprintf("%+d", r.Summary.TotalRegister-r.Summary.TotalCalendar),
		fmt.Sprintf("%d/%d/%d", r.Summary.Match, r.Summary.Excess, r.Summary.Shortage),
	})
	table.Render()
}

func statusLabel(status string) string {
	label := strings.ToUpper(status)
	switch status {
	case service.StatusMatch:
		return okText(label)
	case service.StatusExcess:
		return overText(label)
	case service.StatusShortage:
		return lowText(label)
	}
	return label
}
