package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/model"
)

func setupRosterService() (RosterService, *mocks) {
	repo, m := newMockRepository()
	svc := NewRosterService(repo, zap.NewNop()).(*rosterService)
	svc.now = func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, IST) }
	return svc, m
}

var admin = Caller{UserID: "admin", Role: model.RoleAdmin}

// seedSwap rosters both users on 2026-05-04 and files a pending swap.
func seedSwap(t *testing.T, svc RosterService, m *mocks, rosterPartner bool) *dto.LeaveResponse {
	t.Helper()
	ctx := context.Background()
	seedProfile(m, "u1", model.RoleStaff, "calicut")
	seedProfile(m, "u2", model.RoleStaff, "calicut")
	_ = m.roster.Upsert(ctx, &model.RosterSchedule{ProfileID: "profile-u1", Date: day("2026-05-04"), ShiftCode: "D", OvertimeHours: 2})
	if rosterPartner {
		_ = m.roster.Upsert(ctx, &model.RosterSchedule{ProfileID: "profile-u2", Date: day("2026-05-04"), ShiftCode: "E"})
	}

	req, err := svc.CreateRequest(ctx, Caller{UserID: "u1", Role: model.RoleStaff}, &dto.CreateLeaveRequest{
		RequestType:    model.RequestShiftSwap,
		RequestedDate:  "2026-05-04",
		SwapWithUserID: "u2",
	})
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	return req
}

// ── swap approval ──

func TestRosterService_ApproveSwap_ExchangesShifts(t *testing.T) {
	svc, m := setupRosterService()
	req := seedSwap(t, svc, m, true)

	resp, err := svc.Approve(context.Background(), req.ID, admin, "ok")
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if resp.Status != model.RequestApproved || resp.ReviewedBy != "admin" {
		t.Errorf("unexpected response %+v", resp)
	}

	a := m.roster.shifts[rosterKey("profile-u1", day("2026-05-04"))]
	b := m.roster.shifts[rosterKey("profile-u2", day("2026-05-04"))]
	if a.ShiftCode != "E" || b.ShiftCode != "D" {
		t.Errorf("shift codes not exchanged: %s %s", a.ShiftCode, b.ShiftCode)
	}
	if a.OvertimeHours != 0 || b.OvertimeHours != 2 {
		t.Errorf("overtime not exchanged: %v %v", a.OvertimeHours, b.OvertimeHours)
	}
	if len(m.audit.entries) != 1 || m.audit.entries[0].Action != AuditShiftSwap {
		t.Errorf("expected one shift_swap audit row, got %+v", m.audit.entries)
	}
}

func TestRosterService_ApproveSwap_PartnerNotRostered(t *testing.T) {
	svc, m := setupRosterService()
	req := seedSwap(t, svc, m, false)

	_, err := svc.Approve(context.Background(), req.ID, admin, "")
	if !errors.Is(err, ErrSwapRosterMissing) {
		t.Fatalf("expected ErrSwapRosterMissing, got %v", err)
	}
	if m.leave.requests[req.ID].Status != model.RequestPending {
		t.Error("request must stay pending")
	}
	if len(m.audit.entries) != 0 {
		t.Error("no audit row expected")
	}
}

func TestRosterService_Approve_NotPending(t *testing.T) {
	svc, m := setupRosterService()
	req := seedSwap(t, svc, m, true)

	if _, err := svc.Approve(context.Background(), req.ID, admin, ""); err != nil {
		t.Fatalf("first Approve failed: %v", err)
	}
	_, err := svc.Approve(context.Background(), req.ID, admin, "")
	if !errors.Is(err, ErrSwapNotPending) {
		t.Errorf("expected ErrSwapNotPending, got %v", err)
	}
	_, err = svc.Reject(context.Background(), req.ID, admin, "")
	if !errors.Is(err, ErrSwapNotPending) {
		t.Errorf("expected ErrSwapNotPending on reject, got %v", err)
	}
}

func TestRosterService_Reject_LeavesRosterUntouched(t *testing.T) {
	svc, m := setupRosterService()
	req := seedSwap(t, svc, m, true)

	resp, err := svc.Reject(context.Background(), req.ID, admin, "short staffed")
	if err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if resp.Status != model.RequestRejected || resp.ReviewNote != "short staffed" {
		t.Errorf("unexpected response %+v", resp)
	}
	if m.roster.shifts[rosterKey("profile-u1", day("2026-05-04"))].ShiftCode != "D" {
		t.Error("roster must not change on reject")
	}
}

func TestRosterService_Approve_Leave(t *testing.T) {
	svc, m := setupRosterService()
	seedProfile(m, "u1", model.RoleStaff, "calicut")

	req, err := svc.CreateRequest(context.Background(), Caller{UserID: "u1"}, &dto.CreateLeaveRequest{
		RequestType: model.RequestLeave, RequestedDate: "2026-05-10", Reason: "family",
	})
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	if _, err := svc.Approve(context.Background(), req.ID, admin, ""); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if len(m.audit.entries) != 1 || m.audit.entries[0].Action != AuditLeaveApproved {
		t.Errorf("expected leave_approved audit row, got %+v", m.audit.entries)
	}
}

func TestRosterService_Approve_Unknown(t *testing.T) {
	svc, _ := setupRosterService()

	if _, err := svc.Approve(context.Background(), "missing", admin, ""); !errors.Is(err, ErrLeaveRequestNotFound) {
		t.Errorf("expected ErrLeaveRequestNotFound, got %v", err)
	}
}

// ── CreateRequest ──

func TestRosterService_CreateRequest_SwapValidation(t *testing.T) {
	svc, m := setupRosterService()
	seedProfile(m, "u1", model.RoleStaff, "calicut")
	caller := Caller{UserID: "u1"}

	tests := []struct {
		name    string
		partner string
		want    error
	}{
		{"no partner", "", ErrSwapPartnerRequired},
		{"self", "u1", ErrSwapPartnerRequired},
		{"unknown partner", "ghost", ErrProfileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateRequest(context.Background(), caller, &dto.CreateLeaveRequest{
				RequestType: model.RequestShiftSwap, RequestedDate: "2026-05-04", SwapWithUserID: tt.partner,
			})
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

// ── ListRequests ──

func TestRosterService_ListRequests_Visibility(t *testing.T) {
	svc, m := setupRosterService()
	seedSwap(t, svc, m, true)
	seedProfile(m, "u3", model.RoleStaff, "cochin")
	_, _ = svc.CreateRequest(context.Background(), Caller{UserID: "u3"}, &dto.CreateLeaveRequest{
		RequestType: model.RequestLeave, RequestedDate: "2026-05-05",
	})

	// the swap partner sees the swap
	list, total, err := svc.ListRequests(context.Background(), Caller{UserID: "u2", Role: model.RoleStaff}, &dto.LeaveListRequest{})
	if err != nil {
		t.Fatalf("ListRequests failed: %v", err)
	}
	if total != 1 || list[0].RequestType != model.RequestShiftSwap {
		t.Errorf("expected partner to see one swap, got %d", total)
	}

	// staff cannot widen to all
	_, total, _ = svc.ListRequests(context.Background(), Caller{UserID: "u3", Role: model.RoleStaff}, &dto.LeaveListRequest{All: true})
	if total != 1 {
		t.Errorf("staff should only see own request, got %d", total)
	}

	_, total, _ = svc.ListRequests(context.Background(), admin, &dto.LeaveListRequest{All: true})
	if total != 2 {
		t.Errorf("admin should see all requests, got %d", total)
	}
}

// ── shifts ──

func TestRosterService_ListShifts_Range(t *testing.T) {
	svc, m := setupRosterService()
	seedProfile(m, "u1", model.RoleStaff, "calicut")
	_ = m.roster.Upsert(context.Background(), &model.RosterSchedule{ProfileID: "profile-u1", Date: day("2026-05-04"), ShiftCode: "D"})
	_ = m.roster.Upsert(context.Background(), &model.RosterSchedule{ProfileID: "profile-u1", Date: day("2026-05-05"), ShiftCode: "E"})

	shifts, err := svc.ListShifts(context.Background(), branch.GlobalScope(), &dto.RosterListRequest{From: "2026-05-04", To: "2026-05-04"})
	if err != nil {
		t.Fatalf("ListShifts failed: %v", err)
	}
	if len(shifts) != 1 || shifts[0].ShiftCode != "D" {
		t.Errorf("expected inclusive single day, got %+v", shifts)
	}

	_, err = svc.ListShifts(context.Background(), branch.GlobalScope(), &dto.RosterListRequest{From: "2026-05-05", To: "2026-05-04"})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}
	_, err = svc.ListShifts(context.Background(), branch.GlobalScope(), &dto.RosterListRequest{From: "2026-01-01", To: "2026-05-04"})
	if !errors.Is(err, ErrDateRangeTooLong) {
		t.Errorf("expected ErrDateRangeTooLong, got %v", err)
	}
}

func TestRosterService_UpsertShift(t *testing.T) {
	svc, m := setupRosterService()
	seedProfile(m, "u1", model.RoleStaff, "kannur")

	resp, err := svc.UpsertShift(context.Background(), &dto.UpsertShiftRequest{
		ProfileID: "profile-u1", Date: "2026-05-04", ShiftCode: " hd ",
	}, "admin")
	if err != nil {
		t.Fatalf("UpsertShift failed: %v", err)
	}
	if resp.ShiftCode != "HD" || resp.Status != "scheduled" || resp.Branch != "kannur" {
		t.Errorf("unexpected response %+v", resp)
	}

	if _, err := svc.UpsertShift(context.Background(), &dto.UpsertShiftRequest{ProfileID: "nobody", Date: "2026-05-04", ShiftCode: "D"}, "admin"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}
