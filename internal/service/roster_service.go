package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/model"
	"fets-live/backend/internal/repository"
	pkgerrors "fets-live/backend/pkg/errors"
)

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrSwapNotPending       = errors.New("request has already been decided")
	ErrSwapPartnerRequired  = errors.New("shift swap needs a partner other than the requester")
	ErrSwapRosterMissing    = errors.New("both staff must be rostered on the swap date")
	ErrInvalidDateRange     = errors.New("date range is invalid")
	ErrDateRangeTooLong     = errors.New("date range may span at most 62 days")
)

const (
	AuditShiftSwap     = "shift_swap"
	AuditLeaveApproved = "leave_approved"
	maxRosterDays      = 62
)

// RosterService roster schedules, leave/swap workflow and the audit trail
type RosterService interface {
	ListShifts(ctx context.Context, scope branch.Scope, req *dto.RosterListRequest) ([]dto.ShiftResponse, error)
	UpsertShift(ctx context.Context, req *dto.UpsertShiftRequest, callerID string) (*dto.ShiftResponse, error)

	CreateRequest(ctx context.Context, caller Caller, req *dto.CreateLeaveRequest) (*dto.LeaveResponse, error)
	ListRequests(ctx context.Context, caller Caller, req *dto.LeaveListRequest) ([]dto.LeaveResponse, int64, error)
	// Approve applies the request; a swap exchanges both roster rows atomically.
	Approve(ctx context.Context, requestID string, caller Caller, note string) (*dto.LeaveResponse, error)
	// Reject changes only the request status.
	Reject(ctx context.Context, requestID string, caller Caller, note string) (*dto.LeaveResponse, error)

	ListAudit(ctx context.Context, req *dto.AuditListRequest) ([]dto.AuditResponse, int64, error)
}

type rosterService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewRosterService creates a RosterService
func NewRosterService(repo *repository.Repository, logger *zap.Logger) RosterService {
	return &rosterService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── schedules ──────────────────────

func (s *rosterService) ListShifts(ctx context.Context, scope branch.Scope, req *dto.RosterListRequest) ([]dto.ShiftResponse, error) {
	from, err := parseDate(req.From)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(req.To)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}
	if to.Sub(from) > maxRosterDays*24*time.Hour {
		return nil, ErrDateRangeTooLong
	}

	rows, err := s.repo.Roster.ListByDate(ctx, scope, from, to.AddDate(0, 0, 1))
	if err != nil {
		s.logger.Error("list roster failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ShiftResponse, 0, len(rows))
	for i := range rows {
		result = append(result, toShiftResponse(&rows[i]))
	}
	return result, nil
}

func (s *rosterService) UpsertShift(ctx context.Context, req *dto.UpsertShiftRequest, callerID string) (*dto.ShiftResponse, error) {
	profile, err := s.repo.Profile.GetByID(ctx, req.ProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		s.logger.Error("load profile failed", zap.Error(err))
		return nil, err
	}
	d, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = "scheduled"
	}
	row := &model.RosterSchedule{
		ProfileID:     req.ProfileID,
		Date:          d,
		ShiftCode:     strings.ToUpper(strings.TrimSpace(req.ShiftCode)),
		OvertimeHours: req.OvertimeHours,
		Status:        status,
	}
	row.CreatedBy = &callerID
	row.UpdatedBy = &callerID
	row.UpdatedAt = s.now()

	if err := s.repo.Roster.Upsert(ctx, row); err != nil {
		s.logger.Error("upsert roster failed", zap.Error(err))
		return nil, err
	}
	row.Profile = profile

	resp := toShiftResponse(row)
	return &resp, nil
}

// ────────────────────── leave / swap requests ──────────────────────

func (s *rosterService) CreateRequest(ctx context.Context, caller Caller, req *dto.CreateLeaveRequest) (*dto.LeaveResponse, error) {
	d, err := parseDate(req.RequestedDate)
	if err != nil {
		return nil, err
	}

	lr := &model.LeaveRequest{
		UserID:        caller.UserID,
		RequestType:   req.RequestType,
		RequestedDate: d,
		Status:        model.RequestPending,
		Reason:        strings.TrimSpace(req.Reason),
	}

	if req.RequestType == model.RequestShiftSwap {
		partner := strings.TrimSpace(req.SwapWithUserID)
		if partner == "" || partner == caller.UserID {
			return nil, ErrSwapPartnerRequired
		}
		if _, err := s.repo.Profile.GetByUserID(ctx, partner); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProfileNotFound
			}
			s.logger.Error("load swap partner failed", zap.Error(err))
			return nil, err
		}
		lr.SwapWithUserID = &partner
	}
	lr.CreatedBy = &caller.UserID
	lr.UpdatedBy = &caller.UserID

	if err := s.repo.LeaveRequest.Create(ctx, lr); err != nil {
		s.logger.Error("create leave request failed", zap.Error(err))
		return nil, err
	}
	resp := toLeaveResponse(lr)
	return &resp, nil
}

func (s *rosterService) ListRequests(ctx context.Context, caller Caller, req *dto.LeaveListRequest) ([]dto.LeaveResponse, int64, error) {
	filter := repository.LeaveRequestFilter{
		UserID:      caller.UserID,
		Status:      req.Status,
		RequestType: req.RequestType,
	}
	if req.All && model.IsAdmin(caller.Role) {
		filter.UserID = ""
	}

	reqs, total, err := s.repo.LeaveRequest.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list leave requests failed", zap.Error(err))
		return nil, 0, err
	}
	result := make([]dto.LeaveResponse, 0, len(reqs))
	for i := range reqs {
		result = append(result, toLeaveResponse(&reqs[i]))
	}
	return result, total, nil
}

func (s *rosterService) Approve(ctx context.Context, requestID string, caller Caller, note string) (*dto.LeaveResponse, error) {
	lr, err := s.loadPending(ctx, requestID)
	if err != nil {
		return nil, err
	}
	decision := repository.Decision{ReviewerID: caller.UserID, Note: strings.TrimSpace(note), At: s.now()}

	switch lr.RequestType {
	case model.RequestShiftSwap:
		err = s.approveSwap(ctx, lr, decision)
	default:
		audit := &model.AuditLog{
			Action:     AuditLeaveApproved,
			EntityType: "leave_request",
			EntityID:   lr.RequestID,
			ActorID:    caller.UserID,
			Details:    fmt.Sprintf("leave on %s approved for user %s", formatDate(lr.RequestedDate), lr.UserID),
			Metadata:   auditMetadata(map[string]interface{}{"user_id": lr.UserID, "date": formatDate(lr.RequestedDate)}),
		}
		err = s.repo.LeaveRequest.ApproveLeave(ctx, lr, decision, audit)
	}
	if err != nil {
		return nil, s.mapDecisionErr(err)
	}

	resp := toLeaveResponse(lr)
	return &resp, nil
}

func (s *rosterService) approveSwap(ctx context.Context, lr *model.LeaveRequest, d repository.Decision) error {
	if lr.SwapWithUserID == nil {
		return ErrSwapPartnerRequired
	}
	requester, err := s.repo.Profile.GetByUserID(ctx, lr.UserID)
	if err != nil {
		return err
	}
	partner, err := s.repo.Profile.GetByUserID(ctx, *lr.SwapWithUserID)
	if err != nil {
		return err
	}

	day := formatDate(lr.RequestedDate)
	audit := &model.AuditLog{
		Action:     AuditShiftSwap,
		EntityType: "leave_request",
		EntityID:   lr.RequestID,
		ActorID:    d.ReviewerID,
		Details:    fmt.Sprintf("shifts on %s swapped between %s and %s", day, requester.FullName, partner.FullName),
		Metadata: auditMetadata(map[string]interface{}{
			"date":                 day,
			"requester_profile_id": requester.ProfileID,
			"partner_profile_id":   partner.ProfileID,
		}),
	}
	return s.repo.LeaveRequest.ApproveSwap(ctx, lr, requester.ProfileID, partner.ProfileID, d, audit)
}

func (s *rosterService) Reject(ctx context.Context, requestID string, caller Caller, note string) (*dto.LeaveResponse, error) {
	lr, err := s.loadPending(ctx, requestID)
	if err != nil {
		return nil, err
	}
	d := repository.Decision{ReviewerID: caller.UserID, Note: strings.TrimSpace(note), At: s.now()}
	if err := s.repo.LeaveRequest.Reject(ctx, lr, d); err != nil {
		return nil, s.mapDecisionErr(err)
	}
	resp := toLeaveResponse(lr)
	return &resp, nil
}

// ────────────────────── audit ──────────────────────

func (s *rosterService) ListAudit(ctx context.Context, req *dto.AuditListRequest) ([]dto.AuditResponse, int64, error) {
	logs, total, err := s.repo.Audit.List(ctx, req.Action, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list audit logs failed", zap.Error(err))
		return nil, 0, err
	}
	result := make([]dto.AuditResponse, 0, len(logs))
	for i := range logs {
		result = append(result, dto.AuditResponse{
			ID:         logs[i].AuditLogID,
			Action:     logs[i].Action,
			EntityType: logs[i].EntityType,
			EntityID:   logs[i].EntityID,
			ActorID:    logs[i].ActorID,
			Details:    logs[i].Details,
			CreatedAt:  formatTimestamp(logs[i].CreatedAt),
		})
	}
	return result, total, nil
}

// ── helpers ──

func (s *rosterService) loadPending(ctx context.Context, id string) (*model.LeaveRequest, error) {
	lr, err := s.repo.LeaveRequest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveRequestNotFound
		}
		s.logger.Error("load leave request failed", zap.Error(err))
		return nil, err
	}
	if lr.Status != model.RequestPending {
		return nil, ErrSwapNotPending
	}
	return lr, nil
}

func (s *rosterService) mapDecisionErr(err error) error {
	switch {
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		return ErrSwapNotPending
	case errors.Is(err, repository.ErrRosterEntryMissing):
		return ErrSwapRosterMissing
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrProfileNotFound
	case errors.Is(err, ErrSwapPartnerRequired):
		return err
	}
	s.logger.Error("apply leave decision failed", zap.Error(err))
	return err
}

func auditMetadata(v map[string]interface{}) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(raw)
}

func toShiftResponse(r *model.RosterSchedule) dto.ShiftResponse {
	resp := dto.ShiftResponse{
		ID:            r.ScheduleID,
		ProfileID:     r.ProfileID,
		Date:          formatDate(r.Date),
		ShiftCode:     r.ShiftCode,
		OvertimeHours: r.OvertimeHours,
		Status:        r.Status,
	}
	if r.Profile != nil {
		resp.StaffName = r.Profile.FullName
		resp.Branch = r.Profile.BranchAssigned
	}
	return resp
}

func toLeaveResponse(lr *model.LeaveRequest) dto.LeaveResponse {
	resp := dto.LeaveResponse{
		ID:            lr.RequestID,
		UserID:        lr.UserID,
		RequestType:   lr.RequestType,
		RequestedDate: formatDate(lr.RequestedDate),
		Status:        lr.Status,
		Reason:        lr.Reason,
		ReviewedAt:    formatOptionalTimestamp(lr.ReviewedAt),
		ReviewNote:    lr.ReviewNote,
		CreatedAt:     formatTimestamp(lr.CreatedAt),
	}
	if lr.SwapWithUserID != nil {
		resp.SwapWithUserID = *lr.SwapWithUserID
	}
	if lr.ReviewedBy != nil {
		resp.ReviewedBy = *lr.ReviewedBy
	}
	return resp
}
