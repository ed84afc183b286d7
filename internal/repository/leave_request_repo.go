package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"fets-live/backend/internal/model"
	pkgerrors "fets-live/backend/pkg/errors"
)

// ErrRosterEntryMissing a swap needs both staff rostered on the requested date
var ErrRosterEntryMissing = errors.New("roster entry missing for swap date")

// LeaveRequestFilter list filters for leave/swap requests
type LeaveRequestFilter struct {
	UserID      string // requester or swap partner
	Status      string
	RequestType string
}

// Decision reviewer outcome applied to a pending request
type Decision struct {
	ReviewerID string
	Note       string
	At         time.Time
}

// LeaveRequestRepository leave and shift swap request data access
type LeaveRequestRepository interface {
	Create(ctx context.Context, req *model.LeaveRequest) error
	GetByID(ctx context.Context, id string) (*model.LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter, offset, limit int) ([]model.LeaveRequest, int64, error)
	// Reject moves a pending request to rejected; nothing else changes.
	Reject(ctx context.Context, req *model.LeaveRequest, d Decision) error
	// ApproveLeave marks the request approved and writes the audit row.
	ApproveLeave(ctx context.Context, req *model.LeaveRequest, d Decision, audit *model.AuditLog) error
	// ApproveSwap exchanges shift_code and overtime_hours between the two
	// profiles' rows on the requested date, writes the audit row and marks
	// the request approved, all in one transaction.
	ApproveSwap(ctx context.Context, req *model.LeaveRequest, requesterProfileID, partnerProfileID string, d Decision, audit *model.AuditLog) error
}

type leaveRequestRepo struct {
	db *gorm.DB
}

// NewLeaveRequestRepo creates a LeaveRequestRepository
func NewLeaveRequestRepo(db *gorm.DB) LeaveRequestRepository {
	return &leaveRequestRepo{db: db}
}

func (r *leaveRequestRepo) Create(ctx context.Context, req *model.LeaveRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *leaveRequestRepo) GetByID(ctx context.Context, id string) (*model.LeaveRequest, error) {
	var req model.LeaveRequest
	if err := r.db.WithContext(ctx).Where("request_id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *leaveRequestRepo) List(ctx context.Context, filter LeaveRequestFilter, offset, limit int) ([]model.LeaveRequest, int64, error) {
	var reqs []model.LeaveRequest
	var total int64

	db := r.db.WithContext(ctx).Model(&model.LeaveRequest{})
	if filter.UserID != "" {
		db = db.Where("user_id = ? OR swap_with_user_id = ?", filter.UserID, filter.UserID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.RequestType != "" {
		db = db.Where("request_type = ?", filter.RequestType)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&reqs).Error; err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}

func (r *leaveRequestRepo) Reject(ctx context.Context, req *model.LeaveRequest, d Decision) error {
	return decide(r.db.WithContext(ctx), req, model.RequestRejected, d)
}

func (r *leaveRequestRepo) ApproveLeave(ctx context.Context, req *model.LeaveRequest, d Decision, audit *model.AuditLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := decide(tx, req, model.RequestApproved, d); err != nil {
			return err
		}
		return tx.Create(audit).Error
	})
}

func (r *leaveRequestRepo) ApproveSwap(ctx context.Context, req *model.LeaveRequest, requesterProfileID, partnerProfileID string, d Decision, audit *model.AuditLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []model.RosterSchedule
		if err := tx.
			Where("profile_id IN ? AND date = ?", []string{requesterProfileID, partnerProfileID}, req.RequestedDate).
			Find(&rows).Error; err != nil {
			return err
		}

		var mine, theirs *model.RosterSchedule
		for i := range rows {
			switch rows[i].ProfileID {
			case requesterProfileID:
				mine = &rows[i]
			case partnerProfileID:
				theirs = &rows[i]
			}
		}
		if mine == nil || theirs == nil {
			return ErrRosterEntryMissing
		}

		if err := tx.
			Where("schedule_id IN ?", []string{mine.ScheduleID, theirs.ScheduleID}).
			Delete(&model.RosterSchedule{}).Error; err != nil {
			return err
		}

		swapped := []model.RosterSchedule{
			swappedRow(mine, theirs, d.ReviewerID),
			swappedRow(theirs, mine, d.ReviewerID),
		}
		if err := tx.Omit("Profile").Create(&swapped).Error; err != nil {
			return err
		}

		if err := tx.Create(audit).Error; err != nil {
			return err
		}
		return decide(tx, req, model.RequestApproved, d)
	})
}

// swappedRow keeps owner's identity and takes other's assignment.
func swappedRow(owner, other *model.RosterSchedule, reviewerID string) model.RosterSchedule {
	row := model.RosterSchedule{
		ProfileID:     owner.ProfileID,
		Date:          owner.Date,
		ShiftCode:     other.ShiftCode,
		OvertimeHours: other.OvertimeHours,
		Status:        owner.Status,
	}
	row.CreatedBy = owner.CreatedBy
	row.UpdatedBy = &reviewerID
	return row
}

// decide applies the terminal status guarded by status=pending and version.
func decide(db *gorm.DB, req *model.LeaveRequest, status string, d Decision) error {
	oldVersion := req.Version
	at := d.At
	result := db.
		Model(&model.LeaveRequest{}).
		Where("request_id = ? AND status = ? AND version = ?", req.RequestID, model.RequestPending, oldVersion).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": d.ReviewerID,
			"reviewed_at": at,
			"review_note": d.Note,
			"updated_by":  d.ReviewerID,
			"version":     oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	req.Status = status
	req.ReviewedBy = &d.ReviewerID
	req.ReviewedAt = &at
	req.ReviewNote = d.Note
	req.Version = oldVersion + 1
	return nil
}
