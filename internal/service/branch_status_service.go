package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/model"
	"fets-live/backend/internal/repository"
	pkgerrors "fets-live/backend/pkg/errors"
)

// BranchStatusChannel pub/sub channel carrying BranchStatusResponse payloads
const BranchStatusChannel = "branch_status"

var ErrBranchStatusNotFound = errors.New("branch status not found")

// BranchStatusService realtime status board
type BranchStatusService interface {
	List(ctx context.Context) ([]dto.BranchStatusResponse, error)
	Get(ctx context.Context, target string) (*dto.BranchStatusResponse, error)
	Update(ctx context.Context, target string, req *dto.UpdateBranchStatusRequest, callerID string) (*dto.BranchStatusResponse, error)
	// Subscribe relays published status changes until ctx is done or the returned closer is called.
	Subscribe(ctx context.Context) (<-chan string, func() error, error)
}

type branchStatusService struct {
	repo   *repository.Repository
	bus    EventBus
	logger *zap.Logger
	now    func() time.Time
}

// NewBranchStatusService creates a BranchStatusService; bus may be nil.
func NewBranchStatusService(repo *repository.Repository, bus EventBus, logger *zap.Logger) BranchStatusService {
	return &branchStatusService{repo: repo, bus: bus, logger: logger, now: time.Now}
}

func (s *branchStatusService) List(ctx context.Context) ([]dto.BranchStatusResponse, error) {
	rows, err := s.repo.BranchStatus.List(ctx)
	if err != nil {
		s.logger.Error("list branch status failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.BranchStatusResponse, 0, len(rows))
	for i := range rows {
		result = append(result, toBranchStatusResponse(&rows[i]))
	}
	return result, nil
}

func (s *branchStatusService) Update(ctx context.Context, target string, req *dto.UpdateBranchStatusRequest, callerID string) (*dto.BranchStatusResponse, error) {
	b, err := branch.Parse(target)
	if err != nil || b.IsGlobal() {
		return nil, ErrInvalidBranch
	}

	row := &model.BranchStatus{
		BranchLocation: b.String(),
		Status:         req.Status,
		Message:        req.Message,
		UpdatedBy:      &callerID,
		UpdatedAt:      s.now(),
	}
	if err := s.repo.BranchStatus.Upsert(ctx, row); err != nil {
		s.logger.Error("update branch status failed", zap.String("branch", row.BranchLocation), zap.Error(err))
		return nil, err
	}

	resp := toBranchStatusResponse(row)
	s.publish(ctx, &resp)
	return &resp, nil
}

// publish is best effort: the row is already committed.
func (s *branchStatusService) publish(ctx context.Context, resp *dto.BranchStatusResponse) {
	if s.bus == nil {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		s.logger.Warn("encode branch status event failed", zap.Error(err))
		return
	}
	if err := s.bus.Publish(ctx, BranchStatusChannel, payload); err != nil {
		s.logger.Warn("publish branch status failed", zap.String("branch", resp.Branch), zap.Error(err))
	}
}

func (s *branchStatusService) Subscribe(ctx context.Context) (<-chan string, func() error, error) {
	if s.bus == nil {
		return nil, nil, pkgerrors.ErrUnavailable
	}
	ch, closer, err := s.bus.Subscribe(ctx, BranchStatusChannel)
	if err != nil {
		s.logger.Error("subscribe branch status failed", zap.Error(err))
		return nil, nil, err
	}
	return ch, closer, nil
}

func toBranchStatusResponse(row *model.BranchStatus) dto.BranchStatusResponse {
	resp := dto.BranchStatusResponse{
		Branch:    row.BranchLocation,
		Status:    row.Status,
		Message:   row.Message,
		UpdatedAt: formatTimestamp(row.UpdatedAt),
	}
	if b, err := branch.Parse(row.BranchLocation); err == nil {
		resp.DisplayName = b.DisplayName()
	}
	if row.UpdatedBy != nil {
		resp.UpdatedBy = *row.UpdatedBy
	}
	return resp
}

func (s *branchStatusService) Get(ctx context.Context, target string) (*dto.BranchStatusResponse, error) {
	b, err := branch.Parse(target)
	if err != nil || b.IsGlobal() {
		return nil, ErrInvalidBranch
	}
	row, err := s.repo.BranchStatus.Get(ctx, b.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchStatusNotFound
		}
		s.logger.Error("load branch status failed", zap.Error(err))
		return nil, err
	}
	resp := toBranchStatusResponse(row)
	return &resp, nil
}
