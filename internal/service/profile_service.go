package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fets-live/backend/config"
	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/model"
	"fets-live/backend/internal/repository"
	pkgerrors "fets-live/backend/pkg/errors"
)

var (
	ErrProfileNotFound  = errors.New("staff profile not found")
	ErrInvalidBranch    = errors.New("unknown branch")
	ErrBranchForbidden  = errors.New("branch not accessible")
	ErrProfileForbidden = errors.New("only the owner or an admin can edit this profile")
	ErrProfileConflict  = errors.New("profile was modified concurrently")
)

// ProfileService staff profiles and the active branch context
type ProfileService interface {
	Get(ctx context.Context, profileID string) (*dto.ProfileResponse, error)
	GetByUser(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	List(ctx context.Context, scope branch.Scope, req *dto.ProfileListRequest) ([]dto.ProfileResponse, int64, error)
	Update(ctx context.Context, caller Caller, profileID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)

	GetBranchContext(ctx context.Context, caller Caller) (*dto.BranchContextResponse, error)
	// SwitchBranch is a no-op when target is current or inaccessible.
	SwitchBranch(ctx context.Context, caller Caller, target string) (*dto.BranchContextResponse, error)
	// ResolveScope turns an optional requested branch into the query scope.
	// An empty request uses the active branch.
	ResolveScope(ctx context.Context, caller Caller, requested string) (branch.Scope, error)
}

type profileService struct {
	repo      *repository.Repository
	store     BranchStore
	fallback  branch.Branch
	allowList []string
	logger    *zap.Logger
}

// NewProfileService creates a ProfileService
func NewProfileService(cfg *config.Config, repo *repository.Repository, store BranchStore, logger *zap.Logger) ProfileService {
	fallback, err := branch.Parse(cfg.Branch.Default)
	if err != nil {
		fallback = branch.Calicut
	}
	return &profileService{
		repo:      repo,
		store:     store,
		fallback:  fallback,
		allowList: cfg.Branch.SwitchAllowList,
		logger:    logger,
	}
}

// ────────────────────── profiles ──────────────────────

func (s *profileService) Get(ctx context.Context, profileID string) (*dto.ProfileResponse, error) {
	p, err := s.repo.Profile.GetByID(ctx, profileID)
	if err != nil {
		return nil, s.mapLoadErr(err)
	}
	resp := toProfileResponse(p)
	return &resp, nil
}

func (s *profileService) GetByUser(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	p, err := s.repo.Profile.GetByUserID(ctx, userID)
	if err != nil {
		return nil, s.mapLoadErr(err)
	}
	resp := toProfileResponse(p)
	return &resp, nil
}

func (s *profileService) List(ctx context.Context, scope branch.Scope, req *dto.ProfileListRequest) ([]dto.ProfileResponse, int64, error) {
	filter := repository.ProfileFilter{
		Role:       req.Role,
		Department: req.Department,
		Keyword:    strings.TrimSpace(req.Keyword),
	}
	profiles, total, err := s.repo.Profile.List(ctx, scope, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list profiles failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		result = append(result, toProfileResponse(&profiles[i]))
	}
	return result, total, nil
}

func (s *profileService) Update(ctx context.Context, caller Caller, profileID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	p, err := s.repo.Profile.GetByID(ctx, profileID)
	if err != nil {
		return nil, s.mapLoadErr(err)
	}

	admin := model.IsAdmin(caller.Role)
	if p.UserID != caller.UserID && !admin {
		return nil, ErrProfileForbidden
	}
	// role and branch are admin-only fields
	if !admin && (req.Role != nil || req.BranchAssigned != nil) {
		return nil, ErrProfileForbidden
	}
	if req.Role != nil && *req.Role == model.RoleSuperAdmin && caller.Role != model.RoleSuperAdmin {
		return nil, ErrProfileForbidden
	}

	if req.FullName != nil {
		p.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Role != nil {
		p.Role = *req.Role
	}
	if req.Department != nil {
		p.Department = *req.Department
	}
	if req.BranchAssigned != nil {
		b, err := branch.Parse(*req.BranchAssigned)
		if err != nil {
			return nil, ErrInvalidBranch
		}
		p.BranchAssigned = b.String()
	}
	if req.AvatarURL != nil {
		p.AvatarURL = *req.AvatarURL
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	p.Version = req.Version
	p.UpdatedBy = &caller.UserID

	if err := s.repo.Profile.Update(ctx, p); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrProfileConflict
		}
		s.logger.Error("update profile failed", zap.Error(err))
		return nil, err
	}

	resp := toProfileResponse(p)
	return &resp, nil
}

// ────────────────────── branch context ──────────────────────

func (s *profileService) GetBranchContext(ctx context.Context, caller Caller) (*dto.BranchContextResponse, error) {
	active, accessible, canSwitch, err := s.resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	return toBranchContext(active, accessible, canSwitch, false), nil
}

func (s *profileService) SwitchBranch(ctx context.Context, caller Caller, target string) (*dto.BranchContextResponse, error) {
	to, err := branch.Parse(target)
	if err != nil {
		return nil, ErrInvalidBranch
	}

	active, accessible, canSwitch, err := s.resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	if to == active || !containsBranch(accessible, to) {
		return toBranchContext(active, accessible, canSwitch, false), nil
	}

	if s.store != nil {
		if err := s.store.SetActiveBranch(ctx, caller.UserID, to.String()); err != nil {
			s.logger.Warn("persist active branch failed", zap.String("user_id", caller.UserID), zap.Error(err))
		}
	}
	if err := s.repo.Profile.UpdateBranch(ctx, caller.UserID, to.String()); err != nil {
		s.logger.Warn("write profile branch failed", zap.String("user_id", caller.UserID), zap.Error(err))
	}

	return toBranchContext(to, accessible, canSwitch, true), nil
}

func (s *profileService) ResolveScope(ctx context.Context, caller Caller, requested string) (branch.Scope, error) {
	active, accessible, _, err := s.resolve(ctx, caller)
	if err != nil {
		return branch.Scope{}, err
	}
	if strings.TrimSpace(requested) == "" {
		return branch.NewScope(active), nil
	}

	b, err := branch.Parse(requested)
	if err != nil {
		return branch.Scope{}, ErrInvalidBranch
	}
	if !containsBranch(accessible, b) {
		return branch.Scope{}, ErrBranchForbidden
	}
	return branch.NewScope(b), nil
}

// resolve reconciles the persisted choice with the profile assignment.
func (s *profileService) resolve(ctx context.Context, caller Caller) (branch.Branch, []branch.Branch, bool, error) {
	p, err := s.repo.Profile.GetByUserID(ctx, caller.UserID)
	if err != nil {
		return "", nil, false, s.mapLoadErr(err)
	}

	canSwitch := branch.CanSwitch(p.Role, caller.Email, s.allowList)

	persisted := ""
	if s.store != nil {
		persisted, err = s.store.GetActiveBranch(ctx, caller.UserID)
		if err != nil {
			s.logger.Warn("read active branch failed", zap.String("user_id", caller.UserID), zap.Error(err))
			persisted = ""
		}
	}

	assigned, err := branch.Parse(p.BranchAssigned)
	if err != nil {
		assigned = s.fallback
	}

	active := branch.Resolve(persisted, p.BranchAssigned, canSwitch, s.fallback)
	return active, branch.Accessible(canSwitch, assigned), canSwitch, nil
}

func (s *profileService) mapLoadErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProfileNotFound
	}
	s.logger.Error("load profile failed", zap.Error(err))
	return err
}

// ── converters ──

func toProfileResponse(p *model.StaffProfile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:             p.ProfileID,
		UserID:         p.UserID,
		FullName:       p.FullName,
		Role:           p.Role,
		Department:     p.Department,
		BranchAssigned: p.BranchAssigned,
		AvatarURL:      p.AvatarURL,
		Bio:            p.Bio,
		Version:        p.Version,
	}
}

func toBranchContext(active branch.Branch, accessible []branch.Branch, canSwitch, changed bool) *dto.BranchContextResponse {
	opts := make([]dto.BranchOption, 0, len(accessible))
	for _, b := range accessible {
		opts = append(opts, dto.BranchOption{Value: b.String(), DisplayName: b.DisplayName()})
	}
	return &dto.BranchContextResponse{
		ActiveBranch: active.String(),
		DisplayName:  active.DisplayName(),
		Accessible:   opts,
		CanSwitch:    canSwitch,
		Changed:      changed,
	}
}

func containsBranch(list []branch.Branch, b branch.Branch) bool {
	for _, x := range list {
		if x == b {
			return true
		}
	}
	return false
}
