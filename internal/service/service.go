package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fets-live/backend/config"
	"fets-live/backend/internal/repository"
	"fets-live/backend/pkg/jwt"
)

// Caller identity of the signed-in user making a request
type Caller struct {
	UserID string
	Role   string
	Email  string
}

// ── external collaborators ──

// BranchStore persists the last selected branch per user.
type BranchStore interface {
	GetActiveBranch(ctx context.Context, userID string) (string, error)
	SetActiveBranch(ctx context.Context, userID, branch string) error
}

// TokenBlacklist revokes access tokens before expiry.
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// EventBus fans out realtime events.
type EventBus interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (<-chan string, func() error, error)
}

// ChatModel generates assistant replies.
type ChatModel interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Deps optional collaborators; nil fields degrade the matching feature.
type Deps struct {
	Branches  BranchStore
	Blacklist TokenBlacklist
	Bus       EventBus
	Chat      ChatModel
}

// Service aggregates every business service
type Service struct {
	Auth           AuthService
	Profile        ProfileService
	Candidate      CandidateService
	Client         ClientService
	Calendar       CalendarService
	Reconciliation ReconciliationService
	Incident       IncidentService
	Roster         RosterService
	Checklist      ChecklistService
	Social         SocialService
	Vault          VaultService
	BranchStatus   BranchStatusService
	Device         DeviceService
	Assistant      AssistantService
	Export         ExportService
}

// NewService wires every service on the repository aggregate
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	deps Deps,
	logger *zap.Logger,
) *Service {
	profile := NewProfileService(cfg, repo, deps.Branches, logger)
	candidate := NewCandidateService(repo, logger)
	reconciliation := NewReconciliationService(repo, logger)
	return &Service{
		Auth:           NewAuthService(cfg, repo, jwtMgr, deps.Blacklist, logger),
		Profile:        profile,
		Candidate:      candidate,
		Client:         NewClientService(repo, logger),
		Calendar:       NewCalendarService(repo, logger),
		Reconciliation: reconciliation,
		Incident:       NewIncidentService(repo, logger),
		Roster:         NewRosterService(repo, logger),
		Checklist:      NewChecklistService(repo, logger),
		Social:         NewSocialService(repo, logger),
		Vault:          NewVaultService(repo, logger),
		BranchStatus:   NewBranchStatusService(repo, deps.Bus, logger),
		Device:         NewDeviceService(repo, logger),
		Assistant:      NewAssistantService(cfg, deps.Chat, logger),
		Export:         NewExportService(repo, candidate, reconciliation, logger),
	}
}
