package handler

import (
	"fets-live/backend/config"
	"fets-live/backend/internal/service"
)

// Handler aggregates every HTTP handler
type Handler struct {
	Auth           *AuthHandler
	Profile        *ProfileHandler
	Candidate      *CandidateHandler
	Client         *ClientHandler
	Calendar       *CalendarHandler
	Reconciliation *ReconciliationHandler
	Incident       *IncidentHandler
	Roster         *RosterHandler
	Checklist      *ChecklistHandler
	Social         *SocialHandler
	Vault          *VaultHandler
	BranchStatus   *BranchStatusHandler
	Device         *DeviceHandler
	Assistant      *AssistantHandler
	Export         *ExportHandler
}

// NewHandler wires handlers onto the service aggregate
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:           NewAuthHandler(svc.Auth, cfg),
		Profile:        NewProfileHandler(svc.Profile),
		Candidate:      NewCandidateHandler(svc.Candidate),
		Client:         NewClientHandler(svc.Client),
		Calendar:       NewCalendarHandler(svc.Calendar),
		Reconciliation: NewReconciliationHandler(svc.Reconciliation),
		Incident:       NewIncidentHandler(svc.Incident),
		Roster:         NewRosterHandler(svc.Roster),
		Checklist:      NewChecklistHandler(svc.Checklist),
		Social:         NewSocialHandler(svc.Social),
		Vault:          NewVaultHandler(svc.Vault),
		BranchStatus:   NewBranchStatusHandler(svc.BranchStatus, cfg.Feature.RealtimeEnabled),
		Device:         NewDeviceHandler(svc.Device),
		Assistant:      NewAssistantHandler(svc.Assistant),
		Export:         NewExportHandler(svc.Export),
	}
}
