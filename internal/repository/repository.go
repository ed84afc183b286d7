package repository

import "gorm.io/gorm"

// Repository aggregates every data-access interface
type Repository struct {
	DB *gorm.DB

	User         UserRepository
	Profile      ProfileRepository
	Candidate    CandidateRepository
	Client       ClientRepository
	Calendar     CalendarRepository
	Incident     IncidentRepository
	Roster       RosterRepository
	LeaveRequest LeaveRequestRepository
	Audit        AuditRepository
	Checklist    ChecklistRepository
	Social       SocialRepository
	Vault        VaultRepository
	BranchStatus BranchStatusRepository
	Device       DeviceRepository
}

// NewRepository builds the aggregate on one *gorm.DB
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:           db,
		User:         NewUserRepo(db),
		Profile:      NewProfileRepo(db),
		Candidate:    NewCandidateRepo(db),
		Client:       NewClientRepo(db),
		Calendar:     NewCalendarRepo(db),
		Incident:     NewIncidentRepo(db),
		Roster:       NewRosterRepo(db),
		LeaveRequest: NewLeaveRequestRepo(db),
		Audit:        NewAuditRepo(db),
		Checklist:    NewChecklistRepo(db),
		Social:       NewSocialRepo(db),
		Vault:        NewVaultRepo(db),
		BranchStatus: NewBranchStatusRepo(db),
		Device:       NewDeviceRepo(db),
	}
}
