package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/model"
	"fets-live/backend/internal/repository"
	pkgerrors "fets-live/backend/pkg/errors"
)

// mocks groups every mock so tests can seed and inspect them.
type mocks struct {
	user      *mockUserRepo
	profile   *mockProfileRepo
	candidate *mockCandidateRepo
	client    *mockClientRepo
	calendar  *mockCalendarRepo
	incident  *mockIncidentRepo
	roster    *mockRosterRepo
	leave     *mockLeaveRequestRepo
	audit     *mockAuditRepo
	checklist *mockChecklistRepo
	social    *mockSocialRepo
	vault     *mockVaultRepo
	status    *mockBranchStatusRepo
	device    *mockDeviceRepo
}

func newMockRepository() (*repository.Repository, *mocks) {
	m := &mocks{
		user:      newMockUserRepo(),
		profile:   newMockProfileRepo(),
		candidate: newMockCandidateRepo(),
		client:    newMockClientRepo(),
		calendar:  newMockCalendarRepo(),
		incident:  newMockIncidentRepo(),
		roster:    newMockRosterRepo(),
		audit:     &mockAuditRepo{},
		checklist: newMockChecklistRepo(),
		social:    newMockSocialRepo(),
		vault:     newMockVaultRepo(),
		status:    newMockBranchStatusRepo(),
		device:    &mockDeviceRepo{},
	}
	m.leave = newMockLeaveRequestRepo(m.roster, m.audit)
	m.user.profiles = m.profile

	repo := &repository.Repository{
		User:         m.user,
		Profile:      m.profile,
		Candidate:    m.candidate,
		Client:       m.client,
		Calendar:     m.calendar,
		Incident:     m.incident,
		Roster:       m.roster,
		LeaveRequest: m.leave,
		Audit:        m.audit,
		Checklist:    m.checklist,
		Social:       m.social,
		Vault:        m.vault,
		BranchStatus: m.status,
		Device:       m.device,
	}
	return repo, m
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users    map[string]*model.User // key: user_id
	profiles *mockProfileRepo
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) CreateWithProfile(_ context.Context, user *model.User, profile *model.StaffProfile) error {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	if profile.ProfileID == "" {
		profile.ProfileID = "profile-" + user.UserID
	}
	profile.UserID = user.UserID
	user.Profile = profile
	m.users[user.UserID] = user
	if m.profiles != nil {
		m.profiles.put(profile)
	}
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	u, ok := m.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// ── Mock ProfileRepository ──

type mockProfileRepo struct {
	profiles map[string]*model.StaffProfile // key: profile_id
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]*model.StaffProfile)}
}

func (m *mockProfileRepo) put(p *model.StaffProfile) {
	if p.Version == 0 {
		p.Version = 1
	}
	m.profiles[p.ProfileID] = p
}

func (m *mockProfileRepo) GetByID(_ context.Context, profileID string) (*model.StaffProfile, error) {
	if p, ok := m.profiles[profileID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID string) (*model.StaffProfile, error) {
	for _, p := range m.profiles {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) List(_ context.Context, scope branch.Scope, filter repository.ProfileFilter, offset, limit int) ([]model.StaffProfile, int64, error) {
	var result []model.StaffProfile
	for _, p := range m.profiles {
		if !scope.Matches(p.BranchAssigned) {
			continue
		}
		if filter.Role != "" && p.Role != filter.Role {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return page(result, offset, limit), int64(len(result)), nil
}

func (m *mockProfileRepo) Update(_ context.Context, profile *model.StaffProfile) error {
	cur, ok := m.profiles[profile.ProfileID]
	if !ok || cur.Version != profile.Version {
		return pkgerrors.ErrOptimisticLock
	}
	cp := *profile
	cp.Version++
	profile.Version = cp.Version
	m.profiles[profile.ProfileID] = &cp
	return nil
}

func (m *mockProfileRepo) UpdateBranch(_ context.Context, userID, branchLocation string) error {
	for _, p := range m.profiles {
		if p.UserID == userID {
			p.BranchAssigned = branchLocation
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock CandidateRepository ──

type mockCandidateRepo struct {
	candidates map[string]*model.Candidate
	listErr    error
}

func newMockCandidateRepo() *mockCandidateRepo {
	return &mockCandidateRepo{candidates: make(map[string]*model.Candidate)}
}

func (m *mockCandidateRepo) Create(_ context.Context, c *model.Candidate) error {
	if c.CandidateID == "" {
		c.CandidateID = fmt.Sprintf("cand-%d", len(m.candidates)+1)
	}
	if c.Status == "" {
		c.Status = model.CandidateRegistered
	}
	m.candidates[c.CandidateID] = c
	return nil
}

func (m *mockCandidateRepo) GetByID(_ context.Context, scope branch.Scope, id string) (*model.Candidate, error) {
	if c, ok := m.candidates[id]; ok && scope.Matches(c.BranchLocation) {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCandidateRepo) List(_ context.Context, scope branch.Scope, filter repository.CandidateFilter, offset, limit int) ([]model.Candidate, int64, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	var result []model.Candidate
	for _, c := range m.candidates {
		if !scope.Matches(c.BranchLocation) {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.ClientName != "" && c.ClientName != filter.ClientName {
			continue
		}
		if filter.ExamFrom != nil && (c.ExamDate == nil || c.ExamDate.Before(*filter.ExamFrom)) {
			continue
		}
		if filter.ExamTo != nil && (c.ExamDate == nil || !c.ExamDate.Before(*filter.ExamTo)) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.FullName), strings.ToLower(filter.Search)) {
			continue
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CandidateID < result[j].CandidateID })
	return page(result, offset, limit), int64(len(result)), nil
}

func (m *mockCandidateRepo) ListByExamDate(_ context.Context, scope branch.Scope, from, to time.Time) ([]model.Candidate, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.Candidate
	for _, c := range m.candidates {
		if !scope.Matches(c.BranchLocation) || c.ExamDate == nil {
			continue
		}
		if c.ExamDate.Before(from) || !c.ExamDate.Before(to) {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCandidateRepo) Update(_ context.Context, c *model.Candidate) error {
	if _, ok := m.candidates[c.CandidateID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *c
	m.candidates[c.CandidateID] = &cp
	return nil
}

func (m *mockCandidateRepo) UpdateStatus(_ context.Context, id, status, _ string) error {
	c, ok := m.candidates[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Status = status
	return nil
}

func (m *mockCandidateRepo) Delete(_ context.Context, id, _ string) error {
	if _, ok := m.candidates[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.candidates, id)
	return nil
}

// ── Mock ClientRepository ──

type mockClientRepo struct {
	clients map[string]*model.Client
	exams   map[string]*model.ClientExam
}

func newMockClientRepo() *mockClientRepo {
	return &mockClientRepo{
		clients: make(map[string]*model.Client),
		exams:   make(map[string]*model.ClientExam),
	}
}

func (m *mockClientRepo) List(_ context.Context, activeOnly bool) ([]model.Client, error) {
	var result []model.Client
	for _, c := range m.clients {
		if activeOnly && !c.IsActive {
			continue
		}
		cp := *c
		for _, e := range m.exams {
			if e.ClientID == c.ClientID {
				cp.Exams = append(cp.Exams, *e)
			}
		}
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockClientRepo) GetByID(_ context.Context, id string) (*model.Client, error) {
	if c, ok := m.clients[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClientRepo) GetByName(_ context.Context, name string) (*model.Client, error) {
	for _, c := range m.clients {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClientRepo) Create(_ context.Context, c *model.Client) error {
	if c.ClientID == "" {
		c.ClientID = "client-" + strings.ToLower(c.Name)
	}
	m.clients[c.ClientID] = c
	return nil
}

func (m *mockClientRepo) CreateExam(_ context.Context, e *model.ClientExam) error {
	if e.ExamID == "" {
		e.ExamID = fmt.Sprintf("exam-%d", len(m.exams)+1)
	}
	m.exams[e.ExamID] = e
	return nil
}

func (m *mockClientRepo) DeleteExam(_ context.Context, examID string) error {
	if _, ok := m.exams[examID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.exams, examID)
	return nil
}

// ── Mock CalendarRepository ──

type mockCalendarRepo struct {
	sessions map[string]*model.CalendarSession
	listErr  error
}

func newMockCalendarRepo() *mockCalendarRepo {
	return &mockCalendarRepo{sessions: make(map[string]*model.CalendarSession)}
}

func (m *mockCalendarRepo) Create(_ context.Context, s *model.CalendarSession) error {
	if s.SessionID == "" {
		s.SessionID = fmt.Sprintf("sess-%d", len(m.sessions)+1)
	}
	m.sessions[s.SessionID] = s
	return nil
}

func (m *mockCalendarRepo) GetByID(_ context.Context, scope branch.Scope, id string) (*model.CalendarSession, error) {
	if s, ok := m.sessions[id]; ok && scope.Matches(s.BranchLocation) {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCalendarRepo) ListByDate(_ context.Context, scope branch.Scope, from, to time.Time) ([]model.CalendarSession, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.CalendarSession
	for _, s := range m.sessions {
		if !scope.Matches(s.BranchLocation) || s.Date.Before(from) || !s.Date.Before(to) {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockCalendarRepo) Update(_ context.Context, s *model.CalendarSession) error {
	cp := *s
	m.sessions[s.SessionID] = &cp
	return nil
}

func (m *mockCalendarRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.sessions[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.sessions, id)
	return nil
}

// ── Mock IncidentRepository ──

type mockIncidentRepo struct {
	incidents map[string]*model.Incident
	comments  []model.IncidentComment
}

func newMockIncidentRepo() *mockIncidentRepo {
	return &mockIncidentRepo{incidents: make(map[string]*model.Incident)}
}

func (m *mockIncidentRepo) Create(_ context.Context, in *model.Incident) error {
	if in.IncidentID == "" {
		in.IncidentID = fmt.Sprintf("inc-%d", len(m.incidents)+1)
	}
	if in.Version == 0 {
		in.Version = 1
	}
	cp := *in
	m.incidents[in.IncidentID] = &cp
	return nil
}

func (m *mockIncidentRepo) GetByID(_ context.Context, scope branch.Scope, id string) (*model.Incident, error) {
	if in, ok := m.incidents[id]; ok && scope.Matches(in.BranchLocation) {
		cp := *in
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockIncidentRepo) List(_ context.Context, scope branch.Scope, filter repository.IncidentFilter, offset, limit int) ([]model.Incident, int64, error) {
	var result []model.Incident
	for _, in := range m.incidents {
		if !scope.Matches(in.BranchLocation) {
			continue
		}
		if filter.Status != "" && in.Status != filter.Status {
			continue
		}
		if filter.Category != "" && in.Category != filter.Category {
			continue
		}
		result = append(result, *in)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].IncidentID < result[j].IncidentID })
	return page(result, offset, limit), int64(len(result)), nil
}

func (m *mockIncidentRepo) Update(_ context.Context, in *model.Incident) error {
	cur, ok := m.incidents[in.IncidentID]
	if !ok || cur.Version != in.Version {
		return pkgerrors.ErrOptimisticLock
	}
	in.Version++
	cp := *in
	m.incidents[in.IncidentID] = &cp
	return nil
}

func (m *mockIncidentRepo) Delete(_ context.Context, id, _ string) error {
	delete(m.incidents, id)
	return nil
}

func (m *mockIncidentRepo) CountByStatus(_ context.Context, scope branch.Scope) ([]repository.StatusCount, error) {
	counts := make(map[string]int64)
	for _, in := range m.incidents {
		if scope.Matches(in.BranchLocation) {
			counts[in.Status]++
		}
	}
	var result []repository.StatusCount
	for s, n := range counts {
		result = append(result, repository.StatusCount{Status: s, Count: n})
	}
	return result, nil
}

func (m *mockIncidentRepo) CreateComment(_ context.Context, c *model.IncidentComment) error {
	if c.CommentID == "" {
		c.CommentID = fmt.Sprintf("comment-%d", len(m.comments)+1)
	}
	m.comments = append(m.comments, *c)
	return nil
}

func (m *mockIncidentRepo) ListComments(_ context.Context, incidentID string) ([]model.IncidentComment, error) {
	var result []model.IncidentComment
	for _, c := range m.comments {
		if c.IncidentID == incidentID {
			result = append(result, c)
		}
	}
	return result, nil
}

// ── Mock RosterRepository ──

type mockRosterRepo struct {
	shifts map[string]*model.RosterSchedule // key: profile_id|date
}

func newMockRosterRepo() *mockRosterRepo {
	return &mockRosterRepo{shifts: make(map[string]*model.RosterSchedule)}
}

func rosterKey(profileID string, date time.Time) string {
	return profileID + "|" + date.Format(dateLayout)
}

func (m *mockRosterRepo) ListByDate(_ context.Context, _ branch.Scope, from, to time.Time) ([]model.RosterSchedule, error) {
	var result []model.RosterSchedule
	for _, s := range m.shifts {
		if s.Date.Before(from) || !s.Date.Before(to) {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ProfileID < result[j].ProfileID })
	return result, nil
}

func (m *mockRosterRepo) GetByProfileAndDate(_ context.Context, profileID string, date time.Time) (*model.RosterSchedule, error) {
	if s, ok := m.shifts[rosterKey(profileID, date)]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRosterRepo) Upsert(_ context.Context, s *model.RosterSchedule) error {
	if s.ScheduleID == "" {
		s.ScheduleID = "shift-" + rosterKey(s.ProfileID, s.Date)
	}
	cp := *s
	m.shifts[rosterKey(s.ProfileID, s.Date)] = &cp
	return nil
}

// ── Mock LeaveRequestRepository ──

type mockLeaveRequestRepo struct {
	requests map[string]*model.LeaveRequest
	roster   *mockRosterRepo
	audit    *mockAuditRepo
}

func newMockLeaveRequestRepo(roster *mockRosterRepo, audit *mockAuditRepo) *mockLeaveRequestRepo {
	return &mockLeaveRequestRepo{
		requests: make(map[string]*model.LeaveRequest),
		roster:   roster,
		audit:    audit,
	}
}

func (m *mockLeaveRequestRepo) Create(_ context.Context, r *model.LeaveRequest) error {
	if r.RequestID == "" {
		r.RequestID = fmt.Sprintf("req-%d", len(m.requests)+1)
	}
	if r.Status == "" {
		r.Status = model.RequestPending
	}
	if r.Version == 0 {
		r.Version = 1
	}
	cp := *r
	m.requests[r.RequestID] = &cp
	return nil
}

func (m *mockLeaveRequestRepo) GetByID(_ context.Context, id string) (*model.LeaveRequest, error) {
	if r, ok := m.requests[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeaveRequestRepo) List(_ context.Context, filter repository.LeaveRequestFilter, offset, limit int) ([]model.LeaveRequest, int64, error) {
	var result []model.LeaveRequest
	for _, r := range m.requests {
		if filter.UserID != "" && r.UserID != filter.UserID &&
			(r.SwapWithUserID == nil || *r.SwapWithUserID != filter.UserID) {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.RequestType != "" && r.RequestType != filter.RequestType {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RequestID < result[j].RequestID })
	return page(result, offset, limit), int64(len(result)), nil
}

func (m *mockLeaveRequestRepo) decide(r *model.LeaveRequest, status string, d repository.Decision) error {
	cur, ok := m.requests[r.RequestID]
	if !ok || cur.Status != model.RequestPending || cur.Version != r.Version {
		return pkgerrors.ErrOptimisticLock
	}
	cur.Status = status
	cur.ReviewedBy = &d.ReviewerID
	at := d.At
	cur.ReviewedAt = &at
	cur.ReviewNote = d.Note
	cur.Version++
	*r = *cur
	return nil
}

func (m *mockLeaveRequestRepo) Reject(_ context.Context, r *model.LeaveRequest, d repository.Decision) error {
	return m.decide(r, model.RequestRejected, d)
}

func (m *mockLeaveRequestRepo) ApproveLeave(ctx context.Context, r *model.LeaveRequest, d repository.Decision, audit *model.AuditLog) error {
	if err := m.decide(r, model.RequestApproved, d); err != nil {
		return err
	}
	return m.audit.Create(ctx, audit)
}

func (m *mockLeaveRequestRepo) ApproveSwap(ctx context.Context, r *model.LeaveRequest, requesterProfileID, partnerProfileID string, d repository.Decision, audit *model.AuditLog) error {
	cur, ok := m.requests[r.RequestID]
	if !ok || cur.Status != model.RequestPending || cur.Version != r.Version {
		return pkgerrors.ErrOptimisticLock
	}
	a, okA := m.roster.shifts[rosterKey(requesterProfileID, r.RequestedDate)]
	b, okB := m.roster.shifts[rosterKey(partnerProfileID, r.RequestedDate)]
	if !okA || !okB {
		return repository.ErrRosterEntryMissing
	}
	a.ShiftCode, b.ShiftCode = b.ShiftCode, a.ShiftCode
	a.OvertimeHours, b.OvertimeHours = b.OvertimeHours, a.OvertimeHours
	if err := m.audit.Create(ctx, audit); err != nil {
		return err
	}
	return m.decide(r, model.RequestApproved, d)
}

// ── Mock AuditRepository ──

type mockAuditRepo struct {
	entries []model.AuditLog
}

func (m *mockAuditRepo) Create(_ context.Context, entry *model.AuditLog) error {
	if entry.AuditLogID == "" {
		entry.AuditLogID = fmt.Sprintf("audit-%d", len(m.entries)+1)
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockAuditRepo) List(_ context.Context, action string, offset, limit int) ([]model.AuditLog, int64, error) {
	var result []model.AuditLog
	for _, e := range m.entries {
		if action == "" || e.Action == action {
			result = append(result, e)
		}
	}
	return page(result, offset, limit), int64(len(result)), nil
}

// ── Mock ChecklistRepository ──

type mockChecklistRepo struct {
	templates   []*model.ChecklistTemplate // insertion order = age, oldest first
	submissions []model.ChecklistSubmission
}

func newMockChecklistRepo() *mockChecklistRepo {
	return &mockChecklistRepo{}
}

func (m *mockChecklistRepo) CreateTemplate(_ context.Context, tpl *model.ChecklistTemplate) error {
	if tpl.TemplateID == "" {
		tpl.TemplateID = fmt.Sprintf("tpl-%d", len(m.templates)+1)
	}
	m.templates = append(m.templates, tpl)
	return nil
}

func (m *mockChecklistRepo) GetTemplate(_ context.Context, id string) (*model.ChecklistTemplate, error) {
	for _, t := range m.templates {
		if t.TemplateID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockChecklistRepo) ListTemplates(_ context.Context, typ string, activeOnly bool) ([]model.ChecklistTemplate, error) {
	var result []model.ChecklistTemplate
	for i := len(m.templates) - 1; i >= 0; i-- {
		t := m.templates[i]
		if typ != "" && t.Type != typ {
			continue
		}
		if activeOnly && !t.IsActive {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockChecklistRepo) Deactivate(_ context.Context, id, _ string) error {
	for _, t := range m.templates {
		if t.TemplateID == id {
			t.IsActive = false
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockChecklistRepo) CreateSubmission(_ context.Context, sub *model.ChecklistSubmission) error {
	if sub.SubmissionID == "" {
		sub.SubmissionID = fmt.Sprintf("sub-%d", len(m.submissions)+1)
	}
	m.submissions = append(m.submissions, *sub)
	return nil
}

func (m *mockChecklistRepo) ListSubmissions(_ context.Context, scope branch.Scope, templateID string, offset, limit int) ([]model.ChecklistSubmission, int64, error) {
	var result []model.ChecklistSubmission
	for _, s := range m.submissions {
		if !scope.Matches(s.BranchLocation) {
			continue
		}
		if templateID != "" && s.TemplateID != templateID {
			continue
		}
		result = append(result, s)
	}
	return page(result, offset, limit), int64(len(result)), nil
}

// ── Mock SocialRepository ──

type mockSocialRepo struct {
	posts    map[string]*model.SocialPost
	comments []model.SocialComment
}

func newMockSocialRepo() *mockSocialRepo {
	return &mockSocialRepo{posts: make(map[string]*model.SocialPost)}
}

func (m *mockSocialRepo) ListPosts(_ context.Context, offset, limit int) ([]model.SocialPost, int64, error) {
	var result []model.SocialPost
	for _, p := range m.posts {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PostID > result[j].PostID })
	return page(result, offset, limit), int64(len(result)), nil
}

func (m *mockSocialRepo) GetPost(_ context.Context, id string) (*model.SocialPost, error) {
	if p, ok := m.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSocialRepo) CreatePost(_ context.Context, p *model.SocialPost) error {
	if p.PostID == "" {
		p.PostID = fmt.Sprintf("post-%d", len(m.posts)+1)
	}
	cp := *p
	m.posts[p.PostID] = &cp
	return nil
}

func (m *mockSocialRepo) DeletePost(_ context.Context, id, _ string) error {
	delete(m.posts, id)
	return nil
}

func (m *mockSocialRepo) IncrementLikes(_ context.Context, id string) (int, error) {
	p, ok := m.posts[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	p.LikesCount++
	return p.LikesCount, nil
}

func (m *mockSocialRepo) AddComment(_ context.Context, c *model.SocialComment) error {
	p, ok := m.posts[c.PostID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.CommentsCount++
	if c.CommentID == "" {
		c.CommentID = fmt.Sprintf("pc-%d", len(m.comments)+1)
	}
	m.comments = append(m.comments, *c)
	return nil
}

func (m *mockSocialRepo) ListComments(_ context.Context, postID string) ([]model.SocialComment, error) {
	var result []model.SocialComment
	for _, c := range m.comments {
		if c.PostID == postID {
			result = append(result, c)
		}
	}
	return result, nil
}

// ── Mock VaultRepository ──

type mockVaultRepo struct {
	items map[string]*model.VaultItem
}

func newMockVaultRepo() *mockVaultRepo {
	return &mockVaultRepo{items: make(map[string]*model.VaultItem)}
}

func (m *mockVaultRepo) Create(_ context.Context, item *model.VaultItem) error {
	if item.ItemID == "" {
		item.ItemID = fmt.Sprintf("vault-%d", len(m.items)+1)
	}
	cp := *item
	m.items[item.ItemID] = &cp
	return nil
}

func (m *mockVaultRepo) GetByID(_ context.Context, scope branch.Scope, id string) (*model.VaultItem, error) {
	if it, ok := m.items[id]; ok && scope.Matches(it.BranchLocation) {
		cp := *it
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVaultRepo) List(_ context.Context, scope branch.Scope, filter repository.VaultFilter, offset, limit int) ([]model.VaultItem, int64, error) {
	var result []model.VaultItem
	for _, it := range m.items {
		if !scope.Matches(it.BranchLocation) {
			continue
		}
		if filter.Category != "" && it.Category != filter.Category {
			continue
		}
		if filter.Tag != "" && !containsString(it.Tags, filter.Tag) {
			continue
		}
		result = append(result, *it)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ItemID < result[j].ItemID })
	return page(result, offset, limit), int64(len(result)), nil
}

func (m *mockVaultRepo) Update(_ context.Context, item *model.VaultItem) error {
	cp := *item
	m.items[item.ItemID] = &cp
	return nil
}

func (m *mockVaultRepo) Delete(_ context.Context, id, _ string) error {
	delete(m.items, id)
	return nil
}

// ── Mock BranchStatusRepository ──

type mockBranchStatusRepo struct {
	rows map[string]*model.BranchStatus
}

func newMockBranchStatusRepo() *mockBranchStatusRepo {
	return &mockBranchStatusRepo{rows: make(map[string]*model.BranchStatus)}
}

func (m *mockBranchStatusRepo) List(_ context.Context) ([]model.BranchStatus, error) {
	var result []model.BranchStatus
	for _, r := range m.rows {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].BranchLocation < result[j].BranchLocation })
	return result, nil
}

func (m *mockBranchStatusRepo) Get(_ context.Context, b string) (*model.BranchStatus, error) {
	if r, ok := m.rows[b]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBranchStatusRepo) Upsert(_ context.Context, s *model.BranchStatus) error {
	cp := *s
	m.rows[s.BranchLocation] = &cp
	return nil
}

// ── Mock DeviceRepository ──

type mockDeviceRepo struct {
	regs []model.DeviceRegistration
}

func (m *mockDeviceRepo) Upsert(_ context.Context, reg *model.DeviceRegistration) error {
	for i := range m.regs {
		if m.regs[i].UserID == reg.UserID && m.regs[i].Token == reg.Token {
			m.regs[i].Platform = reg.Platform
			return nil
		}
	}
	m.regs = append(m.regs, *reg)
	return nil
}

func (m *mockDeviceRepo) ListByUser(_ context.Context, userID string) ([]model.DeviceRegistration, error) {
	var result []model.DeviceRegistration
	for _, r := range m.regs {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	return result, nil
}

// ── helpers ──

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
