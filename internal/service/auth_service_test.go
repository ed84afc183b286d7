package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"fets-live/backend/config"
	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/model"
	"fets-live/backend/pkg/jwt"
)

// ── test helpers ──

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-key-for-unit-testing",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 7 * 24 * time.Hour,
		},
		Branch: config.BranchConfig{
			Default:         "calicut",
			SwitchAllowList: []string{"ops.lead@fets.in"},
		},
		AI:      config.AIConfig{Timeout: time.Second},
		Feature: config.FeatureConfig{AssistantEnabled: true, RealtimeEnabled: true},
	}
}

type fakeBlacklist struct {
	jti string
	ttl time.Duration
}

func (f *fakeBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	f.jti, f.ttl = jti, ttl
	return nil
}

func setupAuthService(t *testing.T) (AuthService, *mocks, *jwt.Manager, *fakeBlacklist) {
	t.Helper()
	cfg := testConfig()
	repo, m := newMockRepository()
	mgr := jwt.NewManager(&cfg.Auth)
	bl := &fakeBlacklist{}
	return NewAuthService(cfg, repo, mgr, bl, zap.NewNop()), m, mgr, bl
}

func seedUser(t *testing.T, m *mocks, email, password, role, branchLoc string, active bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &model.User{Email: email, PasswordHash: string(hash), IsActive: active}
	p := &model.StaffProfile{FullName: "Test " + role, Role: role, BranchAssigned: branchLoc}
	if err := m.user.CreateWithProfile(context.Background(), u, p); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// ── Login ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, m, mgr, _ := setupAuthService(t)
	seedUser(t, m, "anu@fets.in", "password123", model.RoleAdmin, "cochin", true)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ANU@fets.in", Password: "password123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.User.Role != model.RoleAdmin {
		t.Errorf("expected role admin, got %s", resp.User.Role)
	}
	if resp.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("unexpected expires_in %d", resp.ExpiresIn)
	}
	claims, err := mgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("access token does not parse: %v", err)
	}
	if claims.TokenType != "access" || claims.Email != "anu@fets.in" {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, m, _, _ := setupAuthService(t)
	seedUser(t, m, "anu@fets.in", "password123", model.RoleStaff, "calicut", true)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "anu@fets.in", Password: "nope"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _, _, _ := setupAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ghost@fets.in", Password: "x"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Disabled(t *testing.T) {
	svc, m, _, _ := setupAuthService(t)
	seedUser(t, m, "old@fets.in", "password123", model.RoleStaff, "calicut", false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "old@fets.in", Password: "password123"})
	if !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("expected ErrAccountDisabled, got %v", err)
	}
}

// ── Refresh ──

func TestAuthService_Refresh(t *testing.T) {
	svc, m, _, _ := setupAuthService(t)
	seedUser(t, m, "anu@fets.in", "password123", model.RoleStaff, "calicut", true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "anu@fets.in", Password: "password123", RememberMe: true})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("expected a new access token")
	}

	// an access token is not a refresh token
	if _, err := svc.Refresh(context.Background(), login.AccessToken); !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("expected ErrInvalidRefresh for access token, got %v", err)
	}
	if _, err := svc.Refresh(context.Background(), "garbage"); !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("expected ErrInvalidRefresh for garbage, got %v", err)
	}
}

// ── Logout ──

func TestAuthService_Logout(t *testing.T) {
	svc, _, _, bl := setupAuthService(t)

	if err := svc.Logout(context.Background(), "jti-1", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if bl.jti != "jti-1" || bl.ttl <= 0 {
		t.Errorf("expected jti-1 blacklisted with positive ttl, got %q %v", bl.jti, bl.ttl)
	}

	bl.jti = ""
	if err := svc.Logout(context.Background(), "jti-2", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Logout of expired token failed: %v", err)
	}
	if bl.jti != "" {
		t.Error("expired token should not be blacklisted")
	}
}

func TestAuthService_Logout_NoBlacklist(t *testing.T) {
	cfg := testConfig()
	repo, _ := newMockRepository()
	svc := NewAuthService(cfg, repo, jwt.NewManager(&cfg.Auth), nil, zap.NewNop())

	if err := svc.Logout(context.Background(), "jti-1", time.Now().Add(time.Minute)); err != nil {
		t.Errorf("expected no-op without blacklist, got %v", err)
	}
}

// ── ChangePassword ──

func TestAuthService_ChangePassword(t *testing.T) {
	svc, m, _, _ := setupAuthService(t)
	u := seedUser(t, m, "anu@fets.in", "password123", model.RoleStaff, "calicut", true)

	err := svc.ChangePassword(context.Background(), u.UserID, &dto.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "newpassword1"})
	if !errors.Is(err, ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), u.UserID, &dto.ChangePasswordRequest{OldPassword: "password123", NewPassword: "newpassword1"}); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "anu@fets.in", Password: "newpassword1"}); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
}

// ── CreateStaff ──

func TestAuthService_CreateStaff(t *testing.T) {
	svc, m, _, _ := setupAuthService(t)

	resp, err := svc.CreateStaff(context.Background(), &dto.CreateStaffRequest{
		Email:          " New.Staff@FETS.in ",
		Password:       "password123",
		FullName:       "New Staff",
		BranchAssigned: "Kannur",
	}, "admin-1")
	if err != nil {
		t.Fatalf("CreateStaff failed: %v", err)
	}
	if resp.Email != "new.staff@fets.in" {
		t.Errorf("expected normalised email, got %s", resp.Email)
	}
	if resp.Role != model.RoleStaff {
		t.Errorf("expected default role staff, got %s", resp.Role)
	}
	if resp.Profile == nil || resp.Profile.BranchAssigned != "kannur" {
		t.Errorf("expected profile on kannur, got %+v", resp.Profile)
	}
	if len(m.profile.profiles) != 1 {
		t.Errorf("expected one profile stored, got %d", len(m.profile.profiles))
	}

	_, err = svc.CreateStaff(context.Background(), &dto.CreateStaffRequest{
		Email: "new.staff@fets.in", Password: "password123", FullName: "Dup", BranchAssigned: "calicut",
	}, "admin-1")
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuthService_CreateStaff_BadBranch(t *testing.T) {
	svc, _, _, _ := setupAuthService(t)

	_, err := svc.CreateStaff(context.Background(), &dto.CreateStaffRequest{
		Email: "x@fets.in", Password: "password123", FullName: "X", BranchAssigned: "mumbai",
	}, "admin-1")
	if !errors.Is(err, ErrInvalidBranch) {
		t.Errorf("expected ErrInvalidBranch, got %v", err)
	}
}
