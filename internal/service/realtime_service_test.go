package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/dto"
	pkgerrors "fets-live/backend/pkg/errors"
)

// ── branch status ──

type fakeBus struct {
	published map[string][][]byte
	ch        chan string
}

func newFakeBus() *fakeBus {
	return &fakeBus{published: make(map[string][][]byte), ch: make(chan string, 1)}
}

func (f *fakeBus) Publish(_ context.Context, channel string, payload []byte) error {
	f.published[channel] = append(f.published[channel], payload)
	return nil
}

func (f *fakeBus) Subscribe(_ context.Context, _ string) (<-chan string, func() error, error) {
	return f.ch, func() error { return nil }, nil
}

func TestBranchStatusService_UpdatePublishes(t *testing.T) {
	repo, m := newMockRepository()
	bus := newFakeBus()
	svc := NewBranchStatusService(repo, bus, zap.NewNop())

	resp, err := svc.Update(context.Background(), "Cochin", &dto.UpdateBranchStatusRequest{Status: "degraded", Message: "power cut"}, "u1")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if resp.Branch != "cochin" || resp.DisplayName != "Cochin" || resp.UpdatedBy != "u1" {
		t.Errorf("unexpected response %+v", resp)
	}
	if m.status.rows["cochin"].Status != "degraded" {
		t.Error("expected row stored")
	}

	msgs := bus.published[BranchStatusChannel]
	if len(msgs) != 1 {
		t.Fatalf("expected one published event, got %d", len(msgs))
	}
	var evt dto.BranchStatusResponse
	if err := json.Unmarshal(msgs[0], &evt); err != nil || evt.Status != "degraded" {
		t.Errorf("unexpected event %s (%v)", msgs[0], err)
	}

	if _, err := svc.Update(context.Background(), "global", &dto.UpdateBranchStatusRequest{Status: "closed"}, "u1"); !errors.Is(err, ErrInvalidBranch) {
		t.Errorf("expected ErrInvalidBranch for global, got %v", err)
	}
}

func TestBranchStatusService_NoBus(t *testing.T) {
	repo, _ := newMockRepository()
	svc := NewBranchStatusService(repo, nil, zap.NewNop())

	if _, err := svc.Update(context.Background(), "kannur", &dto.UpdateBranchStatusRequest{Status: "normal"}, "u1"); err != nil {
		t.Errorf("update without bus should still succeed, got %v", err)
	}
	if _, _, err := svc.Subscribe(context.Background()); !errors.Is(err, pkgerrors.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "calicut"); !errors.Is(err, ErrBranchStatusNotFound) {
		t.Errorf("expected ErrBranchStatusNotFound, got %v", err)
	}
}

// ── device capabilities ──

func TestDeviceService_RegisterPush(t *testing.T) {
	repo, m := newMockRepository()
	svc := NewDeviceService(repo, zap.NewNop())

	tests := []struct {
		name string
		req  dto.RegisterPushRequest
		want string
	}{
		{"web", dto.RegisterPushRequest{Platform: "web", Permission: "granted", Token: "t"}, ResultUnavailable},
		{"denied", dto.RegisterPushRequest{Platform: "ios", Permission: "denied", Token: "t"}, ResultDenied},
		{"prompt", dto.RegisterPushRequest{Platform: "android", Permission: "prompt", Token: "t"}, ResultDenied},
		{"granted", dto.RegisterPushRequest{Platform: "android", Permission: "granted", Token: "tok-1"}, ResultOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.RegisterPush(context.Background(), "u1", &tt.req)
			if err != nil {
				t.Fatalf("RegisterPush failed: %v", err)
			}
			if resp.Result != tt.want {
				t.Errorf("expected %s, got %s", tt.want, resp.Result)
			}
		})
	}
	if len(m.device.regs) != 1 || m.device.regs[0].Token != "tok-1" {
		t.Errorf("expected only the granted token stored, got %+v", m.device.regs)
	}
}

func TestDeviceService_NativeOnly(t *testing.T) {
	repo, _ := newMockRepository()
	svc := NewDeviceService(repo, zap.NewNop())

	if r := svc.StatusBar(context.Background(), &dto.CapabilityRequest{Platform: "web"}); r.Result != ResultUnavailable {
		t.Errorf("status bar on web: %s", r.Result)
	}
	if r := svc.Haptics(context.Background(), &dto.CapabilityRequest{Platform: "ios"}); r.Result != ResultOK {
		t.Errorf("haptics on ios: %s", r.Result)
	}
}

// ── assistant ──

type fakeChat struct {
	system, prompt string
	reply          string
	err            error
}

func (f *fakeChat) Generate(_ context.Context, system, prompt string) (string, error) {
	f.system, f.prompt = system, prompt
	return f.reply, f.err
}

func TestAssistantService_Stub(t *testing.T) {
	cfg := testConfig()
	svc := NewAssistantService(cfg, nil, zap.NewNop())

	resp, err := svc.Chat(context.Background(), branch.Calicut, &dto.ChatRequest{Message: "hi"})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if resp.Available || resp.Reply != AssistantStubReply || resp.Branch != "calicut" {
		t.Errorf("unexpected stub %+v", resp)
	}

	cfg.Feature.AssistantEnabled = false
	svc = NewAssistantService(cfg, &fakeChat{reply: "x"}, zap.NewNop())
	resp, _ = svc.Chat(context.Background(), branch.Calicut, &dto.ChatRequest{Message: "hi"})
	if resp.Available {
		t.Error("disabled feature must return the stub")
	}
}

func TestAssistantService_Model(t *testing.T) {
	chat := &fakeChat{reply: " Check the vault. "}
	svc := NewAssistantService(testConfig(), chat, zap.NewNop())

	resp, err := svc.Chat(context.Background(), branch.Kannur, &dto.ChatRequest{Message: " where is the UPS manual? "})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if !resp.Available || resp.Reply != "Check the vault." {
		t.Errorf("unexpected reply %+v", resp)
	}
	if chat.prompt != "where is the UPS manual?" {
		t.Errorf("prompt not trimmed: %q", chat.prompt)
	}
	if !strings.Contains(chat.system, "Kannur") {
		t.Errorf("system prompt should name the branch: %q", chat.system)
	}

	chat.err = errors.New("quota")
	if _, err := svc.Chat(context.Background(), branch.Kannur, &dto.ChatRequest{Message: "x"}); err == nil {
		t.Error("expected model error to surface")
	}
}
