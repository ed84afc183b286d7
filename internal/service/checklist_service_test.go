package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/model"
)

func tpl(id string, loc *string) model.ChecklistTemplate {
	return model.ChecklistTemplate{TemplateID: id, Type: model.ChecklistPreExam, BranchLocation: loc, IsActive: true}
}

// ── SelectTemplate ──

func TestSelectTemplate(t *testing.T) {
	cochin := tpl("cochin", strPtr("cochin"))
	global := tpl("global", strPtr("global"))
	unscoped := tpl("unscoped", nil)
	kannur := tpl("kannur", strPtr("kannur"))

	tests := []struct {
		name      string
		templates []model.ChecklistTemplate
		active    branch.Branch
		want      string
		wantOK    bool
	}{
		{"branch match wins", []model.ChecklistTemplate{global, cochin}, branch.Cochin, "cochin", true},
		{"global fallback", []model.ChecklistTemplate{kannur, global}, branch.Cochin, "global", true},
		{"unscoped counts as global", []model.ChecklistTemplate{kannur, unscoped}, branch.Cochin, "unscoped", true},
		{"newest global first", []model.ChecklistTemplate{unscoped, global}, branch.Calicut, "unscoped", true},
		{"first as last resort", []model.ChecklistTemplate{kannur, cochin}, branch.Calicut, "kannur", true},
		{"global view skips branch match", []model.ChecklistTemplate{cochin, global}, branch.Global, "global", true},
		{"empty", nil, branch.Cochin, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectTemplate(tt.templates, tt.active)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.TemplateID != tt.want {
				t.Errorf("selected %s, want %s", got.TemplateID, tt.want)
			}
		})
	}
}

// ── ChecklistService ──

func setupChecklistService() (ChecklistService, *mocks) {
	repo, m := newMockRepository()
	return NewChecklistService(repo, zap.NewNop()), m
}

func createTemplate(t *testing.T, svc ChecklistService, name, loc string) *dto.TemplateResponse {
	t.Helper()
	resp, err := svc.CreateTemplate(context.Background(), &dto.CreateTemplateRequest{
		Name:           name,
		Type:           model.ChecklistPreExam,
		BranchLocation: loc,
		Items:          []dto.ChecklistItem{{ID: "id_check", Label: "ID verified", Type: "checkbox", Required: true}},
	}, "admin")
	if err != nil {
		t.Fatalf("CreateTemplate failed: %v", err)
	}
	return resp
}

func TestChecklistService_Resolve(t *testing.T) {
	svc, _ := setupChecklistService()
	createTemplate(t, svc, "Global pre-exam", "")
	cochin := createTemplate(t, svc, "Cochin pre-exam", "Cochin")

	got, err := svc.Resolve(context.Background(), model.ChecklistPreExam, branch.Cochin)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.ID != cochin.ID {
		t.Errorf("expected cochin template, got %s", got.Name)
	}
	if len(got.Items) != 1 || got.Items[0].ID != "id_check" {
		t.Errorf("unexpected items %+v", got.Items)
	}

	got, err = svc.Resolve(context.Background(), model.ChecklistPreExam, branch.Kannur)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.Name != "Global pre-exam" {
		t.Errorf("expected global fallback, got %s", got.Name)
	}
}

func TestChecklistService_Resolve_NoneOrInactive(t *testing.T) {
	svc, _ := setupChecklistService()

	if _, err := svc.Resolve(context.Background(), model.ChecklistPostExam, branch.Cochin); !errors.Is(err, ErrChecklistTemplateNotFound) {
		t.Errorf("expected ErrChecklistTemplateNotFound, got %v", err)
	}

	only := createTemplate(t, svc, "Only", "cochin")
	if err := svc.DeactivateTemplate(context.Background(), only.ID, "admin"); err != nil {
		t.Fatalf("DeactivateTemplate failed: %v", err)
	}
	if _, err := svc.Resolve(context.Background(), model.ChecklistPreExam, branch.Cochin); !errors.Is(err, ErrChecklistTemplateNotFound) {
		t.Errorf("inactive template must not resolve, got %v", err)
	}

	if _, err := svc.Resolve(context.Background(), "mid_exam", branch.Cochin); !errors.Is(err, ErrInvalidChecklistType) {
		t.Errorf("expected ErrInvalidChecklistType, got %v", err)
	}
}

func TestChecklistService_Submit(t *testing.T) {
	svc, m := setupChecklistService()
	tp := createTemplate(t, svc, "Global pre-exam", "")

	answers := json.RawMessage(`{"id_check":true}`)
	sub, err := svc.Submit(context.Background(), branch.NewScope(branch.Calicut), &dto.SubmitChecklistRequest{
		TemplateID: tp.ID, ExamDate: "2026-05-04", Answers: answers,
	}, "u1")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if sub.BranchLocation != "calicut" || sub.ExamDate != "2026-05-04" {
		t.Errorf("unexpected submission %+v", sub)
	}
	if len(m.checklist.submissions) != 1 {
		t.Errorf("expected one stored submission")
	}

	// global view must name a branch
	_, err = svc.Submit(context.Background(), branch.GlobalScope(), &dto.SubmitChecklistRequest{TemplateID: tp.ID, Answers: answers}, "u1")
	if !errors.Is(err, ErrBranchRequired) {
		t.Errorf("expected ErrBranchRequired, got %v", err)
	}

	_ = svc.DeactivateTemplate(context.Background(), tp.ID, "admin")
	_, err = svc.Submit(context.Background(), branch.NewScope(branch.Calicut), &dto.SubmitChecklistRequest{TemplateID: tp.ID, Answers: answers}, "u1")
	if !errors.Is(err, ErrChecklistTemplateInactive) {
		t.Errorf("expected ErrChecklistTemplateInactive, got %v", err)
	}
}
