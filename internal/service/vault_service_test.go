package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/dto"
)

func TestVaultService_CRUD(t *testing.T) {
	repo, _ := newMockRepository()
	svc := NewVaultService(repo, zap.NewNop())
	ctx := context.Background()
	cochin := branch.NewScope(branch.Cochin)

	item, err := svc.Create(ctx, cochin, &dto.CreateVaultItemRequest{
		Title: "UPS vendor", Content: "call 0484...", Tags: []string{" Power ", "power", "VENDOR", ""},
	}, "u1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if item.Category != "general" || item.BranchLocation != "cochin" {
		t.Errorf("unexpected item %+v", item)
	}
	if len(item.Tags) != 2 || item.Tags[0] != "power" || item.Tags[1] != "vendor" {
		t.Errorf("expected normalised tags [power vendor], got %v", item.Tags)
	}

	list, total, err := svc.List(ctx, cochin, &dto.VaultListRequest{Tag: "Power"})
	if err != nil || total != 1 || len(list) != 1 {
		t.Errorf("expected tag filter to find the item, got %d %v", total, err)
	}
	_, total, _ = svc.List(ctx, branch.NewScope(branch.Kannur), &dto.VaultListRequest{})
	if total != 0 {
		t.Errorf("kannur must not see cochin items, got %d", total)
	}

	title := "UPS vendor (new)"
	updated, err := svc.Update(ctx, cochin, item.ID, &dto.UpdateVaultItemRequest{Title: &title}, "u1")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != title || len(updated.Tags) != 2 {
		t.Errorf("unexpected update %+v", updated)
	}

	if err := svc.Delete(ctx, cochin, item.ID, "u1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, cochin, item.ID); !errors.Is(err, ErrVaultItemNotFound) {
		t.Errorf("expected ErrVaultItemNotFound, got %v", err)
	}
}
