package service

import (
	"testing"
	"time"

	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/apperr"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/model"
)

func createTestBounty(t *testing.T, svc *BountyService, creatorID, workspaceID uint, title string) *model.Bounty {
	t.Helper()

	start := time.Now()
	end := start.Add(14 * 24 * time.Hour)
	bounty, err := svc.Create(creatorID, workspaceID, title, "https://github.com/acme/repo", 500, start, end, "fix it")
	if err != nil {
		t.Fatalf("create bounty %q: %v", title, err)
	}
	return bounty
}

func TestCreateBountyRequiresWorkspaceOwnership(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	wsSvc := NewWorkspaceService(db)
	svc := NewBountyService(db)

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	other := createTestUser(t, db, "Other", "other@example.com")

	ws, err := wsSvc.Create(owner.ID, "Acme", "")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}

	now := time.Now()
	if _, err := svc.Create(other.ID, ws.ID, "fix", "r", 100, now, now, ""); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("create by non-owner: err = %v, want forbidden", err)
	}

	bounty := createTestBounty(t, svc, owner.ID, ws.ID, "fix")
	if bounty.Status != model.BountyStatusPending {
		t.Fatalf("new bounty status = %q, want %q", bounty.Status, model.BountyStatusPending)
	}
}

func TestBountyStatusLifecycle(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	wsSvc := NewWorkspaceService(db)
	svc := NewBountyService(db)

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	other := createTestUser(t, db, "Other", "other@example.com")

	ws, err := wsSvc.Create(owner.ID, "Acme", "")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	bounty := createTestBounty(t, svc, owner.ID, ws.ID, "fix")

	// only the creator may transition
	got, err := svc.UpdateStatus(other.ID, bounty.ID, model.BountyStatusActive)
	if err != nil || got != nil {
		t.Fatalf("transition by non-creator = (%v, %v), want (nil, nil)", got, err)
	}

	// a made-up status is rejected
	if _, err := svc.UpdateStatus(owner.ID, bounty.ID, "archived"); apperr.From(err).Code != apperr.CodePrecondition {
		t.Fatalf("invalid status: err = %v, want precondition", err)
	}
	// "pending" is the initial state, never a transition target
	if _, err := svc.UpdateStatus(owner.ID, bounty.ID, model.BountyStatusPending); apperr.From(err).Code != apperr.CodePrecondition {
		t.Fatalf("transition to pending: err = %v, want precondition", err)
	}

	updated, err := svc.UpdateStatus(owner.ID, bounty.ID, model.BountyStatusInProgress)
	if err != nil {
		t.Fatalf("transition to inprogress: %v", err)
	}
	if updated.Status != model.BountyStatusInProgress {
		t.Fatalf("status = %q, want inprogress", updated.Status)
	}

	// delete is gated on closed
	if _, err := svc.Delete(owner.ID, bounty.ID); apperr.From(err).Code != apperr.CodePrecondition {
		t.Fatalf("delete open bounty: err = %v, want precondition", err)
	}

	if _, err := svc.UpdateStatus(owner.ID, bounty.ID, model.BountyStatusClosed); err != nil {
		t.Fatalf("close bounty: %v", err)
	}
	deleted, err := svc.Delete(owner.ID, bounty.ID)
	if err != nil || deleted == nil {
		t.Fatalf("delete closed bounty = (%v, %v)", deleted, err)
	}
	gone, err := svc.GetByID(bounty.ID)
	if err != nil || gone != nil {
		t.Fatalf("get after delete = (%v, %v), want (nil, nil)", gone, err)
	}
}

func TestBountyParticipants(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	wsSvc := NewWorkspaceService(db)
	svc := NewBountyService(db)

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	hunter := createTestUser(t, db, "Hunter", "hunter@example.com")

	ws, err := wsSvc.Create(owner.ID, "Acme", "")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	bounty := createTestBounty(t, svc, owner.ID, ws.ID, "fix")

	// creator may not join their own bounty
	if _, err := svc.AddParticipant(bounty.ID, owner.ID); apperr.From(err).Code != apperr.CodePrecondition {
		t.Fatalf("creator self-join: err = %v, want precondition", err)
	}

	if _, err := svc.AddParticipant(9999, hunter.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("join unknown bounty: err = %v, want not found", err)
	}
	if _, err := svc.AddParticipant(bounty.ID, 9999); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("join by unknown user: err = %v, want not found", err)
	}

	joined, err := svc.AddParticipant(bounty.ID, hunter.ID)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if len(joined.Participants) != 1 || joined.Participants[0].ID != hunter.ID {
		t.Fatalf("participants = %+v", joined.Participants)
	}

	if _, err := svc.AddParticipant(bounty.ID, hunter.ID); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("double join: err = %v, want conflict", err)
	}

	left, err := svc.RemoveParticipant(bounty.ID, hunter.ID)
	if err != nil {
		t.Fatalf("leave: %v", err)
	}
	if len(left.Participants) != 0 {
		t.Fatalf("participants after leave = %+v", left.Participants)
	}

	again, err := svc.RemoveParticipant(bounty.ID, hunter.ID)
	if err != nil || again != nil {
		t.Fatalf("leave when not joined = (%v, %v), want (nil, nil)", again, err)
	}
}

func TestDeleteAllCreatedByOnlyRemovesClosed(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	wsSvc := NewWorkspaceService(db)
	svc := NewBountyService(db)

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	ws, err := wsSvc.Create(owner.ID, "Acme", "")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}

	open := createTestBounty(t, svc, owner.ID, ws.ID, "open")
	closed1 := createTestBounty(t, svc, owner.ID, ws.ID, "closed-1")
	closed2 := createTestBounty(t, svc, owner.ID, ws.ID, "closed-2")
	for _, b := range []*model.Bounty{closed1, closed2} {
		if _, err := svc.UpdateStatus(owner.ID, b.ID, model.BountyStatusClosed); err != nil {
			t.Fatalf("close %d: %v", b.ID, err)
		}
	}

	removed, err := svc.DeleteAllCreatedBy(owner.ID)
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}

	remaining, err := svc.ListCreatedBy(owner.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != open.ID {
		t.Fatalf("remaining = %+v, want only the open bounty", remaining)
	}
}

func TestUpdateBountyPartialAndScope(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	wsSvc := NewWorkspaceService(db)
	svc := NewBountyService(db)

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	other := createTestUser(t, db, "Other", "other@example.com")

	ws, err := wsSvc.Create(owner.ID, "Acme", "")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	bounty := createTestBounty(t, svc, owner.ID, ws.ID, "fix")

	got, err := svc.Update(other.ID, bounty.ID, map[string]interface{}{"amount": 900})
	if err != nil || got != nil {
		t.Fatalf("update by non-creator = (%v, %v), want (nil, nil)", got, err)
	}

	updated, err := svc.Update(owner.ID, bounty.ID, map[string]interface{}{"amount": 900.0})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Amount != 900 || updated.Title != "fix" {
		t.Fatalf("after partial update: amount=%v title=%q", updated.Amount, updated.Title)
	}
}
