package service

import (
	"testing"

	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/apperr"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/model"
)

func TestAddUserToWorkspace(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	wsSvc := NewWorkspaceService(db)
	svc := NewTeamService(db)

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	invited := createTestUser(t, db, "Invited", "invited@example.com")
	stranger := createTestUser(t, db, "Stranger", "stranger@example.com")

	ws, err := wsSvc.Create(owner.ID, "Acme", "")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}

	// unknown email
	if _, err := svc.AddUserToWorkspace(ws.ID, "ghost@example.com", "member", "eng", invited.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("unknown email: err = %v, want not found", err)
	}

	// unknown workspace
	if _, err := svc.AddUserToWorkspace(9999, invited.Email, "member", "eng", invited.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("unknown workspace: err = %v, want not found", err)
	}

	// only the invited person may accept
	if _, err := svc.AddUserToWorkspace(ws.ID, invited.Email, "member", "eng", stranger.ID); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("accept by wrong identity: err = %v, want forbidden", err)
	}

	member, err := svc.AddUserToWorkspace(ws.ID, invited.Email, "member", "eng", invited.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if member.Role != "member" || member.Department != "eng" {
		t.Fatalf("membership = %+v", member)
	}

	// already a member
	if _, err := svc.AddUserToWorkspace(ws.ID, invited.Email, "member", "eng", invited.ID); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("second accept: err = %v, want conflict", err)
	}
}

func TestGetUserTeamRole(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	wsSvc := NewWorkspaceService(db)
	svc := NewTeamService(db)

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	outsider := createTestUser(t, db, "Out", "out@example.com")

	ws, err := wsSvc.Create(owner.ID, "Acme", "")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}

	role, err := svc.GetUserTeamRole(ws.ID, owner.ID)
	if err != nil {
		t.Fatalf("owner role: %v", err)
	}
	if role != model.RoleOwner {
		t.Fatalf("owner role = %q, want %q", role, model.RoleOwner)
	}

	if _, err := svc.GetUserTeamRole(ws.ID, outsider.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("non-member role: err = %v, want not found", err)
	}
	if _, err := svc.GetUserTeamRole(ws.ID, 9999); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("unknown user: err = %v, want not found", err)
	}
	if _, err := svc.GetUserTeamRole(9999, owner.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("unknown workspace: err = %v, want not found", err)
	}
}

func TestGetUserTeamRoleStoreFailure(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewTeamService(db)
	closeTestDB(t, db)

	_, err := svc.GetUserTeamRole(1, 1)
	if err == nil {
		t.Fatal("role lookup on a failing store succeeded")
	}
	if apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("store failure misread as not found: %v", err)
	}
}

func TestRemoveAllMembersKeepsOwner(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	wsSvc := NewWorkspaceService(db)
	svc := NewTeamService(db)

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	a := createTestUser(t, db, "A", "a@example.com")
	b := createTestUser(t, db, "B", "b@example.com")

	ws, err := wsSvc.Create(owner.ID, "Acme", "")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	for _, u := range []*model.User{a, b} {
		if _, err := svc.AddUserToWorkspace(ws.ID, u.Email, "member", "eng", u.ID); err != nil {
			t.Fatalf("add %s: %v", u.Email, err)
		}
	}

	removed, err := svc.RemoveAllMembers(ws.ID)
	if err != nil {
		t.Fatalf("remove all: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}

	var members []model.TeamMember
	if err := db.Where("workspace_id = ?", ws.ID).Find(&members).Error; err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 1 || members[0].Role != model.RoleOwner {
		t.Fatalf("roster after bulk delete = %+v, want only the owner", members)
	}
}

func TestUpdateMember(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	wsSvc := NewWorkspaceService(db)
	svc := NewTeamService(db)

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	a := createTestUser(t, db, "A", "a@example.com")

	ws, err := wsSvc.Create(owner.ID, "Acme", "")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	if _, err := svc.AddUserToWorkspace(ws.ID, a.Email, "member", "eng", a.ID); err != nil {
		t.Fatalf("add member: %v", err)
	}

	dept := "design"
	updated, err := svc.UpdateMember(ws.ID, a.ID, nil, &dept)
	if err != nil {
		t.Fatalf("update member: %v", err)
	}
	var reloaded model.TeamMember
	if err := db.First(&reloaded, updated.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Role != "member" || reloaded.Department != "design" {
		t.Fatalf("after partial update: role=%q department=%q", reloaded.Role, reloaded.Department)
	}

	// absent membership
	got, err := svc.UpdateMember(ws.ID, 9999, nil, &dept)
	if err != nil || got != nil {
		t.Fatalf("update absent membership = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestRemoveMember(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	wsSvc := NewWorkspaceService(db)
	svc := NewTeamService(db)

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	a := createTestUser(t, db, "A", "a@example.com")

	ws, err := wsSvc.Create(owner.ID, "Acme", "")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	if _, err := svc.AddUserToWorkspace(ws.ID, a.Email, "member", "eng", a.ID); err != nil {
		t.Fatalf("add member: %v", err)
	}

	member, err := svc.RemoveMember(ws.ID, a.ID)
	if err != nil || member == nil {
		t.Fatalf("remove member = (%v, %v)", member, err)
	}

	again, err := svc.RemoveMember(ws.ID, a.ID)
	if err != nil || again != nil {
		t.Fatalf("remove absent member = (%v, %v), want (nil, nil)", again, err)
	}
}
