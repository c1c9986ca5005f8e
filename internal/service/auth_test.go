package service

import (
	"testing"
	"time"

	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/apperr"
	jwtpkg "github.com/0xThirdspace/Thirdspace-Backend-Api/pkg/jwt"
)

func TestSignUp(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", 24)

	if _, err := svc.SignUp("", "a@example.com", "pw"); !apperr.IsKind(err, apperr.KindInvalid) {
		t.Fatalf("empty name: err = %v, want invalid", err)
	}

	user, err := svc.SignUp("Ada", "ada@example.com", "hunter2")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if user.Password == "hunter2" {
		t.Fatal("password stored in plaintext")
	}

	if _, err := svc.SignUp("Ada Again", "ada@example.com", "other"); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("duplicate email: err = %v, want conflict", err)
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", 24)

	if _, err := svc.SignUp("Ada", "ada@example.com", "hunter2"); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	if _, _, _, err := svc.Login("nobody@example.com", "hunter2"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("unknown email: err = %v, want not found", err)
	}
	if _, _, _, err := svc.Login("ada@example.com", "wrong"); !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("wrong password: err = %v, want unauthorized", err)
	}

	user, token, expireAt, err := svc.Login("ada@example.com", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if !expireAt.After(time.Now()) {
		t.Fatalf("expireAt = %v, already past", expireAt)
	}

	claims, err := jwtpkg.ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("token user = %d, want %d", claims.UserID, user.ID)
	}
}

func TestGetUserSentinels(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", 24)

	got, err := svc.GetUserByID(9999)
	if err != nil || got != nil {
		t.Fatalf("get absent user = (%v, %v), want (nil, nil)", got, err)
	}
	got, err = svc.GetUserByEmail("nobody@example.com")
	if err != nil || got != nil {
		t.Fatalf("get absent email = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestSearchUsers(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", 24)

	createTestUser(t, db, "Ada Lovelace", "ada@example.com")
	createTestUser(t, db, "Grace Hopper", "grace@example.com")
	createTestUser(t, db, "Alan Turing", "alan@bletchley.example.com")

	byName, err := svc.SearchUsers("Grace", 10)
	if err != nil || len(byName) != 1 || byName[0].Email != "grace@example.com" {
		t.Fatalf("search by name = (%v, %v)", byName, err)
	}

	byEmail, err := svc.SearchUsers("bletchley", 10)
	if err != nil || len(byEmail) != 1 || byEmail[0].Name != "Alan Turing" {
		t.Fatalf("search by email = (%v, %v)", byEmail, err)
	}

	limited, err := svc.SearchUsers("example.com", 2)
	if err != nil || len(limited) != 2 {
		t.Fatalf("limited search = (%v, %v), want 2 results", limited, err)
	}
}
