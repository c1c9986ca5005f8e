package jwt

import (
	"testing"
	"time"
)

func TestGenerateAndParseToken(t *testing.T) {
	t.Parallel()

	token, expireAt, err := GenerateToken("secret", 7, 24)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !expireAt.After(time.Now().Add(23 * time.Hour)) {
		t.Fatalf("expireAt = %v, want ~24h out", expireAt)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("user id = %d, want 7", claims.UserID)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := GenerateToken("secret", 7, 24)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken("other", token); err == nil {
		t.Fatal("parse with wrong secret succeeded")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	t.Parallel()

	if _, err := ParseToken("secret", "not.a.token"); err == nil {
		t.Fatal("parse of garbage succeeded")
	}
}
