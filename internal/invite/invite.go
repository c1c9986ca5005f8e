// Package invite issues and consumes workspace invitation tokens. Tokens are
// HS256-signed, expire, and are single-use: the jti is marked consumed the
// first time the token is accepted.
package invite

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/apperr"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Claims struct {
	WorkspaceID uint   `json:"workspace_id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Department  string `json:"department"`
	jwt.RegisteredClaims
}

// UsedStore records consumed jtis. MarkUsed returns false when the jti was
// already consumed.
type UsedStore interface {
	MarkUsed(ctx context.Context, jti string, ttl time.Duration) (bool, error)
}

// RedisStore enforces single use across instances with SETNX.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) MarkUsed(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, "invite:used:"+jti, 1, ttl).Result()
}

// MemoryStore is the single-instance fallback, also used in tests.
type MemoryStore struct {
	mu   sync.Mutex
	used map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{used: make(map[string]struct{})}
}

func (s *MemoryStore) MarkUsed(_ context.Context, jti string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.used[jti]; ok {
		return false, nil
	}
	s.used[jti] = struct{}{}
	return true, nil
}

type Issuer struct {
	secret string
	ttl    time.Duration
	used   UsedStore
}

func NewIssuer(secret string, ttl time.Duration, used UsedStore) *Issuer {
	return &Issuer{secret: secret, ttl: ttl, used: used}
}

// Issue signs an invitation for {workspace, email, role, department}.
func (i *Issuer) Issue(workspaceID uint, email, role, department string) (string, error) {
	now := time.Now()
	claims := &Claims{
		WorkspaceID: workspaceID,
		Email:       email,
		Role:        role,
		Department:  department,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "thirdspace-invite",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(i.secret))
	if err != nil {
		return "", fmt.Errorf("sign invitation: %w", err)
	}
	return signed, nil
}

// Consume verifies the signature and expiry and burns the jti. A second
// consume of the same token fails with a conflict.
func (i *Issuer) Consume(ctx context.Context, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(i.secret), nil
	})
	if err != nil {
		return nil, apperr.Unauthorized("invitation is invalid or expired")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperr.Unauthorized("invitation is invalid or expired")
	}

	// Keep the used marker around at least as long as the token could
	// still verify.
	ttl := time.Until(claims.ExpiresAt.Time) + time.Hour
	fresh, err := i.used.MarkUsed(ctx, claims.ID, ttl)
	if err != nil {
		return nil, fmt.Errorf("consume invitation: %w", err)
	}
	if !fresh {
		return nil, apperr.Conflict("invitation has already been used")
	}
	return claims, nil
}
