package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/0xThirdspace/Thirdspace-Backend-Api/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// these cases never reach the user lookup, so no database is wired
func performAuth(t *testing.T, token string) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware("test-secret", nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMissingToken(t *testing.T) {
	t.Parallel()

	w := performAuth(t, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "40101") {
		t.Fatalf("body = %s, want code 40101", w.Body.String())
	}
}

func TestAuthExpiredToken(t *testing.T) {
	t.Parallel()

	token, _, err := jwt.GenerateToken("test-secret", 7, -1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	w := performAuth(t, token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "40102") {
		t.Fatalf("body = %s, want code 40102", w.Body.String())
	}
}

func TestAuthInvalidToken(t *testing.T) {
	t.Parallel()

	w := performAuth(t, "not.a.token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "40103") {
		t.Fatalf("body = %s, want code 40103", w.Body.String())
	}
}
