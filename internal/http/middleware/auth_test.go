package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/getcarekorea/content-engine/internal/platform/logger"
)

func signToken(t *testing.T, secret, role string, sub uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub.String(),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newAuthRouter(t *testing.T) (*gin.Engine, *AdminAuth) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	auth, err := NewAdminAuth(log)
	if err != nil {
		t.Fatalf("NewAdminAuth: %v", err)
	}

	r := gin.New()
	r.GET("/protected", auth.RequireAdmin(), func(c *gin.Context) {
		if id := AdminID(c); id != nil {
			c.String(http.StatusOK, id.String())
			return
		}
		c.String(http.StatusOK, "no-admin-id")
	})
	return r, auth
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAdminMissingToken(t *testing.T) {
	r, _ := newAuthRouter(t)
	if w := doRequest(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireAdminBadSignature(t *testing.T) {
	r, _ := newAuthRouter(t)
	token := signToken(t, "wrong-secret", "admin", uuid.New())
	if w := doRequest(r, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireAdminWrongRole(t *testing.T) {
	r, _ := newAuthRouter(t)
	token := signToken(t, "test-secret", "editor", uuid.New())
	if w := doRequest(r, "Bearer "+token); w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestRequireAdminSetsAdminID(t *testing.T) {
	r, _ := newAuthRouter(t)
	admin := uuid.New()
	token := signToken(t, "test-secret", "admin", admin)

	w := doRequest(r, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", w.Code, w.Body.String())
	}
	if w.Body.String() != admin.String() {
		t.Fatalf("admin id = %q, want %q", w.Body.String(), admin)
	}
}
