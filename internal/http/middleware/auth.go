package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/getcarekorea/content-engine/internal/http/response"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
)

// AdminIDKey is the gin context key holding the authenticated admin's id.
const AdminIDKey = "admin_id"

type AdminAuth struct {
	log    *logger.Logger
	secret []byte
}

func NewAdminAuth(log *logger.Logger) (*AdminAuth, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		return nil, fmt.Errorf("missing JWT_SECRET")
	}
	return &AdminAuth{log: log.With("middleware", "AdminAuth"), secret: []byte(secret)}, nil
}

// RequireAdmin validates a Bearer token signed with the shared HMAC secret
// and requires the "admin" role claim.
func (a *AdminAuth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearer(c)
		if tokenString == "" {
			abortError(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token")
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			a.log.Debug("token rejected", "error", err)
			abortError(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token")
			return
		}

		if role, _ := claims["role"].(string); role != "admin" {
			abortError(c, http.StatusForbidden, "forbidden", "admin role required")
			return
		}

		if sub, _ := claims["sub"].(string); sub != "" {
			if adminID, err := uuid.Parse(sub); err == nil {
				c.Set(AdminIDKey, adminID)
			}
		}
		c.Next()
	}
}

// AdminID returns the authenticated admin's id from the gin context, nil
// when the token carried no parseable subject.
func AdminID(c *gin.Context) *uuid.UUID {
	v, ok := c.Get(AdminIDKey)
	if !ok {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return nil
	}
	return &id
}

func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}

func abortError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, response.ErrorEnvelope{
		Error: response.APIError{Message: msg, Code: code},
	})
}
