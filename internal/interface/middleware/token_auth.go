package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mzkhan/auth-api/pkg/helpers"
	"github.com/mzkhan/auth-api/pkg/response"
)

// Context keys set by the auth middlewares.
const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
	CtxUserRoleKey  = "userRole"
)

// BearerToken extracts the token from the Authorization header. Clients
// send "bearer <jwt>" (lowercase scheme, kept for compatibility); any
// casing of the scheme is accepted, as is a bare token.
func BearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}

// AccessAuth validates the access token and injects the caller's identity
// into the Gin context. Missing token -> 401, failed verification -> 403.
func AccessAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortError(c, http.StatusForbidden, "access denied", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Set(CtxUserRoleKey, claims.Role)
		c.Next()
	}
}

// RefreshAuth guards endpoints that require a valid refresh token, such as
// reset-password. Both a missing and an invalid token yield 401.
func RefreshAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing refresh token", nil)
			return
		}
		claims, err := jwt.ParseRefreshToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid refresh token", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Set(CtxUserRoleKey, claims.Role)
		c.Next()
	}
}
