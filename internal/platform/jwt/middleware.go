package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"devfolio_backend/internal/api"
	"devfolio_backend/internal/feature/auth/domain/entity"
)

// ContextUserID は認証済みユーザーIDを保持するgin.Contextのキーです。
const ContextUserID = "userID"

// AccessVerifier validates access tokens.
type AccessVerifier interface {
	VerifyAccessToken(token string) (entity.TokenPayload, error)
}

// AuthRequired returns a Gin middleware function that validates the bearer access token
// and restricts access to authenticated users only.
// It never consults the user store, so it stays stateless per request.
func AuthRequired(v AccessVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
			return
		}

		payload, err := v.VerifyAccessToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid or expired token"})
			return
		}

		setIdentity(c, payload)
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid bearer token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(v AccessVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, ok := bearerToken(c); ok {
			if payload, err := v.VerifyAccessToken(tokenStr); err == nil {
				setIdentity(c, payload)
			}
		}
		c.Next()
	}
}

// UserIDFrom returns the authenticated user ID, or "" for anonymous requests.
func UserIDFrom(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func bearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return token, token != ""
}

func setIdentity(c *gin.Context, p entity.TokenPayload) {
	c.Set(ContextUserID, p.UserID)
}
