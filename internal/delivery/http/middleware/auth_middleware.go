package middleware

import (
	"net/http"
	"strings"

	"jobsite-backend/internal/delivery/http/response"
	"jobsite-backend/internal/domain"
	"jobsite-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the access token and loads the account it
// belongs to. The user is read back from the database on every request so
// role changes and deactivations take effect without waiting for token
// expiry.
func AuthMiddleware(tokens *token.Service, userRepo domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		claims, err := tokens.ValidateAccess(tokenString)
		if err != nil {
			msg := "Invalid token"
			if err == token.ErrTokenExpired {
				msg = "Token expired"
			}
			response.Error(c, http.StatusUnauthorized, msg, nil)
			c.Abort()
			return
		}

		user, err := userRepo.GetByUID(c.Request.Context(), claims.UserUID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}
		if !user.IsActive() {
			response.Error(c, http.StatusUnauthorized, "User account is disabled", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUser), user)
		c.Set(string(domain.KeyUserUID), user.UID)
		c.Set(string(domain.KeyUserEmail), user.Email)
		c.Set(string(domain.KeyUserRole), user.Role)
		c.Next()
	}
}

// RequireRole rejects requests whose authenticated user does not hold the
// given role. Must run after AuthMiddleware.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
			c.Abort()
			return
		}
		if user.Role != role {
			response.Error(c, http.StatusForbidden, "Access denied", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by AuthMiddleware, or
// nil when the request is unauthenticated.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(string(domain.KeyUser))
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

func extractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie("auth_token"); err == nil {
		return cookie
	}
	return ""
}
