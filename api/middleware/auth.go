package middleware

import (
	"net/http"
	"strings"

	"bookstore/api/response"
	"bookstore/domain/user"
	"bookstore/pkg/auth"

	"github.com/gin-gonic/gin"
)

// principalKey is the gin context key holding the authenticated principal.
const principalKey = "principal"

// Authenticate parses a Bearer token when present and stores the principal
// in the context. Requests without a token pass through anonymously;
// RequireAuth and RequireAdmin decide what needs one.
func Authenticate(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			abortUnauthorized(c, "malformed authorization header")
			return
		}

		principal, err := tokens.ParseToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentPrincipal(c); !ok {
			abortUnauthorized(c, "authentication required")
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests whose principal is not an admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			abortUnauthorized(c, "authentication required")
			return
		}
		if !principal.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Response{
				Success:   false,
				Error:     "FORBIDDEN",
				Message:   "admin access required",
				Code:      http.StatusForbidden,
				RequestID: response.GetRequestID(c),
			})
			return
		}
		c.Next()
	}
}

// CurrentPrincipal returns the authenticated principal, if any.
func CurrentPrincipal(c *gin.Context) (user.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return user.Principal{}, false
	}
	principal, ok := value.(user.Principal)
	return principal, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, response.Response{
		Success:   false,
		Error:     "UNAUTHORIZED",
		Message:   message,
		Code:      http.StatusUnauthorized,
		RequestID: response.GetRequestID(c),
	})
}
