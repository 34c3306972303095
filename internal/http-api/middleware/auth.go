package middleware

import (
	"errors"
	"net/http"
	"strings"

	"bookstore/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// Missing, expired and malformed tokens get distinct messages so clients
// can tell "log in" apart from "log in again".
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		identity, err := authService.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			}
			c.Abort()
			return
		}

		c.Set(identityKey, *identity)
		c.Next()
	}
}

// CurrentIdentity returns the identity placed in the context by
// AuthMiddleware.
func CurrentIdentity(c *gin.Context) (service.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return service.Identity{}, false
	}
	identity, ok := v.(service.Identity)
	return identity, ok
}

// RequireRole checks if the caller has the given role. Role comparison is
// case-insensitive. Failing the check is 403, distinct from the 401 the
// auth middleware produces.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "identity not found in request"})
			c.Abort()
			return
		}

		if !identity.HasRole(requiredRole) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "insufficient permissions",
				"required": requiredRole,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireManager is a convenience function for requiring the manager role
func RequireManager() gin.HandlerFunc {
	return RequireRole("manager")
}

// RequireCustomer is a convenience function for requiring the customer role
func RequireCustomer() gin.HandlerFunc {
	return RequireRole("customer")
}
