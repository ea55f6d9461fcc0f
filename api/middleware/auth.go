package middleware

import (
	"errors"
	"net/http"
	"strings"

	"example.com/packpal/internal/models"
	"example.com/packpal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// contextKey is a type for context keys
type contextKey string

// UserContextKey is where the authenticated user is stored on the
// request context.
const UserContextKey contextKey = "user"

// JWTAuth middleware validates bearer tokens from the Authorization
// header and loads the authenticated user into the context.
func JWTAuth(auth service.AuthService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		// Check if Authorization header is present
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Authorization header required",
				"code":    "UNAUTHORIZED",
			})
			c.Abort()
			return
		}

		// Extract token from header
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid Authorization header format. Expected: 'Bearer {token}'",
				"code":    "UNAUTHORIZED",
			})
			c.Abort()
			return
		}

		user, err := auth.Verify(c.Request.Context(), parts[1])
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, service.ErrExpiredToken) {
				message = "Token expired"
			}
			log.WithError(err).Warn("Token verification failed")
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": message,
				"code":    "UNAUTHORIZED",
			})
			c.Abort()
			return
		}

		// Store the user in the context for later use
		c.Set(string(UserContextKey), user)

		c.Next()
	}
}

// RequireAdmin rejects requests whose authenticated user lacks admin
// capability. Must run after JWTAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil || !user.Role.AdminCapable() {
			c.JSON(http.StatusForbidden, gin.H{
				"message": "Admin access required",
				"code":    "FORBIDDEN",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserFromContext retrieves the authenticated user from the context
func GetUserFromContext(c *gin.Context) (*models.User, error) {
	userVal, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil, errors.New("user not found in context")
	}

	user, ok := userVal.(*models.User)
	if !ok {
		return nil, errors.New("user in context has incorrect type")
	}

	return user, nil
}
