package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kennywood/park-api/pkg/jwt"
	"github.com/sirupsen/logrus"
)

// UserContextKey is the key used to store user information in Gin context
const UserContextKey = "user"

// UserContext represents the authenticated user's information
type UserContext struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

func abortUnauthorized(c *gin.Context, errCode, message, code string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   errCode,
		"message": message,
		"code":    code,
	})
}

// AuthMiddleware creates a middleware that validates JWT access tokens
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logrus.WithFields(logrus.Fields{
			"path": c.Request.URL.Path,
			"ip":   c.ClientIP(),
		})

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("auth failed: missing authorization header")
			abortUnauthorized(c, "unauthorized", "Authorization header is required", "MISSING_AUTH_HEADER")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("auth failed: invalid authorization header format")
			abortUnauthorized(c, "unauthorized", "Invalid authorization header format. Expected: Bearer <token>", "INVALID_AUTH_FORMAT")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			log.Warn("auth failed: empty token")
			abortUnauthorized(c, "unauthorized", "Token cannot be empty", "INVALID_AUTH_FORMAT")
			return
		}

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			if jwt.IsExpiredError(err) {
				log.WithError(err).Info("auth failed: token expired")
				abortUnauthorized(c, "token_expired", "Access token has expired. Please refresh your token.", "TOKEN_EXPIRED")
			} else {
				log.WithError(err).Warn("auth failed: invalid token")
				abortUnauthorized(c, "invalid_token", "Invalid access token", "INVALID_TOKEN")
			}
			return
		}

		c.Set(UserContextKey, UserContext{
			UserID:   claims.UserID,
			Username: claims.Username,
		})

		c.Next()
	}
}

// GetUserContext retrieves the user context from Gin context
func GetUserContext(c *gin.Context) (UserContext, bool) {
	value, exists := c.Get(UserContextKey)
	if !exists {
		return UserContext{}, false
	}

	userCtx, ok := value.(UserContext)
	if !ok {
		return UserContext{}, false
	}

	return userCtx, true
}
