package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kennywood/park-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestJWTService() *jwt.Service {
	return jwt.NewService(
		"test-access-secret-key-123456789",
		"test-refresh-secret-key-123456789",
		time.Hour,
		24*time.Hour,
	)
}

func setupProtectedRouter(jwtService *jwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(jwtService), func(c *gin.Context) {
		userCtx, exists := GetUserContext(c)
		if !exists {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":  "success",
			"user_id":  userCtx.UserID,
			"username": userCtx.Username,
		})
	})
	return router
}

func doProtected(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_Success(t *testing.T) {
	jwtService := setupTestJWTService()
	router := setupProtectedRouter(jwtService)

	userID := uuid.New()
	token, err := jwtService.GenerateAccessToken(userID, "jdoe")
	require.NoError(t, err)

	w := doProtected(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), "jdoe")
}

func TestAuthMiddleware_MissingAuthHeader(t *testing.T) {
	router := setupProtectedRouter(setupTestJWTService())

	w := doProtected(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header is required")
	assert.Contains(t, w.Body.String(), "MISSING_AUTH_HEADER")
}

func TestAuthMiddleware_InvalidAuthFormat(t *testing.T) {
	router := setupProtectedRouter(setupTestJWTService())

	tests := []struct {
		name   string
		header string
	}{
		{"Missing Bearer", "some-token"},
		{"Wrong prefix", "Basic some-token"},
		{"Empty Bearer", "Bearer "},
		{"No token", "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doProtected(router, tt.header)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "INVALID_AUTH_FORMAT")
		})
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	jwtService := setupTestJWTService()
	router := setupProtectedRouter(jwtService)

	wrongService := jwt.NewService("wrong-secret-key", "wrong-refresh-secret", time.Hour, 24*time.Hour)
	foreignToken, err := wrongService.GenerateAccessToken(uuid.New(), "jdoe")
	require.NoError(t, err)

	refreshToken, err := jwtService.GenerateRefreshToken(uuid.New(), "jdoe")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"Malformed token", "invalid.token.here"},
		{"Random string", "randomstringnotavalidtoken"},
		{"Wrong secret", foreignToken},
		{"Refresh token as access token", refreshToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doProtected(router, "Bearer "+tt.token)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	expiredService := jwt.NewService(
		"test-access-secret-key-123456789",
		"test-refresh-secret-key-123456789",
		-time.Minute,
		24*time.Hour,
	)
	router := setupProtectedRouter(setupTestJWTService())

	token, err := expiredService.GenerateAccessToken(uuid.New(), "jdoe")
	require.NoError(t, err)

	w := doProtected(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
}

func TestGetUserContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Context exists", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		expectedCtx := UserContext{UserID: uuid.New(), Username: "jdoe"}
		c.Set(UserContextKey, expectedCtx)

		userCtx, exists := GetUserContext(c)
		assert.True(t, exists)
		assert.Equal(t, expectedCtx, userCtx)
	})

	t.Run("Context not found", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		userCtx, exists := GetUserContext(c)
		assert.False(t, exists)
		assert.Equal(t, UserContext{}, userCtx)
	})

	t.Run("Context wrong type", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(UserContextKey, "wrong type")
		userCtx, exists := GetUserContext(c)
		assert.False(t, exists)
		assert.Equal(t, UserContext{}, userCtx)
	})
}
