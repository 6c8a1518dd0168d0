package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/kennywood/park-api/internal/database"
	"github.com/kennywood/park-api/internal/services"
	"github.com/kennywood/park-api/pkg/jwt"
	"github.com/kennywood/park-api/pkg/validator"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var userColumns = []string{
	"id", "username", "password_hash", "first_name", "last_name", "email",
	"is_active", "created_at", "updated_at",
}

func setupAuthRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *jwt.Service, uuid.UUID) {
	db, mock := setupTestDB(t)
	jwtService := jwt.NewService("test-secret", "test-refresh-secret", time.Hour, 7*24*time.Hour)
	handler := newAuthHandler(db, jwtService)
	userID := uuid.New()

	router := gin.New()
	auth := router.Group("/api/v1/auth")
	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)
	auth.POST("/refresh", handler.RefreshToken)
	auth.GET("/me", withUser(userID), handler.GetProfile)

	return router, mock, jwtService, userID
}

func newAuthHandler(db *sqlx.DB, jwtService *jwt.Service) *AuthHandler {
	return NewAuthHandler(
		jwtService,
		validator.NewCredentialsValidator(),
		services.NewAuditService(db, false),
		database.NewUserRepository(db),
		database.NewCustomerRepository(db),
		bcrypt.MinCost,
	)
}

func hashPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, mock, jwtService, _ := setupAuthRouter(t)
		now := time.Now()

		mock.ExpectQuery(`WITH new_user AS`).
			WithArgs(sqlmock.AnyArg(), "jdoe", sqlmock.AnyArg(), "John", "Doe", "john@example.com", 3).
			WillReturnRows(sqlmock.NewRows([]string{"id", "is_active", "created_at", "updated_at"}).
				AddRow(int64(1), true, now, now))

		w := performRequest(router, http.MethodPost, "/api/v1/auth/register", RegisterRequest{
			Username:      "jdoe",
			Password:      "rollercoaster42",
			FirstName:     "John",
			LastName:      "Doe",
			Email:         "John@Example.com",
			FamilyMembers: 3,
		})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var response AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.NotNil(t, response.TokenPair)
		require.NotNil(t, response.User)
		assert.Equal(t, "jdoe", response.User.Username)
		assert.Equal(t, "John Doe", response.User.FullName)
		assert.Equal(t, int64(1), response.User.CustomerID)
		assert.Equal(t, 3, response.User.FamilyMembers)

		claims, err := jwtService.ValidateAccessToken(response.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, response.User.ID, claims.UserID.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate username", func(t *testing.T) {
		router, mock, _, _ := setupAuthRouter(t)

		mock.ExpectQuery(`WITH new_user AS`).
			WillReturnError(&pq.Error{Code: "23505"})

		w := performRequest(router, http.MethodPost, "/api/v1/auth/register", RegisterRequest{
			Username: "jdoe",
			Password: "rollercoaster42",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "conflict", decodeError(t, w).Error)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Weak password", func(t *testing.T) {
		router, mock, _, _ := setupAuthRouter(t)

		w := performRequest(router, http.MethodPost, "/api/v1/auth/register", RegisterRequest{
			Username: "jdoe",
			Password: "short",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w).Message, "password")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Invalid username", func(t *testing.T) {
		router, _, _, _ := setupAuthRouter(t)

		w := performRequest(router, http.MethodPost, "/api/v1/auth/register", RegisterRequest{
			Username: "john doe",
			Password: "rollercoaster42",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w).Message, "username")
	})

	t.Run("Negative family members", func(t *testing.T) {
		router, _, _, _ := setupAuthRouter(t)

		w := performRequest(router, http.MethodPost, "/api/v1/auth/register", RegisterRequest{
			Username:      "jdoe",
			Password:      "rollercoaster42",
			FamilyMembers: -1,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, mock, jwtService, userID := setupAuthRouter(t)
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE username`).
			WithArgs("jdoe").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
				userID.String(), "jdoe", hashPassword(t, "rollercoaster42"), "John", "Doe", "", true, now, now,
			))

		w := performRequest(router, http.MethodPost, "/api/v1/auth/login", LoginRequest{Username: "jdoe", Password: "rollercoaster42"})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var response AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.NotNil(t, response.TokenPair)
		assert.Equal(t, "Bearer", response.TokenType)

		claims, err := jwtService.ValidateRefreshToken(response.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Wrong password", func(t *testing.T) {
		router, mock, _, userID := setupAuthRouter(t)
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE username`).
			WithArgs("jdoe").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
				userID.String(), "jdoe", hashPassword(t, "rollercoaster42"), "", "", "", true, now, now,
			))

		w := performRequest(router, http.MethodPost, "/api/v1/auth/login", LoginRequest{Username: "jdoe", Password: "guess12345"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "unable to log in with provided credentials", decodeError(t, w).Message)
	})

	t.Run("Unknown user", func(t *testing.T) {
		router, mock, _, _ := setupAuthRouter(t)

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE username`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		w := performRequest(router, http.MethodPost, "/api/v1/auth/login", LoginRequest{Username: "ghost", Password: "whatever1"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Inactive user", func(t *testing.T) {
		router, mock, _, userID := setupAuthRouter(t)
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE username`).
			WithArgs("jdoe").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
				userID.String(), "jdoe", hashPassword(t, "rollercoaster42"), "", "", "", false, now, now,
			))

		w := performRequest(router, http.MethodPost, "/api/v1/auth/login", LoginRequest{Username: "jdoe", Password: "rollercoaster42"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Missing password", func(t *testing.T) {
		router, mock, _, _ := setupAuthRouter(t)

		w := performRequest(router, http.MethodPost, "/api/v1/auth/login", `{"username": "jdoe"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRefreshToken(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, mock, jwtService, userID := setupAuthRouter(t)
		now := time.Now()

		refreshToken, err := jwtService.GenerateRefreshToken(userID, "jdoe")
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE id`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
				userID.String(), "jdoe", "hash", "", "", "", true, now, now,
			))

		w := performRequest(router, http.MethodPost, "/api/v1/auth/refresh", RefreshTokenRequest{RefreshToken: refreshToken})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var response AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.NotNil(t, response.TokenPair)
		_, err = jwtService.ValidateAccessToken(response.AccessToken)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Access token rejected", func(t *testing.T) {
		router, mock, jwtService, userID := setupAuthRouter(t)

		accessToken, err := jwtService.GenerateAccessToken(userID, "jdoe")
		require.NoError(t, err)

		w := performRequest(router, http.MethodPost, "/api/v1/auth/refresh", RefreshTokenRequest{RefreshToken: accessToken})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "invalid or expired refresh token", decodeError(t, w).Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("User deleted", func(t *testing.T) {
		router, mock, jwtService, userID := setupAuthRouter(t)

		refreshToken, err := jwtService.GenerateRefreshToken(userID, "jdoe")
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE id`).
			WithArgs(userID).
			WillReturnError(sql.ErrNoRows)

		w := performRequest(router, http.MethodPost, "/api/v1/auth/refresh", RefreshTokenRequest{RefreshToken: refreshToken})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Missing token", func(t *testing.T) {
		router, _, _, _ := setupAuthRouter(t)

		w := performRequest(router, http.MethodPost, "/api/v1/auth/refresh", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, mock, _, userID := setupAuthRouter(t)
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE id`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
				userID.String(), "jdoe", "hash", "John", "Doe", "john@example.com", true, now, now,
			))
		expectCustomer(mock, userID, 9)

		w := performRequest(router, http.MethodGet, "/api/v1/auth/me", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var response ProfileResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, userID.String(), response.ID)
		assert.Equal(t, int64(9), response.CustomerID)
		assert.Equal(t, 2, response.FamilyMembers)
		assert.NotContains(t, w.Body.String(), "hash")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("User not found", func(t *testing.T) {
		router, mock, _, userID := setupAuthRouter(t)

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE id`).
			WithArgs(userID).
			WillReturnError(sql.ErrNoRows)

		w := performRequest(router, http.MethodGet, "/api/v1/auth/me", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User matching query does not exist.", decodeError(t, w).Message)
	})
}
