package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kennywood/park-api/internal/models"
)

// UserRepository handles database operations for users and their customer profile
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateCustomerAccount inserts a user and its customer profile in a single
// statement so neither row can exist without the other.
func (r *UserRepository) CreateCustomerAccount(user *models.User, familyMembers int) (*models.Customer, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Username = strings.TrimSpace(user.Username)

	query := `
		WITH new_user AS (
			INSERT INTO users (id, username, password_hash, first_name, last_name, email, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, TRUE)
			RETURNING id, is_active, created_at, updated_at
		)
		INSERT INTO customers (user_id, family_members)
		SELECT id, $7 FROM new_user
		RETURNING id, (SELECT is_active FROM new_user), (SELECT created_at FROM new_user), (SELECT updated_at FROM new_user)
	`

	customer := &models.Customer{UserID: user.ID, FamilyMembers: familyMembers}
	err := r.db.QueryRow(
		query,
		user.ID, user.Username, user.PasswordHash, user.FirstName, user.LastName, user.Email,
		familyMembers,
	).Scan(&customer.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &models.ConflictError{Message: "A user with that username already exists."}
		}
		return nil, fmt.Errorf("failed to create customer account: %w", err)
	}

	return customer, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, first_name, last_name, email, is_active, created_at, updated_at
		FROM users
		WHERE username = $1
	`
	return r.getOne(query, strings.TrimSpace(username))
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(userID uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, first_name, last_name, email, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.getOne(query, userID)
}

func (r *UserRepository) getOne(query string, key interface{}) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(query, key).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.Email, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFound("User", key)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}
