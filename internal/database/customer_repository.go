package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kennywood/park-api/internal/models"
)

// CustomerRepository handles database operations for customers
type CustomerRepository struct {
	db DB
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// GetByUserID resolves the customer profile bound to an authenticated user
func (r *CustomerRepository) GetByUserID(userID uuid.UUID) (*models.Customer, error) {
	query := `
		SELECT id, user_id, family_members
		FROM customers
		WHERE user_id = $1
	`

	customer := &models.Customer{}
	err := r.db.QueryRow(query, userID).Scan(&customer.ID, &customer.UserID, &customer.FamilyMembers)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFound("Customer", userID)
		}
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}

	return customer, nil
}
