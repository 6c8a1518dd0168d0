package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kennywood/park-api/internal/models"
)

// ParkAreaRepository handles database operations for park_areas table
type ParkAreaRepository struct {
	db DB
}

// NewParkAreaRepository creates a new ParkAreaRepository
func NewParkAreaRepository(db DB) *ParkAreaRepository {
	return &ParkAreaRepository{db: db}
}

// GetByID retrieves a park area by ID
func (r *ParkAreaRepository) GetByID(areaID int64) (*models.ParkArea, error) {
	query := `
		SELECT id, name, theme
		FROM park_areas
		WHERE id = $1
	`

	area := &models.ParkArea{}
	if err := r.db.Get(area, query, areaID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFound("ParkArea", areaID)
		}
		return nil, fmt.Errorf("failed to fetch park area: %w", err)
	}

	return area, nil
}
