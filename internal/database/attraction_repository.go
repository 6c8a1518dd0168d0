package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kennywood/park-api/internal/models"
)

// AttractionRepository handles database operations for attractions
type AttractionRepository struct {
	db DB
}

// NewAttractionRepository creates a new AttractionRepository
func NewAttractionRepository(db DB) *AttractionRepository {
	return &AttractionRepository{db: db}
}

// GetByID retrieves an attraction together with its park area
func (r *AttractionRepository) GetByID(attractionID int64) (*models.Attraction, error) {
	query := `
		SELECT a.id, a.name, a.area_id, p.id, p.name, p.theme
		FROM attractions a
		JOIN park_areas p ON p.id = a.area_id
		WHERE a.id = $1
	`

	attraction := &models.Attraction{Area: &models.ParkArea{}}
	err := r.db.QueryRow(query, attractionID).Scan(
		&attraction.ID, &attraction.Name, &attraction.AreaID,
		&attraction.Area.ID, &attraction.Area.Name, &attraction.Area.Theme,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFound("Attraction", attractionID)
		}
		return nil, fmt.Errorf("failed to fetch attraction: %w", err)
	}

	return attraction, nil
}

// Update persists the attraction's name and area
func (r *AttractionRepository) Update(attraction *models.Attraction) error {
	query := `
		UPDATE attractions
		SET name = $1, area_id = $2
		WHERE id = $3
	`

	result, err := r.db.Exec(query, attraction.Name, attraction.AreaID, attraction.ID)
	if err != nil {
		return fmt.Errorf("failed to update attraction: %w", err)
	}

	return requireAffected(result, "Attraction", attraction.ID)
}

// Delete removes an attraction; its itineraries go with it through the FK cascade
func (r *AttractionRepository) Delete(attractionID int64) error {
	result, err := r.db.Exec(`DELETE FROM attractions WHERE id = $1`, attractionID)
	if err != nil {
		return fmt.Errorf("failed to delete attraction: %w", err)
	}

	return requireAffected(result, "Attraction", attractionID)
}

// requireAffected turns a zero-row write into a NotFoundError.
func requireAffected(result sql.Result, entity string, key interface{}) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.NewNotFound(entity, key)
	}
	return nil
}
