package database

import (
	"fmt"

	"github.com/kennywood/park-api/internal/models"
)

// ItineraryRepository handles database operations for itineraries
type ItineraryRepository struct {
	db DB
}

// NewItineraryRepository creates a new ItineraryRepository
func NewItineraryRepository(db DB) *ItineraryRepository {
	return &ItineraryRepository{db: db}
}

// Create inserts a new itinerary and fills in its ID
func (r *ItineraryRepository) Create(itinerary *models.Itinerary) error {
	query := `
		INSERT INTO itineraries (starttime, customer_id, attraction_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(
		query,
		itinerary.StartTime.UTC(), itinerary.CustomerID, itinerary.AttractionID,
	).Scan(&itinerary.ID)
	if err != nil {
		return fmt.Errorf("failed to create itinerary: %w", err)
	}

	return nil
}

// ListByCustomer returns every itinerary owned by the customer, each with
// its attraction and park area
func (r *ItineraryRepository) ListByCustomer(customerID int64) ([]models.Itinerary, error) {
	query := `
		SELECT i.id, i.starttime, i.customer_id, i.attraction_id,
			   a.id, a.name, a.area_id,
			   p.id, p.name, p.theme
		FROM itineraries i
		JOIN attractions a ON a.id = i.attraction_id
		JOIN park_areas p ON p.id = a.area_id
		WHERE i.customer_id = $1
		ORDER BY i.starttime, i.id
	`

	rows, err := r.db.Query(query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list itineraries: %w", err)
	}
	defer rows.Close()

	itineraries := []models.Itinerary{}
	for rows.Next() {
		it := models.Itinerary{Attraction: &models.Attraction{Area: &models.ParkArea{}}}
		err := rows.Scan(
			&it.ID, &it.StartTime, &it.CustomerID, &it.AttractionID,
			&it.Attraction.ID, &it.Attraction.Name, &it.Attraction.AreaID,
			&it.Attraction.Area.ID, &it.Attraction.Area.Name, &it.Attraction.Area.Theme,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan itinerary: %w", err)
		}
		itineraries = append(itineraries, it)
	}

	return itineraries, rows.Err()
}
