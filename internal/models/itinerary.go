package models

import "time"

// Itinerary is a scheduled ride: one customer, one attraction, one start time.
type Itinerary struct {
	ID           int64     `json:"id" db:"id"`
	StartTime    time.Time `json:"starttime" db:"starttime"`
	CustomerID   int64     `json:"customer_id" db:"customer_id"`
	AttractionID int64     `json:"attraction_id" db:"attraction_id"`

	// Attraction (with its Area) is populated by joined reads only.
	Attraction *Attraction `json:"attraction,omitempty" db:"-"`
}

// CreateItineraryRequest is the body of POST /itineraryitems
type CreateItineraryRequest struct {
	StartTime *time.Time `json:"starttime"`
	RideID    *int64     `json:"ride_id"`
}

// Validate checks that both fields are present
func (r *CreateItineraryRequest) Validate() error {
	if r.StartTime == nil {
		return &ValidationError{Field: "starttime", Message: "This field is required."}
	}
	if r.RideID == nil {
		return &ValidationError{Field: "ride_id", Message: "This field is required."}
	}
	if *r.RideID <= 0 {
		return &ValidationError{Field: "ride_id", Message: "A valid integer is required."}
	}
	return nil
}
