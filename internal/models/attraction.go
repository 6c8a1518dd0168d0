package models

import (
	"strings"
	"unicode/utf8"
)

// Attraction is a ride or exhibit belonging to one ParkArea.
type Attraction struct {
	ID     int64  `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	AreaID int64  `json:"area_id" db:"area_id"`

	// Area is populated by joined reads only.
	Area *ParkArea `json:"area,omitempty" db:"-"`
}

// UpdateAttractionRequest is the body of PUT /itineraryitems/:id
type UpdateAttractionRequest struct {
	Name   *string `json:"name"`
	AreaID *int64  `json:"area_id"`
}

// Validate checks that both fields are present and usable
func (r *UpdateAttractionRequest) Validate() error {
	if r.Name == nil {
		return &ValidationError{Field: "name", Message: "This field is required."}
	}
	if strings.TrimSpace(*r.Name) == "" {
		return &ValidationError{Field: "name", Message: "This field may not be blank."}
	}
	if utf8.RuneCountInString(*r.Name) > 50 {
		return &ValidationError{Field: "name", Message: "Ensure this field has no more than 50 characters."}
	}
	if r.AreaID == nil {
		return &ValidationError{Field: "area_id", Message: "This field is required."}
	}
	if *r.AreaID <= 0 {
		return &ValidationError{Field: "area_id", Message: "A valid integer is required."}
	}
	return nil
}
