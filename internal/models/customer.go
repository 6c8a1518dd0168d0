package models

import "github.com/google/uuid"

// Customer is the park-visitor profile bound one-to-one to a User.
type Customer struct {
	ID            int64     `json:"id" db:"id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	FamilyMembers int       `json:"family_members" db:"family_members"`
}
