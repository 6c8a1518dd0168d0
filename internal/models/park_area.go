package models

// ParkArea is a themed zone of the park grouping attractions.
type ParkArea struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Theme string `json:"theme" db:"theme"`
}
