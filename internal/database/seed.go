package database

import "fmt"

type seedArea struct {
	name        string
	theme       string
	attractions []string
}

var catalogSeed = []seedArea{
	{name: "Lost Kennywood", theme: "Classic midway", attractions: []string{"Pitt Fall", "Phantom's Revenge"}},
	{name: "Kiddieland", theme: "Family rides", attractions: []string{"Kiddie Whip", "Lil' Phantom"}},
	{name: "Thomas Town", theme: "Storybook", attractions: []string{"Thomas the Tank Engine"}},
}

// SeedCatalog inserts the sample park areas and attractions. It does nothing
// when park_areas already has rows. Returns the number of attractions inserted.
func SeedCatalog(db DB) (int, error) {
	var existing int
	if err := db.Get(&existing, `SELECT COUNT(*) FROM park_areas`); err != nil {
		return 0, fmt.Errorf("seed: count park areas: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	inserted := 0
	for _, area := range catalogSeed {
		var areaID int64
		if err := db.QueryRow(
			`INSERT INTO park_areas (name, theme) VALUES ($1, $2) RETURNING id`,
			area.name, area.theme,
		).Scan(&areaID); err != nil {
			return inserted, fmt.Errorf("seed: insert park area %q: %w", area.name, err)
		}

		for _, name := range area.attractions {
			if _, err := db.Exec(`INSERT INTO attractions (name, area_id) VALUES ($1, $2)`, name, areaID); err != nil {
				return inserted, fmt.Errorf("seed: insert attraction %q: %w", name, err)
			}
			inserted++
		}
	}
	return inserted, nil
}
