package database

import "fmt"

// schemaStatements is the inline DDL for every table the API touches.
// All statements are idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username VARCHAR(150) NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		first_name VARCHAR(150) NOT NULL DEFAULT '',
		last_name VARCHAR(150) NOT NULL DEFAULT '',
		email VARCHAR(254) NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS customers (
		id BIGSERIAL PRIMARY KEY,
		user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		family_members INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS park_areas (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		theme VARCHAR(50) NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS attractions (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		area_id BIGINT NOT NULL REFERENCES park_areas(id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS itineraries (
		id BIGSERIAL PRIMARY KEY,
		starttime TIMESTAMPTZ NOT NULL,
		customer_id BIGINT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		attraction_id BIGINT NOT NULL REFERENCES attractions(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_itineraries_customer ON itineraries(customer_id)`,

	`CREATE TABLE IF NOT EXISTS audit_logs (
		id BIGSERIAL PRIMARY KEY,
		user_id UUID NULL,
		action VARCHAR(64) NOT NULL,
		entity_type VARCHAR(64) NOT NULL,
		entity_id TEXT NULL,
		ip_address VARCHAR(64) NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT '',
		details JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_logs_user ON audit_logs(user_id, created_at DESC)`,
}

// Tables lists the application tables in dependency order, parents last.
var Tables = []string{
	"audit_logs",
	"itineraries",
	"attractions",
	"park_areas",
	"customers",
	"users",
}

// EnsureSchema creates any missing tables and indexes.
func EnsureSchema(db DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}
