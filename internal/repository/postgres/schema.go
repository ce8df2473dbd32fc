package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"agrorent-backend/internal/logger"
)

var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS postgis`,

	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		village TEXT NOT NULL DEFAULT '',
		district TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_ratings INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS equipment (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL REFERENCES users(id),
		owner_name TEXT NOT NULL,
		owner_phone TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		images TEXT[] NOT NULL DEFAULT '{}',
		verification_docs TEXT[] NOT NULL DEFAULT '{}',
		verified BOOLEAN NOT NULL DEFAULT FALSE,
		price_per_hour DOUBLE PRECISION,
		price_per_day DOUBLE PRECISION,
		price_per_week DOUBLE PRECISION,
		location GEOGRAPHY(POINT, 4326) NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		village TEXT NOT NULL DEFAULT '',
		district TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		pincode TEXT NOT NULL DEFAULT '',
		available BOOLEAN NOT NULL DEFAULT TRUE,
		rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_ratings INTEGER NOT NULL DEFAULT 0,
		times_rented INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_equipment_location ON equipment USING GIST(location)`,
	`CREATE INDEX IF NOT EXISTS idx_equipment_category_available ON equipment (category, available)`,
	`CREATE INDEX IF NOT EXISTS idx_equipment_owner ON equipment (owner_id)`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id TEXT PRIMARY KEY,
		equipment_id TEXT NOT NULL REFERENCES equipment(id),
		equipment_name TEXT NOT NULL,
		equipment_category TEXT NOT NULL,
		renter_id TEXT NOT NULL,
		renter_name TEXT NOT NULL,
		renter_phone TEXT NOT NULL,
		rent_taker_id TEXT NOT NULL,
		rent_taker_name TEXT NOT NULL,
		rent_taker_phone TEXT NOT NULL,
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ NOT NULL CHECK (end_date > start_date),
		duration_hours INTEGER NOT NULL,
		total_cost DOUBLE PRECISION NOT NULL,
		pricing_type TEXT NOT NULL,
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		rejection_reason TEXT NOT NULL DEFAULT '',
		rating_by_rent_taker INTEGER,
		review_by_rent_taker TEXT NOT NULL DEFAULT '',
		rating_by_renter INTEGER,
		review_by_renter TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_equipment_status ON bookings (equipment_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_renter ON bookings (renter_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_rent_taker ON bookings (rent_taker_id, created_at DESC)`,
}

// EnsureSchema creates the PostGIS extension, tables and indexes if missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	logger.Info("Database schema ensured", "statements", len(schemaStatements))
	return nil
}
